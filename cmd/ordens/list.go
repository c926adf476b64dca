package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/jask/ordens/internal/auth"
	"github.com/jask/ordens/internal/database/repository"
	"github.com/jask/ordens/internal/orders"
	"github.com/jask/ordens/internal/service"
)

type listOptions struct {
	Status string
	Search string
	Limit  int
}

func addList(topLevel *cobra.Command) {
	o := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the most recent work orders",
		Example: `
ordens list
ordens list --status aberta
ordens list --search pintura --limit 20
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if o.Limit <= 0 {
				o.Limit = cfg.List.RecentLimit
			}
			ctx := cmd.Context()
			db, err := openDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			sessions := auth.RepoProvider{Users: repository.NewUserRepo(db), Login: cfg.Session.Login}
			rows, err := o.run(ctx, repository.NewWorkOrderRepo(db), sessions)
			if err != nil {
				return err
			}
			printWorkOrders(cmd.OutOrStdout(), rows, cfg.UI.DateFormat)
			return nil
		},
	}
	cmd.Flags().StringVarP(&o.Status, "status", "s", "", "only this status (ABERTA, EM_ANDAMENTO, CONCLUIDA, CANCELADA)")
	cmd.Flags().StringVarP(&o.Search, "search", "q", "", "case-insensitive match on number or title")
	cmd.Flags().IntVarP(&o.Limit, "limit", "n", 0, "how many recent work orders to load (at most 500)")
	topLevel.AddCommand(cmd)
}

// run drives a view model without an editor, the same way the TUI list does.
func (o *listOptions) run(ctx context.Context, store orders.Store, sessions auth.Provider) ([]repository.WorkOrder, error) {
	status := orders.ParseStatus(o.Status)
	if !status.Valid() {
		return nil, service.UnknownStatusError(o.Status)
	}
	session, err := sessions.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	vm := orders.NewViewModel(store, nil, nil, orders.WithLimit(o.Limit))
	if err := vm.Initialize(ctx, session); err != nil {
		return nil, err
	}
	if status != orders.StatusAll {
		if err := vm.SetStatusFilter(ctx, status); err != nil {
			return nil, err
		}
	}
	if o.Search != "" {
		if err := vm.SetSearchText(ctx, o.Search); err != nil {
			return nil, err
		}
	}
	return vm.Visible(), nil
}

var statusColors = map[string]*color.Color{
	string(orders.StatusOpen):       color.New(color.FgCyan),
	string(orders.StatusInProgress): color.New(color.FgYellow),
	string(orders.StatusDone):       color.New(color.FgGreen),
	string(orders.StatusCancelled):  color.New(color.FgHiBlack),
}

func printWorkOrders(w io.Writer, rows []repository.WorkOrder, dateFormat string) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, color.New(color.Faint).Sprint("no work orders"))
		return
	}
	tbl := uitable.New()
	tbl.MaxColWidth = 40
	tbl.Separator = "  "
	bold := color.New(color.Bold)
	tbl.AddRow(bold.Sprint("NUMBER"), bold.Sprint("TITLE"), bold.Sprint("ASSIGNEE"), bold.Sprint("REQUESTER"),
		bold.Sprint("CATEGORY"), bold.Sprint("PRIORITY"), bold.Sprint("STATUS"), bold.Sprint("DEADLINE"))
	for _, r := range rows {
		status := r.Status
		if c, ok := statusColors[r.Status]; ok {
			status = c.Sprint(r.Status)
		}
		deadline := ""
		if r.Deadline != nil {
			deadline = r.Deadline.Format(dateFormat)
		}
		tbl.AddRow(r.Number, r.Title, deref(r.Assignee), deref(r.Requester), r.Category, r.Priority, status, deadline)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
