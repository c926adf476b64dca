package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/jask/ordens/internal/auth"
	"github.com/jask/ordens/internal/config"
	"github.com/jask/ordens/internal/database/repository"
	"github.com/jask/ordens/internal/orders"
)

// Saver writes work orders edited in the TUI.
type Saver interface {
	Insert(ctx context.Context, w repository.WorkOrder) error
	Update(ctx context.Context, w repository.WorkOrder) error
}

// Deps are the collaborators the list screen talks to.
type Deps struct {
	Store    orders.Store
	Saver    Saver
	Sessions auth.Provider
}

// App is the work-order list screen.
type App struct {
	ctx      context.Context
	cfg      config.Config
	deps     Deps
	vm       *orders.ViewModel
	launcher *orders.Launcher

	rows      []repository.WorkOrder
	cursor    int
	search    textinput.Model
	searching bool
	notice    orders.Notice
	pending   []tea.Cmd
	width     int
	height    int
	now       func() time.Time
}

func New(ctx context.Context, cfg config.Config, deps Deps) *App {
	a := &App{
		ctx:  ctx,
		cfg:  cfg,
		deps: deps,
		now:  time.Now,
	}
	a.search = textinput.New()
	a.search.Prompt = "/ "
	a.search.Placeholder = "number or title"
	a.search.CharLimit = 80
	a.search.Cursor.SetMode(cursor.CursorStatic)

	a.launcher = orders.NewLauncher(a.newEditor, a)
	a.vm = orders.NewViewModel(deps.Store, a.launcher, a,
		orders.WithLimit(cfg.List.RecentLimit),
		orders.WithRunner(a.queueFetch),
	)
	return a
}

// Notify shows n on the status line.
func (a *App) Notify(n orders.Notice) { a.notice = n }

func (a *App) info(msg string) { a.Notify(orders.Notice{Severity: orders.SeverityInfo, Message: msg}) }

func (a *App) warn(msg string) { a.Notify(orders.Notice{Severity: orders.SeverityWarning, Message: msg}) }

func (a *App) fail(err error) { a.Notify(orders.Notice{Severity: orders.SeverityError, Message: err.Error()}) }

// queueFetch runs view-model loads as commands; results come back as reloadedMsg.
func (a *App) queueFetch(ctx context.Context, f *orders.Fetch) error {
	a.pending = append(a.pending, func() tea.Msg {
		return reloadedMsg(f.Run(ctx))
	})
	return nil
}

// flush hands queued loads to the runtime.
func (a *App) flush(cmds ...tea.Cmd) tea.Cmd {
	cmds = append(cmds, a.pending...)
	a.pending = nil
	return tea.Batch(cmds...)
}

func (a *App) newEditor(req orders.EditorRequest) (orders.Surface, error) {
	form, err := LoadForm(a.cfg.UI.EditorTemplate)
	if err != nil {
		return nil, err
	}
	if a.deps.Saver == nil {
		return nil, errors.New("work order store is read-only")
	}
	return NewEditorScreen(form, req, a.dateFormat()), nil
}

func (a *App) dateFormat() string {
	if a.cfg.UI.DateFormat == "" {
		return "02/01/2006"
	}
	return a.cfg.UI.DateFormat
}

func (a *App) Init() tea.Cmd {
	return a.loadSession()
}

func (a *App) loadSession() tea.Cmd {
	return func() tea.Msg {
		if a.deps.Sessions == nil {
			return sessionMsg{}
		}
		s, err := a.deps.Sessions.CurrentUser(a.ctx)
		return sessionMsg{session: s, err: err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case tea.KeyMsg:
		if ln := a.launcher.Active(); ln != nil {
			return a, a.flush(a.handleEditorKey(ln, m))
		}
		if a.searching {
			return a, a.flush(a.handleSearchKey(m))
		}
		return a.handleListKey(m)
	case sessionMsg:
		if m.err != nil {
			a.fail(m.err)
		} else if m.session == nil {
			a.warn("no user session: read-only")
		}
		a.search.SetValue("")
		a.cursor = 0
		_ = a.vm.Initialize(a.ctx, m.session)
	case reloadedMsg:
		if err := a.vm.Complete(orders.Result(m)); err != nil {
			a.fail(err)
		}
		a.syncRows()
	case editorSavedMsg:
		a.finishSave(m)
	}
	return a, a.flush()
}

func (a *App) syncRows() {
	a.rows = a.vm.Visible()
	if a.cursor >= len(a.rows) {
		a.cursor = max(len(a.rows)-1, 0)
	}
}

func (a *App) selected() *repository.WorkOrder {
	if len(a.rows) == 0 {
		return nil
	}
	w := a.rows[a.cursor]
	return &w
}

func (a *App) selection() []repository.WorkOrder {
	if w := a.selected(); w != nil {
		return []repository.WorkOrder{*w}
	}
	return nil
}

func (a *App) handleListKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keys.Action(m, scopeList) {
	case actQuit:
		return a, tea.Quit
	case actUp:
		if a.cursor > 0 {
			a.cursor--
		}
	case actDown:
		if a.cursor < len(a.rows)-1 {
			a.cursor++
		}
	case actStatus:
		if err := a.vm.SetStatusFilter(a.ctx, orders.NextChoice(a.vm.Filter().Status)); err != nil {
			a.fail(err)
		}
		a.cursor = 0
	case actSearch:
		a.searching = true
		return a, a.flush(a.search.Focus())
	case actOpen:
		// row activation; nothing happens on an empty list
		a.openEditor(a.vm.OnRequestEdit(a.ctx, a.selected()))
	case actEdit:
		a.openEditor(a.vm.OnRequestEditSelected(a.ctx, a.selection()))
	case actNew:
		a.openEditor(a.vm.OnRequestCreate(a.ctx))
	case actReload:
		_ = a.vm.Reload(a.ctx)
	}
	return a, a.flush()
}

func (a *App) openEditor(ln *orders.Launch, err error) {
	switch {
	case errors.Is(err, orders.ErrCreateNotAllowed):
		a.warn("your profile cannot create work orders")
	case errors.Is(err, orders.ErrEditorOpen):
		a.warn(err.Error())
	case err != nil:
		// launch failures are already on the status line
	case ln != nil:
		a.notice = orders.Notice{}
	}
}

func (a *App) handleSearchKey(m tea.KeyMsg) tea.Cmd {
	switch keys.Action(m, scopeSearch) {
	case actQuit:
		return tea.Quit
	case actCancel:
		a.searching = false
		a.search.Blur()
		a.search.SetValue(a.vm.Filter().Search)
		return nil
	case actApply:
		a.searching = false
		a.search.Blur()
		a.cursor = 0
		if err := a.vm.SetSearchText(a.ctx, a.search.Value()); err != nil {
			a.fail(err)
		}
		return nil
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(m)
	return cmd
}

func (a *App) handleEditorKey(ln *orders.Launch, m tea.KeyMsg) tea.Cmd {
	ed, ok := ln.Surface().(*EditorScreen)
	if !ok {
		ln.Cancel()
		return nil
	}
	if keys.Action(m, scopeEditor) == actQuit {
		return tea.Quit
	}
	cmd, action := ed.Update(m)
	switch action {
	case editorCancel:
		ln.Cancel()
		a.info("edit cancelled")
	case editorSubmit:
		w, err := ed.WorkOrder()
		if err != nil {
			ed.fail(err)
			return nil
		}
		ed.beginSave()
		return a.saveCmd(ln, w, ed.Request().Creating())
	}
	return cmd
}

func (a *App) saveCmd(ln *orders.Launch, w repository.WorkOrder, creating bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if creating {
			err = a.deps.Saver.Insert(a.ctx, w)
		} else {
			err = a.deps.Saver.Update(a.ctx, w)
		}
		return editorSavedMsg{launch: ln, number: w.Number, err: err}
	}
}

func (a *App) finishSave(m editorSavedMsg) {
	ed, ok := m.launch.Surface().(*EditorScreen)
	if !ok || m.launch.State() != orders.LaunchOpen {
		return
	}
	if m.err != nil {
		ed.fail(fmt.Errorf("save failed: %w", m.err))
		return
	}
	a.info("saved " + m.number)
	ed.saved()
}

func (a *App) View() string {
	body := a.renderList()
	if ln := a.launcher.Active(); ln != nil {
		if ed, ok := ln.Surface().(*EditorScreen); ok {
			return renderModal(body, ed.View(), a.width, a.height)
		}
	}
	return body
}

type column struct {
	title string
	width int
	value func(w repository.WorkOrder, dateFormat string) string
}

var columns = []column{
	{"Number", 10, func(w repository.WorkOrder, _ string) string { return w.Number }},
	{"Title", 28, func(w repository.WorkOrder, _ string) string { return w.Title }},
	{"Assignee", 14, func(w repository.WorkOrder, _ string) string { return deref(w.Assignee) }},
	{"Requester", 14, func(w repository.WorkOrder, _ string) string { return deref(w.Requester) }},
	{"Category", 12, func(w repository.WorkOrder, _ string) string { return w.Category }},
	{"Priority", 8, func(w repository.WorkOrder, _ string) string { return w.Priority }},
	{"Status", 12, func(w repository.WorkOrder, _ string) string { return w.Status }},
	{"Deadline", 10, func(w repository.WorkOrder, f string) string {
		if w.Deadline == nil {
			return ""
		}
		return w.Deadline.Format(f)
	}},
}

func (a *App) renderList() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Work orders"))
	if s := a.vm.Session(); s != nil {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  %s (%s)", s.Name, s.Role)))
	}
	b.WriteString("\n")

	filter := a.vm.Filter()
	b.WriteString(filterStyle.Render("status: " + filter.Status.Label()))
	b.WriteString(" ")
	if a.searching {
		b.WriteString(a.search.View())
	} else if filter.Search != "" {
		b.WriteString(filterStyle.Render("search: " + filter.Search))
	}
	if a.vm.Loading() {
		b.WriteString(mutedStyle.Render("  loading..."))
	}
	b.WriteString("\n\n")

	header := make([]string, 0, len(columns))
	for _, c := range columns {
		header = append(header, cell(c.title, c.width))
	}
	b.WriteString(headerStyle.Render("  " + strings.Join(header, " ")))
	b.WriteString("\n")

	if len(a.rows) == 0 {
		b.WriteString(mutedStyle.Render("  (no work orders)"))
		b.WriteString("\n")
	}
	for i, w := range a.rows {
		cells := make([]string, 0, len(columns))
		for _, c := range columns {
			v := cell(c.value(w, a.dateFormat()), c.width)
			if c.title == "Status" {
				v = statusStyle(w.Status).Render(v)
			}
			cells = append(cells, v)
		}
		line := strings.Join(cells, " ")
		if i == a.cursor {
			b.WriteString(cursorStyle.Render("▶ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if w := a.selected(); w != nil && w.Deadline != nil {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%s due %s", w.Number, humanize.RelTime(*w.Deadline, a.now(), "ago", "from now"))))
		b.WriteString("\n")
	}
	b.WriteString(a.renderHelp())
	if a.notice.Message != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyles[a.notice.Severity].Render(a.notice.Message))
	}
	return b.String()
}

func (a *App) renderHelp() string {
	return helpFor(scopeList, map[string]bool{actNew: !a.vm.CanCreate()})
}

// messages
type sessionMsg struct {
	session *auth.Session
	err     error
}

type reloadedMsg orders.Result

type editorSavedMsg struct {
	launch *orders.Launch
	number string
	err    error
}
