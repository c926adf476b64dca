package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jask/ordens/internal/config"
	"github.com/jask/ordens/internal/database/repository"
	"github.com/jask/ordens/internal/service"
)

func addSeed(topLevel *cobra.Command) {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import users and work orders from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return errors.New("--file is required")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			db, err := openDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			svc := &service.IngestService{
				Users:      repository.NewUserRepo(db),
				WorkOrders: repository.NewWorkOrderRepo(db),
				DateFormat: cfg.UI.DateFormat,
			}
			var res service.IngestResult
			if err := withLock(ctx, cfg, func() error {
				res, err = svc.ImportYAML(ctx, f)
				return err
			}); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "users: %d  new work orders: %d  updated: %d\n", res.Users, res.Imported, res.Updated)
			warn := color.New(color.FgYellow)
			for _, e := range res.Errors {
				_, _ = fmt.Fprintln(out, warn.Sprint("skipped ", e))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "seed file")
	topLevel.AddCommand(cmd)
}

func addMigrate(topLevel *cobra.Command) {
	topLevel.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			db, err := openDatabase(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			_ = db.Close()
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("schema up to date: %s", cfg.Database.Path))
			return nil
		},
	})
}

func addReset(topLevel *cobra.Command) {
	var yes, users bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all work orders (and optionally users)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to reset without --yes")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			db, err := openDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			m := &service.MaintenanceService{DB: db}
			if err := withLock(ctx, cfg, func() error { return m.Reset(ctx, users) }); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("database reset"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm")
	cmd.Flags().BoolVar(&users, "users", false, "also delete users")
	topLevel.AddCommand(cmd)
}

func addInit(topLevel *cobra.Command) {
	topLevel.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the current configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(cfg); err != nil {
				return err
			}
			db, err := openDatabase(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			_ = db.Close()
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("ready: %s", cfg.Database.Path))
			return nil
		},
	})
}
