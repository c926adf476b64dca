package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/ordens/internal/auth"
	"github.com/jask/ordens/internal/config"
	"github.com/jask/ordens/internal/database"
	"github.com/jask/ordens/internal/database/repository"
	"github.com/jask/ordens/internal/tui"
)

const lockWait = 2 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "ordens",
		Short:        "Browse and edit work orders in the terminal",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg)
		},
	}
	cmd.PersistentFlags().StringP("user", "u", "", "login to run as (overrides session.login)")

	addList(cmd)
	addSeed(cmd)
	addMigrate(cmd)
	addReset(cmd)
	addInit(cmd)
	return cmd
}

func runTUI(ctx context.Context, cfg config.Config) error {
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	unlock, err := database.Lock(ctx, cfg.Database.Path, lockWait)
	if err != nil {
		return err
	}
	defer func() {
		if err := unlock(); err != nil {
			log.Printf("warn: release lock: %v", err)
		}
	}()

	users := repository.NewUserRepo(db)
	workOrders := repository.NewWorkOrderRepo(db)

	p := tea.NewProgram(tui.New(ctx, cfg, tui.Deps{
		Store:    workOrders,
		Saver:    workOrders,
		Sessions: auth.RepoProvider{Users: users, Login: cfg.Session.Login},
	}), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// openDatabase creates the database directory, opens the database, applies
// migrations over that handle and makes sure the configured login exists.
func openDatabase(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.RunMigrationsWithDB(db, cfg.Database.Migrations); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := database.SeedDefaults(ctx, db, cfg.Session.Login); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}
	return db, nil
}

// withLock runs fn while holding the database lock, failing fast if an
// interactive session has it.
func withLock(ctx context.Context, cfg config.Config, fn func() error) error {
	unlock, err := database.Lock(ctx, cfg.Database.Path, lockWait)
	if errors.Is(err, database.ErrLocked) {
		return fmt.Errorf("%w (close the TUI and retry)", err)
	}
	if err != nil {
		return err
	}
	defer func() {
		if err := unlock(); err != nil {
			log.Printf("warn: release lock: %v", err)
		}
	}()
	return fn()
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if login, _ := cmd.Flags().GetString("user"); login != "" {
		cfg.Session.Login = login
	}
	return cfg, nil
}
