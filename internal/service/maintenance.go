package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/ordens/internal/database"
)

// MaintenanceService houses destructive/ops actions exposed by the CLI.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset wipes all work orders, and users too when withUsers is set. The schema stays.
func (s *MaintenanceService) Reset(ctx context.Context, withUsers bool) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	tables := []string{"work_orders"}
	if withUsers {
		tables = append(tables, "users")
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		for _, t := range tables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return nil
}
