package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/ordens/internal/database/repository"
)

// BootstrapRole is given to the first user of an empty database so someone
// can open work orders straight away.
const BootstrapRole = "ADMIN"

// SeedDefaults makes sure the configured login exists. On an empty users table
// it is created as an administrator; otherwise nothing is touched.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB, login string) error {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil
	}
	users := repository.NewUserRepo(db)
	existing, err := users.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	u := repository.User{
		ID:    uuid.NewSHA1(uuid.NameSpaceOID, []byte("user:"+login)).String(),
		Login: login,
		Name:  login,
		Role:  BootstrapRole,
	}
	return users.Upsert(ctx, u)
}
