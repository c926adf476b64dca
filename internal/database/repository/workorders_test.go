package repository_test

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/ordens/internal/database"
	"github.com/jask/ordens/internal/database/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestWorkOrderRepoFindRecent(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	repo := repository.NewWorkOrderRepo(openTestDB(t))

	empty, err := repo.FindRecent(ctx, 500)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Insert(ctx, repository.WorkOrder{
			ID:        fmt.Sprintf("id-%d", i),
			Number:    fmt.Sprintf("OS-%03d", 100+i),
			Title:     fmt.Sprintf("Order %d", i),
			Status:    "ABERTA",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	got, err := repo.FindRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, []string{"OS-104", "OS-103", "OS-102"}, []string{got[0].Number, got[1].Number, got[2].Number})
}

func TestWorkOrderRepoUpdateMovesToTop(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewWorkOrderRepo(openTestDB(t))

	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	assignee := "joana"
	deadline := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Insert(ctx, repository.WorkOrder{ID: "a", Number: "OS-001", Title: "Pintura", Status: "ABERTA", CreatedAt: base}))
	require.NoError(t, repo.Insert(ctx, repository.WorkOrder{ID: "b", Number: "OS-002", Title: "Troca de lâmpada", Status: "ABERTA", CreatedAt: base.Add(time.Hour)}))

	w, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, w)
	require.Nil(t, w.Assignee)
	require.Nil(t, w.Deadline)

	w.Status = "CONCLUIDA"
	w.Assignee = &assignee
	w.Deadline = &deadline
	require.NoError(t, repo.Update(ctx, *w))

	got, err := repo.FindRecent(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, "OS-001", got[0].Number)
	require.Equal(t, "CONCLUIDA", got[0].Status)
	require.Equal(t, "joana", *got[0].Assignee)
	require.True(t, deadline.Equal(*got[0].Deadline))
}

func TestWorkOrderRepoMissingRows(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewWorkOrderRepo(openTestDB(t))

	w, err := repo.Get(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, w)

	w, err = repo.ByNumber(ctx, "OS-404")
	require.NoError(t, err)
	require.Nil(t, w)

	require.ErrorIs(t, repo.Update(ctx, repository.WorkOrder{ID: "nope"}), sql.ErrNoRows)
}

func TestUserRepoUpsertAndLookup(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	users := repository.NewUserRepo(db)

	require.NoError(t, database.SeedDefaults(ctx, db, "maria"))
	u, err := users.ByLogin(ctx, "maria")
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, database.BootstrapRole, u.Role)

	require.NoError(t, users.Upsert(ctx, repository.User{ID: "x", Login: "maria", Name: "Maria", Role: "OPERADOR"}))
	u, err = users.ByLogin(ctx, "maria")
	require.NoError(t, err)
	require.Equal(t, "OPERADOR", u.Role)
	require.Equal(t, "Maria", u.Name)

	// a populated table is left alone
	require.NoError(t, database.SeedDefaults(ctx, db, "joao"))
	missing, err := users.ByLogin(ctx, "joao")
	require.NoError(t, err)
	require.Nil(t, missing)
}
