package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/ordens/internal/database"
	"github.com/jask/ordens/internal/database/repository"
	"github.com/jask/ordens/internal/orders"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../database/migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

const seedYAML = `
users:
  - login: ana
    name: Ana Souza
    role: gestor
  - login: bruno
    role: VISUALIZADOR
  - login: ""
    role: ADMIN
  - login: caio
    role: zelador
work_orders:
  - number: OS-099
    title: Pintura
    status: CONCLUIDA
  - number: OS-100
    title: Troca de lâmpada
    requester: Ana
    priority: alta
    deadline: 15/03/2025
  - number: OS-101
    title: Jardim
    status: ABRETA
  - number: OS-102
    title: Portão
    deadline: 2025-03-15
  - title: sem número
`

func TestImportYAML(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db := openDB(t)
	users := repository.NewUserRepo(db)
	workOrders := repository.NewWorkOrderRepo(db)
	svc := &IngestService{Users: users, WorkOrders: workOrders}

	res, err := svc.ImportYAML(ctx, strings.NewReader(seedYAML))
	require.NoError(t, err)
	require.Equal(t, 2, res.Users)
	require.Equal(t, 2, res.Imported)
	require.Equal(t, 0, res.Updated)
	require.Len(t, res.Errors, 5)
	require.ErrorIs(t, res.Errors[2], orders.ErrUnknownStatus)
	require.Contains(t, res.Errors[2].Error(), "did you mean ABERTA")

	ana, err := users.ByLogin(ctx, "ana")
	require.NoError(t, err)
	require.Equal(t, "GESTOR", ana.Role)
	bruno, err := users.ByLogin(ctx, "bruno")
	require.NoError(t, err)
	require.Equal(t, "bruno", bruno.Name)

	w, err := workOrders.ByNumber(ctx, "OS-100")
	require.NoError(t, err)
	require.NotNil(t, w)
	require.Equal(t, "ABERTA", w.Status)
	require.Equal(t, "ALTA", w.Priority)
	require.Equal(t, "Ana", *w.Requester)
	require.Nil(t, w.Assignee)
	require.True(t, w.Deadline.Equal(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)))

	// a second run updates by number instead of duplicating
	res, err = svc.ImportYAML(ctx, strings.NewReader(`
work_orders:
  - number: OS-099
    title: Pintura da fachada
    status: em andamento
`))
	require.NoError(t, err)
	require.Equal(t, 1, res.Updated)
	require.Equal(t, 0, res.Imported)

	recent, err := workOrders.FindRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "OS-099", recent[0].Number)
	require.Equal(t, "EM_ANDAMENTO", recent[0].Status)
}

func TestImportYAMLEmptyAndBroken(t *testing.T) {
	t.Parallel()

	db := openDB(t)
	svc := &IngestService{Users: repository.NewUserRepo(db), WorkOrders: repository.NewWorkOrderRepo(db)}

	res, err := svc.ImportYAML(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, IngestResult{}, res)

	_, err = svc.ImportYAML(context.Background(), strings.NewReader("work_orders: {"))
	require.Error(t, err)

	_, err = (&IngestService{}).ImportYAML(context.Background(), strings.NewReader(""))
	require.Error(t, err)
}

func TestMaintenanceReset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openDB(t)
	require.NoError(t, database.SeedDefaults(ctx, db, "ana"))
	workOrders := repository.NewWorkOrderRepo(db)
	require.NoError(t, workOrders.Insert(ctx, repository.WorkOrder{ID: "a", Number: "OS-1", Title: "x", Status: "ABERTA"}))

	m := &MaintenanceService{DB: db}
	require.NoError(t, m.Reset(ctx, false))
	recent, err := workOrders.FindRecent(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, recent)
	users, err := repository.NewUserRepo(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	require.NoError(t, m.Reset(ctx, true))
	users, err = repository.NewUserRepo(db).List(ctx)
	require.NoError(t, err)
	require.Empty(t, users)

	require.Error(t, (&MaintenanceService{}).Reset(ctx, false))
}

func TestSuggestStatus(t *testing.T) {
	t.Parallel()

	require.Equal(t, orders.StatusOpen, SuggestStatus("abreta"))
	require.Equal(t, orders.StatusDone, SuggestStatus("concluda"))
	require.Equal(t, orders.StatusCancelled, SuggestStatus("canselada"))
	require.Equal(t, orders.Status(""), SuggestStatus("xyz"))
	require.Equal(t, orders.Status(""), SuggestStatus(""))

	err := UnknownStatusError("xyz")
	require.ErrorIs(t, err, orders.ErrUnknownStatus)
	require.NotContains(t, err.Error(), "did you mean")
}
