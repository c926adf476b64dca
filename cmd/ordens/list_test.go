package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/jask/ordens/internal/auth"
	"github.com/jask/ordens/internal/database/repository"
	"github.com/jask/ordens/internal/orders"
)

type sliceStore []repository.WorkOrder

func (s sliceStore) FindRecent(_ context.Context, limit int) ([]repository.WorkOrder, error) {
	if len(s) > limit {
		return s[:limit], nil
	}
	return s, nil
}

type noSession struct{}

func (noSession) CurrentUser(context.Context) (*auth.Session, error) { return nil, nil }

func sampleOrders() sliceStore {
	deadline := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	assignee := "Bia"
	return sliceStore{
		{Number: "OS-100", Title: "Troca de lâmpada", Status: "ABERTA", Assignee: &assignee, Deadline: &deadline},
		{Number: "OS-099", Title: "Pintura", Status: "CONCLUIDA"},
	}
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()

	rows, err := (&listOptions{Limit: 10}).run(ctx, sampleOrders(), noSession{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	rows, err = (&listOptions{Status: "aberta", Limit: 10}).run(ctx, sampleOrders(), noSession{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "OS-100", rows[0].Number)

	rows, err = (&listOptions{Search: "PINT", Limit: 10}).run(ctx, sampleOrders(), noSession{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "OS-099", rows[0].Number)

	rows, err = (&listOptions{Limit: 1}).run(ctx, sampleOrders(), noSession{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

type limitStore struct{ limits []int }

func (s *limitStore) FindRecent(_ context.Context, limit int) ([]repository.WorkOrder, error) {
	s.limits = append(s.limits, limit)
	return nil, nil
}

func TestListLimitIsCapped(t *testing.T) {
	store := &limitStore{}
	_, err := (&listOptions{Limit: 9000}).run(context.Background(), store, noSession{})
	require.NoError(t, err)
	require.Equal(t, []int{orders.DefaultLimit}, store.limits)
}

func TestListUnknownStatusSuggests(t *testing.T) {
	_, err := (&listOptions{Status: "concluda", Limit: 10}).run(context.Background(), sampleOrders(), noSession{})
	require.ErrorIs(t, err, orders.ErrUnknownStatus)
	require.Contains(t, err.Error(), "did you mean CONCLUIDA")
}

func TestPrintWorkOrders(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printWorkOrders(&buf, sampleOrders(), "02/01/2006")
	out := buf.String()
	require.Contains(t, out, "NUMBER")
	require.Contains(t, out, "OS-100")
	require.Contains(t, out, "Bia")
	require.Contains(t, out, "15/03/2025")

	buf.Reset()
	printWorkOrders(&buf, nil, "02/01/2006")
	require.Equal(t, "no work orders\n", buf.String())
}

func TestRootCommandWiring(t *testing.T) {
	cmd := newRootCmd()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	require.ElementsMatch(t, []string{"init", "list", "migrate", "reset", "seed"}, names)
	require.NotNil(t, cmd.PersistentFlags().Lookup("user"))
}
