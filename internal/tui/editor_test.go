package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/ordens/internal/auth"
	"github.com/jask/ordens/internal/database/repository"
	"github.com/jask/ordens/internal/orders"
)

func mustForm(t *testing.T) Form {
	t.Helper()
	f, err := LoadForm("")
	require.NoError(t, err)
	return f
}

func TestEditorPrefillsRecord(t *testing.T) {
	requester := "Marta"
	deadline := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	rec := &repository.WorkOrder{
		ID: "x", Number: "OS-7", Title: "Vazamento", Requester: &requester,
		Category: "HIDRAULICA", Priority: "ALTA", Status: "EM_ANDAMENTO", Deadline: &deadline,
	}
	ed := NewEditorScreen(mustForm(t), orders.EditorRequest{Record: rec}, "02/01/2006")

	require.Equal(t, "Edit work order - OS-7", ed.Title())
	require.Equal(t, "OS-7", ed.inputs[0].Value())
	require.Equal(t, "Marta", ed.inputs[2].Value())
	require.Equal(t, "", ed.inputs[3].Value())
	require.Equal(t, "02/04/2025", ed.inputs[7].Value())

	w, err := ed.WorkOrder()
	require.NoError(t, err)
	require.Equal(t, *rec, w)
}

func TestEditorCreateDefaults(t *testing.T) {
	ed := NewEditorScreen(mustForm(t), orders.EditorRequest{Session: &auth.Session{Name: "Ana", Role: auth.RoleAdmin}}, "02/01/2006")
	require.Equal(t, "New work order", ed.Title())
	require.Equal(t, "ABERTA", ed.inputs[6].Value())
	require.Contains(t, ed.View(), "as Ana (ADMIN)")

	_, err := ed.WorkOrder()
	require.EqualError(t, err, "number is required")

	ed.inputs[0].SetValue(" OS-8 ")
	ed.inputs[1].SetValue("Poda")
	ed.inputs[5].SetValue("baixa")
	ed.inputs[6].SetValue("cancelled")
	w, err := ed.WorkOrder()
	require.NoError(t, err)
	require.NotEmpty(t, w.ID)
	require.Equal(t, "OS-8", w.Number)
	require.Equal(t, "BAIXA", w.Priority)
	require.Equal(t, "CANCELADA", w.Status)
	require.Nil(t, w.Requester)
}

func TestEditorRejectsBadValues(t *testing.T) {
	rec := &repository.WorkOrder{ID: "x", Number: "OS-7", Title: "Vazamento", Status: "ABERTA"}
	ed := NewEditorScreen(mustForm(t), orders.EditorRequest{Record: rec}, "02/01/2006")

	ed.inputs[6].SetValue("pendente")
	_, err := ed.WorkOrder()
	require.ErrorContains(t, err, "unknown status")

	ed.inputs[6].SetValue("todos")
	_, err = ed.WorkOrder()
	require.ErrorContains(t, err, "unknown status")

	ed.inputs[6].SetValue("ABERTA")
	ed.inputs[7].SetValue("31/02/2025")
	_, err = ed.WorkOrder()
	require.ErrorContains(t, err, "deadline")
}

func TestEditorKeys(t *testing.T) {
	ed := NewEditorScreen(mustForm(t), orders.EditorRequest{}, "02/01/2006")

	_, action := ed.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, editorNone, action)
	require.Equal(t, 1, ed.focus)

	_, _ = ed.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	_, _ = ed.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, len(ed.inputs)-1, ed.focus)

	_, action = ed.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Equal(t, editorSubmit, action)
	_, action = ed.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, editorCancel, action)

	ed.beginSave()
	_, action = ed.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, editorNone, action)
	require.Contains(t, ed.View(), "saving...")
}

func TestEditorSavedRunsCallbackOnce(t *testing.T) {
	calls := 0
	l := orders.NewLauncher(func(req orders.EditorRequest) (orders.Surface, error) {
		return NewEditorScreen(mustForm(t), req, "02/01/2006"), nil
	}, nil)
	ln, err := l.OpenForCreate(nil, func() { calls++ })
	require.NoError(t, err)

	ed := ln.Surface().(*EditorScreen)
	ed.beginSave()
	ed.saved()
	ed.saved()
	require.Equal(t, 1, calls)
	require.Equal(t, orders.LaunchClosed, ln.State())
	require.Nil(t, l.Active())
}
