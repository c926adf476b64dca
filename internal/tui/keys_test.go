package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestKeyRegistryScopes(t *testing.T) {
	enter := tea.KeyMsg{Type: tea.KeyEnter}
	require.Equal(t, actOpen, keys.Action(enter, scopeList))
	require.Equal(t, actApply, keys.Action(enter, scopeSearch))
	require.Equal(t, actSave, keys.Action(enter, scopeEditor))

	ctrlC := tea.KeyMsg{Type: tea.KeyCtrlC}
	for _, scope := range []string{scopeList, scopeSearch, scopeEditor} {
		require.Equal(t, actQuit, keys.Action(ctrlC, scope))
	}

	q := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
	require.Equal(t, actQuit, keys.Action(q, scopeList))
	require.Empty(t, keys.Action(q, scopeEditor))
	require.Empty(t, keys.Action(q, scopeSearch))
}

func TestHelpFor(t *testing.T) {
	help := helpFor(scopeList, nil)
	require.Contains(t, help, "[n] New")
	require.Contains(t, help, "[/] Search")
	require.NotContains(t, help, "ctrl+c")
	require.Less(t, strings.Index(help, "Open"), strings.Index(help, "Quit"))

	require.Contains(t, helpFor(scopeEditor, nil), "[esc] cancel")
}
