package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestRenderModalKeepsBaseRows(t *testing.T) {
	base := strings.Join([]string{
		"row-0................",
		"row-1................",
		"row-2................",
		"row-3................",
		"row-4................",
		"row-5................",
		"row-6................",
		"row-7................",
		"row-8................",
	}, "\n")
	out := renderModal(base, "Editor", 20, 9)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 9)
	require.Contains(t, out, "Editor")
	require.Contains(t, lines[0], "row-0")
	require.Contains(t, lines[8], "row-8")
	for _, l := range lines {
		require.LessOrEqual(t, ansi.StringWidth(l), 20)
	}
}

func TestCellFitsWidth(t *testing.T) {
	require.Equal(t, "abc  ", cell("abc", 5))
	got := cell("Troca de lâmpada", 8)
	require.Equal(t, 8, ansi.StringWidth(got))
	require.True(t, strings.HasSuffix(got, "…"))
}
