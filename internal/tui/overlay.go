package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderModal draws modal as a bordered card centred over base, keeping the
// base rows visible around it.
func renderModal(base, modal string, width, height int) string {
	if width <= 0 || height <= 0 {
		return base + "\n\n" + modal
	}
	canvas := fitCanvas(base, width, height)
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2).
		Render(modal)
	cardLines := splitToLines(card, 0)
	cardWidth := maxLineWidth(cardLines)
	if cardWidth <= 0 || len(cardLines) == 0 {
		return canvas
	}
	x := max((width-cardWidth)/2, 0)
	y := max((height-len(cardLines))/2, 0)
	return overlayAt(canvas, cardLines, x, y, width, height)
}

func overlayAt(base string, overlay []string, x, y, width, height int) string {
	baseLines := splitToLines(base, height)
	overlayWidth := maxLineWidth(overlay)
	for i, line := range overlay {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		target := padRight(baseLines[row], width)
		left := ansi.Truncate(target, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		card := padRight(line, overlayWidth)
		pos := x + ansi.StringWidth(card)
		right := dropColumns(target, pos)
		if gap := width - pos - ansi.StringWidth(right); gap > 0 {
			right = strings.Repeat(" ", gap) + right
		}
		baseLines[row] = left + card + right
	}
	return strings.Join(baseLines, "\n")
}

func fitCanvas(s string, width, height int) string {
	lines := splitToLines(s, height)
	for i := range lines {
		lines[i] = padRight(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

func splitToLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	for height > 0 && len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func maxLineWidth(lines []string) int {
	widest := 0
	for _, line := range lines {
		widest = max(widest, ansi.StringWidth(line))
	}
	return widest
}

func dropColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	return strings.TrimPrefix(s, ansi.Truncate(s, cols, ""))
}

// padRight truncates or pads s to exactly width display columns.
func padRight(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// cell fits s into width columns, marking cut text with an ellipsis.
func cell(s string, width int) string {
	if ansi.StringWidth(s) > width {
		s = ansi.Truncate(s, width, "…")
	}
	return padRight(s, width)
}
