package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/ordens/internal/orders"
)

// Catppuccin Mocha
var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorMuted    lipgloss.Color = "#a6adc8"
	colorBorder   lipgloss.Color = "#585b70"
	colorAccent   lipgloss.Color = "#89b4fa"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorWarning  lipgloss.Color = "#f9e2af"
	colorError    lipgloss.Color = "#f38ba8"
	colorSurface0 lipgloss.Color = "#313244"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(colorText)
	headerStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Background(colorSurface0).Foreground(colorText)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	keyStyle      = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	disabledStyle = lipgloss.NewStyle().Foreground(colorBorder).Strikethrough(true)
	filterStyle   = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface0).Padding(0, 1)

	noticeStyles = map[orders.Severity]lipgloss.Style{
		orders.SeverityInfo:    lipgloss.NewStyle().Foreground(colorSuccess),
		orders.SeverityWarning: lipgloss.NewStyle().Foreground(colorWarning),
		orders.SeverityError:   lipgloss.NewStyle().Foreground(colorError).Bold(true),
	}

	statusColors = map[orders.Status]lipgloss.Color{
		orders.StatusOpen:       colorAccent,
		orders.StatusInProgress: colorWarning,
		orders.StatusDone:       colorSuccess,
		orders.StatusCancelled:  colorBorder,
	}
)

func statusStyle(stored string) lipgloss.Style {
	if c, ok := statusColors[orders.ParseStatus(stored)]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return mutedStyle
}
