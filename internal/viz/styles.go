package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles is the set of lipgloss styles derived from a Theme.
type styles struct {
	canvas lipgloss.Style
	panel  lipgloss.Style
	header lipgloss.Style
	key    lipgloss.Style
	value  lipgloss.Style
	muted  lipgloss.Style
	graph  lipgloss.Style
	help   lipgloss.Style

	playing  lipgloss.Style
	paused   lipgloss.Style
	finished lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas: lipgloss.NewStyle().Padding(1, 2),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2).
			Width(44),
		header:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		key:      lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:    lipgloss.NewStyle().Foreground(t.Text),
		muted:    lipgloss.NewStyle().Foreground(t.Muted),
		graph:    lipgloss.NewStyle().Foreground(t.Accent),
		help:     lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		playing:  lipgloss.NewStyle().Bold(true).Foreground(t.Good),
		paused:   lipgloss.NewStyle().Bold(true).Foreground(t.Warn),
		finished: lipgloss.NewStyle().Bold(true).Foreground(t.Muted),
	}
}

// swatch renders text in the given hex color.
func swatch(hex, text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(true).Render(text)
}

// ProgressBar renders a bar filled to percent (0..1).
func ProgressBar(percent float64, width int, style lipgloss.Style) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return style.Render(strings.Repeat("█", filled) + strings.Repeat("░", width-filled))
}
