package styles

import "github.com/charmbracelet/lipgloss"

// DefaultAccent is used until the host reports its own display style.
const DefaultAccent = lipgloss.Color("63")

var (
	Title    = lipgloss.NewStyle().Bold(true)
	Selected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	Focused  = lipgloss.NewStyle().Reverse(true)
	Dim      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	Warn     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	Help     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func Panel(accent lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
}

// Button renders a toolbar button, greyed out when there is nothing to press it for.
func Button(label string, enabled bool) string {
	if !enabled {
		return Dim.Render("[" + label + "]")
	}
	return Title.Render("[" + label + "]")
}
