package styles

import "github.com/charmbracelet/lipgloss"

// PanelStyle returns the rounded panel border, highlighted when focused.
func PanelStyle(focused bool) lipgloss.Style {
	t := T()
	border := t.Border
	if focused {
		border = t.BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}
