package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Gradient renders bold text whose foreground blends from one hex color to
// another, one grapheme cluster at a time. Non-hex colors fall back to a
// plain bold rendering in from.
func Gradient(text string, from, to lipgloss.Color) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	if len(clusters) == 0 {
		return ""
	}

	c1, err1 := colorful.Hex(string(from))
	c2, err2 := colorful.Hex(string(to))
	if len(clusters) == 1 || err1 != nil || err2 != nil {
		return lipgloss.NewStyle().Bold(true).Foreground(from).Render(text)
	}

	var b strings.Builder
	last := float64(len(clusters) - 1)
	for i, cluster := range clusters {
		// HCL keeps the blend perceptually even
		c := c1.BlendHcl(c2, float64(i)/last).Clamped()
		b.WriteString(lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Hex())).
			Render(cluster))
	}
	return b.String()
}

// Brand renders the application name in the theme's gradient.
func Brand(text string) string {
	t := T()
	return Gradient(text, t.Primary, t.Secondary)
}
