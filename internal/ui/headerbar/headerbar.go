// internal/ui/headerbar/headerbar.go
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tflash/internal/ui/render"
	"github.com/llehouerou/tflash/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// Panels are the focusable panels, in tab order.
var Panels = []string{"Library", "Queue"}

// Render returns the header bar: the brand on the left, the panel tabs with
// the focused one highlighted, and status right-aligned.
func Render(focused string, status string, width int) string {
	brand := styles.Brand("tflash")
	if width < 20 {
		return brand
	}

	t := styles.T()
	active := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	inactive := t.S().Muted
	sep := t.S().Subtle.Render(" │ ")

	tabs := make([]string, 0, len(Panels))
	for _, p := range Panels {
		if p == focused {
			tabs = append(tabs, active.Render(p))
		} else {
			tabs = append(tabs, inactive.Render(p))
		}
	}

	left := brand + "   " + strings.Join(tabs, sep)
	room := width - lipgloss.Width(left) - 2
	if status == "" || room < 4 {
		return left
	}
	return render.Row(left, t.S().Muted.Render(render.TruncateEllipsis(status, room)), width)
}
