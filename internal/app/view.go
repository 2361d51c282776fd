// internal/app/view.go
package app

import (
	"strings"

	"github.com/llehouerou/tflash/internal/ui/headerbar"
	"github.com/llehouerou/tflash/internal/ui/playerbar"
)

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	status := m.status
	if status == "" && m.generating {
		status = "Generating briefing…"
	}
	view := headerbar.Render(m.focus.String(), status, m.width)

	if m.narrow {
		view += "\n" + m.library.View() + "\n" + m.queue.View()
	} else {
		view += "\n" + joinColumnsView(m.library.View(), m.queue.View())
	}

	if bar := playerbar.Render(playerbar.NewState(m.state, m.displayMode), m.width); bar != "" {
		view += "\n" + bar
	}

	return view + "\n" + m.help.View(m.helpKeys)
}

// joinColumnsView places two blocks side by side, line by line.
func joinColumnsView(left, right string) string {
	leftLines := strings.Split(left, "\n")
	rightLines := strings.Split(right, "\n")

	lineCount := max(len(leftLines), len(rightLines))

	var sb strings.Builder
	for i := range lineCount {
		if i < len(leftLines) {
			sb.WriteString(leftLines[i])
		}
		if i < len(rightLines) {
			sb.WriteString(rightLines[i])
		}
		if i < lineCount-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
