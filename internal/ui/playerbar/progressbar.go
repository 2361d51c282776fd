package playerbar

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tflash/internal/ui/render"
)

const (
	filledBlock = "▓"
	emptyBlock  = "░"
	minBarWidth = 10
)

// filledCells returns how many of width cells represent position.
func filledCells(position, duration time.Duration, width int) int {
	if duration <= 0 || width <= 0 {
		return 0
	}
	ratio := min(max(float64(position)/float64(duration), 0), 1)
	return min(int(float64(width)*ratio), width)
}

// RenderProgressBar renders a block-style progress bar.
// Format: ▶  1:23  ▓▓▓▓▓░░░░░  4:56
func RenderProgressBar(position, duration time.Duration, width int, playing bool) string {
	st := status(playing)
	posStr := render.Clock(position)
	durStr := render.Clock(duration)

	fixedWidth := lipgloss.Width(st) + 2 + lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth
	if barWidth < 3 {
		return st + "  " + posStr + " / " + durStr
	}

	ratio := 0.0
	if duration > 0 {
		ratio = float64(position) / float64(duration)
	}
	bar := render.Bar(ratio, barWidth, filledBlock, emptyBlock)

	return st + "  " + posStr + "  " + bar + "  " + durStr
}
