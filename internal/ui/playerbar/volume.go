package playerbar

import (
	"fmt"
	"math"
	"strconv"

	"github.com/llehouerou/tflash/internal/ui/render"
)

const volumeCells = 10

// RenderVolumePercent formats a [0,1] volume as a percentage.
func RenderVolumePercent(v float64) string {
	return strconv.Itoa(int(math.Round(v*100))) + "%"
}

// RenderVolume renders a labeled gauge, e.g. "vol ▮▮▮▮▮▮▮▯▯▯ 70%".
func RenderVolume(v float64) string {
	return "vol " + render.Bar(v, volumeCells, "▮", "▯") + " " + RenderVolumePercent(v)
}

// RenderRate formats a playback rate the way speed pickers show it: 1×,
// 1.25×, 0.5×.
func RenderRate(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64) + "×"
}

// renderQueued describes the queue length under the now-playing panel.
func renderQueued(n int) string {
	switch n {
	case 0:
		return "queue empty"
	case 1:
		return "1 up next"
	default:
		return fmt.Sprintf("%d up next", n)
	}
}
