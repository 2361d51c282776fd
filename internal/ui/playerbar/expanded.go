package playerbar

import (
	"strings"

	"github.com/llehouerou/tflash/internal/ui/render"
)

// Must match Height(ModeExpanded) minus the border.
const expandedRows = 6

// renderExpanded renders the now-playing panel:
//
//	Morning Briefing
//	Today, 7:00 AM · Technology · Business · World
//
//	▶  1:23  ▓▓▓▓▓░░░░░░░░░░░░  12:34
//	vol ▮▮▮▮▮▮▮▯▯▯ 70%   1.25×   2 up next
//	(error line, when the resource failed)
func renderExpanded(s State, width int) string {
	inner := max(width-4, 0)

	title := s.Title
	if title == "" {
		title = "Untitled briefing"
	}
	sub := s.Date
	if s.Topics != "" {
		if sub != "" {
			sub += " · "
		}
		sub += s.Topics
	}

	controls := render.Row(
		RenderVolume(s.Volume),
		RenderRate(s.PlaybackRate)+separator+renderQueued(s.Queued),
		inner,
	)

	lines := []string{
		titleStyle().Render(render.TruncateEllipsis(render.Sanitize(title), inner)),
		topicStyle().Render(render.TruncateEllipsis(render.Sanitize(sub), inner)),
		"",
		RenderProgressBar(s.Position, s.Duration, inner, s.Playing),
		metaStyle().Render(controls),
		"",
	}
	if s.Err != "" {
		lines[5] = errorStyle().Render(render.TruncateEllipsis(s.Err, inner))
	}

	return barStyle().Padding(0, 1).Width(width - 2).Render(strings.Join(lines[:expandedRows], "\n"))
}
