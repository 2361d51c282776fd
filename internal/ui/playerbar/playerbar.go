// Package playerbar renders the mini player and the now-playing panel from a
// playback snapshot.
package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tflash/internal/playback"
	"github.com/llehouerou/tflash/internal/ui"
	"github.com/llehouerou/tflash/internal/ui/render"
)

// DisplayMode controls the player bar appearance.
type DisplayMode int

const (
	ModeCompact  DisplayMode = iota // Single-line mini player
	ModeExpanded                    // Now-playing panel
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
	separator   = "   "
)

// State holds everything needed to render the player bar.
type State struct {
	HasTrack     bool
	Playing      bool
	Title        string
	Date         string
	Topics       string
	Position     time.Duration
	Duration     time.Duration
	Volume       float64
	PlaybackRate float64
	Queued       int
	Err          string
	DisplayMode  DisplayMode
}

// NewState projects a playback snapshot onto the bar.
func NewState(st playback.State, mode DisplayMode) State {
	s := State{
		Playing:      st.IsPlaying,
		Position:     st.CurrentTime,
		Duration:     st.Duration,
		Volume:       st.Volume,
		PlaybackRate: st.PlaybackRate,
		Queued:       len(st.Queue),
		DisplayMode:  mode,
	}
	if st.Err != nil {
		s.Err = st.Err.Error()
	}
	if t := st.CurrentTrack; t != nil {
		s.HasTrack = true
		s.Title = t.Title
		s.Date = t.Date
		s.Topics = t.TopicLine()
		if s.Duration == 0 {
			// the resource has not reported yet; show the catalog length
			s.Duration = t.Duration
		}
	}
	return s
}

// Height returns the total height of the player bar for the given mode.
func Height(mode DisplayMode) int {
	if mode == ModeExpanded {
		return expandedRows + ui.BorderSize
	}
	return 1 + ui.BorderSize
}

// Render returns the player bar string for the given width, or "" when no
// briefing is current.
func Render(s State, width int) string {
	if !s.HasTrack {
		return ""
	}
	if s.DisplayMode == ModeExpanded && width-ui.BorderSize >= ui.MinExpandedWidth {
		return renderExpanded(s, width)
	}
	return renderCompact(s, width)
}

func status(playing bool) string {
	if playing {
		return playSymbol
	}
	return pauseSymbol
}

func renderCompact(s State, width int) string {
	// border and padding
	innerWidth := max(width-6, 0)

	title := s.Title
	if title == "" {
		title = "Untitled briefing"
	}
	timeStr := render.Clock(s.Position) + " / " + render.Clock(s.Duration)
	meta := RenderRate(s.PlaybackRate) + "  " + RenderVolumePercent(s.Volume)

	sepWidth := lipgloss.Width(separator)
	fixed := lipgloss.Width(playSymbol+"  ") + lipgloss.Width(timeStr) + lipgloss.Width(meta) + sepWidth*3
	available := innerWidth - fixed - minBarWidth

	titleWidth := lipgloss.Width(title)
	topicsWidth := lipgloss.Width(s.Topics)

	var content strings.Builder
	used := 0
	switch {
	case s.Topics != "" && titleWidth+sepWidth+topicsWidth <= available:
		content.WriteString(titleStyle().Render(title))
		content.WriteString(separator)
		content.WriteString(topicStyle().Render(s.Topics))
		used = titleWidth + sepWidth + topicsWidth
	case titleWidth <= available:
		content.WriteString(titleStyle().Render(title))
		used = titleWidth
	default:
		w := max(available, minBarWidth)
		content.WriteString(titleStyle().Render(render.TruncateEllipsis(title, w)))
		used = min(titleWidth, w)
	}

	barWidth := max(innerWidth-used-fixed, ui.MinProgressBarWidth)
	filled := filledCells(s.Position, s.Duration, barWidth)

	content.WriteString(separator)
	content.WriteString(status(s.Playing))
	content.WriteString("  ")
	content.WriteString(progressFilledStyle().Render(strings.Repeat("━", filled)))
	content.WriteString(progressEmptyStyle().Render(strings.Repeat("─", barWidth-filled)))
	content.WriteString(separator)
	content.WriteString(timeStyle().Render(timeStr))
	content.WriteString(separator)
	content.WriteString(metaStyle().Render(meta))

	return barStyle().Padding(0, 2).Width(width - 2).Render(content.String())
}
