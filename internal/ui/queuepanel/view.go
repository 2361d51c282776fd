package queuepanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tflash/internal/playlist"
	"github.com/llehouerou/tflash/internal/ui/render"
	"github.com/llehouerou/tflash/internal/ui/styles"
)

// View renders the queue panel.
func (m Model) View() string {
	if !m.Sized() {
		return ""
	}

	innerWidth := m.InnerWidth()
	listHeight := m.ListHeight()

	content := m.renderHeader(innerWidth) + "\n" +
		render.Separator(innerWidth) + "\n" +
		m.renderEntries(innerWidth, listHeight)

	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Render(content)
}

// renderHeader renders "Up next (3)" with the total listening time on the
// right.
func (m Model) renderHeader(innerWidth int) string {
	left := fmt.Sprintf("Up next (%d)", m.Len())
	right := ""
	if m.Len() > 0 {
		right = render.Span(playlist.TotalDuration(m.Items())) + " "
	}
	left = render.TruncateAndPad(left, max(innerWidth-lipgloss.Width(right), 0))
	return styles.T().S().Title.Render(left) + styles.T().S().Muted.Render(right)
}

func (m Model) renderEntries(innerWidth, listHeight int) string {
	if m.Len() == 0 {
		lines := make([]string, 0, max(listHeight, 1))
		lines = append(lines, styles.T().S().Subtle.Render(render.TruncateAndPad("  Queue is empty", innerWidth)))
		for range listHeight - 1 {
			lines = append(lines, render.EmptyLine(innerWidth))
		}
		return strings.Join(lines, "\n")
	}

	start, end := m.VisibleRange()
	lines := make([]string, 0, listHeight)
	for i := range listHeight {
		idx := start + i
		if idx >= end {
			lines = append(lines, render.EmptyLine(innerWidth))
			continue
		}
		lines = append(lines, m.renderEntry(m.Items()[idx], idx, innerWidth))
	}
	return strings.Join(lines, "\n")
}

// renderEntry renders " 1. Title    Today, 7:00 AM  12:34".
func (m Model) renderEntry(e playlist.Entry, idx, width int) string {
	num := fmt.Sprintf("%2d. ", idx+1)
	length := " " + render.Clock(e.Track.Duration) + " "
	contentWidth := max(width-lipgloss.Width(num)-lipgloss.Width(length), 0)

	dateWidth := contentWidth / 3
	titleWidth := contentWidth - dateWidth

	line := num +
		render.TruncateAndPad(e.Track.Title, titleWidth) +
		render.TruncateAndPad(e.Track.Date, dateWidth) +
		length

	if idx == m.SelectedIndex() && m.IsFocused() {
		return styles.T().S().Cursor.Render(line)
	}
	return styles.T().S().Base.Render(line)
}
