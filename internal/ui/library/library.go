// Package library lists the catalog briefings and marks the one the player
// is on.
package library

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tflash/internal/briefing"
	"github.com/llehouerou/tflash/internal/playback"
	"github.com/llehouerou/tflash/internal/ui"
	"github.com/llehouerou/tflash/internal/ui/action"
	"github.com/llehouerou/tflash/internal/ui/list"
	"github.com/llehouerou/tflash/internal/ui/render"
	"github.com/llehouerou/tflash/internal/ui/styles"
)

// Source tags the actions this panel emits.
const Source = "library"

// Play requests that a briefing start now.
type Play struct {
	Track briefing.Track
}

// ActionType implements action.Action.
func (a Play) ActionType() string { return "library.play" }

// Enqueue requests that a briefing be added to the queue.
type Enqueue struct {
	Track briefing.Track
}

// ActionType implements action.Action.
func (a Enqueue) ActionType() string { return "library.enqueue" }

const statusWidth = len(briefing.StatusScheduled)

// Model represents the library panel state.
type Model struct {
	list.Model[briefing.Entry]
	currentID string
	playing   bool
}

// New creates a library panel over entries.
func New(entries []briefing.Entry) Model {
	m := Model{Model: list.New[briefing.Entry](ui.ScrollMargin)}
	m.SetItems(entries)
	return m
}

// SetState records which briefing is current.
func (m *Model) SetState(st playback.State) {
	m.currentID = ""
	if st.CurrentTrack != nil {
		m.currentID = st.CurrentTrack.ID
	}
	m.playing = st.IsPlaying
}

// Update handles messages for the library panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	res := m.Model.Update(msg)
	if res.Index < 0 || res.Index >= m.Len() {
		return m, nil
	}
	t := m.Items()[res.Index].Track.Clone()

	var a action.Action
	switch res.Action { //nolint:exhaustive // library rows cannot be deleted
	case list.ActionEnter:
		a = Play{Track: t}
	case list.ActionAdd:
		a = Enqueue{Track: t}
	default:
		return m, nil
	}
	return m, action.Cmd(Source, a)
}

// View renders the library panel.
func (m Model) View() string {
	if !m.Sized() {
		return ""
	}

	innerWidth := m.InnerWidth()
	listHeight := m.ListHeight()

	header := styles.T().S().Title.Render(render.TruncateAndPad(fmt.Sprintf("Library (%d)", m.Len()), innerWidth))

	start, end := m.VisibleRange()
	lines := make([]string, 0, listHeight)
	for i := range listHeight {
		idx := start + i
		if idx >= end {
			lines = append(lines, render.EmptyLine(innerWidth))
			continue
		}
		lines = append(lines, m.renderRow(m.Items()[idx], idx, innerWidth))
	}

	content := header + "\n" + render.Separator(innerWidth) + "\n" + strings.Join(lines, "\n")
	return styles.PanelStyle(m.IsFocused()).Width(innerWidth).Render(content)
}

// renderRow renders "▶ Title   Date   Topics   12:34  new".
func (m Model) renderRow(e briefing.Entry, idx, width int) string {
	s := styles.T().S()
	isCurrent := e.ID == m.currentID

	marker := "  "
	if isCurrent {
		marker = "⏸ "
		if m.playing {
			marker = "▶ "
		}
	}
	status := render.Pad(string(e.Status), statusWidth)
	suffix := " " + render.Clock(e.Duration) + " " + status + " "

	contentWidth := max(width-lipgloss.Width(marker)-lipgloss.Width(suffix), 0)
	titleWidth := contentWidth * 2 / 5
	dateWidth := contentWidth / 4
	topicWidth := contentWidth - titleWidth - dateWidth

	line := marker +
		render.TruncateAndPad(e.Title, titleWidth) +
		render.TruncateAndPad(e.Date, dateWidth) +
		render.TruncateAndPad(e.TopicLine(), topicWidth)

	selected := idx == m.SelectedIndex() && m.IsFocused()
	style := s.Base
	switch {
	case selected && isCurrent:
		style = s.Cursor.Inherit(s.Playing)
	case selected:
		style = s.Cursor
	case isCurrent:
		style = s.Playing
	case e.Status == briefing.StatusPlayed:
		style = s.Muted
	}
	if selected {
		return style.Render(line + suffix)
	}
	return style.Render(line+" "+render.Clock(e.Duration)+" ") +
		styles.T().Status(e.Status).Render(status) +
		style.Render(" ")
}
