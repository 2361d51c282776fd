// Package queuepanel shows the briefings waiting to play after the current
// one.
package queuepanel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tflash/internal/playback"
	"github.com/llehouerou/tflash/internal/playlist"
	"github.com/llehouerou/tflash/internal/ui"
	"github.com/llehouerou/tflash/internal/ui/action"
	"github.com/llehouerou/tflash/internal/ui/list"
)

// Model represents the queue panel state.
type Model struct {
	list.Model[playlist.Entry]
}

// New creates an empty queue panel.
func New() Model {
	return Model{Model: list.New[playlist.Entry](ui.ScrollMargin)}
}

// SetState replaces the rows with the snapshot's queue.
func (m *Model) SetState(st playback.State) {
	m.SetItems(st.Queue)
}

// Update handles messages for the queue panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "c" && m.IsFocused() && m.Len() > 0 {
		return m, emit(ClearQueue{})
	}

	res := m.Model.Update(msg)
	if res.Index < 0 || res.Index >= m.Len() {
		return m, nil
	}
	key := m.Items()[res.Index].Key

	switch res.Action { //nolint:exhaustive // adding does not apply to the queue
	case list.ActionEnter:
		return m, emit(PlayEntry{Key: key})
	case list.ActionDelete:
		return m, emit(RemoveEntry{Key: key})
	}
	return m, nil
}

func emit(a action.Action) tea.Cmd {
	return action.Cmd(Source, a)
}
