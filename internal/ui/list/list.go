// Package list provides a generic scrollable list component.
package list

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tflash/internal/ui"
	"github.com/llehouerou/tflash/internal/ui/cursor"
)

// Action represents what happened during Update.
type Action int

const (
	ActionNone   Action = iota
	ActionEnter         // enter, or a click on a row
	ActionAdd           // a
	ActionDelete        // d or delete
)

// Result is returned from Update to tell the parent what happened.
type Result struct {
	Action Action
	Index  int // item the action applies to, -1 if none
}

var none = Result{Index: -1}

// Model is a scrollable list of T. It handles navigation and mouse input and
// reports actions; the parent renders the rows returned by VisibleRange.
type Model[T any] struct {
	ui.Base
	items  []T
	cursor cursor.Cursor
}

// New creates a new list with the given scroll margin.
func New[T any](margin int) Model[T] {
	return Model[T]{cursor: cursor.New(margin)}
}

// SetItems replaces all items and clamps the cursor to the new bounds.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.cursor.Sync(len(items), m.ListHeight())
}

// SetSize resizes the panel and keeps the selection in view.
func (m *Model[T]) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.cursor.Sync(len(m.items), m.ListHeight())
}

// Items returns the current items.
func (m Model[T]) Items() []T {
	return m.items
}

// Len returns the number of items.
func (m Model[T]) Len() int {
	return len(m.items)
}

// Selected returns the item under the cursor.
func (m Model[T]) Selected() (T, bool) {
	if len(m.items) == 0 || m.cursor.Pos() >= len(m.items) {
		var zero T
		return zero, false
	}
	return m.items[m.cursor.Pos()], true
}

// SelectedIndex returns the current cursor position.
func (m Model[T]) SelectedIndex() int {
	return m.cursor.Pos()
}

// VisibleRange returns [start, end) indices for rendering.
func (m Model[T]) VisibleRange() (start, end int) {
	return m.cursor.VisibleRange(len(m.items), m.ListHeight())
}

// Select moves the cursor to index i.
func (m *Model[T]) Select(i int) {
	m.cursor.Jump(i, len(m.items), m.ListHeight())
}

// Update handles a key or mouse message. Unfocused lists ignore everything.
func (m *Model[T]) Update(msg tea.Msg) Result {
	if !m.IsFocused() {
		return none
	}

	n := len(m.items)
	height := m.ListHeight()

	switch msg := msg.(type) {
	case tea.MouseMsg:
		// rows start below the top border, header and separator
		res, row := m.cursor.HandleMouse(msg, n, height, ui.PanelOverhead-1)
		if res == cursor.MouseClicked {
			return Result{Action: ActionEnter, Index: row}
		}

	case tea.KeyMsg:
		if m.cursor.HandleKey(msg.String(), n, height) {
			return none
		}
		if n == 0 {
			return none
		}
		switch msg.String() {
		case "enter":
			return Result{Action: ActionEnter, Index: m.cursor.Pos()}
		case "a":
			return Result{Action: ActionAdd, Index: m.cursor.Pos()}
		case "d", "delete":
			return Result{Action: ActionDelete, Index: m.cursor.Pos()}
		}
	}

	return none
}
