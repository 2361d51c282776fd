package cursor

import tea "github.com/charmbracelet/bubbletea"

// MouseResult reports what a mouse event did to the cursor.
type MouseResult int

const (
	MouseIgnored MouseResult = iota
	MouseScrolled
	MouseClicked
)

// wheelStep is how many rows one wheel notch moves.
const wheelStep = 1

// HandleMouse moves the cursor for wheel events and jumps to the clicked row
// for left clicks. headerRows is the number of rows above the first list row,
// relative to msg.Y. The returned index is the clicked item, or -1.
func (c *Cursor) HandleMouse(msg tea.MouseMsg, listLen, height, headerRows int) (MouseResult, int) {
	if msg.Action != tea.MouseActionPress || listLen == 0 {
		return MouseIgnored, -1
	}

	switch msg.Button { //nolint:exhaustive // other buttons are ignored
	case tea.MouseButtonWheelUp:
		c.Move(-wheelStep, listLen, height)
		return MouseScrolled, -1
	case tea.MouseButtonWheelDown:
		c.Move(wheelStep, listLen, height)
		return MouseScrolled, -1
	case tea.MouseButtonLeft:
		row := msg.Y - headerRows
		if row < 0 || row >= height {
			return MouseIgnored, -1
		}
		idx := c.offset + row
		if idx >= listLen {
			return MouseIgnored, -1
		}
		c.Jump(idx, listLen, height)
		return MouseClicked, idx
	}
	return MouseIgnored, -1
}
