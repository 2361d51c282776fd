// Package cursor tracks the selected row and scroll window of a panel list.
package cursor

// Cursor holds a selection and the first visible row. List length and
// viewport height are passed in on every call because panels resize and
// the playback queue changes under them.
type Cursor struct {
	pos    int
	offset int
	margin int // rows kept visible above and below the selection
}

// New creates a Cursor that keeps margin rows of context around the
// selection when the viewport allows it.
func New(margin int) Cursor {
	return Cursor{margin: max(margin, 0)}
}

// Pos returns the selected index.
func (c Cursor) Pos() int {
	return c.pos
}

// Offset returns the first visible index.
func (c Cursor) Offset() int {
	return c.offset
}

// Move shifts the selection by delta, clamped to the list.
func (c *Cursor) Move(delta, listLen, height int) {
	c.Jump(c.pos+delta, listLen, height)
}

// Jump selects pos, clamped to the list.
func (c *Cursor) Jump(pos, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(pos, listLen-1)
	c.scroll(listLen, height)
}

// Sync re-fits the cursor after the list or viewport changed size. It
// reports whether the selection moved.
func (c *Cursor) Sync(listLen, height int) bool {
	old := c.pos
	if listLen == 0 {
		c.pos, c.offset = 0, 0
		return old != 0
	}
	c.pos = clamp(c.pos, listLen-1)
	c.scroll(listLen, height)
	return c.pos != old
}

// VisibleRange returns the visible indices as [start, end).
func (c Cursor) VisibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	return c.offset, min(c.offset+height, listLen)
}

// HandleKey applies a navigation key and reports whether it was one.
func (c *Cursor) HandleKey(key string, listLen, height int) bool {
	switch key {
	case "j", "down":
		c.Move(1, listLen, height)
	case "k", "up":
		c.Move(-1, listLen, height)
	case "home":
		c.Jump(0, listLen, height)
	case "G", "end":
		c.Jump(listLen-1, listLen, height)
	case "pgdown", "ctrl+d":
		c.Move(max(height/2, 1), listLen, height)
	case "pgup", "ctrl+u":
		c.Move(-max(height/2, 1), listLen, height)
	default:
		return false
	}
	return true
}

// scroll moves the window so the selection sits inside it with the margin
// honored. Short viewports shrink the margin so the selection can still
// reach every row.
func (c *Cursor) scroll(listLen, height int) {
	if height <= 0 {
		return
	}
	margin := min(c.margin, (height-1)/2)

	if c.pos < c.offset+margin {
		c.offset = c.pos - margin
	}
	if c.pos >= c.offset+height-margin {
		c.offset = c.pos - height + margin + 1
	}
	c.offset = clamp(c.offset, max(listLen-height, 0))
}

func clamp(v, maxVal int) int {
	return max(0, min(v, maxVal))
}
