package ui

// Base holds the focus and size every dashboard panel tracks. Embed it in
// a panel model:
//
//	type Model struct {
//	    ui.Base
//	    items []briefing.Entry
//	}
type Base struct {
	width, height int
	focused       bool
}

// SetFocused sets whether the panel is focused.
func (b *Base) SetFocused(focused bool) {
	b.focused = focused
}

// IsFocused returns whether the panel is focused.
func (b Base) IsFocused() bool {
	return b.focused
}

// SetSize sets the outer panel dimensions, border included.
func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// Width returns the outer panel width.
func (b Base) Width() int {
	return b.width
}

// Height returns the outer panel height.
func (b Base) Height() int {
	return b.height
}

// Sized reports whether the panel has been laid out yet.
func (b Base) Sized() bool {
	return b.width > 0 && b.height > 0
}

// InnerWidth is the width left inside the border.
func (b Base) InnerWidth() int {
	return max(b.width-BorderSize, 0)
}

// ListHeight is the number of rows left for items under the panel header.
func (b Base) ListHeight() int {
	return max(b.height-PanelOverhead, 0)
}
