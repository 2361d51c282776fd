// Package layout provides pure functions for UI dimension calculations.
package layout

// NarrowThreshold is the terminal width below which the queue panel is
// stacked under the library instead of beside it.
const NarrowThreshold = 100

// ContentOpts contains the parameters needed to calculate content height.
type ContentOpts struct {
	HeaderHeight    int
	PlayerBarHeight int // 0 when no briefing is current
	FooterHeight    int // help line(s) and status
}

// ContentHeight calculates the height left for the library and queue panels.
func ContentHeight(windowHeight int, opts ContentOpts) int {
	return max(windowHeight-opts.HeaderHeight-opts.PlayerBarHeight-opts.FooterHeight, 0)
}

// IsNarrowMode returns true if the terminal width is below the narrow threshold.
func IsNarrowMode(width int) bool {
	return width < NarrowThreshold
}

// LibraryHeight returns 3/5 of the content height in narrow mode (queue
// below), the full content height otherwise.
func LibraryHeight(contentHeight int, narrowMode bool) int {
	if narrowMode {
		return contentHeight * 3 / 5
	}
	return contentHeight
}

// QueueHeight returns what the library leaves in narrow mode, the full
// content height otherwise.
func QueueHeight(contentHeight int, narrowMode bool) int {
	if narrowMode {
		return contentHeight - LibraryHeight(contentHeight, narrowMode)
	}
	return contentHeight
}

// LibraryWidth returns 3/5 of the window side by side, all of it in narrow
// mode.
func LibraryWidth(windowWidth int, narrowMode bool) int {
	if narrowMode {
		return windowWidth
	}
	return windowWidth * 3 / 5
}

// QueueWidth returns the remaining width after the library side by side,
// all of it in narrow mode.
func QueueWidth(windowWidth int, narrowMode bool) int {
	if narrowMode {
		return windowWidth
	}
	return windowWidth - LibraryWidth(windowWidth, narrowMode)
}
