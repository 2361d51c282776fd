// internal/app/layout.go
package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tflash/internal/ui/headerbar"
	"github.com/llehouerou/tflash/internal/ui/layout"
	"github.com/llehouerou/tflash/internal/ui/playerbar"
)

const headerHeight = headerbar.Height

// playerBarHeight is zero while no briefing is current.
func (m Model) playerBarHeight() int {
	if !m.state.HasTrack() {
		return 0
	}
	return playerbar.Height(m.displayMode)
}

func (m Model) footerHeight() int {
	return lipgloss.Height(m.help.View(m.helpKeys))
}

func (m Model) contentHeight() int {
	return layout.ContentHeight(m.height, layout.ContentOpts{
		HeaderHeight:    headerHeight,
		PlayerBarHeight: m.playerBarHeight(),
		FooterHeight:    m.footerHeight(),
	})
}

// resize recomputes panel sizes after the window, the player bar or the
// help line changed.
func (m *Model) resize() {
	if m.width == 0 {
		return
	}
	m.help.Width = m.width
	m.narrow = layout.IsNarrowMode(m.width)

	content := m.contentHeight()
	m.libraryWidth = layout.LibraryWidth(m.width, m.narrow)
	m.libraryHeight = layout.LibraryHeight(content, m.narrow)

	m.library.SetSize(m.libraryWidth, m.libraryHeight)
	m.queue.SetSize(layout.QueueWidth(m.width, m.narrow), layout.QueueHeight(content, m.narrow))
	// re-clamp scroll offsets to the new heights
	m.library.SetItems(m.library.Items())
	m.queue.SetState(m.state)
}
