// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for consistent sizing across UI components.
const (
	// ScrollMargin is the number of items to keep visible above/below the cursor.
	ScrollMargin = 5

	// BorderSize is the space a rounded panel border takes on each axis.
	BorderSize = 2

	// HeaderHeight is the panel title row plus its separator.
	HeaderHeight = 2

	// PanelOverhead is the vertical space a panel spends outside its list.
	PanelOverhead = BorderSize + HeaderHeight

	// MinProgressBarWidth is the narrowest usable progress bar.
	MinProgressBarWidth = 5

	// MinExpandedWidth is the narrowest player bar that gets the expanded view.
	MinExpandedWidth = 40
)
