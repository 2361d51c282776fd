package app

import (
	"github.com/llehouerou/tflash/internal/playback"
)

// StateMsg carries a new playback snapshot from the service subscription.
type StateMsg playback.State

// ServiceClosedMsg is sent once the playback service has shut down.
type ServiceClosedMsg struct{}

// GenerateResultMsg reports the outcome of a "generate now" request.
type GenerateResultMsg struct {
	Err error
}

// clearStatusMsg expires the status line set with the same sequence number.
type clearStatusMsg struct {
	seq int
}
