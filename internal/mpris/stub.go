//go:build !linux

package mpris

import (
	"github.com/charmbracelet/log"

	"github.com/llehouerou/tflash/internal/playback"
)

// Adapter does nothing outside Linux; there is no session bus to publish on.
type Adapter struct{}

func New(playback.Service, *log.Logger) (*Adapter, error) {
	return &Adapter{}, nil
}

func (*Adapter) Close() error { return nil }
