//go:build linux

// Package mpris publishes the briefing player on the session bus as
// org.mpris.MediaPlayer2.tflash, so media keys and desktop widgets can
// drive it.
package mpris

import (
	"github.com/charmbracelet/log"
	"github.com/quarckster/go-mpris-server/pkg/server"

	"github.com/llehouerou/tflash/internal/playback"
)

const (
	busName  = "tflash"
	identity = "tflash news briefings"
)

// Adapter serves one playback service over MPRIS.
type Adapter struct {
	server *server.Server
	logger *log.Logger
}

// New registers the adapter and serves it in the background. Bus failures
// are logged; the player keeps working without desktop integration.
func New(service playback.Service, logger *log.Logger) (*Adapter, error) {
	if logger == nil {
		logger = log.Default()
	}
	a := &Adapter{
		logger: logger,
		server: server.NewServer(busName, identityAdapter{}, &playerAdapter{service: service}),
	}

	go func() {
		if err := a.server.Listen(); err != nil {
			a.logger.Warn("listen", "err", err)
		}
	}()
	return a, nil
}

// Close releases the bus name.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// identityAdapter answers org.mpris.MediaPlayer2. The dashboard owns its
// window and lifetime, so Raise and Quit are refused.
type identityAdapter struct{}

func (identityAdapter) Raise() error                { return nil }
func (identityAdapter) Quit() error                 { return nil }
func (identityAdapter) CanQuit() (bool, error)      { return false, nil }
func (identityAdapter) CanRaise() (bool, error)     { return false, nil }
func (identityAdapter) HasTrackList() (bool, error) { return false, nil }
func (identityAdapter) Identity() (string, error)   { return identity, nil }

//nolint:revive // name fixed by the MPRIS interface
func (identityAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "http", "https"}, nil
}

func (identityAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav", "audio/x-wav"}, nil
}
