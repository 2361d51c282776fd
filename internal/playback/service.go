// Package playback is the single source of truth for what is playing.
//
// The service owns at most one player.Resource, translates transport commands
// into resource operations, folds the resource's lifecycle events back into
// State, advances the queue when a briefing ends, and publishes every new
// State to its subscribers.
package playback

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/llehouerou/tflash/internal/briefing"
	"github.com/llehouerou/tflash/internal/player"
	"github.com/llehouerou/tflash/internal/playlist"
)

const (
	DefaultVolume       = 0.7
	DefaultPlaybackRate = 1.0
	MinPlaybackRate     = 0.5
	MaxPlaybackRate     = 2.0
	DefaultSkipInterval = 15 * time.Second
)

var (
	// ErrNoTrack is returned by Play when there is nothing to resume.
	ErrNoTrack = errors.New("no track to play")
	// ErrClosed is returned by commands issued after Close.
	ErrClosed = errors.New("playback service closed")
)

// Service defines the playback service contract.
type Service interface {
	// Transport
	Play() error                      // resume the bound resource, or bind the cued track
	PlayTrack(t briefing.Track) error // bind t and start it
	Pause()
	TogglePlayPause() error
	Seek(pos time.Duration)
	SkipForward()
	SkipBackward()
	SetVolume(v float64)
	SetPlaybackRate(r float64)

	// Cue makes t current without loading it; Play starts it at the given offset.
	Cue(t briefing.Track, at time.Duration)

	// Queue
	AddToQueue(t briefing.Track) string // returns the entry key
	RemoveFromQueue(id string)
	RemoveEntry(key string) bool
	// RestoreQueue appends saved entries keeping their keys. It never
	// starts playback.
	RestoreQueue(entries []playlist.Entry)
	ClearQueue()
	Advance() error

	// State
	Snapshot() State
	// Subscribe calls fn with the current state, then with every new one.
	Subscribe(fn func(State)) (unsubscribe func())
	// Watch is Subscribe over a channel that always holds the latest state.
	Watch() *Subscription

	// Lifecycle
	Close() error
}

// Config configures a Service.
type Config struct {
	Placeholder  string        // locator for tracks without audio
	SkipInterval time.Duration // step of SkipForward and SkipBackward
	Volume       float64
	PlaybackRate float64
	AutoPlay     bool // start the queue when a track is added to an idle service
	Logger       *log.Logger
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Placeholder:  player.PlaceholderScheme + "30s",
		SkipInterval: DefaultSkipInterval,
		Volume:       DefaultVolume,
		PlaybackRate: DefaultPlaybackRate,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Placeholder == "" {
		c.Placeholder = d.Placeholder
	}
	if c.SkipInterval <= 0 {
		c.SkipInterval = d.SkipInterval
	}
	if c.Volume == 0 && c.PlaybackRate == 0 {
		// zero Config
		c.Volume = d.Volume
	}
	if c.PlaybackRate == 0 {
		c.PlaybackRate = d.PlaybackRate
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	return c
}
