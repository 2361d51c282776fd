// Package player abstracts a playable audio resource.
//
// A Resource is bound to a single locator for its whole life. Its lifecycle
// is reported to listeners as Events; callers never poll it for state.
package player

import (
	"math"
	"time"

	"github.com/cockroachdb/errors"
)

var (
	// ErrClosed is returned when a closed resource is asked to play.
	ErrClosed = errors.New("resource closed")
	// ErrUnsupportedLocator is returned for locators no backend can open.
	ErrUnsupportedLocator = errors.New("unsupported locator")
	// ErrUnsupportedFormat is returned when no decoder matches the audio.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// EventType identifies a resource lifecycle event.
type EventType int

const (
	EventPositionChanged EventType = iota
	EventDurationKnown
	EventStarted
	EventPaused
	EventEnded
	EventError
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventPositionChanged:
		return "position"
	case EventDurationKnown:
		return "duration"
	case EventStarted:
		return "started"
	case EventPaused:
		return "paused"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is delivered to listeners when a resource changes.
// Position is set for EventPositionChanged and EventPaused, Duration for
// EventDurationKnown, Err for EventError.
type Event struct {
	Type     EventType
	Position time.Duration
	Duration time.Duration
	Err      error
}

// Listener receives resource events. It may be called from any goroutine.
type Listener func(Event)

// Resource is one playable audio stream.
type Resource interface {
	// Play starts or resumes playback. Loading may continue asynchronously;
	// EventStarted is emitted once audio is actually running.
	Play() error
	Pause()
	SeekTo(pos time.Duration)
	Volume() float64
	SetVolume(v float64)
	Rate() float64
	SetRate(r float64)
	// Listen registers fn and returns a function that removes it.
	// An event already being delivered when detach returns may still
	// reach fn once; later events do not.
	Listen(fn Listener) (detach func())
	// Close releases the resource. No events are emitted afterwards.
	Close() error
}

// Backend opens resources for locators.
type Backend interface {
	Open(locator string) (Resource, error)
}

// clampUnit limits v to [0,1]. NaN maps to 0.
func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return min(max(v, 0), 1)
}
