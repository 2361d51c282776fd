package remote

import (
	"math"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/llehouerou/tflash/internal/briefing"
	"github.com/llehouerou/tflash/internal/playback"
)

// Command names accepted from clients.
const (
	CmdPlay         = "play"
	CmdPause        = "pause"
	CmdToggle       = "toggle"
	CmdSeek         = "seek"
	CmdSkipForward  = "skip_forward"
	CmdSkipBackward = "skip_backward"
	CmdVolume       = "volume"
	CmdRate         = "rate"
	CmdNext         = "next"
	CmdClearQueue   = "clear_queue"
	CmdEnqueue      = "enqueue"
	CmdRemove       = "remove"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUnknownTrack   = errors.New("unknown briefing")
	ErrMissingValue   = errors.New("missing value")
)

// Command is a control message from a client.
type Command struct {
	Cmd   string   `json:"cmd"`
	Value *float64 `json:"value,omitempty"` // seconds for seek, level for volume/rate
	ID    string   `json:"id,omitempty"`    // briefing id for play/enqueue/remove
}

// Lookup resolves a briefing id.
type Lookup func(id string) (briefing.Track, bool)

// Apply runs c against svc.
func Apply(svc playback.Service, lookup Lookup, c Command) error {
	switch c.Cmd {
	case CmdPlay:
		if c.ID == "" {
			return svc.Play()
		}
		t, ok := lookup(c.ID)
		if !ok {
			return errors.Wrapf(ErrUnknownTrack, "%q", c.ID)
		}
		return svc.PlayTrack(t)
	case CmdPause:
		svc.Pause()
	case CmdToggle:
		return svc.TogglePlayPause()
	case CmdSeek:
		if c.Value == nil {
			return ErrMissingValue
		}
		svc.Seek(seconds(*c.Value))
	case CmdSkipForward:
		svc.SkipForward()
	case CmdSkipBackward:
		svc.SkipBackward()
	case CmdVolume:
		if c.Value == nil {
			return ErrMissingValue
		}
		svc.SetVolume(*c.Value)
	case CmdRate:
		if c.Value == nil {
			return ErrMissingValue
		}
		svc.SetPlaybackRate(*c.Value)
	case CmdNext:
		return svc.Advance()
	case CmdClearQueue:
		svc.ClearQueue()
	case CmdEnqueue:
		t, ok := lookup(c.ID)
		if !ok {
			return errors.Wrapf(ErrUnknownTrack, "%q", c.ID)
		}
		svc.AddToQueue(t)
	case CmdRemove:
		svc.RemoveFromQueue(c.ID)
	default:
		return errors.Wrapf(ErrUnknownCommand, "%q", c.Cmd)
	}
	return nil
}

// maxSeconds is the largest whole number of seconds a time.Duration holds.
const maxSeconds = float64(math.MaxInt64 / int64(time.Second))

// seconds converts v to a Duration, saturating instead of overflowing.
func seconds(v float64) time.Duration {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= maxSeconds:
		return math.MaxInt64
	case v <= -maxSeconds:
		return math.MinInt64
	}
	return time.Duration(v * float64(time.Second))
}
