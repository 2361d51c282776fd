// internal/playback/state.go
package playback

import (
	"math"
	"time"

	"github.com/llehouerou/tflash/internal/briefing"
	"github.com/llehouerou/tflash/internal/playlist"
)

// State is an immutable snapshot of the playback store.
// Version increases with every published change.
type State struct {
	Version      uint64
	CurrentTrack *briefing.Track
	IsPlaying    bool
	CurrentTime  time.Duration
	Duration     time.Duration
	Volume       float64
	PlaybackRate float64
	Queue        []playlist.Entry
	Err          error // last asynchronous resource failure, cleared on start
}

// HasTrack reports whether a track is current.
func (s State) HasTrack() bool {
	return s.CurrentTrack != nil
}

// IsCurrent reports whether the current track has the given id.
func (s State) IsCurrent(id string) bool {
	return s.CurrentTrack != nil && s.CurrentTrack.ID == id
}

// Progress returns CurrentTime/Duration in [0,1], or 0 while the duration
// is unknown.
func (s State) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return min(max(float64(s.CurrentTime)/float64(s.Duration), 0), 1)
}

// QueueTracks returns the queued tracks in order.
func (s State) QueueTracks() []briefing.Track {
	out := make([]briefing.Track, len(s.Queue))
	for i, e := range s.Queue {
		out[i] = e.Track
	}
	return out
}

// ClampVolume limits v to [0,1]. NaN maps to 0.
func ClampVolume(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return min(max(v, 0), 1)
}

// ClampPlaybackRate limits r to [MinPlaybackRate,MaxPlaybackRate]. NaN maps
// to MinPlaybackRate.
func ClampPlaybackRate(r float64) float64 {
	if math.IsNaN(r) {
		return MinPlaybackRate
	}
	return min(max(r, MinPlaybackRate), MaxPlaybackRate)
}

// clampPosition keeps pos in [0,duration]; an unknown (zero) duration only
// bounds it below.
func clampPosition(pos, duration time.Duration) time.Duration {
	pos = max(pos, 0)
	if duration > 0 {
		pos = min(pos, duration)
	}
	return pos
}
