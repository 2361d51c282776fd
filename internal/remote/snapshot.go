package remote

import (
	"github.com/llehouerou/tflash/internal/briefing"
	"github.com/llehouerou/tflash/internal/playback"
)

// Message types sent to clients.
const (
	TypeState = "state"
	TypeError = "error"
)

// TrackJSON is a briefing as seen by remote clients.
type TrackJSON struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Date     string   `json:"date"`
	Duration float64  `json:"duration"` // seconds
	Topics   []string `json:"topics"`
	AudioURL string   `json:"audioUrl,omitempty"`
}

// QueueItemJSON is one queue entry.
type QueueItemJSON struct {
	Key   string    `json:"key"`
	Track TrackJSON `json:"track"`
}

// Snapshot is the JSON form of a playback state.
type Snapshot struct {
	Type         string          `json:"type"`
	Version      uint64          `json:"version"`
	CurrentTrack *TrackJSON      `json:"currentTrack"`
	IsPlaying    bool            `json:"isPlaying"`
	CurrentTime  float64         `json:"currentTime"` // seconds
	Duration     float64         `json:"duration"`    // seconds
	Volume       float64         `json:"volume"`
	PlaybackRate float64         `json:"playbackRate"`
	Queue        []QueueItemJSON `json:"queue"`
	Error        string          `json:"error,omitempty"`
}

// ErrorReply reports a rejected command to the sender.
type ErrorReply struct {
	Type    string `json:"type"`
	Command string `json:"cmd,omitempty"`
	Message string `json:"message"`
}

func trackJSON(t briefing.Track) TrackJSON {
	topics := t.Topics
	if topics == nil {
		topics = []string{}
	}
	return TrackJSON{
		ID:       t.ID,
		Title:    t.Title,
		Date:     t.Date,
		Duration: t.Duration.Seconds(),
		Topics:   topics,
		AudioURL: t.AudioURL,
	}
}

// NewSnapshot converts st for the wire.
func NewSnapshot(st playback.State) Snapshot {
	s := Snapshot{
		Type:         TypeState,
		Version:      st.Version,
		IsPlaying:    st.IsPlaying,
		CurrentTime:  st.CurrentTime.Seconds(),
		Duration:     st.Duration.Seconds(),
		Volume:       st.Volume,
		PlaybackRate: st.PlaybackRate,
		Queue:        make([]QueueItemJSON, 0, len(st.Queue)),
	}
	if st.CurrentTrack != nil {
		t := trackJSON(*st.CurrentTrack)
		s.CurrentTrack = &t
	}
	for _, e := range st.Queue {
		s.Queue = append(s.Queue, QueueItemJSON{Key: e.Key, Track: trackJSON(e.Track)})
	}
	if st.Err != nil {
		s.Error = st.Err.Error()
	}
	return s
}
