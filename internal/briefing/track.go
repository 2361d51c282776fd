// Package briefing defines the news briefing track model and the static
// catalog shown by the dashboard.
package briefing

import (
	"slices"
	"strings"
	"time"
)

// Track is one audio briefing. Tracks are values: the playback store never
// hands out a Track whose Topics slice aliases its own.
type Track struct {
	ID       string
	Title    string
	Date     string // display string, e.g. "Today, 7:00 AM"
	Duration time.Duration
	Topics   []string
	AudioURL string // empty when the briefing has no audio yet
}

// Clone returns a copy of t that shares no memory with it.
func (t Track) Clone() Track {
	t.Topics = slices.Clone(t.Topics)
	return t
}

// Ptr returns a pointer to a clone of t.
func (t Track) Ptr() *Track {
	c := t.Clone()
	return &c
}

// Locator returns the audio locator for t, or fallback when t has none.
func (t Track) Locator(fallback string) string {
	if t.AudioURL == "" {
		return fallback
	}
	return t.AudioURL
}

// HasAudio reports whether t carries its own audio locator.
func (t Track) HasAudio() bool {
	return t.AudioURL != ""
}

// TopicLine joins the topics for single-line display.
func (t Track) TopicLine() string {
	return strings.Join(t.Topics, " · ")
}

// Equal reports whether a and b describe the same briefing.
func Equal(a, b Track) bool {
	return a.ID == b.ID &&
		a.Title == b.Title &&
		a.Date == b.Date &&
		a.Duration == b.Duration &&
		a.AudioURL == b.AudioURL &&
		slices.Equal(a.Topics, b.Topics)
}
