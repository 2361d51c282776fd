// Package playlist holds the ordered list of briefings waiting to play.
package playlist

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/llehouerou/tflash/internal/briefing"
)

// Entry is one enqueued track. Key identifies this enqueue instance, so the
// same briefing queued twice yields two distinct entries.
type Entry struct {
	Key   string
	Track briefing.Track
}

// Queue is a FIFO of entries. It is not safe for concurrent use; the
// playback service serializes access.
type Queue struct {
	entries []Entry
	newKey  func() string
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{newKey: uuid.NewString}
}

// Add appends t to the tail and returns the new entry.
func (q *Queue) Add(t briefing.Track) Entry {
	e := Entry{Key: q.newKey(), Track: t.Clone()}
	q.entries = append(q.entries, e)
	return e
}

// Restore appends entries that already carry keys, e.g. loaded from disk.
// Entries with an empty key get a fresh one.
func (q *Queue) Restore(entries ...Entry) {
	for _, e := range entries {
		if e.Key == "" {
			e.Key = q.newKey()
		}
		e.Track = e.Track.Clone()
		q.entries = append(q.entries, e)
	}
}

// RemoveFirst removes the first entry whose track id is id.
// Returns false when no entry matches.
func (q *Queue) RemoveFirst(id string) bool {
	i := slices.IndexFunc(q.entries, func(e Entry) bool { return e.Track.ID == id })
	if i < 0 {
		return false
	}
	q.entries = slices.Delete(q.entries, i, i+1)
	return true
}

// RemoveEntry removes the entry with the given key.
func (q *Queue) RemoveEntry(key string) bool {
	i := slices.IndexFunc(q.entries, func(e Entry) bool { return e.Key == key })
	if i < 0 {
		return false
	}
	q.entries = slices.Delete(q.entries, i, i+1)
	return true
}

// PopFront removes and returns the head entry.
func (q *Queue) PopFront() (Entry, bool) {
	if len(q.entries) == 0 {
		return Entry{}, false
	}
	e := q.entries[0]
	q.entries = slices.Delete(q.entries, 0, 1)
	return e, true
}

// Clear removes all entries.
func (q *Queue) Clear() {
	q.entries = nil
}

// Entries returns a deep copy of the entries in order.
func (q *Queue) Entries() []Entry {
	out := make([]Entry, len(q.entries))
	for i, e := range q.entries {
		out[i] = Entry{Key: e.Key, Track: e.Track.Clone()}
	}
	return out
}

// Len returns the number of entries.
func (q *Queue) Len() int {
	return len(q.entries)
}

// TotalDuration sums the durations of entries.
func TotalDuration(entries []Entry) time.Duration {
	var total time.Duration
	for _, e := range entries {
		total += e.Track.Duration
	}
	return total
}
