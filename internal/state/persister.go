package state

import (
	"slices"
	"sync"
	"time"

	"github.com/llehouerou/tflash/internal/briefing"
	"github.com/llehouerou/tflash/internal/playback"
	"github.com/llehouerou/tflash/internal/playlist"
)

// positionGranularity limits how often a playing briefing's position is
// written: ticks inside the same window do not produce a save.
const positionGranularity = 5 * time.Second

// Persister mirrors the playback store into a state store.
type Persister struct {
	store Interface

	mu     sync.Mutex
	last   Session
	have   bool
	closed bool
	unsub  func()
}

// NewPersister starts mirroring svc into store.
func NewPersister(svc playback.Service, store Interface) *Persister {
	p := &Persister{store: store}
	p.unsub = svc.Subscribe(p.observe)
	return p
}

func (p *Persister) observe(st playback.State) {
	s := SessionFromState(st)
	s.Position = s.Position.Truncate(positionGranularity)

	p.mu.Lock()
	if p.closed || (p.have && sessionEqual(p.last, s)) {
		p.mu.Unlock()
		return
	}
	p.last, p.have = s, true
	p.mu.Unlock()

	p.store.SaveDebounced(s)
}

// Close stops mirroring and writes the last observed session.
func (p *Persister) Close() error {
	p.unsub()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	last, have := p.last, p.have
	p.mu.Unlock()

	if !have {
		return nil
	}
	return p.store.Save(last)
}

// SessionFromState extracts the persisted part of st.
func SessionFromState(st playback.State) Session {
	s := Session{
		Volume:       st.Volume,
		PlaybackRate: st.PlaybackRate,
		Position:     st.CurrentTime,
		Queue:        st.Queue,
	}
	if st.CurrentTrack != nil {
		s.Current = st.CurrentTrack.Ptr()
	}
	return s
}

// Restore applies a saved session to svc without starting playback.
// Queue entries keep their saved keys.
func Restore(svc playback.Service, s *Session) {
	if s == nil {
		return
	}
	svc.SetVolume(s.Volume)
	svc.SetPlaybackRate(s.PlaybackRate)
	if s.Current != nil {
		svc.Cue(*s.Current, s.Position)
	}
	svc.RestoreQueue(s.Queue)
}

func sessionEqual(a, b Session) bool {
	if a.Volume != b.Volume || a.PlaybackRate != b.PlaybackRate || a.Position != b.Position {
		return false
	}
	if (a.Current == nil) != (b.Current == nil) {
		return false
	}
	if a.Current != nil && !briefing.Equal(*a.Current, *b.Current) {
		return false
	}
	return slices.EqualFunc(a.Queue, b.Queue, func(x, y playlist.Entry) bool {
		return x.Key == y.Key && briefing.Equal(x.Track, y.Track)
	})
}
