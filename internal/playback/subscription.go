package playback

import "sync"

// Subscription delivers states over a channel. The channel holds at most one
// state: a newer state replaces an unread older one, so a slow reader always
// observes the latest state and never blocks the service.
type Subscription struct {
	States <-chan State
	Done   <-chan struct{}

	states    chan State
	done      chan struct{}
	closeOnce sync.Once
	cancel    func()
}

func newSubscription() *Subscription {
	s := &Subscription{
		states: make(chan State, 1),
		done:   make(chan struct{}),
	}
	s.States = s.states
	s.Done = s.done
	return s
}

// offer replaces any unread state with st (non-blocking).
func (s *Subscription) offer(st State) {
	for {
		select {
		case s.states <- st:
			return
		default:
		}
		select {
		case old := <-s.states:
			if old.Version > st.Version {
				st = old
			}
		default:
		}
	}
}

// close signals the reader to stop.
func (s *Subscription) close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Close unsubscribes and signals Done.
func (s *Subscription) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	s.close()
}

// subscriber is one registered callback. Deliveries to it are serialized and
// versions only move forward; a state published while fn is running (even
// from inside fn) is delivered right after it returns.
type subscriber struct {
	fn      func(State)
	onClose func()

	mu      sync.Mutex
	busy    bool
	pending *State
	last    uint64
	hasLast bool
	closed  bool
}

func (s *subscriber) deliver(st State) {
	s.mu.Lock()
	if s.closed || (s.hasLast && st.Version <= s.last) {
		s.mu.Unlock()
		return
	}
	if s.busy {
		if s.pending == nil || st.Version > s.pending.Version {
			s.pending = &st
		}
		s.mu.Unlock()
		return
	}
	s.busy = true
	for {
		s.last, s.hasLast = st.Version, true
		s.mu.Unlock()
		s.fn(st)
		s.mu.Lock()
		if s.closed || s.pending == nil {
			break
		}
		next := *s.pending
		s.pending = nil
		if next.Version <= s.last {
			break
		}
		st = next
	}
	s.busy = false
	s.mu.Unlock()
}

func (s *subscriber) close() {
	s.mu.Lock()
	s.closed = true
	s.pending = nil
	s.mu.Unlock()
	if s.onClose != nil {
		s.onClose()
	}
}
