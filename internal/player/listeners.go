package player

import "sync"

// listeners is a set of registered Listeners safe for concurrent use.
type listeners struct {
	mu     sync.Mutex
	nextID int
	fns    map[int]Listener
}

// add registers fn and returns its detach function.
func (l *listeners) add(fn Listener) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]Listener)
	}
	id := l.nextID
	l.nextID++
	l.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.fns, id)
			l.mu.Unlock()
		})
	}
}

// snapshot returns the currently registered listeners.
func (l *listeners) snapshot() []Listener {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Listener, 0, len(l.fns))
	for _, fn := range l.fns {
		out = append(out, fn)
	}
	return out
}

// emit calls every registered listener with e, outside the lock.
func (l *listeners) emit(e Event) {
	for _, fn := range l.snapshot() {
		fn(e)
	}
}

// clear removes every listener.
func (l *listeners) clear() {
	l.mu.Lock()
	l.fns = nil
	l.mu.Unlock()
}

// count returns the number of registered listeners.
func (l *listeners) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fns)
}
