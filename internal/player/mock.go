// internal/player/mock.go
package player

import (
	"sync"
	"time"
)

// Mock is a test double for Resource. It never emits events on its own;
// tests drive the lifecycle with Emit.
type Mock struct {
	Locator string

	mu        sync.Mutex
	volume    float64
	rate      float64
	playErr   error
	playCalls int
	pauses    int
	seekCalls []time.Duration
	closed    bool
	listeners listeners
	// every listener ever attached, including detached ones
	history []Listener
}

// NewMock creates a mock resource for locator.
func NewMock(locator string) *Mock {
	return &Mock{Locator: locator, volume: 1, rate: 1}
}

func (m *Mock) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
	if m.closed {
		return ErrClosed
	}
	return m.playErr
}

func (m *Mock) Pause() {
	m.mu.Lock()
	m.pauses++
	m.mu.Unlock()
}

func (m *Mock) SeekTo(pos time.Duration) {
	m.mu.Lock()
	m.seekCalls = append(m.seekCalls, pos)
	m.mu.Unlock()
}

func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *Mock) SetVolume(v float64) {
	m.mu.Lock()
	m.volume = v
	m.mu.Unlock()
}

func (m *Mock) Rate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rate
}

func (m *Mock) SetRate(r float64) {
	m.mu.Lock()
	m.rate = r
	m.mu.Unlock()
}

func (m *Mock) Listen(fn Listener) func() {
	m.mu.Lock()
	m.history = append(m.history, fn)
	m.mu.Unlock()
	return m.listeners.add(fn)
}

func (m *Mock) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.listeners.clear()
	return nil
}

// Test helpers

// Emit delivers e to the attached listeners, synchronously.
func (m *Mock) Emit(e Event) { m.listeners.emit(e) }

// EmitStale delivers e to every listener ever attached, detached ones
// included, like a callback already in flight when the listener was removed.
func (m *Mock) EmitStale(e Event) {
	m.mu.Lock()
	fns := append([]Listener(nil), m.history...)
	m.mu.Unlock()
	for _, fn := range fns {
		fn(e)
	}
}

// Start emits EventDurationKnown (when d > 0) followed by EventStarted.
func (m *Mock) Start(d time.Duration) {
	if d > 0 {
		m.Emit(Event{Type: EventDurationKnown, Duration: d})
	}
	m.Emit(Event{Type: EventStarted})
}

func (m *Mock) SetPlayError(err error) {
	m.mu.Lock()
	m.playErr = err
	m.mu.Unlock()
}

func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

func (m *Mock) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauses
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *Mock) ListenerCount() int { return m.listeners.count() }

// Verify Mock implements Resource at compile time.
var _ Resource = (*Mock)(nil)

// MockBackend hands out Mock resources and remembers them in open order.
type MockBackend struct {
	mu        sync.Mutex
	openErr   error
	failOpen  map[string]error
	resources []*Mock
}

// NewMockBackend creates an empty mock backend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

func (b *MockBackend) Open(locator string) (Resource, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.openErr != nil {
		return nil, b.openErr
	}
	if err, ok := b.failOpen[locator]; ok {
		return nil, err
	}
	m := NewMock(locator)
	b.resources = append(b.resources, m)
	return m, nil
}

func (b *MockBackend) SetOpenError(err error) {
	b.mu.Lock()
	b.openErr = err
	b.mu.Unlock()
}

// FailOpen makes every Open of locator fail with err.
func (b *MockBackend) FailOpen(locator string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failOpen == nil {
		b.failOpen = make(map[string]error)
	}
	b.failOpen[locator] = err
}

// Resources returns every resource opened so far.
func (b *MockBackend) Resources() []*Mock {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Mock(nil), b.resources...)
}

// Last returns the most recently opened resource, or nil.
func (b *MockBackend) Last() *Mock {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.resources) == 0 {
		return nil
	}
	return b.resources[len(b.resources)-1]
}

// Verify MockBackend implements Backend at compile time.
var _ Backend = (*MockBackend)(nil)
