// internal/state/mock.go
package state

import "sync"

// Mock is a test double for Manager.
type Mock struct {
	mu       sync.Mutex
	session  *Session
	saves    []Session
	debounce []Session
	closed   bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Load() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, nil
}

func (m *Mock) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves = append(m.saves, s)
	m.session = &s
	return nil
}

func (m *Mock) SaveDebounced(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debounce = append(m.debounce, s)
	m.session = &s
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetSession(s *Session) {
	m.mu.Lock()
	m.session = s
	m.mu.Unlock()
}

// Saves returns the sessions passed to Save.
func (m *Mock) Saves() []Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Session(nil), m.saves...)
}

// Debounced returns the sessions passed to SaveDebounced.
func (m *Mock) Debounced() []Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Session(nil), m.debounce...)
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
