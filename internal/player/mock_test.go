package player

import (
	"testing"
	"time"
)

func TestMock_DetachStopsDelivery(t *testing.T) {
	m := NewMock("a")
	var got []EventType
	detach := m.Listen(func(e Event) { got = append(got, e.Type) })

	m.Emit(Event{Type: EventStarted})
	detach()
	detach() // idempotent
	m.Emit(Event{Type: EventPaused})

	if len(got) != 1 || got[0] != EventStarted {
		t.Errorf("got %v, want [started]", got)
	}
	if m.ListenerCount() != 0 {
		t.Errorf("ListenerCount() = %d, want 0", m.ListenerCount())
	}
}

func TestMock_EmitStaleReachesDetachedListeners(t *testing.T) {
	m := NewMock("a")
	calls := 0
	detach := m.Listen(func(Event) { calls++ })
	detach()

	m.EmitStale(Event{Type: EventEnded})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestMock_Start(t *testing.T) {
	m := NewMock("a")
	var got []Event
	m.Listen(func(e Event) { got = append(got, e) })

	m.Start(3 * time.Minute)

	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got[0].Type != EventDurationKnown || got[0].Duration != 3*time.Minute {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].Type != EventStarted {
		t.Errorf("got[1] = %+v", got[1])
	}
}

func TestMockBackend_RecordsResources(t *testing.T) {
	b := NewMockBackend()
	if b.Last() != nil {
		t.Error("Last() should be nil before Open")
	}
	_, _ = b.Open("one")
	_, _ = b.Open("two")

	if len(b.Resources()) != 2 {
		t.Fatalf("len(Resources()) = %d, want 2", len(b.Resources()))
	}
	if b.Last().Locator != "two" {
		t.Errorf("Last().Locator = %q, want two", b.Last().Locator)
	}
}

func TestEventType_String(t *testing.T) {
	if EventEnded.String() != "ended" {
		t.Errorf("EventEnded.String() = %q", EventEnded.String())
	}
	if EventType(42).String() != "unknown" {
		t.Errorf("EventType(42).String() = %q", EventType(42).String())
	}
}
