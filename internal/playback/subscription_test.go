package playback

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/llehouerou/tflash/internal/player"
)

func TestSubscribe_DeliversCurrentStateImmediately(t *testing.T) {
	svc, _ := newTestService(t)
	svc.SetVolume(0.25)

	var got []State
	unsub := svc.Subscribe(func(st State) { got = append(got, st) })
	defer unsub()

	if len(got) != 1 {
		t.Fatalf("deliveries = %d, want 1", len(got))
	}
	if got[0].Volume != 0.25 {
		t.Errorf("Volume = %v, want 0.25", got[0].Volume)
	}
}

func TestSubscribe_NotifiedOnEveryChange(t *testing.T) {
	svc, b := newTestService(t)

	var got []State
	unsub := svc.Subscribe(func(st State) { got = append(got, st) })
	defer unsub()

	_ = svc.PlayTrack(testTrack("1"))
	b.Last().Start(time.Minute)
	svc.SetPlaybackRate(1.25)

	if len(got) < 4 {
		t.Fatalf("deliveries = %d, want at least 4", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Version <= got[i-1].Version {
			t.Errorf("version went from %d to %d", got[i-1].Version, got[i].Version)
		}
	}
	last := got[len(got)-1]
	if !last.IsPlaying || last.PlaybackRate != 1.25 {
		t.Errorf("last state = %+v", last)
	}
}

func TestSubscribe_UnsubscribeStopsDelivery(t *testing.T) {
	svc, _ := newTestService(t)

	calls := 0
	unsub := svc.Subscribe(func(State) { calls++ })
	unsub()
	unsub()

	svc.SetVolume(0.1)
	svc.AddToQueue(testTrack("1"))

	if calls != 1 {
		t.Errorf("calls = %d, want 1 (initial only)", calls)
	}
}

func TestSubscribe_ReentrantCallbackSeesOrderedStates(t *testing.T) {
	svc, _ := newTestService(t)

	var versions []uint64
	var unsub func()
	unsub = svc.Subscribe(func(st State) {
		versions = append(versions, st.Version)
		// mutate from inside the callback once
		if len(versions) == 2 {
			svc.SetVolume(0.9)
		}
	})
	defer unsub()

	svc.SetVolume(0.5)

	if len(versions) != 3 {
		t.Fatalf("versions = %v, want 3 deliveries", versions)
	}
	for i := 1; i < len(versions); i++ {
		if versions[i] <= versions[i-1] {
			t.Errorf("versions not increasing: %v", versions)
		}
	}
	if got := svc.Snapshot().Volume; got != 0.9 {
		t.Errorf("Volume = %v, want 0.9", got)
	}
}

func TestSubscribe_AfterCloseIsInert(t *testing.T) {
	svc := New(player.NewMockBackend(), Config{})
	_ = svc.Close()

	calls := 0
	unsub := svc.Subscribe(func(State) { calls++ })
	unsub()

	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}

func TestWatch_CoalescesToLatest(t *testing.T) {
	svc, _ := newTestService(t)
	sub := svc.Watch()
	defer sub.Close()

	for i := range 10 {
		svc.SetVolume(float64(i) / 10)
	}

	st := <-sub.States
	if st.Volume != 0.9 {
		t.Errorf("Volume = %v, want 0.9", st.Volume)
	}
	select {
	case extra := <-sub.States:
		t.Errorf("unexpected extra state %+v", extra)
	default:
	}
}

func TestWatch_CloseSignalsDone(t *testing.T) {
	svc, _ := newTestService(t)
	sub := svc.Watch()

	sub.Close()
	sub.Close()

	select {
	case <-sub.Done:
	default:
		t.Fatal("Done not closed")
	}
}

func TestWatch_ReaderObservesMonotonicVersions(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		svc, b := newTestService(t)
		sub := svc.Watch()

		var (
			mu   sync.Mutex
			seen []uint64
		)
		go func() {
			for {
				select {
				case st := <-sub.States:
					mu.Lock()
					seen = append(seen, st.Version)
					mu.Unlock()
				case <-sub.Done:
					return
				}
			}
		}()

		_ = svc.PlayTrack(testTrack("1"))
		res := b.Last()
		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res.Emit(player.Event{Type: player.EventPositionChanged, Position: time.Duration(i) * time.Second})
			}()
		}
		wg.Wait()
		synctest.Wait()

		final := svc.Snapshot().Version
		sub.Close()
		synctest.Wait()

		mu.Lock()
		defer mu.Unlock()
		if len(seen) == 0 {
			t.Fatal("no states observed")
		}
		for i := 1; i < len(seen); i++ {
			if seen[i] <= seen[i-1] {
				t.Errorf("versions not increasing: %v", seen)
				break
			}
		}
		if seen[len(seen)-1] != final {
			t.Errorf("last seen version = %d, want %d", seen[len(seen)-1], final)
		}
	})
}

func TestSubscriber_DropsOlderVersions(t *testing.T) {
	var got []uint64
	sub := &subscriber{fn: func(st State) { got = append(got, st.Version) }}

	sub.deliver(State{Version: 3})
	sub.deliver(State{Version: 2})
	sub.deliver(State{Version: 3})
	sub.deliver(State{Version: 5})

	if len(got) != 2 || got[0] != 3 || got[1] != 5 {
		t.Errorf("got %v, want [3 5]", got)
	}
}

func TestSubscription_OfferKeepsNewest(t *testing.T) {
	s := newSubscription()

	s.offer(State{Version: 4})
	s.offer(State{Version: 2})

	if st := <-s.States; st.Version != 4 {
		t.Errorf("Version = %d, want 4", st.Version)
	}
}
