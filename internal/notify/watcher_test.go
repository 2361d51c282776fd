package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/llehouerou/tflash/internal/briefing"
	"github.com/llehouerou/tflash/internal/playback"
	"github.com/llehouerou/tflash/internal/player"
)

// fakeNotifier records notifications and hands out sequential ids.
type fakeNotifier struct {
	mu     sync.Mutex
	sent   []Notification
	closed []uint32
	err    error
}

func (f *fakeNotifier) Notify(n Notification) (uint32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.sent = append(f.sent, n)
	if n.ReplacesID != 0 {
		return n.ReplacesID, nil
	}
	return uint32(len(f.sent)), nil
}

func (f *fakeNotifier) Close(id uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = append(f.closed, id)
	return nil
}

func testBriefing(id, title string) briefing.Track {
	return briefing.Track{ID: id, Title: title, Date: "Today, 7:00 AM", Topics: []string{"Technology", "AI"}}
}

func TestWatcher_NotifiesOncePerTrackStart(t *testing.T) {
	b := player.NewMockBackend()
	svc := playback.New(b, playback.Config{})
	defer svc.Close()
	fake := &fakeNotifier{}
	w := Watch(svc, fake, nil)

	_ = svc.PlayTrack(testBriefing("1", "Morning Tech Briefing"))
	if len(fake.sent) != 0 {
		t.Fatalf("notified before playback started: %+v", fake.sent)
	}
	b.Last().Start(time.Minute)
	b.Last().Emit(player.Event{Type: player.EventPaused})
	b.Last().Emit(player.Event{Type: player.EventStarted})

	if len(fake.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(fake.sent))
	}
	n := fake.sent[0]
	if n.Title != "Morning Tech Briefing" {
		t.Errorf("Title = %q", n.Title)
	}
	if n.Body != "Today, 7:00 AM\nTechnology · AI" {
		t.Errorf("Body = %q", n.Body)
	}
	if n.ReplacesID != 0 {
		t.Errorf("ReplacesID = %d, want 0", n.ReplacesID)
	}

	_ = svc.PlayTrack(testBriefing("2", "Evening Market Update"))
	b.Last().Start(time.Minute)

	if len(fake.sent) != 2 {
		t.Fatalf("sent = %d, want 2", len(fake.sent))
	}
	if fake.sent[1].ReplacesID != 1 {
		t.Errorf("second ReplacesID = %d, want 1", fake.sent[1].ReplacesID)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if len(fake.closed) != 1 || fake.closed[0] != 1 {
		t.Errorf("closed = %v, want [1]", fake.closed)
	}
}

func TestWatcher_CueDoesNotNotify(t *testing.T) {
	svc := playback.New(player.NewMockBackend(), playback.Config{})
	defer svc.Close()
	fake := &fakeNotifier{}
	w := Watch(svc, fake, nil)
	defer w.Close()

	svc.Cue(testBriefing("1", "Cued"), time.Minute)

	if len(fake.sent) != 0 {
		t.Errorf("sent = %d, want 0", len(fake.sent))
	}
}

func TestWatcher_NotifierErrorIsTolerated(t *testing.T) {
	b := player.NewMockBackend()
	svc := playback.New(b, playback.Config{})
	defer svc.Close()
	fake := &fakeNotifier{err: errors.New("no daemon")}
	w := Watch(svc, fake, nil)

	_ = svc.PlayTrack(testBriefing("1", "x"))
	b.Last().Start(time.Minute)

	if err := w.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if len(fake.closed) != 0 {
		t.Errorf("nothing shown, nothing to close: %v", fake.closed)
	}
}

func TestTrackNotification_NoTopics(t *testing.T) {
	n := TrackNotification(briefing.Track{Title: "T", Date: "Yesterday"}, 7)

	if n.Body != "Yesterday" {
		t.Errorf("Body = %q, want Yesterday", n.Body)
	}
	if n.ReplacesID != 7 || n.Timeout != trackTimeout {
		t.Errorf("notification = %+v", n)
	}
}

func TestWatcher_NotifiesPlaybackError(t *testing.T) {
	b := player.NewMockBackend()
	svc := playback.New(b, playback.Config{})
	defer svc.Close()
	fake := &fakeNotifier{}
	w := Watch(svc, fake, nil)
	defer w.Close()

	_ = svc.PlayTrack(testBriefing("1", "Morning Tech Briefing"))
	b.Last().Start(time.Minute)
	boom := errors.New("decoder crashed")
	b.Last().Emit(player.Event{Type: player.EventError, Err: boom})
	// later snapshots carrying the same error stay quiet
	svc.SetVolume(0.3)

	if len(fake.sent) != 2 {
		t.Fatalf("sent = %d, want 2: %+v", len(fake.sent), fake.sent)
	}
	n := fake.sent[1]
	if n.Category != CategoryError || n.Urgency != UrgencyCritical {
		t.Errorf("error notification = %+v", n)
	}
	if n.ReplacesID != 1 {
		t.Errorf("ReplacesID = %d, want 1", n.ReplacesID)
	}

	// retrying the same briefing announces it again
	_ = svc.PlayTrack(testBriefing("1", "Morning Tech Briefing"))
	b.Last().Start(time.Minute)
	if len(fake.sent) != 3 || fake.sent[2].Category != CategoryPlayback {
		t.Errorf("sent after retry = %+v", fake.sent)
	}
}
