package notify

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/llehouerou/tflash/internal/briefing"
	"github.com/llehouerou/tflash/internal/mpris"
	"github.com/llehouerou/tflash/internal/playback"
)

// Display times in ms.
const (
	trackTimeout = 5000
	errorTimeout = 10000
)

// Watcher shows a notification each time a different briefing starts
// playing, and when playback fails. Each new notification replaces the
// previous one.
type Watcher struct {
	notifier Notifier
	logger   *log.Logger

	mu      sync.Mutex
	lastID  string
	lastErr error
	shown   uint32
	unsub   func()
}

// Watch starts observing svc.
func Watch(svc playback.Service, notifier Notifier, logger *log.Logger) *Watcher {
	if logger == nil {
		logger = log.Default()
	}
	w := &Watcher{notifier: notifier, logger: logger}
	w.unsub = svc.Subscribe(w.observe)
	return w
}

func (w *Watcher) observe(st playback.State) {
	if st.CurrentTrack == nil {
		return
	}

	w.mu.Lock()
	var build func(replaces uint32) Notification
	switch {
	case st.Err != nil && !errors.Is(st.Err, w.lastErr):
		w.lastErr = st.Err
		// a failed track may be retried
		w.lastID = ""
		t, cause := *st.CurrentTrack, st.Err
		build = func(r uint32) Notification { return ErrorNotification(t, cause, r) }
	case st.IsPlaying && st.CurrentTrack.ID != w.lastID:
		w.lastID = st.CurrentTrack.ID
		w.lastErr = nil
		t := *st.CurrentTrack
		build = func(r uint32) Notification { return TrackNotification(t, r) }
	}
	replaces := w.shown
	w.mu.Unlock()

	if build == nil {
		return
	}
	id, err := w.notifier.Notify(build(replaces))
	if err != nil {
		w.logger.Debug("notify", "track", st.CurrentTrack.ID, "err", err)
		return
	}

	w.mu.Lock()
	w.shown = id
	w.mu.Unlock()
}

// Close stops observing and dismisses the last notification.
func (w *Watcher) Close() error {
	w.unsub()

	w.mu.Lock()
	id := w.shown
	w.shown = 0
	w.mu.Unlock()

	if id == 0 {
		return nil
	}
	return w.notifier.Close(id)
}

// TrackNotification builds the now-playing notification for t.
func TrackNotification(t briefing.Track, replaces uint32) Notification {
	body := t.Date
	if topics := t.TopicLine(); topics != "" {
		body = fmt.Sprintf("%s\n%s", t.Date, topics)
	}
	return Notification{
		Title:      t.Title,
		Body:       body,
		Icon:       mpris.FindArt(t.AudioURL),
		Category:   CategoryPlayback,
		Timeout:    trackTimeout,
		ReplacesID: replaces,
		Urgency:    UrgencyLow,
	}
}

// ErrorNotification reports that t could not be played.
func ErrorNotification(t briefing.Track, err error, replaces uint32) Notification {
	return Notification{
		Title:      "Playback failed",
		Body:       fmt.Sprintf("%s\n%v", t.Title, err),
		Category:   CategoryError,
		Timeout:    errorTimeout,
		ReplacesID: replaces,
		Urgency:    UrgencyCritical,
	}
}
