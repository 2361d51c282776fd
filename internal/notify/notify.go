// Package notify shows desktop notifications for briefing playback.
package notify

// AppName identifies tflash to the notification daemon.
const AppName = "tflash"

// Urgency is the freedesktop notification urgency level.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Category values sent as the "category" hint.
const (
	CategoryPlayback = "x-tflash.playback"
	CategoryError    = "x-tflash.error"
)

// Notification is one desktop notification.
type Notification struct {
	Title      string
	Body       string
	Icon       string  // file path or icon name
	Category   string  // optional freedesktop category hint
	Timeout    int32   // ms; -1 server default, 0 never expires
	ReplacesID uint32  // 0 opens a new notification
	Urgency    Urgency
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify shows n and returns its id. An unavailable daemon yields 0
	// and no error.
	Notify(n Notification) (uint32, error)
	// Close dismisses a notification by id.
	Close(id uint32) error
}

// nopNotifier drops everything. It stands in when there is no session bus.
type nopNotifier struct{}

func (nopNotifier) Notify(Notification) (uint32, error) { return 0, nil }

func (nopNotifier) Close(uint32) error { return nil }
