//go:build linux

package notify

import (
	"github.com/cockroachdb/errors"
	"github.com/godbus/dbus/v5"
)

const (
	notifyDest  = "org.freedesktop.Notifications"
	notifyPath  = "/org/freedesktop/Notifications"
	notifyIface = "org.freedesktop.Notifications"
)

type dbusNotifier struct {
	obj dbus.BusObject
}

// New connects to the session bus. Without one, notifications are dropped
// silently.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nopNotifier{}, nil //nolint:nilerr // headless sessions have no bus
	}
	return &dbusNotifier{obj: conn.Object(notifyDest, notifyPath)}, nil
}

func hints(n Notification) map[string]dbus.Variant {
	h := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(AppName),
	}
	if n.Category != "" {
		h["category"] = dbus.MakeVariant(n.Category)
	}
	return h
}

func (d *dbusNotifier) Notify(n Notification) (uint32, error) {
	// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout)
	call := d.obj.Call(notifyIface+".Notify", 0,
		AppName, n.ReplacesID, n.Icon, n.Title, n.Body,
		[]string{}, hints(n), n.Timeout,
	)
	if call.Err != nil {
		return 0, errors.Wrap(call.Err, "send notification")
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, errors.Wrap(err, "read notification id")
	}
	return id, nil
}

func (d *dbusNotifier) Close(id uint32) error {
	return errors.Wrap(d.obj.Call(notifyIface+".CloseNotification", 0, id).Err, "close notification")
}
