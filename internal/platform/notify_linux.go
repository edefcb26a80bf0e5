//go:build linux

package platform

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// Notify sends a desktop notification over the org.freedesktop.Notifications D-Bus API.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("session bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		opts.appName(), uint32(0), opts.IconPath, title, body, []string{}, hints(), opts.expireMillis())
	return call.Err
}

// hints ties the notification to the desktop entry and keeps it out of
// the notification history.
func hints() map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"desktop-entry": dbus.MakeVariant("fonotes"),
		"transient":     dbus.MakeVariant(true),
	}
}
