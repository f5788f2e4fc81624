// Package notify provides cross-platform desktop notification support.
// It uses native notification mechanisms on macOS (osascript) and Linux
// (notify-send).
package notify

import "fmt"

// Notifier defines the interface for sending desktop notifications.
type Notifier interface {
	// Send sends a notification with the given title and message.
	Send(title, message string) error

	// SendWithSound sends a notification with sound.
	SendWithSound(title, message string) error

	// IsSupported returns true if notifications are supported on this platform.
	IsSupported() bool
}

type noopNotifier struct{}

func (n *noopNotifier) Send(title, message string) error          { return nil }
func (n *noopNotifier) SendWithSound(title, message string) error { return nil }
func (n *noopNotifier) IsSupported() bool                         { return false }

// New creates a platform-specific notifier, or a no-op notifier when the
// platform has no supported mechanism.
func New() Notifier {
	n := newPlatformNotifier()
	if n == nil || !n.IsSupported() {
		return &noopNotifier{}
	}
	return n
}

// FormatGoalReached builds the notification for hitting the daily task
// goal.
func FormatGoalReached(goal int) (title, message string) {
	title = "Daily goal reached"
	if goal == 1 {
		message = "You completed your task for today."
	} else {
		message = fmt.Sprintf("You completed %d tasks today.", goal)
	}
	return title, message
}
