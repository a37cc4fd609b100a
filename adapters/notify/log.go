// Package notify provides Notifier implementations: a Telegram channel and a
// log-only fallback for deployments without a configured channel.
package notify

import (
	"context"

	"studyplan/internal"
	"studyplan/ports"
)

// LogNotifier writes notifications to the application log. Its permission is
// "default": present but never actually granted, so reminder checks treat it
// as a silent no-op path rather than an error.
type LogNotifier struct {
	log *internal.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(log *internal.Logger) *LogNotifier {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &LogNotifier{log: log}
}

// Permission always reports the undecided default state.
func (n *LogNotifier) Permission(ctx context.Context) ports.Permission {
	return ports.PermissionDefault
}

// Send logs the notification instead of delivering it.
func (n *LogNotifier) Send(ctx context.Context, notification ports.Notification) error {
	n.log.Info("notification [%s] %s: %s", notification.Tag, notification.Title, notification.Body)
	return nil
}
