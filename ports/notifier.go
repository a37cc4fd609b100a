package ports

import "context"

// Permission mirrors the notification permission states of the runtime.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

// Notification is one message to deliver. Tag is a fixed dedup identifier:
// repeated sends with the same tag replace the previous delivery rather than
// stacking duplicates.
type Notification struct {
	Title string
	Body  string
	Tag   string
}

// Notifier delivers reminder notifications through some channel.
type Notifier interface {
	// Permission reports whether the channel may deliver at all.
	Permission(ctx context.Context) Permission

	// Send delivers one notification. Implementations coalesce on Tag.
	Send(ctx context.Context, n Notification) error
}
