package adapter

import "context"

// Notifier pushes a human-readable message to the admin chat channel.
// Delivery is best-effort: callers log failures and never propagate them
// into the request that triggered the notification.
type Notifier interface {
	Send(ctx context.Context, text string) error
}
