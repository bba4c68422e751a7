package telegram

import (
	"context"

	"subscription-storefront/internal/domain/ports/adapter"
)

// NoopNotifier is wired when no bot token is configured.
type NoopNotifier struct{}

var _ adapter.Notifier = (*NoopNotifier)(nil)

func (NoopNotifier) Send(ctx context.Context, text string) error { return nil }
