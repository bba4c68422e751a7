package usecase

import (
	"context"
	"sync"

	"subscription-storefront/internal/domain/model"

	"github.com/rs/zerolog"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func testCatalog() *model.Catalog {
	c, err := model.NewCatalog(
		[]model.Subscription{
			{ID: 1, Name: "Netflix", BasePrice: 125},
			{ID: 2, Name: "Shahid VIP", BasePrice: 65},
		},
		map[int][]model.Plan{
			1: {
				{Key: "monthly", Name: "Netflix شهري", Duration: model.DurationMonthly, Price: 125},
				{Key: "yearly", Name: "Netflix سنوي", Duration: model.DurationYearly, Price: 1200},
			},
		},
	)
	if err != nil {
		panic(err)
	}
	return c
}

// captureNotifier records every message sent through it; tests run without a
// worker pool so sends happen inline.
type captureNotifier struct {
	mu    sync.Mutex
	texts []string
	err   error // used by tests to simulate send failures
}

func (n *captureNotifier) Send(ctx context.Context, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.texts = append(n.texts, text)
	return nil
}

func (n *captureNotifier) Texts() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.texts))
	copy(out, n.texts)
	return out
}
