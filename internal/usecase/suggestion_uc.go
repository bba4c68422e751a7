package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"subscription-storefront/internal/domain"
	"subscription-storefront/internal/domain/model"
	"subscription-storefront/internal/domain/ports/adapter"
	"subscription-storefront/internal/domain/ports/repository"
	"subscription-storefront/internal/infra/metrics"
	"subscription-storefront/internal/infra/worker"

	"github.com/rs/zerolog"
)

// anonymousPlaceholder substitutes missing name/contact fields when the
// deployment allows anonymous submissions.
const anonymousPlaceholder = "غير محدد"

type SuggestionUseCase struct {
	suggestions repository.SuggestionRepository
	notifier    adapter.Notifier
	pool        *worker.Pool

	allowAnonymous bool

	log *zerolog.Logger
}

func NewSuggestionUseCase(
	suggestions repository.SuggestionRepository,
	notifier adapter.Notifier,
	pool *worker.Pool,
	allowAnonymous bool,
	logger *zerolog.Logger,
) *SuggestionUseCase {
	compLog := logger.With().Str("component", "SuggestionUseCase").Logger()
	return &SuggestionUseCase{
		suggestions:    suggestions,
		notifier:       notifier,
		pool:           pool,
		allowAnonymous: allowAnonymous,
		log:            &compLog,
	}
}

func (uc *SuggestionUseCase) Submit(ctx context.Context, name, contact, message string) (*model.Suggestion, error) {
	name = strings.TrimSpace(name)
	contact = strings.TrimSpace(contact)
	message = strings.TrimSpace(message)

	if message == "" {
		metrics.IncSubmission("suggestion", "rejected")
		return nil, domain.Invalid("نص الاقتراح مطلوب")
	}
	if name == "" || contact == "" {
		if !uc.allowAnonymous {
			metrics.IncSubmission("suggestion", "rejected")
			return nil, domain.Invalid("الاسم ووسيلة التواصل مطلوبان")
		}
		if name == "" {
			name = anonymousPlaceholder
		}
		if contact == "" {
			contact = anonymousPlaceholder
		}
	}

	s := &model.Suggestion{
		Name:      name,
		Contact:   contact,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	id, err := uc.suggestions.Create(ctx, s)
	if err != nil {
		metrics.IncSubmission("suggestion", "error")
		return nil, fmt.Errorf("submit suggestion: %w", err)
	}
	s.ID = id
	metrics.IncSubmission("suggestion", "accepted")

	dispatchNotification(uc.pool, uc.notifier, uc.log, formatSuggestionMessage(s))
	return s, nil
}

func (uc *SuggestionUseCase) List(ctx context.Context) ([]*model.Suggestion, error) {
	return uc.suggestions.ListAll(ctx)
}

func (uc *SuggestionUseCase) Delete(ctx context.Context, id string) error {
	return uc.suggestions.Delete(ctx, id)
}
