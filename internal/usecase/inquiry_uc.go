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

type SubmitInquiryInput struct {
	Name    string
	Email   string `validate:"required,email"`
	Subject string
	Message string `validate:"required"`
}

type InquiryUseCase struct {
	inquiries repository.InquiryRepository
	notifier  adapter.Notifier
	pool      *worker.Pool

	allowAnonymous bool

	log *zerolog.Logger
}

func NewInquiryUseCase(
	inquiries repository.InquiryRepository,
	notifier adapter.Notifier,
	pool *worker.Pool,
	allowAnonymous bool,
	logger *zerolog.Logger,
) *InquiryUseCase {
	compLog := logger.With().Str("component", "InquiryUseCase").Logger()
	return &InquiryUseCase{
		inquiries:      inquiries,
		notifier:       notifier,
		pool:           pool,
		allowAnonymous: allowAnonymous,
		log:            &compLog,
	}
}

func (uc *InquiryUseCase) Submit(ctx context.Context, in SubmitInquiryInput) (*model.Inquiry, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)

	if err := validate.Struct(in); err != nil {
		metrics.IncSubmission("inquiry", "rejected")
		return nil, invalidInput(err)
	}
	if in.Name == "" {
		if !uc.allowAnonymous {
			metrics.IncSubmission("inquiry", "rejected")
			return nil, domain.Invalid("الاسم مطلوب")
		}
		in.Name = anonymousPlaceholder
	}

	q := &model.Inquiry{
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		Status:    model.InquiryStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	id, err := uc.inquiries.Create(ctx, q)
	if err != nil {
		metrics.IncSubmission("inquiry", "error")
		return nil, fmt.Errorf("submit inquiry: %w", err)
	}
	q.ID = id
	metrics.IncSubmission("inquiry", "accepted")

	dispatchNotification(uc.pool, uc.notifier, uc.log, formatInquiryMessage(q))
	return q, nil
}

func (uc *InquiryUseCase) List(ctx context.Context) ([]*model.Inquiry, error) {
	return uc.inquiries.ListAll(ctx)
}

func (uc *InquiryUseCase) UpdateStatus(ctx context.Context, id string, status model.InquiryStatus) error {
	if !status.Valid() {
		return domain.Invalid("حالة الاستفسار غير صالحة")
	}
	return uc.inquiries.UpdateStatus(ctx, id, status, time.Now().UTC())
}

func (uc *InquiryUseCase) Delete(ctx context.Context, id string) error {
	return uc.inquiries.Delete(ctx, id)
}
