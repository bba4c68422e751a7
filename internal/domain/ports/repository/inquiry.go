package repository

import (
	"context"
	"time"

	"subscription-storefront/internal/domain/model"
)

type InquiryRepository interface {
	Create(ctx context.Context, q *model.Inquiry) (string, error)
	ListAll(ctx context.Context) ([]*model.Inquiry, error)
	FindByID(ctx context.Context, id string) (*model.Inquiry, error)
	UpdateStatus(ctx context.Context, id string, status model.InquiryStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}
