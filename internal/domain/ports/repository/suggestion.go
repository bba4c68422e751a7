package repository

import (
	"context"

	"subscription-storefront/internal/domain/model"
)

type SuggestionRepository interface {
	Create(ctx context.Context, s *model.Suggestion) (string, error)
	ListAll(ctx context.Context) ([]*model.Suggestion, error)
	Delete(ctx context.Context, id string) error
}
