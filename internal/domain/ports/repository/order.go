package repository

import (
	"context"
	"time"

	"subscription-storefront/internal/domain/model"
)

// OrderRepository persists customer orders. Implementations assign the ID on
// Create and return it. ListAll orders by creation time, newest first.
type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) (string, error)
	ListAll(ctx context.Context) ([]*model.Order, error)
	FindByID(ctx context.Context, id string) (*model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus, updatedAt time.Time) error
}
