// Package memory holds in-memory implementations of the repository ports.
// They back unit tests and serve as the degraded fallback when no database
// is configured, so the process can still come up and accept reads.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"subscription-storefront/internal/domain"
	"subscription-storefront/internal/domain/model"
	"subscription-storefront/internal/domain/ports/repository"

	"github.com/oklog/ulid/v2"
)

var (
	_ repository.OrderRepository      = (*OrderRepo)(nil)
	_ repository.SuggestionRepository = (*SuggestionRepo)(nil)
	_ repository.InquiryRepository    = (*InquiryRepo)(nil)
)

type OrderRepo struct {
	mu     sync.Mutex
	orders []*model.Order
}

func NewOrderRepo() *OrderRepo { return &OrderRepo{} }

func (r *OrderRepo) Create(ctx context.Context, o *model.Order) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	if cp.ID == "" {
		cp.ID = ulid.Make().String()
	}
	r.orders = append(r.orders, &cp)
	return cp.ID, nil
}

func (r *OrderRepo) ListAll(ctx context.Context) ([]*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Order, len(r.orders))
	for i, o := range r.orders {
		cp := *o
		out[i] = &cp
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *OrderRepo) FindByID(ctx context.Context, id string) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			o.Status = status
			ts := updatedAt
			o.UpdatedAt = &ts
			return nil
		}
	}
	return domain.ErrNotFound
}

type SuggestionRepo struct {
	mu          sync.Mutex
	suggestions []*model.Suggestion
}

func NewSuggestionRepo() *SuggestionRepo { return &SuggestionRepo{} }

func (r *SuggestionRepo) Create(ctx context.Context, s *model.Suggestion) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	if cp.ID == "" {
		cp.ID = ulid.Make().String()
	}
	r.suggestions = append(r.suggestions, &cp)
	return cp.ID, nil
}

func (r *SuggestionRepo) ListAll(ctx context.Context) ([]*model.Suggestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Suggestion, len(r.suggestions))
	for i, s := range r.suggestions {
		cp := *s
		out[i] = &cp
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *SuggestionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.suggestions {
		if s.ID == id {
			r.suggestions = append(r.suggestions[:i], r.suggestions[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type InquiryRepo struct {
	mu        sync.Mutex
	inquiries []*model.Inquiry
}

func NewInquiryRepo() *InquiryRepo { return &InquiryRepo{} }

func (r *InquiryRepo) Create(ctx context.Context, q *model.Inquiry) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *q
	if cp.ID == "" {
		cp.ID = ulid.Make().String()
	}
	r.inquiries = append(r.inquiries, &cp)
	return cp.ID, nil
}

func (r *InquiryRepo) ListAll(ctx context.Context) ([]*model.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Inquiry, len(r.inquiries))
	for i, q := range r.inquiries {
		cp := *q
		out[i] = &cp
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InquiryRepo) FindByID(ctx context.Context, id string) (*model.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.inquiries {
		if q.ID == id {
			cp := *q
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *InquiryRepo) UpdateStatus(ctx context.Context, id string, status model.InquiryStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.inquiries {
		if q.ID == id {
			q.Status = status
			ts := updatedAt
			q.UpdatedAt = &ts
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *InquiryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, q := range r.inquiries {
		if q.ID == id {
			r.inquiries = append(r.inquiries[:i], r.inquiries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
