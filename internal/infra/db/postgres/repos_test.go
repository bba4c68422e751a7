//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"subscription-storefront/internal/domain"
	"subscription-storefront/internal/domain/model"
)

func TestOrderRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	repo := NewOrderRepo(testPool)
	ctx := context.Background()
	cleanup(t)

	order := &model.Order{
		SubscriptionID:     1,
		SubscriptionName:   "Netflix",
		PlanKey:            "monthly",
		PlanName:           "Netflix شهري",
		PlanDuration:       model.DurationMonthly,
		PlanPrice:          125,
		AccountName:        "Ahmed",
		Email:              "ahmed@example.com",
		Phone:              "01000000000",
		TransferNumber:     "12345",
		TransferScreenshot: "screenshot-1-abcdef12.png",
		Status:             model.OrderStatusPending,
		Type:               model.OrderTypeCustomer,
		CreatedAt:          time.Now().UTC().Truncate(time.Millisecond),
	}

	t.Run("create assigns an id and round-trips", func(t *testing.T) {
		id, err := repo.Create(ctx, order)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if id == "" || order.ID != id {
			t.Fatalf("id = %q, order.ID = %q", id, order.ID)
		}

		got, err := repo.FindByID(ctx, id)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if got.Email != order.Email || got.PlanPrice != 125 || got.Status != model.OrderStatusPending {
			t.Errorf("round-trip mismatch: %+v", got)
		}
		if got.UpdatedAt != nil {
			t.Errorf("fresh order must have nil UpdatedAt, got %v", got.UpdatedAt)
		}
	})

	t.Run("duplicate id is rejected", func(t *testing.T) {
		dup := *order
		if _, err := repo.Create(ctx, &dup); !errors.Is(err, domain.ErrAlreadyExists) {
			t.Fatalf("got %v, want already-exists", err)
		}
	})

	t.Run("list newest first", func(t *testing.T) {
		second := &model.Order{
			SubscriptionID: 2, SubscriptionName: "Shahid VIP", PlanPrice: 65,
			AccountName: "Sara", Email: "sara@example.com", Phone: "0101",
			TransferNumber: "6", Status: model.OrderStatusPending,
			Type:      model.OrderTypeCustomer,
			CreatedAt: order.CreatedAt.Add(time.Second),
		}
		if _, err := repo.Create(ctx, second); err != nil {
			t.Fatalf("Create: %v", err)
		}

		orders, err := repo.ListAll(ctx)
		if err != nil {
			t.Fatalf("ListAll: %v", err)
		}
		if len(orders) != 2 || orders[0].ID != second.ID {
			t.Fatalf("orders = %v", orders)
		}
	})

	t.Run("update status", func(t *testing.T) {
		ts := time.Now().UTC().Truncate(time.Millisecond)
		if err := repo.UpdateStatus(ctx, order.ID, model.OrderStatusCompleted, ts); err != nil {
			t.Fatalf("UpdateStatus: %v", err)
		}
		got, err := repo.FindByID(ctx, order.ID)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if got.Status != model.OrderStatusCompleted || got.UpdatedAt == nil {
			t.Errorf("order = %+v", got)
		}

		if err := repo.UpdateStatus(ctx, "missing", model.OrderStatusCompleted, ts); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("missing order: got %v", err)
		}
	})

	t.Run("find missing", func(t *testing.T) {
		if _, err := repo.FindByID(ctx, "no-such-id"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("got %v, want not-found", err)
		}
	})
}

func TestSuggestionRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	repo := NewSuggestionRepo(testPool)
	ctx := context.Background()
	cleanup(t)

	s := &model.Suggestion{
		Name:      "Sara",
		Contact:   "sara@example.com",
		Message:   "اقتراح",
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	id, err := repo.Create(ctx, s)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	items, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(items) != 1 || items[0].ID != id || items[0].Message != "اقتراح" {
		t.Fatalf("items = %v", items)
	}

	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, id); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: got %v", err)
	}
}

func TestInquiryRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	repo := NewInquiryRepo(testPool)
	ctx := context.Background()
	cleanup(t)

	q := &model.Inquiry{
		Name:      "Omar",
		Email:     "omar@example.com",
		Subject:   "سؤال",
		Message:   "نص",
		Status:    model.InquiryStatusPending,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	id, err := repo.Create(ctx, q)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Subject != "سؤال" || got.Status != model.InquiryStatusPending {
		t.Errorf("inquiry = %+v", got)
	}

	if err := repo.UpdateStatus(ctx, id, model.InquiryStatusAnswered, time.Now().UTC()); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	got, _ = repo.FindByID(ctx, id)
	if got.Status != model.InquiryStatusAnswered || got.UpdatedAt == nil {
		t.Errorf("inquiry after update = %+v", got)
	}

	items, err := repo.ListAll(ctx)
	if err != nil || len(items) != 1 {
		t.Fatalf("ListAll = %v, %v", items, err)
	}

	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, id); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("find after delete: got %v", err)
	}
}
