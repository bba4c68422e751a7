package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"subscription-storefront/internal/domain"
	"subscription-storefront/internal/infra/memory"
)

func TestSuggestionSubmit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewSuggestionRepo()
	notifier := &captureNotifier{}
	uc := NewSuggestionUseCase(repo, notifier, nil, true, testLogger())

	s, err := uc.Submit(ctx, "  Sara  ", "sara@example.com", " فكرة لتحسين الموقع ")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if s.ID == "" {
		t.Fatal("expected an assigned id")
	}
	if s.Name != "Sara" || s.Message != "فكرة لتحسين الموقع" {
		t.Errorf("fields not trimmed: %+v", s)
	}

	texts := notifier.Texts()
	if len(texts) != 1 || !strings.Contains(texts[0], "اقتراح جديد") {
		t.Fatalf("notification = %v", texts)
	}
}

func TestSuggestionSubmitAnonymous(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc := NewSuggestionUseCase(memory.NewSuggestionRepo(), &captureNotifier{}, nil, true, testLogger())

	s, err := uc.Submit(ctx, "", "", "اقتراح بدون اسم")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if s.Name != "غير محدد" || s.Contact != "غير محدد" {
		t.Errorf("placeholders not applied: %+v", s)
	}
}

func TestSuggestionSubmitAnonymousDisallowed(t *testing.T) {
	t.Parallel()

	uc := NewSuggestionUseCase(memory.NewSuggestionRepo(), &captureNotifier{}, nil, false, testLogger())

	if _, err := uc.Submit(context.Background(), "", "x@y.com", "نص"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("missing name: got %v", err)
	}
	if _, err := uc.Submit(context.Background(), "Sara", "", "نص"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("missing contact: got %v", err)
	}
}

func TestSuggestionSubmitEmptyMessage(t *testing.T) {
	t.Parallel()

	uc := NewSuggestionUseCase(memory.NewSuggestionRepo(), &captureNotifier{}, nil, true, testLogger())

	if _, err := uc.Submit(context.Background(), "Sara", "x@y.com", "   "); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("blank message: got %v", err)
	}
}

func TestSuggestionListAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewSuggestionRepo()
	uc := NewSuggestionUseCase(repo, &captureNotifier{}, nil, true, testLogger())

	s, err := uc.Submit(ctx, "Sara", "x@y.com", "نص")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	items, err := uc.List(ctx)
	if err != nil || len(items) != 1 {
		t.Fatalf("List = %v, %v", items, err)
	}

	if err := uc.Delete(ctx, s.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := uc.Delete(ctx, s.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: got %v", err)
	}
	if items, _ := uc.List(ctx); len(items) != 0 {
		t.Error("list should be empty after delete")
	}
}
