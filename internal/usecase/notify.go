package usecase

import (
	"context"
	"fmt"
	"strings"

	"subscription-storefront/internal/domain/model"
	"subscription-storefront/internal/domain/ports/adapter"
	"subscription-storefront/internal/infra/metrics"
	"subscription-storefront/internal/infra/worker"

	"github.com/rs/zerolog"
)

// dispatchNotification sends text to the admin channel without ever failing
// the request that produced it. With a pool the send happens on a worker;
// without one (tests, minimal deployments) it runs inline but errors are
// still swallowed and logged.
func dispatchNotification(pool *worker.Pool, notifier adapter.Notifier, log *zerolog.Logger, text string) {
	task := func(ctx context.Context) error {
		if err := notifier.Send(ctx, text); err != nil {
			metrics.IncNotification("failed")
			return fmt.Errorf("send notification: %w", err)
		}
		metrics.IncNotification("sent")
		return nil
	}
	if pool == nil {
		if err := task(context.Background()); err != nil {
			log.Error().Err(err).Msg("notification failed")
		}
		return
	}
	if err := pool.Submit(task); err != nil {
		metrics.IncNotification("dropped")
		log.Warn().Err(err).Msg("notification dropped")
	}
}

func formatOrderMessage(o *model.Order, baseURL string) string {
	var b strings.Builder
	b.WriteString("طلب اشتراك جديد:\n")
	fmt.Fprintf(&b, "الخدمة: %s\n", o.SubscriptionName)
	if o.PlanName != "" {
		fmt.Fprintf(&b, "الباقة: %s (%s) - %d جنيه\n", o.PlanName, o.PlanDuration, o.PlanPrice)
	} else {
		fmt.Fprintf(&b, "السعر: %d جنيه\n", o.PlanPrice)
	}
	fmt.Fprintf(&b, "اسم الحساب: %s\n", o.AccountName)
	fmt.Fprintf(&b, "البريد الإلكتروني: %s\n", o.Email)
	fmt.Fprintf(&b, "رقم الهاتف: %s\n", o.Phone)
	fmt.Fprintf(&b, "رقم التحويل: %s\n", o.TransferNumber)
	if o.TransferScreenshot != "" {
		fmt.Fprintf(&b, "إيصال التحويل: %s\n", ScreenshotLink(baseURL, o.TransferScreenshot))
	}
	return b.String()
}

// ScreenshotLink builds the admin-gated retrieval URL for a stored file.
func ScreenshotLink(baseURL, name string) string {
	return strings.TrimRight(baseURL, "/") + "/api/screenshot/" + name
}

func formatSuggestionMessage(s *model.Suggestion) string {
	var b strings.Builder
	b.WriteString("اقتراح جديد:\n")
	fmt.Fprintf(&b, "الاسم: %s\n", s.Name)
	fmt.Fprintf(&b, "وسيلة التواصل: %s\n", s.Contact)
	fmt.Fprintf(&b, "الرسالة: %s\n", s.Message)
	return b.String()
}

func formatInquiryMessage(q *model.Inquiry) string {
	var b strings.Builder
	b.WriteString("استفسار جديد:\n")
	fmt.Fprintf(&b, "الاسم: %s\n", q.Name)
	fmt.Fprintf(&b, "البريد الإلكتروني: %s\n", q.Email)
	if q.Subject != "" {
		fmt.Fprintf(&b, "الموضوع: %s\n", q.Subject)
	}
	fmt.Fprintf(&b, "الرسالة: %s\n", q.Message)
	return b.String()
}
