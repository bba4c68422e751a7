package usecase

import (
	"context"
	"fmt"
	"time"

	"subscription-storefront/internal/domain"
	"subscription-storefront/internal/domain/model"
	"subscription-storefront/internal/domain/ports/adapter"
	"subscription-storefront/internal/domain/ports/repository"
	"subscription-storefront/internal/infra/metrics"
	"subscription-storefront/internal/infra/worker"

	"github.com/rs/zerolog"
)

// SubmitOrderInput carries the parsed form fields of an order submission.
// Screenshot is the already-stored filename, empty when no file was sent;
// cleanup of that file on rejection is the caller's responsibility.
type SubmitOrderInput struct {
	SubscriptionID string `validate:"required"`
	PlanKey        string
	AccountName    string `validate:"required"`
	Email          string `validate:"required,email"`
	Phone          string `validate:"required"`
	TransferNumber string `validate:"required"`
	Screenshot     string
}

// OrderUseCase implements the order submission pipeline and the admin
// read/update operations.
type OrderUseCase struct {
	orders   repository.OrderRepository
	catalog  *model.Catalog
	notifier adapter.Notifier
	pool     *worker.Pool

	baseURL            string
	requireScreenshot  bool
	allowAnyTransition bool

	log *zerolog.Logger
}

func NewOrderUseCase(
	orders repository.OrderRepository,
	catalog *model.Catalog,
	notifier adapter.Notifier,
	pool *worker.Pool,
	baseURL string,
	requireScreenshot bool,
	allowAnyTransition bool,
	logger *zerolog.Logger,
) *OrderUseCase {
	compLog := logger.With().Str("component", "OrderUseCase").Logger()
	return &OrderUseCase{
		orders:             orders,
		catalog:            catalog,
		notifier:           notifier,
		pool:               pool,
		baseURL:            baseURL,
		requireScreenshot:  requireScreenshot,
		allowAnyTransition: allowAnyTransition,
		log:                &compLog,
	}
}

// RequiresScreenshot reports the deployment policy for the upload field.
func (uc *OrderUseCase) RequiresScreenshot() bool { return uc.requireScreenshot }

// Submit validates the submission against the catalog, persists the order
// and dispatches the admin notification. Validation failures return an error
// matching domain.ErrInvalidArgument; the caller must remove any stored
// screenshot before responding.
func (uc *OrderUseCase) Submit(ctx context.Context, in SubmitOrderInput) (*model.Order, error) {
	if err := validate.Struct(in); err != nil {
		metrics.IncOrderSubmitted("rejected")
		return nil, invalidInput(err)
	}

	subID, err := model.ParseSubscriptionID(in.SubscriptionID)
	if err != nil {
		metrics.IncOrderSubmitted("rejected")
		return nil, domain.Invalid("الخدمة المطلوبة غير متوفرة")
	}
	sub, ok := uc.catalog.Subscription(subID)
	if !ok {
		metrics.IncOrderSubmitted("rejected")
		return nil, domain.Invalid("الخدمة المطلوبة غير متوفرة")
	}

	price := sub.BasePrice
	var planName, planDuration string
	if in.PlanKey != "" {
		plan, ok := uc.catalog.FindPlan(subID, in.PlanKey)
		if !ok {
			metrics.IncOrderSubmitted("rejected")
			return nil, domain.Invalid("الباقة المختارة غير متوفرة")
		}
		price = plan.Price
		planName = plan.Name
		planDuration = plan.Duration
	}

	if uc.requireScreenshot && in.Screenshot == "" {
		metrics.IncOrderSubmitted("rejected")
		return nil, domain.Invalid("صورة إيصال التحويل مطلوبة")
	}

	o := &model.Order{
		SubscriptionID:     subID,
		SubscriptionName:   sub.Name,
		PlanKey:            in.PlanKey,
		PlanName:           planName,
		PlanDuration:       planDuration,
		PlanPrice:          price,
		AccountName:        in.AccountName,
		Email:              in.Email,
		Phone:              in.Phone,
		TransferNumber:     in.TransferNumber,
		TransferScreenshot: in.Screenshot,
		Status:             model.OrderStatusPending,
		Type:               model.OrderTypeCustomer,
		CreatedAt:          time.Now().UTC(),
	}
	id, err := uc.orders.Create(ctx, o)
	if err != nil {
		metrics.IncOrderSubmitted("error")
		return nil, fmt.Errorf("submit order: %w", err)
	}
	o.ID = id
	metrics.IncOrderSubmitted("accepted")

	dispatchNotification(uc.pool, uc.notifier, uc.log, formatOrderMessage(o, uc.baseURL))
	return o, nil
}

// List returns all orders, newest first.
func (uc *OrderUseCase) List(ctx context.Context) ([]*model.Order, error) {
	return uc.orders.ListAll(ctx)
}

// UpdateStatus sets an order's status. Unknown statuses are rejected; with
// the strict transition policy a terminal order cannot move to a different
// status.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	if !status.Valid() {
		return domain.Invalid("حالة الطلب غير صالحة")
	}
	if !uc.allowAnyTransition {
		current, err := uc.orders.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if current.Status.Terminal() && current.Status != status {
			return domain.Invalid("لا يمكن تغيير حالة طلب مكتمل أو ملغي")
		}
	}
	if err := uc.orders.UpdateStatus(ctx, id, status, time.Now().UTC()); err != nil {
		return err
	}
	metrics.IncOrderStatusUpdate(string(status))
	return nil
}
