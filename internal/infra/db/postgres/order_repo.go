package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"subscription-storefront/internal/domain"
	"subscription-storefront/internal/domain/model"
	"subscription-storefront/internal/domain/ports/repository"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/oklog/ulid/v2"
)

// Ensure interface compliance
var _ repository.OrderRepository = (*OrderRepo)(nil)

type OrderRepo struct {
	pool *pgxpool.Pool
}

func NewOrderRepo(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *OrderRepo) Create(ctx context.Context, o *model.Order) (string, error) {
	id := o.ID
	if id == "" {
		id = ulid.Make().String()
	}
	const sql = `
INSERT INTO orders (id, subscription_id, subscription_name, plan_key, plan_name,
                    plan_duration, plan_price, account_name, email, phone,
                    transfer_number, transfer_screenshot, status, type, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
`
	_, err := r.pool.Exec(ctx, sql,
		id, o.SubscriptionID, o.SubscriptionName, o.PlanKey, o.PlanName,
		o.PlanDuration, o.PlanPrice, o.AccountName, o.Email, o.Phone,
		o.TransferNumber, o.TransferScreenshot, string(o.Status), o.Type, o.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", domain.ErrAlreadyExists
		}
		return "", fmt.Errorf("Create order: %w", err)
	}
	o.ID = id
	return id, nil
}

const orderColumns = `id, subscription_id, subscription_name, plan_key, plan_name,
plan_duration, plan_price, account_name, email, phone,
transfer_number, transfer_screenshot, status, type, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var status string
	if err := row.Scan(
		&o.ID, &o.SubscriptionID, &o.SubscriptionName, &o.PlanKey, &o.PlanName,
		&o.PlanDuration, &o.PlanPrice, &o.AccountName, &o.Email, &o.Phone,
		&o.TransferNumber, &o.TransferScreenshot, &status, &o.Type, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	o.Status = model.OrderStatus(status)
	return &o, nil
}

func (r *OrderRepo) ListAll(ctx context.Context) ([]*model.Order, error) {
	sql := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC;`
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("ListAll orders: %w", err)
	}
	defer rows.Close()
	var out []*model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OrderRepo) FindByID(ctx context.Context, id string) (*model.Order, error) {
	sql := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1;`
	o, err := scanOrder(r.pool.QueryRow(ctx, sql, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("FindByID order: %w", err)
	}
	return o, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, updatedAt time.Time) error {
	const sql = `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1;`
	ct, err := r.pool.Exec(ctx, sql, id, string(status), updatedAt)
	if err != nil {
		return fmt.Errorf("UpdateStatus order: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
