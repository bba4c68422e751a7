package postgres

import (
	"context"
	"fmt"
	"time"

	"subscription-storefront/internal/domain"
	"subscription-storefront/internal/domain/model"
	"subscription-storefront/internal/domain/ports/repository"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/oklog/ulid/v2"
)

var _ repository.InquiryRepository = (*InquiryRepo)(nil)

type InquiryRepo struct {
	pool *pgxpool.Pool
}

func NewInquiryRepo(pool *pgxpool.Pool) *InquiryRepo {
	return &InquiryRepo{pool: pool}
}

func (r *InquiryRepo) Create(ctx context.Context, q *model.Inquiry) (string, error) {
	id := q.ID
	if id == "" {
		id = ulid.Make().String()
	}
	const sql = `
INSERT INTO inquiries (id, name, email, subject, message, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7);
`
	_, err := r.pool.Exec(ctx, sql, id, q.Name, q.Email, q.Subject, q.Message, string(q.Status), q.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("Create inquiry: %w", err)
	}
	q.ID = id
	return id, nil
}

func (r *InquiryRepo) ListAll(ctx context.Context) ([]*model.Inquiry, error) {
	const sql = `
SELECT id, name, email, subject, message, status, created_at, updated_at
  FROM inquiries
 ORDER BY created_at DESC;
`
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("ListAll inquiries: %w", err)
	}
	defer rows.Close()
	var out []*model.Inquiry
	for rows.Next() {
		q, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func scanInquiry(row pgx.Row) (*model.Inquiry, error) {
	var q model.Inquiry
	var status string
	if err := row.Scan(&q.ID, &q.Name, &q.Email, &q.Subject, &q.Message, &status, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return nil, err
	}
	q.Status = model.InquiryStatus(status)
	return &q, nil
}

func (r *InquiryRepo) FindByID(ctx context.Context, id string) (*model.Inquiry, error) {
	const sql = `
SELECT id, name, email, subject, message, status, created_at, updated_at
  FROM inquiries
 WHERE id = $1;
`
	q, err := scanInquiry(r.pool.QueryRow(ctx, sql, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("FindByID inquiry: %w", err)
	}
	return q, nil
}

func (r *InquiryRepo) UpdateStatus(ctx context.Context, id string, status model.InquiryStatus, updatedAt time.Time) error {
	const sql = `UPDATE inquiries SET status = $2, updated_at = $3 WHERE id = $1;`
	ct, err := r.pool.Exec(ctx, sql, id, string(status), updatedAt)
	if err != nil {
		return fmt.Errorf("UpdateStatus inquiry: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InquiryRepo) Delete(ctx context.Context, id string) error {
	const sql = `DELETE FROM inquiries WHERE id = $1;`
	ct, err := r.pool.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("Delete inquiry: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
