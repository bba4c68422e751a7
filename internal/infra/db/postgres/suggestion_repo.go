package postgres

import (
	"context"
	"fmt"

	"subscription-storefront/internal/domain"
	"subscription-storefront/internal/domain/model"
	"subscription-storefront/internal/domain/ports/repository"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/oklog/ulid/v2"
)

var _ repository.SuggestionRepository = (*SuggestionRepo)(nil)

type SuggestionRepo struct {
	pool *pgxpool.Pool
}

func NewSuggestionRepo(pool *pgxpool.Pool) *SuggestionRepo {
	return &SuggestionRepo{pool: pool}
}

func (r *SuggestionRepo) Create(ctx context.Context, s *model.Suggestion) (string, error) {
	id := s.ID
	if id == "" {
		id = ulid.Make().String()
	}
	const sql = `
INSERT INTO suggestions (id, name, contact, message, created_at)
VALUES ($1, $2, $3, $4, $5);
`
	_, err := r.pool.Exec(ctx, sql, id, s.Name, s.Contact, s.Message, s.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("Create suggestion: %w", err)
	}
	s.ID = id
	return id, nil
}

func (r *SuggestionRepo) ListAll(ctx context.Context) ([]*model.Suggestion, error) {
	const sql = `
SELECT id, name, contact, message, created_at
  FROM suggestions
 ORDER BY created_at DESC;
`
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("ListAll suggestions: %w", err)
	}
	defer rows.Close()
	var out []*model.Suggestion
	for rows.Next() {
		var s model.Suggestion
		if err := rows.Scan(&s.ID, &s.Name, &s.Contact, &s.Message, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *SuggestionRepo) Delete(ctx context.Context, id string) error {
	const sql = `DELETE FROM suggestions WHERE id = $1;`
	ct, err := r.pool.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("Delete suggestion: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
