package category

import (
	"context"
	"errors"

	"trendyshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListChildren(ctx context.Context, parentID *string) ([]domain.Category, error) {
	const q = `
SELECT id::text, name, slug, parent_id::text, created_at
FROM categories
WHERE ($1::uuid IS NULL AND parent_id IS NULL) OR parent_id = $1
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetBySlugAndParent(ctx context.Context, slug string, parentID *string) (*domain.Category, error) {
	const q = `
SELECT id::text, name, slug, parent_id::text, created_at
FROM categories
WHERE slug = $1
  AND (($2::uuid IS NULL AND parent_id IS NULL) OR parent_id = $2)
`
	var c domain.Category
	err := r.pool.QueryRow(ctx, q, slug, parentID).Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) DescendantIDs(ctx context.Context, categoryID string) ([]string, error) {
	const q = `
WITH RECURSIVE tree AS (
    SELECT id FROM categories WHERE id = $1
    UNION ALL
    SELECT c.id FROM categories c JOIN tree t ON c.parent_id = t.id
)
SELECT id::text FROM tree
`
	rows, err := r.pool.Query(ctx, q, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
