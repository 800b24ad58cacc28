package product

import (
	"context"
	"errors"
	"io"
	"log"

	"trendyshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `p.id::text, p.name, p.slug, p.description, p.price_cents, p.original_price_cents, p.brand, p.category_id::text, p.is_trending, p.is_top_deal, p.rating, p.created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
WHERE p.id = $1
`
	return r.fetchOne(ctx, q, id)
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
WHERE p.slug = $1
`
	return r.fetchOne(ctx, q, slug)
}

func (r *postgresRepo) ListByCategoryIDs(ctx context.Context, categoryIDs []string) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
WHERE p.category_id = ANY($1::uuid[])
ORDER BY p.created_at DESC
`
	return r.list(ctx, q, categoryIDs)
}

func (r *postgresRepo) Search(ctx context.Context, filter SearchFilter) ([]domain.Product, error) {
	const q = `
SELECT DISTINCT ` + productColumns + `
FROM products p
JOIN categories c ON c.id = p.category_id
WHERE ($1 = '' OR p.name ILIKE '%' || $1 || '%'
               OR p.description ILIKE '%' || $1 || '%'
               OR p.brand ILIKE '%' || $1 || '%'
               OR c.name ILIKE '%' || $1 || '%')
  AND ($2::bigint = 0 OR p.price_cents >= $2)
  AND ($3::bigint = 0 OR p.price_cents <= $3)
  AND ($4 = '' OR p.brand ILIKE '%' || $4 || '%')
  AND ($5 = '' OR c.slug = $5)
ORDER BY p.created_at DESC
`
	result, err := r.list(ctx, q, filter.Query, filter.MinPriceCents, filter.MaxPriceCents, filter.Brand, filter.CategorySlug)
	if err != nil {
		r.logger.Printf("product repo: search q=%q error=%v", filter.Query, err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) ListTrending(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
WHERE p.is_trending
ORDER BY p.created_at DESC
`
	return r.list(ctx, q)
}

func (r *postgresRepo) ListTopDeals(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
WHERE p.is_top_deal
ORDER BY p.created_at DESC
`
	return r.list(ctx, q)
}

func (r *postgresRepo) fetchOne(ctx context.Context, q string, arg interface{}) (*domain.Product, error) {
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, arg).Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.PriceCents, &p.OriginalPriceCents,
		&p.Brand, &p.CategoryID, &p.IsTrending, &p.IsTopDeal, &p.Rating, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const variantsQuery = `
SELECT id::text, product_id::text, size, quantity
FROM product_variants
WHERE product_id = $1
ORDER BY size ASC
`
	rows, err := r.pool.Query(ctx, variantsQuery, p.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.ProductVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Size, &v.Quantity); err != nil {
			return nil, err
		}
		p.Variants = append(p.Variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Slug, &p.Description, &p.PriceCents, &p.OriginalPriceCents,
			&p.Brand, &p.CategoryID, &p.IsTrending, &p.IsTopDeal, &p.Rating, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
