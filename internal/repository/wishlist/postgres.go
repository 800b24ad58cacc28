package wishlist

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

func (r *postgresRepo) Add(ctx context.Context, userID, productID string) (*domain.WishlistItem, bool, error) {
	const ins = `
INSERT INTO wishlist_items (user_id, product_id)
VALUES ($1, $2)
ON CONFLICT (user_id, product_id) DO NOTHING
RETURNING id::text, user_id::text, product_id::text, added_at
`
	var entry domain.WishlistItem
	err := r.pool.QueryRow(ctx, ins, userID, productID).Scan(&entry.ID, &entry.UserID, &entry.ProductID, &entry.AddedAt)
	if err == nil {
		return &entry, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	// Conflict path: the pair already exists, fetch it.
	const sel = `
SELECT id::text, user_id::text, product_id::text, added_at
FROM wishlist_items
WHERE user_id = $1 AND product_id = $2
`
	if err := r.pool.QueryRow(ctx, sel, userID, productID).Scan(&entry.ID, &entry.UserID, &entry.ProductID, &entry.AddedAt); err != nil {
		return nil, false, err
	}
	return &entry, false, nil
}

func (r *postgresRepo) Remove(ctx context.Context, userID, productID string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2
`, userID, productID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	const q = `
SELECT w.id::text, w.user_id::text, w.product_id::text, w.added_at,
       p.name, p.slug, p.price_cents, p.brand, p.rating
FROM wishlist_items w
JOIN products p ON p.id = w.product_id
WHERE w.user_id = $1
ORDER BY w.added_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.WishlistItem
	for rows.Next() {
		var entry domain.WishlistItem
		var product domain.Product
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.ProductID, &entry.AddedAt,
			&product.Name, &product.Slug, &product.PriceCents, &product.Brand, &product.Rating,
		); err != nil {
			return nil, err
		}
		product.ID = entry.ProductID
		entry.Product = &product
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
