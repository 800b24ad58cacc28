package cart

import (
	"context"
	"errors"

	"trendyshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const cartColumns = `id::text, user_id::text, COALESCE(cart_code, ''), paid, created_at, updated_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetOrCreate(ctx context.Context, owner domain.CartOwner, freshCode string) (*domain.Cart, error) {
	if owner.IsUser() {
		const ins = `
INSERT INTO carts (user_id, cart_code)
VALUES ($1, $2)
ON CONFLICT (user_id) WHERE NOT paid DO NOTHING
`
		if _, err := r.pool.Exec(ctx, ins, owner.UserID, freshCode); err != nil {
			return nil, err
		}
		return r.GetOpenByOwner(ctx, owner)
	}

	const ins = `
INSERT INTO carts (cart_code)
VALUES ($1)
ON CONFLICT (cart_code) DO NOTHING
`
	if _, err := r.pool.Exec(ctx, ins, owner.Code); err != nil {
		return nil, err
	}
	cart, err := r.GetOpenByOwner(ctx, owner)
	if errors.Is(err, domain.ErrNotFound) {
		// The code exists but belongs to a paid cart; caller mints a new one.
		return nil, domain.ErrCartAlreadyPaid
	}
	return cart, err
}

func (r *postgresRepo) GetOpenByOwner(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error) {
	if owner.IsUser() {
		return r.fetchCart(ctx, `
SELECT `+cartColumns+`
FROM carts
WHERE user_id = $1 AND NOT paid
`, owner.UserID)
	}
	return r.fetchCart(ctx, `
SELECT `+cartColumns+`
FROM carts
WHERE cart_code = $1 AND NOT paid
`, owner.Code)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Cart, error) {
	return r.fetchCart(ctx, `
SELECT `+cartColumns+`
FROM carts
WHERE id = $1
`, id)
}

func (r *postgresRepo) AddItem(ctx context.Context, cartID, productID, size string, quantity int) (*domain.CartItem, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock the cart row so an add cannot race a concurrent checkout and land
	// an item on a cart that was just paid.
	var paid bool
	err = tx.QueryRow(ctx, `SELECT paid FROM carts WHERE id = $1 FOR UPDATE`, cartID).Scan(&paid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if paid {
		return nil, domain.ErrCartAlreadyPaid
	}

	const q = `
INSERT INTO cart_items (cart_id, product_id, size, quantity)
VALUES ($1, $2, $3, $4)
ON CONFLICT (cart_id, product_id, size) DO UPDATE
SET quantity = cart_items.quantity + EXCLUDED.quantity
RETURNING id::text, cart_id::text, product_id::text, size, quantity, added_at
`
	var item domain.CartItem
	if err := tx.QueryRow(ctx, q, cartID, productID, size, quantity).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Size,
		&item.Quantity,
		&item.AddedAt,
	); err != nil {
		return nil, err
	}

	if err := touchCart(ctx, tx, cartID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *postgresRepo) SetItemQuantity(ctx context.Context, itemID string, quantity int) (*domain.CartItem, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Non-positive quantity means removal, not an error.
	if quantity <= 0 {
		var cartID string
		err := tx.QueryRow(ctx, `
DELETE FROM cart_items
WHERE id = $1
RETURNING cart_id::text
`, itemID).Scan(&cartID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, domain.ErrNotFound
			}
			return nil, err
		}
		if err := touchCart(ctx, tx, cartID); err != nil {
			return nil, err
		}
		return nil, tx.Commit(ctx)
	}

	const q = `
UPDATE cart_items
SET quantity = $1
WHERE id = $2
RETURNING id::text, cart_id::text, product_id::text, size, quantity, added_at
`
	var item domain.CartItem
	if err := tx.QueryRow(ctx, q, quantity, itemID).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Size,
		&item.Quantity,
		&item.AddedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := touchCart(ctx, tx, item.CartID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *postgresRepo) RemoveItem(ctx context.Context, itemID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) HasProduct(ctx context.Context, cartID, productID string) (bool, error) {
	const q = `
SELECT EXISTS (
    SELECT 1 FROM cart_items WHERE cart_id = $1 AND product_id = $2
)
`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, cartID, productID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) Totals(ctx context.Context, cartID string) (domain.CartTotals, error) {
	const q = `
SELECT COALESCE(SUM(ci.quantity), 0)::int,
       COALESCE(SUM(ci.quantity * p.price_cents), 0)::bigint
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
`
	var totals domain.CartTotals
	if err := r.pool.QueryRow(ctx, q, cartID).Scan(&totals.ItemCount, &totals.PriceCents); err != nil {
		return domain.CartTotals{}, err
	}
	return totals, nil
}

func (r *postgresRepo) MergeGuestIntoUser(ctx context.Context, guestCode, userID, freshCode string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var guestID string
	err = tx.QueryRow(ctx, `
SELECT id::text
FROM carts
WHERE cart_code = $1 AND user_id IS NULL AND NOT paid
FOR UPDATE
`, guestCode).Scan(&guestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO carts (user_id, cart_code)
VALUES ($1, $2)
ON CONFLICT (user_id) WHERE NOT paid DO NOTHING
`, userID, freshCode); err != nil {
		return err
	}

	var userCartID string
	if err := tx.QueryRow(ctx, `
SELECT id::text
FROM carts
WHERE user_id = $1 AND NOT paid
FOR UPDATE
`, userID).Scan(&userCartID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO cart_items (cart_id, product_id, size, quantity)
SELECT $1, product_id, size, quantity
FROM cart_items
WHERE cart_id = $2
ON CONFLICT (cart_id, product_id, size) DO UPDATE
SET quantity = cart_items.quantity + EXCLUDED.quantity
`, userCartID, guestID); err != nil {
		return err
	}

	// Items cascade with the guest cart; a crash before commit leaves both
	// carts untouched, a retry after commit finds no guest cart.
	if _, err := tx.Exec(ctx, `DELETE FROM carts WHERE id = $1`, guestID); err != nil {
		return err
	}

	if err := touchCart(ctx, tx, userCartID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) fetchCart(ctx context.Context, cartQuery string, args ...interface{}) (*domain.Cart, error) {
	var cart domain.Cart
	var userID *string
	err := r.pool.QueryRow(ctx, cartQuery, args...).Scan(
		&cart.ID,
		&userID,
		&cart.Code,
		&cart.Paid,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	cart.UserID = userID

	const itemsQuery = `
SELECT ci.id::text, ci.cart_id::text, ci.product_id::text, ci.size, ci.quantity, ci.added_at,
       p.name, p.slug, p.price_cents, p.brand
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
ORDER BY ci.added_at ASC
`
	rows, err := r.pool.Query(ctx, itemsQuery, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		var product domain.Product
		if err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.ProductID,
			&item.Size,
			&item.Quantity,
			&item.AddedAt,
			&product.Name,
			&product.Slug,
			&product.PriceCents,
			&product.Brand,
		); err != nil {
			return nil, err
		}
		product.ID = item.ProductID
		item.Product = &product
		item.TotalCents = int64(item.Quantity) * product.PriceCents
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &cart, nil
}

func touchCart(ctx context.Context, tx pgx.Tx, cartID string) error {
	_, err := tx.Exec(ctx, `UPDATE carts SET updated_at = now() WHERE id = $1`, cartID)
	return err
}
