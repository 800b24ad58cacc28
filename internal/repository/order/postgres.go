package order

import (
	"context"
	"errors"

	"trendyshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `id::text, order_id, user_id::text, address_id::text, total_cents, status, created_at, shipped_at, out_for_delivery_at, delivered_at, estimated_delivery_date`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		items, err := r.loadItems(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}
	return result, nil
}

func (r *postgresRepo) GetByOrderID(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1 AND order_id = $2
`
	row := r.pool.QueryRow(ctx, q, userID, orderID)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *postgresRepo) Transition(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var id string
	var current domain.OrderStatus
	err = tx.QueryRow(ctx, `
SELECT id::text, status FROM orders WHERE order_id = $1 FOR UPDATE
`, orderID).Scan(&id, &current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if !domain.CanTransition(current, next) {
		return nil, domain.ErrInvalidTransition
	}

	const q = `
UPDATE orders
SET status = $2,
    shipped_at = CASE WHEN $2 = 'SHIPPED' AND shipped_at IS NULL THEN now() ELSE shipped_at END,
    out_for_delivery_at = CASE WHEN $2 = 'OUT_FOR_DELIVERY' AND out_for_delivery_at IS NULL THEN now() ELSE out_for_delivery_at END,
    delivered_at = CASE WHEN $2 = 'DELIVERED' AND delivered_at IS NULL THEN now() ELSE delivered_at END
WHERE id = $1
RETURNING ` + orderColumns + `
`
	o, err := scanOrder(tx.QueryRow(ctx, q, id, string(next)))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *postgresRepo) loadItems(ctx context.Context, id string) ([]domain.OrderItem, error) {
	const q = `
SELECT oi.id::text, oi.order_id::text, oi.product_id::text, oi.size, oi.quantity, oi.price_cents,
       p.name, p.slug, p.brand
FROM order_items oi
JOIN products p ON p.id = oi.product_id
WHERE oi.order_id = $1
ORDER BY oi.id ASC
`
	rows, err := r.pool.Query(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		var product domain.Product
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Size, &item.Quantity, &item.PriceCents,
			&product.Name, &product.Slug, &product.Brand,
		); err != nil {
			return nil, err
		}
		product.ID = item.ProductID
		item.Product = &product
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var addressID *string
	err := row.Scan(
		&o.ID,
		&o.OrderID,
		&o.UserID,
		&addressID,
		&o.TotalCents,
		&o.Status,
		&o.CreatedAt,
		&o.ShippedAt,
		&o.OutForDeliveryAt,
		&o.DeliveredAt,
		&o.EstimatedDeliveryDate,
	)
	if err != nil {
		return nil, err
	}
	o.AddressID = addressID
	return &o, nil
}
