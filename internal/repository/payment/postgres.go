package payment

import (
	"context"
	"errors"
	"io"
	"log"

	"trendyshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentColumns = `id::text, user_id::text, cart_id::text, gateway_order_id, gateway_payment_id, gateway_signature, amount_cents, currency, status, created_at, updated_at`

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

func (r *postgresRepo) Upsert(ctx context.Context, in UpsertInput) (*domain.Payment, error) {
	const q = `
INSERT INTO payments (user_id, cart_id, gateway_order_id, amount_cents, currency)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (cart_id) DO UPDATE
SET gateway_order_id = EXCLUDED.gateway_order_id,
    amount_cents = EXCLUDED.amount_cents,
    currency = EXCLUDED.currency,
    status = 'created',
    updated_at = now()
RETURNING ` + paymentColumns + `
`
	row := r.pool.QueryRow(ctx, q, in.UserID, in.CartID, in.GatewayOrderID, in.AmountCents, in.Currency)
	p, err := scanPayment(row)
	if err != nil {
		r.logger.Printf("payment repo: upsert cart_id=%s error=%v", in.CartID, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Payment, error) {
	const q = `
SELECT ` + paymentColumns + `
FROM payments
WHERE gateway_order_id = $1
`
	return scanPayment(r.pool.QueryRow(ctx, q, gatewayOrderID))
}

func (r *postgresRepo) ConfirmAndMaterialize(ctx context.Context, in ConfirmInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var paymentID, userID string
	var cartID *string
	var status domain.PaymentStatus
	err = tx.QueryRow(ctx, `
SELECT id::text, user_id::text, cart_id::text, status
FROM payments
WHERE gateway_order_id = $1
FOR UPDATE
`, in.GatewayOrderID).Scan(&paymentID, &userID, &cartID, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if cartID == nil {
		return nil, domain.ErrNotFound
	}

	var paid bool
	err = tx.QueryRow(ctx, `
SELECT paid FROM carts WHERE id = $1 FOR UPDATE
`, *cartID).Scan(&paid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if paid || status != domain.PaymentCreated {
		return nil, domain.ErrCartAlreadyPaid
	}

	var itemCount int
	var totalCents int64
	if err := tx.QueryRow(ctx, `
SELECT COALESCE(SUM(ci.quantity), 0)::int,
       COALESCE(SUM(ci.quantity * p.price_cents), 0)::bigint
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
`, *cartID).Scan(&itemCount, &totalCents); err != nil {
		return nil, err
	}
	if itemCount == 0 {
		return nil, domain.ErrEmptyCart
	}

	if _, err := tx.Exec(ctx, `
UPDATE payments
SET gateway_payment_id = $1,
    gateway_signature = $2,
    status = 'success',
    updated_at = now()
WHERE id = $3
`, in.GatewayPaymentID, in.Signature, paymentID); err != nil {
		return nil, err
	}

	var order domain.Order
	err = tx.QueryRow(ctx, `
INSERT INTO orders (order_id, user_id, total_cents, estimated_delivery_date)
VALUES ($1, $2, $3, CURRENT_DATE + 5)
RETURNING id::text, order_id, user_id::text, total_cents, status, created_at, estimated_delivery_date
`, in.OrderID, userID, totalCents).Scan(
		&order.ID, &order.OrderID, &order.UserID, &order.TotalCents, &order.Status, &order.CreatedAt, &order.EstimatedDeliveryDate,
	)
	if err != nil {
		return nil, err
	}

	// Snapshot at the current catalog price; later price changes never touch it.
	itemRows, err := tx.Query(ctx, `
INSERT INTO order_items (order_id, product_id, size, quantity, price_cents)
SELECT $1, ci.product_id, ci.size, ci.quantity, p.price_cents
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $2
RETURNING id::text, order_id::text, product_id::text, size, quantity, price_cents
`, order.ID, *cartID)
	if err != nil {
		return nil, err
	}
	for itemRows.Next() {
		var item domain.OrderItem
		if err := itemRows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Size, &item.Quantity, &item.PriceCents); err != nil {
			itemRows.Close()
			return nil, err
		}
		order.Items = append(order.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		itemRows.Close()
		return nil, err
	}
	itemRows.Close()

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, *cartID); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `
UPDATE carts SET paid = TRUE, updated_at = now() WHERE id = $1
`, *cartID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("payment repo: confirmed gateway_order_id=%s order_id=%s total_cents=%d", in.GatewayOrderID, order.OrderID, order.TotalCents)
	return &order, nil
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	var cartID *string
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&cartID,
		&p.GatewayOrderID,
		&p.GatewayPaymentID,
		&p.GatewaySignature,
		&p.AmountCents,
		&p.Currency,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.CartID = cartID
	return &p, nil
}
