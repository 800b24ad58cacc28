package payment

import (
	"context"

	"trendyshop/internal/domain"
)

// UpsertInput carries the fields refreshed on every checkout initiation.
type UpsertInput struct {
	UserID         string
	CartID         string
	GatewayOrderID string
	AmountCents    int64
	Currency       string
}

// ConfirmInput carries a gateway-verified capture. OrderID is the fresh
// public identifier for the order about to be materialized.
type ConfirmInput struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
	OrderID          string
}

// Repository owns payment rows and the paid-cart-to-order transition.
type Repository interface {
	// Upsert creates the payment for a cart or, when one exists, refreshes its
	// amount, currency and gateway order id and resets status to created.
	// The unique cart_id constraint keeps this to one row per cart.
	Upsert(ctx context.Context, in UpsertInput) (*domain.Payment, error)

	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Payment, error)

	// ConfirmAndMaterialize runs the terminal checkout step as one
	// transaction: record the capture on the payment, move its status
	// created -> success, snapshot the cart into an order, clear the cart's
	// items and mark it paid. Either everything commits or nothing does.
	// ErrCartAlreadyPaid when the cart was materialized before, ErrEmptyCart
	// when it has no items, ErrNotFound when payment or cart are gone.
	ConfirmAndMaterialize(ctx context.Context, in ConfirmInput) (*domain.Order, error)
}
