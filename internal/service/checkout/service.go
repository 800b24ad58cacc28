package checkout

import (
	"context"
	"fmt"
	"strings"

	"trendyshop/internal/domain"
	paymentrepo "trendyshop/internal/repository/payment"
	"github.com/google/uuid"
)

type cartStore interface {
	GetOrCreate(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error)
	Totals(ctx context.Context, cart *domain.Cart) (domain.CartTotals, error)
}

type gateway interface {
	CreateOrder(ctx context.Context, amountCents int64, currency, receipt string) (string, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}

// Service drives the two-step checkout: initiate a gateway order against the
// live cart total, then verify the capture and turn the cart into an order.
type Service struct {
	carts    cartStore
	payments paymentrepo.Repository
	gateway  gateway
	currency string
}

func New(carts cartStore, payments paymentrepo.Repository, gw gateway) *Service {
	return &Service{carts: carts, payments: payments, gateway: gw, currency: "INR"}
}

// Initiation is what the client needs to open the gateway's payment widget.
type Initiation struct {
	GatewayOrderID string `json:"order_id"`
	AmountCents    int64  `json:"amount"`
	Currency       string `json:"currency"`
	KeyID          string `json:"key"`
}

// Initiate prices the user's open cart and registers (or refreshes) a gateway
// order for it. An empty cart fails before any gateway traffic. Re-initiating
// replaces the previous gateway order on the same payment row, so at most one
// payment ever exists per cart.
func (s *Service) Initiate(ctx context.Context, userID string) (*Initiation, error) {
	cart, err := s.carts.GetOrCreate(ctx, domain.OwnerUser(userID))
	if err != nil {
		return nil, err
	}
	totals, err := s.carts.Totals(ctx, cart)
	if err != nil {
		return nil, err
	}
	if totals.ItemCount == 0 {
		return nil, domain.ErrEmptyCart
	}
	// The gateway rejects zero-amount orders, so a cart of free items cannot
	// be checked out.
	if totals.PriceCents <= 0 {
		return nil, fmt.Errorf("%w: order amount must be positive", domain.ErrValidation)
	}

	gatewayOrderID, err := s.gateway.CreateOrder(ctx, totals.PriceCents, s.currency, "cart_"+cart.ID)
	if err != nil {
		return nil, fmt.Errorf("create gateway order: %w", err)
	}

	p, err := s.payments.Upsert(ctx, paymentrepo.UpsertInput{
		UserID:         userID,
		CartID:         cart.ID,
		GatewayOrderID: gatewayOrderID,
		AmountCents:    totals.PriceCents,
		Currency:       s.currency,
	})
	if err != nil {
		return nil, err
	}

	return &Initiation{
		GatewayOrderID: p.GatewayOrderID,
		AmountCents:    p.AmountCents,
		Currency:       p.Currency,
		KeyID:          s.gateway.KeyID(),
	}, nil
}

// VerifyInput is the capture callback payload from the client.
type VerifyInput struct {
	GatewayOrderID   string `json:"razorpay_order_id"`
	GatewayPaymentID string `json:"razorpay_payment_id"`
	Signature        string `json:"razorpay_signature"`
}

// Verify checks the gateway signature and, only then, materializes the order.
// A bad signature leaves payment, cart and orders untouched.
func (s *Service) Verify(ctx context.Context, userID string, in VerifyInput) (*domain.Order, error) {
	if strings.TrimSpace(in.GatewayOrderID) == "" || strings.TrimSpace(in.GatewayPaymentID) == "" {
		return nil, fmt.Errorf("%w: gateway order id and payment id required", domain.ErrValidation)
	}
	if !s.gateway.VerifySignature(in.GatewayOrderID, in.GatewayPaymentID, in.Signature) {
		return nil, domain.ErrInvalidSignature
	}

	p, err := s.payments.GetByGatewayOrderID(ctx, in.GatewayOrderID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, domain.ErrNotFound
	}

	return s.payments.ConfirmAndMaterialize(ctx, paymentrepo.ConfirmInput{
		GatewayOrderID:   in.GatewayOrderID,
		GatewayPaymentID: in.GatewayPaymentID,
		Signature:        in.Signature,
		OrderID:          uuid.NewString(),
	})
}
