package domain

import "time"

// PaymentStatus moves forward only: created -> success | failed.
type PaymentStatus string

const (
	PaymentCreated PaymentStatus = "created"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

// Payment tracks one gateway order per cart. Re-initiating checkout on the
// same unpaid cart updates the row instead of inserting a duplicate.
type Payment struct {
	ID               string        `json:"id"`
	UserID           string        `json:"userId"`
	CartID           *string       `json:"cartId,omitempty"`
	GatewayOrderID   string        `json:"gatewayOrderId"`
	GatewayPaymentID string        `json:"gatewayPaymentId,omitempty"`
	GatewaySignature string        `json:"-"`
	AmountCents      int64         `json:"amountCents"`
	Currency         string        `json:"currency"`
	Status           PaymentStatus `json:"status"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}
