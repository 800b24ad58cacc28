package gateway

import "context"

// Gateway is the payment processor the checkout flow hands off to. Order
// creation is a remote call; signature verification is local and must be
// checked before any state mutation.
type Gateway interface {
	// CreateOrder registers an order with the processor and returns its
	// opaque id. Amount is in the currency's minor unit.
	CreateOrder(ctx context.Context, amountCents int64, currency, receipt string) (string, error)

	// VerifySignature reports whether the signature matches the
	// (order id, payment id) pair.
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool

	// KeyID is the public key identifier clients use for the gateway handoff.
	KeyID() string
}
