package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrEmptyCart is returned when checkout runs against a cart with no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrCartAlreadyPaid is returned when a paid cart is materialized again.
	ErrCartAlreadyPaid = errors.New("cart already paid")
	// ErrInvalidSignature indicates the gateway rejected the payment signature.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrInvalidTransition indicates an illegal order status move.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrValidation marks a rejected request payload. Wrap it with the
	// field-level detail.
	ErrValidation = errors.New("invalid input")
)
