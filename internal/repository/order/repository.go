package order

import (
	"context"

	"trendyshop/internal/domain"
)

type Repository interface {
	// ListByUser returns the user's orders with items, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)

	// GetByOrderID fetches a single order by its public identifier, scoped to
	// the owning user.
	GetByOrderID(ctx context.Context, userID, orderID string) (*domain.Order, error)

	// Transition validates and applies a status move under a row lock.
	// Shipping timestamps are stamped the first time their stage is reached
	// and never overwritten. ErrInvalidTransition on an illegal move.
	Transition(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error)
}
