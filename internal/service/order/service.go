package order

import (
	"context"
	"strings"

	"trendyshop/internal/domain"
	orderrepo "trendyshop/internal/repository/order"
)

// Service exposes order history and the fulfilment status machine. Orders are
// created by checkout, never here.
type Service struct {
	repo orderrepo.Repository
}

func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo}
}

// List returns the user's orders, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get fetches one order by its public id, scoped to the user.
func (s *Service) Get(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	return s.repo.GetByOrderID(ctx, userID, orderID)
}

// Advance moves an order along the fulfilment pipeline. Repeating the current
// status is accepted and changes nothing; backward moves and post-delivery
// cancellation fail with ErrInvalidTransition.
func (s *Service) Advance(ctx context.Context, orderID, status string) (*domain.Order, error) {
	next := domain.OrderStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !domain.ValidOrderStatus(next) {
		return nil, domain.ErrInvalidTransition
	}
	return s.repo.Transition(ctx, orderID, next)
}
