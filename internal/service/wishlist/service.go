package wishlist

import (
	"context"
	"fmt"
	"strings"

	"trendyshop/internal/domain"
	wishlistrepo "trendyshop/internal/repository/wishlist"
)

// Service is a thin layer over the wishlist set. Adding an already-wishlisted
// product is a no-op reported back to the caller.
type Service struct {
	repo wishlistrepo.Repository
}

func New(repo wishlistrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Add puts the product on the user's wishlist. created is false when it was
// already there.
func (s *Service) Add(ctx context.Context, userID, productID string) (*domain.WishlistItem, bool, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, false, fmt.Errorf("%w: product id required", domain.ErrValidation)
	}
	return s.repo.Add(ctx, userID, productID)
}

// Remove takes the product off the wishlist; ErrNotFound when absent.
func (s *Service) Remove(ctx context.Context, userID, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return fmt.Errorf("%w: product id required", domain.ErrValidation)
	}
	return s.repo.Remove(ctx, userID, productID)
}

// List returns the user's wishlist with product details, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	return s.repo.ListByUser(ctx, userID)
}
