package wishlist

import (
	"context"

	"trendyshop/internal/domain"
)

type Repository interface {
	// Add inserts the (user, product) pair. created is false when the pair
	// already existed; either way the stored entry is returned.
	Add(ctx context.Context, userID, productID string) (entry *domain.WishlistItem, created bool, err error)

	// Remove deletes the pair; ErrNotFound when it is not present.
	Remove(ctx context.Context, userID, productID string) error

	ListByUser(ctx context.Context, userID string) ([]domain.WishlistItem, error)
}
