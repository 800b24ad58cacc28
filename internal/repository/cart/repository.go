package cart

import (
	"context"

	"trendyshop/internal/domain"
)

// Repository owns carts and cart items. All mutations that touch a single
// cart's item set are serialized by the database: item upserts ride on the
// (cart_id, product_id, size) unique constraint and the merge runs as one
// transaction with row locks.
type Repository interface {
	// GetOrCreate returns the single open cart for the owner, creating it if
	// absent. freshCode is used only when a new cart row must be inserted; for
	// a guest owner the owner's code is the create-or-fetch key. When the
	// guest code belongs to an already-paid cart, ErrCartAlreadyPaid is
	// returned so the caller can mint a new code.
	GetOrCreate(ctx context.Context, owner domain.CartOwner, freshCode string) (*domain.Cart, error)

	// GetOpenByOwner fetches without creating. ErrNotFound when none.
	GetOpenByOwner(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error)

	GetByID(ctx context.Context, id string) (*domain.Cart, error)

	// AddItem upserts on (cart, product, size), accumulating quantity.
	AddItem(ctx context.Context, cartID, productID, size string, quantity int) (*domain.CartItem, error)

	// SetItemQuantity overwrites the quantity, or deletes the item when
	// quantity is non-positive (returned item is nil in that case).
	SetItemQuantity(ctx context.Context, itemID string, quantity int) (*domain.CartItem, error)

	// RemoveItem deletes the item; ErrNotFound when it does not exist.
	RemoveItem(ctx context.Context, itemID string) error

	// HasProduct reports whether any item in the cart references the product.
	HasProduct(ctx context.Context, cartID, productID string) (bool, error)

	// Totals computes item count and price at live catalog prices.
	Totals(ctx context.Context, cartID string) (domain.CartTotals, error)

	// MergeGuestIntoUser folds the open guest cart into the user's open cart
	// in one transaction: matching (product, size) quantities add, the rest
	// copy over, and the guest cart is deleted. Absent or paid guest carts are
	// a no-op. freshCode seeds the user cart when it has to be created.
	MergeGuestIntoUser(ctx context.Context, guestCode, userID, freshCode string) error
}
