package domain

import "time"

// CartOwner addresses a cart by exactly one of an authenticated user id or an
// opaque guest code. Lookups dispatch on the variant explicitly.
type CartOwner struct {
	UserID string
	Code   string
}

// OwnerUser builds the authenticated variant.
func OwnerUser(userID string) CartOwner {
	return CartOwner{UserID: userID}
}

// OwnerGuest builds the guest variant.
func OwnerGuest(code string) CartOwner {
	return CartOwner{Code: code}
}

// IsUser reports whether the owner is an authenticated user.
func (o CartOwner) IsUser() bool {
	return o.UserID != ""
}

// Cart is a mutable bag of items. A cart belongs to a user or to a guest code;
// merge moves guest carts to users, never the reverse. paid carts are frozen.
type Cart struct {
	ID        string     `json:"id"`
	UserID    *string    `json:"userId,omitempty"`
	Code      string     `json:"cartCode"`
	Paid      bool       `json:"paid"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartItem is one (product, size) line. Size "" is its own key, distinct from
// every concrete size. (cart, product, size) is unique; re-adds accumulate.
type CartItem struct {
	ID         string    `json:"id"`
	CartID     string    `json:"cartId"`
	ProductID  string    `json:"productId"`
	Size       string    `json:"size,omitempty"`
	Quantity   int       `json:"quantity"`
	Product    *Product  `json:"product,omitempty"`
	TotalCents int64     `json:"totalCents"`
	AddedAt    time.Time `json:"addedAt"`
}

// CartTotals is computed at live catalog prices, not from snapshots.
type CartTotals struct {
	ItemCount  int   `json:"totalItems"`
	PriceCents int64 `json:"totalPriceCents"`
}
