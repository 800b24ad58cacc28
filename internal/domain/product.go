package domain

import "time"

// Product is a catalog entry. Prices are integer paise; the cart reads them
// live, the order materializer snapshots them.
type Product struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Slug               string           `json:"slug"`
	Description        string           `json:"description,omitempty"`
	PriceCents         int64            `json:"priceCents"`
	OriginalPriceCents *int64           `json:"originalPriceCents,omitempty"`
	Brand              string           `json:"brand,omitempty"`
	CategoryID         string           `json:"categoryId"`
	IsTrending         bool             `json:"isTrending"`
	IsTopDeal          bool             `json:"isTopDeal"`
	Rating             float64          `json:"rating"`
	Variants           []ProductVariant `json:"variants,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
}

// ProductVariant is per-size stock. (product, size) is unique.
type ProductVariant struct {
	ID        string `json:"id"`
	ProductID string `json:"-"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}
