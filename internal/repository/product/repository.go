package product

import (
	"context"

	"trendyshop/internal/domain"
)

// SearchFilter mirrors the storefront search parameters. Zero values mean
// "no filter" for every field.
type SearchFilter struct {
	Query         string
	MinPriceCents int64
	MaxPriceCents int64
	Brand         string
	CategorySlug  string
}

// Repository is the product read model consumed by cart and checkout.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	ListByCategoryIDs(ctx context.Context, categoryIDs []string) ([]domain.Product, error)
	Search(ctx context.Context, filter SearchFilter) ([]domain.Product, error)
	ListTrending(ctx context.Context) ([]domain.Product, error)
	ListTopDeals(ctx context.Context) ([]domain.Product, error)
}
