package category

import (
	"context"

	"trendyshop/internal/domain"
)

// Repository is the category tree query surface. The catalog is read-only in
// this core; writes happen through seeding and the admin surface outside it.
type Repository interface {
	// ListChildren returns root categories for a nil parent, otherwise the
	// direct children of the given category.
	ListChildren(ctx context.Context, parentID *string) ([]domain.Category, error)

	// GetBySlugAndParent resolves one step of a slug path.
	GetBySlugAndParent(ctx context.Context, slug string, parentID *string) (*domain.Category, error)

	// DescendantIDs returns the category id plus every descendant's id.
	DescendantIDs(ctx context.Context, categoryID string) ([]string, error)
}
