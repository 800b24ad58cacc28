package catalog

import (
	"context"
	"strings"

	"trendyshop/internal/domain"
	productrepo "trendyshop/internal/repository/product"
)

type categoryRepo interface {
	ListChildren(ctx context.Context, parentID *string) ([]domain.Category, error)
	GetBySlugAndParent(ctx context.Context, slug string, parentID *string) (*domain.Category, error)
	DescendantIDs(ctx context.Context, categoryID string) ([]string, error)
}

type productRepo interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	ListByCategoryIDs(ctx context.Context, categoryIDs []string) ([]domain.Product, error)
	Search(ctx context.Context, filter productrepo.SearchFilter) ([]domain.Product, error)
	ListTrending(ctx context.Context) ([]domain.Product, error)
	ListTopDeals(ctx context.Context) ([]domain.Product, error)
}

// Service is the storefront read model: category browsing by slug path,
// product listings across whole subtrees, search and the curated shelves.
type Service struct {
	categories categoryRepo
	products   productRepo
}

func New(categories categoryRepo, products productRepo) *Service {
	return &Service{categories: categories, products: products}
}

// CategoryPage is a node in the tree plus its direct children. Category is
// nil at the root.
type CategoryPage struct {
	Category *domain.Category  `json:"category"`
	Children []domain.Category `json:"children"`
}

// resolvePath walks a slash-separated slug path from the root, one slug per
// tree level, so a slug only resolves under its actual parent.
func (s *Service) resolvePath(ctx context.Context, path string) (*domain.Category, error) {
	var current *domain.Category
	for _, slug := range splitPath(path) {
		var parentID *string
		if current != nil {
			parentID = &current.ID
		}
		next, err := s.categories.GetBySlugAndParent(ctx, slug, parentID)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// Browse resolves a slug path and returns that category with its children.
// An empty path yields the root categories.
func (s *Service) Browse(ctx context.Context, path string) (*CategoryPage, error) {
	current, err := s.resolvePath(ctx, path)
	if err != nil {
		return nil, err
	}
	var parentID *string
	if current != nil {
		parentID = &current.ID
	}
	children, err := s.categories.ListChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return &CategoryPage{Category: current, Children: children}, nil
}

// ProductsByPath lists every product under the category subtree named by the
// slug path, the category's own products included.
func (s *Service) ProductsByPath(ctx context.Context, path string) ([]domain.Product, error) {
	current, err := s.resolvePath(ctx, path)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	ids, err := s.categories.DescendantIDs(ctx, current.ID)
	if err != nil {
		return nil, err
	}
	return s.products.ListByCategoryIDs(ctx, ids)
}

// ProductBySlug returns one product with its variants.
func (s *Service) ProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, domain.ErrNotFound
	}
	return s.products.GetBySlug(ctx, slug)
}

// Search runs a free-text query with optional price, brand and category
// filters.
func (s *Service) Search(ctx context.Context, filter productrepo.SearchFilter) ([]domain.Product, error) {
	return s.products.Search(ctx, filter)
}

// Trending returns the curated trending shelf.
func (s *Service) Trending(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListTrending(ctx)
}

// TopDeals returns the curated deals shelf.
func (s *Service) TopDeals(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListTopDeals(ctx)
}

func splitPath(path string) []string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
