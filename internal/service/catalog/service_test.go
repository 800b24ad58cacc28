package catalog

import (
	"context"
	"errors"
	"testing"

	"trendyshop/internal/domain"
	productrepo "trendyshop/internal/repository/product"
)

type stubCategoryRepo struct {
	// nodes maps "parentID/slug" to a category; root parent is "".
	nodes       map[string]*domain.Category
	children    map[string][]domain.Category
	descendants map[string][]string
}

func key(parentID *string, slug string) string {
	p := ""
	if parentID != nil {
		p = *parentID
	}
	return p + "/" + slug
}

func (s *stubCategoryRepo) ListChildren(_ context.Context, parentID *string) ([]domain.Category, error) {
	p := ""
	if parentID != nil {
		p = *parentID
	}
	return s.children[p], nil
}

func (s *stubCategoryRepo) GetBySlugAndParent(_ context.Context, slug string, parentID *string) (*domain.Category, error) {
	c, ok := s.nodes[key(parentID, slug)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (s *stubCategoryRepo) DescendantIDs(_ context.Context, categoryID string) ([]string, error) {
	return s.descendants[categoryID], nil
}

type stubProductRepo struct {
	products   []domain.Product
	product    *domain.Product
	lastIDs    []string
	lastFilter productrepo.SearchFilter
	err        error
}

func (s *stubProductRepo) GetBySlug(_ context.Context, _ string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubProductRepo) ListByCategoryIDs(_ context.Context, categoryIDs []string) ([]domain.Product, error) {
	s.lastIDs = categoryIDs
	return s.products, s.err
}

func (s *stubProductRepo) Search(_ context.Context, filter productrepo.SearchFilter) ([]domain.Product, error) {
	s.lastFilter = filter
	return s.products, s.err
}

func (s *stubProductRepo) ListTrending(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubProductRepo) ListTopDeals(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func treeFixture() *stubCategoryRepo {
	men := &domain.Category{ID: "cat-men", Name: "Men", Slug: "men"}
	shirts := &domain.Category{ID: "cat-shirts", Name: "Shirts", Slug: "shirts", ParentID: &men.ID}
	return &stubCategoryRepo{
		nodes: map[string]*domain.Category{
			"/men":           men,
			"cat-men/shirts": shirts,
		},
		children: map[string][]domain.Category{
			"":        {*men},
			"cat-men": {*shirts},
		},
		descendants: map[string][]string{
			"cat-men":    {"cat-men", "cat-shirts"},
			"cat-shirts": {"cat-shirts"},
		},
	}
}

func TestBrowse_Root(t *testing.T) {
	svc := New(treeFixture(), &stubProductRepo{})

	page, err := svc.Browse(context.Background(), "/")
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if page.Category != nil {
		t.Fatalf("expected nil category at root, got %+v", page.Category)
	}
	if len(page.Children) != 1 || page.Children[0].Slug != "men" {
		t.Fatalf("unexpected children %+v", page.Children)
	}
}

func TestBrowse_NestedPath(t *testing.T) {
	svc := New(treeFixture(), &stubProductRepo{})

	page, err := svc.Browse(context.Background(), "/men/shirts/")
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if page.Category == nil || page.Category.ID != "cat-shirts" {
		t.Fatalf("unexpected category %+v", page.Category)
	}
}

func TestBrowse_UnknownSlug(t *testing.T) {
	svc := New(treeFixture(), &stubProductRepo{})

	if _, err := svc.Browse(context.Background(), "/men/hats"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProductsByPath_CoversSubtree(t *testing.T) {
	products := &stubProductRepo{products: []domain.Product{{ID: "prod-1"}}}
	svc := New(treeFixture(), products)

	got, err := svc.ProductsByPath(context.Background(), "/men")
	if err != nil {
		t.Fatalf("ProductsByPath: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected products %+v", got)
	}
	if len(products.lastIDs) != 2 {
		t.Fatalf("expected subtree ids, got %v", products.lastIDs)
	}
}

func TestProductsByPath_RootIsNotFound(t *testing.T) {
	svc := New(treeFixture(), &stubProductRepo{})

	if _, err := svc.ProductsByPath(context.Background(), "/"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for the bare root, got %v", err)
	}
}

func TestSearch_PassesFilterThrough(t *testing.T) {
	products := &stubProductRepo{}
	svc := New(treeFixture(), products)

	filter := productrepo.SearchFilter{Query: "shirt", MinPriceCents: 1000, Brand: "Harbour Lane"}
	if _, err := svc.Search(context.Background(), filter); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if products.lastFilter != filter {
		t.Fatalf("filter not passed through: %+v", products.lastFilter)
	}
}
