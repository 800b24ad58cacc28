package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"trendyshop/internal/domain"
	productrepo "trendyshop/internal/repository/product"
	cartsvc "trendyshop/internal/service/cart"
	catalogsvc "trendyshop/internal/service/catalog"
	checkoutsvc "trendyshop/internal/service/checkout"
	usersvc "trendyshop/internal/service/user"
	"github.com/gin-gonic/gin"
)

// Shared stubs for the router tests. Each test file overrides only the
// service it exercises.

type stubUserSvc struct {
	user       *domain.User
	registered *domain.User
	regErr     error
	loginErr   error
	refreshErr error
	lookupErr  error
	lastGuest  string
	addresses  []domain.UserAddress
}

func (s *stubUserSvc) Register(_ context.Context, _ usersvc.RegisterInput) (*domain.User, error) {
	return s.registered, s.regErr
}

func (s *stubUserSvc) Login(_ context.Context, _, _, guestCartCode string) (*domain.User, string, string, error) {
	s.lastGuest = guestCartCode
	return s.user, "access-token", "refresh-token", s.loginErr
}

func (s *stubUserSvc) Refresh(_ context.Context, _ string) (*domain.User, string, string, error) {
	return s.user, "rotated-access", "rotated-refresh", s.refreshErr
}

func (s *stubUserSvc) LookupByToken(_ context.Context, _ string) (*domain.User, error) {
	return s.user, s.lookupErr
}

func (s *stubUserSvc) AddAddress(_ context.Context, _ string, _ usersvc.AddressInput) (*domain.UserAddress, error) {
	return &domain.UserAddress{ID: "addr-1"}, nil
}

func (s *stubUserSvc) ListAddresses(_ context.Context, _ string) ([]domain.UserAddress, error) {
	return s.addresses, nil
}

func (s *stubUserSvc) DeleteAddress(_ context.Context, _, _ string) error { return nil }

func (s *stubUserSvc) AccessTTLSeconds() int { return 3600 }

type stubCartSvc struct {
	cart    *domain.Cart
	cartErr error
	item    *domain.CartItem
	totals  domain.CartTotals
	removed bool
	has     bool
}

func (s *stubCartSvc) GetOrCreate(_ context.Context, _ domain.CartOwner) (*domain.Cart, error) {
	return s.cart, s.cartErr
}

func (s *stubCartSvc) AddItem(_ context.Context, _ domain.CartOwner, _ cartsvc.AddItemInput) (*domain.CartItem, *domain.Cart, error) {
	return s.item, s.cart, s.cartErr
}

func (s *stubCartSvc) SetQuantity(_ context.Context, _ string, _ int) (*domain.CartItem, bool, error) {
	return s.item, s.removed, s.cartErr
}

func (s *stubCartSvc) RemoveItem(_ context.Context, _ string) error { return s.cartErr }

func (s *stubCartSvc) Stat(_ context.Context, _ string) (*domain.Cart, domain.CartTotals, error) {
	return s.cart, s.totals, s.cartErr
}

func (s *stubCartSvc) Totals(_ context.Context, _ *domain.Cart) (domain.CartTotals, error) {
	return s.totals, nil
}

func (s *stubCartSvc) HasProduct(_ context.Context, _, _ string) (bool, error) {
	return s.has, s.cartErr
}

type stubCatalogSvc struct {
	page     *catalogsvc.CategoryPage
	products []domain.Product
	product  *domain.Product
	err      error
}

func (s *stubCatalogSvc) Browse(_ context.Context, _ string) (*catalogsvc.CategoryPage, error) {
	return s.page, s.err
}

func (s *stubCatalogSvc) ProductsByPath(_ context.Context, _ string) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalogSvc) ProductBySlug(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubCatalogSvc) Search(_ context.Context, _ productrepo.SearchFilter) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalogSvc) Trending(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalogSvc) TopDeals(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

type stubWishlistSvc struct {
	item    *domain.WishlistItem
	created bool
	items   []domain.WishlistItem
	err     error
}

func (s *stubWishlistSvc) Add(_ context.Context, _, _ string) (*domain.WishlistItem, bool, error) {
	return s.item, s.created, s.err
}

func (s *stubWishlistSvc) Remove(_ context.Context, _, _ string) error { return s.err }

func (s *stubWishlistSvc) List(_ context.Context, _ string) ([]domain.WishlistItem, error) {
	return s.items, s.err
}

type stubCheckoutSvc struct {
	init  *checkoutsvc.Initiation
	order *domain.Order
	err   error
}

func (s *stubCheckoutSvc) Initiate(_ context.Context, _ string) (*checkoutsvc.Initiation, error) {
	return s.init, s.err
}

func (s *stubCheckoutSvc) Verify(_ context.Context, _ string, _ checkoutsvc.VerifyInput) (*domain.Order, error) {
	return s.order, s.err
}

type stubOrderSvc struct {
	orders []domain.Order
	order  *domain.Order
	err    error
}

func (s *stubOrderSvc) List(_ context.Context, _ string) ([]domain.Order, error) {
	return s.orders, s.err
}

func (s *stubOrderSvc) Get(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderSvc) Advance(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.order, s.err
}

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testDeps() Deps {
	return Deps{
		UserSvc:     &stubUserSvc{},
		CartSvc:     &stubCartSvc{},
		CatalogSvc:  &stubCatalogSvc{},
		WishlistSvc: &stubWishlistSvc{},
		CheckoutSvc: &stubCheckoutSvc{},
		OrderSvc:    &stubOrderSvc{},
	}
}

func TestBuildRouter_MissingDependency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.OrderSvc = nil
	if _, err := buildRouter(logDiscard(), nil, deps); err == nil {
		t.Fatal("expected error for missing service")
	}
}

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, testDeps())
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, testDeps())
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/profile/"},
		{http.MethodGet, "/wishlist/"},
		{http.MethodPost, "/create-order/"},
		{http.MethodGet, "/orders/"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", route.method, route.path, rec.Code)
		}
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.UserSvc = &stubUserSvc{user: &domain.User{ID: "user-1", Email: "a@b.c"}}
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/profile/", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRequireAuth_BadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.UserSvc = &stubUserSvc{lookupErr: usersvc.ErrInvalidToken}
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/profile/", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
