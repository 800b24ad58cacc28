package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"trendyshop/internal/domain"
	productrepo "trendyshop/internal/repository/product"
	cartsvc "trendyshop/internal/service/cart"
	catalogsvc "trendyshop/internal/service/catalog"
	checkoutsvc "trendyshop/internal/service/checkout"
	usersvc "trendyshop/internal/service/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Interfaces consumed by the handlers. Declared here so tests can stub each
// service independently.

type userService interface {
	Register(ctx context.Context, in usersvc.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password, guestCartCode string) (*domain.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.User, string, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	AddAddress(ctx context.Context, userID string, in usersvc.AddressInput) (*domain.UserAddress, error)
	ListAddresses(ctx context.Context, userID string) ([]domain.UserAddress, error)
	DeleteAddress(ctx context.Context, userID, addressID string) error
	AccessTTLSeconds() int
}

type cartService interface {
	GetOrCreate(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error)
	AddItem(ctx context.Context, owner domain.CartOwner, in cartsvc.AddItemInput) (*domain.CartItem, *domain.Cart, error)
	SetQuantity(ctx context.Context, itemID string, quantity int) (*domain.CartItem, bool, error)
	RemoveItem(ctx context.Context, itemID string) error
	Stat(ctx context.Context, code string) (*domain.Cart, domain.CartTotals, error)
	Totals(ctx context.Context, cart *domain.Cart) (domain.CartTotals, error)
	HasProduct(ctx context.Context, code, productID string) (bool, error)
}

type catalogService interface {
	Browse(ctx context.Context, path string) (*catalogsvc.CategoryPage, error)
	ProductsByPath(ctx context.Context, path string) ([]domain.Product, error)
	ProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Search(ctx context.Context, filter productrepo.SearchFilter) ([]domain.Product, error)
	Trending(ctx context.Context) ([]domain.Product, error)
	TopDeals(ctx context.Context) ([]domain.Product, error)
}

type wishlistService interface {
	Add(ctx context.Context, userID, productID string) (*domain.WishlistItem, bool, error)
	Remove(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string) ([]domain.WishlistItem, error)
}

type checkoutService interface {
	Initiate(ctx context.Context, userID string) (*checkoutsvc.Initiation, error)
	Verify(ctx context.Context, userID string, in checkoutsvc.VerifyInput) (*domain.Order, error)
}

type orderService interface {
	List(ctx context.Context, userID string) ([]domain.Order, error)
	Get(ctx context.Context, userID, orderID string) (*domain.Order, error)
	Advance(ctx context.Context, orderID, status string) (*domain.Order, error)
}

// Deps carries the services the router depends on.
type Deps struct {
	UserSvc     userService
	CartSvc     cartService
	CatalogSvc  catalogService
	WishlistSvc wishlistService
	CheckoutSvc checkoutService
	OrderSvc    orderService
	CORSOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(deps.CORSOrigins) > 0 {
		cfg := cors.Config{
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}
		if len(deps.CORSOrigins) == 1 && deps.CORSOrigins[0] == "*" {
			cfg.AllowAllOrigins = true
		} else {
			cfg.AllowOrigins = deps.CORSOrigins
			cfg.AllowCredentials = true
		}
		router.Use(cors.New(cfg))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	if deps.UserSvc == nil || deps.CartSvc == nil || deps.CatalogSvc == nil ||
		deps.WishlistSvc == nil || deps.CheckoutSvc == nil || deps.OrderSvc == nil {
		return nil, errors.New("httpserver: missing service dependency")
	}

	router.POST("/register/", registerHandler(deps.UserSvc))
	router.POST("/login/", loginHandler(deps.UserSvc))
	router.POST("/token/refresh/", refreshTokenHandler(deps.UserSvc))

	router.GET("/categories/*path", categoriesHandler(deps.CatalogSvc))
	router.GET("/products/*path", productsByCategoryHandler(deps.CatalogSvc))
	router.GET("/product/:slug", productDetailHandler(deps.CatalogSvc))
	router.GET("/search/", searchHandler(deps.CatalogSvc))
	router.GET("/trending-products/", trendingHandler(deps.CatalogSvc))
	router.GET("/top-deals/", topDealsHandler(deps.CatalogSvc))

	optional := router.Group("", optionalAuthMiddleware(deps.UserSvc))
	optional.GET("/cart/", getCartHandler(deps.CartSvc))
	optional.POST("/cart/add/", addToCartHandler(deps.CartSvc))
	optional.PATCH("/cart/update/", updateCartItemHandler(deps.CartSvc))
	optional.POST("/cart/delete/", deleteCartItemHandler(deps.CartSvc))
	optional.GET("/cart/status/", cartStatusHandler(deps.CartSvc))
	optional.GET("/cart/check/", cartCheckHandler(deps.CartSvc))

	authed := router.Group("", requireAuthMiddleware(deps.UserSvc))
	authed.GET("/profile/", profileHandler())
	authed.GET("/addresses/", listAddressesHandler(deps.UserSvc))
	authed.POST("/addresses/", addAddressHandler(deps.UserSvc))
	authed.DELETE("/addresses/:address_id", deleteAddressHandler(deps.UserSvc))
	authed.GET("/wishlist/", listWishlistHandler(deps.WishlistSvc))
	authed.POST("/wishlist/add/", addToWishlistHandler(deps.WishlistSvc))
	authed.DELETE("/wishlist/remove/:product_id", removeFromWishlistHandler(deps.WishlistSvc))
	authed.POST("/create-order/", createOrderHandler(deps.CheckoutSvc))
	authed.POST("/verify-payment/", verifyPaymentHandler(deps.CheckoutSvc))
	authed.GET("/orders/", listOrdersHandler(deps.OrderSvc))
	authed.GET("/orders/:order_id", getOrderHandler(deps.OrderSvc))
	authed.PATCH("/orders/:order_id/status", orderStatusHandler(deps.OrderSvc))

	return router, nil
}
