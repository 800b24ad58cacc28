package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"trendyshop/internal/config"
	"trendyshop/internal/db"
	"trendyshop/internal/gateway"
	"trendyshop/internal/httpserver"
	cartrepo "trendyshop/internal/repository/cart"
	categoryrepo "trendyshop/internal/repository/category"
	orderrepo "trendyshop/internal/repository/order"
	paymentrepo "trendyshop/internal/repository/payment"
	productrepo "trendyshop/internal/repository/product"
	tokenrepo "trendyshop/internal/repository/token"
	userrepo "trendyshop/internal/repository/user"
	wishlistrepo "trendyshop/internal/repository/wishlist"
	cartsvc "trendyshop/internal/service/cart"
	catalogsvc "trendyshop/internal/service/catalog"
	checkoutsvc "trendyshop/internal/service/checkout"
	ordersvc "trendyshop/internal/service/order"
	usersvc "trendyshop/internal/service/user"
	wishlistsvc "trendyshop/internal/service/wishlist"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	userRepo := userrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	wishlistRepo := wishlistrepo.NewPostgres(dbpool)
	paymentRepo := paymentrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool)

	razorpay := gateway.NewRazorpay(cfg.RazorpayKeyID, cfg.RazorpaySecret, cfg.RazorpayBaseURL)

	cartService := cartsvc.New(cartRepo, productRepo, nil)
	userService := usersvc.New(userRepo, tokenRepo, cartService, logger)
	catalogService := catalogsvc.New(categoryRepo, productRepo)
	wishlistService := wishlistsvc.New(wishlistRepo)
	checkoutService := checkoutsvc.New(cartService, paymentRepo, razorpay)
	orderService := ordersvc.New(orderRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		UserSvc:     userService,
		CartSvc:     cartService,
		CatalogSvc:  catalogService,
		WishlistSvc: wishlistService,
		CheckoutSvc: checkoutService,
		OrderSvc:    orderService,
		CORSOrigins: splitOrigins(cfg.CORSOrigins),
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

func splitOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
