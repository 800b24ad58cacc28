package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trendyshop/internal/domain"
	checkoutsvc "trendyshop/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

func authedDeps() Deps {
	deps := testDeps()
	deps.UserSvc = &stubUserSvc{user: &domain.User{ID: "user-1"}}
	return deps
}

func TestCreateOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := authedDeps()
	deps.CheckoutSvc = &stubCheckoutSvc{
		init: &checkoutsvc.Initiation{
			GatewayOrderID: "order_abc",
			AmountCents:    449700,
			Currency:       "INR",
			KeyID:          "rzp_test_key",
		},
	}
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/create-order/", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"order_id":"order_abc"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := authedDeps()
	deps.CheckoutSvc = &stubCheckoutSvc{err: domain.ErrEmptyCart}
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/create-order/", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestVerifyPayment_BadSignature(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := authedDeps()
	deps.CheckoutSvc = &stubCheckoutSvc{err: domain.ErrInvalidSignature}
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	body := `{"razorpay_order_id":"order_abc","razorpay_payment_id":"pay_1","razorpay_signature":"bogus"}`
	req := httptest.NewRequest(http.MethodPost, "/verify-payment/", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestVerifyPayment_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := authedDeps()
	deps.CheckoutSvc = &stubCheckoutSvc{
		order: &domain.Order{OrderID: "ord-123", Status: domain.OrderPlaced, TotalCents: 449700},
	}
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	body := `{"razorpay_order_id":"order_abc","razorpay_payment_id":"pay_1","razorpay_signature":"sig"}`
	req := httptest.NewRequest(http.MethodPost, "/verify-payment/", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"orderId":"ord-123"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestOrderStatus_InvalidTransition(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := authedDeps()
	deps.OrderSvc = &stubOrderSvc{err: domain.ErrInvalidTransition}
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	req := httptest.NewRequest(http.MethodPatch, "/orders/ord-123/status", strings.NewReader(`{"status":"CONFIRMED"}`))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
