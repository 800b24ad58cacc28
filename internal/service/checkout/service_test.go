package checkout

import (
	"context"
	"errors"
	"testing"

	"trendyshop/internal/domain"
	paymentrepo "trendyshop/internal/repository/payment"
)

type stubCartStore struct {
	cart    *domain.Cart
	cartErr error
	totals  domain.CartTotals
}

func (s *stubCartStore) GetOrCreate(_ context.Context, _ domain.CartOwner) (*domain.Cart, error) {
	return s.cart, s.cartErr
}

func (s *stubCartStore) Totals(_ context.Context, _ *domain.Cart) (domain.CartTotals, error) {
	return s.totals, nil
}

type stubGateway struct {
	orderID     string
	createErr   error
	createCalls int
	lastAmount  int64
	valid       bool
}

func (s *stubGateway) CreateOrder(_ context.Context, amountCents int64, _, _ string) (string, error) {
	s.createCalls++
	s.lastAmount = amountCents
	return s.orderID, s.createErr
}

func (s *stubGateway) VerifySignature(_, _, _ string) bool { return s.valid }

func (s *stubGateway) KeyID() string { return "rzp_test_key" }

type stubPayments struct {
	payment      *domain.Payment
	upsertErr    error
	lastUpsert   paymentrepo.UpsertInput
	getPayment   *domain.Payment
	getErr       error
	order        *domain.Order
	confirmErr   error
	confirmCalls int
	lastConfirm  paymentrepo.ConfirmInput
}

func (s *stubPayments) Upsert(_ context.Context, in paymentrepo.UpsertInput) (*domain.Payment, error) {
	s.lastUpsert = in
	return s.payment, s.upsertErr
}

func (s *stubPayments) GetByGatewayOrderID(_ context.Context, _ string) (*domain.Payment, error) {
	return s.getPayment, s.getErr
}

func (s *stubPayments) ConfirmAndMaterialize(_ context.Context, in paymentrepo.ConfirmInput) (*domain.Order, error) {
	s.confirmCalls++
	s.lastConfirm = in
	return s.order, s.confirmErr
}

func TestInitiate_EmptyCartNeverReachesGateway(t *testing.T) {
	gw := &stubGateway{orderID: "order_x"}
	svc := New(
		&stubCartStore{cart: &domain.Cart{ID: "cart-1"}, totals: domain.CartTotals{}},
		&stubPayments{},
		gw,
	)

	_, err := svc.Initiate(context.Background(), "user-1")
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if gw.createCalls != 0 {
		t.Fatalf("gateway must not be called for an empty cart, got %d calls", gw.createCalls)
	}
}

func TestInitiate_ZeroAmountIsNotEmptyCart(t *testing.T) {
	gw := &stubGateway{orderID: "order_x"}
	svc := New(
		&stubCartStore{
			cart:   &domain.Cart{ID: "cart-1"},
			totals: domain.CartTotals{ItemCount: 2, PriceCents: 0},
		},
		&stubPayments{},
		gw,
	)

	_, err := svc.Initiate(context.Background(), "user-1")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for a zero amount, got %v", err)
	}
	if errors.Is(err, domain.ErrEmptyCart) {
		t.Fatal("a cart with items must not read as empty")
	}
	if gw.createCalls != 0 {
		t.Fatalf("gateway must not be called for a zero amount, got %d calls", gw.createCalls)
	}
}

func TestInitiate_Success(t *testing.T) {
	gw := &stubGateway{orderID: "order_abc"}
	payments := &stubPayments{
		payment: &domain.Payment{GatewayOrderID: "order_abc", AmountCents: 449700, Currency: "INR"},
	}
	svc := New(
		&stubCartStore{
			cart:   &domain.Cart{ID: "cart-1"},
			totals: domain.CartTotals{ItemCount: 3, PriceCents: 449700},
		},
		payments,
		gw,
	)

	init, err := svc.Initiate(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	if gw.lastAmount != 449700 {
		t.Fatalf("gateway got amount %d, want 449700", gw.lastAmount)
	}
	if payments.lastUpsert.CartID != "cart-1" || payments.lastUpsert.GatewayOrderID != "order_abc" {
		t.Fatalf("unexpected upsert %+v", payments.lastUpsert)
	}
	if init.GatewayOrderID != "order_abc" || init.KeyID != "rzp_test_key" || init.AmountCents != 449700 {
		t.Fatalf("unexpected initiation %+v", init)
	}
}

func TestInitiate_GatewayFailureLeavesNoPayment(t *testing.T) {
	payments := &stubPayments{}
	svc := New(
		&stubCartStore{
			cart:   &domain.Cart{ID: "cart-1"},
			totals: domain.CartTotals{ItemCount: 1, PriceCents: 1000},
		},
		payments,
		&stubGateway{createErr: errors.New("gateway down")},
	)

	if _, err := svc.Initiate(context.Background(), "user-1"); err == nil {
		t.Fatal("expected error")
	}
	if payments.lastUpsert.CartID != "" {
		t.Fatal("upsert must not run after a gateway failure")
	}
}

func TestVerify_BadSignatureTouchesNothing(t *testing.T) {
	payments := &stubPayments{}
	svc := New(&stubCartStore{}, payments, &stubGateway{valid: false})

	_, err := svc.Verify(context.Background(), "user-1", VerifyInput{
		GatewayOrderID:   "order_abc",
		GatewayPaymentID: "pay_1",
		Signature:        "bogus",
	})
	if !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
	if payments.confirmCalls != 0 {
		t.Fatal("materialization must not run on a bad signature")
	}
}

func TestVerify_OtherUsersPaymentIsHidden(t *testing.T) {
	payments := &stubPayments{
		getPayment: &domain.Payment{UserID: "someone-else", GatewayOrderID: "order_abc"},
	}
	svc := New(&stubCartStore{}, payments, &stubGateway{valid: true})

	_, err := svc.Verify(context.Background(), "user-1", VerifyInput{
		GatewayOrderID:   "order_abc",
		GatewayPaymentID: "pay_1",
		Signature:        "sig",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if payments.confirmCalls != 0 {
		t.Fatal("materialization must not run for a foreign payment")
	}
}

func TestVerify_Success(t *testing.T) {
	payments := &stubPayments{
		getPayment: &domain.Payment{UserID: "user-1", GatewayOrderID: "order_abc"},
		order:      &domain.Order{OrderID: "ord-123", Status: domain.OrderPlaced},
	}
	svc := New(&stubCartStore{}, payments, &stubGateway{valid: true})

	order, err := svc.Verify(context.Background(), "user-1", VerifyInput{
		GatewayOrderID:   "order_abc",
		GatewayPaymentID: "pay_1",
		Signature:        "sig",
	})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if order.OrderID != "ord-123" {
		t.Fatalf("unexpected order %+v", order)
	}
	if payments.lastConfirm.GatewayPaymentID != "pay_1" || payments.lastConfirm.Signature != "sig" {
		t.Fatalf("unexpected confirm input %+v", payments.lastConfirm)
	}
	if payments.lastConfirm.OrderID == "" {
		t.Fatal("expected a generated public order id")
	}
}
