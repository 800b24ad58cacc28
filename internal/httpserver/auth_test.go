package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trendyshop/internal/domain"
	usersvc "trendyshop/internal/service/user"
	"github.com/gin-gonic/gin"
)

func TestRegisterHandler_Created(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.UserSvc = &stubUserSvc{
		registered: &domain.User{ID: "user-1", Email: "shopper@example.com"},
	}
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	body := `{"email":"shopper@example.com","phone":"9876543210","password":"Sup3rSecret"}`
	req := httptest.NewRequest(http.MethodPost, "/register/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"email":"shopper@example.com"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRegisterHandler_DuplicateEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.UserSvc = &stubUserSvc{regErr: domain.ErrAlreadyExists}
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	body := `{"email":"shopper@example.com","phone":"9876543210","password":"Sup3rSecret"}`
	req := httptest.NewRequest(http.MethodPost, "/register/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestLoginHandler_PassesCookieCartCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userSvc := &stubUserSvc{user: &domain.User{ID: "user-1"}}
	deps := testDeps()
	deps.UserSvc = userSvc
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	body := `{"email":"a@b.c","password":"Sup3rSecret"}`
	req := httptest.NewRequest(http.MethodPost, "/login/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "cart_code", Value: "guest-code"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if userSvc.lastGuest != "guest-code" {
		t.Fatalf("expected cookie cart code forwarded, got %q", userSvc.lastGuest)
	}
	if !strings.Contains(rec.Body.String(), `"access":"access-token"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.UserSvc = &stubUserSvc{loginErr: usersvc.ErrInvalidCredentials}
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	body := `{"email":"a@b.c","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/login/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRefreshHandler_RotatesPair(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.UserSvc = &stubUserSvc{user: &domain.User{ID: "user-1"}}
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/token/refresh/", strings.NewReader(`{"refresh":"old-refresh"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"access":"rotated-access"`) ||
		!strings.Contains(rec.Body.String(), `"refresh":"rotated-refresh"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestRefreshHandler_InvalidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.UserSvc = &stubUserSvc{refreshErr: usersvc.ErrInvalidToken}
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/token/refresh/", strings.NewReader(`{"refresh":"stale"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLoginHandler_MissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, testDeps())
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/login/", strings.NewReader(`{"email":"a@b.c"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
