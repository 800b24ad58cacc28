package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"trendyshop/internal/domain"
	tokenrepo "trendyshop/internal/repository/token"
	userrepo "trendyshop/internal/repository/user"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

type cartMerger interface {
	Merge(ctx context.Context, userID, guestCode string) error
}

// Service handles registration, login and the address book. Login also folds
// a carried-over guest cart into the user's cart; that merge never fails the
// login itself.
type Service struct {
	repo        userrepo.Repository
	tokens      *tokenManager
	carts       cartMerger
	logger      *log.Logger
	accessTTL   time.Duration
	refreshTTL  time.Duration
	passwordMin int
}

// New creates a Service with sane defaults.
func New(repo userrepo.Repository, tokens tokenrepo.Repository, carts cartMerger, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		repo:        repo,
		tokens:      newTokenManager(tokens),
		carts:       carts,
		logger:      logger,
		accessTTL:   48 * time.Hour,
		refreshTTL:  30 * 24 * time.Hour,
		passwordMin: 8,
	}
}

// RegisterInput captures fields expected by the register endpoint.
type RegisterInput struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Register creates a new account.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email required", domain.ErrValidation)
	}
	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone required", domain.ErrValidation)
	}
	password := strings.TrimSpace(in.Password)
	if err := validatePassword(password, s.passwordMin); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, domain.User{
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hashed),
	})
}

// Login validates credentials, issues tokens, and merges the guest cart named
// by guestCartCode (blank means no guest cart). Merge failures are logged and
// swallowed: a broken merge must not block the login.
func (s *Service) Login(ctx context.Context, email, password, guestCartCode string) (*domain.User, string, string, error) {
	password = strings.TrimSpace(password)
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(ctx, u.ID, kindAccess, s.accessTTL)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokens.Issue(ctx, u.ID, kindRefresh, s.refreshTTL)
	if err != nil {
		return nil, "", "", err
	}

	if guestCartCode != "" && s.carts != nil {
		if err := s.carts.Merge(ctx, u.ID, guestCartCode); err != nil {
			s.logger.Printf("user service: cart merge user_id=%s code=%s error=%v", u.ID, guestCartCode, err)
		}
	}

	return u, access, refresh, nil
}

// LookupByToken returns the user bound to a valid access token.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.User, error) {
	meta, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return nil, ErrInvalidToken
	}
	u, err := s.repo.GetByID(ctx, meta.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

// Refresh rotates a refresh token into a fresh access/refresh pair. The old
// refresh token is consumed even when the rotation fails, so it cannot be
// replayed against a later attempt.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*domain.User, string, string, error) {
	meta, ok := s.tokens.Redeem(ctx, refreshToken)
	if !ok {
		return nil, "", "", ErrInvalidToken
	}
	u, err := s.repo.GetByID(ctx, meta.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", "", ErrInvalidToken
		}
		return nil, "", "", err
	}
	access, err := s.tokens.Issue(ctx, u.ID, kindAccess, s.accessTTL)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokens.Issue(ctx, u.ID, kindRefresh, s.refreshTTL)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

// AddressInput mirrors incoming address payloads.
type AddressInput struct {
	FullAddress string `json:"fullAddress"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
	IsDefault   bool   `json:"isDefault"`
}

// AddAddress appends to the address book; flagging it default demotes the
// previous default inside the repository transaction.
func (s *Service) AddAddress(ctx context.Context, userID string, in AddressInput) (*domain.UserAddress, error) {
	if strings.TrimSpace(in.FullAddress) == "" {
		return nil, fmt.Errorf("%w: full address required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.City) == "" || strings.TrimSpace(in.State) == "" {
		return nil, fmt.Errorf("%w: city and state required", domain.ErrValidation)
	}
	return s.repo.AddAddress(ctx, domain.UserAddress{
		UserID:      userID,
		FullAddress: strings.TrimSpace(in.FullAddress),
		City:        strings.TrimSpace(in.City),
		State:       strings.TrimSpace(in.State),
		Pincode:     strings.TrimSpace(in.Pincode),
		IsDefault:   in.IsDefault,
	})
}

// ListAddresses returns the user's address book, default first.
func (s *Service) ListAddresses(ctx context.Context, userID string) ([]domain.UserAddress, error) {
	return s.repo.ListAddresses(ctx, userID)
}

// DeleteAddress removes an address owned by the user.
func (s *Service) DeleteAddress(ctx context.Context, userID, addressID string) error {
	return s.repo.DeleteAddress(ctx, userID, addressID)
}

// AccessTTLSeconds exposes the access token lifetime in seconds.
func (s *Service) AccessTTLSeconds() int {
	return int(s.accessTTL.Seconds())
}

func validatePassword(p string, min int) error {
	trimmed := strings.TrimSpace(p)
	if len(trimmed) < min {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, min)
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range trimmed {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return fmt.Errorf("%w: password must contain at least 1 uppercase letter, 1 lowercase letter, and 1 number", domain.ErrValidation)
	}
	return nil
}
