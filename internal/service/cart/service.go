package cart

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"trendyshop/internal/domain"
)

// CodeGenerator mints opaque guest cart codes. It is injected so tests can
// pin the codes deterministically.
type CodeGenerator interface {
	NewCode() (string, error)
}

type randomCodes struct{}

func (randomCodes) NewCode() (string, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf[:]), nil
}

type cartRepo interface {
	GetOrCreate(ctx context.Context, owner domain.CartOwner, freshCode string) (*domain.Cart, error)
	GetOpenByOwner(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID, productID, size string, quantity int) (*domain.CartItem, error)
	SetItemQuantity(ctx context.Context, itemID string, quantity int) (*domain.CartItem, error)
	RemoveItem(ctx context.Context, itemID string) error
	HasProduct(ctx context.Context, cartID, productID string) (bool, error)
	Totals(ctx context.Context, cartID string) (domain.CartTotals, error)
	MergeGuestIntoUser(ctx context.Context, guestCode, userID, freshCode string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// Service owns the cart lifecycle up to checkout: lazy creation, item
// upserts, totals, and the login-time guest merge.
type Service struct {
	repo     cartRepo
	products productRepo
	codes    CodeGenerator
}

func New(repo cartRepo, products productRepo, codes CodeGenerator) *Service {
	if codes == nil {
		codes = randomCodes{}
	}
	return &Service{repo: repo, products: products, codes: codes}
}

// GetOrCreate returns the owner's single open cart, creating one lazily. A
// guest owner with no code gets a fresh one; a guest code pointing at a paid
// cart is replaced with a fresh one (the paid cart is frozen history).
func (s *Service) GetOrCreate(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error) {
	if !owner.IsUser() && owner.Code == "" {
		code, err := s.codes.NewCode()
		if err != nil {
			return nil, err
		}
		owner = domain.OwnerGuest(code)
	}

	fresh, err := s.codes.NewCode()
	if err != nil {
		return nil, err
	}
	cart, err := s.repo.GetOrCreate(ctx, owner, fresh)
	if errors.Is(err, domain.ErrCartAlreadyPaid) && !owner.IsUser() {
		code, cerr := s.codes.NewCode()
		if cerr != nil {
			return nil, cerr
		}
		return s.repo.GetOrCreate(ctx, domain.OwnerGuest(code), "")
	}
	return cart, err
}

// AddItemInput mirrors the add-to-cart payload.
type AddItemInput struct {
	ProductID string
	Size      string
	Quantity  int
}

// AddItem upserts (product, size) into the owner's open cart, creating the
// cart when needed. The returned cart carries the owner's code so guests can
// persist it client-side.
func (s *Service) AddItem(ctx context.Context, owner domain.CartOwner, in AddItemInput) (*domain.CartItem, *domain.Cart, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, nil, fmt.Errorf("%w: product id required", domain.ErrValidation)
	}
	if in.Quantity <= 0 {
		return nil, nil, fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}

	product, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, nil, err
	}

	cart, err := s.GetOrCreate(ctx, owner)
	if err != nil {
		return nil, nil, err
	}

	item, err := s.repo.AddItem(ctx, cart.ID, product.ID, strings.TrimSpace(in.Size), in.Quantity)
	if err != nil {
		return nil, nil, err
	}
	item.Product = product
	item.TotalCents = int64(item.Quantity) * product.PriceCents
	return item, cart, nil
}

// SetQuantity overwrites an item's quantity; non-positive values remove the
// item. removed is true when the item is gone.
func (s *Service) SetQuantity(ctx context.Context, itemID string, quantity int) (item *domain.CartItem, removed bool, err error) {
	if strings.TrimSpace(itemID) == "" {
		return nil, false, fmt.Errorf("%w: item id required", domain.ErrValidation)
	}
	item, err = s.repo.SetItemQuantity(ctx, itemID, quantity)
	if err != nil {
		return nil, false, err
	}
	return item, item == nil, nil
}

// RemoveItem deletes a cart item; ErrNotFound when it does not exist.
func (s *Service) RemoveItem(ctx context.Context, itemID string) error {
	if strings.TrimSpace(itemID) == "" {
		return fmt.Errorf("%w: item id required", domain.ErrValidation)
	}
	return s.repo.RemoveItem(ctx, itemID)
}

// Stat returns the open cart for a guest code together with its totals.
func (s *Service) Stat(ctx context.Context, code string) (*domain.Cart, domain.CartTotals, error) {
	if strings.TrimSpace(code) == "" {
		return nil, domain.CartTotals{}, fmt.Errorf("%w: cart code required", domain.ErrValidation)
	}
	cart, err := s.repo.GetOpenByOwner(ctx, domain.OwnerGuest(code))
	if err != nil {
		return nil, domain.CartTotals{}, err
	}
	totals, err := s.repo.Totals(ctx, cart.ID)
	if err != nil {
		return nil, domain.CartTotals{}, err
	}
	return cart, totals, nil
}

// Totals computes the owner's open cart totals at live prices.
func (s *Service) Totals(ctx context.Context, cart *domain.Cart) (domain.CartTotals, error) {
	return s.repo.Totals(ctx, cart.ID)
}

// HasProduct reports whether the guest cart contains the product.
func (s *Service) HasProduct(ctx context.Context, code, productID string) (bool, error) {
	if strings.TrimSpace(code) == "" || strings.TrimSpace(productID) == "" {
		return false, fmt.Errorf("%w: cart code and product id required", domain.ErrValidation)
	}
	cart, err := s.repo.GetOpenByOwner(ctx, domain.OwnerGuest(code))
	if err != nil {
		return false, err
	}
	return s.repo.HasProduct(ctx, cart.ID, productID)
}

// Merge folds the guest cart identified by code into the user's open cart.
// A blank code or a missing guest cart is a no-op. The repository runs the
// merge as one transaction, so a crashed merge retries cleanly.
func (s *Service) Merge(ctx context.Context, userID, guestCode string) error {
	guestCode = strings.TrimSpace(guestCode)
	if guestCode == "" {
		return nil
	}
	fresh, err := s.codes.NewCode()
	if err != nil {
		return err
	}
	return s.repo.MergeGuestIntoUser(ctx, guestCode, userID, fresh)
}
