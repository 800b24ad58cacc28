package user

import (
	"context"

	"trendyshop/internal/domain"
)

type Repository interface {
	// Create inserts a user; ErrAlreadyExists on a duplicate email or phone.
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)

	ListAddresses(ctx context.Context, userID string) ([]domain.UserAddress, error)
	// AddAddress inserts an address; when it is flagged default, the previous
	// default is cleared in the same transaction.
	AddAddress(ctx context.Context, a domain.UserAddress) (*domain.UserAddress, error)
	DeleteAddress(ctx context.Context, userID, addressID string) error
}
