package token

import (
	"context"
	"time"
)

// Token is an opaque access or refresh credential bound to a user.
type Token struct {
	Token     string
	UserID    string
	Kind      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type Repository interface {
	// Create inserts a token; ErrAlreadyExists on a token-string collision.
	Create(ctx context.Context, token Token) error
	Get(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
}
