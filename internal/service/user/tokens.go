package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	tokenrepo "trendyshop/internal/repository/token"
)

const (
	kindAccess  = "access"
	kindRefresh = "refresh"
)

// tokenManager mints opaque tokens and persists them, so a restart does not
// invalidate sessions and a single delete revokes one.
type tokenManager struct {
	repo tokenrepo.Repository
}

func newTokenManager(repo tokenrepo.Repository) *tokenManager {
	return &tokenManager{repo: repo}
}

func (m *tokenManager) Issue(ctx context.Context, userID, kind string, ttl time.Duration) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	tok := hex.EncodeToString(buf)
	err := m.repo.Create(ctx, tokenrepo.Token{
		Token:     tok,
		UserID:    userID,
		Kind:      kind,
		ExpiresAt: time.Now().Add(ttl),
	})
	if err != nil {
		return "", err
	}
	return tok, nil
}

// Validate accepts access tokens only. Refresh tokens never authenticate a
// request; they are consumed through Redeem.
func (m *tokenManager) Validate(ctx context.Context, token string) (*tokenrepo.Token, bool) {
	rec, err := m.repo.Get(ctx, token)
	if err != nil {
		return nil, false
	}
	if rec.Kind != kindAccess {
		return nil, false
	}
	if time.Now().After(rec.ExpiresAt) {
		_ = m.repo.Delete(ctx, token)
		return nil, false
	}
	return rec, true
}

// Redeem consumes a refresh token. The token is deleted on sight, so a stolen
// refresh token works at most once.
func (m *tokenManager) Redeem(ctx context.Context, token string) (*tokenrepo.Token, bool) {
	rec, err := m.repo.Get(ctx, token)
	if err != nil {
		return nil, false
	}
	if rec.Kind != kindRefresh {
		return nil, false
	}
	_ = m.repo.Delete(ctx, token)
	if time.Now().After(rec.ExpiresAt) {
		return nil, false
	}
	return rec, true
}
