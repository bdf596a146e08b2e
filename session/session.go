package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"marketplace-client/auth"
)

// TokenKey is the storage key the bearer token lives under
const TokenKey = "token"

// Session is the signed-in state handed to every handler. It holds no token
// itself; the token is read from the store on each call.
type Session struct {
	store Store
	key   string
}

// New returns a session reading the token from TokenKey
func New(store Store) *Session {
	return NewWithKey(store, TokenKey)
}

// NewWithKey returns a session using a custom storage key, for stores shared
// between several sessions.
func NewWithKey(store Store, key string) *Session {
	return &Session{store: store, key: key}
}

// BrowserKey is the storage key used for the storefront session sid
func BrowserKey(sid string) string {
	return fmt.Sprintf("session:%s:%s", sid, TokenKey)
}

// Token returns the stored token, or "" when signed out
func (s *Session) Token(ctx context.Context) (string, error) {
	token, err := s.store.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return token, nil
}

// Save stores the token issued at sign-in
func (s *Session) Save(ctx context.Context, token string) error {
	if err := s.store.Set(ctx, s.key, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// Clear removes the stored token
func (s *Session) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}

// Claims decodes the stored token payload. It returns nil when signed out
// or when the token cannot be decoded.
func (s *Session) Claims(ctx context.Context) jwt.MapClaims {
	token, err := s.Token(ctx)
	if err != nil || token == "" {
		return nil
	}
	return auth.DecodeToken(token)
}

// Key returns the storage key of the token
func (s *Session) Key() string {
	return s.key
}
