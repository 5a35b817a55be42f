package storage

import (
	"context"
	"time"
)

// TokenStore reads and writes the bearer token under KeyAuthToken. It
// satisfies httpclient.TokenSource.
type TokenStore struct {
	st      Storage
	timeout time.Duration
}

// NewTokenStore returns a TokenStore over st.
func NewTokenStore(st Storage) *TokenStore {
	return &TokenStore{st: st, timeout: 2 * time.Second}
}

// Token returns the stored token, "" when absent or unreadable.
func (t *TokenStore) Token() string {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()
	v, err := t.st.Get(ctx, KeyAuthToken)
	if err != nil {
		return ""
	}
	return v
}

// SetToken stores token; an empty token clears it.
func (t *TokenStore) SetToken(token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()
	if token == "" {
		return t.st.Remove(ctx, KeyAuthToken)
	}
	return t.st.Set(ctx, KeyAuthToken, token)
}

// ClearToken removes the stored token.
func (t *TokenStore) ClearToken() error {
	return t.SetToken("")
}
