package httpclient

import (
	"context"
	"net/http"
	"sync"

	"github.com/kbukum/storefront/logger"
)

// TokenSource gives interceptors access to the persisted bearer token.
type TokenSource interface {
	// Token returns the current token, or "" if none is stored.
	Token() string
	// ClearToken removes the stored token.
	ClearToken() error
}

// BearerAuth sets Authorization: Bearer <token> when ts holds a token.
func BearerAuth(ts TokenSource) RequestInterceptor {
	return func(_ context.Context, req RequestConfig) (RequestConfig, error) {
		if token := ts.Token(); token != "" {
			req = req.Clone()
			req.SetHeader("Authorization", "Bearer "+token)
		}
		return req, nil
	}
}

// ClearTokenOnUnauthorized clears the stored token when the API answers
// 401, so a rejected token is not sent again.
func ClearTokenOnUnauthorized(ts TokenSource, log *logger.Logger) ResponseInterceptor {
	return func(_ context.Context, resp Response) Response {
		if resp.Status == http.StatusUnauthorized {
			if err := ts.ClearToken(); err != nil {
				log.WithError(err).Warn("failed to clear token after 401")
			}
		}
		return resp
	}
}

// StaticToken is an in-memory TokenSource.
type StaticToken struct {
	mu    sync.RWMutex
	token string
}

// NewStaticToken returns a StaticToken holding token.
func NewStaticToken(token string) *StaticToken {
	return &StaticToken{token: token}
}

func (s *StaticToken) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken replaces the held token.
func (s *StaticToken) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *StaticToken) ClearToken() error {
	s.SetToken("")
	return nil
}
