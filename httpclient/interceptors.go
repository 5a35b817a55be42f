package httpclient

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kbukum/storefront/logger"
)

// RequestIDHeader carries the per-call request id.
const RequestIDHeader = "X-Request-ID"

// RequestID sets X-Request-ID to a fresh UUID unless the caller set one.
func RequestID() RequestInterceptor {
	return func(_ context.Context, req RequestConfig) (RequestConfig, error) {
		if req.Header(RequestIDHeader) != "" {
			return req, nil
		}
		req = req.Clone()
		req.SetHeader(RequestIDHeader, uuid.NewString())
		return req, nil
	}
}

// LogCalls logs each completed call at debug level, failures at warn.
func LogCalls(log *logger.Logger) ResponseInterceptor {
	return func(_ context.Context, resp Response) Response {
		fields := logger.Fields(
			logger.FieldStatus, resp.Status,
			logger.FieldDuration, resp.Duration.Milliseconds(),
		)
		if resp.Request != nil {
			fields[logger.FieldMethod] = resp.Request.Method
			fields[logger.FieldEndpoint] = resp.Request.URL
			if id := resp.Request.Header(RequestIDHeader); id != "" {
				fields[logger.FieldRequestID] = id
			}
		}
		if resp.Error != "" {
			fields[logger.FieldError] = resp.Error
			log.Warn("api call failed", fields)
		} else {
			log.Debug("api call", fields)
		}
		return resp
	}
}

// DropExpiredToken clears a stored JWT whose exp claim has passed and
// strips any Authorization header already set from it. Tokens that are not
// JWTs are left alone; the API remains the authority on validity.
func DropExpiredToken(ts TokenSource, log *logger.Logger) RequestInterceptor {
	return func(_ context.Context, req RequestConfig) (RequestConfig, error) {
		token := ts.Token()
		if token == "" {
			return req, nil
		}
		claims, err := ParseTokenClaims(token)
		if err != nil || !claims.Expired(time.Now()) {
			return req, nil
		}
		if err := ts.ClearToken(); err != nil {
			log.WithError(err).Warn("failed to clear expired token")
		} else {
			log.Info("dropped expired token", logger.Fields("expired_at", claims.ExpiresAt))
		}
		if req.Header("Authorization") == "Bearer "+token {
			req = req.Clone()
			req.DelHeader("Authorization")
		}
		return req, nil
	}
}

// TokenClaims are the unverified claims of a bearer JWT.
type TokenClaims struct {
	Subject   string    `json:"sub" yaml:"sub"`
	Email     string    `json:"email,omitempty" yaml:"email,omitempty"`
	Issuer    string    `json:"iss,omitempty" yaml:"iss,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty" yaml:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty" yaml:"exp,omitempty"`
}

// Expired reports whether the token has an exp claim before now.
func (c TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

type bearerClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// ParseTokenClaims decodes a JWT without verifying its signature. The
// client holds no key; it only needs the claims for display and expiry.
func ParseTokenClaims(token string) (TokenClaims, error) {
	var bc bearerClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &bc); err != nil {
		return TokenClaims{}, err
	}
	claims := TokenClaims{
		Subject: bc.Subject,
		Email:   bc.Email,
		Issuer:  bc.Issuer,
	}
	if bc.IssuedAt != nil {
		claims.IssuedAt = bc.IssuedAt.Time
	}
	if bc.ExpiresAt != nil {
		claims.ExpiresAt = bc.ExpiresAt.Time
	}
	return claims, nil
}
