package fakeapi

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/kbukum/storefront/errors"
)

const ctxUserID = "user_id"

// record stores the request and applies the configured delay.
func (s *Server) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method: c.Request.Method,
			Path:   c.Request.URL.Path,
			Query:  c.Request.URL.RawQuery,
			Header: c.Request.Header.Clone(),
			Body:   string(body),
		})
		delay := s.delay
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-c.Request.Context().Done():
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

// requestID echoes X-Request-ID, generating one when absent.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// requireAuth rejects requests without a valid bearer token.
func requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || raw == "" {
			abort(c, apperrors.Unauthorized("Authorization header required"))
			return
		}
		sub, err := verifyToken(raw)
		if err != nil || sub == "" {
			abort(c, apperrors.Unauthorized("Invalid or expired token"))
			return
		}
		c.Set(ctxUserID, sub)
		c.Next()
	}
}

func abort(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.HTTPStatus, err.ToBody())
}

func fail(c *gin.Context, status int, msg string) {
	abort(c, apperrors.New(apperrors.ErrCodeInvalidInput, msg, status))
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
