package service

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/kbukum/storefront/errors"
	"github.com/kbukum/storefront/httpclient"
	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/validation"
)

// TokenClearer removes the persisted bearer token.
type TokenClearer interface {
	ClearToken() error
}

// Service issues storefront API calls through a shared client.
type Service struct {
	client *httpclient.Client
	tokens TokenClearer
	log    *logger.Logger
}

// New returns a Service. tokens is cleared by Logout and may be nil.
func New(client *httpclient.Client, tokens TokenClearer, log *logger.Logger) *Service {
	if log == nil {
		log = logger.WithComponent("service")
	}
	return &Service{client: client, tokens: tokens, log: log}
}

// Client returns the underlying HTTP client.
func (s *Service) Client() *httpclient.Client {
	return s.client
}

// rejected turns a validation failure into a 400 response.
func rejected[T any](err error) httpclient.APIResponse[T] {
	msg := err.Error()
	if appErr, ok := errors.AsAppError(err); ok {
		msg = appErr.Message
	}
	return httpclient.APIResponse[T]{Error: msg, Status: errors.Validation(msg).HTTPStatus}
}

func requireID(id string) error {
	return validation.New().Required("id", strings.TrimSpace(id)).Validate()
}

// resourcePath joins an escaped id and optional trailing segments onto base.
func resourcePath(base, id string, rest ...string) string {
	parts := append([]string{base, url.PathEscape(id)}, rest...)
	return strings.Join(parts, "/")
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q
}
