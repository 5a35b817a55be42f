package service

import (
	"context"
	"strings"

	"github.com/kbukum/storefront/httpclient"
	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/model"
	"github.com/kbukum/storefront/validation"
)

// Register creates an account. POST /auth/register.
func (s *Service) Register(ctx context.Context, email, password string) httpclient.APIResponse[model.AuthResponse] {
	return s.authenticate(ctx, "/auth/register", email, password)
}

// Login signs in. POST /auth/login.
func (s *Service) Login(ctx context.Context, email, password string) httpclient.APIResponse[model.AuthResponse] {
	return s.authenticate(ctx, "/auth/login", email, password)
}

func (s *Service) authenticate(ctx context.Context, endpoint, email, password string) httpclient.APIResponse[model.AuthResponse] {
	creds := model.Credentials{Email: strings.TrimSpace(email), Password: password}
	if err := validation.Validate(creds); err != nil {
		return rejected[model.AuthResponse](err)
	}
	return httpclient.Post[model.AuthResponse](ctx, s.client, endpoint, creds)
}

// Logout is client-side only: it clears the persisted token.
func (s *Service) Logout(context.Context) error {
	if s.tokens == nil {
		return nil
	}
	if err := s.tokens.ClearToken(); err != nil {
		s.log.WithError(err).Warn("logout failed to clear token", logger.Fields(logger.FieldOperation, "logout"))
		return err
	}
	return nil
}
