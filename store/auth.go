package store

import (
	"fmt"

	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/model"
	"github.com/kbukum/storefront/storage"
)

// AuthState is the signed-in session. Only Token is persisted.
type AuthState struct {
	User      *model.User `json:"user"`
	Token     string      `json:"token"`
	IsLoading bool        `json:"isLoading"`
	Error     string      `json:"error"`
}

// IsAuthenticated reports whether a token is held.
func (s AuthState) IsAuthenticated() bool {
	return s.Token != ""
}

// AuthStore holds the session and persists its token under
// storage.KeyAuthToken. It implements httpclient.TokenSource.
type AuthStore struct {
	state  *Store[AuthState]
	tokens *storage.TokenStore
	log    *logger.Logger
}

// NewAuthStore loads the persisted token from st.
func NewAuthStore(st storage.Storage, log *logger.Logger) *AuthStore {
	tokens := storage.NewTokenStore(st)
	return &AuthStore{
		state:  New(AuthState{Token: tokens.Token()}),
		tokens: tokens,
		log:    log.WithComponent("auth_store"),
	}
}

func (a *AuthStore) Get() AuthState { return a.state.Get() }

func (a *AuthStore) Subscribe(fn Listener[AuthState]) func() { return a.state.Subscribe(fn) }

func (a *AuthStore) SetUser(u *model.User) {
	a.state.Update(func(s AuthState) AuthState {
		s.User = u
		return s
	})
}

// SetToken persists token, or removes it when empty, and publishes.
func (a *AuthStore) SetToken(token string) error {
	var err error
	a.state.Update(func(s AuthState) AuthState {
		err = a.persist(token)
		s.Token = token
		return s
	})
	return err
}

func (a *AuthStore) SetLoading(loading bool) {
	a.state.Update(func(s AuthState) AuthState {
		s.IsLoading = loading
		return s
	})
}

func (a *AuthStore) SetError(msg string) {
	a.state.Update(func(s AuthState) AuthState {
		s.Error = msg
		return s
	})
}

func (a *AuthStore) ClearError() { a.SetError("") }

// Logout resets the session and removes the persisted token.
func (a *AuthStore) Logout() error {
	var err error
	a.state.Update(func(AuthState) AuthState {
		err = a.persist("")
		return AuthState{}
	})
	return err
}

// Token returns the current bearer token.
func (a *AuthStore) Token() string {
	return a.state.Get().Token
}

// ClearToken drops the token and keeps the rest of the session.
func (a *AuthStore) ClearToken() error {
	return a.SetToken("")
}

func (a *AuthStore) persist(token string) error {
	if err := a.tokens.SetToken(token); err != nil {
		a.log.WithError(err).Warn("failed to persist auth token", logger.Fields(logger.FieldKey, storage.KeyAuthToken))
		return fmt.Errorf("persist auth token: %w", err)
	}
	return nil
}
