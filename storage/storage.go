package storage

import (
	"context"
	"errors"
)

// Keys written by the storefront stores.
const (
	KeyAuthToken = "auth_token"
	KeyCart      = "cart"
	KeyTheme     = "theme"
)

// ErrNotFound is returned by Get for a key that is not stored.
var ErrNotFound = errors.New("storage: key not found")

// Storage is a durable string key-value store.
type Storage interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// IsNotFound reports whether err means the key is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
