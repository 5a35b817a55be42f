package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/kbukum/storefront/encryption"
)

// Encrypted seals values before they reach the inner Storage. Keys are
// stored in the clear.
type Encrypted struct {
	inner Storage
	enc   encryption.Encryptor
}

// NewEncrypted wraps inner.
func NewEncrypted(inner Storage, enc encryption.Encryptor) *Encrypted {
	return &Encrypted{inner: inner, enc: enc}
}

func (e *Encrypted) Get(ctx context.Context, key string) (string, error) {
	sealed, err := e.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}
	plain, err := e.enc.Decrypt(sealed)
	if err != nil {
		return "", fmt.Errorf("storage: decrypt %q: %w", key, err)
	}
	return plain, nil
}

func (e *Encrypted) Set(ctx context.Context, key, value string) error {
	sealed, err := e.enc.Encrypt(value)
	if err != nil {
		return fmt.Errorf("storage: encrypt %q: %w", key, err)
	}
	return e.inner.Set(ctx, key, sealed)
}

func (e *Encrypted) Remove(ctx context.Context, key string) error {
	return e.inner.Remove(ctx, key)
}

// Close closes the inner Storage when it holds resources.
func (e *Encrypted) Close() error {
	if c, ok := e.inner.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
