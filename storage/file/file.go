// Package file stores values in a single JSON document on disk. Writes go
// to a temporary file that is renamed over the document, so a crash never
// leaves a half-written store.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/storage"
)

func init() {
	storage.RegisterFactory(storage.ProviderFile, func(cfg storage.Config, _ any, log *logger.Logger) (storage.Storage, error) {
		path := cfg.Path
		if path == "" {
			var err error
			if path, err = DefaultPath(cfg.Profile); err != nil {
				return nil, err
			}
		}
		log.Debug("opening file storage", logger.Fields("path", path))
		return Open(path)
	})
}

// DefaultPath returns <user config dir>/storefront/<profile>.json.
func DefaultPath(profile string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("storage/file: resolve config dir: %w", err)
	}
	return filepath.Join(dir, "storefront", profile+".json"), nil
}

// Storage implements storage.Storage over one JSON file.
type Storage struct {
	path string

	mu   sync.Mutex
	data map[string]string
}

// Open loads the document at path, creating its directory if needed. A
// missing file is an empty store.
func Open(path string) (*Storage, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("storage/file: resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o700); err != nil {
		return nil, fmt.Errorf("storage/file: create directory: %w", err)
	}

	s := &Storage{path: abs, data: make(map[string]string)}
	raw, err := os.ReadFile(abs)
	switch {
	case os.IsNotExist(err):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("storage/file: read %s: %w", abs, err)
	case len(raw) == 0:
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("storage/file: parse %s: %w", abs, err)
	}
	return s, nil
}

// Path returns the absolute path of the document.
func (s *Storage) Path() string { return s.path }

func (s *Storage) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (s *Storage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.data[key]
	s.data[key] = value
	if err := s.flush(); err != nil {
		if had {
			s.data[key] = prev
		} else {
			delete(s.data, key)
		}
		return err
	}
	return nil
}

func (s *Storage) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.data[key]
	if !had {
		return nil
	}
	delete(s.data, key)
	if err := s.flush(); err != nil {
		s.data[key] = prev
		return err
	}
	return nil
}

// flush writes the document atomically. Caller holds mu.
func (s *Storage) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("storage/file: encode: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".storefront-*.tmp")
	if err != nil {
		return fmt.Errorf("storage/file: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("storage/file: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage/file: close: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("storage/file: chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("storage/file: replace %s: %w", s.path, err)
	}
	return nil
}
