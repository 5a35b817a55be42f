package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/storage"
)

func init() {
	storage.RegisterFactory(storage.ProviderRedis, func(cfg storage.Config, providerCfg any, log *logger.Logger) (storage.Storage, error) {
		rc := &Config{}
		if providerCfg != nil {
			c, ok := providerCfg.(*Config)
			if !ok {
				return nil, fmt.Errorf("redis: expected *redis.Config, got %T", providerCfg)
			}
			rc = c
		}
		client, err := New(*rc, log)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), client.cfg.DialTimeout)
		defer cancel()
		if err := client.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, err
		}
		return NewStore(client, cfg.Profile), nil
	})
}

// Store implements storage.Storage on Redis strings.
type Store struct {
	client *Client
	prefix string
	ttl    time.Duration
}

// NewStore returns a Store writing keys as <KeyPrefix>:<profile>:<key>.
func NewStore(client *Client, profile string) *Store {
	prefix := client.cfg.KeyPrefix
	if profile != "" {
		prefix += ":" + profile
	}
	return &Store{client: client, prefix: prefix, ttl: client.cfg.TTL}
}

func (s *Store) fullKey(key string) string {
	return s.prefix + ":" + key
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, found, err := s.client.Get(ctx, s.fullKey(key))
	if err != nil {
		return "", fmt.Errorf("redis get %q: %w", key, err)
	}
	if !found {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.fullKey(key), value, s.ttl); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.fullKey(key)); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
