package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetJSON decodes the value under key into T. found is false when the key
// is absent; a value that does not decode is an error.
func GetJSON[T any](ctx context.Context, s Storage, key string) (v T, found bool, err error) {
	raw, err := s.Get(ctx, key)
	if IsNotFound(err) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return v, true, fmt.Errorf("storage: decode %q: %w", key, err)
	}
	return v, true, nil
}

// SetJSON stores v encoded as JSON.
func SetJSON(ctx context.Context, s Storage, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: encode %q: %w", key, err)
	}
	return s.Set(ctx, key, string(data))
}
