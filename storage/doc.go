// Package storage is the client's durable key-value store: the place the
// bearer token, the cart snapshot and the theme survive restarts.
//
// Backends register a factory under a provider name; New builds the
// configured one and wraps it with encryption when a key is set.
//
//	import _ "github.com/kbukum/storefront/storage/file"
//
//	st, err := storage.New(cfg.Storage, nil, log)
//	err = storage.SetJSON(ctx, st, storage.KeyCart, items)
//
// Providers: "memory" (built in), "file" (storage/file), "redis" (redis).
package storage
