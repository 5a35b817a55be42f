// Package redis provides a go-redis client wrapper and a storage backend
// that keeps the storefront's durable keys in Redis, namespaced per
// profile as storefront:<profile>:<key>.
//
//	import _ "github.com/kbukum/storefront/redis"
//
//	st, err := storage.New(storage.Config{Provider: "redis"}, &cfg.Redis, log)
package redis
