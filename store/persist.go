package store

import (
	"context"
	"time"
)

// persistTimeout bounds every durable-storage operation issued by a store.
const persistTimeout = 2 * time.Second

func persistContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), persistTimeout)
}
