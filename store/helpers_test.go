package store

import (
	"context"
	"errors"

	"github.com/kbukum/storefront/model"
	"github.com/kbukum/storefront/storage"
)

var testProduct = model.Product{ID: "1", Name: "Test Product", Price: 100, CategoryID: "cat-1", Inventory: 10}

var errDiskFull = errors.New("disk full")

// failingStorage reads from an inner store but rejects every write.
type failingStorage struct {
	storage.Storage
}

func (failingStorage) Set(context.Context, string, string) error { return errDiskFull }
func (failingStorage) Remove(context.Context, string) error      { return errDiskFull }
