package models

import (
	"context"
	"sync"

	"github.com/lankamart/storefront/store"
)

// document is the in-memory copy of one persisted document. Updates are
// copy-on-write: the new value replaces the old one only once it is saved.
type document[T any] struct {
	mu    sync.RWMutex
	st    *store.Store
	key   store.Key
	value T
}

func loadDocument[T any](ctx context.Context, st *store.Store, key store.Key, def T) *document[T] {
	return &document[T]{
		st:    st,
		key:   key,
		value: store.Load(ctx, st, key, def),
	}
}

func (d *document[T]) get() T {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.value
}

func (d *document[T]) update(ctx context.Context, fn func(T) (T, error)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	next, err := fn(d.value)
	if err != nil {
		return err
	}
	if err := store.Save(ctx, d.st, d.key, next); err != nil {
		return err
	}
	d.value = next
	return nil
}
