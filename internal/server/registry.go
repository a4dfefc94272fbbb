package server

import (
	"sync"

	"github.com/google/uuid"
)

// registry keeps computed results in memory until the process exits.
type registry[T any] struct {
	mu    sync.RWMutex
	items map[uuid.UUID]T
}

func newRegistry[T any]() *registry[T] {
	return &registry[T]{items: make(map[uuid.UUID]T)}
}

func (r *registry[T]) Put(item T) uuid.UUID {
	id := uuid.New()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[id] = item

	return id
}

func (r *registry[T]) Get(id uuid.UUID) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]

	return item, ok
}

func (r *registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}
