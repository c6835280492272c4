package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// Collection is an id-keyed, mutex-guarded set of rows mirroring one
// database table. Mutations follow the reconciliation contract: Insert is
// idempotent, Update replaces an existing row or does nothing, Delete is
// a no-op when the id is unknown.
type Collection[T any] struct {
	mu    sync.RWMutex
	items map[uuid.UUID]T
	idOf  func(T) uuid.UUID
}

// NewCollection creates an empty collection keyed by the given id function
func NewCollection[T any](idOf func(T) uuid.UUID) *Collection[T] {
	return &Collection[T]{
		items: make(map[uuid.UUID]T),
		idOf:  idOf,
	}
}

// Insert adds the item unless a row with the same id already exists.
// Returns true when the item was added.
func (c *Collection[T]) Insert(item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.idOf(item)
	if _, ok := c.items[id]; ok {
		return false
	}
	c.items[id] = item
	return true
}

// Update replaces the row with the same id. Returns false and leaves the
// collection untouched when the id is not present.
func (c *Collection[T]) Update(item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.idOf(item)
	if _, ok := c.items[id]; !ok {
		return false
	}
	c.items[id] = item
	return true
}

// Upsert inserts or replaces the row unconditionally
func (c *Collection[T]) Upsert(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[c.idOf(item)] = item
}

// Delete removes the row by id. Returns true when a row was removed.
func (c *Collection[T]) Delete(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	return true
}

// DeleteWhere removes every row matching the predicate and returns the
// number of rows removed
func (c *Collection[T]) DeleteWhere(match func(T) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for id, item := range c.items {
		if match(item) {
			delete(c.items, id)
			removed++
		}
	}
	return removed
}

// Get returns the row by id
func (c *Collection[T]) Get(id uuid.UUID) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[id]
	return item, ok
}

// Len returns the number of rows held
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Items returns a snapshot of all rows in unspecified order
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item)
	}
	return out
}

// Replace swaps the entire contents for the given rows
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[uuid.UUID]T, len(items))
	for _, item := range items {
		c.items[c.idOf(item)] = item
	}
}
