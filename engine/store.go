package engine

import (
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/core"
)

// Store is a sparse set of components of type T keyed by entity
// Values live densely for iteration; removal swaps the last element into the hole,
// so iteration order is insertion order until the first removal
// Not safe for concurrent use; the owning world runs on one goroutine
type Store[T any] struct {
	index    map[core.Entity]int
	entities []core.Entity
	values   []T
}

// NewStore creates an empty store for T
func NewStore[T any]() *Store[T] {
	return &Store[T]{index: make(map[core.Entity]int)}
}

// SetComponent inserts or replaces e's component
func (s *Store[T]) SetComponent(e core.Entity, val T) {
	if i, ok := s.index[e]; ok {
		s.values[i] = val
		return
	}
	s.index[e] = len(s.entities)
	s.entities = append(s.entities, e)
	s.values = append(s.values, val)
}

// GetComponent returns a copy of e's component
func (s *Store[T]) GetComponent(e core.Entity) (T, bool) {
	i, ok := s.index[e]
	if !ok {
		var zero T
		return zero, false
	}
	return s.values[i], true
}

// RemoveEntity deletes e's component if present
func (s *Store[T]) RemoveEntity(e core.Entity) {
	i, ok := s.index[e]
	if !ok {
		return
	}
	last := len(s.entities) - 1
	if i != last {
		moved := s.entities[last]
		s.entities[i] = moved
		s.values[i] = s.values[last]
		s.index[moved] = i
	}
	var zero T
	s.values[last] = zero
	s.entities = s.entities[:last]
	s.values = s.values[:last]
	delete(s.index, e)
}

// RemoveBatch deletes every listed entity
func (s *Store[T]) RemoveBatch(entities []core.Entity) {
	for _, e := range entities {
		s.RemoveEntity(e)
	}
}

// HasEntity reports whether e has a component here
func (s *Store[T]) HasEntity(e core.Entity) bool {
	_, ok := s.index[e]
	return ok
}

// GetAllEntities returns a copy of the entity list, safe to mutate the store while ranging it
func (s *Store[T]) GetAllEntities() []core.Entity {
	out := make([]core.Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

func (s *Store[T]) CountEntities() int {
	return len(s.entities)
}

// ClearAllComponents empties the store
func (s *Store[T]) ClearAllComponents() {
	clear(s.index)
	clear(s.values)
	s.entities = s.entities[:0]
	s.values = s.values[:0]
}

// AnyStore is the type-erased view the world uses to destroy an entity across every store
type AnyStore interface {
	RemoveEntity(e core.Entity)
	HasEntity(e core.Entity) bool
	CountEntities() int
	ClearAllComponents()
}
