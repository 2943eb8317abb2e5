package graph

import (
	"sync/atomic"
)

// Store holds the current graph snapshot. Readers load a consistent,
// immutable graph; reloads swap in a complete replacement. There is no
// partial update path.
type Store struct {
	cur atomic.Pointer[Graph]
}

// NewStore creates a store holding the given graph (may be nil).
func NewStore(g *Graph) *Store {
	s := &Store{}
	if g != nil {
		s.cur.Store(g)
	}
	return s
}

// Load returns the current snapshot, or nil when none was ever stored.
func (s *Store) Load() *Graph {
	return s.cur.Load()
}

// Swap replaces the snapshot and returns the previous one.
func (s *Store) Swap(g *Graph) *Graph {
	return s.cur.Swap(g)
}
