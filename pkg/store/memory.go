package store

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/matzehuels/procflow/pkg/errors"
	"github.com/matzehuels/procflow/pkg/graph"
)

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu    sync.RWMutex
	procs map[string]*graph.Procedure
}

// NewMemoryStore returns a store holding copies of the given procedures.
func NewMemoryStore(procs ...*graph.Procedure) *MemoryStore {
	s := &MemoryStore{procs: make(map[string]*graph.Procedure, len(procs))}
	for _, p := range procs {
		s.procs[p.ID] = p.Clone()
	}
	return s
}

func (s *MemoryStore) Fetch(ctx context.Context, id string) (*graph.Procedure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.procs[id]
	if !ok {
		return nil, notFound(id)
	}
	return p.Clone(), nil
}

func (s *MemoryStore) Persist(ctx context.Context, id string, g *graph.Graph, commit graph.Commit) (*graph.Procedure, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidGraph, "nil graph")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := applyCommit(s.procs[id].Clone(), id, g, commit)
	s.procs[id] = p
	return p.Clone(), nil
}

func (s *MemoryStore) Put(ctx context.Context, p *graph.Procedure) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.procs[p.ID] = p.Clone()
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*graph.Procedure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*graph.Procedure, 0, len(s.procs))
	for _, id := range slices.Sorted(maps.Keys(s.procs)) {
		out = append(out, s.procs[id].Clone())
	}
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
