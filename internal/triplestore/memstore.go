package triplestore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dusk-indust/amrfix/internal/amr"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store using Go maps. Thread-safe via sync.RWMutex.
type MemStore struct {
	mu     sync.RWMutex
	order  []string
	graphs map[string]*amr.Graph
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{graphs: make(map[string]*amr.Graph)}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}

// AddGraph stores a copy of the graph's triples under id.
func (m *MemStore) AddGraph(_ context.Context, id string, g *amr.Graph) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.graphs[id]; exists {
		return fmt.Errorf("triplestore: graph %q already stored", id)
	}

	m.graphs[id] = copyGraph(g)
	m.order = append(m.order, id)
	return nil
}

// GetGraph returns a copy of the stored graph for id, or nil when unknown.
// Copies cross the boundary in both directions, so callers can never mutate
// store state through a returned graph.
func (m *MemStore) GetGraph(_ context.Context, id string) (*amr.Graph, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.graphs[id]
	if !ok {
		return nil, nil
	}
	return copyGraph(g), nil
}

// copyGraph deep-copies a graph's triples and metadata.
func copyGraph(g *amr.Graph) *amr.Graph {
	c := &amr.Graph{
		Top:     g.Top,
		Triples: append([]amr.Triple(nil), g.Triples...),
	}
	if len(g.Metadata) > 0 {
		c.Metadata = make(map[string]string, len(g.Metadata))
		for k, v := range g.Metadata {
			c.Metadata[k] = v
		}
	}
	return c
}

// GraphIDs returns all stored identifiers in insertion order.
func (m *MemStore) GraphIDs(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.order...), nil
}

// Reentrancies returns the reentrant triples of the stored graph.
func (m *MemStore) Reentrancies(_ context.Context, id string) ([]amr.Triple, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.graphs[id]
	if !ok {
		return nil, fmt.Errorf("triplestore: unknown graph %q", id)
	}
	return g.ReentrantTriples(), nil
}

// CrossGraphDuplicates returns triple keys stored under more than one graph.
func (m *MemStore) CrossGraphDuplicates(_ context.Context) ([]Duplicate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byKey := make(map[string]map[string]bool)
	triples := make(map[string]amr.Triple)
	for id, g := range m.graphs {
		for _, t := range g.Triples {
			key := t.Key()
			if byKey[key] == nil {
				byKey[key] = make(map[string]bool)
				triples[key] = t
			}
			byKey[key][id] = true
		}
	}

	var out []Duplicate
	for key, ids := range byKey {
		if len(ids) < 2 {
			continue
		}
		dup := Duplicate{Triple: triples[key]}
		for id := range ids {
			dup.GraphIDs = append(dup.GraphIDs, id)
		}
		sort.Strings(dup.GraphIDs)
		out = append(out, dup)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Triple.Key() < out[j].Triple.Key()
	})
	return out, nil
}

// Stats summarizes the store contents.
func (m *MemStore) Stats(_ context.Context) (*Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := &Stats{GraphCount: len(m.graphs)}
	for _, g := range m.graphs {
		s.TripleCount += len(g.Triples)
		if len(g.ReentrantTriples()) > 0 {
			s.ReentrantGraphCount++
		}
	}
	return s, nil
}
