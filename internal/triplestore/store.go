package triplestore

import (
	"context"
	"io"

	"github.com/dusk-indust/amrfix/internal/amr"
)

// Store is the interface for the corpus-level triple backend. It holds
// decoded graphs only; lexical line duplicates never reach a store.
// Implementations: KuzuStore (production, cgo), MemStore (testing, default
// for cgo-less builds).
type Store interface {
	io.Closer

	// Schema setup, called once before any graph is inserted.
	InitSchema(ctx context.Context) error

	// AddGraph stores a decoded graph under the given corpus identifier.
	// Adding the same identifier twice is an error.
	AddGraph(ctx context.Context, id string, g *amr.Graph) error

	// GetGraph returns the stored graph, or nil when the id is unknown.
	GetGraph(ctx context.Context, id string) (*amr.Graph, error)

	// GraphIDs returns all stored identifiers in insertion order.
	GraphIDs(ctx context.Context) ([]string, error)

	// Reentrancies returns the stored graph's reentrant triples.
	Reentrancies(ctx context.Context, id string) ([]amr.Triple, error)

	// CrossGraphDuplicates returns every triple key stored under more than
	// one graph identifier.
	CrossGraphDuplicates(ctx context.Context) ([]Duplicate, error)

	// Stats summarizes the store contents.
	Stats(ctx context.Context) (*Stats, error)
}

// Duplicate is a triple key that occurs in more than one stored graph.
type Duplicate struct {
	Triple   amr.Triple `json:"triple"`
	GraphIDs []string   `json:"graphIds"` // sorted
}

// Stats summarizes a triple store.
type Stats struct {
	GraphCount  int `json:"graphCount"`
	TripleCount int `json:"tripleCount"`

	// ReentrantGraphCount is the number of graphs with at least one
	// reentrant triple.
	ReentrantGraphCount int `json:"reentrantGraphCount"`
}
