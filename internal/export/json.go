package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dusk-indust/amrfix/internal/amr"
	"github.com/dusk-indust/amrfix/internal/penman"
)

// GraphView is one graph prepared for visualization: its notation, its
// triples, and the node sets to highlight (reentrant source/target pairs in
// the reentrancy analysis).
type GraphView struct {
	ID         string       `json:"id"`
	Text       string       `json:"text"`
	Triples    []amr.Triple `json:"triples"`
	Highlights [][]string   `json:"highlights,omitempty"`
}

// CorpusExport is the top-level JSON export structure.
type CorpusExport struct {
	ExportedAt string      `json:"exportedAt"`
	Graphs     []GraphView `json:"graphs"`
}

// Builder accumulates graphs and highlights for a visualization export.
// Highlights attach to the most recently added graph, so callers interleave
// AddGraph and AddHighlight while walking a corpus.
type Builder struct {
	graphs []GraphView
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddGraph appends a graph to the export.
func (b *Builder) AddGraph(id string, g *amr.Graph) {
	b.graphs = append(b.graphs, GraphView{
		ID:      id,
		Text:    penman.Encode(g),
		Triples: g.Triples,
	})
}

// AddHighlight marks a set of node variables on the last added graph.
// A no-op when no graph has been added yet.
func (b *Builder) AddHighlight(variables ...string) {
	if len(b.graphs) == 0 {
		return
	}
	last := &b.graphs[len(b.graphs)-1]
	last.Highlights = append(last.Highlights, variables)
}

// Export builds the CorpusExport snapshot.
func (b *Builder) Export() *CorpusExport {
	return &CorpusExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Graphs:     b.graphs,
	}
}

// SaveJSON writes the export as indented JSON, creating directories as
// needed.
func (b *Builder) SaveJSON(path string) error {
	data, err := json.MarshalIndent(b.Export(), "", "  ")
	if err != nil {
		return fmt.Errorf("export: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export: mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}
