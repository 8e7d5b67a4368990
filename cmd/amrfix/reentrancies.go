package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/dusk-indust/amrfix/internal/amr"
	"github.com/dusk-indust/amrfix/internal/config"
	"github.com/dusk-indust/amrfix/internal/corpus"
	"github.com/dusk-indust/amrfix/internal/export"
	"github.com/dusk-indust/amrfix/internal/penman"
	"github.com/dusk-indust/amrfix/internal/repair"
	"github.com/dusk-indust/amrfix/internal/triplestore"
)

func runReentrancies(logger *zap.Logger, cfg *config.ProjectConfig, args []string) error {
	defaultSeed := int64(0)
	if cfg.ShuffleSeed != nil {
		defaultSeed = *cfg.ShuffleSeed
	}

	fs := flag.NewFlagSet("reentrancies", flag.ContinueOnError)
	outPath := fs.String("out", "", "TSV output file (default: stdout)")
	seed := fs.Int64("seed", defaultSeed, "shuffle seed")
	exportDir := fs.String("export", "", "directory for JSON and Mermaid exports")
	dbPath := fs.String("db", "", "Kuzu database path (default: in-memory store)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: amrfix reentrancies [--out TSV] [--seed N] [--export DIR] FILE-OR-DIR")
	}

	blocks, err := loadBlocks(fs.Arg(0))
	if err != nil {
		return err
	}

	store, err := newStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.InitSchema(ctx); err != nil {
		return err
	}

	// Decode, shuffle with the seeded source, and load into the store in
	// shuffled order.
	validator := repair.NewValidator(penman.NewDecoder())
	var graphs []*amr.Graph
	for _, block := range blocks {
		if block.IsEmpty() {
			continue
		}
		g, _, ok := validator.ValidateGraph(block.Text)
		if !ok {
			logger.Debug("skipping undecodable block", zap.Int("index", block.Index))
			continue
		}
		graphs = append(graphs, g)
	}

	rng := rand.New(rand.NewSource(*seed))
	rng.Shuffle(len(graphs), func(i, j int) {
		graphs[i], graphs[j] = graphs[j], graphs[i]
	})

	for _, g := range graphs {
		id := corpus.GraphID(g)
		if err := store.AddGraph(ctx, id, g); err != nil {
			logger.Warn("skipping graph", zap.String("id", id), zap.Error(err))
		}
	}

	out := io.Writer(os.Stdout)
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", *outPath, err)
		}
		defer f.Close()
		out = f
	}

	if err := writeReentrancyRows(ctx, out, store); err != nil {
		return err
	}

	if *exportDir != "" {
		if err := exportReentrancies(ctx, store, *exportDir); err != nil {
			return err
		}
	}

	return printStoreStats(ctx, store)
}

// writeReentrancyRows emits one TSV row per reentrant triple:
// graph id, source reference, role, target reference.
func writeReentrancyRows(ctx context.Context, w io.Writer, store triplestore.Store) error {
	ids, err := store.GraphIDs(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		g, err := store.GetGraph(ctx, id)
		if err != nil {
			return err
		}
		reentrant, err := store.Reentrancies(ctx, id)
		if err != nil {
			return err
		}
		for _, t := range reentrant {
			_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				id, g.NodeReference(t.Source), t.Relation, g.NodeReference(t.Target))
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// exportReentrancies writes a JSON snapshot of every graph that has
// reentrant triples, plus one Mermaid diagram per graph.
func exportReentrancies(ctx context.Context, store triplestore.Store, dir string) error {
	ids, err := store.GraphIDs(ctx)
	if err != nil {
		return err
	}

	builder := export.NewBuilder()
	for _, id := range ids {
		g, err := store.GetGraph(ctx, id)
		if err != nil {
			return err
		}
		reentrant, err := store.Reentrancies(ctx, id)
		if err != nil {
			return err
		}
		if len(reentrant) == 0 {
			continue
		}

		builder.AddGraph(id, g)
		var highlights []string
		for _, t := range reentrant {
			builder.AddHighlight(t.Source, t.Target)
			highlights = append(highlights, t.Source, t.Target)
		}

		mermaid := export.GenerateMermaid(g, highlights)
		path := filepath.Join(dir, id+".mmd")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(mermaid), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	jsonPath := filepath.Join(dir, "reentrancies.json")
	if err := builder.SaveJSON(jsonPath); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", jsonPath)
	return nil
}

func printStoreStats(ctx context.Context, store triplestore.Store) error {
	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	dupes, err := store.CrossGraphDuplicates(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("\nGraphs:                 %d\n", stats.GraphCount)
	fmt.Printf("Triples:                %d\n", stats.TripleCount)
	fmt.Printf("Graphs with reentrancy: %d\n", stats.ReentrantGraphCount)
	fmt.Printf("Cross-graph duplicates: %d\n", len(dupes))
	return nil
}
