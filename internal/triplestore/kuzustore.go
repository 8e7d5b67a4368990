//go:build cgo

package triplestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	kuzu "github.com/kuzudb/go-kuzu"

	"github.com/dusk-indust/amrfix/internal/amr"
)

// KuzuStore implements the Store interface using KuzuDB as the graph
// backend. It requires CGO because the go-kuzu driver wraps KuzuDB's C
// library.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	return openKuzu(":memory:")
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given directory path, so corpus indexes survive across sessions. KuzuDB
// creates the leaf directory itself.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	return openKuzu(dbPath)
}

func openKuzu(path string) (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ---------- Schema setup ----------

// ddlStatements defines the Cypher DDL executed by InitSchema. Every triple
// is an edge between label nodes; instance triples point at their concept's
// label node. The ord property preserves source order so graphs rebuild
// exactly as decoded.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS Graph(
		id STRING,
		top STRING,
		seq INT64,
		PRIMARY KEY(id)
	)`,
	`CREATE NODE TABLE IF NOT EXISTS Label(
		id STRING,
		graph_id STRING,
		text STRING,
		PRIMARY KEY(id)
	)`,
	`CREATE REL TABLE IF NOT EXISTS ROLE(FROM Label TO Label, relation STRING, ord INT64)`,
}

// InitSchema creates all node and relationship tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// ---------- Write operations ----------

// AddGraph stores the graph as label nodes plus one ROLE edge per triple.
func (s *KuzuStore) AddGraph(ctx context.Context, id string, g *amr.Graph) error {
	existing, err := s.GetGraph(ctx, id)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("triplestore: graph %q already stored", id)
	}

	seq, err := s.graphCount()
	if err != nil {
		return err
	}
	if err := s.exec(
		"CREATE (g:Graph {id: $id, top: $top, seq: $seq})",
		map[string]any{"id": id, "top": g.Top, "seq": int64(seq)},
	); err != nil {
		return err
	}

	created := make(map[string]bool)
	ensureLabel := func(text string) error {
		if created[text] {
			return nil
		}
		created[text] = true
		return s.exec(
			"CREATE (l:Label {id: $id, graph_id: $gid, text: $text})",
			map[string]any{"id": labelID(id, text), "gid": id, "text": text},
		)
	}

	for ord, t := range g.Triples {
		if err := ensureLabel(t.Source); err != nil {
			return err
		}
		if err := ensureLabel(t.Target); err != nil {
			return err
		}
		if err := s.exec(
			`MATCH (a:Label {id: $src}), (b:Label {id: $dst})
			 CREATE (a)-[:ROLE {relation: $rel, ord: $ord}]->(b)`,
			map[string]any{
				"src": labelID(id, t.Source),
				"dst": labelID(id, t.Target),
				"rel": t.Relation,
				"ord": int64(ord),
			},
		); err != nil {
			return err
		}
	}
	return nil
}

// ---------- Read operations ----------

// GetGraph rebuilds a stored graph from its ROLE edges, or returns nil when
// the id is unknown.
func (s *KuzuStore) GetGraph(_ context.Context, id string) (*amr.Graph, error) {
	rows, err := s.query(
		"MATCH (g:Graph {id: $id}) RETURN g.top",
		map[string]any{"id": id},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	g := &amr.Graph{Top: toString(rows[0][0])}

	edgeRows, err := s.query(
		`MATCH (a:Label {graph_id: $id})-[r:ROLE]->(b:Label)
		 RETURN a.text, r.relation, b.text, r.ord`,
		map[string]any{"id": id},
	)
	if err != nil {
		return nil, err
	}
	sort.Slice(edgeRows, func(i, j int) bool {
		return toInt(edgeRows[i][3]) < toInt(edgeRows[j][3])
	})
	for _, r := range edgeRows {
		g.Triples = append(g.Triples, amr.Triple{
			Source:   toString(r[0]),
			Relation: toString(r[1]),
			Target:   toString(r[2]),
		})
	}
	return g, nil
}

// GraphIDs returns all stored identifiers in insertion order.
func (s *KuzuStore) GraphIDs(_ context.Context) ([]string, error) {
	rows, err := s.query("MATCH (g:Graph) RETURN g.id, g.seq", nil)
	if err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool {
		return toInt(rows[i][1]) < toInt(rows[j][1])
	})
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, toString(r[0]))
	}
	return ids, nil
}

// Reentrancies returns the stored graph's reentrant triples.
func (s *KuzuStore) Reentrancies(ctx context.Context, id string) ([]amr.Triple, error) {
	g, err := s.GetGraph(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("triplestore: unknown graph %q", id)
	}
	return g.ReentrantTriples(), nil
}

// CrossGraphDuplicates folds over every stored edge and returns triple keys
// present under more than one graph identifier.
func (s *KuzuStore) CrossGraphDuplicates(_ context.Context) ([]Duplicate, error) {
	rows, err := s.query(
		`MATCH (a:Label)-[r:ROLE]->(b:Label)
		 RETURN a.graph_id, a.text, r.relation, b.text`,
		nil,
	)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]map[string]bool)
	triples := make(map[string]amr.Triple)
	for _, r := range rows {
		t := amr.Triple{
			Source:   toString(r[1]),
			Relation: toString(r[2]),
			Target:   toString(r[3]),
		}
		key := t.Key()
		if byKey[key] == nil {
			byKey[key] = make(map[string]bool)
			triples[key] = t
		}
		byKey[key][toString(r[0])] = true
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
func (s *KuzuStore) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	count, err := s.graphCount()
	if err != nil {
		return nil, err
	}
	stats.GraphCount = count

	rows, err := s.query("MATCH ()-[r:ROLE]->() RETURN count(r)", nil)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		stats.TripleCount = toInt(rows[0][0])
	}

	ids, err := s.GraphIDs(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		reentrant, err := s.Reentrancies(ctx, id)
		if err != nil {
			return nil, err
		}
		if len(reentrant) > 0 {
			stats.ReentrantGraphCount++
		}
	}
	return stats, nil
}

// ---------- Helpers ----------

func (s *KuzuStore) graphCount() (int, error) {
	rows, err := s.query("MATCH (g:Graph) RETURN count(g)", nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return toInt(rows[0][0]), nil
}

// labelID produces a deterministic identifier for a label node within one
// graph: "graphID\x00text".
func labelID(graphID, text string) string {
	return graphID + "\x00" + text
}

// exec runs a parameterized Cypher statement, discarding results.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
// Each row is a []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// ---------- Type coercion helpers ----------
// KuzuDB returns typed Go values (int64, float64, bool, string). These
// helpers safely coerce any -> concrete type.

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
