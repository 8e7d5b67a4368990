package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrMissingColumn is returned by LoadCSV when a requested column is absent
// from the header row. Batch-level and fatal, unlike decode failures.
var ErrMissingColumn = errors.New("column not found")

// LoadFile reads an AMR corpus file and splits it into blocks.
func LoadFile(path string) ([]Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: read %s: %w", path, err)
	}
	return Split(string(data)), nil
}

// LoadDir reads every .txt file directly under dir in lexical order and
// splits the concatenation into blocks, re-indexed across the whole folder.
func LoadDir(dir string) ([]Block, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("corpus: read dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".txt") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var parts []string
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("corpus: read %s: %w", name, err)
		}
		parts = append(parts, strings.TrimRight(string(data), "\n"))
	}
	return Split(strings.Join(parts, "\n\n")), nil
}

// LoadCSV reads the given columns from a CSV file with a header row. The
// result maps each column name to its cell values in row order; every
// requested column must exist or the load fails with ErrMissingColumn.
func LoadCSV(path string, columns ...string) (map[string][]Block, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // generated CSVs are often ragged

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("corpus: parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("corpus: %s has no header row", path)
	}

	header := rows[0]
	colIdx := make(map[string]int, len(columns))
	for _, col := range columns {
		idx := -1
		for i, name := range header {
			if name == col {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("corpus: %w: %q in %s", ErrMissingColumn, col, path)
		}
		colIdx[col] = idx
	}

	out := make(map[string][]Block, len(columns))
	for _, col := range columns {
		idx := colIdx[col]
		var blocks []Block
		for rowNum, row := range rows[1:] {
			var cell string
			if idx < len(row) {
				cell = row[idx]
			}
			blocks = append(blocks, Block{Index: rowNum + 1, Text: cell})
		}
		out[col] = blocks
	}
	return out, nil
}
