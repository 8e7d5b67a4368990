//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dusk-indust/amrfix/internal/corpus"
	"github.com/dusk-indust/amrfix/internal/penman"
	"github.com/dusk-indust/amrfix/internal/repair"
)

var update = flag.Bool("update", false, "update golden files")

func fixturePath() string {
	return filepath.Join("..", "..", "testdata", "fixtures", "corpus.txt")
}

func goldenPath() string {
	return filepath.Join("..", "..", "testdata", "golden", "repaired.txt")
}

// runRepairPipeline repairs the fixture corpus and returns the written output
// plus the batch report.
func runRepairPipeline(t *testing.T) ([]byte, corpus.ProcessReport) {
	t.Helper()

	blocks, err := corpus.LoadFile(fixturePath())
	require.NoError(t, err)

	processor := corpus.NewProcessor(repair.NewPipeline(penman.NewDecoder()), 4, zap.NewNop())
	report := processor.Process(context.Background(), blocks)

	var buf bytes.Buffer
	require.NoError(t, corpus.WriteBlocks(&buf, report.Results))
	return buf.Bytes(), report
}

// TestRepairGolden compares the repaired corpus against the golden file.
// Run with -update to regenerate it.
func TestRepairGolden(t *testing.T) {
	got, _ := runRepairPipeline(t)

	if *update {
		require.NoError(t, os.MkdirAll(filepath.Dir(goldenPath()), 0o755))
		require.NoError(t, os.WriteFile(goldenPath(), got, 0o644))
		t.Logf("updated %s", goldenPath())
		return
	}

	golden, err := os.ReadFile(goldenPath())
	if os.IsNotExist(err) {
		t.Skip("golden file missing; run with -update to create it")
	}
	require.NoError(t, err)

	assert.Equal(t, string(golden), string(got))
}

func TestRepairReport(t *testing.T) {
	_, report := runRepairPipeline(t)

	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 3, report.Valid)
	assert.Equal(t, 1, report.Invalid)
	assert.Equal(t, 1, report.DuplicatesRemoved)
}

// TestAnalyzeFixture runs the lightweight validator over the same corpus and
// checks it agrees with the repair outcome: the garbage block is the only
// failure.
func TestAnalyzeFixture(t *testing.T) {
	blocks, err := corpus.LoadFile(fixturePath())
	require.NoError(t, err)

	analyzer := corpus.NewAnalyzer(repair.NewValidator(penman.NewDecoder()), zap.NewNop())
	report := analyzer.Analyze(blocks)

	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 3, report.Valid)
	assert.Equal(t, 1, report.Invalid)
	assert.Equal(t, []int{4}, report.ErrorIndices)
}
