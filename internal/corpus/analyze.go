package corpus

import (
	"go.uber.org/zap"

	"github.com/dusk-indust/amrfix/internal/amr"
	"github.com/dusk-indust/amrfix/internal/repair"
)

// AnalyzeReport aggregates one batch run of the lightweight validator. Its
// counts are not comparable with ProcessReport's: no normalization, no
// targeted insertion, no duplicate elimination, and no sentinel substitution
// happen on this path.
type AnalyzeReport struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`

	// DuplicateTriples counts decoded triple keys repeated beyond their
	// first recurrence, accumulated across the whole corpus.
	DuplicateTriples int `json:"duplicateTriples"`

	// ErrorIndices lists the 1-based block indices that failed decoding
	// even after the coarse bracket append.
	ErrorIndices []int `json:"errorIndices,omitempty"`

	// Graphs holds the successfully decoded graphs in corpus order, for
	// callers that go on to corpus-level analysis (stores, exports).
	Graphs []*amr.Graph `json:"-"`
}

// Analyzer runs the lightweight validate path over a corpus and counts
// duplicate decoded triples. Duplicates here are structural, built from
// (source, relation, target) keys of decoded graphs — a different notion
// from the repair pipeline's lexical line duplicates.
type Analyzer struct {
	validator *repair.Validator
	logger    *zap.Logger
}

// NewAnalyzer creates an Analyzer around the lightweight validator.
func NewAnalyzer(validator *repair.Validator, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{validator: validator, logger: logger}
}

// Analyze validates every non-empty block sequentially, in corpus order.
// A triple key re-seen within one graph bumps a corpus-wide counter for
// that key; keys whose counter exceeds one contribute to DuplicateTriples.
func (a *Analyzer) Analyze(blocks []Block) AnalyzeReport {
	report := AnalyzeReport{Total: len(blocks)}
	repeats := make(map[string]int)

	for _, block := range blocks {
		if block.IsEmpty() {
			continue
		}

		g, _, ok := a.validator.ValidateGraph(block.Text)
		if !ok {
			report.Invalid++
			report.ErrorIndices = append(report.ErrorIndices, block.Index)
			continue
		}
		report.Valid++
		report.Graphs = append(report.Graphs, g)

		seen := make(map[string]bool, len(g.Triples))
		for _, t := range g.Triples {
			key := t.Key()
			if seen[key] {
				repeats[key]++
			}
			seen[key] = true
		}
	}

	for _, n := range repeats {
		if n > 1 {
			report.DuplicateTriples++
		}
	}

	a.logger.Info("corpus analyzed",
		zap.Int("total", report.Total),
		zap.Int("valid", report.Valid),
		zap.Int("invalid", report.Invalid),
		zap.Int("duplicateTriples", report.DuplicateTriples),
	)
	return report
}
