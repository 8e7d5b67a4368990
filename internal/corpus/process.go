package corpus

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/amrfix/internal/repair"
)

// ItemResult pairs one block's repair outcome with its corpus index.
type ItemResult struct {
	Index  int           `json:"index"`
	Result repair.Result `json:"result"`
}

// ProcessReport aggregates one batch run of the full repair pipeline.
type ProcessReport struct {
	Total             int `json:"total"`
	Valid             int `json:"valid"`
	Invalid           int `json:"invalid"`
	DuplicatesRemoved int `json:"duplicatesRemoved"`

	// Results holds every item in corpus order, fallbacks included.
	Results []ItemResult `json:"results"`
}

// Processor runs the repair pipeline over a corpus. Items are independent,
// so they fan out over a bounded worker pool; only the aggregation after
// Wait touches shared state.
type Processor struct {
	pipeline *repair.Pipeline
	workers  int
	logger   *zap.Logger
}

// NewProcessor creates a Processor. workers <= 0 means no limit beyond the
// errgroup's own scheduling; a nil logger is replaced with a no-op one.
func NewProcessor(pipeline *repair.Pipeline, workers int, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{pipeline: pipeline, workers: workers, logger: logger}
}

// Process repairs every block and aggregates the counts. A panic while
// repairing one item marks that item invalid (sentinel) and the batch
// continues; the pipeline itself is total, so this guards collaborator
// bugs, not expected flow.
func (p *Processor) Process(ctx context.Context, blocks []Block) ProcessReport {
	results := make([]ItemResult, len(blocks))

	g, _ := errgroup.WithContext(ctx)
	if p.workers > 0 {
		g.SetLimit(p.workers)
	}

	for i, block := range blocks {
		g.Go(func() error {
			results[i] = ItemResult{
				Index:  block.Index,
				Result: p.repairOne(block),
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	report := ProcessReport{Total: len(blocks), Results: results}
	for _, r := range results {
		if r.Result.IsValid {
			report.Valid++
		} else {
			report.Invalid++
		}
		report.DuplicatesRemoved += r.Result.DuplicatesRemoved
	}

	p.logger.Info("batch processed",
		zap.Int("total", report.Total),
		zap.Int("valid", report.Valid),
		zap.Int("invalid", report.Invalid),
		zap.Int("duplicatesRemoved", report.DuplicatesRemoved),
	)
	return report
}

func (p *Processor) repairOne(block Block) (res repair.Result) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("item panicked, marked invalid",
				zap.Int("index", block.Index),
				zap.String("panic", fmt.Sprint(r)),
			)
			res = repair.Result{
				IsValid: false,
				Text:    repair.SentinelGraph,
				Outcome: repair.OutcomeFallback,
			}
		}
	}()

	res = p.pipeline.Repair(block.Text)
	p.logger.Debug("item repaired",
		zap.Int("index", block.Index),
		zap.String("outcome", string(res.Outcome)),
		zap.Int("duplicatesRemoved", res.DuplicatesRemoved),
	)
	return res
}
