package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/dusk-indust/amrfix/internal/config"
	"github.com/dusk-indust/amrfix/internal/corpus"
	"github.com/dusk-indust/amrfix/internal/penman"
	"github.com/dusk-indust/amrfix/internal/repair"
)

func runProcess(logger *zap.Logger, cfg *config.ProjectConfig, args []string) error {
	fs := flag.NewFlagSet("process", flag.ContinueOnError)
	csvPath := fs.String("csv", "", "CSV file with one graph corpus per column")
	columns := fs.String("columns", strings.Join(cfg.Columns, ","), "comma-separated CSV columns to process")
	output := fs.String("output", cfg.OutputDir, "output directory for repaired corpora")
	workers := fs.Int("workers", cfg.Workers, "worker pool size (default: number of CPUs)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *output == "" {
		*output = "out"
	}
	if *workers <= 0 {
		*workers = runtime.NumCPU()
	}

	pipeline := repair.NewPipelineWithOptions(penman.NewDecoder(), normalizeOptions(cfg))
	processor := corpus.NewProcessor(pipeline, *workers, logger)
	ctx := context.Background()

	if *csvPath != "" {
		cols := splitColumns(*columns)
		if len(cols) == 0 {
			return fmt.Errorf("--csv requires --columns (or columns in amrfix.yml)")
		}
		return processCSV(ctx, processor, *csvPath, cols, *output)
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: amrfix process [--csv FILE | FILE-OR-DIR] [--output DIR]")
	}
	return processPath(ctx, processor, fs.Arg(0), *output)
}

func processCSV(ctx context.Context, processor *corpus.Processor, path string, columns []string, outputDir string) error {
	corpora, err := corpus.LoadCSV(path, columns...)
	if err != nil {
		return err
	}

	for _, col := range columns {
		report := processor.Process(ctx, corpora[col])
		if err := writeRepaired(filepath.Join(outputDir, col+".txt"), report.Results); err != nil {
			return err
		}
		printReport(col, report)
	}
	return nil
}

func processPath(ctx context.Context, processor *corpus.Processor, path, outputDir string) error {
	blocks, err := loadBlocks(path)
	if err != nil {
		return err
	}

	report := processor.Process(ctx, blocks)
	if err := writeRepaired(filepath.Join(outputDir, "repaired.txt"), report.Results); err != nil {
		return err
	}
	printReport(filepath.Base(path), report)
	return nil
}

// loadBlocks reads a corpus from a single file or from every .txt file in a
// directory.
func loadBlocks(path string) ([]corpus.Block, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if info.IsDir() {
		return corpus.LoadDir(path)
	}
	return corpus.LoadFile(path)
}

func writeRepaired(path string, results []corpus.ItemResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := corpus.WriteBlocks(f, results); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func printReport(name string, report corpus.ProcessReport) {
	fmt.Printf("\nCorpus: %s\n", name)
	fmt.Printf("  Blocks:             %d\n", report.Total)
	fmt.Printf("  Valid:              %d (%s)\n", report.Valid, percent(report.Valid, report.Total))
	fmt.Printf("  Invalid:            %d (%s)\n", report.Invalid, percent(report.Invalid, report.Total))
	fmt.Printf("  Duplicates removed: %d\n", report.DuplicatesRemoved)
}

func percent(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(total))
}

func splitColumns(s string) []string {
	var out []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
