package main

import (
	"flag"
	"fmt"

	"go.uber.org/zap"

	"github.com/dusk-indust/amrfix/internal/corpus"
	"github.com/dusk-indust/amrfix/internal/penman"
	"github.com/dusk-indust/amrfix/internal/repair"
)

func runValidate(logger *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	showErrors := fs.Bool("show-errors", false, "print the indices of blocks that failed to decode")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: amrfix validate [--show-errors] FILE-OR-DIR")
	}

	blocks, err := loadBlocks(fs.Arg(0))
	if err != nil {
		return err
	}

	analyzer := corpus.NewAnalyzer(repair.NewValidator(penman.NewDecoder()), logger)
	report := analyzer.Analyze(blocks)

	fmt.Printf("Blocks:            %d\n", report.Total)
	fmt.Printf("Valid:             %d (%s)\n", report.Valid, percent(report.Valid, report.Total))
	fmt.Printf("Invalid:           %d (%s)\n", report.Invalid, percent(report.Invalid, report.Total))
	fmt.Printf("Duplicate triples: %d\n", report.DuplicateTriples)

	if *showErrors && len(report.ErrorIndices) > 0 {
		fmt.Println("\nFailed blocks:")
		for _, idx := range report.ErrorIndices {
			fmt.Printf("  %d\n", idx)
		}
	}
	return nil
}
