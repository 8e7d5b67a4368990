package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/dusk-indust/amrfix/internal/config"
	"github.com/dusk-indust/amrfix/internal/mcptools"
	"github.com/dusk-indust/amrfix/internal/penman"
	"github.com/dusk-indust/amrfix/internal/repair"
)

// CLI flags parsed from the root command line.
type cliFlags struct {
	Verbose  bool
	ServeMCP bool
	Version  bool
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("amrfix", flag.ContinueOnError)
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable debug logging")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as MCP server on stdio")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")
	fs.Usage = usage(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("loading amrfix.yml: %w", err)
	}

	logger, err := newLogger(flags.Verbose || cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if flags.ServeMCP {
		return serveMCP(logger, cfg)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return fmt.Errorf("no command given")
	}

	switch rest[0] {
	case "process":
		return runProcess(logger, cfg, rest[1:])
	case "validate":
		return runValidate(logger, rest[1:])
	case "reentrancies":
		return runReentrancies(logger, cfg, rest[1:])
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", rest[0])
	}
}

func serveMCP(logger *zap.Logger, cfg *config.ProjectConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dec := penman.NewDecoder()
	pipeline := repair.NewPipelineWithOptions(dec, normalizeOptions(cfg))
	svc := mcptools.NewAMRService(pipeline, repair.NewValidator(dec), logger)
	return mcptools.RunMCPServerStdio(ctx, mcptools.NewAMRMCPServer(svc))
}

// normalizeOptions maps the project config onto the repair defaults; only
// knobs the config actually sets override them.
func normalizeOptions(cfg *config.ProjectConfig) repair.NormalizeOptions {
	opts := repair.DefaultNormalizeOptions()
	if cfg.NormalizeUnicode != nil {
		opts.NormalizeUnicode = *cfg.NormalizeUnicode
	}
	return opts
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintf(fs.Output(), `usage: amrfix [flags] <command> [args]

Commands:
  process        repair a corpus of linearized graphs
  validate       report validity and duplicate triples for a corpus
  reentrancies   list reentrant triples across a corpus

Flags:
`)
		fs.PrintDefaults()
	}
}
