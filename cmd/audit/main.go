package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"dq-audit/internal/audit"
	"dq-audit/internal/config"
	"dq-audit/internal/report"
	"dq-audit/internal/source/mysql"
	"dq-audit/internal/store"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "audit error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 2 {
		printUsage()
		return nil
	}

	switch args[1] {
	case "run":
		return runAudit(args[2:])
	case "extract":
		return runExtract(args[2:])
	case "help", "--help", "-h":
		printUsage()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", args[1])
	}
}

func runAudit(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "config.yaml", "Path to config.yaml")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	if err := store.InitDB(cfg.Store); err != nil {
		return fmt.Errorf("init run history: %w", err)
	}

	auditor := audit.New(cfg)
	run, err := auditor.Run(context.Background(), uuid.New().String())
	if err != nil {
		return err
	}

	if err := store.SaveRun(run); err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	fmt.Println(report.RenderSummary(run))
	return nil
}

func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	configPath := fs.String("config", "config.yaml", "Path to config.yaml")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if cfg.Source == nil || cfg.Source.DSN == "" {
		return fmt.Errorf("no source configured: set source.dsn in %s", *configPath)
	}

	extractor, err := mysql.NewExtractor(cfg.Source.DSN)
	if err != nil {
		return err
	}
	defer extractor.Close()

	return extractor.ExtractAll(context.Background(), cfg.Source.Tables, cfg.ExtractedDir)
}

func printUsage() {
	fmt.Print(`Data quality audit tool

Usage:
  audit run --config <path>
  audit extract --config <path>

Commands:
  run       Run the full audit and write the Markdown report
  extract   Dump the configured MySQL tables to extracted CSV files
  help      Show this help message
`)
}
