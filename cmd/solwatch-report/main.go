// solwatch-report - Sample Store Analysis
//
// Reads every sample the collector has accumulated, rebuilds per-field
// time series, and prints a statistical report: constant ("static")
// curves, descriptive statistics for dynamic numeric curves, and a
// listing of varying non-numeric curves.
//
// The report runs against the live database; WAL mode lets it read
// while the collector keeps writing.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	_ "github.com/solwatch/solwatch/migrations"

	"github.com/solwatch/solwatch/internal/analysis"
	"github.com/solwatch/solwatch/internal/infrastructure/config"
	"github.com/solwatch/solwatch/internal/infrastructure/database"
	"github.com/solwatch/solwatch/internal/store"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes one analysis pass, separated from main for testability.
//
// Parameters:
//   - ctx: Context for cancellation
//   - args: Command-line arguments (without the program name)
//   - stdout: Report destination when -out is not given
//
// Returns:
//   - error: nil on success, or error describing failure
func run(ctx context.Context, args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("solwatch-report", flag.ContinueOnError)
	configPath := flags.String("config", "", "path to config.yaml (default: SOLWATCH_CONFIG or configs/config.yaml)")
	outPath := flags.String("out", "", "write the report to this file instead of stdout")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(resolveConfigPath(*configPath))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close() //nolint:errcheck // read-only pass, nothing to lose on close

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	samples := store.NewSampleRepository(db.DB)

	readings, err := samples.ScanAll(ctx)
	if err != nil {
		return fmt.Errorf("reading samples: %w", err)
	}

	series := analysis.BuildSeries(readings)
	summary, err := analysis.Summarize(series)
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrNoSamples):
			return fmt.Errorf("no samples recorded yet; run solwatch-collect first")
		case errors.Is(err, analysis.ErrNoNumericFields):
			return fmt.Errorf("samples contain no numeric fields to analyse")
		default:
			return fmt.Errorf("analysing samples: %w", err)
		}
	}

	out := stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("creating report file: %w", err)
		}
		defer f.Close() //nolint:errcheck // write errors surface via WriteReport
		out = f
	}

	if err := analysis.WriteReport(out, summary); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	return nil
}

// resolveConfigPath picks the config path: -config flag, then
// SOLWATCH_CONFIG, then the default.
func resolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if path := os.Getenv("SOLWATCH_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
