package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/tsawler/reportscan/config"
	"github.com/tsawler/reportscan/mtc"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		cfgPath    = flag.String("config", "", "TOML file overriding field tables and limits (optional)")
		dest       = flag.String("dest", "", "MTC entry workbook to fill (required)")
		micro      = flag.String("micro", "", "microstructure report (.docx)")
		tensile    = flag.String("tensile", "", "tensile report (.pdf)")
		hardness   = flag.String("hardness", "", "hardness report (.pdf)")
		spectro    = flag.String("spectro", "", "spectrometer export (.xlsx)")
		mechanical = flag.Bool("mechanical", true, "fill micro, tensile and hardness cells")
		chemical   = flag.Bool("chemical", true, "copy spectrometer cells")
		jsonLogs   = flag.Bool("json", false, "log as JSON")
		verbose    = flag.Bool("v", false, "log field misses and raw-text fallbacks")
	)
	flag.Parse()

	// Validate required flags
	if *dest == "" {
		printError("Error: --dest is required\n")
		os.Exit(1)
	}
	if !*mechanical && !*chemical {
		printError("Error: at least one of --mechanical and --chemical must be set\n")
		os.Exit(1)
	}

	// Setup logger
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if *jsonLogs {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := mtc.NewRunner(cfg, logger)
	rep, err := runner.Run(ctx, mtc.Sources{
		Destination: *dest,
		Micro:       *micro,
		Tensile:     *tensile,
		Hardness:    *hardness,
		Spectro:     *spectro,
	}, mtc.Options{
		Mechanical: *mechanical,
		Chemical:   *chemical,
		Progress: func(percent int, status string) {
			logger.Debug("progress", "percent", percent, "status", status)
		},
	})
	if err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}

	for _, p := range rep.Problems {
		printError("warning: %s: %s: %v\n", p.Stage, p.Path, p.Err)
	}

	// Log summary
	logger.Info("mtc entry updated",
		"run_id", rep.RunID,
		"destination", *dest,
		"cells", rep.Cells(),
		"skipped", len(rep.Skipped),
		"problems", len(rep.Problems),
	)
}
