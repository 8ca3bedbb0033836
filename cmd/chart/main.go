package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hvaldez/ladacheck/internal/charts"
	"github.com/hvaldez/ladacheck/internal/config"
	"github.com/hvaldez/ladacheck/internal/logging"
	"github.com/hvaldez/ladacheck/internal/report"
)

func main() {
	var (
		csvPath   = flag.String("csv", "", "Path to the temporal analysis CSV produced by analyze")
		chartsDir = flag.String("charts-dir", "", "Directory for chart PNGs (overrides ANALYSIS_CHARTS_DIR)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "chart")

	if *csvPath == "" {
		logger.Error("missing -csv: pass the analisis_temporal CSV from a previous analyze run")
		os.Exit(1)
	}
	if *chartsDir != "" {
		cfg.Analysis.ChartsDir = *chartsDir
	}

	buckets, err := report.ReadSeries(*csvPath)
	if err != nil {
		logger.Error("loading temporal series failed", "error", err, "path", *csvPath)
		os.Exit(1)
	}
	logger.Info("temporal series loaded", "periods", len(buckets), "path", *csvPath)

	renderer := charts.Renderer{
		Dir:        cfg.Analysis.ChartsDir,
		CutoffYear: cfg.Analysis.TrendCutoffYear,
	}
	paths, err := renderer.RenderAll(buckets)
	if err != nil {
		logger.Error("rendering charts failed", "error", err)
		os.Exit(1)
	}

	for _, path := range paths {
		logger.Info("chart written", "path", path)
	}
}
