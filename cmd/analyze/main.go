package main

import (
	"context"
	"crypto/rand"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hvaldez/ladacheck/internal/config"
	"github.com/hvaldez/ladacheck/internal/logging"
	"github.com/hvaldez/ladacheck/internal/regindex"
	"github.com/hvaldez/ladacheck/internal/report"
	"github.com/hvaldez/ladacheck/internal/service"
	"github.com/hvaldez/ladacheck/internal/stream"
)

func main() {
	var (
		usersPath     = flag.String("users", "", "Path to the user export JSON (overrides ANALYSIS_USERS_FILE)")
		registrations = flag.String("registrations", "", "Path to the registration CSV (overrides ANALYSIS_REGISTRATIONS_FILE)")
		resultsDir    = flag.String("results-dir", "", "Directory for result artifacts (overrides ANALYSIS_RESULTS_DIR)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	runID := ulid.MustNew(ulid.Now(), rand.Reader).String()
	logger := logging.New(cfg.Logging).With("component", "analyze", "run_id", runID)

	if *usersPath != "" {
		cfg.Analysis.UsersFile = *usersPath
	}
	if *registrations != "" {
		cfg.Analysis.RegistrationsFile = *registrations
	}
	if *resultsDir != "" {
		cfg.Analysis.ResultsDir = *resultsDir
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	start := time.Now()
	index := regindex.Load(cfg.Analysis.RegistrationsFile, logger)

	analyzer := service.NewAnalyzer(index, logger)
	result, err := analyzer.Analyze(ctx, cfg.Analysis.UsersFile)
	if err != nil {
		if errors.Is(err, stream.ErrNotArray) {
			logger.Error("export format unsupported; aborting run", "error", err, "path", cfg.Analysis.UsersFile)
			os.Exit(1)
		}
		logger.Error("analysis failed", "error", err)
		os.Exit(1)
	}

	for _, bucket := range result.Summary.Temporal.Data {
		logger.Debug("period",
			"periodo", bucket.Period,
			"total", bucket.Total,
			"sin_prefijo", bucket.WithoutPrefix,
			"con_prefijo", bucket.WithPrefix,
			"pct_sin_prefijo", bucket.PctWithoutPrefix,
			"pct_con_prefijo", bucket.PctWithPrefix,
		)
	}

	writer := report.Writer{Dir: cfg.Analysis.ResultsDir, Timestamp: start}
	artifacts, err := writer.WriteAll(result.WithoutPrefix, result.WithPrefix, result.Summary)
	if err != nil {
		logger.Error("writing artifacts failed", "error", err)
		os.Exit(1)
	}

	logger.Info("run complete",
		"duration", time.Since(start).String(),
		"sin_prefijo", artifacts.WithoutPrefix,
		"con_prefijo", artifacts.WithPrefix,
		"resumen", artifacts.Summary,
		"temporal", artifacts.TemporalCSV,
	)
}
