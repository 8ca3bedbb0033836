package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hvaldez/ladacheck/internal/classify"
	"github.com/hvaldez/ladacheck/internal/domain"
	"github.com/hvaldez/ladacheck/internal/regindex"
	"github.com/hvaldez/ladacheck/internal/stream"
	"github.com/hvaldez/ladacheck/internal/temporal"
)

// Result carries both classification lists and the run summary.
type Result struct {
	WithoutPrefix []domain.ClassifiedUser
	WithPrefix    []domain.ClassifiedUser
	Summary       domain.Summary
}

// Analyzer runs the classification pipeline over a user export: stream one
// object at a time, classify, join registration dates, then aggregate. The
// index is materialized before any record is read and never mutated.
type Analyzer struct {
	index  regindex.Index
	logger *slog.Logger
}

// NewAnalyzer returns an Analyzer bound to an immutable registration index.
func NewAnalyzer(index regindex.Index, logger *slog.Logger) *Analyzer {
	return &Analyzer{index: index, logger: logger}
}

// Analyze processes the export at usersPath in a single pass. Unparseable
// records are logged and skipped without touching any counter; a file whose
// first line is not "[" aborts the run with stream.ErrNotArray.
func (a *Analyzer) Analyze(ctx context.Context, usersPath string) (Result, error) {
	file, err := os.Open(usersPath)
	if err != nil {
		return Result{}, fmt.Errorf("open export %s: %w", usersPath, err)
	}
	defer file.Close()

	result := Result{
		WithoutPrefix: []domain.ClassifiedUser{},
		WithPrefix:    []domain.ClassifiedUser{},
	}
	scanner := stream.NewScanner(file)

	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		objectText, err := scanner.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("scan export %s: %w", usersPath, err)
		}

		classified, ok, err := classify.Record(objectText, a.index)
		if err != nil {
			a.logger.Warn("record skipped", "error", err, "preview", classify.Preview(objectText))
			continue
		}

		result.Summary.TotalRecords++
		if !ok {
			// No phone value: excluded from classification entirely.
			continue
		}

		result.Summary.TotalWithPhone++
		if classified.LacksPrefix {
			result.WithoutPrefix = append(result.WithoutPrefix, classified.User)
		} else {
			result.WithPrefix = append(result.WithPrefix, classified.User)
		}
	}

	result.Summary.TotalWithoutPrefix = len(result.WithoutPrefix)
	result.Summary.TotalWithPrefix = len(result.WithPrefix)
	result.Summary.PctWithoutPrefix = temporal.Percentage(
		result.Summary.TotalWithoutPrefix, result.Summary.TotalWithPhone)
	result.Summary.Temporal = temporal.Aggregate(result.WithoutPrefix, result.WithPrefix)

	a.logger.Info("analysis complete",
		"total", result.Summary.TotalRecords,
		"with_phone", result.Summary.TotalWithPhone,
		"without_prefix", result.Summary.TotalWithoutPrefix,
		"with_prefix", result.Summary.TotalWithPrefix,
		"pct_without_prefix", result.Summary.PctWithoutPrefix,
	)
	return result, nil
}
