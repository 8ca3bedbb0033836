// Package report writes and reads the analysis artifacts: both classified
// user lists, the run summary, and the temporal CSV series.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hvaldez/ladacheck/internal/domain"
)

// TimestampLayout formats the run timestamp embedded in every artifact
// filename so one invocation's outputs group together.
const TimestampLayout = "2006-01-02_15-04-05"

var csvHeader = []string{"Periodo", "Total Usuarios", "Sin Prefijo", "Con Prefijo", "% Sin Prefijo", "% Con Prefijo"}

// Writer emits the four artifacts for one run into Dir.
type Writer struct {
	Dir       string
	Timestamp time.Time
}

// Artifacts lists the paths written by one run.
type Artifacts struct {
	WithoutPrefix string
	WithPrefix    string
	Summary       string
	TemporalCSV   string
}

// WriteAll writes both user lists, the summary, and the temporal CSV. This
// is the terminal pipeline step: failures propagate, nothing downstream
// needs protecting and partial writes are acceptable on crash.
func (w Writer) WriteAll(withoutPrefix, withPrefix []domain.ClassifiedUser, summary domain.Summary) (Artifacts, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return Artifacts{}, fmt.Errorf("create results dir: %w", err)
	}

	stamp := w.Timestamp.Format(TimestampLayout)
	artifacts := Artifacts{
		WithoutPrefix: filepath.Join(w.Dir, fmt.Sprintf("usuarios_sin_prefijo_%s.json", stamp)),
		WithPrefix:    filepath.Join(w.Dir, fmt.Sprintf("usuarios_con_prefijo_%s.json", stamp)),
		Summary:       filepath.Join(w.Dir, fmt.Sprintf("resumen_analisis_%s.json", stamp)),
		TemporalCSV:   filepath.Join(w.Dir, fmt.Sprintf("analisis_temporal_%s.csv", stamp)),
	}

	if withoutPrefix == nil {
		withoutPrefix = []domain.ClassifiedUser{}
	}
	if withPrefix == nil {
		withPrefix = []domain.ClassifiedUser{}
	}

	if err := writeJSON(artifacts.WithoutPrefix, withoutPrefix); err != nil {
		return Artifacts{}, err
	}
	if err := writeJSON(artifacts.WithPrefix, withPrefix); err != nil {
		return Artifacts{}, err
	}
	if err := writeJSON(artifacts.Summary, summary); err != nil {
		return Artifacts{}, err
	}
	if err := writeTemporalCSV(artifacts.TemporalCSV, summary.Temporal.Data); err != nil {
		return Artifacts{}, err
	}
	return artifacts, nil
}

func writeJSON(path string, data any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encode json for %s: %w", path, err)
	}
	return nil
}

func writeTemporalCSV(path string, buckets []domain.PeriodBucket) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, bucket := range buckets {
		row := []string{
			bucket.Period,
			strconv.Itoa(bucket.Total),
			strconv.Itoa(bucket.WithoutPrefix),
			strconv.Itoa(bucket.WithPrefix),
			strconv.FormatFloat(bucket.PctWithoutPrefix, 'f', 2, 64),
			strconv.FormatFloat(bucket.PctWithPrefix, 'f', 2, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", bucket.Period, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv %s: %w", path, err)
	}
	return nil
}
