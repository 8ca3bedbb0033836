package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hvaldez/ladacheck/internal/regindex"
	"github.com/hvaldez/ladacheck/internal/report"
	"github.com/hvaldez/ladacheck/internal/stream"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const sampleExport = `[
  {
    "phone": "5512345678",
    "email": "ana@example.mx"
  },
  {
    "phone": "5215587654321",
    "email": "luis@example.mx"
  },
  {
    "email": "sin.telefono@example.mx"
  },
  {
    "phone": ""
  },
  {
    "phone": "3311122233"
  }
]
`

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "allUsers.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write export: %v", err)
	}
	return path
}

func TestAnalyzeCounts(t *testing.T) {
	index := regindex.Index{
		"5512345678": "2023-04-10 08:00:00",
		"5587654321": "2023-04-20 09:00:00",
	}
	analyzer := NewAnalyzer(index, testLogger())

	result, err := analyzer.Analyze(context.Background(), writeExport(t, sampleExport))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	summary := result.Summary
	if summary.TotalRecords != 5 {
		t.Errorf("expected 5 total records, got %d", summary.TotalRecords)
	}
	if summary.TotalWithPhone != 3 {
		t.Errorf("expected 3 records with phone, got %d", summary.TotalWithPhone)
	}
	if summary.TotalWithoutPrefix != 2 || summary.TotalWithPrefix != 1 {
		t.Errorf("expected 2 without / 1 with prefix, got %d / %d",
			summary.TotalWithoutPrefix, summary.TotalWithPrefix)
	}
	if summary.PctWithoutPrefix != 66.67 {
		t.Errorf("expected 66.67%% without prefix, got %v", summary.PctWithoutPrefix)
	}

	if len(summary.Temporal.Periods) != 1 || summary.Temporal.Periods[0] != "2023-04" {
		t.Fatalf("expected single period 2023-04, got %v", summary.Temporal.Periods)
	}
	bucket := summary.Temporal.Data[0]
	if bucket.WithoutPrefix != 1 || bucket.WithPrefix != 1 || bucket.Total != 2 {
		t.Errorf("unexpected bucket %+v", bucket)
	}
}

func TestAnalyzeSkipsMalformedObjects(t *testing.T) {
	export := `[
  {
    "phone": "5512345678"
  },
  {
    "phone": "55123
  },
  {
    "phone": "3311122233"
  }
]
`
	analyzer := NewAnalyzer(regindex.Index{}, testLogger())

	result, err := analyzer.Analyze(context.Background(), writeExport(t, export))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Summary.TotalRecords != 2 {
		t.Errorf("malformed object must not count, got total %d", result.Summary.TotalRecords)
	}
	if result.Summary.TotalWithPhone != 2 {
		t.Errorf("expected 2 with phone, got %d", result.Summary.TotalWithPhone)
	}
}

func TestAnalyzeRejectsNonArrayExport(t *testing.T) {
	analyzer := NewAnalyzer(regindex.Index{}, testLogger())

	_, err := analyzer.Analyze(context.Background(), writeExport(t, `{"users": []}`))
	if !errors.Is(err, stream.ErrNotArray) {
		t.Fatalf("expected ErrNotArray, got %v", err)
	}
}

func TestAnalyzeMissingFile(t *testing.T) {
	analyzer := NewAnalyzer(regindex.Index{}, testLogger())

	_, err := analyzer.Analyze(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing export")
	}
}

func TestAnalyzeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	analyzer := NewAnalyzer(regindex.Index{}, testLogger())
	_, err := analyzer.Analyze(ctx, writeExport(t, sampleExport))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// Two runs over identical input with a pinned timestamp must produce
// byte-identical artifacts.
func TestPipelineIdempotent(t *testing.T) {
	exportPath := writeExport(t, sampleExport)
	index := regindex.Index{"5512345678": "2023-04-10 08:00:00"}
	stamp := time.Date(2025, 2, 28, 19, 51, 16, 0, time.UTC)

	run := func(dir string) map[string][]byte {
		analyzer := NewAnalyzer(index, testLogger())
		result, err := analyzer.Analyze(context.Background(), exportPath)
		if err != nil {
			t.Fatalf("analyze: %v", err)
		}
		writer := report.Writer{Dir: dir, Timestamp: stamp}
		artifacts, err := writer.WriteAll(result.WithoutPrefix, result.WithPrefix, result.Summary)
		if err != nil {
			t.Fatalf("write artifacts: %v", err)
		}
		contents := map[string][]byte{}
		for name, path := range map[string]string{
			"sin":      artifacts.WithoutPrefix,
			"con":      artifacts.WithPrefix,
			"resumen":  artifacts.Summary,
			"temporal": artifacts.TemporalCSV,
		} {
			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read %s: %v", path, err)
			}
			contents[name] = raw
		}
		return contents
	}

	first := run(t.TempDir())
	second := run(t.TempDir())
	for name, raw := range first {
		if !bytes.Equal(raw, second[name]) {
			t.Errorf("artifact %s differs between runs", name)
		}
	}
}
