package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hvaldez/ladacheck/internal/domain"
)

// ReadSeries loads a temporal CSV back into period buckets, preserving row
// order. The chart binary consumes the series in a separate invocation.
func ReadSeries(path string) ([]domain.PeriodBucket, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open series %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read series header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range csvHeader {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("series %s missing column %q", path, name)
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read series rows: %w", err)
	}

	buckets := make([]domain.PeriodBucket, 0, len(rows))
	for i, row := range rows {
		bucket := domain.PeriodBucket{Period: row[columns["Periodo"]]}
		if bucket.Total, err = strconv.Atoi(row[columns["Total Usuarios"]]); err != nil {
			return nil, fmt.Errorf("series row %d: %w", i+1, err)
		}
		if bucket.WithoutPrefix, err = strconv.Atoi(row[columns["Sin Prefijo"]]); err != nil {
			return nil, fmt.Errorf("series row %d: %w", i+1, err)
		}
		if bucket.WithPrefix, err = strconv.Atoi(row[columns["Con Prefijo"]]); err != nil {
			return nil, fmt.Errorf("series row %d: %w", i+1, err)
		}
		if bucket.PctWithoutPrefix, err = strconv.ParseFloat(row[columns["% Sin Prefijo"]], 64); err != nil {
			return nil, fmt.Errorf("series row %d: %w", i+1, err)
		}
		if bucket.PctWithPrefix, err = strconv.ParseFloat(row[columns["% Con Prefijo"]], 64); err != nil {
			return nil, fmt.Errorf("series row %d: %w", i+1, err)
		}
		buckets = append(buckets, bucket)
	}
	return buckets, nil
}
