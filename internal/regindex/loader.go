package regindex

import (
	"bytes"
	"log/slog"
	"os"
	"strings"

	"github.com/hvaldez/ladacheck/internal/domain"
)

const (
	dateColumn  = "hostRegister"
	phoneColumn = "phone"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Index maps a ten-digit phone suffix to the raw registration date string
// from the companion CSV. Built once per run, read-only afterwards.
type Index map[string]string

// Load reads the registration CSV and builds the suffix index. The format is
// deliberately naive: comma split, no quoting support, columns located by
// header name. Every failure mode degrades to an empty index with a logged
// error so the caller can continue with all joins missing.
func Load(path string, logger *slog.Logger) Index {
	index := Index{}

	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Error("registration csv read failed", "error", err, "path", path)
		return index
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	lines := strings.Split(string(raw), "\n")
	header := strings.Split(strings.TrimSpace(lines[0]), ",")
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(strings.TrimSpace(header[0]), "\ufeff")
	}

	dateIdx, phoneIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case dateColumn:
			dateIdx = i
		case phoneColumn:
			phoneIdx = i
		}
	}
	if dateIdx < 0 || phoneIdx < 0 {
		logger.Error("registration csv missing required columns",
			"required", []string{dateColumn, phoneColumn}, "found", header, "path", path)
		return index
	}

	need := dateIdx
	if phoneIdx > need {
		need = phoneIdx
	}
	need++

	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < need {
			continue
		}
		digits := domain.DigitsOnly(fields[phoneIdx])
		if len(digits) < domain.NationalNumberLength {
			continue
		}
		// Last write wins for duplicate suffixes.
		index[domain.LastDigits(digits, domain.NationalNumberLength)] = fields[dateIdx]
	}

	logger.Info("registration index loaded", "entries", len(index), "path", path)
	return index
}
