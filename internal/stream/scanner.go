// Package stream reconstructs individual JSON objects from a pretty-printed
// top-level array without materializing the array. It tracks brace depth
// across lines, which is sufficient for well-formed machine exports; a brace
// inside a quoted string value would corrupt the depth count. That fragility
// is inherited from the export contract and intentionally not papered over.
package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNotArray is returned when the input's first line is not "[". The file
// is treated as an unsupported format; there is no fallback parser.
var ErrNotArray = errors.New("input does not start with a JSON array")

const maxLineBytes = 1 << 20

// Scanner yields one complete object's text at a time from a pretty-printed
// JSON array. Memory stays bounded by the largest single object.
type Scanner struct {
	lines   *bufio.Scanner
	started bool

	buf      strings.Builder
	inObject bool
	depth    int
}

// NewScanner wraps r. The first call to Next validates the array header.
func NewScanner(r io.Reader) *Scanner {
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Scanner{lines: lines}
}

// Next returns the text of the next complete object, with any trailing comma
// stripped. It returns io.EOF once the input is exhausted and ErrNotArray if
// the first line, trimmed, is not exactly "[".
func (s *Scanner) Next() (string, error) {
	if !s.started {
		s.started = true
		if !s.lines.Scan() {
			if err := s.lines.Err(); err != nil {
				return "", fmt.Errorf("read first line: %w", err)
			}
			return "", ErrNotArray
		}
		if strings.TrimSpace(s.lines.Text()) != "[" {
			return "", ErrNotArray
		}
	}

	for s.lines.Scan() {
		line := strings.TrimSpace(s.lines.Text())
		if line == "" {
			continue
		}

		if !s.inObject {
			if !strings.HasPrefix(line, "{") {
				// Closing "]" or stray separators between objects.
				continue
			}
			s.inObject = true
			s.buf.Reset()
			s.depth = 0
		}

		s.buf.WriteString(line)
		s.depth += strings.Count(line, "{") - strings.Count(line, "}")

		if s.depth == 0 && (strings.HasSuffix(line, "},") || strings.HasSuffix(line, "}")) {
			s.inObject = false
			object := s.buf.String()
			object = strings.TrimSuffix(object, ",")
			return object, nil
		}
	}

	if err := s.lines.Err(); err != nil {
		return "", fmt.Errorf("read export: %w", err)
	}
	return "", io.EOF
}
