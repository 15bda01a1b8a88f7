// Package store persists the derived artifacts: the topic index and mapping
// files (JSON Lines) and the study plan document.
package store

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/a2zdsa/atlas/internal/atlas"
)

// ErrMissing is returned when an artifact has not been generated yet.
var ErrMissing = errors.New("artifact not found")

// Store reads and writes the three artifacts. Writes replace the whole
// artifact and return the SHA-256 of the bytes written.
type Store interface {
	ReadIndex(ctx context.Context) ([]atlas.TopicIndexEntry, error)
	WriteIndex(ctx context.Context, entries []atlas.TopicIndexEntry) (string, error)
	ReadMappings(ctx context.Context) ([]atlas.MatchRecord, error)
	WriteMappings(ctx context.Context, records []atlas.MatchRecord) (string, error)
	ReadPlan(ctx context.Context) (atlas.StudyPlan, error)
	WritePlan(ctx context.Context, plan atlas.StudyPlan) (string, error)
}

// maxLineSize bounds a single JSONL record.
const maxLineSize = 4 << 20

// EncodeLines renders values as JSON Lines, one compact object per line.
func EncodeLines[T any](values []T) ([]byte, error) {
	var buf bytes.Buffer
	for i, value := range values {
		line, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode record %d: %w", i+1, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// DecodeLines parses JSON Lines produced by EncodeLines. Blank lines are
// skipped; a malformed line aborts the load with an error naming source and
// the 1-based line number.
func DecodeLines[T any](source string, data []byte) ([]T, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	values := []T{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var value T
		if err := json.Unmarshal(line, &value); err != nil {
			return nil, fmt.Errorf("%s:%d: malformed record: %w", source, lineNo, err)
		}
		values = append(values, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s:%d: %w", source, lineNo+1, err)
	}
	return values, nil
}
