package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/a2zdsa/atlas/internal/atlas"
	"github.com/a2zdsa/atlas/internal/config"
	"github.com/a2zdsa/atlas/internal/filesystem"
)

// FileStore keeps the artifacts as files in one directory.
type FileStore struct {
	IndexPath   string
	MappingPath string
	PlanPath    string
}

// NewFileStore returns a store rooted at dir using the standard file names.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		IndexPath:   filepath.Join(dir, config.IndexFileName),
		MappingPath: filepath.Join(dir, config.MappingFileName),
		PlanPath:    filepath.Join(dir, config.PlanFileName),
	}
}

// NewDefaultFileStore returns a store in the configured data directory.
func NewDefaultFileStore() *FileStore {
	return &FileStore{
		IndexPath:   config.GetIndexPath(),
		MappingPath: config.GetMappingPath(),
		PlanPath:    config.GetPlanPath(),
	}
}

func (s *FileStore) ReadIndex(ctx context.Context) ([]atlas.TopicIndexEntry, error) {
	data, err := s.read(ctx, s.IndexPath)
	if err != nil {
		return nil, err
	}
	return DecodeLines[atlas.TopicIndexEntry](s.IndexPath, data)
}

func (s *FileStore) WriteIndex(ctx context.Context, entries []atlas.TopicIndexEntry) (string, error) {
	data, err := EncodeLines(entries)
	if err != nil {
		return "", fmt.Errorf("failed to encode topic index: %w", err)
	}
	return s.write(ctx, s.IndexPath, data)
}

func (s *FileStore) ReadMappings(ctx context.Context) ([]atlas.MatchRecord, error) {
	data, err := s.read(ctx, s.MappingPath)
	if err != nil {
		return nil, err
	}
	return DecodeLines[atlas.MatchRecord](s.MappingPath, data)
}

func (s *FileStore) WriteMappings(ctx context.Context, records []atlas.MatchRecord) (string, error) {
	data, err := EncodeLines(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode mappings: %w", err)
	}
	return s.write(ctx, s.MappingPath, data)
}

func (s *FileStore) ReadPlan(ctx context.Context) (atlas.StudyPlan, error) {
	data, err := s.read(ctx, s.PlanPath)
	if err != nil {
		return atlas.StudyPlan{}, err
	}
	var plan atlas.StudyPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return atlas.StudyPlan{}, fmt.Errorf("%s: malformed study plan: %w", s.PlanPath, err)
	}
	return plan, nil
}

func (s *FileStore) WritePlan(ctx context.Context, plan atlas.StudyPlan) (string, error) {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode study plan: %w", err)
	}
	return s.write(ctx, s.PlanPath, append(data, '\n'))
}

func (s *FileStore) read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := filesystem.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrMissing)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func (s *FileStore) write(ctx context.Context, path string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return filesystem.WriteFile(path, data)
}
