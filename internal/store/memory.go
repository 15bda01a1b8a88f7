package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/a2zdsa/atlas/internal/atlas"
	"github.com/a2zdsa/atlas/internal/filesystem"
)

// MemoryStore keeps encoded artifacts in memory. Values round-trip through
// the same encoding as FileStore so callers observe identical data.
type MemoryStore struct {
	mu       sync.RWMutex
	index    []byte
	mappings []byte
	plan     []byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) ReadIndex(ctx context.Context) ([]atlas.TopicIndexEntry, error) {
	data, err := s.get(ctx, &s.index)
	if err != nil {
		return nil, err
	}
	return DecodeLines[atlas.TopicIndexEntry]("index", data)
}

func (s *MemoryStore) WriteIndex(ctx context.Context, entries []atlas.TopicIndexEntry) (string, error) {
	data, err := EncodeLines(entries)
	if err != nil {
		return "", err
	}
	return s.put(ctx, &s.index, data)
}

func (s *MemoryStore) ReadMappings(ctx context.Context) ([]atlas.MatchRecord, error) {
	data, err := s.get(ctx, &s.mappings)
	if err != nil {
		return nil, err
	}
	return DecodeLines[atlas.MatchRecord]("mappings", data)
}

func (s *MemoryStore) WriteMappings(ctx context.Context, records []atlas.MatchRecord) (string, error) {
	data, err := EncodeLines(records)
	if err != nil {
		return "", err
	}
	return s.put(ctx, &s.mappings, data)
}

func (s *MemoryStore) ReadPlan(ctx context.Context) (atlas.StudyPlan, error) {
	data, err := s.get(ctx, &s.plan)
	if err != nil {
		return atlas.StudyPlan{}, err
	}
	var plan atlas.StudyPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return atlas.StudyPlan{}, err
	}
	return plan, nil
}

func (s *MemoryStore) WritePlan(ctx context.Context, plan atlas.StudyPlan) (string, error) {
	data, err := json.Marshal(plan)
	if err != nil {
		return "", err
	}
	return s.put(ctx, &s.plan, data)
}

func (s *MemoryStore) get(ctx context.Context, slot *[]byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if *slot == nil {
		return nil, ErrMissing
	}
	return *slot, nil
}

func (s *MemoryStore) put(ctx context.Context, slot *[]byte, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if data == nil {
		data = []byte{}
	}
	s.mu.Lock()
	*slot = data
	s.mu.Unlock()
	return filesystem.CalculateHash(data), nil
}
