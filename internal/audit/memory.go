package audit

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemorySink is an in-process Sink used by tests and dry runs.
type MemorySink struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemorySink() *MemorySink {
	return &MemorySink{records: make(map[string]Record)}
}

func (s *MemorySink) Write(_ context.Context, record Record) error {
	if strings.TrimSpace(record.ApplicationID) == "" {
		return fmt.Errorf("record application id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := s.records[record.ApplicationID]; ok {
		record.CreatedAt = existing.CreatedAt
	} else {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	s.records[record.ApplicationID] = record
	return nil
}

func (s *MemorySink) Get(_ context.Context, applicationID string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[applicationID]
	if !ok {
		return nil, ErrNotFound
	}
	return &record, nil
}

func (s *MemorySink) List(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]Record, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].ApplicationID < records[j].ApplicationID
	})

	return records, nil
}
