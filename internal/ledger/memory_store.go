package ledger

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store using in-memory storage, for development
// and tests
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*UsageRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*UsageRecord),
	}
}

func (s *MemoryStore) Get(_ context.Context, identifier string) (*UsageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.records[identifier]
	if !exists {
		return nil, nil
	}

	// copy so callers can't mutate shared state
	clone := *record
	return &clone, nil
}

func (s *MemoryStore) Put(_ context.Context, record *UsageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *record
	s.records[record.Identifier] = &clone
	return nil
}

func (s *MemoryStore) IncrementPremium(_ context.Context, identifier string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.records[identifier]
	if !exists {
		record = &UsageRecord{
			Identifier:      identifier,
			WindowStartedAt: now,
		}
		s.records[identifier] = record
	}

	record.PremiumCount++
	record.UpdatedAt = now
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
