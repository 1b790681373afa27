package tm

import (
	"context"
	"sync"
)

// MemStore is an in-process Store used when no database is configured or
// the configured one is unreachable. Contents do not survive the process.
type MemStore struct {
	mu   sync.RWMutex
	recs map[string]Record
}

func NewMemStore() *MemStore {
	return &MemStore{recs: make(map[string]Record)}
}

func (s *MemStore) Get(ctx context.Context, key string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recs[key]
	return rec, ok, nil
}

func (s *MemStore) Put(ctx context.Context, key string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[key] = rec
	return nil
}

func (s *MemStore) RemoveAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = make(map[string]Record)
	return nil
}

func (s *MemStore) List(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]Record, 0, len(s.recs))
	for _, r := range s.recs {
		recs = append(recs, r)
	}
	return recs, nil
}
