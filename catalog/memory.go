package catalog

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory catalog used by tests and development mode.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	ids     []string // sorted
}

// NewMemoryStore creates a memory store preloaded with the given records.
func NewMemoryStore(records ...Record) *MemoryStore {
	s := &MemoryStore{records: make(map[string]Record)}
	for _, r := range records {
		s.records[r.ID] = r
		s.ids = append(s.ids, r.ID)
	}
	sort.Strings(s.ids)
	return s
}

// Put adds or replaces a record.
func (s *MemoryStore) Put(r Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[r.ID]; !exists {
		i := sort.SearchStrings(s.ids, r.ID)
		s.ids = append(s.ids, "")
		copy(s.ids[i+1:], s.ids[i:])
		s.ids[i] = r.ID
	}
	s.records[r.ID] = r
}

// GetByID implements Store.
func (s *MemoryStore) GetByID(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

// ScanPage implements Store.
func (s *MemoryStore) ScanPage(_ context.Context, afterID string, limit int) ([]Record, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := 0
	if afterID != "" {
		start = sort.SearchStrings(s.ids, afterID)
		if start < len(s.ids) && s.ids[start] == afterID {
			start++
		}
	}

	end := start + limit
	if end > len(s.ids) {
		end = len(s.ids)
	}

	records := make([]Record, 0, end-start)
	for _, id := range s.ids[start:end] {
		records = append(records, s.records[id])
	}

	nextID := ""
	if end < len(s.ids) && len(records) > 0 {
		nextID = records[len(records)-1].ID
	}
	return records, nextID, nil
}

// Verify MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
