package submission

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps submissions in a map.
type MemoryStore struct {
	mu          sync.RWMutex
	submissions map[string]Submission
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{submissions: map[string]Submission{}}
}

func (m *MemoryStore) Save(_ context.Context, s Submission) error {
	if s.ID == "" {
		return fmt.Errorf("submission: id is required")
	}
	s.Values = s.Values.Clone()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions[s.ID] = s
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.submissions[id]
	if !ok {
		return nil, fmt.Errorf("submission %s: %w", id, ErrNotFound)
	}
	s.Values = s.Values.Clone()
	return &s, nil
}
