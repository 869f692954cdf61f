package store

import (
	"context"
	"sync"

	"github.com/BoredWeaver/TrialRPG-sub000/internal/progress"
)

// MemoryStore keeps records in process memory. It backs tests and
// ephemeral runs that never touch disk.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]*progress.Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]*progress.Record)}
}

// Load returns a copy of the record in the slot, if any.
func (m *MemoryStore) Load(_ context.Context, slot string) (*progress.Record, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.slots[slot]
	if !ok {
		return nil, false, nil
	}
	return rec.Clone(), true, nil
}

// Save stores a copy of the record under the slot, overwriting.
func (m *MemoryStore) Save(_ context.Context, slot string, rec *progress.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = rec.Clone()
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
