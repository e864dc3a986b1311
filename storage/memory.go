package storage

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps documents in process; used by tests and the server's ephemeral mode
type MemoryStore struct {
	mu    sync.RWMutex
	slots   map[string]memorySlot
	history map[string][]Snapshot
	now     func() time.Time
}

type memorySlot struct {
	data    []byte
	savedAt time.Time
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]memorySlot), now: time.Now}
}

func (m *MemoryStore) Save(ctx context.Context, slot string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = memorySlot{data: slices.Clone(data), savedAt: m.now()}
	return nil
}

func (m *MemoryStore) Load(ctx context.Context, slot string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.slots[slot]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, slot)
	}
	return slices.Clone(s.data), nil
}

// List returns slots sorted by name
func (m *MemoryStore) List(ctx context.Context) ([]Slot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Slot, 0, len(m.slots))
	for name, s := range m.slots {
		out = append(out, Slot{Name: name, Size: len(s.data), SavedAt: s.savedAt})
	}
	slices.SortFunc(out, func(a, b Slot) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }

// AppendHistory keeps the newest HistoryLimit snapshots per slot
func (m *MemoryStore) AppendHistory(ctx context.Context, slot string, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.history == nil {
		m.history = make(map[string][]Snapshot)
	}
	h := append([]Snapshot{snap}, m.history[slot]...)
	if len(h) > HistoryLimit {
		h = h[:HistoryLimit]
	}
	m.history[slot] = h
	return nil
}

// History returns the slot's snapshots, newest first
func (m *MemoryStore) History(ctx context.Context, slot string) ([]Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.history[slot]), nil
}
