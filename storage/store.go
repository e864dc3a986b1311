// Package storage persists encoded player documents by slot.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Load for a slot that was never saved
var ErrNotFound = errors.New("save slot not found")

// Slot describes one stored document
type Slot struct {
	Name    string    `json:"name"`
	Size    int       `json:"size"`
	SavedAt time.Time `json:"savedAt"`
}

// Store is a slot-keyed document store
type Store interface {
	Save(ctx context.Context, slot string, data []byte) error
	Load(ctx context.Context, slot string) ([]byte, error)
	List(ctx context.Context) ([]Slot, error)
	Close() error
}

// Historian keeps a short progress history per slot
type Historian interface {
	AppendHistory(ctx context.Context, slot string, snap Snapshot) error
	History(ctx context.Context, slot string) ([]Snapshot, error)
}
