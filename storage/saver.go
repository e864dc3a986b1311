package storage

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/core"
)

// DefaultSaveTimeout bounds one background write
const DefaultSaveTimeout = 5 * time.Second

// request is one pending write; a nil data or snapshot skips that half
type request struct {
	slot string
	data []byte
	snap *Snapshot
}

// Saver writes documents on a background goroutine
// At most one write is pending; a newer Save for the same slot replaces it.
// Save never blocks on I/O, so it is safe to call from the tick goroutine
type Saver struct {
	store   Store
	timeout time.Duration

	mu      sync.Mutex
	pending chan request
	done    chan struct{}
	exited  chan struct{}
	running bool

	written atomic.Int64
	failed  atomic.Int64
}

// NewSaver wraps store with a latest-wins write queue
func NewSaver(store Store) *Saver {
	return &Saver{
		store:   store,
		timeout: DefaultSaveTimeout,
		pending: make(chan request, 1),
	}
}

// Name returns the service name
func (s *Saver) Name() string { return "saver" }

// Start launches the writer goroutine
func (s *Saver) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	s.running = true
	s.done = make(chan struct{})
	s.exited = make(chan struct{})
	done, exited := s.done, s.exited
	core.Go(func() {
		defer close(exited)
		for {
			select {
			case <-done:
				return
			case req := <-s.pending:
				s.write(req)
			}
		}
	})
	return nil
}

// Stop halts the writer and flushes any pending write synchronously
func (s *Saver) Stop() error {
	s.mu.Lock()
	if s.running {
		close(s.done)
		s.running = false
		exited := s.exited
		s.mu.Unlock()
		<-exited
	} else {
		s.mu.Unlock()
	}

	select {
	case req := <-s.pending:
		s.write(req)
	default:
	}
	return nil
}

// Save queues data for slot and returns immediately
// The context is not retained; the write uses its own timeout
func (s *Saver) Save(_ context.Context, slot string, data []byte) error {
	s.enqueue(request{slot: slot, data: data})
	return nil
}

// AppendHistory queues a history snapshot alongside the pending write
func (s *Saver) AppendHistory(_ context.Context, slot string, snap Snapshot) error {
	s.enqueue(request{slot: slot, snap: &snap})
	return nil
}

// History reads through to the store
func (s *Saver) History(ctx context.Context, slot string) ([]Snapshot, error) {
	h, ok := s.store.(Historian)
	if !ok {
		return nil, nil
	}
	return h.History(ctx, slot)
}

// Load reads through to the store
func (s *Saver) Load(ctx context.Context, slot string) ([]byte, error) {
	return s.store.Load(ctx, slot)
}

// Written returns the number of successful writes
func (s *Saver) Written() int64 { return s.written.Load() }

// Failed returns the number of failed writes
func (s *Saver) Failed() int64 { return s.failed.Load() }

func (s *Saver) enqueue(req request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Producers hold mu, so after taking the old request the buffer is free
	select {
	case old := <-s.pending:
		if old.slot == req.slot {
			req = merge(old, req)
		} else {
			log.Printf("[saver] dropped pending write for %q", old.slot)
		}
	default:
	}
	s.pending <- req
}

// merge overlays newer onto older for the same slot
func merge(older, newer request) request {
	if newer.data == nil {
		newer.data = older.data
	}
	if newer.snap == nil {
		newer.snap = older.snap
	}
	return newer
}

func (s *Saver) write(req request) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if req.data != nil {
		if err := s.store.Save(ctx, req.slot, req.data); err != nil {
			s.failed.Add(1)
			log.Printf("[saver] save %q failed: %v", req.slot, err)
			return
		}
		s.written.Add(1)
	}
	if req.snap != nil {
		if h, ok := s.store.(Historian); ok {
			if err := h.AppendHistory(ctx, req.slot, *req.snap); err != nil {
				log.Printf("[saver] history %q failed: %v", req.slot, err)
			}
		}
	}
}
