package event

import (
	"sync"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
)

// EventQueue is a bounded FIFO ring of game events
// Systems push during a tick and the router drains it once per tick;
// when full the oldest event is overwritten and counted as dropped
type EventQueue struct {
	mu      sync.Mutex
	ring    [parameter.EventQueueSize]GameEvent
	start   int
	size    int
	dropped uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends ev, evicting the oldest pending event when full
func (q *EventQueue) Push(ev GameEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()

	end := (q.start + q.size) % len(q.ring)
	q.ring[end] = ev
	if q.size == len(q.ring) {
		q.start = (q.start + 1) % len(q.ring)
		q.dropped++
		return
	}
	q.size++
}

// Consume returns the pending events oldest first and empties the queue
// Returns nil when nothing is pending
func (q *EventQueue) Consume() []GameEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.size == 0 {
		return nil
	}
	out := make([]GameEvent, q.size)
	for i := range out {
		out[i] = q.ring[(q.start+i)%len(q.ring)]
	}
	q.start, q.size = 0, 0
	return out
}

// Len returns the number of pending events
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// Dropped returns how many events were evicted unread
func (q *EventQueue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
