package engine

import (
	"sync"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/core"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/event"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/state"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/stats"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/status"
)

// World contains all entities and their components using typed stores
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity

	Components ComponentStore
	Resources  *Resources

	allStores  []AnyStore
	eventQueue *event.EventQueue

	systems []System
}

// NewWorld creates a world with empty stores
// Missing resources get defaults: a fresh player, base stats, seed 1 and a new registry
func NewWorld(queue *event.EventQueue, res *Resources) *World {
	if res == nil {
		res = &Resources{}
	}
	if res.Field.Width <= 0 || res.Field.Height <= 0 {
		res.Field = FieldResource{Width: parameter.DefaultFieldWidth, Height: parameter.DefaultFieldHeight}
	}
	if res.Player == nil {
		p := state.NewPlayer()
		res.Player = &p
	}
	if res.Stats == nil {
		s := stats.Base()
		s.Finalize()
		res.Stats = &s
	}
	if res.Rand == nil {
		res.Rand = core.NewRand(1)
	}
	if res.Status == nil {
		res.Status = status.NewRegistry()
	}
	w := &World{
		nextEntityID: 1,
		Resources:    res,
		eventQueue:   queue,
		systems:      make([]System, 0),
	}
	initComponentStores(w)
	return w
}

// CreateEntity reserves a new entity ID
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	return id
}

// DestroyEntity removes all components associated with an entity
func (w *World) DestroyEntity(e core.Entity) {
	w.removeFromAllStores(e)
}

// Clear removes all entities and components
// Ids keep counting so stale handles never alias a new entity
func (w *World) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clearAllStores()
}

// AddSystem adds a system to the world and sorts by priority
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.systems = append(w.systems, system)

	// Sort by priority (bubble sort, small N)
	for i := 0; i < len(w.systems)-1; i++ {
		for j := 0; j < len(w.systems)-i-1; j++ {
			if w.systems[j].Priority() > w.systems[j+1].Priority() {
				w.systems[j], w.systems[j+1] = w.systems[j+1], w.systems[j]
			}
		}
	}
}

// Systems returns a copy of all registered systems in priority order
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// Update runs all systems sequentially
func (w *World) Update() {
	for _, system := range w.Systems() {
		system.Update()
	}
}

// PushEvent emits a game event stamped with the current frame
func (w *World) PushEvent(eventType event.EventType, payload any) {
	if w.eventQueue == nil {
		return
	}
	w.eventQueue.Push(event.GameEvent{
		Type:    eventType,
		Payload: payload,
		Frame:   w.Resources.Time.FrameNumber,
	})
}
