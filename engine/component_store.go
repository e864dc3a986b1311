package engine

import (
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/component"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/core"
)

// ComponentStore holds one typed store per component
// Entities are arena slots: an id is never reused within a world lifetime
type ComponentStore struct {
	Node    *Store[component.NodeComponent]
	Boss    *Store[component.BossComponent]
	Kinetic *Store[component.KineticComponent]
	Token   *Store[component.TokenComponent]
}

// initComponentStores creates every store and registers it for lifecycle ops
func initComponentStores(w *World) {
	w.Components = ComponentStore{
		Node:    NewStore[component.NodeComponent](),
		Boss:    NewStore[component.BossComponent](),
		Kinetic: NewStore[component.KineticComponent](),
		Token:   NewStore[component.TokenComponent](),
	}
	w.allStores = []AnyStore{
		w.Components.Node,
		w.Components.Boss,
		w.Components.Kinetic,
		w.Components.Token,
	}
}

// removeFromAllStores deletes an entity from every registered store
func (w *World) removeFromAllStores(e core.Entity) {
	for _, s := range w.allStores {
		s.RemoveEntity(e)
	}
}

// clearAllStores empties every registered store
func (w *World) clearAllStores() {
	for _, s := range w.allStores {
		s.ClearAllComponents()
	}
}
