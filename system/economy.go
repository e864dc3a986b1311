package system

import (
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/economy"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/engine"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/event"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
)

// EconomySystem ticks the crypto mine and the lab
// Both run in every level phase, including the completion dialog
type EconomySystem struct {
	world *engine.World
}

// NewEconomySystem creates a new economy system
func NewEconomySystem(world *engine.World) engine.System {
	return &EconomySystem{world: world}
}

func (s *EconomySystem) Init() {}

// Name returns system's name
func (s *EconomySystem) Name() string {
	return "economy"
}

// Priority returns the system's priority
func (s *EconomySystem) Priority() int {
	return parameter.PriorityEconomy
}

func (s *EconomySystem) EventTypes() []event.EventType { return nil }

func (s *EconomySystem) HandleEvent(event.GameEvent) {}

// Update accrues cryptcoins and lab progress
func (s *EconomySystem) Update() {
	res := s.world.Resources
	dt := res.Time.DeltaTime
	economy.TickCrypto(res.Player, dt)
	economy.TickLab(res.Player, dt)
}
