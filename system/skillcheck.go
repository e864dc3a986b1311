package system

import (
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/engine"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/event"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/skillcheck"
)

// SkillCheckSystem advances the active minigame; a timeout fails it through its own callback
type SkillCheckSystem struct {
	world *engine.World
	game  *skillcheck.Minigame
}

// NewSkillCheckSystem creates a system ticking game
func NewSkillCheckSystem(world *engine.World, game *skillcheck.Minigame) engine.System {
	return &SkillCheckSystem{world: world, game: game}
}

// Init drops any running check without resolving it
func (s *SkillCheckSystem) Init() {
	s.game.Cancel()
}

// Name returns system's name
func (s *SkillCheckSystem) Name() string {
	return "skillcheck"
}

// Priority returns the system's priority
func (s *SkillCheckSystem) Priority() int {
	return parameter.PrioritySkillCheck
}

// EventTypes returns the event types SkillCheckSystem handles
func (s *SkillCheckSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventGameReset}
}

// HandleEvent cancels the check when the player is replaced
func (s *SkillCheckSystem) HandleEvent(ev event.GameEvent) {
	s.Init()
}

// Update moves the marker
func (s *SkillCheckSystem) Update() {
	s.game.Update(s.world.Resources.Time.DeltaTime)
}
