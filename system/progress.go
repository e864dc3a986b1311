package system

import (
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/engine"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/event"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/progress"
)

// ProgressSystem re-evaluates goal progress once per second of simulated time
// Claims stay explicit; this only announces what is ready
type ProgressSystem struct {
	world   *engine.World
	tracker *progress.Tracker
	elapsed float64
}

// NewProgressSystem creates a system reporting on tracker
func NewProgressSystem(world *engine.World, tracker *progress.Tracker) engine.System {
	return &ProgressSystem{world: world, tracker: tracker}
}

// Init restarts the one-second window
func (s *ProgressSystem) Init() {
	s.elapsed = 0
}

// Name returns system's name
func (s *ProgressSystem) Name() string {
	return "progress"
}

// Priority returns the system's priority
func (s *ProgressSystem) Priority() int {
	return parameter.PriorityProgress
}

// EventTypes returns the event types ProgressSystem handles
func (s *ProgressSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventGameReset}
}

func (s *ProgressSystem) HandleEvent(ev event.GameEvent) {
	s.Init()
}

// Update emits EventProgressCheck each time a full interval elapses
func (s *ProgressSystem) Update() {
	s.elapsed += s.world.Resources.Time.DeltaTime
	interval := parameter.ProgressCheckInterval.Seconds()
	if s.elapsed < interval {
		return
	}
	for s.elapsed >= interval {
		s.elapsed -= interval
	}

	p := s.world.Resources.Player
	s.world.PushEvent(event.EventProgressCheck, &event.ProgressPayload{
		Milestones:   s.tracker.Claimable(progress.KindMilestone, p),
		Achievements: s.tracker.Claimable(progress.KindAchievement, p),
	})
}
