package system

import (
	"math"
	"sync/atomic"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/component"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/core"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/engine"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/event"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/reward"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/state"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/status"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/vmath"
)

// SpawnSystem releases nodes from the field edges while a level runs
// The countdown starts at zero on every level reset so the first node is immediate
type SpawnSystem struct {
	world *engine.World
	timer float64

	statSpawned *atomic.Int64
}

// NewSpawnSystem creates a new spawn system
func NewSpawnSystem(world *engine.World) engine.System {
	s := &SpawnSystem{
		world:       world,
		statSpawned: world.Resources.Status.Ints.Get(status.NodesSpawned),
	}
	s.Init()
	return s
}

// Init resets the countdown
func (s *SpawnSystem) Init() {
	s.timer = 0
}

// Name returns system's name
func (s *SpawnSystem) Name() string {
	return "spawn"
}

// Priority returns the system's priority
func (s *SpawnSystem) Priority() int {
	return parameter.PrioritySpawn
}

// EventTypes returns the event types SpawnSystem handles
func (s *SpawnSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventLevelStarted,
		event.EventGameReset,
	}
}

// HandleEvent resets the countdown on any level reset
func (s *SpawnSystem) HandleEvent(ev event.GameEvent) {
	s.Init()
}

// Update counts down and spawns when below the live node cap
func (s *SpawnSystem) Update() {
	res := s.world.Resources
	if !res.Player.CurrentLevel.Active {
		return
	}

	s.timer -= res.Time.DeltaTime
	if s.timer > 0 {
		return
	}
	if s.world.Components.Node.CountEntities() >= res.Stats.MaxNodes {
		s.timer = 0
		return
	}

	SpawnNode(s.world, reward.RollType(res.Rand))
	s.statSpawned.Add(1)
	s.timer = res.Stats.NodeSpawnDelay
}

// SpawnNode creates a node of type t on a random field edge, aimed across the field
func SpawnNode(w *engine.World, t state.NodeType) core.Entity {
	res := w.Resources
	r := res.Rand
	prof := reward.Profile(t)

	start, target := edgePath(r, res.Field, parameter.NodeSpawnMargin)
	travel := core.Between(r, parameter.NodeTravelMinFloat, parameter.NodeTravelMinFloat+parameter.NodeTravelSpreadFloat)
	travel /= math.Max(prof.SpeedMultiplier, 0.01)

	hp := reward.ScaledNodeHP(t, res.Player.CurrentLevel.Index, res.Stats)

	e := w.CreateEntity()
	w.Components.Node.SetComponent(e, component.NodeComponent{
		Type:   t,
		HP:     hp,
		MaxHP:  hp,
		Size:   parameter.NodeSize,
		Margin: parameter.NodeSpawnMargin,
	})
	w.Components.Kinetic.SetComponent(e, component.KineticComponent{
		Pos:           start,
		Vel:           target.Sub(start).Scale(1 / travel),
		Rotation:      r.Float64() * 360,
		RotationSpeed: (r.Float64() - 0.5) * parameter.NodeRotationSpeedRangeFloat,
	})

	w.PushEvent(event.EventNodeSpawned, &event.NodePayload{Entity: e, Type: t})
	return e
}

// edgePath picks a start offset outside a uniform edge and a target offset
// outside the opposite edge
func edgePath(r core.Rand, field engine.FieldResource, offset float64) (start, target vmath.Vec2) {
	w, h := field.Width, field.Height
	switch r.IntN(4) {
	case 0: // left
		start = vmath.V2(-offset, r.Float64()*h)
		target = vmath.V2(w+offset, r.Float64()*h)
	case 1: // right
		start = vmath.V2(w+offset, r.Float64()*h)
		target = vmath.V2(-offset, r.Float64()*h)
	case 2: // top
		start = vmath.V2(r.Float64()*w, -offset)
		target = vmath.V2(r.Float64()*w, h+offset)
	default: // bottom
		start = vmath.V2(r.Float64()*w, h+offset)
		target = vmath.V2(r.Float64()*w, -offset)
	}
	return start, target
}
