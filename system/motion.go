package system

import (
	"math"
	"sync/atomic"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/engine"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/event"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/status"
)

// MotionSystem integrates nodes and the boss, despawns nodes that drift
// off the field and expires uncollected tokens
type MotionSystem struct {
	world *engine.World

	statDespawned *atomic.Int64
}

// NewMotionSystem creates a new motion system
func NewMotionSystem(world *engine.World) engine.System {
	return &MotionSystem{
		world:         world,
		statDespawned: world.Resources.Status.Ints.Get(status.NodesDespawned),
	}
}

func (s *MotionSystem) Init() {}

// Name returns system's name
func (s *MotionSystem) Name() string {
	return "motion"
}

// Priority returns the system's priority
func (s *MotionSystem) Priority() int {
	return parameter.PriorityMotion
}

func (s *MotionSystem) EventTypes() []event.EventType { return nil }

func (s *MotionSystem) HandleEvent(event.GameEvent) {}

// Update advances every moving entity by the tick delta
func (s *MotionSystem) Update() {
	dt := s.world.Resources.Time.DeltaTime
	if dt <= 0 {
		return
	}
	s.moveNodes(dt)
	s.moveBoss(dt)
	s.ageTokens(dt)
}

func (s *MotionSystem) moveNodes(dt float64) {
	w := s.world
	field := w.Resources.Field
	for _, e := range w.Components.Node.GetAllEntities() {
		n, ok := w.Components.Node.GetComponent(e)
		if !ok {
			continue
		}
		k, ok := w.Components.Kinetic.GetComponent(e)
		if !ok {
			continue
		}
		k.Integrate(dt)
		if outOfBounds(k.Pos, field, n.Margin) {
			w.DestroyEntity(e)
			s.statDespawned.Add(1)
			w.PushEvent(event.EventNodeDespawned, &event.NodePayload{Entity: e, Type: n.Type})
			continue
		}
		w.Components.Kinetic.SetComponent(e, k)
	}
}

// moveBoss bounces the boss inside [0, field-size] on both axes
func (s *MotionSystem) moveBoss(dt float64) {
	w := s.world
	field := w.Resources.Field
	for _, e := range w.Components.Boss.GetAllEntities() {
		b, ok := w.Components.Boss.GetComponent(e)
		if !ok {
			continue
		}
		k, ok := w.Components.Kinetic.GetComponent(e)
		if !ok {
			continue
		}
		k.Integrate(dt)

		maxX := math.Max(0, field.Width-b.Size)
		maxY := math.Max(0, field.Height-b.Size)
		if k.Pos.X <= 0 {
			k.Pos.X, k.Vel.X = 0, math.Abs(k.Vel.X)
		} else if k.Pos.X >= maxX {
			k.Pos.X, k.Vel.X = maxX, -math.Abs(k.Vel.X)
		}
		if k.Pos.Y <= 0 {
			k.Pos.Y, k.Vel.Y = 0, math.Abs(k.Vel.Y)
		} else if k.Pos.Y >= maxY {
			k.Pos.Y, k.Vel.Y = maxY, -math.Abs(k.Vel.Y)
		}
		w.Components.Kinetic.SetComponent(e, k)
	}
}

func (s *MotionSystem) ageTokens(dt float64) {
	w := s.world
	for _, e := range w.Components.Token.GetAllEntities() {
		tok, ok := w.Components.Token.GetComponent(e)
		if !ok {
			continue
		}
		tok.TTL -= dt
		if tok.TTL <= 0 {
			w.DestroyEntity(e)
			continue
		}
		w.Components.Token.SetComponent(e, tok)
	}
}
