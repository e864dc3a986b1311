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
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/status"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/vmath"
)

// TokenSystem collects bit tokens within the pointer's collect radius
type TokenSystem struct {
	world *engine.World

	statCollected *atomic.Int64
}

// NewTokenSystem creates a new token system
func NewTokenSystem(world *engine.World) engine.System {
	return &TokenSystem{
		world:         world,
		statCollected: world.Resources.Status.Ints.Get(status.TokensCollected),
	}
}

func (s *TokenSystem) Init() {}

// Name returns system's name
func (s *TokenSystem) Name() string {
	return "token"
}

// Priority returns the system's priority
func (s *TokenSystem) Priority() int {
	return parameter.PriorityToken
}

func (s *TokenSystem) EventTypes() []event.EventType { return nil }

func (s *TokenSystem) HandleEvent(event.GameEvent) {}

// Update collects every token in reach; the tick's pickups are credited as one grant
func (s *TokenSystem) Update() {
	w := s.world
	res := w.Resources
	if !res.Pointer.Inside {
		return
	}

	radius := res.Stats.CollectRadius
	var g reward.Grant
	for _, e := range w.Components.Token.GetAllEntities() {
		tok, okT := w.Components.Token.GetComponent(e)
		k, okK := w.Components.Kinetic.GetComponent(e)
		if !okT || !okK {
			continue
		}
		if k.Pos.Distance(res.Pointer.Pos) > radius {
			continue
		}
		g.Bits += tok.Value * res.Stats.BitGain
		g.XP += reward.TokenXP(tok.Value)
		w.DestroyEntity(e)
		s.statCollected.Add(1)
		w.PushEvent(event.EventTokenCollected, &event.TokenPayload{Entity: e, Value: tok.Value})
	}
	Credit(w, "token", g)
}

// SpawnToken drops a token of value v scattered around origin, kept inside the field
func SpawnToken(w *engine.World, origin vmath.Vec2, v float64) core.Entity {
	res := w.Resources
	r := res.Rand
	offset := vmath.FromAngle(r.Float64()*2*math.Pi, r.Float64()*parameter.TokenScatterFloat)
	pos := origin.Add(offset)
	pos.X = vmath.Clamp(pos.X, 0, res.Field.Width)
	pos.Y = vmath.Clamp(pos.Y, 0, res.Field.Height)

	e := w.CreateEntity()
	w.Components.Token.SetComponent(e, component.TokenComponent{Value: v, TTL: parameter.TokenLifetimeFloat})
	w.Components.Kinetic.SetComponent(e, component.KineticComponent{Pos: pos})
	return e
}
