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
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/stats"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/status"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/vmath"
)

// CombatSystem runs the auto-click accumulator and resolves every click
// against all intersecting nodes and the boss
type CombatSystem struct {
	world     *engine.World
	autoTimer float64

	statClicks *atomic.Int64
	statCrits  *atomic.Int64
	statKilled *atomic.Int64
}

// NewCombatSystem creates a new combat system
func NewCombatSystem(world *engine.World) engine.System {
	s := &CombatSystem{
		world:      world,
		statClicks: world.Resources.Status.Ints.Get(status.Clicks),
		statCrits:  world.Resources.Status.Ints.Get(status.Crits),
		statKilled: world.Resources.Status.Ints.Get(status.NodesKilled),
	}
	s.Init()
	return s
}

// Init clears the click accumulator
func (s *CombatSystem) Init() {
	s.autoTimer = 0
}

// Name returns system's name
func (s *CombatSystem) Name() string {
	return "combat"
}

// Priority returns the system's priority
func (s *CombatSystem) Priority() int {
	return parameter.PriorityCombat
}

// EventTypes returns the event types CombatSystem handles
func (s *CombatSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventLevelStarted,
		event.EventGameReset,
	}
}

// HandleEvent resets the accumulator on level resets
func (s *CombatSystem) HandleEvent(ev event.GameEvent) {
	s.Init()
}

// Update fires one click per elapsed auto interval
func (s *CombatSystem) Update() {
	res := s.world.Resources
	if !res.Player.CurrentLevel.Active {
		return
	}
	interval := math.Max(parameter.MinAutoIntervalFloat, res.Stats.AutoInterval)
	s.autoTimer += res.Time.DeltaTime
	for s.autoTimer >= interval {
		s.autoTimer -= interval
		s.Click()
	}
}

// Click strikes every node intersecting the pointer and the boss if the
// pointer overlaps it. Returns the number of entities hit
func (s *CombatSystem) Click() int {
	w := s.world
	res := w.Resources
	if !res.Pointer.Inside {
		return 0
	}
	s.statClicks.Add(1)

	ptr := PointerRect(res)
	ptrPoly := ptr.Polygon()
	live := w.Components.Node.CountEntities()
	hits := 0

	for _, e := range w.Components.Node.GetAllEntities() {
		n, ok := w.Components.Node.GetComponent(e)
		if !ok {
			continue
		}
		k, ok := w.Components.Kinetic.GetComponent(e)
		if !ok {
			continue
		}
		if !vmath.PolygonsIntersect(ptrPoly, NodePolygon(k, n)) {
			continue
		}

		dmg, crit := Strike(res.Stats, live, res.Rand)
		if crit {
			s.statCrits.Add(1)
		}
		n.HP -= dmg
		hits++

		if n.HP <= 0 {
			KillNode(w, e, n, k)
			s.statKilled.Add(1)
			continue
		}
		w.Components.Node.SetComponent(e, n)
		w.PushEvent(event.EventNodeHit, &event.HitPayload{Entity: e, Damage: dmg, Crit: crit})
	}

	if res.Player.CurrentLevel.BossActive {
		for _, e := range w.Components.Boss.GetAllEntities() {
			b, okB := w.Components.Boss.GetComponent(e)
			k, okK := w.Components.Kinetic.GetComponent(e)
			if !okB || !okK || !ptr.Intersects(BossRect(k, b)) {
				continue
			}
			if DamageBoss(w, BossCursorDamage(res.Stats), false) {
				hits++
			}
		}
	}
	return hits
}

// Strike rolls the damage of one hit: base damage plus the crowd bonus,
// multiplied on a crit, never below 1
func Strike(s *stats.Snapshot, liveNodes int, r core.Rand) (float64, bool) {
	dmg := s.Damage + float64(liveNodes)*s.NodeCountDamageBonus*s.Damage
	crit := r.Float64() < s.CritChance
	if crit {
		dmg *= s.CritMultiplier
	}
	return math.Max(1, dmg), crit
}

// BossCursorDamage is the flat pointer damage against the boss
// Upgrades and automation do not apply
func BossCursorDamage(s *stats.Snapshot) float64 {
	return math.Max(1, s.BaseDamage)
}

// KillNode pays out a destroyed node, harvests it into an active boss,
// drops its bit tokens and removes it from the arena
func KillNode(w *engine.World, e core.Entity, n component.NodeComponent, k component.KineticComponent) {
	res := w.Resources
	p := res.Player
	index := p.CurrentLevel.Index

	g := reward.NodeReward(n.Type, index, res.Stats, res.Rand)
	if p.NodesDestroyed == nil {
		p.NodesDestroyed = make(map[state.NodeType]int)
	}
	p.NodesDestroyed[n.Type]++

	harvest := 0.0
	if p.CurrentLevel.BossActive {
		harvest = reward.HarvestDamage(n.Type, res.Stats.BossKillDamageRamp, p.BossKills, res.Rand)
		DamageBoss(w, harvest, true)
	}

	values := reward.TokenValues(n.Type, index, p.Settings.ReducedAnimation, res.Rand)
	for _, v := range values {
		SpawnToken(w, k.Pos, v)
	}

	w.DestroyEntity(e)
	Credit(w, "node", g)
	w.PushEvent(event.EventNodeKilled, &event.NodeKilledPayload{
		Entity:  e,
		Type:    n.Type,
		Reward:  g,
		Tokens:  len(values),
		Harvest: harvest,
	})
}

// DamageBoss lowers the boss hp record; it never goes below zero
// Returns false when no boss is alive to take damage
func DamageBoss(w *engine.World, dmg float64, harvest bool) bool {
	cl := &w.Resources.Player.CurrentLevel
	if !cl.BossActive || cl.BossHP <= 0 || !(dmg > 0) {
		return false
	}
	cl.BossHP = math.Max(0, cl.BossHP-dmg)
	cl.BossDamageDealt += dmg
	w.PushEvent(event.EventBossDamaged, &event.BossDamagePayload{Damage: dmg, Harvest: harvest, HP: cl.BossHP})
	return true
}
