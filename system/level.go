package system

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/component"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/core"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/engine"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/engine/fsm"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/event"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/reward"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/state"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/status"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/vmath"
)

// Level phases
const (
	StateSpawning fsm.StateID = iota + 2
	StateBossActive
	StateLevelComplete
)

// LevelSystem drives the Spawning → BossActive → LevelComplete cycle
// The player's CurrentLevel record is authoritative; every enter action is
// idempotent against it so a saved phase can be restored by forcing the state
type LevelSystem struct {
	world   *engine.World
	machine *fsm.Machine[*LevelSystem]

	statBossSpawns *atomic.Int64
	statBossKills  *atomic.Int64
	stateName      *status.AtomicString
	bossName       *status.AtomicString
}

// NewLevelSystem creates the level system and enters the phase the player record describes
func NewLevelSystem(world *engine.World) *LevelSystem {
	s := &LevelSystem{
		world:          world,
		statBossSpawns: world.Resources.Status.Ints.Get(status.BossSpawns),
		statBossKills:  world.Resources.Status.Ints.Get(status.BossKills),
		stateName:      world.Resources.Status.Strings.Get(status.LevelState),
		bossName:       world.Resources.Status.Strings.Get(status.BossName),
	}
	s.machine = s.buildMachine()
	s.Init()
	return s
}

func (s *LevelSystem) buildMachine() *fsm.Machine[*LevelSystem] {
	m := fsm.NewMachine[*LevelSystem]()
	m.AddState(fsm.StateRoot, "Level", fsm.StateNone)
	m.AddState(StateSpawning, "Spawning", fsm.StateRoot)
	m.AddState(StateBossActive, "BossActive", fsm.StateRoot)
	m.AddState(StateLevelComplete, "LevelComplete", fsm.StateRoot)

	m.OnEnter(StateSpawning, (*LevelSystem).enterSpawning, nil)
	m.OnUpdate(StateSpawning, (*LevelSystem).countdown, nil)
	m.OnEnter(StateBossActive, (*LevelSystem).enterBoss, nil)
	m.OnExit(StateBossActive, (*LevelSystem).exitBoss, nil)
	m.OnEnter(StateLevelComplete, (*LevelSystem).enterComplete, nil)

	m.AddTransition(StateSpawning, fsm.Transition[*LevelSystem]{
		TargetID: StateBossActive,
		Guard:    func(s *LevelSystem) bool { return s.level().Timer <= 0 },
	})
	m.AddTransition(StateBossActive, fsm.Transition[*LevelSystem]{
		TargetID: StateLevelComplete,
		Guard:    func(s *LevelSystem) bool { return s.level().BossHP <= 0 },
	})
	// Continue, Replay and JumpToLevel restart from any phase
	m.AddTransition(fsm.StateRoot, fsm.Transition[*LevelSystem]{
		TargetID: StateSpawning,
		Event:    event.EventLevelStart,
	})

	if err := m.CompilePaths(); err != nil {
		panic(err)
	}
	return m
}

func (s *LevelSystem) level() *state.CurrentLevel {
	return &s.world.Resources.Player.CurrentLevel
}

// Init enters the phase described by the player record
func (s *LevelSystem) Init() {
	s.Restore()
}

// Name returns system's name
func (s *LevelSystem) Name() string {
	return "level"
}

// Priority returns the system's priority, after combat so a killing blow completes the level in the same tick
func (s *LevelSystem) Priority() int {
	return parameter.PriorityLevel
}

// EventTypes returns the event types LevelSystem handles
func (s *LevelSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventGameReset}
}

// HandleEvent re-derives the phase after a new game or a load
func (s *LevelSystem) HandleEvent(ev event.GameEvent) {
	s.Init()
}

// Update advances the phase machine
func (s *LevelSystem) Update() {
	dt := s.world.Resources.Time.DeltaTime
	s.machine.Update(s, time.Duration(dt*float64(time.Second)))
	s.stateName.Store(s.machine.StateName())
}

// Phase returns the active phase
func (s *LevelSystem) Phase() fsm.StateID {
	return s.machine.Current()
}

// PhaseName returns the active phase name
func (s *LevelSystem) PhaseName() string {
	return s.machine.StateName()
}

// Restore forces the machine into the phase the player record describes
func (s *LevelSystem) Restore() {
	cl := s.level()
	target := StateSpawning
	switch {
	case !cl.Active:
		target = StateLevelComplete
	case cl.BossActive:
		target = StateBossActive
	}
	_ = s.machine.ForceState(s, target)
	s.stateName.Store(s.machine.StateName())
}

// Restart resets the run at the current index and enters Spawning
// All entities are cleared and the countdown is set from the index
func (s *LevelSystem) Restart() {
	cl := s.level()
	s.world.Clear()
	cl.Index = max(1, cl.Index)
	cl.Active = true
	cl.BossActive = false
	cl.BossHP = 0
	cl.BossMaxHP = 0
	cl.BossDamageDealt = 0
	cl.Timer = state.LevelDuration(cl.Index)
	s.machine.HandleEvent(s, event.EventLevelStart)
	s.stateName.Store(s.machine.StateName())
}

func (s *LevelSystem) enterSpawning(_ any) {
	cl := s.level()
	if cl.Timer <= 0 || cl.Timer > state.LevelDuration(cl.Index) {
		cl.Timer = state.LevelDuration(cl.Index)
	}
	s.world.PushEvent(event.EventLevelStarted, &event.LevelPayload{Index: cl.Index})
}

func (s *LevelSystem) countdown(_ any) {
	cl := s.level()
	cl.Timer = math.Max(0, cl.Timer-s.world.Resources.Time.DeltaTime)
}

// enterBoss arms the boss record unless a restored fight already holds one
func (s *LevelSystem) enterBoss(_ any) {
	cl := s.level()
	res := s.world.Resources
	if !cl.BossActive || cl.BossMaxHP <= 0 {
		hp := math.Ceil(state.BossBaseHP(cl.Index) * res.Stats.BossHPFactor)
		cl.BossActive = true
		cl.BossHP = hp
		cl.BossMaxHP = hp
		cl.BossDamageDealt = 0
	}
	cl.Timer = 0

	e := s.spawnBoss(cl.Index)
	name := BossName(cl.Index)
	s.bossName.Store(name)
	s.statBossSpawns.Add(1)
	s.world.PushEvent(event.EventBossSpawned, &event.BossPayload{Entity: e, Name: name, Index: cl.Index, HP: cl.BossHP})
}

func (s *LevelSystem) exitBoss(_ any) {
	for _, e := range s.world.Components.Boss.GetAllEntities() {
		s.world.DestroyEntity(e)
	}
}

// enterComplete pays out a boss that just died; a restored completed level pays nothing
func (s *LevelSystem) enterComplete(_ any) {
	w := s.world
	cl := s.level()
	wasFighting := cl.Active && cl.BossActive

	w.Clear()
	cl.Active = false
	cl.BossActive = false
	cl.BossHP = 0
	cl.Timer = 0
	if !wasFighting {
		return
	}

	p := w.Resources.Player
	p.BossKills++
	s.statBossKills.Add(1)
	g := reward.BossReward(cl.Index, w.Resources.Stats)
	Credit(w, "boss", g)
	w.PushEvent(event.EventBossDefeated, &event.BossDefeatedPayload{Name: BossName(cl.Index), Index: cl.Index, Reward: g})
}

// spawnBoss creates the boss entity centered in the field with a random heading
func (s *LevelSystem) spawnBoss(index int) core.Entity {
	w := s.world
	res := w.Resources
	r := res.Rand

	for _, e := range w.Components.Boss.GetAllEntities() {
		w.DestroyEntity(e)
	}

	size := float64(parameter.BossSize)
	speed := core.Between(r, parameter.BossSpeedMinFloat, parameter.BossSpeedMinFloat+parameter.BossSpeedSpreadFloat)
	pos := vmath.V2(
		math.Max(0, (res.Field.Width-size)/2),
		math.Max(0, (res.Field.Height-size)/2),
	)

	e := w.CreateEntity()
	w.Components.Boss.SetComponent(e, component.BossComponent{Name: BossName(index), Index: index, Size: size})
	w.Components.Kinetic.SetComponent(e, component.KineticComponent{
		Pos:           pos,
		Vel:           vmath.FromAngle(r.Float64()*2*math.Pi, speed),
		Rotation:      r.Float64() * 360,
		RotationSpeed: (r.Float64() - 0.5) * parameter.BossRotationSpeedRangeFloat,
	})
	return e
}

// BossName cycles the boss roster by level index
func BossName(index int) string {
	n := len(parameter.BossNames)
	return parameter.BossNames[((index%n)+n)%n]
}
