// Package game owns one running simulation: the player aggregate, its
// resolved stats, the entity arena and the systems that drive it.
package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/core"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/economy"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/engine"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/event"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/progress"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/render"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/reward"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/skillcheck"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/state"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/stats"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/status"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/storage"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/system"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/upgrade"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/vmath"
)

var (
	// ErrLevelInProgress is returned by Continue and Replay before the boss falls
	ErrLevelInProgress = errors.New("level in progress")
	// ErrNoStore is returned by Save when the session has nowhere to persist
	ErrNoStore = errors.New("no store configured")
)

// Persister stores encoded player documents by slot
type Persister interface {
	Save(ctx context.Context, slot string, data []byte) error
}

// RenderFunc is notified after purchases, rewards, level transitions and progress checks
type RenderFunc func(ev event.GameEvent)

// renderEvents are the events forwarded to the render hook
var renderEvents = []event.EventType{
	event.EventUpgradePurchased,
	event.EventUpgradeReverted,
	event.EventRewardGranted,
	event.EventLevelUp,
	event.EventLevelStarted,
	event.EventBossSpawned,
	event.EventBossDefeated,
	event.EventProgressCheck,
	event.EventSkillCheckStarted,
	event.EventSkillCheckResolved,
	event.EventLabBreach,
	event.EventGameReset,
}

// Config wires a session; zero values select defaults
type Config struct {
	ID          string
	Seed        uint64
	FieldWidth  float64
	FieldHeight float64
	Slot        string
	Store       Persister
	Registry    *status.Registry
	Render      RenderFunc
	// Rand overrides the seeded source
	Rand core.Rand
}

// Session is a single game: one player, one arena, one clock
// It is not safe for concurrent use; one goroutine owns it
type Session struct {
	id   string
	slot string

	player  *state.Player
	stats   *stats.Snapshot
	catalog *upgrade.Catalog
	tracker *progress.Tracker

	queue  *event.EventQueue
	router *engine.EventRouter
	world  *engine.World
	level  *system.LevelSystem
	skill  *skillcheck.Minigame
	store  Persister

	statTicks      *atomic.Int64
	statPanics     *atomic.Int64
	statPurchases  *atomic.Int64
	statChecks     *atomic.Int64
	statCheckWins  *atomic.Int64
	statSaves      *atomic.Int64
	statSaveErrors *atomic.Int64
	statSimulated  *status.AtomicFloat
	statDropped    *atomic.Int64
	lastDropped    uint64
}

// New creates a session on a fresh player
func New(cfg Config) *Session {
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	if cfg.Slot == "" {
		cfg.Slot = parameter.SaveKey
	}
	if cfg.Registry == nil {
		cfg.Registry = status.NewRegistry()
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if cfg.Rand == nil {
		cfg.Rand = core.NewRand(cfg.Seed)
	}

	p := state.NewPlayer()
	s := &Session{
		id:      cfg.ID,
		slot:    cfg.Slot,
		player:  &p,
		catalog: upgrade.Generate(),
		tracker: progress.NewDefaultTracker(),
		queue:   event.NewEventQueue(),
		skill:   &skillcheck.Minigame{},
		store:   cfg.Store,
	}
	snap := s.catalog.Resolve(s.player)
	s.stats = &snap

	s.world = engine.NewWorld(s.queue, &engine.Resources{
		Field:  engine.FieldResource{Width: cfg.FieldWidth, Height: cfg.FieldHeight},
		Player: s.player,
		Stats:  s.stats,
		Rand:   cfg.Rand,
		Status: cfg.Registry,
	})
	s.router = engine.NewEventRouter(s.queue)

	reg := cfg.Registry
	s.statTicks = reg.Ints.Get(status.Ticks)
	s.statPanics = reg.Ints.Get(status.TickPanics)
	s.statPurchases = reg.Ints.Get(status.Purchases)
	s.statChecks = reg.Ints.Get(status.SkillChecks)
	s.statCheckWins = reg.Ints.Get(status.SkillCheckWins)
	s.statSaves = reg.Ints.Get(status.Saves)
	s.statSaveErrors = reg.Ints.Get(status.SaveErrors)
	s.statSimulated = reg.Floats.Get(status.SimulatedSeconds)
	s.statDropped = reg.Ints.Get(status.EventsDropped)
	reg.Ints.Get(status.Sessions).Add(1)

	s.level = system.NewLevelSystem(s.world)
	systems := []engine.System{
		system.NewSpawnSystem(s.world),
		system.NewMotionSystem(s.world),
		system.NewCombatSystem(s.world),
		system.NewTokenSystem(s.world),
		s.level,
		system.NewEconomySystem(s.world),
		system.NewSkillCheckSystem(s.world, s.skill),
		system.NewProgressSystem(s.world, s.tracker),
	}
	for _, sys := range systems {
		s.world.AddSystem(sys)
		s.router.Register(sys)
	}

	if cfg.Render != nil {
		s.Subscribe(renderEvents, cfg.Render)
	}
	return s
}

// ID returns the session identifier
func (s *Session) ID() string { return s.id }

// Slot returns the storage slot the session saves to
func (s *Session) Slot() string { return s.slot }

// Catalog returns the upgrade catalog
func (s *Session) Catalog() *upgrade.Catalog { return s.catalog }

// Tracker returns the milestone and achievement tracker
func (s *Session) Tracker() *progress.Tracker { return s.tracker }

// Stats returns a copy of the resolved stats
func (s *Session) Stats() stats.Snapshot { return *s.stats }

// Status returns the metrics registry
func (s *Session) Status() *status.Registry { return s.world.Resources.Status }

// Phase returns the level phase name
func (s *Session) Phase() string { return s.level.PhaseName() }

// Subscribe routes events of the given types to fn after each dispatch
func (s *Session) Subscribe(types []event.EventType, fn func(ev event.GameEvent)) {
	s.router.Register(engine.HandlerFunc{Types: types, Fn: fn})
}

// Tick advances the simulation by dt seconds
// Non-positive or non-finite deltas are ignored and large ones are capped.
// A panic inside the tick is recovered, logged and returned as an error
func (s *Session) Tick(dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil
	}
	dt = math.Min(dt, parameter.MaxTickDelta.Seconds())

	err := core.Recover("tick", func() {
		t := &s.world.Resources.Time
		t.DeltaTime = dt
		t.Elapsed += dt
		t.FrameNumber++
		s.player.Playtime += dt

		s.router.DispatchAll()
		s.world.Update()
		s.router.DispatchAll()
	})
	s.statTicks.Add(1)
	s.statSimulated.Add(dt)
	if d := s.queue.Dropped(); d > s.lastDropped {
		s.statDropped.Add(int64(d - s.lastDropped))
		s.lastDropped = d
	}
	if err != nil {
		s.statPanics.Add(1)
		log.Printf("[session %s] frame %d: %v", s.id, s.world.Resources.Time.FrameNumber, err)
	}
	return err
}

// SetPointer moves the pointer in field coordinates
func (s *Session) SetPointer(x, y float64, inside bool) {
	pos := vmath.V2(x, y)
	if !pos.Finite() {
		inside = false
		pos = vmath.Vec2{}
	}
	s.world.Resources.Pointer = engine.PointerResource{Pos: pos, Inside: inside}
}

// AttemptPurchase buys one level of an upgrade and may start a skill check
// A failed purchase changes nothing
func (s *Session) AttemptPurchase(id string) error {
	rcpt, err := s.catalog.Purchase(id, s.player)
	if err != nil {
		return fmt.Errorf("purchase %s: %w", id, err)
	}
	s.resolve()
	s.statPurchases.Add(1)
	s.world.PushEvent(event.EventUpgradePurchased, &event.UpgradePayload{ID: id, Level: rcpt.Level, Cost: rcpt.Cost})
	s.maybeSkillCheck(rcpt)
	s.router.DispatchAll()
	return nil
}

// maybeSkillCheck rolls the trigger chance for a purchase
// Anomaly purchases are reverted when their check fails
func (s *Session) maybeSkillCheck(rcpt upgrade.Receipt) {
	if s.skill.Active() {
		return
	}
	res := s.world.Resources
	cat := rcpt.Upgrade.Category
	if res.Rand.Float64() >= skillcheck.Chance(cat) {
		return
	}

	d := skillcheck.DifficultyFor(cat)
	label := rcpt.Upgrade.Name
	onSuccess := func() {
		s.statCheckWins.Add(1)
		system.Credit(s.world, "skillcheck", skillcheck.RewardFor(d, rcpt.Cost))
		s.world.PushEvent(event.EventSkillCheckResolved, &event.SkillCheckPayload{Label: label, Difficulty: d.Name, Success: true})
	}
	onFailure := func() {
		if cat == upgrade.CategoryAnomaly {
			s.catalog.Revert(rcpt, s.player)
			s.resolve()
			s.world.PushEvent(event.EventUpgradeReverted, &event.UpgradePayload{
				ID:    rcpt.Upgrade.ID,
				Level: s.player.Upgrades[rcpt.Upgrade.ID],
				Cost:  rcpt.Cost,
			})
		}
		s.world.PushEvent(event.EventSkillCheckResolved, &event.SkillCheckPayload{Label: label, Difficulty: d.Name})
	}

	if s.skill.Start(label, d, s.player.Level, res.Rand, onSuccess, onFailure) {
		s.statChecks.Add(1)
		s.world.PushEvent(event.EventSkillCheckStarted, &event.SkillCheckPayload{Label: label, Difficulty: d.Name})
	}
}

// ResolveSkillCheck is the player's action on the running check
func (s *Session) ResolveSkillCheck() skillcheck.Result {
	r := s.skill.Resolve()
	s.router.DispatchAll()
	return r
}

// SkillCheck returns the running check's view
func (s *Session) SkillCheck() skillcheck.View {
	return s.skill.View()
}

// PurchaseAutomation buys a node of the automation tree
func (s *Session) PurchaseAutomation(id string) error {
	if err := s.catalog.PurchaseAutomation(id, s.player); err != nil {
		return fmt.Errorf("automation %s: %w", id, err)
	}
	s.resolve()
	s.world.PushEvent(event.EventUpgradePurchased, &event.UpgradePayload{ID: id, Level: 1})
	s.router.DispatchAll()
	return nil
}

// Unlock buys access to a gated feature
func (s *Session) Unlock(f upgrade.Feature) error {
	if err := upgrade.Unlock(f, s.player); err != nil {
		return fmt.Errorf("unlock %s: %w", f, err)
	}
	s.resolve()
	return nil
}

// Continue advances to the next level after a boss defeat
func (s *Session) Continue() error {
	cl := &s.player.CurrentLevel
	if cl.Active {
		return ErrLevelInProgress
	}
	s.player.HighestCompletedLevel = max(s.player.HighestCompletedLevel, cl.Index)
	cl.Index++
	system.Credit(s.world, "continue", reward.Grant{
		XP: parameter.ContinueXPPerIndexFloat * float64(cl.Index),
		LP: parameter.ContinueLP,
	})
	s.startLevel()
	return nil
}

// Replay restarts the completed level
func (s *Session) Replay() error {
	if s.player.CurrentLevel.Active {
		return ErrLevelInProgress
	}
	s.startLevel()
	return nil
}

// JumpToLevel restarts at index, clamped to [1, highest completed + 1]
// Returns the index actually entered
func (s *Session) JumpToLevel(index int) int {
	index = max(1, min(index, s.player.HighestCompletedLevel+1))
	s.player.CurrentLevel.Index = index
	s.startLevel()
	return index
}

// startLevel restarts the arena; a running skill check keeps its own timer
func (s *Session) startLevel() {
	s.resolve()
	s.level.Restart()
	s.router.DispatchAll()
}

// ClaimMilestone pays a reached milestone
func (s *Session) ClaimMilestone(id string) (progress.ClaimResult, error) {
	return s.claim(progress.KindMilestone, id)
}

// ClaimAchievement pays a reached achievement
func (s *Session) ClaimAchievement(id string) (progress.ClaimResult, error) {
	return s.claim(progress.KindAchievement, id)
}

// ClaimAllAchievements pays every reached achievement
func (s *Session) ClaimAllAchievements() []progress.ClaimResult {
	results := s.tracker.ClaimAll(progress.KindAchievement, s.player)
	for _, r := range results {
		s.announceClaim(r)
	}
	s.router.DispatchAll()
	return results
}

func (s *Session) claim(k progress.Kind, id string) (progress.ClaimResult, error) {
	r, err := s.tracker.Claim(k, id, s.player)
	if err != nil {
		return r, fmt.Errorf("claim %s: %w", id, err)
	}
	s.announceClaim(r)
	s.router.DispatchAll()
	return r, nil
}

func (s *Session) announceClaim(r progress.ClaimResult) {
	s.world.PushEvent(event.EventRewardGranted, &event.RewardPayload{Source: r.Goal.Kind.String(), Grant: r.Goal.Reward})
	if r.LevelUps > 0 {
		s.world.PushEvent(event.EventLevelUp, &event.LevelUpPayload{Level: s.player.Level, Levels: r.LevelUps})
	}
}

// DepositCrypto moves bits into the crypto mine
func (s *Session) DepositCrypto(amount float64) error {
	return economy.DepositCrypto(s.player, amount, s.stats.CryptoSynergy)
}

// WithdrawCrypto stops the mine and refunds its deposit
func (s *Session) WithdrawCrypto() float64 {
	return economy.WithdrawCrypto(s.player)
}

// DepositLab moves cryptcoins into the lab
func (s *Session) DepositLab(amount float64) error {
	return economy.DepositLab(s.player, amount, s.anomalyLevels())
}

// BreachLab pays out a full lab
func (s *Session) BreachLab() (reward.Grant, error) {
	g, err := economy.Breach(s.player)
	if err != nil {
		return g, err
	}
	system.Credit(s.world, "lab", g)
	s.world.PushEvent(event.EventLabBreach, &event.RewardPayload{Source: "lab", Grant: g})
	s.router.DispatchAll()
	return g, nil
}

func (s *Session) anomalyLevels() int {
	n := 0
	for _, u := range s.catalog.ByCategory(upgrade.CategoryAnomaly) {
		n += s.player.Upgrades[u.ID]
	}
	return n
}

// Snapshot returns a deep copy of the player
func (s *Session) Snapshot() state.Player {
	return s.player.Clone()
}

// Encode stamps and marshals the player document
func (s *Session) Encode() ([]byte, error) {
	s.player.LastSavedAt = time.Now().UnixMilli()
	return state.Marshal(s.player)
}

// Save encodes the player and writes it to the configured store
func (s *Session) Save(ctx context.Context) ([]byte, error) {
	data, err := s.Encode()
	if err != nil {
		s.statSaveErrors.Add(1)
		return nil, err
	}
	if s.store == nil {
		return data, ErrNoStore
	}
	if err := s.store.Save(ctx, s.slot, data); err != nil {
		s.statSaveErrors.Add(1)
		return data, fmt.Errorf("save %s: %w", s.slot, err)
	}
	s.statSaves.Add(1)
	if h, ok := s.store.(storage.Historian); ok {
		if err := h.AppendHistory(ctx, s.slot, s.History()); err != nil {
			log.Printf("[session %s] history: %v", s.id, err)
		}
	}
	s.world.PushEvent(event.EventSaved, &event.SavedPayload{Bytes: len(data)})
	s.router.DispatchAll()
	return data, nil
}

// History summarizes the player for the save history
func (s *Session) History() storage.Snapshot {
	p := s.player
	return storage.Snapshot{
		SavedAt:   time.UnixMilli(p.LastSavedAt),
		Stage:     p.CurrentLevel.Index,
		Level:     p.Level,
		Bits:      p.Bits,
		Prestige:  p.Prestige,
		BossKills: p.BossKills,
		Playtime:  p.Playtime,
	}
}

// Load replaces the player with a decoded document
// Unreadable fields fall back to defaults; Load never fails
func (s *Session) Load(data []byte) {
	*s.player = state.Load(data, s.catalog)
	s.reset()
}

// NewGame replaces the player with a fresh one
func (s *Session) NewGame() {
	*s.player = state.NewPlayer()
	s.reset()
}

// reset rebuilds everything derived from the player
func (s *Session) reset() {
	cl := &s.player.CurrentLevel
	cl.Index = max(1, min(cl.Index, s.player.HighestCompletedLevel+1))

	s.skill.Cancel()
	s.world.Clear()
	s.resolve()
	s.world.PushEvent(event.EventGameReset, nil)
	s.router.DispatchAll()
}

// resolve re-runs the stat resolver into the shared snapshot
func (s *Session) resolve() {
	*s.stats = s.catalog.Resolve(s.player)
}

// Frame projects the arena and hud for rendering
func (s *Session) Frame() render.Frame {
	return render.Project(s.world, s.level.PhaseName(), s.skill.View())
}
