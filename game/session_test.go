package game

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/event"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/progress"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/skillcheck"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/state"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/status"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/storage"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/upgrade"
)

// constRand returns the same draw forever; 0 triggers every chance roll
type constRand float64

func (r constRand) Float64() float64 { return float64(r) }
func (constRand) IntN(int) int       { return 0 }

// neverRand fails every chance roll
const neverRand = constRand(0.999)

func newTestSession(t *testing.T, cfg Config) *Session {
	t.Helper()
	if cfg.Rand == nil {
		cfg.Rand = neverRand
	}
	return New(cfg)
}

func TestTickIgnoresInvalidDelta(t *testing.T) {
	s := newTestSession(t, Config{})
	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := s.Tick(dt); err != nil {
			t.Fatalf("Tick(%v) = %v", dt, err)
		}
	}
	if f := s.world.Resources.Time.FrameNumber; f != 0 {
		t.Fatalf("frames advanced on invalid delta: %d", f)
	}

	s.Tick(10)
	if got := s.player.Playtime; got != 0.25 {
		t.Errorf("playtime after stalled tick = %v, want 0.25", got)
	}
}

func TestTickRecoversPanic(t *testing.T) {
	s := newTestSession(t, Config{})
	s.Subscribe([]event.EventType{event.EventSaved}, func(event.GameEvent) {
		panic("handler exploded")
	})
	s.world.PushEvent(event.EventSaved, &event.SavedPayload{})

	if err := s.Tick(0.1); err == nil {
		t.Fatal("expected recovered panic as error")
	}
	if got := s.Status().Ints.Get(status.TickPanics).Load(); got != 1 {
		t.Errorf("tick panics = %d", got)
	}
	if err := s.Tick(0.1); err != nil {
		t.Errorf("tick after recovery = %v", err)
	}
}

func TestPurchaseFailureChangesNothing(t *testing.T) {
	s := newTestSession(t, Config{})
	s.player.Bits = 10

	tests := []struct {
		id   string
		want error
	}{
		{"damage-v1", upgrade.ErrInsufficientFunds},
		{"no-such-upgrade", upgrade.ErrUnknownUpgrade},
		{"damage-v2", upgrade.ErrRequirements},
	}
	for _, tt := range tests {
		if err := s.AttemptPurchase(tt.id); !errors.Is(err, tt.want) {
			t.Errorf("AttemptPurchase(%s) = %v, want %v", tt.id, err, tt.want)
		}
	}
	if s.player.Bits != 10 || len(s.player.Upgrades) != 0 || s.player.UpgradesPurchased != 0 {
		t.Errorf("player mutated: bits %v upgrades %v", s.player.Bits, s.player.Upgrades)
	}
}

func TestPurchaseResolvesStats(t *testing.T) {
	s := newTestSession(t, Config{})
	s.player.Bits = 25
	before := s.Stats().Damage

	if err := s.AttemptPurchase("damage-v1"); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if s.player.Bits != 0 || s.player.Upgrades["damage-v1"] != 1 {
		t.Fatalf("bits %v level %d", s.player.Bits, s.player.Upgrades["damage-v1"])
	}
	if s.Stats().Damage <= before {
		t.Errorf("damage %v not above %v", s.Stats().Damage, before)
	}
	if s.SkillCheck().Active {
		t.Error("skill check started although the roll failed")
	}
}

func TestSkillCheckSuccessPays(t *testing.T) {
	s := newTestSession(t, Config{Rand: constRand(0)})
	s.player.Bits = 25

	if err := s.AttemptPurchase("damage-v1"); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	view := s.SkillCheck()
	if !view.Active || view.Difficulty != "easy" {
		t.Fatalf("view %+v", view)
	}

	// Window starts at 0 and the marker has not moved
	if r := s.ResolveSkillCheck(); r != skillcheck.ResultSuccess {
		t.Fatalf("resolve = %v", r)
	}
	if s.player.Bits != 12 {
		t.Errorf("bits = %v, want ceil(25*0.45)", s.player.Bits)
	}
	if s.player.Upgrades["damage-v1"] != 1 {
		t.Error("successful check removed the upgrade")
	}
	if got := s.Status().Ints.Get(status.SkillCheckWins).Load(); got != 1 {
		t.Errorf("wins = %d", got)
	}
}

func TestAnomalyCheckFailureReverts(t *testing.T) {
	s := newTestSession(t, Config{Rand: constRand(0)})
	s.player.Prestige = 100
	s.player.LP = 10

	var reverted bool
	s.Subscribe([]event.EventType{event.EventUpgradeReverted}, func(event.GameEvent) { reverted = true })

	if err := s.AttemptPurchase("anomaly-v1"); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if !s.SkillCheck().Active {
		t.Fatal("anomaly purchase did not start a check")
	}

	for i := 0; i < 40 && s.SkillCheck().Active; i++ {
		s.Tick(0.25)
	}
	if s.SkillCheck().Active {
		t.Fatal("check never timed out")
	}
	if s.player.Upgrades["anomaly-v1"] != 0 {
		t.Errorf("anomaly level = %d, want reverted", s.player.Upgrades["anomaly-v1"])
	}
	if s.player.Prestige != 90 {
		t.Errorf("prestige = %v, cost is not refunded", s.player.Prestige)
	}
	if !reverted {
		t.Error("no revert event")
	}
}

func TestLevelRestartKeepsSkillCheck(t *testing.T) {
	s := newTestSession(t, Config{Rand: constRand(0)})
	s.player.Prestige = 100
	s.player.LP = 10

	if err := s.AttemptPurchase("anomaly-v1"); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if got := s.JumpToLevel(1); got != 1 {
		t.Fatalf("jump entered %d", got)
	}
	if !s.SkillCheck().Active {
		t.Fatal("restarting the level dropped the running check")
	}

	for i := 0; i < 40 && s.SkillCheck().Active; i++ {
		s.Tick(0.25)
	}
	if s.SkillCheck().Active {
		t.Fatal("check never timed out")
	}
	if s.player.Upgrades["anomaly-v1"] != 0 {
		t.Errorf("anomaly level = %d after a failed check", s.player.Upgrades["anomaly-v1"])
	}
	if s.player.Prestige != 90 {
		t.Errorf("prestige = %v", s.player.Prestige)
	}
}

func TestNewGameCancelsSkillCheck(t *testing.T) {
	s := newTestSession(t, Config{Rand: constRand(0)})
	s.player.Prestige = 100
	s.player.LP = 10
	if err := s.AttemptPurchase("anomaly-v1"); err != nil {
		t.Fatalf("purchase: %v", err)
	}

	s.NewGame()
	if s.SkillCheck().Active {
		t.Error("check survived a new game")
	}
	if len(s.player.Upgrades) != 0 {
		t.Errorf("upgrades %v", s.player.Upgrades)
	}
}

func TestContinueReplayJump(t *testing.T) {
	s := newTestSession(t, Config{})

	if err := s.Continue(); !errors.Is(err, ErrLevelInProgress) {
		t.Fatalf("Continue during level = %v", err)
	}
	if err := s.Replay(); !errors.Is(err, ErrLevelInProgress) {
		t.Fatalf("Replay during level = %v", err)
	}

	s.player.CurrentLevel.Active = false
	lp := s.player.LP
	if err := s.Continue(); err != nil {
		t.Fatalf("continue: %v", err)
	}
	cl := s.player.CurrentLevel
	if cl.Index != 2 || !cl.Active || cl.Timer != state.LevelDuration(2) {
		t.Fatalf("level after continue %+v", cl)
	}
	if s.player.HighestCompletedLevel != 1 {
		t.Errorf("highest = %d", s.player.HighestCompletedLevel)
	}
	if s.player.LP < lp+1 {
		t.Errorf("lp %v, want at least %v", s.player.LP, lp+1)
	}

	s.player.CurrentLevel.Active = false
	if err := s.Replay(); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if s.player.CurrentLevel.Index != 2 || s.Phase() != "Spawning" {
		t.Errorf("replay index %d phase %s", s.player.CurrentLevel.Index, s.Phase())
	}

	tests := []struct {
		in, want int
	}{
		{10, 2},
		{0, 1},
		{-5, 1},
		{2, 2},
	}
	for _, tt := range tests {
		if got := s.JumpToLevel(tt.in); got != tt.want {
			t.Errorf("JumpToLevel(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestClaims(t *testing.T) {
	s := newTestSession(t, Config{})
	s.player.BossKills = 1

	if _, err := s.ClaimAchievement("boss-1"); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if s.player.Bits != 300 {
		t.Errorf("bits = %v", s.player.Bits)
	}

	tests := []struct {
		id   string
		want error
	}{
		{"boss-1", progress.ErrAlreadyClaimed},
		{"level-50", progress.ErrNotReady},
		{"nope", progress.ErrUnknownGoal},
	}
	for _, tt := range tests {
		if _, err := s.ClaimAchievement(tt.id); !errors.Is(err, tt.want) {
			t.Errorf("ClaimAchievement(%s) = %v, want %v", tt.id, err, tt.want)
		}
	}

	s.player.NodesDestroyed[state.NodeRed] = 600
	if _, err := s.ClaimMilestone("red-500"); err != nil {
		t.Errorf("milestone: %v", err)
	}
	results := s.ClaimAllAchievements()
	if len(results) == 0 {
		t.Error("first-node not claimed by ClaimAll")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	if _, err := newTestSession(t, Config{}).Save(ctx); !errors.Is(err, ErrNoStore) {
		t.Fatalf("save without store = %v", err)
	}

	mem := storage.NewMemoryStore()
	s := newTestSession(t, Config{Store: mem, Slot: "main"})
	s.player.Bits = 1025
	if err := s.AttemptPurchase("damage-v1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := mem.Load(ctx, "main")
	if err != nil {
		t.Fatalf("load slot: %v", err)
	}
	restored := newTestSession(t, Config{})
	restored.Load(data)

	p := restored.Snapshot()
	if p.Bits != 1000 || p.Upgrades["damage-v1"] != 1 {
		t.Errorf("restored bits %v upgrades %v", p.Bits, p.Upgrades)
	}
	if restored.Stats().Damage != s.Stats().Damage {
		t.Errorf("stats not re-resolved: %v vs %v", restored.Stats().Damage, s.Stats().Damage)
	}

	h, _ := mem.History(ctx, "main")
	if len(h) != 1 || h[0].Bits != 1000 {
		t.Errorf("history %+v", h)
	}
}

func TestLoadCorruptFallsBack(t *testing.T) {
	s := newTestSession(t, Config{})
	s.player.Bits = 99
	s.Load([]byte("{not json"))

	p := s.Snapshot()
	if p.Bits != 0 || p.CurrentLevel.Index != 1 || !p.CurrentLevel.Active {
		t.Errorf("corrupt load kept state: %+v", p.CurrentLevel)
	}
}

func TestLoadClampsLevelIndex(t *testing.T) {
	p := state.NewPlayer()
	p.HighestCompletedLevel = 2
	p.CurrentLevel.Index = 9
	data, err := state.Marshal(&p)
	if err != nil {
		t.Fatal(err)
	}

	s := newTestSession(t, Config{})
	s.Load(data)
	if got := s.player.CurrentLevel.Index; got != 3 {
		t.Errorf("index = %d, want 3", got)
	}
}

func TestNewGameResets(t *testing.T) {
	s := newTestSession(t, Config{})
	s.player.Bits = 5000
	s.player.Upgrades["damage-v1"] = 3
	s.Tick(0.25)

	s.NewGame()
	if s.player.Bits != 0 || len(s.player.Upgrades) != 0 {
		t.Errorf("player not reset")
	}
	if s.world.Components.Node.CountEntities() != 0 {
		t.Error("arena not cleared")
	}
	fresh := state.NewPlayer()
	if want := s.Catalog().Resolve(&fresh); s.Stats() != want {
		t.Errorf("stats = %+v, want %+v", s.Stats(), want)
	}
}

func TestRenderHookAndFrame(t *testing.T) {
	var seen []event.EventType
	s := newTestSession(t, Config{Render: func(ev event.GameEvent) { seen = append(seen, ev.Type) }})
	s.player.Bits = 30

	if err := s.AttemptPurchase("damage-v1"); err != nil {
		t.Fatal(err)
	}
	if !slices.Contains(seen, event.EventUpgradePurchased) {
		t.Errorf("render hook saw %v", seen)
	}

	s.SetPointer(100, 50, true)
	f := s.Frame()
	if f.HUD.Bits != 5 || !f.Pointer.Inside || f.Pointer.X != 100 {
		t.Errorf("frame hud %+v pointer %+v", f.HUD, f.Pointer)
	}

	s.SetPointer(math.NaN(), 1, true)
	if s.Frame().Pointer.Inside {
		t.Error("non-finite pointer accepted")
	}
}
