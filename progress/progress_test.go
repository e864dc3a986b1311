package progress

import (
	"errors"
	"testing"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/state"
)

func TestClaimIsExplicitAndIdempotent(t *testing.T) {
	tr := NewDefaultTracker()
	p := state.NewPlayer()
	p.NodesDestroyed[state.NodeRed] = 500

	// Reaching the goal grants nothing on its own
	st := StatusOf(mustGoal(t, tr, KindMilestone, "red-500"), &p)
	if !st.Ready || st.Claimed || p.Bits != 0 {
		t.Fatalf("status %+v bits %v", st, p.Bits)
	}

	if _, err := tr.Claim(KindMilestone, "red-500", &p); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if p.Bits != 500 {
		t.Fatalf("bits after claim %v, want 500", p.Bits)
	}

	_, err := tr.Claim(KindMilestone, "red-500", &p)
	if !errors.Is(err, ErrAlreadyClaimed) {
		t.Errorf("second claim err = %v, want ErrAlreadyClaimed", err)
	}
	if p.Bits != 500 {
		t.Errorf("bits after second claim %v, want 500", p.Bits)
	}
}

func TestClaimNotReady(t *testing.T) {
	tr := NewDefaultTracker()
	p := state.NewPlayer()
	p.NodesDestroyed[state.NodeBlue] = 499

	if _, err := tr.Claim(KindMilestone, "blue-500", &p); !errors.Is(err, ErrNotReady) {
		t.Errorf("err = %v, want ErrNotReady", err)
	}
	if p.MilestoneClaims["blue-500"] {
		t.Error("unready goal marked claimed")
	}
	if _, err := tr.Claim(KindMilestone, "nope", &p); !errors.Is(err, ErrUnknownGoal) {
		t.Errorf("err = %v, want ErrUnknownGoal", err)
	}
}

func TestKindsAreSeparateLedgers(t *testing.T) {
	tr := NewDefaultTracker()
	p := state.NewPlayer()
	p.BossKills = 5

	if _, err := tr.Claim(KindAchievement, "boss-5", &p); !errors.Is(err, ErrUnknownGoal) {
		t.Errorf("milestone id resolved as achievement: %v", err)
	}
	if _, err := tr.Claim(KindMilestone, "boss-5", &p); err != nil {
		t.Fatalf("boss milestone: %v", err)
	}
	if p.Prestige != 5 || !p.MilestoneClaims["boss-5"] || p.AchievementClaims["boss-5"] {
		t.Errorf("prestige %v claims %v / %v", p.Prestige, p.MilestoneClaims, p.AchievementClaims)
	}
}

func TestClaimAllAchievements(t *testing.T) {
	tr := NewDefaultTracker()
	p := state.NewPlayer()
	p.NodesDestroyed[state.NodeRed] = 100
	p.Level = 5

	ready := tr.Claimable(KindAchievement, &p)
	if len(ready) != 3 {
		t.Fatalf("claimable %v, want first-node, hundred-nodes, level-5", ready)
	}

	res := tr.ClaimAll(KindAchievement, &p)
	if len(res) != 3 {
		t.Fatalf("claimed %d", len(res))
	}
	if p.Bits != 25+250+200 {
		t.Errorf("bits %v", p.Bits)
	}
	if again := tr.ClaimAll(KindAchievement, &p); len(again) != 0 {
		t.Errorf("second ClaimAll paid %d goals", len(again))
	}
}

func TestMetricValues(t *testing.T) {
	p := state.NewPlayer()
	p.NodesDestroyed[state.NodeGreen] = 3
	p.NodesDestroyed[state.NodeGold] = 2
	p.Playtime = 12.5
	p.UpgradesPurchased = 7

	tests := []struct {
		m    Metric
		want float64
	}{
		{MetricNodesGreen, 3},
		{MetricNodesTotal, 5},
		{MetricPlaytime, 12.5},
		{MetricUpgrades, 7},
		{MetricLevel, 1},
	}
	for _, tt := range tests {
		if got := tt.m.Value(&p); got != tt.want {
			t.Errorf("metric %d = %v, want %v", tt.m, got, tt.want)
		}
	}
}

func TestDefaultGoalsUnique(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("duplicate goal: %v", r)
		}
	}()
	tr := NewDefaultTracker()
	if len(tr.Goals(KindMilestone)) == 0 || len(tr.Goals(KindAchievement)) == 0 {
		t.Error("empty ladders")
	}
}

func mustGoal(t *testing.T, tr *Tracker, k Kind, id string) Goal {
	t.Helper()
	g, ok := tr.Lookup(k, id)
	if !ok {
		t.Fatalf("goal %s %q missing", k, id)
	}
	return g
}
