package skillcheck

import (
	"math"
	"testing"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/upgrade"
)

type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }
func (r fixedRand) IntN(int) int     { return 0 }

func TestSingleActiveCheck(t *testing.T) {
	var m Minigame
	if !m.Start("a", parameter.SkillCheckNormal, 1, fixedRand(0), nil, nil) {
		t.Fatal("first start refused")
	}
	if m.Start("b", parameter.SkillCheckEasy, 1, fixedRand(0), nil, nil) {
		t.Error("second start accepted while active")
	}
	if m.View().Label != "a" {
		t.Errorf("active check replaced: %+v", m.View())
	}
}

func TestResolveInsideWindow(t *testing.T) {
	var m Minigame
	won, lost := 0, 0
	// window [0, 0.22) with rand 0
	m.Start("x", parameter.SkillCheckNormal, 1, fixedRand(0), func() { won++ }, func() { lost++ })

	m.Update(0.1) // marker at 0.085
	if got := m.Resolve(); got != ResultSuccess {
		t.Fatalf("result %v, want success (marker %v)", got, m.View().Marker)
	}
	if won != 1 || lost != 0 {
		t.Errorf("callbacks won=%d lost=%d", won, lost)
	}
	if m.Active() {
		t.Error("check still active after resolve")
	}
	if m.Resolve() != ResultNone {
		t.Error("resolve on idle minigame did something")
	}
	if won != 1 {
		t.Error("success callback ran twice")
	}
}

func TestResolveOutsideWindow(t *testing.T) {
	var m Minigame
	lost := 0
	m.Start("x", parameter.SkillCheckNormal, 1, fixedRand(0), nil, func() { lost++ })
	m.Update(0.5) // marker at 0.425, window [0, 0.22)
	if got := m.Resolve(); got != ResultFailure || lost != 1 {
		t.Errorf("result %v lost %d", got, lost)
	}
}

func TestTimeoutFails(t *testing.T) {
	var m Minigame
	lost := 0
	m.Start("x", parameter.SkillCheckHard, 1, fixedRand(0.5), nil, func() { lost++ })

	var res Result
	for i := 0; i < 400 && res == ResultNone; i++ {
		res = m.Update(1.0 / 60)
	}
	if res != ResultFailure || lost != 1 || m.Active() {
		t.Errorf("res %v lost %d active %v", res, lost, m.Active())
	}
}

func TestMarkerBounces(t *testing.T) {
	var m Minigame
	m.Start("x", parameter.SkillCheckEasy, 1, fixedRand(0), nil, nil)
	// speed 0.6: after 2s the marker travelled 1.2 → reflected to 0.8
	for range 20 {
		m.Update(0.1)
	}
	if v := m.View().Marker; math.Abs(v-0.8) > 1e-9 {
		t.Errorf("marker %v, want 0.8", v)
	}
	for range 200 {
		m.Update(0.01)
		if v := m.View().Marker; v < 0 || v > 1 {
			t.Fatalf("marker escaped track: %v", v)
		}
	}
}

func TestDifficultyScaling(t *testing.T) {
	d := parameter.SkillCheckNormal
	if Speed(d, 1) != d.BaseSpeed {
		t.Errorf("level 1 speed %v", Speed(d, 1))
	}
	if got := Speed(d, 500); math.Abs(got-d.BaseSpeed*1.8) > 1e-9 {
		t.Errorf("capped speed %v", got)
	}
	if WindowWidth(d, 1) != d.Window {
		t.Errorf("level 1 window %v", WindowWidth(d, 1))
	}
	if WindowWidth(d, 1000) != d.MinWindow {
		t.Errorf("floored window %v", WindowWidth(d, 1000))
	}
}

func TestCategoryTables(t *testing.T) {
	tests := []struct {
		cat    upgrade.Category
		chance float64
		diff   string
	}{
		{upgrade.CategoryDamage, 0.18, "easy"},
		{upgrade.CategoryAnomaly, 0.30, "hard"},
		{upgrade.CategoryBoss, 0.26, "normal"},
		{upgrade.CategoryEconomy, 0.18, "normal"},
	}
	for _, tt := range tests {
		if got := Chance(tt.cat); math.Abs(got-tt.chance) > 1e-9 {
			t.Errorf("%s chance %v, want %v", tt.cat, got, tt.chance)
		}
		if got := DifficultyFor(tt.cat).Name; got != tt.diff {
			t.Errorf("%s difficulty %s, want %s", tt.cat, got, tt.diff)
		}
	}

	g := RewardFor(parameter.SkillCheckHard, 100)
	if g.Bits != 95 || g.XP != 33 {
		t.Errorf("hard reward %+v", g)
	}
}
