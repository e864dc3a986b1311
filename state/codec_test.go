package state

import (
	"encoding/json"
	"reflect"
	"testing"
)

type fakeCatalog map[string]int

func (c fakeCatalog) MaxLevel(id string) (int, bool) {
	m, ok := c[id]
	return m, ok
}

func (c fakeCatalog) HasAutomation(id string) bool { return id == "sync-core" }

func TestRoundTripDropsUnknownUpgrade(t *testing.T) {
	catalog := fakeCatalog{"damage-v1": 10, "crit-v1": 10}

	p := NewPlayer()
	p.Bits = 1234.5
	p.Cryptcoins = 7
	p.Prestige = 3
	p.Level = 4
	p.LevelXP = 12
	p.XPForNext = 172.8
	p.LP = 3
	p.HighestCompletedLevel = 2
	p.CurrentLevel = CurrentLevel{Index: 3, Timer: 42, Active: true}
	p.Upgrades["damage-v1"] = 3
	p.Upgrades["crit-v1"] = 1
	p.Upgrades["legacy_DAMAGE_7"] = 5
	p.Automation["sync-core"] = true
	p.NodesDestroyed[NodeGold] = 9
	p.BossKills = 2
	p.MilestoneClaims["red-500"] = true

	data, err := Marshal(&p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got := Load(data, catalog)

	want := p.Clone()
	delete(want.Upgrades, "legacy_DAMAGE_7")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch\n got: %+v\nwant: %+v", got, want)
	}
	if _, ok := got.Upgrades["legacy_DAMAGE_7"]; ok {
		t.Error("unknown upgrade id survived load")
	}
}

func TestLoadCorruptBlobYieldsDefaults(t *testing.T) {
	for _, blob := range []string{"", "not json", "[1,2,3]", "null", `"str"`} {
		got := Load([]byte(blob), fakeCatalog{})
		if !reflect.DeepEqual(got, NewPlayer()) {
			t.Errorf("blob %q: expected default player, got %+v", blob, got)
		}
	}
}

func TestLoadSanitizesFields(t *testing.T) {
	raw := map[string]any{
		"bits":      -50,
		"prestige":  "12",
		"level":     0,
		"xpForNext": 0,
		"upgrades": map[string]any{
			"damage-v1": 99,
			"crit-v1":   0,
			"econ-v1":   "x",
		},
		"nodesDestroyed": map[string]any{"red": 5, "blue": "oops", "purple": 3},
		"cryptoUnlocked": "true",
		"labUnlocked":    "maybe",
		"currentLevel":   map[string]any{"index": 1, "timer": 0, "active": true},
		"settings":       map[string]any{"sfx": 4, "palette": 17},
	}
	data, _ := json.Marshal(raw)
	p := Load(data, fakeCatalog{"damage-v1": 10, "crit-v1": 10, "econ-v1": 10})

	if p.Bits != 0 {
		t.Errorf("bits %v, want 0", p.Bits)
	}
	if p.Prestige != 12 {
		t.Errorf("prestige %v, want 12", p.Prestige)
	}
	if p.Level != 1 || p.XPForNext != 1 {
		t.Errorf("level %d xpForNext %v, want 1 and 1", p.Level, p.XPForNext)
	}
	if !reflect.DeepEqual(p.Upgrades, map[string]int{"damage-v1": 10}) {
		t.Errorf("upgrades %v", p.Upgrades)
	}
	if p.NodesDestroyed[NodeRed] != 5 || p.NodesDestroyed[NodeBlue] != 0 || p.NodesDestroyed[NodeGreen] != 0 {
		t.Errorf("nodesDestroyed %v", p.NodesDestroyed)
	}
	if _, ok := p.NodesDestroyed["purple"]; ok {
		t.Error("unknown node type kept")
	}
	if !p.CryptoUnlocked || p.LabUnlocked {
		t.Errorf("unlock coercion wrong: crypto=%v lab=%v", p.CryptoUnlocked, p.LabUnlocked)
	}
	if p.CurrentLevel.Timer != LevelDuration(1) {
		t.Errorf("timer %v, want %v", p.CurrentLevel.Timer, LevelDuration(1))
	}
	if p.Settings.SFX != 1 || p.Settings.Palette != "default" {
		t.Errorf("settings %+v", p.Settings)
	}
}

func TestLoadLegacyThreeNodeSave(t *testing.T) {
	data := []byte(`{"bits":10,"nodesDestroyed":{"red":4,"blue":2,"gold":1}}`)
	p := Load(data, fakeCatalog{})
	for _, typ := range NodeTypes {
		if _, ok := p.NodesDestroyed[typ]; !ok {
			t.Errorf("missing counter for %s", typ)
		}
	}
	if p.NodesDestroyed[NodeGreen] != 0 || p.NodesDestroyed[NodeRed] != 4 {
		t.Errorf("counters %v", p.NodesDestroyed)
	}
}

func TestLoadBossPhase(t *testing.T) {
	tests := []struct {
		name       string
		level      map[string]any
		bossActive bool
		bossHP     float64
		timer      float64
	}{
		{"boss restored", map[string]any{"index": 1, "active": true, "bossActive": true, "bossHP": 150, "bossMaxHP": 200}, true, 150, 0},
		{"boss hp clamped", map[string]any{"index": 1, "active": true, "bossActive": true, "bossHP": 900, "bossMaxHP": 200}, true, 200, 0},
		{"dead boss falls back to countdown", map[string]any{"index": 1, "active": true, "bossActive": true, "bossHP": 0, "bossMaxHP": 200}, false, 0, 60},
		{"timer above expected", map[string]any{"index": 1, "active": true, "timer": 500}, false, 0, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, _ := json.Marshal(map[string]any{"currentLevel": tt.level})
			lvl := Load(data, fakeCatalog{}).CurrentLevel
			if lvl.BossActive != tt.bossActive || lvl.BossHP != tt.bossHP || lvl.Timer != tt.timer {
				t.Errorf("got %+v", lvl)
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := NewPlayer()
	c := p.Clone()
	c.Upgrades["x"] = 1
	c.NodesDestroyed[NodeRed] = 10
	if len(p.Upgrades) != 0 || p.NodesDestroyed[NodeRed] != 0 {
		t.Error("clone shares maps with original")
	}
}

func TestLevelFormulas(t *testing.T) {
	if LevelDuration(1) != 60 || LevelDuration(4) != 90 || LevelDuration(0) != 60 {
		t.Error("level duration formula")
	}
	if BossBaseHP(1) != 200 || BossBaseHP(3) != 400 {
		t.Error("boss base hp formula")
	}
}

func TestLoadUpgradeLevels(t *testing.T) {
	catalog := fakeCatalog{"damage-v1": 10, "crit-v1": 10, "area-v1": 10, "economy-v1": 10, "swarm-v1": 10}
	data, _ := json.Marshal(map[string]any{"upgrades": map[string]any{
		"damage-v1":  1e300,
		"crit-v1":    0.5,
		"area-v1":    "3",
		"economy-v1": 2.9,
		"swarm-v1":   -1e300,
	}})
	got := Load(data, catalog).Upgrades

	want := map[string]int{"damage-v1": 10, "area-v1": 3, "economy-v1": 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("upgrades = %v, want %v", got, want)
	}
}

func TestLoadCompletedLevelNeedsBossKills(t *testing.T) {
	tests := []struct {
		name      string
		bossKills int
		active    bool
	}{
		{"no kills restarts the level", 0, true},
		{"one kill short", 2, true},
		{"kills cover the index", 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, _ := json.Marshal(map[string]any{
				"highestCompletedLevel": 2,
				"bossKills":             tt.bossKills,
				"currentLevel":          map[string]any{"index": 3, "active": false},
			})
			lvl := Load(data, fakeCatalog{}).CurrentLevel
			if lvl.Index != 3 || lvl.Active != tt.active {
				t.Errorf("got %+v", lvl)
			}
			if lvl.Active && lvl.Timer != LevelDuration(3) {
				t.Errorf("restarted level timer %v", lvl.Timer)
			}
		})
	}
}
