package state

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
)

// Catalog is the view of the upgrade catalog the loader needs to validate ids
type Catalog interface {
	// MaxLevel returns the cap for a known upgrade id
	MaxLevel(id string) (int, bool)
	// HasAutomation reports whether id names an automation node
	HasAutomation(id string) bool
}

// Marshal encodes the player as the persisted JSON document
func Marshal(p *Player) ([]byte, error) {
	snapshot := p.Clone()
	snapshot.Version = parameter.SaveVersion
	data, err := json.Marshal(&snapshot)
	if err != nil {
		return nil, fmt.Errorf("marshal player: %w", err)
	}
	return data, nil
}

// Load decodes a persisted document, merging known fields over defaults
// Every field is sanitized on its own; nothing in data can make Load fail.
// Undecodable input yields NewPlayer()
func Load(data []byte, catalog Catalog) Player {
	p := NewPlayer()
	if len(data) == 0 {
		return p
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("[state] discarding unreadable save: %v", err)
		return p
	}
	if raw == nil {
		return p
	}
	return Merge(raw, catalog)
}

// Merge sanitizes a generic decoded document into a Player
func Merge(raw map[string]any, catalog Catalog) Player {
	p := NewPlayer()
	d := doc(raw)

	p.Bits = d.nonNegative("bits", p.Bits)
	p.Cryptcoins = d.nonNegative("cryptcoins", p.Cryptcoins)
	p.Prestige = d.nonNegative("prestige", p.Prestige)
	p.XP = d.nonNegative("xp", p.XP)
	p.LP = d.nonNegative("lp", p.LP)
	p.Level = max(1, d.integer("level", p.Level))
	p.LevelXP = d.nonNegative("levelXP", p.LevelXP)
	p.XPForNext = math.Max(1, d.number("xpForNext", p.XPForNext))
	p.HighestCompletedLevel = max(0, d.integer("highestCompletedLevel", 0))
	p.MaxHealth = math.Max(1, d.number("maxHealth", p.MaxHealth))
	p.Health = clampFloat(d.number("health", p.MaxHealth), 0, p.MaxHealth)
	p.Playtime = d.nonNegative("playtime", 0)
	p.BossKills = max(0, d.integer("bossKills", 0))
	p.UpgradesPurchased = max(0, d.integer("upgradesPurchased", 0))
	p.PaletteChangeCount = max(0, d.integer("paletteChangeCount", 0))
	p.LastSavedAt = int64(d.nonNegative("lastSavedAt", 0))
	p.Version = d.str("version", parameter.SaveVersion)

	p.CryptoUnlocked = d.boolean("cryptoUnlocked", false)
	p.LabUnlocked = d.boolean("labUnlocked", false)
	p.SpawnUnlocked = d.boolean("spawnUnlocked", false)

	p.CurrentLevel = mergeLevel(d.object("currentLevel"), p.HighestCompletedLevel, p.BossKills)

	kills := d.object("nodesDestroyed").counts()
	for _, t := range NodeTypes {
		if n, ok := kills[string(t)]; ok {
			p.NodesDestroyed[t] = n
		}
	}

	for id, v := range d.object("upgrades") {
		lvl, ok := toNumber(v)
		if !ok {
			continue
		}
		lvl = math.Floor(lvl)
		if lvl < 1 {
			continue
		}
		if catalog == nil {
			break
		}
		maxLevel, known := catalog.MaxLevel(id)
		if !known || maxLevel < 1 {
			continue
		}
		// clamp before converting; int() of an out-of-range float is undefined
		p.Upgrades[id] = int(math.Min(lvl, float64(maxLevel)))
	}

	for id, v := range d.object("automation") {
		if b, ok := toBool(v); ok && b && catalog != nil && catalog.HasAutomation(id) {
			p.Automation[id] = true
		}
	}

	p.MilestoneClaims = d.object("milestoneClaims").flags()
	p.AchievementClaims = d.object("achievementClaims").flags()

	crypto := d.object("crypto")
	p.Crypto = Crypto{
		Deposit:       crypto.nonNegative("deposit", 0),
		Rate:          crypto.nonNegative("rate", 0),
		TimeRemaining: crypto.nonNegative("timeRemaining", 0),
	}

	lab := d.object("lab")
	p.Lab = Lab{
		Progress:  clampFloat(lab.nonNegative("labProgress", 0), 0, parameter.LabBreachThresholdFloat),
		Speed:     lab.nonNegative("labSpeed", 0),
		Deposited: lab.nonNegative("labDeposited", 0),
	}

	s := d.object("settings")
	def := DefaultSettings()
	p.Settings = Settings{
		CRT:              s.boolean("crt", def.CRT),
		Scanlines:        s.boolean("scanlines", def.Scanlines),
		ScreenShake:      clampFloat(s.number("screenShake", def.ScreenShake), 0, 100),
		BGM:              clampFloat(s.number("bgm", def.BGM), 0, 1),
		SFX:              clampFloat(s.number("sfx", def.SFX), 0, 1),
		Palette:          s.str("palette", def.Palette),
		ReducedAnimation: s.boolean("reducedAnimation", def.ReducedAnimation),
	}

	return p
}

// mergeLevel restores the level record, keeping its phase invariant intact
// A completed level needs a boss kill for every index up to it; otherwise
// the level is restarted so Continue cannot be reached without a fight
func mergeLevel(d doc, highest, bossKills int) CurrentLevel {
	index := max(1, d.integer("index", 1))
	if index > highest+1 {
		index = highest + 1
	}
	expected := LevelDuration(index)

	lvl := CurrentLevel{
		Index:           index,
		Active:          d.boolean("active", true),
		BossActive:      d.boolean("bossActive", false),
		BossMaxHP:       d.nonNegative("bossMaxHP", 0),
		BossHP:          d.nonNegative("bossHP", 0),
		BossDamageDealt: d.nonNegative("bossDamageDealt", 0),
	}

	if !lvl.Active && bossKills < index {
		lvl.Active = true
	}
	if lvl.Active && lvl.BossActive && lvl.BossMaxHP > 0 && lvl.BossHP > 0 {
		lvl.BossHP = math.Min(lvl.BossHP, lvl.BossMaxHP)
		lvl.Timer = 0
		return lvl
	}

	lvl.BossActive = false
	lvl.BossHP, lvl.BossMaxHP, lvl.BossDamageDealt = 0, 0, 0
	timer := d.number("timer", expected)
	if timer <= 0 || timer > expected {
		timer = expected
	}
	lvl.Timer = timer
	return lvl
}

// doc is a loosely typed JSON object with typed, defaulting accessors
type doc map[string]any

func (d doc) object(key string) doc {
	if m, ok := d[key].(map[string]any); ok {
		return doc(m)
	}
	return doc{}
}

func (d doc) number(key string, def float64) float64 {
	if f, ok := toNumber(d[key]); ok {
		return f
	}
	return def
}

func (d doc) nonNegative(key string, def float64) float64 {
	return math.Max(0, d.number(key, def))
}

func (d doc) integer(key string, def int) int {
	f, ok := toNumber(d[key])
	if !ok || f > math.MaxInt32 || f < math.MinInt32 {
		return def
	}
	return int(math.Floor(f))
}

func (d doc) boolean(key string, def bool) bool {
	if b, ok := toBool(d[key]); ok {
		return b
	}
	return def
}

func (d doc) str(key, def string) string {
	if s, ok := d[key].(string); ok && s != "" {
		return s
	}
	return def
}

// counts reads a map of non-negative integer counters
func (d doc) counts() map[string]int {
	out := make(map[string]int, len(d))
	for k, v := range d {
		if f, ok := toNumber(v); ok && f >= 0 && f <= math.MaxInt32 {
			out[k] = int(f)
		}
	}
	return out
}

// flags keeps only the keys set to true
func (d doc) flags() map[string]bool {
	out := make(map[string]bool, len(d))
	for k, v := range d {
		if b, ok := toBool(v); ok && b {
			out[k] = true
		}
	}
	return out
}

// toNumber accepts finite JSON numbers and numeric strings
func toNumber(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toBool accepts JSON booleans and the strings "true"/"false"
func toBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
