package upgrade

import (
	"math"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/stats"
)

// EffectKind tags the variant of an Effect
type EffectKind uint8

const (
	EffectNone EffectKind = iota
	EffectDamageBoost
	EffectCritBoost
	EffectCritMultiplier
	EffectEconomyBoost
	EffectXPBoost
	EffectSpawnControl
	EffectAreaBoost
	EffectSpeedBoost
	EffectCollectBoost
	EffectBossExecution
	EffectNodeCountDamage
	EffectCryptoSynergy
	EffectPrestigeBoost
	EffectAutoInterval

	effectKindCount
)

var effectKindNames = [...]string{
	EffectNone:            "none",
	EffectDamageBoost:     "damage",
	EffectCritBoost:       "crit",
	EffectCritMultiplier:  "crit-multiplier",
	EffectEconomyBoost:    "economy",
	EffectXPBoost:         "xp",
	EffectSpawnControl:    "spawn-control",
	EffectAreaBoost:       "area",
	EffectSpeedBoost:      "speed",
	EffectCollectBoost:    "collect",
	EffectBossExecution:   "boss-execution",
	EffectNodeCountDamage: "node-count-damage",
	EffectCryptoSynergy:   "crypto-synergy",
	EffectPrestigeBoost:   "prestige",
	EffectAutoInterval:    "auto-interval",
}

func (k EffectKind) String() string {
	if int(k) < len(effectKindNames) {
		return effectKindNames[k]
	}
	return "unknown"
}

// Effect is a data-only description of what an upgrade does per level
// A and B are the kind's parameters:
//
//	DamageBoost      damage += baseDamage*A*level
//	CritBoost        critChance += A*level
//	CritMultiplier   critMultiplier += A*level
//	EconomyBoost     bitGain += A*level
//	XPBoost          xpGain += A*level
//	SpawnControl     maxNodes += floor(A*level), spawn delay -= B*level
//	AreaBoost        pointerSize += A*level
//	SpeedBoost       autoInterval *= (1-A)^level
//	CollectBoost     collect radius += A*level, bitNodeBonus += B*level
//	BossExecution    bossKillDamageRamp += A*level
//	NodeCountDamage  nodeCountDamageBonus += A*level
//	CryptoSynergy    cryptoSynergy += A*level
//	PrestigeBoost    prestigeGain += A*level
//	AutoInterval     autoInterval *= A^level
type Effect struct {
	Kind EffectKind `json:"kind"`
	A    float64    `json:"a"`
	B    float64    `json:"b,omitempty"`
}

// Apply folds one effect at the given level into s
func Apply(e Effect, s *stats.Snapshot, level int) {
	if level <= 0 {
		return
	}
	l := float64(level)

	switch e.Kind {
	case EffectNone:
	case EffectDamageBoost:
		s.Damage += s.BaseDamage * e.A * l
	case EffectCritBoost:
		s.CritChance += e.A * l
	case EffectCritMultiplier:
		s.CritMultiplier += e.A * l
	case EffectEconomyBoost:
		s.BitGain += e.A * l
	case EffectXPBoost:
		s.XPGain += e.A * l
	case EffectSpawnControl:
		s.MaxNodes += int(math.Floor(e.A * l))
		s.NodeSpawnDelay -= e.B * l
	case EffectAreaBoost:
		s.PointerSize += e.A * l
	case EffectSpeedBoost:
		s.AutoInterval *= math.Pow(1-e.A, l)
	case EffectCollectBoost:
		s.BitCollectRadius += e.A * l
		s.BitNodeBonus += e.B * l
	case EffectBossExecution:
		s.BossKillDamageRamp += e.A * l
	case EffectNodeCountDamage:
		s.NodeCountDamageBonus += e.A * l
	case EffectCryptoSynergy:
		s.CryptoSynergy += e.A * l
	case EffectPrestigeBoost:
		s.PrestigeGain += e.A * l
	case EffectAutoInterval:
		s.AutoInterval *= math.Pow(e.A, l)
	}
}
