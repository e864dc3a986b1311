// Package stats holds the derived player stat snapshot and the fixed steps of
// its resolution: base reset, level pressure and final clamping.
// Upgrade folding lives with the upgrade catalog.
package stats

import (
	"math"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
)

// Snapshot is every derived stat the simulation reads
// Rebuilt from scratch on each resolution, never patched incrementally
type Snapshot struct {
	BaseDamage     float64 `json:"baseDamage"`
	Damage         float64 `json:"damage"`
	CritChance     float64 `json:"critChance"`
	CritMultiplier float64 `json:"critMultiplier"`
	AutoInterval   float64 `json:"autoInterval"`
	PointerSize    float64 `json:"pointerSize"`

	BitGain          float64 `json:"bitGain"`
	BitNodeBonus     float64 `json:"bitNodeBonus"`
	BitCollectRadius float64 `json:"bitCollectRadius"`
	XPGain           float64 `json:"xpGain"`
	PrestigeGain     float64 `json:"prestigeGain"`

	NodeSpawnDelay float64 `json:"nodeSpawnDelay"`
	MaxNodes       int     `json:"maxNodes"`
	NodeHPFactor   float64 `json:"nodeHPFactor"`
	BossHPFactor   float64 `json:"bossHPFactor"`

	NodeCountDamageBonus float64 `json:"nodeCountDamageBonus"`
	BossKillDamageRamp   float64 `json:"bossKillDamageRamp"`
	CryptoSynergy        float64 `json:"cryptoSynergy"`

	// CollectRadius is derived in Finalize: half the pointer plus the magnet bonus
	CollectRadius float64 `json:"collectRadius"`
}

// Base returns the hardcoded starting values
func Base() Snapshot {
	return Snapshot{
		BaseDamage:     parameter.BaseDamageFloat,
		Damage:         parameter.BaseDamageFloat,
		CritChance:     parameter.BaseCritChanceFloat,
		CritMultiplier: parameter.BaseCritMultiplierFloat,
		AutoInterval:   parameter.BaseAutoIntervalFloat,
		PointerSize:    parameter.BasePointerSize,
		BitGain:        1,
		XPGain:         1,
		PrestigeGain:   1,
		NodeSpawnDelay: parameter.BaseNodeSpawnDelayFloat,
		MaxNodes:       parameter.BaseMaxNodes,
		NodeHPFactor:   1,
		BossHPFactor:   1,
	}
}

// ApplyLevelPressure scales the snapshot by the current level index
// Spawn delay shrinks and boss hp grows, both bounded
func (s *Snapshot) ApplyLevelPressure(index int) {
	if index < 1 {
		index = 1
	}
	above := float64(index - 1)

	s.NodeHPFactor = 1 + float64(index)*parameter.NodeHPPerIndexFloat
	s.NodeSpawnDelay *= math.Max(parameter.SpawnDelayPressureFloorFloat, 1-above*parameter.SpawnDelayPressureFloat)
	s.BossHPFactor *= 1 + math.Min(parameter.BossHPPressureCapFloat, above*parameter.BossHPPressureFloat)
}

// Finalize clamps every stat into its legal range and fills derived fields
func (s *Snapshot) Finalize() {
	s.NodeSpawnDelay = math.Max(parameter.MinNodeSpawnDelayFloat, s.NodeSpawnDelay)
	s.AutoInterval = math.Max(parameter.MinResolvedAutoIntervalFloat, s.AutoInterval)
	s.PointerSize = math.Max(parameter.MinPointerSize, s.PointerSize)
	if s.MaxNodes < 1 {
		s.MaxNodes = 1
	}
	s.CritChance = math.Min(1, math.Max(0, s.CritChance))
	s.CritMultiplier = math.Max(1, s.CritMultiplier)
	s.BitCollectRadius = math.Max(0, s.BitCollectRadius)
	s.Damage = math.Max(1, s.Damage)
	s.CollectRadius = s.PointerSize/2 + s.BitCollectRadius
}
