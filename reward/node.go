// Package reward computes node and boss payouts and applies them to the
// player ledger, including the multi-level XP loop.
package reward

import (
	"math"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/core"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/state"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/stats"
)

// NodeProfile describes one node type's scaling and payouts
type NodeProfile struct {
	Type    state.NodeType
	Name    string
	BitsMin float64
	BitsMax float64
	HPBase  float64
	// SpeedMultiplier scales traversal speed
	SpeedMultiplier float64
	Weight          float64
	HarvestMin      float64
	HarvestMax      float64
}

var nodeProfiles = [...]NodeProfile{
	{
		Type: state.NodeRed, Name: "Red Node", BitsMin: 5, BitsMax: 10, HPBase: 15, SpeedMultiplier: 1,
		Weight: parameter.SpawnWeightRed, HarvestMin: parameter.HarvestDamageRedMin, HarvestMax: parameter.HarvestDamageRedMax,
	},
	{
		Type: state.NodeBlue, Name: "Blue Node", BitsMin: 15, BitsMax: 30, HPBase: 30, SpeedMultiplier: 1,
		Weight: parameter.SpawnWeightBlue, HarvestMin: parameter.HarvestDamageBlueMin, HarvestMax: parameter.HarvestDamageBlueMax,
	},
	{
		Type: state.NodeGreen, Name: "Green Node", BitsMin: 30, BitsMax: 60, HPBase: 15, SpeedMultiplier: 3,
		Weight: parameter.SpawnWeightGreen, HarvestMin: parameter.HarvestDamageGreenMin, HarvestMax: parameter.HarvestDamageGreenMax,
	},
	{
		Type: state.NodeGold, Name: "Gold Node", BitsMin: 50, BitsMax: 100, HPBase: 115, SpeedMultiplier: 1,
		Weight: parameter.SpawnWeightGold, HarvestMin: parameter.HarvestDamageGoldMin, HarvestMax: parameter.HarvestDamageGoldMax,
	},
}

// Profile returns the profile for t, falling back to red for unknown types
func Profile(t state.NodeType) NodeProfile {
	for _, s := range nodeProfiles {
		if s.Type == t {
			return s
		}
	}
	return nodeProfiles[0]
}

// RollType picks a node type by spawn weight
func RollType(r core.Rand) state.NodeType {
	roll := r.Float64()
	acc := 0.0
	for _, s := range nodeProfiles {
		acc += s.Weight
		if roll < acc {
			return s.Type
		}
	}
	return nodeProfiles[0].Type
}

// safeIndex floors a level index at 1
func safeIndex(index int) int {
	if index < 1 {
		return 1
	}
	return index
}

// NodeHP is the raw hp of type t at a level index, before the hp factor
func NodeHP(t state.NodeType, index int) float64 {
	return Profile(t).HPBase * math.Pow(parameter.NodeHPGrowthFloat, float64(safeIndex(index)-1))
}

// ScaledNodeHP applies the resolved hp factor and rounds up
func ScaledNodeHP(t state.NodeType, index int, s *stats.Snapshot) float64 {
	return math.Ceil(NodeHP(t, index) * s.NodeHPFactor)
}

// NodeReward samples the payout of a kill
func NodeReward(t state.NodeType, index int, s *stats.Snapshot, r core.Rand) Grant {
	prof := Profile(t)
	i := safeIndex(index)
	fi := float64(i)

	scale := math.Pow(parameter.BitRewardGrowthFloat, fi-1)
	bits := math.Floor(core.Between(r, prof.BitsMin, prof.BitsMax+1)) * scale
	bits = math.Round(bits*s.BitGain) + s.BitNodeBonus

	g := Grant{Bits: bits}
	switch t {
	case state.NodeBlue:
		g.XP = (4 + fi) * s.XPGain
	case state.NodeGreen:
		g.XP = (5 + fi*0.6) * s.XPGain
		g.Cryptcoins = 0.5 + fi*0.1
	case state.NodeGold:
		g.Cryptcoins = 1 + fi*0.15
	}
	return g
}

// HarvestDamage is the damage a destroyed node deals to an active boss
// Ramp is the boss-execution bonus per boss kill
func HarvestDamage(t state.NodeType, ramp float64, bossKills int, r core.Rand) float64 {
	prof := Profile(t)
	base := core.Between(r, prof.HarvestMin, prof.HarvestMax)
	return math.Round(base * (1 + ramp*float64(bossKills)))
}

// BossReward is the payout for defeating the boss of a level index
func BossReward(index int, s *stats.Snapshot) Grant {
	i := float64(safeIndex(index))
	return Grant{
		Bits:     math.Round(parameter.BossBitsPerIndexFloat * i * s.BitGain),
		Prestige: parameter.BossPrestigeFloat * s.PrestigeGain,
		XP:       parameter.BossXPFloat * s.XPGain,
	}
}

// TokenValueBase is the bit value floor of tokens dropped at a level index
func TokenValueBase(index int) float64 {
	return math.Max(1, math.Round(4+float64(safeIndex(index))*1.2))
}

// TokenValues splits a kill into bit token values
// Gold bursts guarantee at least GoldTokenFloorBits in total
func TokenValues(t state.NodeType, index int, reduced bool, r core.Rand) []float64 {
	base := TokenValueBase(index)
	n := parameter.TokenCountMin + r.IntN(parameter.TokenCountMax-parameter.TokenCountMin+1)
	if reduced {
		n = parameter.TokenCountMin
	}

	values := make([]float64, 0, n)
	total := 0.0
	for range n {
		v := base + math.Floor(r.Float64()*base)
		values = append(values, v)
		total += v
	}

	if t == state.NodeGold && total < parameter.GoldTokenFloorBits {
		count := min(parameter.GoldTokenMaxCount, max(n, int(math.Ceil(parameter.GoldTokenFloorBits/base))))
		each := math.Ceil(parameter.GoldTokenFloorBits / float64(count))
		values = values[:0]
		for range count {
			values = append(values, each)
		}
	}
	return values
}

// TokenXP is the xp awarded for collecting a token of value v
func TokenXP(v float64) float64 {
	return math.Ceil(v * parameter.TokenXPFactorFloat)
}
