package reward

import (
	"math"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/state"
)

// Grant is a bundle of currencies credited together
type Grant struct {
	Bits       float64 `json:"bits,omitempty"`
	XP         float64 `json:"xp,omitempty"`
	Cryptcoins float64 `json:"cryptcoins,omitempty"`
	Prestige   float64 `json:"prestige,omitempty"`
	LP         float64 `json:"lp,omitempty"`
}

// IsZero reports whether the grant credits nothing
func (g Grant) IsZero() bool {
	return g == Grant{}
}

// Add returns the sum of two grants
func (g Grant) Add(o Grant) Grant {
	return Grant{
		Bits:       g.Bits + o.Bits,
		XP:         g.XP + o.XP,
		Cryptcoins: g.Cryptcoins + o.Cryptcoins,
		Prestige:   g.Prestige + o.Prestige,
		LP:         g.LP + o.LP,
	}
}

// Apply credits g to the player and returns the number of level-ups
// Negative or non-finite components are ignored
func Apply(p *state.Player, g Grant) int {
	p.Bits += credit(g.Bits)
	p.Cryptcoins += credit(g.Cryptcoins)
	p.Prestige += credit(g.Prestige)
	p.LP += credit(g.LP)
	return GainXP(p, g.XP)
}

func credit(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// GainXP adds xp and runs the level-up loop, which may fire several times
// for one grant. Returns the number of level-ups
func GainXP(p *state.Player, amount float64) int {
	amount = credit(amount)
	if amount == 0 {
		return 0
	}
	p.XP += amount
	p.LevelXP += amount

	if p.XPForNext < 1 {
		p.XPForNext = 1
	}

	ups := 0
	for p.LevelXP >= p.XPForNext {
		p.LevelXP -= p.XPForNext
		p.Level++
		p.LP += parameter.LPPerLevel
		p.XPForNext *= parameter.XPGrowthFloat
		p.MaxHealth += parameter.HealthPerLevelFloat
		p.Health = p.MaxHealth
		ups++
	}
	return ups
}
