// Package upgrade generates the deterministic upgrade catalog and resolves
// purchased upgrades into a stats snapshot.
package upgrade

import (
	"errors"
	"math"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/state"
)

// Category groups upgrades for filtering and skill-check tuning
type Category string

const (
	CategoryDamage     Category = "damage"
	CategoryCrit       Category = "crit"
	CategoryEconomy    Category = "economy"
	CategorySpawn      Category = "spawn-control"
	CategoryArea       Category = "area"
	CategorySpeed      Category = "speed"
	CategoryCollection Category = "collection"
	CategoryBoss       Category = "boss"
	CategoryAnomaly    Category = "anomaly"
	CategoryCrypto     Category = "crypto"
)

// Currency names the balance an upgrade is paid from
type Currency string

const (
	CurrencyBits       Currency = "bits"
	CurrencyCryptcoins Currency = "cryptcoins"
	CurrencyPrestige   Currency = "prestige"
)

// Section is a gated shop section that must be unlocked before its upgrades can be bought
type Section uint8

const (
	SectionNone Section = iota
	SectionFasterNodes
	SectionPointMagnet
	SectionCrypto
)

// Purchase failures
var (
	ErrUnknownUpgrade    = errors.New("unknown upgrade")
	ErrMaxLevel          = errors.New("upgrade at max level")
	ErrRequirements      = errors.New("upgrade requirements not met")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Requirements gate a purchase beyond its currency cost
type Requirements struct {
	MinPrestige float64 `json:"minPrestige,omitempty"`
	MinLP       float64 `json:"minLP,omitempty"`
	MinLevel    int     `json:"minLevel,omitempty"`
	Section     Section `json:"section,omitempty"`
	// Previous tier id that must be maxed first
	Previous string `json:"previous,omitempty"`
}

// Upgrade is an immutable catalog entry
type Upgrade struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Category     Category     `json:"category"`
	Currency     Currency     `json:"currency"`
	Tier         int          `json:"tier"`
	MaxLevel     int          `json:"maxLevel"`
	BaseCost     float64      `json:"baseCost"`
	Growth       float64      `json:"growth"`
	Requirements Requirements `json:"requirements"`
	Effect       Effect       `json:"effect"`
}

// Cost is the price of buying level+1 while at level
func (u Upgrade) Cost(level int) float64 {
	if level < 0 {
		level = 0
	}
	return math.Ceil(u.BaseCost*math.Pow(u.Growth, float64(level)) - costEpsilon)
}

// costEpsilon absorbs float noise so 10*1.1 prices at 11, not 12
const costEpsilon = 1e-9

// Receipt records a completed purchase so it can be reverted
type Receipt struct {
	Upgrade Upgrade
	Cost    float64
	Level   int // level after purchase
}

// Balance returns the player's balance in currency c
func Balance(p *state.Player, c Currency) float64 {
	switch c {
	case CurrencyCryptcoins:
		return p.Cryptcoins
	case CurrencyPrestige:
		return p.Prestige
	default:
		return p.Bits
	}
}

// debit subtracts amount from the matching balance
func debit(p *state.Player, c Currency, amount float64) {
	switch c {
	case CurrencyCryptcoins:
		p.Cryptcoins -= amount
	case CurrencyPrestige:
		p.Prestige -= amount
	default:
		p.Bits -= amount
	}
}

// sectionUnlocked reports whether the player has opened a gated section
func sectionUnlocked(p *state.Player, s Section) bool {
	switch s {
	case SectionFasterNodes:
		return p.SpawnUnlocked
	case SectionCrypto:
		return p.CryptoUnlocked
	case SectionPointMagnet, SectionNone:
		return true
	}
	return false
}
