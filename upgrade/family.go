package upgrade

import (
	"fmt"
	"math"
	"strings"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
)

// family is the template a run of tiered upgrades is generated from
type family struct {
	prefix      string
	name        string
	description string
	category    Category
	currency    Currency
	tiers       int
	baseCost    float64
	effect      Effect
	section     Section
	minLevel    int

	// Per-tier requirement growth; tier t (1-based) needs t*x
	prestigePerTier float64
	lpPerTier       float64
}

// families in catalog order; resolution folds effects in this order
var families = []family{
	{
		prefix: "damage", name: "Signal Amplifier", category: CategoryDamage, currency: CurrencyBits,
		description: "+%.0f%% base damage per level",
		tiers:       8, baseCost: 25, effect: Effect{Kind: EffectDamageBoost, A: 0.2},
	},
	{
		prefix: "swarm", name: "Swarm Resonance", category: CategoryDamage, currency: CurrencyBits,
		description: "+%.0f%% damage per live node per level",
		tiers:       4, baseCost: 300, effect: Effect{Kind: EffectNodeCountDamage, A: 0.01},
	},
	{
		prefix: "crit", name: "Fault Injector", category: CategoryCrit, currency: CurrencyBits,
		description: "+%.0f%% crit chance per level",
		tiers:       6, baseCost: 60, effect: Effect{Kind: EffectCritBoost, A: 0.01},
	},
	{
		prefix: "crit-surge", name: "Overflow Surge", category: CategoryCrit, currency: CurrencyBits,
		description: "+%.0f%% crit multiplier per level",
		tiers:       4, baseCost: 150, effect: Effect{Kind: EffectCritMultiplier, A: 0.1},
	},
	{
		prefix: "economy", name: "Bit Refinery", category: CategoryEconomy, currency: CurrencyBits,
		description: "+%.0f%% bit gain per level",
		tiers:       8, baseCost: 40, effect: Effect{Kind: EffectEconomyBoost, A: 0.1},
	},
	{
		prefix: "insight", name: "Insight Cache", category: CategoryEconomy, currency: CurrencyBits,
		description: "+%.0f%% xp gain per level",
		tiers:       5, baseCost: 80, effect: Effect{Kind: EffectXPBoost, A: 0.05},
	},
	{
		prefix: "faster-nodes", name: "Faster Nodes", category: CategorySpawn, currency: CurrencyPrestige,
		description: "+%.1f node cap and faster spawns per level",
		tiers:       5, baseCost: 10, section: SectionFasterNodes,
		effect: Effect{Kind: EffectSpawnControl, A: parameter.SpawnControlNodesPerLevelFloat, B: 0.02},
	},
	{
		prefix: "area", name: "Damage Area", category: CategoryArea, currency: CurrencyBits,
		description: "+%.0fpx pointer size per level",
		tiers:       6, baseCost: 100, effect: Effect{Kind: EffectAreaBoost, A: 2},
	},
	{
		prefix: "point-speed", name: "Point Speed", category: CategorySpeed, currency: CurrencyBits,
		description: "-%.0f%% attack interval per level",
		tiers:       6, baseCost: 120, effect: Effect{Kind: EffectSpeedBoost, A: 0.03},
	},
	{
		prefix: "point-magnet", name: "Point Magnet", category: CategoryCollection, currency: CurrencyBits,
		description: "+%.0fpx collection reach per level",
		tiers:       5, baseCost: 500, minLevel: parameter.CollectionSectionMinLevel, section: SectionPointMagnet,
		effect: Effect{Kind: EffectCollectBoost, A: 4, B: 0.5},
	},
	{
		prefix: "boss-execution", name: "Boss Execution", category: CategoryBoss, currency: CurrencyBits,
		description: "+%.0f%% boss damage per boss kill per level",
		tiers:       4, baseCost: 5000, effect: Effect{Kind: EffectBossExecution, A: 0.02},
	},
	{
		prefix: "anomaly", name: "Anomaly Lattice", category: CategoryAnomaly, currency: CurrencyPrestige,
		description:     "+%.0f%% prestige gain per level",
		tiers:           6, baseCost: 10, effect: Effect{Kind: EffectPrestigeBoost, A: 0.05},
		prestigePerTier: parameter.AnomalyPrestigePerTier, lpPerTier: parameter.AnomalyLPPerTier,
	},
}

// cryptoSpeedUpgrade is a one-shot mine accelerator
type cryptoSpeedUpgrade struct {
	id    string
	label string
	bonus float64
	cost  float64
}

var cryptoSpeedUpgrades = []cryptoSpeedUpgrade{
	{id: "crypto-speed-10", label: "Flux Heatsink", bonus: 10, cost: 10000},
	{id: "crypto-speed-100", label: "Dual-Core Converter", bonus: 100, cost: 50000},
	{id: "crypto-speed-500", label: "Quantum Loom", bonus: 500, cost: 1_000_000},
}

// generate expands the family into its tiers with carried-over base costs
func (f family) generate() []Upgrade {
	out := make([]Upgrade, 0, f.tiers)
	base := f.baseCost
	prev := ""
	for t := 1; t <= f.tiers; t++ {
		u := Upgrade{
			ID:          fmt.Sprintf("%s-v%d", f.prefix, t),
			Name:        fmt.Sprintf("%s %s", f.name, roman(t)),
			Description: f.describe(),
			Category:    f.category,
			Currency:    f.currency,
			Tier:        t,
			MaxLevel:    parameter.UpgradeTierMaxLevel,
			BaseCost:    base,
			Growth:      parameter.UpgradeLevelGrowthFloat,
			Requirements: Requirements{
				MinPrestige: f.prestigePerTier * float64(t),
				MinLP:       f.lpPerTier * float64(t),
				MinLevel:    f.minLevel,
				Section:     f.section,
				Previous:    prev,
			},
			Effect: f.effect,
		}
		out = append(out, u)

		prev = u.ID
		base = math.Ceil(u.Cost(u.MaxLevel) * parameter.UpgradeTierGrowthFloat)
	}
	return out
}

func (f family) describe() string {
	v := f.effect.A
	if strings.Contains(f.description, "%%") {
		v *= 100
	}
	return fmt.Sprintf(f.description, v)
}

func (c cryptoSpeedUpgrade) upgrade() Upgrade {
	return Upgrade{
		ID:          c.id,
		Name:        c.label,
		Description: fmt.Sprintf("+%.0f cryptcoin conversion rate", c.bonus),
		Category:    CategoryCrypto,
		Currency:    CurrencyBits,
		Tier:        1,
		MaxLevel:    parameter.CryptoSpeedUpgradeMaxLevel,
		BaseCost:    c.cost,
		Growth:      parameter.UpgradeLevelGrowthFloat,
		Requirements: Requirements{
			Section: SectionCrypto,
		},
		Effect: Effect{Kind: EffectCryptoSynergy, A: c.bonus},
	}
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// roman renders n as a roman numeral, used for tier names
func roman(n int) string {
	var b strings.Builder
	for _, r := range romanTable {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}
