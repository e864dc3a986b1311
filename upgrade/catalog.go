package upgrade

import (
	"fmt"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/state"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/stats"
)

// Catalog is the generated, immutable set of upgrades and automation nodes
// Safe for concurrent reads
type Catalog struct {
	upgrades   []Upgrade
	index      map[string]int
	automation []AutomationNode
	autoIndex  map[string]int
}

// Generate builds the catalog. Output depends only on the compiled tables,
// so ids and costs are stable across runs and saves stay valid
func Generate() *Catalog {
	c := &Catalog{
		index:     make(map[string]int),
		autoIndex: make(map[string]int),
	}

	for _, f := range families {
		for _, u := range f.generate() {
			c.add(u)
		}
	}
	for _, cs := range cryptoSpeedUpgrades {
		c.add(cs.upgrade())
	}

	c.automation = append(c.automation, automationNodes...)
	for i, n := range c.automation {
		c.autoIndex[n.ID] = i
	}
	return c
}

func (c *Catalog) add(u Upgrade) {
	if _, dup := c.index[u.ID]; dup {
		panic(fmt.Sprintf("upgrade: duplicate id %q", u.ID))
	}
	c.index[u.ID] = len(c.upgrades)
	c.upgrades = append(c.upgrades, u)
}

// All returns the upgrades in catalog order
func (c *Catalog) All() []Upgrade {
	out := make([]Upgrade, len(c.upgrades))
	copy(out, c.upgrades)
	return out
}

// Len returns the number of upgrades
func (c *Catalog) Len() int { return len(c.upgrades) }

// Get looks up an upgrade by id
func (c *Catalog) Get(id string) (Upgrade, bool) {
	i, ok := c.index[id]
	if !ok {
		return Upgrade{}, false
	}
	return c.upgrades[i], true
}

// ByCategory returns upgrades of one category in catalog order
func (c *Catalog) ByCategory(cat Category) []Upgrade {
	var out []Upgrade
	for _, u := range c.upgrades {
		if u.Category == cat {
			out = append(out, u)
		}
	}
	return out
}

// MaxLevel implements state.Catalog
func (c *Catalog) MaxLevel(id string) (int, bool) {
	u, ok := c.Get(id)
	return u.MaxLevel, ok
}

// HasAutomation implements state.Catalog
func (c *Catalog) HasAutomation(id string) bool {
	_, ok := c.autoIndex[id]
	return ok
}

// MeetsRequirements reports whether the non-currency gates of u are satisfied
// A maxed upgrade always meets its requirements
func (c *Catalog) MeetsRequirements(u Upgrade, p *state.Player) bool {
	if p.Upgrades[u.ID] >= u.MaxLevel {
		return true
	}
	r := u.Requirements
	if !sectionUnlocked(p, r.Section) {
		return false
	}
	if p.Prestige < r.MinPrestige || p.LP < r.MinLP || p.Level < r.MinLevel {
		return false
	}
	if r.Previous != "" {
		prev, ok := c.Get(r.Previous)
		if !ok || p.Upgrades[prev.ID] < prev.MaxLevel {
			return false
		}
	}
	return true
}

// NextCost returns the price of the next level, false when maxed or unknown
func (c *Catalog) NextCost(id string, p *state.Player) (float64, bool) {
	u, ok := c.Get(id)
	if !ok {
		return 0, false
	}
	level := p.Upgrades[id]
	if level >= u.MaxLevel {
		return 0, false
	}
	return u.Cost(level), true
}

// CanPurchase runs every purchase check without mutating p
func (c *Catalog) CanPurchase(id string, p *state.Player) (Upgrade, float64, error) {
	u, ok := c.Get(id)
	if !ok {
		return Upgrade{}, 0, fmt.Errorf("%w: %q", ErrUnknownUpgrade, id)
	}
	level := p.Upgrades[id]
	if level >= u.MaxLevel {
		return u, 0, ErrMaxLevel
	}
	if !c.MeetsRequirements(u, p) {
		return u, 0, ErrRequirements
	}
	cost := u.Cost(level)
	if Balance(p, u.Currency) < cost {
		return u, cost, ErrInsufficientFunds
	}
	return u, cost, nil
}

// Purchase buys one level of id. All checks run before any mutation, so a
// failed purchase leaves p untouched
func (c *Catalog) Purchase(id string, p *state.Player) (Receipt, error) {
	u, cost, err := c.CanPurchase(id, p)
	if err != nil {
		return Receipt{}, err
	}

	debit(p, u.Currency, cost)
	if p.Upgrades == nil {
		p.Upgrades = make(map[string]int)
	}
	p.Upgrades[id]++
	p.UpgradesPurchased++

	return Receipt{Upgrade: u, Cost: cost, Level: p.Upgrades[id]}, nil
}

// Revert undoes the level gained by r without refunding its cost
func (c *Catalog) Revert(r Receipt, p *state.Player) {
	level := p.Upgrades[r.Upgrade.ID]
	if level <= 0 {
		return
	}
	if level == 1 {
		delete(p.Upgrades, r.Upgrade.ID)
		return
	}
	p.Upgrades[r.Upgrade.ID] = level - 1
}

// Resolve recomputes every derived stat from scratch: base values, level
// pressure, purchased upgrades in catalog order, automation, then clamps.
// Purchase order never matters
func (c *Catalog) Resolve(p *state.Player) stats.Snapshot {
	s := stats.Base()
	s.ApplyLevelPressure(p.CurrentLevel.Index)

	for _, u := range c.upgrades {
		if level := p.Upgrades[u.ID]; level > 0 {
			Apply(u.Effect, &s, min(level, u.MaxLevel))
		}
	}

	for _, n := range c.automation {
		if p.Automation[n.ID] {
			Apply(Effect{Kind: EffectAutoInterval, A: n.Multiplier}, &s, 1)
		}
	}

	s.Finalize()
	return s
}
