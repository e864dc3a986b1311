// Package progress tracks milestones and achievements over persistent
// player counters. Reaching a goal never grants anything by itself; rewards
// are paid only by an explicit, one-time claim.
package progress

import (
	"errors"
	"fmt"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/reward"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/state"
)

// Claim failures
var (
	ErrUnknownGoal    = errors.New("unknown goal")
	ErrNotReady       = errors.New("goal not reached")
	ErrAlreadyClaimed = errors.New("already claimed")
)

// Metric selects the counter a goal measures
type Metric uint8

const (
	MetricNodesRed Metric = iota
	MetricNodesBlue
	MetricNodesGreen
	MetricNodesGold
	MetricNodesTotal
	MetricBossKills
	MetricLevel
	MetricHighestLevel
	MetricPrestige
	MetricUpgrades
	MetricBits
	MetricCryptcoins
	MetricPlaytime
)

// Value reads the metric from p
func (m Metric) Value(p *state.Player) float64 {
	switch m {
	case MetricNodesRed:
		return float64(p.NodesDestroyed[state.NodeRed])
	case MetricNodesBlue:
		return float64(p.NodesDestroyed[state.NodeBlue])
	case MetricNodesGreen:
		return float64(p.NodesDestroyed[state.NodeGreen])
	case MetricNodesGold:
		return float64(p.NodesDestroyed[state.NodeGold])
	case MetricNodesTotal:
		return float64(p.TotalNodesDestroyed())
	case MetricBossKills:
		return float64(p.BossKills)
	case MetricLevel:
		return float64(p.Level)
	case MetricHighestLevel:
		return float64(p.HighestCompletedLevel)
	case MetricPrestige:
		return p.Prestige
	case MetricUpgrades:
		return float64(p.UpgradesPurchased)
	case MetricBits:
		return p.Bits
	case MetricCryptcoins:
		return p.Cryptcoins
	case MetricPlaytime:
		return p.Playtime
	}
	return 0
}

// Kind separates the two claim ledgers
type Kind uint8

const (
	KindMilestone Kind = iota
	KindAchievement
)

func (k Kind) String() string {
	if k == KindAchievement {
		return "achievement"
	}
	return "milestone"
}

// Goal is a read-only tracker with a reward
type Goal struct {
	ID     string       `json:"id"`
	Kind   Kind         `json:"kind"`
	Label  string       `json:"label"`
	Metric Metric       `json:"metric"`
	Target float64      `json:"target"`
	Reward reward.Grant `json:"reward"`
}

// Status is a goal's progress for one player
type Status struct {
	Goal    Goal    `json:"goal"`
	Current float64 `json:"current"`
	Ready   bool    `json:"ready"`
	Claimed bool    `json:"claimed"`
}

// ClaimResult reports a paid claim
type ClaimResult struct {
	Goal     Goal
	LevelUps int
}

// Tracker holds both goal ladders; immutable after construction
type Tracker struct {
	goals []Goal
	index map[string]int
}

// NewTracker builds a tracker over the given goals
func NewTracker(goals []Goal) *Tracker {
	t := &Tracker{index: make(map[string]int, len(goals))}
	for _, g := range goals {
		key := goalKey(g.Kind, g.ID)
		if _, dup := t.index[key]; dup {
			panic(fmt.Sprintf("progress: duplicate %s %q", g.Kind, g.ID))
		}
		t.index[key] = len(t.goals)
		t.goals = append(t.goals, g)
	}
	return t
}

func goalKey(k Kind, id string) string { return k.String() + ":" + id }

// Goals returns goals of one kind in declaration order
func (t *Tracker) Goals(k Kind) []Goal {
	var out []Goal
	for _, g := range t.goals {
		if g.Kind == k {
			out = append(out, g)
		}
	}
	return out
}

// Lookup finds a goal by kind and id
func (t *Tracker) Lookup(k Kind, id string) (Goal, bool) {
	i, ok := t.index[goalKey(k, id)]
	if !ok {
		return Goal{}, false
	}
	return t.goals[i], true
}

func claims(p *state.Player, k Kind) map[string]bool {
	if k == KindAchievement {
		if p.AchievementClaims == nil {
			p.AchievementClaims = make(map[string]bool)
		}
		return p.AchievementClaims
	}
	if p.MilestoneClaims == nil {
		p.MilestoneClaims = make(map[string]bool)
	}
	return p.MilestoneClaims
}

// StatusOf evaluates a goal against p
func StatusOf(g Goal, p *state.Player) Status {
	cur := g.Metric.Value(p)
	var claimed bool
	if g.Kind == KindAchievement {
		claimed = p.AchievementClaims[g.ID]
	} else {
		claimed = p.MilestoneClaims[g.ID]
	}
	return Status{Goal: g, Current: cur, Ready: cur >= g.Target, Claimed: claimed}
}

// Statuses evaluates every goal of a kind
func (t *Tracker) Statuses(k Kind, p *state.Player) []Status {
	goals := t.Goals(k)
	out := make([]Status, len(goals))
	for i, g := range goals {
		out[i] = StatusOf(g, p)
	}
	return out
}

// Claimable returns the ids of goals that are reached and unclaimed
func (t *Tracker) Claimable(k Kind, p *state.Player) []string {
	var ids []string
	for _, s := range t.Statuses(k, p) {
		if s.Ready && !s.Claimed {
			ids = append(ids, s.Goal.ID)
		}
	}
	return ids
}

// Claim pays a reached goal exactly once
func (t *Tracker) Claim(k Kind, id string, p *state.Player) (ClaimResult, error) {
	g, ok := t.Lookup(k, id)
	if !ok {
		return ClaimResult{}, fmt.Errorf("%w: %s %q", ErrUnknownGoal, k, id)
	}
	st := StatusOf(g, p)
	if st.Claimed {
		return ClaimResult{Goal: g}, ErrAlreadyClaimed
	}
	if !st.Ready {
		return ClaimResult{Goal: g}, ErrNotReady
	}

	claims(p, k)[id] = true
	ups := reward.Apply(p, g.Reward)
	return ClaimResult{Goal: g, LevelUps: ups}, nil
}

// ClaimAll claims every ready goal of a kind
func (t *Tracker) ClaimAll(k Kind, p *state.Player) []ClaimResult {
	var out []ClaimResult
	for _, id := range t.Claimable(k, p) {
		if res, err := t.Claim(k, id, p); err == nil {
			out = append(out, res)
		}
	}
	return out
}
