package progress

import (
	"fmt"
	"strings"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/reward"
)

// milestone ladders per node counter; each rung pays more
var milestoneLadders = []struct {
	name    string
	metric  Metric
	targets []float64
	rewards []reward.Grant
}{
	{"red", MetricNodesRed, []float64{500, 2000, 10000, 50000},
		[]reward.Grant{{Bits: 500}, {Bits: 2500}, {Bits: 15000}, {Bits: 100000}}},
	{"blue", MetricNodesBlue, []float64{500, 2000, 10000, 50000},
		[]reward.Grant{{Bits: 500}, {Bits: 2500}, {Bits: 20000}, {Bits: 150000}}},
	{"green", MetricNodesGreen, []float64{250, 1000, 5000},
		[]reward.Grant{{Cryptcoins: 10}, {Cryptcoins: 40}, {Cryptcoins: 200}}},
	{"gold", MetricNodesGold, []float64{100, 500, 2500},
		[]reward.Grant{{Cryptcoins: 15}, {Cryptcoins: 50}, {Cryptcoins: 300}}},
	{"boss", MetricBossKills, []float64{5, 25, 100, 500},
		[]reward.Grant{{Prestige: 5}, {Prestige: 25}, {Prestige: 100}, {Prestige: 600}}},
}

var achievementList = []Goal{
	{ID: "first-node", Label: "First Contact", Metric: MetricNodesTotal, Target: 1, Reward: reward.Grant{Bits: 25}},
	{ID: "hundred-nodes", Label: "Node Harvester", Metric: MetricNodesTotal, Target: 100, Reward: reward.Grant{Bits: 250}},
	{ID: "thousand-nodes", Label: "Node Reaper", Metric: MetricNodesTotal, Target: 1000, Reward: reward.Grant{Bits: 2500, Prestige: 1}},
	{ID: "hundred-thousand-nodes", Label: "Slayer Streak", Metric: MetricNodesTotal, Target: 100000, Reward: reward.Grant{Prestige: 50}},
	{ID: "level-5", Label: "Warming Up", Metric: MetricLevel, Target: 5, Reward: reward.Grant{Bits: 200}},
	{ID: "level-15", Label: "Seasoned Operator", Metric: MetricLevel, Target: 15, Reward: reward.Grant{Bits: 2000, LP: 1}},
	{ID: "level-50", Label: "Veteran Signal", Metric: MetricLevel, Target: 50, Reward: reward.Grant{Prestige: 10, LP: 3}},
	{ID: "stage-10", Label: "Deep Runner", Metric: MetricHighestLevel, Target: 10, Reward: reward.Grant{Prestige: 5}},
	{ID: "boss-1", Label: "Boss Breaker", Metric: MetricBossKills, Target: 1, Reward: reward.Grant{Bits: 300}},
	{ID: "prestige-10", Label: "Prestige Surge", Metric: MetricPrestige, Target: 10, Reward: reward.Grant{Bits: 1000}},
	{ID: "prestige-1000", Label: "Prestige Storm", Metric: MetricPrestige, Target: 1000, Reward: reward.Grant{Cryptcoins: 500}},
	{ID: "upgrade-50", Label: "Tinkerer", Metric: MetricUpgrades, Target: 50, Reward: reward.Grant{Bits: 1500}},
	{ID: "upgrade-200", Label: "Architect", Metric: MetricUpgrades, Target: 200, Reward: reward.Grant{Prestige: 5}},
	{ID: "bit-hoard", Label: "Bit Hoard", Metric: MetricBits, Target: 50000, Reward: reward.Grant{Cryptcoins: 25}},
	{ID: "bit-vault", Label: "Bit Vault", Metric: MetricBits, Target: 10_000_000, Reward: reward.Grant{Prestige: 25}},
	{ID: "crypto-hoard", Label: "Crypto Hoard", Metric: MetricCryptcoins, Target: 500, Reward: reward.Grant{Prestige: 3}},
	{ID: "playtime-1h", Label: "Signal Keeper", Metric: MetricPlaytime, Target: 3600, Reward: reward.Grant{Bits: 5000}},
	{ID: "playtime-24h", Label: "Ultra-Long Run", Metric: MetricPlaytime, Target: 86400, Reward: reward.Grant{Prestige: 20}},
}

// DefaultGoals returns the milestone ladders followed by the achievements
func DefaultGoals() []Goal {
	var goals []Goal
	for _, l := range milestoneLadders {
		for i, target := range l.targets {
			goals = append(goals, Goal{
				ID:     fmt.Sprintf("%s-%.0f", l.name, target),
				Kind:   KindMilestone,
				Label:  fmt.Sprintf("%s Hunter %s", strings.ToUpper(l.name), rung(i)),
				Metric: l.metric,
				Target: target,
				Reward: l.rewards[i],
			})
		}
	}
	for _, a := range achievementList {
		a.Kind = KindAchievement
		goals = append(goals, a)
	}
	return goals
}

// NewDefaultTracker returns a tracker over DefaultGoals
func NewDefaultTracker() *Tracker {
	return NewTracker(DefaultGoals())
}

func rung(i int) string {
	return [...]string{"I", "II", "III", "IV", "V", "VI"}[i%6]
}
