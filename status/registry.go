// Package status holds lock-free counters shared between the tick loop and
// observers such as the server status endpoint and the terminal game's debug log.
package status

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Well-known metric keys
const (
	NodesSpawned     = "nodes.spawned"
	NodesKilled      = "nodes.killed"
	NodesDespawned   = "nodes.despawned"
	TokensCollected  = "tokens.collected"
	Clicks           = "combat.clicks"
	Crits            = "combat.crits"
	BossSpawns       = "boss.spawns"
	BossKills        = "boss.kills"
	SkillChecks      = "skillcheck.started"
	SkillCheckWins   = "skillcheck.won"
	Purchases        = "upgrade.purchases"
	Saves            = "storage.saves"
	SaveErrors       = "storage.save_errors"
	TickPanics       = "engine.tick_panics"
	Ticks            = "engine.ticks"
	EventsDropped    = "engine.events_dropped"
	Sessions         = "network.sessions"
	Connections      = "network.connections"
	Commands         = "network.commands"
	Rejected         = "network.rejected"
	BitsEarned       = "ledger.bits"
	LevelState       = "level.state"
	BossName         = "boss.name"
	SimulatedSeconds = "engine.seconds"
)

// Metrics is one typed family of named metrics
// Values are allocated on first Get and never removed, so systems may keep the pointer
type Metrics[T any] struct {
	m sync.Map // string -> *T
}

// Get returns the metric for key, allocating it on first use
func (f *Metrics[T]) Get(key string) *T {
	if v, ok := f.m.Load(key); ok {
		return v.(*T)
	}
	v, _ := f.m.LoadOrStore(key, new(T))
	return v.(*T)
}

// Range calls fn for every metric in key order
func (f *Metrics[T]) Range(fn func(key string, v *T)) {
	var keys []string
	f.m.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	slices.Sort(keys)
	for _, k := range keys {
		v, _ := f.m.Load(k)
		fn(k, v.(*T))
	}
}

// Len returns the number of metrics in the family
func (f *Metrics[T]) Len() int {
	n := 0
	f.m.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Registry holds the counters of one process
// Systems cache pointers during init; Update loops write directly to atomics
type Registry struct {
	Ints    Metrics[atomic.Int64]
	Floats  Metrics[AtomicFloat]
	Strings Metrics[AtomicString]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Snapshot copies every metric into a plain map, suitable for JSON
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.Ints.Len()+r.Floats.Len()+r.Strings.Len())
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = v.Load() })
	r.Floats.Range(func(k string, v *AtomicFloat) { out[k] = v.Get() })
	r.Strings.Range(func(k string, v *AtomicString) { out[k] = v.Load() })
	return out
}
