package system

import (
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/engine"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/event"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/reward"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/status"
)

// Credit applies g to the world's player and announces the grant
// Returns the number of level-ups
func Credit(w *engine.World, source string, g reward.Grant) int {
	if g.IsZero() {
		return 0
	}
	p := w.Resources.Player
	ups := reward.Apply(p, g)

	if g.Bits > 0 {
		w.Resources.Status.Floats.Get(status.BitsEarned).Add(g.Bits)
	}
	w.PushEvent(event.EventRewardGranted, &event.RewardPayload{Source: source, Grant: g})
	if ups > 0 {
		w.PushEvent(event.EventLevelUp, &event.LevelUpPayload{Level: p.Level, Levels: ups})
	}
	return ups
}
