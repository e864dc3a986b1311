package audio

import (
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/event"
)

// Cue identifies a short synthesized sound
type Cue uint8

const (
	CueNone Cue = iota
	CueHit
	CueNodeDie
	CueBossDie
	CueBits
	CueLevelUp
	CueFail
	cueCount
)

var cueNames = [cueCount]string{"none", "hit", "node_die", "boss_die", "bits", "level_up", "fail"}

func (c Cue) String() string {
	if c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// CueEvents are the event types that map to a cue
var CueEvents = []event.EventType{
	event.EventNodeHit,
	event.EventNodeKilled,
	event.EventBossDefeated,
	event.EventTokenCollected,
	event.EventLevelUp,
	event.EventSkillCheckResolved,
}

// CueFor maps an event to its cue
func CueFor(ev event.GameEvent) Cue {
	switch ev.Type {
	case event.EventNodeHit:
		return CueHit
	case event.EventNodeKilled:
		return CueNodeDie
	case event.EventBossDefeated:
		return CueBossDie
	case event.EventTokenCollected:
		return CueBits
	case event.EventLevelUp:
		return CueLevelUp
	case event.EventSkillCheckResolved:
		if p, ok := ev.Payload.(*event.SkillCheckPayload); ok && p.Success {
			return CueLevelUp
		}
		return CueFail
	}
	return CueNone
}
