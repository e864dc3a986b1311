package event

import (
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/core"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/reward"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/state"
)

// NodePayload identifies a node entity and its kind
type NodePayload struct {
	Entity core.Entity    `msgpack:"entity" json:"entity"`
	Type   state.NodeType `msgpack:"type" json:"type"`
}

// HitPayload describes one strike
type HitPayload struct {
	Entity core.Entity `msgpack:"entity" json:"entity"`
	Damage float64     `msgpack:"damage" json:"damage"`
	Crit   bool        `msgpack:"crit" json:"crit"`
}

// NodeKilledPayload describes a kill and what it paid
type NodeKilledPayload struct {
	Entity  core.Entity    `msgpack:"entity" json:"entity"`
	Type    state.NodeType `msgpack:"type" json:"type"`
	Reward  reward.Grant   `msgpack:"reward" json:"reward"`
	Tokens  int            `msgpack:"tokens" json:"tokens"`
	Harvest float64        `msgpack:"harvest" json:"harvest"` // damage dealt to an active boss
}

// TokenPayload describes a collected bit token
type TokenPayload struct {
	Entity core.Entity `msgpack:"entity" json:"entity"`
	Value  float64     `msgpack:"value" json:"value"`
}

// LevelPayload carries the level index a run started at
type LevelPayload struct {
	Index int `msgpack:"index" json:"index"`
}

// BossPayload describes a spawned boss
type BossPayload struct {
	Entity core.Entity `msgpack:"entity" json:"entity"`
	Name   string      `msgpack:"name" json:"name"`
	Index  int         `msgpack:"index" json:"index"`
	HP     float64     `msgpack:"hp" json:"hp"`
}

// BossDamagePayload describes boss damage from a strike or a harvest
type BossDamagePayload struct {
	Damage  float64 `msgpack:"damage" json:"damage"`
	Harvest bool    `msgpack:"harvest" json:"harvest"`
	HP      float64 `msgpack:"hp" json:"hp"`
}

// BossDefeatedPayload describes a completed level
type BossDefeatedPayload struct {
	Name   string       `msgpack:"name" json:"name"`
	Index  int          `msgpack:"index" json:"index"`
	Reward reward.Grant `msgpack:"reward" json:"reward"`
}

// RewardPayload wraps a credited grant
type RewardPayload struct {
	Source string       `msgpack:"source" json:"source"`
	Grant  reward.Grant `msgpack:"grant" json:"grant"`
}

// LevelUpPayload carries the new player level
type LevelUpPayload struct {
	Level  int `msgpack:"level" json:"level"`
	Levels int `msgpack:"levels" json:"levels"`
}

// UpgradePayload describes a purchase or a revert
type UpgradePayload struct {
	ID    string  `msgpack:"id" json:"id"`
	Level int     `msgpack:"level" json:"level"`
	Cost  float64 `msgpack:"cost" json:"cost"`
}

// ProgressPayload lists the goals that became claimable
type ProgressPayload struct {
	Milestones   []string `msgpack:"milestones" json:"milestones"`
	Achievements []string `msgpack:"achievements" json:"achievements"`
}

// SkillCheckPayload describes a minigame start or its outcome
type SkillCheckPayload struct {
	Label      string `msgpack:"label" json:"label"`
	Difficulty string `msgpack:"difficulty" json:"difficulty"`
	Success    bool   `msgpack:"success" json:"success"`
}

// SavedPayload describes a produced save document
type SavedPayload struct {
	Bytes int `msgpack:"bytes" json:"bytes"`
}
