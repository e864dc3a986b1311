// Package state defines the persisted player aggregate and its tolerant codec.
package state

import (
	"maps"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
)

// NodeType names one of the fixed node kinds
type NodeType string

const (
	NodeRed   NodeType = "red"
	NodeBlue  NodeType = "blue"
	NodeGreen NodeType = "green"
	NodeGold  NodeType = "gold"
)

// NodeTypes in canonical order
var NodeTypes = [...]NodeType{NodeRed, NodeBlue, NodeGreen, NodeGold}

// CurrentLevel tracks the active level run
// While Active, exactly one of timer countdown (BossActive false) or boss fight holds
type CurrentLevel struct {
	Index           int     `json:"index"`
	Timer           float64 `json:"timer"`
	Active          bool    `json:"active"`
	BossActive      bool    `json:"bossActive"`
	BossHP          float64 `json:"bossHP"`
	BossMaxHP       float64 `json:"bossMaxHP"`
	BossDamageDealt float64 `json:"bossDamageDealt"`
}

// Settings are UI preferences; the simulation only reads ReducedAnimation
type Settings struct {
	CRT              bool    `json:"crt"`
	Scanlines        bool    `json:"scanlines"`
	ScreenShake      float64 `json:"screenShake"`
	BGM              float64 `json:"bgm"`
	SFX              float64 `json:"sfx"`
	Palette          string  `json:"palette"`
	ReducedAnimation bool    `json:"reducedAnimation"`
}

// Crypto is the bits → cryptcoin conversion mine
type Crypto struct {
	Deposit       float64 `json:"deposit"`
	Rate          float64 `json:"rate"`
	TimeRemaining float64 `json:"timeRemaining"`
}

// Lab accrues breach progress from deposited cryptcoins
type Lab struct {
	Progress  float64 `json:"labProgress"`
	Speed     float64 `json:"labSpeed"`
	Deposited float64 `json:"labDeposited"`
}

// Player is the single long-lived root aggregate
type Player struct {
	Bits       float64 `json:"bits"`
	Cryptcoins float64 `json:"cryptcoins"`
	Prestige   float64 `json:"prestige"`

	XP                    float64 `json:"xp"`
	Level                 int     `json:"level"`
	LevelXP               float64 `json:"levelXP"`
	XPForNext             float64 `json:"xpForNext"`
	LP                    float64 `json:"lp"`
	HighestCompletedLevel int     `json:"highestCompletedLevel"`

	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`
	Playtime  float64 `json:"playtime"`

	CurrentLevel CurrentLevel `json:"currentLevel"`

	Upgrades          map[string]int  `json:"upgrades"`
	UpgradesPurchased int             `json:"upgradesPurchased"`
	Automation        map[string]bool `json:"automation"`

	NodesDestroyed map[NodeType]int `json:"nodesDestroyed"`
	BossKills      int              `json:"bossKills"`

	CryptoUnlocked bool   `json:"cryptoUnlocked"`
	LabUnlocked    bool   `json:"labUnlocked"`
	SpawnUnlocked  bool   `json:"spawnUnlocked"`
	Crypto         Crypto `json:"crypto"`
	Lab            Lab    `json:"lab"`

	MilestoneClaims    map[string]bool `json:"milestoneClaims"`
	AchievementClaims  map[string]bool `json:"achievementClaims"`
	PaletteChangeCount int             `json:"paletteChangeCount"`

	Settings    Settings `json:"settings"`
	Version     string   `json:"version"`
	LastSavedAt int64    `json:"lastSavedAt"`
}

// LevelDuration is the countdown for a level index
func LevelDuration(index int) float64 {
	if index < 1 {
		index = 1
	}
	return parameter.BaseLevelDurationFloat + float64(index-1)*parameter.LevelDurationIncrementFloat
}

// BossBaseHP is the boss hp before the hp factor
func BossBaseHP(index int) float64 {
	if index < 1 {
		index = 1
	}
	return parameter.BaseBossHPFloat + float64(index-1)*parameter.BossHPIncrementFloat
}

// DefaultSettings returns the first-run preferences
func DefaultSettings() Settings {
	return Settings{
		CRT:         true,
		Scanlines:   true,
		ScreenShake: 50,
		BGM:         0.5,
		SFX:         0.7,
		Palette:     "default",
	}
}

// NewPlayer returns the initial state of a fresh game
func NewPlayer() Player {
	nodes := make(map[NodeType]int, len(NodeTypes))
	for _, t := range NodeTypes {
		nodes[t] = 0
	}
	return Player{
		Level:     1,
		XPForNext: parameter.InitialXPForNextFloat,
		Health:    parameter.InitialHealthFloat,
		MaxHealth: parameter.InitialHealthFloat,
		CurrentLevel: CurrentLevel{
			Index:  1,
			Timer:  LevelDuration(1),
			Active: true,
		},
		Upgrades:          make(map[string]int),
		Automation:        make(map[string]bool),
		NodesDestroyed:    nodes,
		MilestoneClaims:   make(map[string]bool),
		AchievementClaims: make(map[string]bool),
		Settings:          DefaultSettings(),
		Version:           parameter.SaveVersion,
	}
}

// Clone returns a deep copy safe to hand to another goroutine
func (p *Player) Clone() Player {
	c := *p
	c.Upgrades = maps.Clone(p.Upgrades)
	c.Automation = maps.Clone(p.Automation)
	c.NodesDestroyed = maps.Clone(p.NodesDestroyed)
	c.MilestoneClaims = maps.Clone(p.MilestoneClaims)
	c.AchievementClaims = maps.Clone(p.AchievementClaims)
	return c
}

// TotalNodesDestroyed sums every node kill counter
func (p *Player) TotalNodesDestroyed() int {
	total := 0
	for _, n := range p.NodesDestroyed {
		total += n
	}
	return total
}

// UpgradeLevel returns the purchased level, 0 when absent
func (p *Player) UpgradeLevel(id string) int {
	return p.Upgrades[id]
}
