package event

// EventType represents the type of game event
type EventType int

const (
	// EventNone is reserved; fsm transitions with Event 0 are evaluated every tick
	EventNone EventType = iota

	// === Entity Event ===

	// EventNodeSpawned signals a new node entered the field
	// Trigger: SpawnSystem | Consumer: metrics | Payload: *NodePayload
	EventNodeSpawned

	// EventNodeHit signals a strike landed on a node without killing it
	// Trigger: CombatSystem | Consumer: audio | Payload: *HitPayload
	EventNodeHit

	// EventNodeKilled signals a node reached zero hp
	// Trigger: CombatSystem | Consumer: metrics, audio | Payload: *NodeKilledPayload
	EventNodeKilled

	// EventNodeDespawned signals a node left the field unkilled
	// Trigger: MotionSystem | Consumer: metrics | Payload: *NodePayload
	EventNodeDespawned

	// EventTokenCollected signals the pointer picked up a bit token
	// Trigger: TokenSystem | Consumer: audio | Payload: *TokenPayload
	EventTokenCollected

	// === Level Event ===

	// EventLevelStart requests a fresh level run at the current index
	// Trigger: Session (Continue, Replay, JumpToLevel) | Consumer: LevelSystem fsm | Payload: nil
	EventLevelStart

	// EventLevelStarted signals a level reset completed
	// Trigger: LevelSystem | Consumer: render hook | Payload: *LevelPayload
	EventLevelStarted

	// EventBossSpawned signals the countdown ended and the boss entered
	// Trigger: LevelSystem | Consumer: metrics, audio | Payload: *BossPayload
	EventBossSpawned

	// EventBossDamaged signals boss hp decreased
	// Trigger: CombatSystem | Consumer: audio | Payload: *BossDamagePayload
	EventBossDamaged

	// EventBossDefeated signals the boss died and the level completed
	// Trigger: LevelSystem | Consumer: metrics, audio, render hook | Payload: *BossDefeatedPayload
	EventBossDefeated

	// === Ledger Event ===

	// EventRewardGranted signals currencies were credited
	// Trigger: any system applying a reward.Grant | Consumer: render hook | Payload: *RewardPayload
	EventRewardGranted

	// EventLevelUp signals the xp loop raised the player level
	// Trigger: Session after any grant | Consumer: audio | Payload: *LevelUpPayload
	EventLevelUp

	// EventUpgradePurchased signals an upgrade level was bought
	// Trigger: Session.AttemptPurchase | Consumer: render hook | Payload: *UpgradePayload
	EventUpgradePurchased

	// EventUpgradeReverted signals a failed anomaly check removed a level
	// Trigger: skill check failure | Consumer: render hook | Payload: *UpgradePayload
	EventUpgradeReverted

	// EventProgressCheck fires once per second of simulated time
	// Trigger: ProgressSystem | Consumer: render hook | Payload: *ProgressPayload
	EventProgressCheck

	// === Skill Check Event ===

	// EventSkillCheckStarted signals a minigame was armed by a purchase
	// Trigger: Session.AttemptPurchase | Consumer: audio, metrics | Payload: *SkillCheckPayload
	EventSkillCheckStarted

	// EventSkillCheckResolved signals a minigame ended
	// Trigger: SkillCheckSystem, Session.ResolveSkillCheck | Consumer: audio, metrics | Payload: *SkillCheckPayload
	EventSkillCheckResolved

	// === Economy Event ===

	// EventLabBreach signals the lab reached its threshold and paid out
	// Trigger: Session.BreachLab | Consumer: audio | Payload: *RewardPayload
	EventLabBreach

	// === Session Event ===

	// EventGameReset signals a new game or a load replaced the player
	// Trigger: Session.NewGame, Session.Load | Consumer: every system | Payload: nil
	EventGameReset

	// EventSaved signals a save document was produced
	// Trigger: Session.Save | Consumer: metrics | Payload: *SavedPayload
	EventSaved
)

var eventNames = map[EventType]string{
	EventNone:               "none",
	EventNodeSpawned:        "node_spawned",
	EventNodeHit:            "node_hit",
	EventNodeKilled:         "node_killed",
	EventNodeDespawned:      "node_despawned",
	EventTokenCollected:     "token_collected",
	EventLevelStart:         "level_start",
	EventLevelStarted:       "level_started",
	EventBossSpawned:        "boss_spawned",
	EventBossDamaged:        "boss_damaged",
	EventBossDefeated:       "boss_defeated",
	EventRewardGranted:      "reward_granted",
	EventLevelUp:            "level_up",
	EventUpgradePurchased:   "upgrade_purchased",
	EventUpgradeReverted:    "upgrade_reverted",
	EventProgressCheck:      "progress_check",
	EventSkillCheckStarted:  "skill_check_started",
	EventSkillCheckResolved: "skill_check_resolved",
	EventLabBreach:          "lab_breach",
	EventGameReset:          "game_reset",
	EventSaved:              "saved",
}

// String returns the snake_case event name used in logs and on the wire
func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "unknown"
}

// GameEvent is a single queued event stamped with the frame that produced it
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
