package parameter

// Skill check trigger
const (
	SkillCheckBaseChanceFloat    = 0.18
	SkillCheckAnomalyBonusFloat  = 0.12
	SkillCheckBossBonusFloat     = 0.08
	SkillCheckSpeedPerLevelFloat = 0.02
	SkillCheckSpeedCapFloat      = 0.8
	SkillCheckWindowShrinkFloat  = 0.004
	SkillCheckRewardXPBaseFloat  = 15.0
)

// SkillCheckDifficulty is one row of the difficulty table
type SkillCheckDifficulty struct {
	Name      string
	Duration  float64 // seconds
	BaseSpeed float64 // track widths per second
	Window    float64
	MinWindow float64
	BitsShare float64 // of the triggering cost
	XPFactor  float64
}

// Difficulty rows
var (
	SkillCheckEasy   = SkillCheckDifficulty{Name: "easy", Duration: 4.5, BaseSpeed: 0.6, Window: 0.3, MinWindow: 0.16, BitsShare: 0.45, XPFactor: 1}
	SkillCheckNormal = SkillCheckDifficulty{Name: "normal", Duration: 3.8, BaseSpeed: 0.85, Window: 0.22, MinWindow: 0.1, BitsShare: 0.7, XPFactor: 1.4}
	SkillCheckHard   = SkillCheckDifficulty{Name: "hard", Duration: 3.2, BaseSpeed: 1.05, Window: 0.16, MinWindow: 0.075, BitsShare: 0.95, XPFactor: 2.2}
)
