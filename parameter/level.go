package parameter

// Level timing
const (
	// BaseLevelDurationFloat is the countdown of level 1, in seconds
	BaseLevelDurationFloat = 60.0

	// LevelDurationIncrementFloat is added per level index above 1
	LevelDurationIncrementFloat = 10.0
)

// Boss
const (
	BaseBossHPFloat      = 200.0
	BossHPIncrementFloat = 100.0

	// BossSize is the side of the boss square
	BossSize = 144

	BossSpeedMinFloat    = 40.0
	BossSpeedSpreadFloat = 55.0

	// BossRotationSpeedRangeFloat is the full spin range centered on zero (deg/s)
	BossRotationSpeedRangeFloat = 18.0
)

// Boss defeat payout, multiplied by level index where noted
const (
	BossBitsPerIndexFloat = 500.0
	BossPrestigeFloat     = 1.0
	BossXPFloat           = 120.0
)

// Level advancement
const (
	// ContinueXPPerIndexFloat is granted on Continue, times the completed index
	ContinueXPPerIndexFloat = 50.0

	// ContinueLP is granted on Continue
	ContinueLP = 1
)

// Level pressure, applied before upgrade effects
const (
	// NodeHPPerIndexFloat raises node hp factor per level index
	NodeHPPerIndexFloat = 0.03

	// SpawnDelayPressureFloat shrinks spawn delay per index above 1
	SpawnDelayPressureFloat = 0.02

	// SpawnDelayPressureFloorFloat bounds the shrink multiplier
	SpawnDelayPressureFloorFloat = 0.5

	// BossHPPressureFloat grows the boss hp factor per index above 1
	BossHPPressureFloat = 0.05

	// BossHPPressureCapFloat bounds the boss hp growth
	BossHPPressureCapFloat = 2.0
)

// BossNames cycles by level index
var BossNames = [...]string{
	"Reality Architect",
	"Quantum Predator",
	"Neon Leviathan",
	"Entropy Weaver",
	"Starving Singularity",
	"Vitriol Angel",
	"Oblivion Scribe",
	"Graviton Oracle",
}
