package parameter

// Player progression
const (
	// InitialXPForNext is the first level-up threshold
	InitialXPForNextFloat = 100.0

	// XPGrowthFloat multiplies the threshold on every level-up
	XPGrowthFloat = 1.2

	// InitialHealthFloat is the starting max health
	InitialHealthFloat = 100.0

	// HealthPerLevelFloat is added to max health on every level-up
	HealthPerLevelFloat = 10.0

	// LPPerLevel is granted on every level-up
	LPPerLevel = 1
)

// Base stats, the resolver starts from these every pass
const (
	BaseDamageFloat         = 5.0
	BaseCritChanceFloat     = 0.05
	BaseCritMultiplierFloat = 2.0
	BaseAutoIntervalFloat   = 1.0
	BaseNodeSpawnDelayFloat = 2.0
	BaseMaxNodes            = 4

	// MinNodeSpawnDelayFloat floors the resolved spawn delay
	MinNodeSpawnDelayFloat = 0.05

	// MinResolvedAutoIntervalFloat floors the resolved attack interval
	MinResolvedAutoIntervalFloat = 0.08
)
