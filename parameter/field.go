package parameter

// Play field defaults, in field pixels
const (
	DefaultFieldWidth  = 960
	DefaultFieldHeight = 640
)

// Node geometry and traversal
const (
	// NodeSize is the side of the square node hit polygon
	NodeSize = 82

	// NodeSpawnMargin is how far outside the field nodes start and may drift before despawning
	NodeSpawnMargin = 120

	// Travel time across the field, uniform in [min, min+spread]
	NodeTravelMinFloat    = 10.0
	NodeTravelSpreadFloat = 6.0

	// NodeRotationSpeedRangeFloat is the full range of spin, centered on zero (deg/s)
	NodeRotationSpeedRangeFloat = 45.0
)

// Spawn weights, must sum to 1
const (
	SpawnWeightRed   = 0.50
	SpawnWeightBlue  = 0.30
	SpawnWeightGreen = 0.12
	SpawnWeightGold  = 0.08
)

// Pointer
const (
	// BasePointerSize is the pointer square side before upgrades
	BasePointerSize = 32

	// MinPointerSize clamps shrinking effects
	MinPointerSize = 8

	// MinAutoInterval is the smallest accumulator step the combat loop honors
	MinAutoIntervalFloat = 0.1
)

// Bit tokens
const (
	TokenCountMin = 3
	TokenCountMax = 5

	// TokenLifetimeFloat in seconds
	TokenLifetimeFloat = 12.0

	// TokenSize of the token square, used for collection overlap
	TokenSize = 16

	// TokenXPFactorFloat converts collected bits into xp, rounded up
	TokenXPFactorFloat = 0.4

	// GoldTokenFloorBits is the minimum total value of a gold node burst
	GoldTokenFloorBits = 1000

	// GoldTokenMaxCount bounds the burst size
	GoldTokenMaxCount = 24

	// TokenScatterFloat is the radius tokens scatter from the kill point
	TokenScatterFloat = 40.0
)
