package parameter

// Upgrade cost curve
const (
	// UpgradeLevelGrowthFloat is the per-level cost multiplier within a tier
	UpgradeLevelGrowthFloat = 1.1

	// UpgradeTierGrowthFloat carries the previous tier's final cost into the next base
	UpgradeTierGrowthFloat = 1.5

	// UpgradeTierMaxLevel caps every tiered upgrade
	UpgradeTierMaxLevel = 10
)

// Section and tab unlocks
const (
	CryptoUnlockCostBitsFloat      = 100000.0
	LabUnlockCostCryptcoinsFloat   = 1000.0
	SpawnUnlockCostPrestigeFloat   = 5.0
	CollectionSectionMinLevel      = 20
	AnomalyPrestigePerTier         = 1
	AnomalyLPPerTier               = 2
	CryptoSpeedUpgradeMaxLevel     = 1
	AutomationMaxLevel             = 1
	SpawnControlNodesPerLevelFloat = 0.5
)
