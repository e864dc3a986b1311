package parameter

// BitRewardGrowthFloat scales node bit rewards per level index above 1
const BitRewardGrowthFloat = 3.0

// NodeHPGrowthFloat scales node hp per level index above 1
const NodeHPGrowthFloat = 5.0

// Harvest damage dealt to an active boss per destroyed node, [min, max]
const (
	HarvestDamageRedMin   = 15.0
	HarvestDamageRedMax   = 20.0
	HarvestDamageBlueMin  = 30.0
	HarvestDamageBlueMax  = 40.0
	HarvestDamageGreenMin = 20.0
	HarvestDamageGreenMax = 30.0
	HarvestDamageGoldMin  = 200.0
	HarvestDamageGoldMax  = 400.0
)
