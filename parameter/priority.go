package parameter

// System update order, lower runs first
const (
	PrioritySpawn      = 10
	PriorityMotion     = 20
	PriorityCombat     = 30
	PriorityToken      = 40
	PriorityLevel      = 50
	PriorityEconomy    = 60
	PrioritySkillCheck = 70
	PriorityProgress   = 80
)
