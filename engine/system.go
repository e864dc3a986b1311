package engine

// System is a unit of per-tick simulation logic
type System interface {
	// Init resets session state for a new game or a load
	Init()
	Name() string
	// Priority orders Update calls, lower runs first
	Priority() int
	EventHandler
	Update()
}
