package parameter

import "time"

// Game Loop & Engine Timing
const (
	// TickInterval is the fixed simulation step (~60 Hz)
	TickInterval = time.Second / 60

	// MaxTickDelta caps a single step so a stalled host cannot teleport entities
	MaxTickDelta = 250 * time.Millisecond

	// ProgressCheckInterval is how often milestone/achievement progress is re-evaluated
	ProgressCheckInterval = time.Second

	// AutoSaveInterval between background saves
	AutoSaveInterval = 15 * time.Second
)

// EventQueueSize is the capacity of the per-session event ring
const EventQueueSize = 1024

// Persistence
const (
	// SaveKey names the persisted document and the default storage slot
	SaveKey = "ins-progress-v1"

	// SaveVersion is stamped into every saved document
	SaveVersion = "v0.501"
)
