package engine

import (
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/core"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/state"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/stats"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/status"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/vmath"
)

// TimeResource is the per-tick clock shared by systems
type TimeResource struct {
	// DeltaTime of the current tick in seconds
	DeltaTime float64
	// Elapsed simulated seconds since the world was created
	Elapsed     float64
	FrameNumber int64
}

// PointerResource is the last pointer position reported by the host
type PointerResource struct {
	Pos vmath.Vec2
	// Inside is false while the pointer is outside the play field
	Inside bool
}

// FieldResource is the play field extent in field pixels
type FieldResource struct {
	Width  float64
	Height float64
}

// Resources are the singletons systems read and mutate
// Player and Stats are owned by the session; the world only borrows them
type Resources struct {
	Time    TimeResource
	Pointer PointerResource
	Field   FieldResource

	Player *state.Player
	Stats  *stats.Snapshot
	Rand   core.Rand
	Status *status.Registry
}
