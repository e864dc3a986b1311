package core

// Entity is a unique identifier for an entity in the simulation arena
// Zero is never issued and marks "no entity"
type Entity uint64

// NoEntity is the zero sentinel
const NoEntity Entity = 0
