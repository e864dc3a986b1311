package component

// TokenComponent is a bit shard dropped by a kill, collected by the pointer
type TokenComponent struct {
	Value float64
	// Remaining lifetime in seconds
	TTL float64
}
