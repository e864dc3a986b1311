package service

// Service defines the lifecycle interface for infrastructure subsystems
// Services manage long-lived resources: the audio backend, the background
// saver, the websocket listener
//
// Lifecycle:
//  1. Construction (via factory)
//  2. Start() - launch background goroutines
//  3. [runtime operation]
//  4. Stop() - halt goroutines, flush, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Start begins service operation (launches goroutines if any)
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}
