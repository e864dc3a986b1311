package network

import (
	"time"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/config"
)

// Config holds server configuration
type Config struct {
	// Address to bind
	Address string

	// Connection limits
	MaxSessions int
	ReadLimit   int64

	// Codec names the default frame encoding: "json" or "msgpack"
	// A client may override it with ?codec=
	Codec string

	// Simulation
	TickInterval     time.Duration
	FrameInterval    time.Duration
	AutosaveInterval time.Duration
	FieldWidth       float64
	FieldHeight      float64

	// Timing
	WriteTimeout      time.Duration
	HeartbeatInterval time.Duration
	DisconnectTimeout time.Duration

	// Buffer sizes
	ReadBufferSize   int
	WriteBufferSize  int
	SendQueueSize    int
	CommandQueueSize int
}

// DefaultConfig returns production-safe defaults
func DefaultConfig() *Config {
	return FromConfig(config.Default())
}

// FromConfig derives the server settings from the runtime configuration
func FromConfig(c config.Config) *Config {
	return &Config{
		Address:           c.Server.Listen,
		MaxSessions:       c.Server.MaxSessions,
		ReadLimit:         64 * 1024,
		Codec:             c.Server.Codec,
		TickInterval:      c.TickInterval(),
		FrameInterval:     c.FrameInterval(),
		AutosaveInterval:  c.AutosaveInterval.Std(),
		FieldWidth:        c.Field.Width,
		FieldHeight:       c.Field.Height,
		WriteTimeout:      5 * time.Second,
		HeartbeatInterval: 20 * time.Second,
		DisconnectTimeout: 60 * time.Second,
		ReadBufferSize:    4 * 1024,
		WriteBufferSize:   64 * 1024,
		SendQueueSize:     64,
		CommandQueueSize:  64,
	}
}
