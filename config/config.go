// Package config loads runtime settings for the terminal game and the server.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
)

// Frame codecs accepted by the server
const (
	CodecJSON    = "json"
	CodecMsgpack = "msgpack"
)

// Duration accepts "15s" style strings or bare seconds
type Duration time.Duration

// UnmarshalYAML decodes a scalar duration
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", value.Line)
	}
	if v, err := time.ParseDuration(value.Value); err == nil {
		*d = Duration(v)
		return nil
	}
	var secs float64
	if err := value.Decode(&secs); err != nil {
		return fmt.Errorf("line %d: invalid duration %q", value.Line, value.Value)
	}
	*d = Duration(secs * float64(time.Second))
	return nil
}

// MarshalYAML writes the duration in Go notation
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Field is the play area in field units
type Field struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Storage selects where saves go
type Storage struct {
	// Path is the sqlite database file; empty keeps saves in memory
	Path string `yaml:"path"`
	Slot string `yaml:"slot"`
}

// Server configures the websocket front end
type Server struct {
	Listen      string `yaml:"listen"`
	FrameRate   int    `yaml:"frame_rate"`
	Codec       string `yaml:"codec"`
	MaxSessions int    `yaml:"max_sessions"`
}

// Audio configures sound cues
type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// Config is the full runtime configuration
type Config struct {
	Field            Field    `yaml:"field"`
	TickRate         int      `yaml:"tick_rate"`
	Seed             uint64   `yaml:"seed"`
	AutosaveInterval Duration `yaml:"autosave_interval"`
	Storage          Storage  `yaml:"storage"`
	Server           Server   `yaml:"server"`
	Audio            Audio    `yaml:"audio"`
	Debug            bool     `yaml:"debug"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Field:            Field{Width: parameter.DefaultFieldWidth, Height: parameter.DefaultFieldHeight},
		TickRate:         int(time.Second / parameter.TickInterval),
		AutosaveInterval: Duration(parameter.AutoSaveInterval),
		Storage:          Storage{Path: "saves.db", Slot: parameter.SaveKey},
		Server: Server{
			Listen:      ":7777",
			FrameRate:   20,
			Codec:       CodecJSON,
			MaxSessions: 64,
		},
		Audio: Audio{Enabled: true, Volume: 0.7},
	}
}

// Load reads path over the defaults
// A missing file is not an error; the defaults are returned
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("[config] %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Validate()
	return cfg, nil
}

// Save writes cfg as YAML
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate clamps out-of-range values back to usable ones
func (c *Config) Validate() {
	def := Default()
	if !(c.Field.Width > 0) || !(c.Field.Height > 0) {
		c.Field = def.Field
	}
	c.TickRate = clampInt(c.TickRate, 10, 240, def.TickRate)
	if c.AutosaveInterval < Duration(time.Second) {
		c.AutosaveInterval = def.AutosaveInterval
	}
	if c.Storage.Slot == "" {
		c.Storage.Slot = def.Storage.Slot
	}
	if c.Server.Listen == "" {
		c.Server.Listen = def.Server.Listen
	}
	c.Server.FrameRate = clampInt(c.Server.FrameRate, 1, 60, def.Server.FrameRate)
	if c.Server.Codec != CodecJSON && c.Server.Codec != CodecMsgpack {
		c.Server.Codec = def.Server.Codec
	}
	c.Server.MaxSessions = clampInt(c.Server.MaxSessions, 1, 10000, def.Server.MaxSessions)
	c.Audio.Volume = max(0, min(1, c.Audio.Volume))
}

// TickInterval is the fixed simulation step
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(max(1, c.TickRate))
}

// FrameInterval is the server push period
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(max(1, c.Server.FrameRate))
}

// clampInt returns def for zero, otherwise v limited to [lo, hi]
func clampInt(v, lo, hi, def int) int {
	if v == 0 {
		return def
	}
	return max(lo, min(hi, v))
}
