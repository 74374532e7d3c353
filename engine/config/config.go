// Package config loads fountain host settings from YAML.
//
// A file only needs the keys it changes; everything else keeps the value
// from Default. Unknown keys are rejected so typos do not pass silently.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/1siamBot/fountain/engine/particles"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownKey = errors.New("config: unknown key")
	ErrInvalid    = errors.New("config: invalid value")
)

// Config is the full host configuration.
type Config struct {
	Particles particles.Config `yaml:"particles"`
	Sim       SimConfig        `yaml:"sim"`
	Window    WindowConfig     `yaml:"window"`
	Stream    StreamConfig     `yaml:"stream"`
	Replay    ReplayConfig     `yaml:"replay"`
}

// SimConfig controls how hosts drive the engine.
type SimConfig struct {
	Seed          int64         `yaml:"seed"`
	MaxFrameDelta time.Duration `yaml:"max_frame_delta"` // 0 = uncapped
	TimeScale     float64       `yaml:"time_scale"`
	TickRate      int           `yaml:"tick_rate"` // Hz, for the headless and terminal hosts
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

// StreamConfig is the websocket frame server.
type StreamConfig struct {
	Addr     string        `yaml:"addr"`
	Interval time.Duration `yaml:"interval"`
	// MaxParticles caps particles per frame; 0 sends all
	MaxParticles int `yaml:"max_particles"`
}

type ReplayConfig struct {
	Record string `yaml:"record"` // path; empty disables recording
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Particles: particles.DefaultConfig(),
		Sim: SimConfig{
			Seed:      1,
			TimeScale: 1,
			TickRate:  60,
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Fountain",
			VSync:  true,
		},
		Stream: StreamConfig{
			Addr:     ":8080",
			Interval: 50 * time.Millisecond,
		},
	}
}

// Load reads and validates a YAML file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		var te *yaml.TypeError
		if errors.As(err, &te) && unknownField(te) {
			return Config{}, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(te.Errors, "; "))
		}
		return Config{}, fmt.Errorf("decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func unknownField(te *yaml.TypeError) bool {
	for _, msg := range te.Errors {
		if strings.Contains(msg, "not found in type") {
			return true
		}
	}
	return false
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Particles.Validate(); err != nil {
		return fmt.Errorf("particles: %w", err)
	}
	switch {
	case !(c.Sim.TimeScale > 0):
		return fmt.Errorf("%w: sim.time_scale must be > 0, got %v", ErrInvalid, c.Sim.TimeScale)
	case c.Sim.MaxFrameDelta < 0:
		return fmt.Errorf("%w: sim.max_frame_delta must be >= 0, got %v", ErrInvalid, c.Sim.MaxFrameDelta)
	case c.Sim.TickRate <= 0:
		return fmt.Errorf("%w: sim.tick_rate must be > 0, got %d", ErrInvalid, c.Sim.TickRate)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Stream.Interval <= 0:
		return fmt.Errorf("%w: stream.interval must be > 0, got %v", ErrInvalid, c.Stream.Interval)
	case c.Stream.MaxParticles < 0:
		return fmt.Errorf("%w: stream.max_particles must be >= 0, got %d", ErrInvalid, c.Stream.MaxParticles)
	}
	return nil
}

// TickInterval is the fixed step for the headless and terminal hosts.
func (s SimConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(s.TickRate)
}
