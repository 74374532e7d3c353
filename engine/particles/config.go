package particles

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("particles: invalid config")

// Config holds the fountain tunables.
type Config struct {
	MaxParticles   int     `yaml:"max_particles"`   // pool capacity
	LifeSpan       float64 `yaml:"life_span"`       // seconds
	ParticleSize   float64 `yaml:"particle_size"`   // meters
	Gravity        float64 `yaml:"gravity"`         // m/s^2
	Velocity       float64 `yaml:"velocity"`        // base initial speed, m/s
	Friction       float64 `yaml:"friction"`        // 1.0 = no friction, 0.0 = maximum friction
	FountainHeight float64 `yaml:"fountain_height"` // meters
	FountainRadius float64 `yaml:"fountain_radius"` // meters

	// GlowWobble moves the glow light around the axis over time instead of
	// pinning it above the spout.
	GlowWobble bool `yaml:"glow_wobble"`
}

// DefaultConfig returns the classic fountain: 3000 particles living 8 seconds.
func DefaultConfig() Config {
	return Config{
		MaxParticles:   3000,
		LifeSpan:       8.0,
		ParticleSize:   0.7,
		Gravity:        9.8,
		Velocity:       8.0,
		Friction:       0.75,
		FountainHeight: 3.0,
		FountainRadius: 1.6,
	}
}

// BirthInterval is the time between two spawns.
func (c Config) BirthInterval() float64 {
	return c.LifeSpan / float64(c.MaxParticles)
}

// MinDeltaT is the longest integration sub-step.
func (c Config) MinDeltaT() float64 {
	return c.BirthInterval() * 0.5
}

// FountainR2 is the squared collision radius of the ledge.
func (c Config) FountainR2() float64 {
	r := c.FountainRadius + c.ParticleSize/2
	return r * r
}

// Validate reports the first out-of-range tunable. Comparisons are written
// so that NaN fails them.
func (c Config) Validate() error {
	switch {
	case c.MaxParticles <= 0:
		return fmt.Errorf("%w: max_particles must be positive, got %d", ErrInvalidConfig, c.MaxParticles)
	case !(c.LifeSpan > 0):
		return fmt.Errorf("%w: life_span must be positive, got %g", ErrInvalidConfig, c.LifeSpan)
	case !(c.ParticleSize > 0):
		return fmt.Errorf("%w: particle_size must be positive, got %g", ErrInvalidConfig, c.ParticleSize)
	case !(c.Gravity >= 0):
		return fmt.Errorf("%w: gravity must not be negative, got %g", ErrInvalidConfig, c.Gravity)
	case !(c.Velocity >= 0):
		return fmt.Errorf("%w: velocity must not be negative, got %g", ErrInvalidConfig, c.Velocity)
	case !(c.Friction >= 0 && c.Friction <= 1):
		return fmt.Errorf("%w: friction must be in [0,1], got %g", ErrInvalidConfig, c.Friction)
	case !(c.FountainHeight >= 0):
		return fmt.Errorf("%w: fountain_height must not be negative, got %g", ErrInvalidConfig, c.FountainHeight)
	case !(c.FountainRadius >= 0):
		return fmt.Errorf("%w: fountain_radius must not be negative, got %g", ErrInvalidConfig, c.FountainRadius)
	}
	return nil
}
