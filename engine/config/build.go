package config

import (
	"github.com/1siamBot/fountain/engine/core"
	"github.com/1siamBot/fountain/engine/particles"
)

// NewEngine builds the engine seeded from Sim.Seed.
func (c Config) NewEngine() (*particles.Engine, error) {
	return particles.New(c.Particles, particles.WithSource(particles.NewSource(c.Sim.Seed)))
}

// LoopConfig converts the sim section for core.NewLoop.
func (c Config) LoopConfig() core.LoopConfig {
	return core.LoopConfig{
		MaxFrameDelta: c.Sim.MaxFrameDelta.Seconds(),
		TimeScale:     c.Sim.TimeScale,
	}
}

// NewLoop builds the engine and the loop that drives it.
func (c Config) NewLoop() (*core.Loop, error) {
	eng, err := c.NewEngine()
	if err != nil {
		return nil, err
	}
	return core.NewLoop(eng, c.LoopConfig()), nil
}
