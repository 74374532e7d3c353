package particles

import "math"

// Glow is the light source placed at the most recently born particle.
// Pos and Color are homogeneous (w = 1, alpha = 1).
type Glow struct {
	Pos   [4]float64
	Color [4]float64
	Valid bool // false until the first spawn
}

// Contact reports what happened to a particle during one sub-step.
type Contact uint8

const (
	ContactNone Contact = iota
	ContactLedge
	ContactFloor
	ContactDied
)

// StepResult summarizes one Step call.
type StepResult struct {
	Glow         Glow // last spawn of this step; Valid is false if none
	Spawned      int
	Skipped      int // spawns dropped because every slot was active
	Died         int
	LedgeBounces int
	FloorBounces int
	SubSteps     int
	Active       int // live particles after the step
}

// Option configures an Engine.
type Option func(*Engine)

// WithSource sets the spawn randomness.
func WithSource(src Source) Option {
	return func(e *Engine) { e.rng = src }
}

// WithSlotFinder replaces the lowest-free-index spawn policy.
func WithSlotFinder(f SlotFinder) Option {
	return func(e *Engine) { e.finder = f }
}

// Engine advances a Store in place. It is not safe for concurrent use:
// readers must not look at the store while Step runs.
type Engine struct {
	cfg    Config
	store  *Store
	rng    Source
	finder SlotFinder

	minAge float64 // time owed toward the next spawn
	glow   Glow
	lastT  float64
	last   StepResult

	birthInterval float64
	minDeltaT     float64
	fountainR2    float64
}

// New validates cfg and allocates a store of cfg.MaxParticles slots.
// Without WithSource the engine draws from NewSource(1).
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:           cfg,
		store:         NewStore(cfg.MaxParticles),
		birthInterval: cfg.BirthInterval(),
		minDeltaT:     cfg.MinDeltaT(),
		fountainR2:    cfg.FountainR2(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewSource(1)
	}
	if e.finder == nil {
		e.finder = LowestFree{}
	}
	return e, nil
}

func (e *Engine) Config() Config { return e.cfg }
func (e *Engine) Store() *Store  { return e.store }

// MinAge returns the spawn accumulator, always in [0, BirthInterval) between steps.
func (e *Engine) MinAge() float64 { return e.minAge }

// Glow returns the glow of the most recent spawn across all steps.
func (e *Engine) Glow() Glow { return e.glow }

// Last returns the result of the most recent Step.
func (e *Engine) Last() StepResult { return e.last }

// Reset frees every slot and zeroes the accumulator and glow.
func (e *Engine) Reset() {
	e.store.Reset()
	e.minAge = 0
	e.glow = Glow{}
	e.last = StepResult{}
}

// InitParticle (re)initializes p as a newborn at the spout, born at
// simulation time t, and records it as the glow source.
func (e *Engine) InitParticle(p *Particle, t float64) Glow {
	// Start position is at the fountain blow-out
	p.X = 0
	p.Y = 0
	p.Z = e.cfg.FountainHeight

	// Up, plus a random horizontal direction
	p.VZ = 0.7 + (0.3/4096)*float64(e.rng.Intn(4096))
	angle := (2 * math.Pi / 4096) * float64(e.rng.Intn(4096))
	p.VX = 0.4 * math.Cos(angle)
	p.VY = 0.4 * math.Sin(angle)

	// Fountain strength varies slowly with birth time
	v := e.cfg.Velocity * (0.8 + 0.1*(math.Sin(0.5*t)+math.Sin(1.31*t)))
	p.VX *= v
	p.VY *= v
	p.VZ *= v

	g := Glow{Valid: true}
	g.Pos = [4]float64{p.X, p.Y, e.cfg.FountainHeight + 1, 1}
	if e.cfg.GlowWobble {
		g.Pos[0] = 0.4 * math.Sin(1.34*t)
		g.Pos[1] = 0.4 * math.Sin(3.11*t)
	}
	g.Color = [4]float64{p.R, p.G, p.B, 1}
	e.glow = g

	p.Life = 1
	p.Active = true
	return g
}

// UpdateParticle ages, moves and collides p over dt seconds. Inactive
// particles are left untouched. A particle that dies is not moved.
func (e *Engine) UpdateParticle(p *Particle, dt float64) Contact {
	if !p.Active {
		return ContactNone
	}

	p.Life -= dt / e.cfg.LifeSpan
	if p.Life <= 0 {
		p.Active = false
		return ContactDied
	}

	p.VZ -= e.cfg.Gravity * dt

	p.X += p.VX * dt
	p.Y += p.VY * dt
	p.Z += p.VZ * dt

	if p.VZ >= 0 {
		return ContactNone
	}

	half := e.cfg.ParticleSize / 2
	ledge := e.cfg.FountainHeight + half
	switch {
	case p.X*p.X+p.Y*p.Y < e.fountainR2 && p.Z < ledge:
		p.VZ = -e.cfg.Friction * p.VZ
		p.Z = ledge + e.cfg.Friction*(ledge-p.Z)
		return ContactLedge
	case p.Z < half:
		p.VZ = -e.cfg.Friction * p.VZ
		p.Z = half + e.cfg.Friction*(half-p.Z)
		return ContactFloor
	}
	return ContactNone
}

// Step advances the whole fountain by dt seconds ending at simulation time
// t. Large deltas are split into sub-steps of at most MinDeltaT, and one
// particle is born per BirthInterval of accumulated time. A spawn that
// finds no free slot is dropped; the accumulator keeps running.
func (e *Engine) Step(t, dt float64) StepResult {
	var res StepResult
	for dt > 0 {
		step := dt
		if step > e.minDeltaT {
			step = e.minDeltaT
		}

		slots := e.store.slots
		for i := range slots {
			res.tally(e.UpdateParticle(&slots[i], step))
		}

		e.minAge += step
		for e.minAge >= e.birthInterval {
			e.minAge -= e.birthInterval

			i, ok := e.finder.FindFree(e.store)
			if !ok {
				res.Skipped++
				continue
			}
			p := e.store.slot(i)
			res.Glow = e.InitParticle(p, t+e.minAge)
			res.Spawned++
			res.tally(e.UpdateParticle(p, e.minAge))
		}

		dt -= step
		res.SubSteps++
	}
	res.Active = e.store.ActiveCount()
	e.lastT = t
	e.last = res
	return res
}

func (r *StepResult) tally(c Contact) {
	switch c {
	case ContactDied:
		r.Died++
	case ContactLedge:
		r.LedgeBounces++
	case ContactFloor:
		r.FloorBounces++
	}
}
