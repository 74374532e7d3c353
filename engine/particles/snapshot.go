package particles

// Snapshot is a detached copy of the live particles after a step, for
// readers on other goroutines.
type Snapshot struct {
	T         float64
	Particles []Particle // active particles only, in slot order
	Glow      Glow
	Stats     StepResult
}

// Snapshot copies the current state into dst, reusing its buffer.
func (e *Engine) Snapshot(dst *Snapshot) {
	dst.T = e.lastT
	dst.Glow = e.glow
	dst.Stats = e.last
	dst.Particles = dst.Particles[:0]
	for i := range e.store.slots {
		if e.store.slots[i].Active {
			dst.Particles = append(dst.Particles, e.store.slots[i])
		}
	}
}

// Clone returns a deep copy of s.
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.Particles = append([]Particle(nil), s.Particles...)
	return &c
}
