// Package particles is the fountain simulation: a fixed pool of particle
// slots, and an engine that ages, moves, bounces and respawns them each
// frame.
package particles

// Particle is one simulated droplet. World space is Z-up, units are meters
// and seconds.
type Particle struct {
	X, Y, Z    float64 // position
	VX, VY, VZ float64 // velocity
	R, G, B    float64 // color, [0,1]
	Life       float64 // 1.0 = newborn, <= 0 = dead
	Active     bool    // false = slot is free
}

// Store is a fixed set of particle slots. Slots are recycled in place; the
// set never grows, shrinks or reallocates.
type Store struct {
	slots []Particle
}

// NewStore allocates capacity inactive slots.
func NewStore(capacity int) *Store {
	if capacity < 0 {
		capacity = 0
	}
	return &Store{slots: make([]Particle, capacity)}
}

// Len returns the number of slots.
func (s *Store) Len() int { return len(s.slots) }

// At returns a copy of slot i.
func (s *Store) At(i int) Particle { return s.slots[i] }

// Particles exposes the slots for reading. Callers must not write through
// the returned slice; only the engine mutates particles.
func (s *Store) Particles() []Particle { return s.slots }

// ActiveCount returns the number of live particles.
func (s *Store) ActiveCount() int {
	n := 0
	for i := range s.slots {
		if s.slots[i].Active {
			n++
		}
	}
	return n
}

// Each calls fn for every active slot, lowest index first.
func (s *Store) Each(fn func(i int, p Particle)) {
	for i := range s.slots {
		if s.slots[i].Active {
			fn(i, s.slots[i])
		}
	}
}

// Reset frees every slot.
func (s *Store) Reset() {
	for i := range s.slots {
		s.slots[i] = Particle{}
	}
}

func (s *Store) slot(i int) *Particle { return &s.slots[i] }
