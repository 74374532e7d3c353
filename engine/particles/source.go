package particles

import "math/rand"

// Source is the randomness used at spawn time. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// NewSource returns a seeded source. Equal seeds give equal fountains.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// SlotFinder picks the slot a new particle is born into.
type SlotFinder interface {
	// FindFree returns an inactive slot index, or false when the pool is full.
	FindFree(s *Store) (int, bool)
}

// LowestFree scans from slot 0 and returns the first inactive slot. This is
// the default policy: the lowest free index always wins.
type LowestFree struct{}

func (LowestFree) FindFree(s *Store) (int, bool) {
	for i := range s.slots {
		if !s.slots[i].Active {
			return i, true
		}
	}
	return -1, false
}

// NextFree resumes scanning after the slot it last returned, wrapping
// around. Reuse order spreads over the pool instead of favoring low slots.
type NextFree struct {
	cursor int
}

func (f *NextFree) FindFree(s *Store) (int, bool) {
	n := len(s.slots)
	for k := 0; k < n; k++ {
		i := (f.cursor + k) % n
		if !s.slots[i].Active {
			f.cursor = (i + 1) % n
			return i, true
		}
	}
	return -1, false
}
