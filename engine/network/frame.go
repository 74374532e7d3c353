package network

import (
	"encoding/json"

	"github.com/1siamBot/fountain/engine/particles"
)

// Frame is the JSON form of a snapshot sent to stream viewers.
type Frame struct {
	Seq    uint64      `json:"seq"`
	T      float64     `json:"t"`
	Active int         `json:"active"`
	Glow   *[3]float64 `json:"glow,omitempty"`
	// Each particle is [x, y, z, life]
	Particles [][4]float32 `json:"particles"`
}

// NewFrame converts snap. When limit > 0 and more particles are active, an
// evenly strided subset of limit particles is sent; Active still counts all.
func NewFrame(seq uint64, snap *particles.Snapshot, limit int) Frame {
	f := Frame{
		Seq:    seq,
		T:      snap.T,
		Active: len(snap.Particles),
	}
	if snap.Glow.Valid {
		f.Glow = &[3]float64{snap.Glow.Pos[0], snap.Glow.Pos[1], snap.Glow.Pos[2]}
	}

	n := len(snap.Particles)
	if limit > 0 && n > limit {
		n = limit
	}
	f.Particles = make([][4]float32, n)
	for i := 0; i < n; i++ {
		src := i
		if n < len(snap.Particles) {
			src = i * len(snap.Particles) / n
		}
		p := &snap.Particles[src]
		f.Particles[i] = [4]float32{float32(p.X), float32(p.Y), float32(p.Z), float32(p.Life)}
	}
	return f
}

// Marshal encodes the frame as JSON.
func (f Frame) Marshal() ([]byte, error) {
	return json.Marshal(f)
}
