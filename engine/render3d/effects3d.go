package render3d

import (
	"sort"

	"github.com/1siamBot/fountain/engine/particles"
)

// Billboard is one particle projected to the screen
type Billboard struct {
	SX, SY float64 // screen center
	Radius float64 // pixels
	Depth  float64
	Color  Color3
	Alpha  float64
}

// DefaultParticleTint colors particles that carry no color of their own
var DefaultParticleTint = Color3{0.7, 0.85, 1.0}

// ParticleBillboards projects the active particles and returns them sorted
// back to front. dst is reused.
func ParticleBillboards(dst []Billboard, ps []particles.Particle, cam *Camera3D, size float64, tint Color3) []Billboard {
	dst = dst[:0]
	for i := range ps {
		p := &ps[i]
		if !p.Active {
			continue
		}
		sx, sy, depth, ok := cam.Project(V3(p.X, p.Y, p.Z))
		if !ok {
			continue
		}
		c := Color3{p.R, p.G, p.B}
		if c == (Color3{}) {
			c = tint
		}
		alpha := p.Life
		if alpha > 1 {
			alpha = 1
		}
		dst = append(dst, Billboard{
			SX:     sx,
			SY:     sy,
			Radius: size / 2 * cam.PixelsPerMeter(depth),
			Depth:  depth,
			Color:  c,
			Alpha:  alpha,
		})
	}
	sort.Slice(dst, func(i, j int) bool {
		return dst[i].Depth > dst[j].Depth
	})
	return dst
}
