package render3d

import (
	"math"

	"github.com/1siamBot/fountain/engine/particles"
)

// DirectionalLight represents a sun-like light
type DirectionalLight struct {
	Direction Vec3   // normalized direction TO the light (from surface)
	Color     Color3 // light color
	Intensity float64
}

// AmbientLight provides fill lighting
type AmbientLight struct {
	Color     Color3
	Intensity float64
}

// PointLight falls off with distance. The fountain glow is one.
type PointLight struct {
	Pos       Vec3
	Color     Color3
	Intensity float64
	Radius    float64 // distance at which the light has halved
	Enabled   bool
}

// LightingSetup contains the scene lighting
type LightingSetup struct {
	Sun     DirectionalLight
	Ambient AmbientLight
	Glow    PointLight
}

// DefaultLighting returns a dim night scene lit mostly by the fountain glow
func DefaultLighting() LightingSetup {
	return LightingSetup{
		Sun: DirectionalLight{
			Direction: V3(-0.4, -0.35, 0.85).Normalize(),
			Color:     Color3{0.7, 0.8, 1.0},
			Intensity: 0.45,
		},
		Ambient: AmbientLight{
			Color:     Color3{0.75, 0.78, 0.85},
			Intensity: 0.35,
		},
		Glow: PointLight{
			Color:     Color3{1.0, 0.95, 0.8},
			Intensity: 1.2,
			Radius:    3,
		},
	}
}

// SetGlow moves the point light to the most recent spawn. A glow with a
// black color (the fountain's particles carry no color of their own) lights
// with the light's configured color instead.
func (ls *LightingSetup) SetGlow(g particles.Glow) {
	ls.Glow.Enabled = g.Valid
	if !g.Valid {
		return
	}
	ls.Glow.Pos = V3(g.Pos[0], g.Pos[1], g.Pos[2])
	if c := (Color3{g.Color[0], g.Color[1], g.Color[2]}); c != (Color3{}) {
		ls.Glow.Color = c
	}
}

// ComputeLighting calculates the lit color for a surface point
func (ls *LightingSetup) ComputeLighting(pos, normal Vec3, baseColor Color3) Color3 {
	// Ambient
	ambient := baseColor.Mul(ls.Ambient.Color).Scale(ls.Ambient.Intensity)

	// Diffuse (Lambert) - sun
	ndotl := math.Max(0, normal.Dot(ls.Sun.Direction))
	diffuse := baseColor.Mul(ls.Sun.Color).Scale(ndotl * ls.Sun.Intensity)

	result := ambient.Add(diffuse)

	if ls.Glow.Enabled {
		toLight := ls.Glow.Pos.Sub(pos)
		d := toLight.Len()
		ndotg := math.Max(0, normal.Dot(toLight.Normalize()))
		falloff := 1 / (1 + (d/ls.Glow.Radius)*(d/ls.Glow.Radius))
		glow := baseColor.Mul(ls.Glow.Color).Scale(ndotg * ls.Glow.Intensity * falloff)
		result = result.Add(glow)
	}

	// Clamp
	result.R = math.Min(result.R, 1.0)
	result.G = math.Min(result.G, 1.0)
	result.B = math.Min(result.B, 1.0)

	return result
}
