package render3d

import "math"

// Camera3D orbits a target point with a perspective projection. World
// space is Z-up.
type Camera3D struct {
	// Camera target (world position to look at)
	Target Vec3

	// Orbit angles in radians and distance from the target in meters
	Yaw      float64
	Pitch    float64
	Distance float64

	// Clamps applied by Orbit and ZoomBy
	MinPitch, MaxPitch       float64
	MinDistance, MaxDistance float64

	FovY      float64 // vertical field of view, radians
	Near, Far float64

	// Screen dimensions
	ScreenW, ScreenH int

	// Computed matrices
	view     Mat4
	proj     Mat4
	viewProj Mat4
	dirty    bool
}

// NewCamera3D creates a camera looking at the fountain spout from the side
func NewCamera3D(screenW, screenH int) *Camera3D {
	return &Camera3D{
		Target:      V3(0, 0, 2.5),
		Yaw:         45 * math.Pi / 180,
		Pitch:       20 * math.Pi / 180,
		Distance:    22,
		MinPitch:    2 * math.Pi / 180,
		MaxPitch:    85 * math.Pi / 180,
		MinDistance: 5,
		MaxDistance: 80,
		FovY:        50 * math.Pi / 180,
		Near:        0.1,
		Far:         500,
		ScreenW:     screenW,
		ScreenH:     screenH,
		dirty:       true,
	}
}

// Eye returns the camera position in world space
func (c *Camera3D) Eye() Vec3 {
	cp := math.Cos(c.Pitch)
	return c.Target.Add(V3(
		c.Distance*cp*math.Cos(c.Yaw),
		c.Distance*cp*math.Sin(c.Yaw),
		c.Distance*math.Sin(c.Pitch),
	))
}

// Orbit rotates around the target. Pitch is clamped to [MinPitch, MaxPitch].
func (c *Camera3D) Orbit(dYaw, dPitch float64) {
	c.Yaw = math.Mod(c.Yaw+dYaw, 2*math.Pi)
	c.Pitch = math.Max(c.MinPitch, math.Min(c.MaxPitch, c.Pitch+dPitch))
	c.dirty = true
}

// ZoomBy scales the orbit distance, clamped to [MinDistance, MaxDistance]
func (c *Camera3D) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	c.Distance = math.Max(c.MinDistance, math.Min(c.MaxDistance, c.Distance*factor))
	c.dirty = true
}

// Resize updates the screen dimensions
func (c *Camera3D) Resize(screenW, screenH int) {
	if screenW == c.ScreenW && screenH == c.ScreenH {
		return
	}
	c.ScreenW, c.ScreenH = screenW, screenH
	c.dirty = true
}

func (c *Camera3D) update() {
	if !c.dirty {
		return
	}
	c.dirty = false

	c.view = Mat4LookAt(c.Eye(), c.Target, V3(0, 0, 1))
	aspect := float64(c.ScreenW) / float64(c.ScreenH)
	c.proj = Mat4Perspective(c.FovY, aspect, c.Near, c.Far)
	c.viewProj = c.proj.Mul(c.view)
}

// ViewProj returns the combined view-projection matrix
func (c *Camera3D) ViewProj() Mat4 {
	c.update()
	return c.viewProj
}

// Project converts a world point to screen pixels. depth is the distance
// along the view axis; ok is false for points behind the near plane.
func (c *Camera3D) Project(p Vec3) (sx, sy, depth float64, ok bool) {
	c.update()
	clip := c.viewProj.MulVec4(Vec4{p.X, p.Y, p.Z, 1})
	if clip.W < c.Near {
		return 0, 0, clip.W, false
	}
	nx := clip.X / clip.W
	ny := clip.Y / clip.W
	sx = (nx*0.5 + 0.5) * float64(c.ScreenW)
	sy = (1 - (ny*0.5 + 0.5)) * float64(c.ScreenH)
	return sx, sy, clip.W, true
}

// PixelsPerMeter is the on-screen size of one meter at the given depth
func (c *Camera3D) PixelsPerMeter(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return float64(c.ScreenH) / 2 / math.Tan(c.FovY/2) / depth
}
