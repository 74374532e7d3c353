package render3d

import (
	"math"

	"github.com/1siamBot/fountain/engine/particles"
)

// Vertex3D is a vertex with position, normal, and color
type Vertex3D struct {
	Pos    Vec3
	Normal Vec3
	Color  Color3
}

// Triangle3D is three vertices
type Triangle3D struct {
	V [3]Vertex3D
}

// Center returns the centroid of the triangle
func (t Triangle3D) Center() Vec3 {
	return t.V[0].Pos.Add(t.V[1].Pos).Add(t.V[2].Pos).Scale(1.0 / 3)
}

// FacesCamera reports whether the triangle's front side is visible from eye
func (t Triangle3D) FacesCamera(eye Vec3) bool {
	n := t.V[0].Normal.Add(t.V[1].Normal).Add(t.V[2].Normal)
	return n.Dot(eye.Sub(t.Center())) > 0
}

// Mesh3D is a collection of triangles
type Mesh3D struct {
	Triangles []Triangle3D
}

func NewMesh() *Mesh3D { return &Mesh3D{} }

func (m *Mesh3D) AddTriangle(v0, v1, v2 Vertex3D) {
	m.Triangles = append(m.Triangles, Triangle3D{V: [3]Vertex3D{v0, v1, v2}})
}

func (m *Mesh3D) AddQuad(v0, v1, v2, v3 Vertex3D) {
	m.AddTriangle(v0, v1, v2)
	m.AddTriangle(v0, v2, v3)
}

func (m *Mesh3D) Transform(mat Mat4) *Mesh3D {
	out := &Mesh3D{Triangles: make([]Triangle3D, len(m.Triangles))}
	for i, tri := range m.Triangles {
		for j := 0; j < 3; j++ {
			out.Triangles[i].V[j] = tri.V[j]
			out.Triangles[i].V[j].Pos = mat.TransformPoint(tri.V[j].Pos)
			out.Triangles[i].V[j].Normal = mat.TransformDir(tri.V[j].Normal).Normalize()
		}
	}
	return out
}

func (m *Mesh3D) Append(other *Mesh3D) {
	m.Triangles = append(m.Triangles, other.Triangles...)
}

// --- Primitive generators (Z-up) ---

// MakeCylinder builds a capped cylinder standing on z=0
func MakeCylinder(radius, height float64, segments int, c Color3) *Mesh3D {
	m := NewMesh()
	if segments < 6 {
		segments = 6
	}
	top := V3(0, 0, height)

	for i := 0; i < segments; i++ {
		a0 := float64(i) / float64(segments) * 2 * math.Pi
		a1 := float64(i+1) / float64(segments) * 2 * math.Pi
		x0, y0 := radius*math.Cos(a0), radius*math.Sin(a0)
		x1, y1 := radius*math.Cos(a1), radius*math.Sin(a1)

		p0t := V3(x0, y0, height)
		p1t := V3(x1, y1, height)
		p0b := V3(x0, y0, 0)
		p1b := V3(x1, y1, 0)

		n0 := V3(x0, y0, 0).Normalize()
		n1 := V3(x1, y1, 0).Normalize()

		sideShade := 0.8 + 0.2*float64(i%2)
		sc := c.Scale(sideShade)

		m.AddQuad(
			Vertex3D{Pos: p0b, Normal: n0, Color: sc},
			Vertex3D{Pos: p1b, Normal: n1, Color: sc},
			Vertex3D{Pos: p1t, Normal: n1, Color: sc},
			Vertex3D{Pos: p0t, Normal: n0, Color: sc},
		)

		topN := V3(0, 0, 1)
		m.AddTriangle(
			Vertex3D{Pos: top, Normal: topN, Color: c},
			Vertex3D{Pos: p0t, Normal: topN, Color: c},
			Vertex3D{Pos: p1t, Normal: topN, Color: c},
		)
	}
	return m
}

// MakeFlatDisc builds an upward-facing ring (or disc when innerR is 0) at height z
func MakeFlatDisc(innerR, outerR, z float64, segments int, c Color3) *Mesh3D {
	m := NewMesh()
	n := V3(0, 0, 1)
	for i := 0; i < segments; i++ {
		a0 := float64(i) / float64(segments) * 2 * math.Pi
		a1 := float64(i+1) / float64(segments) * 2 * math.Pi

		ix0, iy0 := innerR*math.Cos(a0), innerR*math.Sin(a0)
		ix1, iy1 := innerR*math.Cos(a1), innerR*math.Sin(a1)
		ox0, oy0 := outerR*math.Cos(a0), outerR*math.Sin(a0)
		ox1, oy1 := outerR*math.Cos(a1), outerR*math.Sin(a1)

		m.AddQuad(
			Vertex3D{Pos: V3(ix0, iy0, z), Normal: n, Color: c},
			Vertex3D{Pos: V3(ox0, oy0, z), Normal: n, Color: c},
			Vertex3D{Pos: V3(ox1, oy1, z), Normal: n, Color: c},
			Vertex3D{Pos: V3(ix1, iy1, z), Normal: n, Color: c},
		)
	}
	return m
}

// Scene colors
var (
	FloorColor  = Color3{0.25, 0.35, 0.25}
	StoneColor  = Color3{0.55, 0.55, 0.6}
	BasinColor  = Color3{0.2, 0.35, 0.6}
	FloorRadius = 20.0
)

// FountainScene builds the static geometry matching the collision surfaces:
// the floor at z=0 and the ledge cylinder of the configured radius and height.
func FountainScene(cfg particles.Config) *Mesh3D {
	m := NewMesh()
	m.Append(MakeFlatDisc(0, FloorRadius, 0, 48, FloorColor))
	m.Append(MakeCylinder(cfg.FountainRadius, cfg.FountainHeight, 32, StoneColor))
	m.Append(MakeFlatDisc(0, cfg.FountainRadius*0.85, cfg.FountainHeight+0.01, 32, BasinColor))
	return m
}
