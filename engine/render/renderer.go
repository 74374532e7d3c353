// Package render draws the fountain scene with ebiten.
package render

import (
	"image/color"
	"math"

	"github.com/1siamBot/fountain/engine/particles"
	"github.com/1siamBot/fountain/engine/render3d"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Renderer handles 3D rendering of the fountain scene
type Renderer struct {
	Camera   *render3d.Camera3D
	Lighting render3d.LightingSetup
	Tint     render3d.Color3

	scene *render3d.Mesh3D
	size  float64

	// Internal
	whiteImg  *ebiten.Image
	vertices  []ebiten.Vertex
	indices   []uint16
	billboard []render3d.Billboard
}

// NewRenderer creates the renderer for cfg's fountain
func NewRenderer(cfg particles.Config, screenW, screenH int) *Renderer {
	r := &Renderer{
		Camera:   render3d.NewCamera3D(screenW, screenH),
		Lighting: render3d.DefaultLighting(),
		Tint:     render3d.DefaultParticleTint,
	}
	r.SetConfig(cfg)

	// 1x1 white image for colored triangle rendering
	r.whiteImg = ebiten.NewImage(4, 4)
	r.whiteImg.Fill(color.White)

	return r
}

// SetConfig rebuilds the static scene for new fountain dimensions
func (r *Renderer) SetConfig(cfg particles.Config) {
	r.scene = render3d.FountainScene(cfg)
	r.size = cfg.ParticleSize
	r.Camera.Target = render3d.V3(0, 0, cfg.FountainHeight*0.8)
}

// Draw renders the complete scene for one snapshot
func (r *Renderer) Draw(screen *ebiten.Image, snap *particles.Snapshot) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	r.Camera.Resize(w, h)

	r.DrawSkyGradient(screen)
	r.Lighting.SetGlow(snap.Glow)
	r.renderMesh(screen, r.scene)
	r.drawParticles(screen, snap.Particles)
	r.drawGlow(screen)
}

// DrawSkyGradient fills the screen with a night sky gradient
func (r *Renderer) DrawSkyGradient(screen *ebiten.Image) {
	h := r.Camera.ScreenH
	w := r.Camera.ScreenW
	// Draw in bands for efficiency
	bands := 32
	bandH := h / bands
	if bandH < 1 {
		bandH = 1
	}
	for i := 0; i < bands; i++ {
		t := float64(i) / float64(bands)
		cr := uint8(4 + t*20)
		cg := uint8(6 + t*28)
		cb := uint8(20 + t*45)
		by := i * bandH
		bh := bandH
		if i == bands-1 {
			bh = h - by
		}
		vector.DrawFilledRect(screen, 0, float32(by), float32(w), float32(bh), color.RGBA{cr, cg, cb, 255}, false)
	}
}

// renderMesh projects and draws a lit mesh (batched). Triangles facing away
// from the eye or crossing the near plane are skipped.
func (r *Renderer) renderMesh(screen *ebiten.Image, mesh *render3d.Mesh3D) {
	if len(mesh.Triangles) == 0 {
		return
	}
	eye := r.Camera.Eye()
	sw := float64(r.Camera.ScreenW)
	sh := float64(r.Camera.ScreenH)

	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]

	for _, tri := range mesh.Triangles {
		if !tri.FacesCamera(eye) {
			continue
		}
		var vs [3]ebiten.Vertex
		allOffScreen := true
		visible := true

		for i := 0; i < 3; i++ {
			v := tri.V[i]
			sx, sy, _, ok := r.Camera.Project(v.Pos)
			if !ok {
				visible = false
				break
			}
			if sx >= -100 && sx <= sw+100 && sy >= -100 && sy <= sh+100 {
				allOffScreen = false
			}
			lit := r.Lighting.ComputeLighting(v.Pos, v.Normal, v.Color)
			vs[i] = ebiten.Vertex{
				DstX:   float32(sx),
				DstY:   float32(sy),
				SrcX:   1,
				SrcY:   1,
				ColorR: float32(lit.R),
				ColorG: float32(lit.G),
				ColorB: float32(lit.B),
				ColorA: 1,
			}
		}
		if !visible || allOffScreen {
			continue
		}

		base := uint16(len(r.vertices))
		r.vertices = append(r.vertices, vs[0], vs[1], vs[2])
		r.indices = append(r.indices, base, base+1, base+2)

		// Flush if approaching uint16 limit
		if len(r.vertices) >= 65000 {
			screen.DrawTriangles(r.vertices, r.indices, r.whiteImg, nil)
			r.vertices = r.vertices[:0]
			r.indices = r.indices[:0]
		}
	}

	if len(r.vertices) > 0 {
		screen.DrawTriangles(r.vertices, r.indices, r.whiteImg, nil)
	}
}

func (r *Renderer) drawParticles(screen *ebiten.Image, ps []particles.Particle) {
	r.billboard = render3d.ParticleBillboards(r.billboard, ps, r.Camera, r.size, r.Tint)
	for _, b := range r.billboard {
		radius := math.Max(b.Radius, 1)
		c := color.NRGBA{
			R: uint8(255 * b.Color.R),
			G: uint8(255 * b.Color.G),
			B: uint8(255 * b.Color.B),
			A: uint8(255 * (0.25 + 0.75*b.Alpha)),
		}
		vector.DrawFilledCircle(screen, float32(b.SX), float32(b.SY), float32(radius), c, true)
	}
}

// drawGlow paints a soft halo where the newest particle was born
func (r *Renderer) drawGlow(screen *ebiten.Image) {
	g := r.Lighting.Glow
	if !g.Enabled {
		return
	}
	sx, sy, depth, ok := r.Camera.Project(g.Pos)
	if !ok {
		return
	}
	ppm := r.Camera.PixelsPerMeter(depth)
	for i, k := range []float64{1.0, 0.6, 0.3} {
		c := color.NRGBA{
			R: uint8(255 * g.Color.R),
			G: uint8(255 * g.Color.G),
			B: uint8(255 * g.Color.B),
			A: uint8(30 + 40*i),
		}
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(math.Max(k*0.6*ppm, 2)), c, true)
	}
}
