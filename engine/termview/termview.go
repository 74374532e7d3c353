// Package termview draws the fountain into a terminal as a side view.
package termview

import (
	"math"

	"github.com/1siamBot/fountain/engine/particles"
	"github.com/gdamore/tcell/v2"
)

// Glyphs
const (
	FloorRune = '▁'
	LedgeRune = '█'
	GlowRune  = '✦'
)

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorBlack)
	styleFloor   = styleDefault.Foreground(tcell.NewRGBColor(60, 90, 60))
	styleLedge   = styleDefault.Foreground(tcell.NewRGBColor(140, 140, 150))
	styleGlow    = styleDefault.Foreground(tcell.ColorYellow)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// View projects particles onto the vertical plane through the fountain
// axis at angle Yaw, leaving the last terminal row for a status line.
type View struct {
	Screen tcell.Screen
	Yaw    float64 // radians around Z

	// World window: horizontal [-HalfWidth, HalfWidth], vertical [0, Top]
	HalfWidth float64
	Top       float64

	cfg   particles.Config
	owner []int
}

// NewView creates a view over cfg's fountain.
func NewView(s tcell.Screen, cfg particles.Config) *View {
	return &View{
		Screen:    s,
		HalfWidth: 10,
		Top:       12,
		cfg:       cfg,
	}
}

func (v *View) plotSize() (w, h int) {
	w, h = v.Screen.Size()
	return w, h - 1
}

// Cell maps a world point to a terminal cell in the plot area.
func (v *View) Cell(x, y, z float64) (col, row int, ok bool) {
	w, h := v.plotSize()
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	u := x*math.Cos(v.Yaw) + y*math.Sin(v.Yaw)
	fc := (u + v.HalfWidth) / (2 * v.HalfWidth) * float64(w)
	fr := float64(h-1) - z/v.Top*float64(h)
	if fc < 0 || fr < 0 {
		return 0, 0, false
	}
	col, row = int(fc), int(math.Round(fr))
	if col >= w || row >= h {
		return 0, 0, false
	}
	return col, row, true
}

// lifeRune picks a glyph by remaining life
func lifeRune(life float64) rune {
	switch {
	case life > 0.66:
		return '*'
	case life > 0.33:
		return 'o'
	default:
		return '.'
	}
}

func lifeStyle(life float64) tcell.Style {
	c := int32(80 + 175*math.Max(0, math.Min(1, life)))
	return styleDefault.Foreground(tcell.NewRGBColor(c/2, c*3/4, c))
}

// Draw renders one frame and a status line, then shows the screen.
func (v *View) Draw(snap *particles.Snapshot, status string) {
	v.Screen.Clear()
	w, h := v.plotSize()
	if w <= 0 || h <= 0 {
		v.Screen.Show()
		return
	}

	v.drawFloor(w, h)
	v.drawLedge(h)

	// Many particles land in one cell; the freshest one picks the glyph
	if cap(v.owner) < w*h {
		v.owner = make([]int, w*h)
	}
	v.owner = v.owner[:w*h]
	for i := range v.owner {
		v.owner[i] = -1
	}
	for i := range snap.Particles {
		p := &snap.Particles[i]
		col, row, ok := v.Cell(p.X, p.Y, p.Z)
		if !ok {
			continue
		}
		idx := row*w + col
		if j := v.owner[idx]; j >= 0 && snap.Particles[j].Life >= p.Life {
			continue
		}
		v.owner[idx] = i
	}
	for idx, j := range v.owner {
		if j < 0 {
			continue
		}
		life := snap.Particles[j].Life
		v.Screen.SetContent(idx%w, idx/w, lifeRune(life), nil, lifeStyle(life))
	}

	if snap.Glow.Valid {
		if col, row, ok := v.Cell(snap.Glow.Pos[0], snap.Glow.Pos[1], snap.Glow.Pos[2]); ok {
			v.Screen.SetContent(col, row, GlowRune, nil, styleGlow)
		}
	}

	v.drawStatus(w, h, status)
	v.Screen.Show()
}

func (v *View) drawFloor(w, h int) {
	for col := 0; col < w; col++ {
		v.Screen.SetContent(col, h-1, FloorRune, nil, styleFloor)
	}
}

func (v *View) drawLedge(h int) {
	left, _, okL := v.Cell(-v.cfg.FountainRadius*math.Cos(v.Yaw), -v.cfg.FountainRadius*math.Sin(v.Yaw), 0)
	right, _, okR := v.Cell(v.cfg.FountainRadius*math.Cos(v.Yaw), v.cfg.FountainRadius*math.Sin(v.Yaw), 0)
	_, top, okT := v.Cell(0, 0, v.cfg.FountainHeight)
	if !okL || !okR || !okT {
		return
	}
	for row := top; row < h-1; row++ {
		for col := left; col <= right; col++ {
			v.Screen.SetContent(col, row, LedgeRune, nil, styleLedge)
		}
	}
}

func (v *View) drawStatus(w, h int, status string) {
	col := 0
	for _, r := range status {
		if col >= w {
			break
		}
		v.Screen.SetContent(col, h, r, nil, styleStatus)
		col++
	}
	for ; col < w; col++ {
		v.Screen.SetContent(col, h, ' ', nil, styleStatus)
	}
}
