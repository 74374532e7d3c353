// Package ui draws the fountain viewer's heads-up display.
package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Status is what the HUD reports each frame
type Status struct {
	T         float64 // simulation seconds
	Active    int
	Capacity  int
	Skipped   int // births dropped since start
	SubSteps  int // last frame
	TimeScale float64
	Paused    bool
	Recording bool
	FPS, TPS  float64
	LastEvent string
}

// HUD is the main heads-up display
type HUD struct {
	ScreenW, ScreenH int
	TopBarHeight     int
	ShowHelp         bool

	face text.Face
}

func NewHUD(sw, sh int) *HUD {
	return &HUD{
		ScreenW:      sw,
		ScreenH:      sh,
		TopBarHeight: 22,
		face:         text.NewGoXFace(basicfont.Face7x13),
	}
}

var helpLines = []string{
	"drag / arrows  orbit",
	"wheel          zoom",
	"space / p      pause",
	"r              reset",
	"+ / -          time scale",
	"h              this help",
	"esc / q        quit",
}

// StatusLine formats the top bar text
func StatusLine(s Status) string {
	line := fmt.Sprintf("t=%6.1fs  particles %d/%d  substeps %d  x%.2f  fps %.0f  tps %.0f",
		s.T, s.Active, s.Capacity, s.SubSteps, s.TimeScale, s.FPS, s.TPS)
	if s.Skipped > 0 {
		line += fmt.Sprintf("  skipped %d", s.Skipped)
	}
	if s.Paused {
		line += "  [PAUSED]"
	}
	if s.Recording {
		line += "  [REC]"
	}
	return line
}

// Draw renders the entire HUD
func (h *HUD) Draw(screen *ebiten.Image, s Status) {
	h.drawTopBar(screen, s)
	if h.ShowHelp {
		h.drawHelp(screen)
	}
	if s.LastEvent != "" {
		h.print(screen, s.LastEvent, 10, h.ScreenH-20, color.RGBA{255, 210, 120, 255})
	}
}

func (h *HUD) drawTopBar(screen *ebiten.Image, s Status) {
	vector.DrawFilledRect(screen, 0, 0, float32(h.ScreenW), float32(h.TopBarHeight), color.RGBA{0, 0, 0, 180}, false)
	h.print(screen, StatusLine(s), 10, 4, color.White)
	if s.Recording {
		vector.DrawFilledCircle(screen, float32(h.ScreenW-14), float32(h.TopBarHeight/2), 5, color.RGBA{230, 40, 40, 255}, true)
	}
}

func (h *HUD) drawHelp(screen *ebiten.Image) {
	pw, ph := 210, 16*len(helpLines)+16
	px, py := h.ScreenW-pw-10, h.TopBarHeight+10
	vector.DrawFilledRect(screen, float32(px), float32(py), float32(pw), float32(ph), color.RGBA{20, 20, 40, 200}, false)
	vector.StrokeRect(screen, float32(px), float32(py), float32(pw), float32(ph), 1, color.RGBA{100, 100, 160, 255}, false)
	for i, line := range helpLines {
		h.print(screen, line, px+10, py+8+16*i, color.RGBA{220, 220, 240, 255})
	}
}

func (h *HUD) print(screen *ebiten.Image, str string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, str, h.face, op)
}
