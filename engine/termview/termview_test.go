package termview

import (
	"testing"

	"github.com/1siamBot/fountain/engine/particles"
	"github.com/gdamore/tcell/v2"
)

func newSimView(t *testing.T, w, h int) (*View, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(w, h)
	return NewView(s, particles.DefaultConfig()), s
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestCellMapping(t *testing.T) {
	v, _ := newSimView(t, 80, 25)
	cases := []struct {
		name     string
		x, y, z  float64
		col, row int
		ok       bool
	}{
		{"axis floor", 0, 0, 0, 40, 23, true},
		{"ledge top", 0, 0, 3, 40, 17, true},
		{"left edge", -10, 0, 0, 0, 23, true},
		{"past right edge", 10, 0, 0, 0, 0, false},
		{"above window", 0, 0, 12.5, 0, 0, false},
		{"y ignored at yaw 0", 0, 5, 6, 40, 11, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			col, row, ok := v.Cell(tc.x, tc.y, tc.z)
			if ok != tc.ok || (ok && (col != tc.col || row != tc.row)) {
				t.Fatalf("Cell = (%d,%d,%v), want (%d,%d,%v)", col, row, ok, tc.col, tc.row, tc.ok)
			}
		})
	}
}

func TestDraw(t *testing.T) {
	v, s := newSimView(t, 80, 25)
	snap := &particles.Snapshot{
		Particles: []particles.Particle{
			{X: 0, Z: 6, Life: 0.2, Active: true},
			{X: 0.1, Z: 6, Life: 0.9, Active: true},
			{X: -8, Z: 10, Life: 0.5, Active: true},
		},
		Glow: particles.Glow{Pos: [4]float64{0, 0, 4, 1}, Valid: true},
	}
	v.Draw(snap, "t=1.0s")

	if got := runeAt(s, 40, 11); got != '*' {
		t.Errorf("shared cell = %q, want the freshest particle '*'", got)
	}
	if got := runeAt(s, 8, 3); got != 'o' {
		t.Errorf("mid-life particle = %q, want 'o'", got)
	}
	if got := runeAt(s, 40, 15); got != GlowRune {
		t.Errorf("glow = %q", got)
	}
	if got := runeAt(s, 5, 23); got != FloorRune {
		t.Errorf("floor = %q", got)
	}
	for _, c := range [][2]int{{33, 17}, {46, 22}, {40, 20}} {
		if got := runeAt(s, c[0], c[1]); got != LedgeRune {
			t.Errorf("ledge at %v = %q", c, got)
		}
	}
	if got := runeAt(s, 32, 20); got == LedgeRune {
		t.Error("ledge drawn outside its radius")
	}
	status := ""
	for x := 0; x < 6; x++ {
		status += string(runeAt(s, x, 24))
	}
	if status != "t=1.0s" {
		t.Errorf("status line = %q", status)
	}
}

func TestDrawTinyScreen(t *testing.T) {
	v, _ := newSimView(t, 10, 1)
	v.Draw(&particles.Snapshot{Particles: []particles.Particle{{Z: 1, Life: 1, Active: true}}}, "x")
}
