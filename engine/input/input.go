package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState tracks mouse and keyboard state per frame
type InputState struct {
	// Mouse
	MouseX, MouseY   int
	MouseDX, MouseDY int // delta since last frame
	prevMouseX       int
	prevMouseY       int
	LeftPressed      bool
	LeftJustPressed  bool
	ScrollY          float64

	// Drag
	DragStartX, DragStartY int
	Dragging               bool
	DragThreshold          int

	// Keyboard
	JustPressed map[ebiten.Key]bool
}

// Actions is what the viewer does with one frame of input
type Actions struct {
	OrbitYaw, OrbitPitch float64 // radians
	Zoom                 float64 // distance factor, 1 is no change
	TogglePause          bool
	Reset                bool
	Quit                 bool
	SpeedUp, SlowDown    bool
	ToggleHelp           bool
}

// Radians of orbit per dragged pixel
const OrbitSensitivity = 0.008

var watchedKeys = []ebiten.Key{
	ebiten.KeySpace, ebiten.KeyP,
	ebiten.KeyR, ebiten.KeyEscape, ebiten.KeyQ, ebiten.KeyH,
	ebiten.KeyEqual, ebiten.KeyKPAdd,
	ebiten.KeyMinus, ebiten.KeyKPSubtract,
	ebiten.KeyLeft, ebiten.KeyRight, ebiten.KeyUp, ebiten.KeyDown,
}

func NewInputState() *InputState {
	return &InputState{
		DragThreshold: 3,
		JustPressed:   make(map[ebiten.Key]bool),
	}
}

// Update should be called every frame
func (s *InputState) Update() {
	s.prevMouseX = s.MouseX
	s.prevMouseY = s.MouseY
	s.MouseX, s.MouseY = ebiten.CursorPosition()
	s.MouseDX = s.MouseX - s.prevMouseX
	s.MouseDY = s.MouseY - s.prevMouseY

	leftDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.LeftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	s.LeftPressed = leftDown

	_, s.ScrollY = ebiten.Wheel()

	if s.LeftJustPressed {
		s.DragStartX = s.MouseX
		s.DragStartY = s.MouseY
		s.Dragging = false
	}
	if leftDown && !s.Dragging {
		dx := s.MouseX - s.DragStartX
		dy := s.MouseY - s.DragStartY
		if dx*dx+dy*dy > s.DragThreshold*s.DragThreshold {
			s.Dragging = true
		}
	}
	if !leftDown {
		s.Dragging = false
	}

	for _, k := range watchedKeys {
		s.JustPressed[k] = inpututil.IsKeyJustPressed(k)
	}
	// Arrow keys orbit while held
	for _, k := range []ebiten.Key{ebiten.KeyLeft, ebiten.KeyRight, ebiten.KeyUp, ebiten.KeyDown} {
		if ebiten.IsKeyPressed(k) {
			s.JustPressed[k] = true
		}
	}
}

// Actions maps the current state onto viewer controls
func (s *InputState) Actions() Actions {
	a := Actions{Zoom: 1}
	if s.Dragging {
		a.OrbitYaw = -float64(s.MouseDX) * OrbitSensitivity
		a.OrbitPitch = float64(s.MouseDY) * OrbitSensitivity
	}
	const keyOrbit = 0.03
	if s.JustPressed[ebiten.KeyLeft] {
		a.OrbitYaw += keyOrbit
	}
	if s.JustPressed[ebiten.KeyRight] {
		a.OrbitYaw -= keyOrbit
	}
	if s.JustPressed[ebiten.KeyUp] {
		a.OrbitPitch += keyOrbit
	}
	if s.JustPressed[ebiten.KeyDown] {
		a.OrbitPitch -= keyOrbit
	}
	if s.ScrollY > 0 {
		a.Zoom = 0.9
	} else if s.ScrollY < 0 {
		a.Zoom = 1.1
	}
	a.TogglePause = s.JustPressed[ebiten.KeySpace] || s.JustPressed[ebiten.KeyP]
	a.Reset = s.JustPressed[ebiten.KeyR]
	a.ToggleHelp = s.JustPressed[ebiten.KeyH]
	a.Quit = s.JustPressed[ebiten.KeyEscape] || s.JustPressed[ebiten.KeyQ]
	a.SpeedUp = s.JustPressed[ebiten.KeyEqual] || s.JustPressed[ebiten.KeyKPAdd]
	a.SlowDown = s.JustPressed[ebiten.KeyMinus] || s.JustPressed[ebiten.KeyKPSubtract]
	return a
}
