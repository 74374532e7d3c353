package main

import (
	"errors"
	"flag"
	"log"

	"github.com/1siamBot/fountain/engine/config"
	"github.com/1siamBot/fountain/engine/core"
	"github.com/1siamBot/fountain/engine/input"
	"github.com/1siamBot/fountain/engine/logger"
	"github.com/1siamBot/fountain/engine/network"
	"github.com/1siamBot/fountain/engine/particles"
	"github.com/1siamBot/fountain/engine/render"
	"github.com/1siamBot/fountain/engine/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

// Seconds an event message stays on screen
const eventLinger = 3.0

// Game implements ebiten.Game interface
type Game struct {
	cfg      config.Config
	loop     *core.Loop
	renderer *render.Renderer
	hud      *ui.HUD
	input    *input.InputState
	log      *logger.Logger
	recorder *network.Replay
	// recording is false once the loop detaches a failed recorder
	recording bool

	snap    particles.Snapshot
	skipped int
	lastRes particles.StepResult

	lastEvent   string
	lastEventAt float64
}

func NewGame(cfg config.Config, l *logger.Logger) (*Game, error) {
	loop, err := cfg.NewLoop()
	if err != nil {
		return nil, err
	}
	g := &Game{
		cfg:      cfg,
		loop:     loop,
		renderer: render.NewRenderer(cfg.Particles, cfg.Window.Width, cfg.Window.Height),
		hud:      ui.NewHUD(cfg.Window.Width, cfg.Window.Height),
		input:    input.NewInputState(),
		log:      l,
	}

	core.LogEvents(loop.Events, l)
	for _, t := range []core.EventType{core.EvtPaused, core.EvtResumed, core.EvtReset, core.EvtPoolExhausted, core.EvtRecordFailed} {
		loop.Events.On(t, g.showEvent)
	}
	loop.Events.On(core.EvtRecordFailed, func(core.Event) { g.recording = false })

	if cfg.Replay.Record != "" {
		rec, err := network.NewReplayRecorder(cfg.Replay.Record, cfg.Sim.Seed, cfg.Particles)
		if err != nil {
			return nil, err
		}
		g.recorder = rec
		g.recording = true
		loop.SetSink(rec)
		l.Infof("recording replay to %s", cfg.Replay.Record)
	}
	return g, nil
}

func (g *Game) showEvent(e core.Event) {
	g.lastEvent = e.Type.String()
	g.lastEventAt = e.T
}

func (g *Game) Update() error {
	g.input.Update()
	a := g.input.Actions()

	if a.Quit {
		return ebiten.Termination
	}
	if a.TogglePause {
		g.loop.Toggle()
	}
	if a.Reset {
		g.loop.Reset()
		g.skipped = 0
	}
	if a.SpeedUp {
		g.loop.SetTimeScale(g.loop.TimeScale() * 2)
	}
	if a.SlowDown {
		g.loop.SetTimeScale(g.loop.TimeScale() / 2)
	}
	if a.ToggleHelp {
		g.hud.ShowHelp = !g.hud.ShowHelp
	}
	g.renderer.Camera.Orbit(a.OrbitYaw, a.OrbitPitch)
	g.renderer.Camera.ZoomBy(a.Zoom)

	// Simulation step for this frame
	res := g.loop.Update()
	if res.SubSteps > 0 {
		g.lastRes = res
	}
	g.skipped += res.Skipped
	g.loop.Events.Dispatch()
	g.loop.Engine.Snapshot(&g.snap)

	if g.lastEvent != "" && g.loop.T-g.lastEventAt > eventLinger {
		g.lastEvent = ""
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, &g.snap)
	g.hud.Draw(screen, ui.Status{
		T:         g.loop.T,
		Active:    len(g.snap.Particles),
		Capacity:  g.cfg.Particles.MaxParticles,
		Skipped:   g.skipped,
		SubSteps:  g.lastRes.SubSteps,
		TimeScale: g.loop.TimeScale(),
		Paused:    g.loop.State == core.StatePaused,
		Recording: g.recording,
		FPS:       ebiten.ActualFPS(),
		TPS:       ebiten.ActualTPS(),
		LastEvent: g.lastEvent,
	})
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.hud.ScreenW, g.hud.ScreenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (g *Game) Close() error {
	if g.recorder == nil {
		return nil
	}
	return g.recorder.Close()
}

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults when empty)")
	record := flag.String("record", "", "write a replay to this path")
	flag.Parse()

	l := logger.New("window")
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *record != "" {
		cfg.Replay.Record = *record
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(cfg.Window.VSync)

	game, err := NewGame(cfg, l)
	if err != nil {
		log.Fatal(err)
	}
	l.Infof("fountain: %d particles, seed %d", cfg.Particles.MaxParticles, cfg.Sim.Seed)

	err = ebiten.RunGame(game)
	if cerr := game.Close(); cerr != nil {
		l.Errorf("closing replay: %v", cerr)
	}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
