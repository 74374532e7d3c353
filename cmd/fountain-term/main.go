package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/1siamBot/fountain/engine/config"
	"github.com/1siamBot/fountain/engine/core"
	"github.com/1siamBot/fountain/engine/logger"
	"github.com/1siamBot/fountain/engine/particles"
	"github.com/1siamBot/fountain/engine/termview"
	"github.com/gdamore/tcell/v2"
)

type app struct {
	screen tcell.Screen
	view   *termview.View
	loop   *core.Loop
	snap   particles.Snapshot
	tick   time.Duration
}

// handleInput returns false when the app should quit
func (a *app) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			a.view.Yaw += 0.1
		case tcell.KeyRight:
			a.view.Yaw -= 0.1
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ', 'p':
				a.loop.Toggle()
			case 'r':
				a.loop.Reset()
			case '+', '=':
				a.loop.SetTimeScale(a.loop.TimeScale() * 2)
			case '-':
				a.loop.SetTimeScale(a.loop.TimeScale() / 2)
			}
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *app) status() string {
	s := fmt.Sprintf(" t=%.1fs  %d particles  x%.2f  space pause  r reset  </> rotate  q quit",
		a.loop.T, len(a.snap.Particles), a.loop.TimeScale())
	if a.loop.State == core.StatePaused {
		s += "  [PAUSED]"
	}
	return s
}

func (a *app) run() {
	ticker := time.NewTicker(a.tick)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !a.handleInput(ev) {
				return
			}
		case <-ticker.C:
			a.loop.Update()
			a.loop.Events.Dispatch()
			a.loop.Engine.Snapshot(&a.snap)
			a.view.Draw(&a.snap, a.status())
		}
	}
}

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults when empty)")
	logPath := flag.String("log", "", "append logs to this file (the terminal is busy drawing)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}

	l := logger.Discard()
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		l = logger.NewWithWriters("term", f, f)
	}

	loop, err := cfg.NewLoop()
	if err != nil {
		log.Fatal(err)
	}
	core.LogEvents(loop.Events, l)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	a := &app{
		screen: screen,
		view:   termview.NewView(screen, cfg.Particles),
		loop:   loop,
		tick:   cfg.Sim.TickInterval(),
	}
	l.Infof("terminal fountain: %d particles at %d Hz", cfg.Particles.MaxParticles, cfg.Sim.TickRate)
	a.run()
	screen.Fini()
}
