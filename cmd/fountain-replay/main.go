package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/1siamBot/fountain/engine/network"
	"github.com/1siamBot/fountain/engine/particles"
	"github.com/1siamBot/fountain/engine/termview"
	"github.com/gdamore/tcell/v2"
)

func printSummary(path string, r *network.Replay) error {
	s, err := r.Summarize()
	if err != nil {
		return err
	}
	fmt.Printf("%s: seed %d, %d particles, %.2fs simulated\n", path, r.Seed, r.Config.MaxParticles, s.Duration)
	fmt.Printf("  steps %d, resets %d\n", s.Steps, s.Resets)
	fmt.Printf("  spawned %d, skipped %d, died %d\n", s.Spawned, s.Skipped, s.Died)
	fmt.Printf("  bounces: ledge %d, floor %d\n", s.LedgeBounces, s.FloorBounces)
	fmt.Printf("  active at end %d, peak %d\n", s.FinalActive, s.Peak)
	if s.Truncated {
		fmt.Println("  file ends in a partial record")
	}
	return nil
}

// watch plays the replay in the terminal at recorded speed
func watch(r *network.Replay, speed float64) error {
	eng, err := r.NewEngine()
	if err != nil {
		return err
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	quit := make(chan struct{})
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					close(quit)
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	view := termview.NewView(screen, r.Config)
	var snap particles.Snapshot
	r.Play(eng, func(rec network.FrameRecord, _ particles.StepResult) bool {
		eng.Snapshot(&snap)
		view.Draw(&snap, fmt.Sprintf(" replay %d/%d  t=%.1fs  %d particles  q quit",
			rec.Seq+1, len(r.Records), rec.T, len(snap.Particles)))
		wait := time.Duration(rec.DT / speed * float64(time.Second))
		select {
		case <-quit:
			return false
		case <-time.After(wait):
			return true
		}
	})
	return nil
}

func main() {
	view := flag.Bool("view", false, "play the replay in the terminal")
	speed := flag.Float64("speed", 1, "playback speed for -view")
	flag.Parse()
	if flag.NArg() != 1 || !(*speed > 0) {
		fmt.Fprintln(os.Stderr, "usage: fountain-replay [-view] [-speed x] file.fntr")
		os.Exit(2)
	}

	path := flag.Arg(0)
	r, err := network.LoadReplay(path)
	if err != nil {
		log.Fatal(err)
	}
	if *view {
		if err := watch(r, *speed); err != nil {
			log.Fatal(err)
		}
	}
	if err := printSummary(path, r); err != nil {
		log.Fatal(err)
	}
}
