package core

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/1siamBot/fountain/engine/particles"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Add(d time.Duration) { c.t = c.t.Add(d) }

type memSink struct {
	frames [][2]float64
	resets []float64
	err    error
}

func (s *memSink) RecordFrame(t, dt float64) error {
	if s.err != nil {
		return s.err
	}
	s.frames = append(s.frames, [2]float64{t, dt})
	return nil
}

func (s *memSink) RecordReset(t float64) error {
	s.resets = append(s.resets, t)
	return nil
}

func newTestLoop(t *testing.T, cfg LoopConfig) (*Loop, *fakeClock) {
	t.Helper()
	pc := particles.DefaultConfig()
	pc.MaxParticles = 100
	pc.LifeSpan = 1
	eng, err := particles.New(pc)
	if err != nil {
		t.Fatalf("particles.New: %v", err)
	}
	clock := &fakeClock{t: time.Unix(1000, 0)}
	cfg.Now = clock.Now
	return NewLoop(eng, cfg), clock
}

func TestLoopFirstTickSetsReference(t *testing.T) {
	gl, clock := newTestLoop(t, LoopConfig{})
	if res := gl.Update(); res.SubSteps != 0 {
		t.Fatalf("first tick stepped: %+v", res)
	}
	clock.Add(100 * time.Millisecond)
	res := gl.Update()
	if res.SubSteps == 0 {
		t.Fatal("second tick did not step")
	}
	if math.Abs(gl.T-0.1) > 1e-9 {
		t.Errorf("T = %v, want 0.1", gl.T)
	}
	if gl.Frame != 1 {
		t.Errorf("Frame = %d, want 1", gl.Frame)
	}
}

func TestLoopTimeScaleAndCap(t *testing.T) {
	tests := []struct {
		name  string
		cfg   LoopConfig
		frame time.Duration
		want  float64
	}{
		{"uncapped stall", LoopConfig{}, 3 * time.Second, 3},
		{"capped stall", LoopConfig{MaxFrameDelta: 0.25}, 3 * time.Second, 0.25},
		{"slow motion", LoopConfig{TimeScale: 0.5}, time.Second, 0.5},
		{"scale then cap", LoopConfig{TimeScale: 4, MaxFrameDelta: 1}, time.Second, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gl, clock := newTestLoop(t, tt.cfg)
			gl.Update()
			clock.Add(tt.frame)
			gl.Update()
			if math.Abs(gl.T-tt.want) > 1e-9 {
				t.Errorf("T = %v, want %v", gl.T, tt.want)
			}
		})
	}
}

func TestLoopPauseDropsTime(t *testing.T) {
	gl, clock := newTestLoop(t, LoopConfig{})
	var paused, resumed int
	gl.Events.On(EvtPaused, func(Event) { paused++ })
	gl.Events.On(EvtResumed, func(Event) { resumed++ })

	gl.Update()
	clock.Add(time.Second)
	gl.Update()

	gl.Toggle()
	clock.Add(5 * time.Second)
	if res := gl.Update(); res.SubSteps != 0 {
		t.Fatal("paused loop stepped")
	}

	gl.Toggle()
	clock.Add(10 * time.Second)
	gl.Update() // re-reference after resume
	clock.Add(time.Second)
	gl.Update()
	gl.Events.Dispatch()

	if math.Abs(gl.T-2) > 1e-9 {
		t.Errorf("T = %v, want 2", gl.T)
	}
	if paused != 1 || resumed != 1 {
		t.Errorf("paused = %d, resumed = %d", paused, resumed)
	}
}

func TestLoopIgnoresBackwardClock(t *testing.T) {
	gl, clock := newTestLoop(t, LoopConfig{})
	gl.Update()
	clock.Add(-time.Second)
	if res := gl.Update(); res.SubSteps != 0 {
		t.Fatal("stepped on a backward clock")
	}
	if gl.T != 0 {
		t.Errorf("T = %v", gl.T)
	}
}

func TestLoopEventsAndSink(t *testing.T) {
	gl, _ := newTestLoop(t, LoopConfig{})
	sink := &memSink{}
	gl.SetSink(sink)

	var frames int
	var last particles.StepResult
	gl.Events.On(EvtFrame, func(e Event) {
		frames++
		last = e.Payload.(particles.StepResult)
	})

	gl.Advance(0.1)
	gl.Advance(0.2)
	gl.Advance(0)
	gl.Events.Dispatch()

	if frames != 2 {
		t.Fatalf("frame events = %d, want 2", frames)
	}
	if last != gl.Engine.Last() {
		t.Errorf("payload %+v, engine last %+v", last, gl.Engine.Last())
	}
	if len(sink.frames) != 2 {
		t.Fatalf("recorded %d frames", len(sink.frames))
	}
	if math.Abs(sink.frames[1][0]-0.3) > 1e-9 || sink.frames[1][1] != 0.2 {
		t.Errorf("second frame = %v", sink.frames[1])
	}
}

func TestLoopSinkFailureDetaches(t *testing.T) {
	gl, _ := newTestLoop(t, LoopConfig{})
	sink := &memSink{err: errors.New("disk full")}
	gl.SetSink(sink)

	var failures int
	gl.Events.On(EvtRecordFailed, func(e Event) {
		failures++
		if e.Payload.(error) != sink.err {
			t.Errorf("payload = %v", e.Payload)
		}
	})

	gl.Advance(0.1)
	gl.Advance(0.1)
	gl.Events.Dispatch()
	if failures != 1 {
		t.Errorf("failures = %d, want 1", failures)
	}
}

func TestLoopPoolExhaustedEvent(t *testing.T) {
	pc := particles.DefaultConfig()
	pc.MaxParticles = 2
	pc.LifeSpan = 100
	eng, err := particles.New(pc, particles.WithSlotFinder(noSlots{}))
	if err != nil {
		t.Fatal(err)
	}
	gl := NewLoop(eng, LoopConfig{})

	var exhausted int
	gl.Events.On(EvtPoolExhausted, func(Event) { exhausted++ })
	gl.Advance(pc.BirthInterval() * 3)
	gl.Events.Dispatch()
	if exhausted != 1 {
		t.Errorf("exhausted events = %d, want 1", exhausted)
	}
}

func TestLoopResetKeepsTime(t *testing.T) {
	gl, _ := newTestLoop(t, LoopConfig{})
	gl.Advance(0.5)
	gl.Reset()
	if gl.Engine.Store().ActiveCount() != 0 {
		t.Error("store not emptied")
	}
	if gl.T != 0.5 {
		t.Errorf("T = %v after reset", gl.T)
	}
}

func TestLoopResetRecorded(t *testing.T) {
	gl, _ := newTestLoop(t, LoopConfig{})
	sink := &memSink{}
	gl.SetSink(sink)
	gl.Advance(0.25)
	gl.Reset()
	if len(sink.resets) != 1 || sink.resets[0] != 0.25 {
		t.Fatalf("resets = %v, want [0.25]", sink.resets)
	}
}

type noSlots struct{}

func (noSlots) FindFree(*particles.Store) (int, bool) { return -1, false }
