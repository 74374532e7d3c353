// Package core drives the fountain engine from host frames.
package core

import (
	"time"

	"github.com/1siamBot/fountain/engine/particles"
)

// LoopState is the play/pause state of the host loop
type LoopState uint8

const (
	StatePlaying LoopState = iota
	StatePaused
)

// FrameSink receives every (t, dt) pair the engine was stepped with, in
// order. A replay recorder is the usual sink.
type FrameSink interface {
	RecordFrame(t, dt float64) error
}

// ResetSink is implemented by sinks that also record Reset calls.
type ResetSink interface {
	RecordReset(t float64) error
}

// LoopConfig tunes how wall-clock frames become simulation deltas
type LoopConfig struct {
	// MaxFrameDelta caps one frame's simulated delta in seconds. Zero leaves
	// it uncapped so the engine's sub-stepping absorbs stalls.
	MaxFrameDelta float64
	// TimeScale multiplies wall-clock deltas. Zero means 1.
	TimeScale float64
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

// Loop turns host frames into engine steps. Simulation time T only moves
// forward.
type Loop struct {
	Engine *particles.Engine
	Events *EventBus
	State  LoopState
	T      float64 // simulation seconds
	Frame  uint64  // steps taken

	maxFrameDelta float64
	timeScale     float64
	now           func() time.Time
	lastTime      time.Time
	started       bool
	sink          FrameSink
}

// NewLoop creates a playing loop around eng
func NewLoop(eng *particles.Engine, cfg LoopConfig) *Loop {
	if cfg.TimeScale <= 0 {
		cfg.TimeScale = 1
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Loop{
		Engine:        eng,
		Events:        NewEventBus(),
		State:         StatePlaying,
		maxFrameDelta: cfg.MaxFrameDelta,
		timeScale:     cfg.TimeScale,
		now:           cfg.Now,
	}
}

// SetSink attaches a frame recorder. Pass nil to detach.
func (gl *Loop) SetSink(s FrameSink) { gl.sink = s }

// TimeScale returns the wall-clock multiplier
func (gl *Loop) TimeScale() float64 { return gl.timeScale }

// SetTimeScale changes the wall-clock multiplier; non-positive values are ignored
func (gl *Loop) SetTimeScale(s float64) {
	if s > 0 {
		gl.timeScale = s
	}
}

// Update should be called every render frame. It measures the frame time
// from the loop's clock and steps the engine by it.
func (gl *Loop) Update() particles.StepResult {
	return gl.Tick(gl.now())
}

// Tick steps the engine by the time elapsed since the previous Tick. The
// first Tick after creation or Play only sets the reference time.
func (gl *Loop) Tick(now time.Time) particles.StepResult {
	if !gl.started {
		gl.lastTime = now
		gl.started = true
		return particles.StepResult{}
	}
	frameTime := now.Sub(gl.lastTime).Seconds()
	gl.lastTime = now
	if frameTime <= 0 || gl.State != StatePlaying {
		return particles.StepResult{}
	}

	dt := frameTime * gl.timeScale
	if gl.maxFrameDelta > 0 && dt > gl.maxFrameDelta {
		dt = gl.maxFrameDelta
	}
	return gl.Advance(dt)
}

// Advance steps the engine by an explicit delta, regardless of State.
func (gl *Loop) Advance(dt float64) particles.StepResult {
	if dt <= 0 {
		return particles.StepResult{}
	}
	gl.T += dt
	res := gl.Engine.Step(gl.T, dt)
	gl.Frame++

	if gl.sink != nil {
		if err := gl.sink.RecordFrame(gl.T, dt); err != nil {
			gl.sink = nil
			gl.emit(EvtRecordFailed, err)
		}
	}
	gl.emit(EvtFrame, res)
	if res.Skipped > 0 {
		gl.emit(EvtPoolExhausted, res)
	}
	return res
}

// Play starts or resumes the loop
func (gl *Loop) Play() {
	if gl.State == StatePlaying {
		return
	}
	gl.State = StatePlaying
	gl.started = false
	gl.emit(EvtResumed, nil)
}

// Pause stops stepping; wall-clock time spent paused is dropped
func (gl *Loop) Pause() {
	if gl.State == StatePaused {
		return
	}
	gl.State = StatePaused
	gl.emit(EvtPaused, nil)
}

// Toggle flips between playing and paused
func (gl *Loop) Toggle() {
	if gl.State == StatePlaying {
		gl.Pause()
	} else {
		gl.Play()
	}
}

// Reset empties the fountain. Simulation time keeps running from T.
func (gl *Loop) Reset() {
	gl.Engine.Reset()
	if rs, ok := gl.sink.(ResetSink); ok {
		if err := rs.RecordReset(gl.T); err != nil {
			gl.sink = nil
			gl.emit(EvtRecordFailed, err)
		}
	}
	gl.emit(EvtReset, nil)
}

func (gl *Loop) emit(t EventType, payload interface{}) {
	gl.Events.Emit(Event{Type: t, Frame: gl.Frame, T: gl.T, Payload: payload})
}
