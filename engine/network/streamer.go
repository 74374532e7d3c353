package network

import (
	"context"
	"time"

	"github.com/1siamBot/fountain/engine/core"
	"github.com/1siamBot/fountain/engine/logger"
	"github.com/1siamBot/fountain/engine/metrics"
	"github.com/1siamBot/fountain/engine/particles"
)

// Streamer runs a loop at a fixed step and publishes frames to a hub.
// Stepping and snapshotting share one goroutine, so the engine is never
// read while it steps.
type Streamer struct {
	loop     *core.Loop
	hub      *Hub
	metrics  *metrics.Collector
	logger   *logger.Logger
	step     time.Duration
	interval time.Duration
	limit    int

	snap particles.Snapshot
	seq  uint64
}

// NewStreamer steps loop every step of wall time and broadcasts every
// interval. limit caps particles per frame (0 = all). m may be nil.
func NewStreamer(loop *core.Loop, hub *Hub, m *metrics.Collector, log *logger.Logger, step, interval time.Duration, limit int) *Streamer {
	return &Streamer{
		loop:     loop,
		hub:      hub,
		metrics:  m,
		logger:   log,
		step:     step,
		interval: interval,
		limit:    limit,
	}
}

// Run steps and publishes until ctx is done.
func (s *Streamer) Run(ctx context.Context) {
	s.logger.Infof("streaming: step %v, frame every %v", s.step, s.interval)

	stepTicker := time.NewTicker(s.step)
	defer stepTicker.Stop()
	frameTicker := time.NewTicker(s.interval)
	defer frameTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("streamer stopped")
			return
		case <-stepTicker.C:
			s.Step()
		case <-frameTicker.C:
			if !s.Publish() {
				return
			}
		}
	}
}

// Step advances the simulation by one fixed step, scaled by the loop's
// time scale. Paused loops do not advance.
func (s *Streamer) Step() particles.StepResult {
	if s.loop.State != core.StatePlaying {
		return particles.StepResult{}
	}
	start := time.Now()
	res := s.loop.Advance(s.step.Seconds() * s.loop.TimeScale())
	if s.metrics != nil {
		s.metrics.RecordStep(res, time.Since(start))
	}
	s.loop.Events.Dispatch()
	return res
}

// Publish broadcasts the current state. It returns false once the hub has
// stopped.
func (s *Streamer) Publish() bool {
	s.loop.Engine.Snapshot(&s.snap)
	data, err := NewFrame(s.seq, &s.snap, s.limit).Marshal()
	if err != nil {
		s.logger.Errorf("encode frame %d: %v", s.seq, err)
		return true
	}
	s.seq++
	return s.hub.Broadcast(data)
}
