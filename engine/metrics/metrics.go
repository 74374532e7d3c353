// Package metrics collects simulation and streaming counters.
package metrics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/1siamBot/fountain/engine/particles"
)

// Collector gathers performance metrics.
type Collector struct {
	// Step metrics
	Steps          int64
	SubSteps       int64
	StepLatencySum int64 // nanoseconds
	StepLatencyMax int64
	LastStepTime   time.Time

	// Particle metrics
	Spawned      int64
	Skipped      int64
	Died         int64
	LedgeBounces int64
	FloorBounces int64
	Active       int64

	// WebSocket metrics
	WSConnectionsActive int64
	WSMessagesOut       int64
	WSDropped           int64
	WSErrors            int64

	// Replay
	FramesRecorded int64
	RecordErrors   int64

	StartTime time.Time
	mu        sync.RWMutex
}

// New returns a collector whose uptime starts now.
func New() *Collector {
	return &Collector{StartTime: time.Now()}
}

// RecordStep records one engine step and how long it took.
func (c *Collector) RecordStep(res particles.StepResult, latency time.Duration) {
	atomic.AddInt64(&c.Steps, 1)
	atomic.AddInt64(&c.SubSteps, int64(res.SubSteps))
	atomic.AddInt64(&c.StepLatencySum, int64(latency))

	// Update max (non-atomic but acceptable for metrics)
	if int64(latency) > atomic.LoadInt64(&c.StepLatencyMax) {
		atomic.StoreInt64(&c.StepLatencyMax, int64(latency))
	}

	atomic.AddInt64(&c.Spawned, int64(res.Spawned))
	atomic.AddInt64(&c.Skipped, int64(res.Skipped))
	atomic.AddInt64(&c.Died, int64(res.Died))
	atomic.AddInt64(&c.LedgeBounces, int64(res.LedgeBounces))
	atomic.AddInt64(&c.FloorBounces, int64(res.FloorBounces))
	atomic.StoreInt64(&c.Active, int64(res.Active))

	c.mu.Lock()
	c.LastStepTime = time.Now()
	c.mu.Unlock()
}

// RecordWSConnection records WebSocket connection changes.
func (c *Collector) RecordWSConnection(delta int64) {
	atomic.AddInt64(&c.WSConnectionsActive, delta)
}

// RecordWSMessage records one frame sent to one client.
func (c *Collector) RecordWSMessage() {
	atomic.AddInt64(&c.WSMessagesOut, 1)
}

// RecordWSDrop records a frame dropped for a slow client.
func (c *Collector) RecordWSDrop() {
	atomic.AddInt64(&c.WSDropped, 1)
}

// RecordWSError records a WebSocket error.
func (c *Collector) RecordWSError() {
	atomic.AddInt64(&c.WSErrors, 1)
}

// RecordFrameWrite records a replay frame write.
func (c *Collector) RecordFrameWrite(err error) {
	if err != nil {
		atomic.AddInt64(&c.RecordErrors, 1)
		return
	}
	atomic.AddInt64(&c.FramesRecorded, 1)
}

// Snapshot returns current metrics as a map.
func (c *Collector) Snapshot() map[string]interface{} {
	c.mu.RLock()
	last := c.LastStepTime
	c.mu.RUnlock()

	steps := atomic.LoadInt64(&c.Steps)
	var avg float64
	if steps > 0 {
		avg = float64(atomic.LoadInt64(&c.StepLatencySum)) / float64(steps) / 1e6 // ms
	}
	lastStep := ""
	if !last.IsZero() {
		lastStep = last.Format(time.RFC3339)
	}

	return map[string]interface{}{
		"uptime_seconds": time.Since(c.StartTime).Seconds(),

		"step": map[string]interface{}{
			"count":          steps,
			"sub_steps":      atomic.LoadInt64(&c.SubSteps),
			"avg_latency_ms": avg,
			"max_latency_ms": float64(atomic.LoadInt64(&c.StepLatencyMax)) / 1e6,
			"last_step":      lastStep,
		},

		"particles": map[string]interface{}{
			"active":        atomic.LoadInt64(&c.Active),
			"spawned":       atomic.LoadInt64(&c.Spawned),
			"skipped":       atomic.LoadInt64(&c.Skipped),
			"died":          atomic.LoadInt64(&c.Died),
			"ledge_bounces": atomic.LoadInt64(&c.LedgeBounces),
			"floor_bounces": atomic.LoadInt64(&c.FloorBounces),
		},

		"websocket": map[string]interface{}{
			"active_connections": atomic.LoadInt64(&c.WSConnectionsActive),
			"messages_out":       atomic.LoadInt64(&c.WSMessagesOut),
			"dropped":            atomic.LoadInt64(&c.WSDropped),
			"errors":             atomic.LoadInt64(&c.WSErrors),
		},

		"replay": map[string]interface{}{
			"frames_recorded": atomic.LoadInt64(&c.FramesRecorded),
			"errors":          atomic.LoadInt64(&c.RecordErrors),
		},
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (c *Collector) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")
		json.NewEncoder(w).Encode(c.Snapshot())
	}
}

// PrometheusHandler returns the counters in Prometheus text format.
func (c *Collector) PrometheusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		counter := func(name, help string, v int64) {
			fmt.Fprintf(w, "# HELP fountain_%s %s\n", name, help)
			fmt.Fprintf(w, "# TYPE fountain_%s counter\n", name)
			fmt.Fprintf(w, "fountain_%s %d\n\n", name, v)
		}
		gauge := func(name, help string, v float64) {
			fmt.Fprintf(w, "# HELP fountain_%s %s\n", name, help)
			fmt.Fprintf(w, "# TYPE fountain_%s gauge\n", name)
			fmt.Fprintf(w, "fountain_%s %g\n\n", name, v)
		}

		counter("steps_total", "Engine steps", atomic.LoadInt64(&c.Steps))
		counter("sub_steps_total", "Integration sub-steps", atomic.LoadInt64(&c.SubSteps))
		gauge("step_latency_max_ms", "Maximum step latency", float64(atomic.LoadInt64(&c.StepLatencyMax))/1e6)
		gauge("particles_active", "Active particles after the last step", float64(atomic.LoadInt64(&c.Active)))
		counter("particles_spawned_total", "Particles spawned", atomic.LoadInt64(&c.Spawned))
		counter("particles_skipped_total", "Births skipped on a full pool", atomic.LoadInt64(&c.Skipped))
		counter("particles_died_total", "Particles expired", atomic.LoadInt64(&c.Died))

		fmt.Fprintf(w, "# HELP fountain_bounces_total Collision responses\n")
		fmt.Fprintf(w, "# TYPE fountain_bounces_total counter\n")
		fmt.Fprintf(w, "fountain_bounces_total{surface=\"ledge\"} %d\n", atomic.LoadInt64(&c.LedgeBounces))
		fmt.Fprintf(w, "fountain_bounces_total{surface=\"floor\"} %d\n\n", atomic.LoadInt64(&c.FloorBounces))

		gauge("ws_connections", "Active WebSocket connections", float64(atomic.LoadInt64(&c.WSConnectionsActive)))
		counter("ws_messages_out_total", "Frames sent to clients", atomic.LoadInt64(&c.WSMessagesOut))
		counter("ws_dropped_total", "Frames dropped for slow clients", atomic.LoadInt64(&c.WSDropped))
	}
}
