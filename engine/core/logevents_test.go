package core

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/1siamBot/fountain/engine/logger"
	"github.com/1siamBot/fountain/engine/particles"
)

func TestLogEvents(t *testing.T) {
	var out, errOut bytes.Buffer
	bus := NewEventBus()
	LogEvents(bus, logger.NewWithWriters("test", &out, &errOut))

	for _, f := range []uint64{3, 4, 5, 9} {
		bus.Emit(Event{Type: EvtPoolExhausted, Frame: f, Payload: particles.StepResult{Skipped: 1}})
	}
	bus.Emit(Event{Type: EvtFrame, Frame: 10})
	bus.Emit(Event{Type: EvtPaused, Frame: 10, T: 2})
	bus.Emit(Event{Type: EvtRecordFailed, Frame: 11, Payload: errors.New("disk full")})
	bus.Dispatch()

	logged := out.String()
	if n := strings.Count(logged, "[EVENT:pool-exhausted]"); n != 2 {
		t.Errorf("exhaustion logged %d times, want 2 (frames 3 and 9):\n%s", n, logged)
	}
	if !strings.Contains(logged, "[EVENT:paused] frame:10 | t=2.000") {
		t.Errorf("pause not logged:\n%s", logged)
	}
	if strings.Contains(logged, "[EVENT:frame]") {
		t.Error("frame events should not be logged")
	}
	if !strings.Contains(errOut.String(), "replay recording stopped at frame 11: disk full") {
		t.Errorf("record failure not logged: %q", errOut.String())
	}
}
