package core

import (
	"fmt"

	"github.com/1siamBot/fountain/engine/logger"
	"github.com/1siamBot/fountain/engine/particles"
)

// LogEvents reports the loop's control events through log. Frame events
// are not logged; a run of exhausted frames is logged once, when it starts.
func LogEvents(bus *EventBus, log *logger.Logger) {
	var lastExhausted uint64
	bus.On(EvtPoolExhausted, func(e Event) {
		if lastExhausted == 0 || e.Frame != lastExhausted+1 {
			res, _ := e.Payload.(particles.StepResult)
			log.Event(e.Type.String(), e.Frame, fmt.Sprintf("t=%.3f skipped=%d active=%d", e.T, res.Skipped, res.Active))
		}
		lastExhausted = e.Frame
	})
	for _, t := range []EventType{EvtPaused, EvtResumed, EvtReset} {
		bus.On(t, func(e Event) {
			log.Event(e.Type.String(), e.Frame, fmt.Sprintf("t=%.3f", e.T))
		})
	}
	bus.On(EvtRecordFailed, func(e Event) {
		log.Errorf("replay recording stopped at frame %d: %v", e.Frame, e.Payload)
	})
}
