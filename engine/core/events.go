package core

// Event is something the host loop reports to its listeners.
type Event struct {
	Type    EventType
	Frame   uint64
	T       float64 // simulation time when the event was emitted
	Payload interface{}
}

type EventType uint16

const (
	EvtFrame         EventType = iota // Payload: particles.StepResult
	EvtPoolExhausted                  // Payload: particles.StepResult
	EvtPaused
	EvtResumed
	EvtReset
	EvtRecordFailed // Payload: error
)

func (t EventType) String() string {
	switch t {
	case EvtFrame:
		return "frame"
	case EvtPoolExhausted:
		return "pool-exhausted"
	case EvtPaused:
		return "paused"
	case EvtResumed:
		return "resumed"
	case EvtReset:
		return "reset"
	case EvtRecordFailed:
		return "record-failed"
	}
	return "unknown"
}

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[EventType][]EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Pending returns the number of queued events
func (eb *EventBus) Pending() int { return len(eb.queue) }

// Dispatch processes all queued events. Handlers may emit; those events
// wait for the next Dispatch.
func (eb *EventBus) Dispatch() {
	queue := eb.queue
	eb.queue = nil
	for _, e := range queue {
		if handlers, ok := eb.listeners[e.Type]; ok {
			for _, h := range handlers {
				h(e)
			}
		}
	}
	if eb.queue == nil {
		eb.queue = queue[:0]
	}
}
