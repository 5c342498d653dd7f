package audit

import "log"

type Event struct {
	ActorID  *string
	Action   string
	Entity   string
	EntityID *string
	Metadata any
}

// Sink receives audit events off the queue. *Logger is the production sink.
type Sink interface {
	Log(actorID *string, action string, entity string, entityID *string, metadata any) error
}

type Dispatcher struct {
	sink  Sink
	queue chan Event
}

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.sink.Log(
			ev.ActorID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Println("audit error:", err)
		}
	}
}

// Dispatch never blocks a request: if the queue is full the event is
// dropped and noted in the server log.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		log.Println("audit queue full, dropping event")
	}
}
