package space

// EventSink is the interface for optional lifecycle observers such as the ECS
// bridge in space/ecs. When set on a Scheduler, record lifecycle changes are
// forwarded to it.
type EventSink interface {
	EmitEvent(event TweenEvent)
}

// EventType identifies a record lifecycle change.
type EventType uint8

const (
	EventStarted   EventType = iota // fires when a record leaves its delay and snapshots start values
	EventCompleted                  // fires after the final write, before OnComplete
	EventCancelled                  // fires when ClearTween cancels a live record
)

func (e EventType) String() string {
	switch e {
	case EventStarted:
		return "started"
	case EventCompleted:
		return "completed"
	case EventCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// TweenEvent carries lifecycle data to an EventSink.
type TweenEvent struct {
	Type   EventType
	Target any
	Record *Record
	// Frame is the ticker frame of the change. Cancellations outside a tick
	// report the last completed frame.
	Frame int
	// Timer is true for records scheduled through DelayedCall, Defer and Wait.
	Timer bool
}

func (s *Scheduler) emit(typ EventType, r *Record) {
	if s.sink == nil {
		return
	}
	s.sink.EmitEvent(TweenEvent{
		Type:   typ,
		Target: r.target,
		Record: r,
		Frame:  s.ticker.Frame(),
		Timer:  r.timer,
	})
}

// SetEventSink sets the optional lifecycle observer. Pass nil to remove it.
func (s *Scheduler) SetEventSink(sink EventSink) {
	s.sink = sink
}
