package ecs

import (
	"slices"

	"github.com/alienkitty/space"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TweenEventType carries scheduler lifecycle events through a Donburi world.
var TweenEventType = events.NewEventType[space.TweenEvent]()

type donburiSink struct {
	world donburi.World
	only  []space.EventType
}

// NewDonburiSink queues scheduler events on world. With no types every event
// is queued; otherwise only the listed types are, so a world that only reacts
// to completions does not buffer a started event per tween.
func NewDonburiSink(world donburi.World, only ...space.EventType) space.EventSink {
	return &donburiSink{world: world, only: only}
}

func (s *donburiSink) EmitEvent(event space.TweenEvent) {
	if len(s.only) > 0 && !slices.Contains(s.only, event.Type) {
		return
	}
	TweenEventType.Publish(s.world, event)
}
