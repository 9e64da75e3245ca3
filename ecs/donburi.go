package ecs

import (
	"github.com/phanxgames/overlay"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType carries the overlay's drag start, scale start and
// release events. Release events also report the released position and the
// object that was being dragged or scaled, so a system can commit the edit.
var InteractionEventType = events.NewEventType[overlay.Event]()

type donburiSink struct {
	world donburi.World
	only  map[overlay.EventType]bool
}

// NewDonburiSink returns an EventSink that publishes overlay events to
// InteractionEventType in world. With no types every event is published;
// otherwise only the listed types are and the rest are dropped.
//
// Published events are queued until events.ProcessEvents or
// events.ProcessAllEvents runs, usually once per ECS update.
func NewDonburiSink(world donburi.World, types ...overlay.EventType) overlay.EventSink {
	s := &donburiSink{world: world}
	if len(types) > 0 {
		s.only = make(map[overlay.EventType]bool, len(types))
		for _, t := range types {
			s.only[t] = true
		}
	}
	return s
}

func (s *donburiSink) EmitEvent(event overlay.Event) {
	if s.only != nil && !s.only[event.Type] {
		return
	}
	InteractionEventType.Publish(s.world, event)
}
