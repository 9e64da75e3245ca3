package overlay

// EventType identifies a change of the overlay's interaction state.
type EventType uint8

const (
	EventDragStart  EventType = iota // an object became the drag target
	EventScaleStart                  // an object's scale handle was pressed
	EventRelease                     // the pointer was released, clearing both targets
)

// String returns a short name for the event type.
func (t EventType) String() string {
	switch t {
	case EventDragStart:
		return "drag_start"
	case EventScaleStart:
		return "scale_start"
	case EventRelease:
		return "release"
	default:
		return "unknown"
	}
}

// Event carries an interaction state change. Dragging and Scaling hold the
// targets before a release, or the new target for start events.
type Event struct {
	Type     EventType
	Object   Object
	Pos      Vec2
	Dragging Object
	Scaling  Object
}

// EventSink receives interaction events. Set one with Overlay.SetEventSink
// to forward overlay interaction to an ECS or an editor.
type EventSink interface {
	EmitEvent(event Event)
}
