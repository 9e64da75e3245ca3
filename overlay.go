package overlay

import (
	"fmt"
	"math"
	"strings"
)

// Frame bundles the collaborators one Draw call reads. Scene, Pointer and
// Clock are required while inspect mode is on; Clock is required for the
// recording and log overlays; Logs may be nil.
type Frame struct {
	Canvas  Canvas
	Scene   Scene
	Pointer Pointer
	Clock   Clock
	Logs    *LogBuffer
}

// Overlay draws the debug overlays and owns the interaction state: which
// object is being dragged and which is being scaled. Call Draw once per
// frame after the scene has been drawn. Overlay is not safe for concurrent
// use; like the scene graph it belongs to the game loop.
//
// Scene objects are compared by identity, so Object implementations must be
// comparable (pointer types in practice).
type Overlay struct {
	// Config is read every frame; toggle fields freely between frames.
	Config Config

	dragging Object
	scaling  Object
	sink     EventSink
}

// New creates an Overlay with the given config. Use DefaultConfig as a base:
// a zero TimeScale shows the time-scale indicator.
func New(cfg Config) *Overlay {
	return &Overlay{Config: cfg}
}

// SetEventSink sets the optional receiver of interaction events.
func (o *Overlay) SetEventSink(sink EventSink) {
	o.sink = sink
}

// Dragging returns the object being dragged, or nil.
func (o *Overlay) Dragging() Object {
	return o.dragging
}

// Scaling returns the object whose scale handle is held, or nil. The overlay
// records the target but does not resize it; resize logic consumes this.
func (o *Overlay) Scaling() Object {
	return o.scaling
}

// BeginDrag makes obj the drag target. While inspect mode is on the object
// follows the pointer until the pointer is released.
func (o *Overlay) BeginDrag(obj Object) {
	if obj == nil || o.dragging == obj {
		return
	}
	o.dragging = obj
	o.emit(Event{Type: EventDragStart, Object: obj, Dragging: obj, Scaling: o.scaling})
}

// EndDrag clears both the drag and the scale target.
func (o *Overlay) EndDrag() {
	o.release(Vec2{})
}

// Draw renders every enabled overlay and advances the interaction state.
// Overlays are independent: each pinned overlay saves and restores the
// transform stack around its own drawing.
func (o *Overlay) Draw(f Frame) {
	if f.Canvas == nil {
		panic("overlay: Frame.Canvas is nil")
	}
	cfg := &o.Config

	if cfg.Inspect {
		if f.Scene == nil || f.Pointer == nil || f.Clock == nil {
			panic("overlay: inspect mode needs Frame.Scene, Frame.Pointer and Frame.Clock")
		}
		o.drawInspect(f)
	}
	if cfg.Paused {
		drawPaused(f.Canvas)
	}
	if cfg.TimeScale != 1 {
		drawTimeScale(f.Canvas, cfg.TimeScale)
	}
	if cfg.Recording {
		drawRecording(f.Canvas, mustClock(f).Time())
	}
	if cfg.ShowLog && f.Logs != nil && f.Logs.Len() > 0 {
		drawLog(f.Canvas, f.Logs, mustClock(f).Time(), cfg.Retention())
	}
}

func mustClock(f Frame) Clock {
	if f.Clock == nil {
		panic("overlay: Frame.Clock is nil")
	}
	return f.Clock
}

// drawInspect runs inspect mode: boxes for every object, hover selection,
// drag handling and the info panels.
func (o *Overlay) drawInspect(f Frame) {
	c, ptr := f.Canvas, f.Pointer
	mouse := ptr.Position()

	// First hovered area object in pre-order wins.
	var inspecting Object
	for _, obj := range f.Scene.Query("*", true) {
		o.drawInspectObj(c, ptr, obj)
		if obj.Has(CapabilityArea) && obj.IsHovering() {
			inspecting = obj
			break
		}
	}

	switch {
	case ptr.IsJustReleased():
		o.release(mouse)
	case ptr.IsJustPressed() && inspecting != nil && o.scaling == nil:
		o.BeginDrag(inspecting)
	}

	f.Scene.DrawInspect(c)

	if o.dragging != nil {
		o.follow(f.Scene.Root(), mouse)
	}

	if inspecting != nil {
		entries := inspecting.Inspect()
		lines := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.Summary != "" {
				lines = append(lines, e.Summary)
			} else {
				lines = append(lines, e.Tag)
			}
		}
		drawInspectText(c, c.ContentToView(mouse), strings.Join(lines, "\n"))
	}

	drawInspectText(c, V(8, 8), fmt.Sprintf("FPS: %d", int(math.Round(f.Clock.FPS()))))
}

// follow moves the drag target to the pointer, in its parent's space unless
// the parent is the tree root, whose space is the content space.
func (o *Overlay) follow(root Object, mouse Vec2) {
	if p := o.dragging.Parent(); p != nil && p != root {
		o.dragging.SetPos(mouse.Sub(p.Pos()))
		return
	}
	o.dragging.SetPos(mouse)
}

func (o *Overlay) release(at Vec2) {
	if o.dragging == nil && o.scaling == nil {
		return
	}
	ev := Event{Type: EventRelease, Pos: at, Dragging: o.dragging, Scaling: o.scaling}
	o.dragging = nil
	o.scaling = nil
	o.emit(ev)
}

func (o *Overlay) setScaling(obj Object, at Vec2) {
	if o.scaling == obj {
		return
	}
	o.scaling = obj
	o.emit(Event{Type: EventScaleStart, Object: obj, Pos: at, Dragging: o.dragging, Scaling: obj})
}

func (o *Overlay) emit(ev Event) {
	if o.sink != nil {
		o.sink.EmitEvent(ev)
	}
}
