package overlay

// syntheticPointerEvent represents a single injected pointer event.
// Screen coordinates are used (matching what a screenshot shows) and
// converted to content coordinates through the pointer's View, identical to
// real mouse input.
type syntheticPointerEvent struct {
	screen  Vec2
	pressed bool
}

// ScriptedPointer is a Pointer driven by queued events, one per frame. It
// lets tests and automation scripts exercise inspect mode without a mouse.
// While the queue is empty the pointer holds its last state, or delegates
// to Fallback when one is set.
type ScriptedPointer struct {
	// View converts screen to content coordinates; nil uses screen space.
	View *ScreenCanvas
	// Fallback receives all queries while no injected event is active.
	Fallback Pointer

	queue      []syntheticPointerEvent
	pos        Vec2
	pressed    bool
	wasPressed bool
	active     bool
}

// NewScriptedPointer returns an idle pointer at the origin.
func NewScriptedPointer() *ScriptedPointer {
	return &ScriptedPointer{}
}

// Press queues a pointer press event at the given screen coordinates.
// The event is consumed on the next Advance.
func (p *ScriptedPointer) Press(x, y float64) {
	p.queue = append(p.queue, syntheticPointerEvent{screen: V(x, y), pressed: true})
}

// Move queues a pointer move event at the given screen coordinates with
// the button held down. Use this between Press and Release to simulate a
// drag.
func (p *ScriptedPointer) Move(x, y float64) {
	p.queue = append(p.queue, syntheticPointerEvent{screen: V(x, y), pressed: true})
}

// Hover queues a pointer move with the button up.
func (p *ScriptedPointer) Hover(x, y float64) {
	p.queue = append(p.queue, syntheticPointerEvent{screen: V(x, y)})
}

// Release queues a pointer release event at the given screen coordinates.
func (p *ScriptedPointer) Release(x, y float64) {
	p.queue = append(p.queue, syntheticPointerEvent{screen: V(x, y)})
}

// Click is a convenience that queues a press followed by a release at the
// same screen coordinates. Consumes two frames.
func (p *ScriptedPointer) Click(x, y float64) {
	p.Press(x, y)
	p.Release(x, y)
}

// Drag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (p *ScriptedPointer) Drag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	p.Press(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		p.Move(x, y)
	}
	p.Release(toX, toY)
}

// Pending returns the number of queued events.
func (p *ScriptedPointer) Pending() int {
	return len(p.queue)
}

// Advance pops one event from the queue and applies it. Call it once per
// frame before Overlay.Draw. Returns true if an event was consumed.
func (p *ScriptedPointer) Advance() bool {
	p.wasPressed = p.pressed
	if len(p.queue) == 0 {
		p.active = p.pressed
		return false
	}
	evt := p.queue[0]
	copy(p.queue, p.queue[1:])
	p.queue = p.queue[:len(p.queue)-1]

	p.pos = evt.screen
	if p.View != nil {
		p.pos = p.View.ViewToContent(evt.screen)
	}
	p.pressed = evt.pressed
	p.active = true
	return true
}

func (p *ScriptedPointer) delegate() bool {
	return !p.active && p.Fallback != nil
}

// Position returns the pointer in content space.
func (p *ScriptedPointer) Position() Vec2 {
	if p.delegate() {
		return p.Fallback.Position()
	}
	return p.pos
}

// IsPressed reports whether the injected button is held.
func (p *ScriptedPointer) IsPressed() bool {
	if p.delegate() {
		return p.Fallback.IsPressed()
	}
	return p.pressed
}

// IsJustPressed reports a press on the last Advance.
func (p *ScriptedPointer) IsJustPressed() bool {
	if p.delegate() {
		return p.Fallback.IsJustPressed()
	}
	return p.pressed && !p.wasPressed
}

// IsJustReleased reports a release on the last Advance.
func (p *ScriptedPointer) IsJustReleased() bool {
	if p.delegate() {
		return p.Fallback.IsJustReleased()
	}
	return !p.pressed && p.wasPressed
}
