package overlay

// Capability names an object must carry to take part in hover selection.
const CapabilityArea = "area"

// InspectEntry is one line of an object's inspect summary. Tag names the
// component or tag; Summary is its human-readable state and may be empty.
type InspectEntry struct {
	Tag     string
	Summary string
}

// Object is the view of a scene object the overlays need.
type Object interface {
	Pos() Vec2
	SetPos(p Vec2)
	// Anchor returns AnchorUnset when the object has no anchor.
	Anchor() Anchor
	Width() float64
	Height() float64
	// RenderArea returns the object's drawn box in its own space.
	RenderArea() Rect
	Has(capability string) bool
	IsHovering() bool
	// Inspect returns the object's summary in display order.
	Inspect() []InspectEntry
	// Parent returns nil for the root and for detached objects.
	Parent() Object
}

// Scene is the scene graph the inspect overlay walks.
type Scene interface {
	Root() Object
	// Query returns objects carrying tag ("*" matches all) in depth-first
	// pre-order, children in insertion order. Without recursive only the
	// root's direct children are considered.
	Query(tag string, recursive bool) []Object
	// DrawInspect draws graph-specific inspect decoration.
	DrawInspect(c Canvas)
}
