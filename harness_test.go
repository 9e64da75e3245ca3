package overlay

import (
	"math"
	"testing"
	"unicode/utf8"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want Vec2) {
	t.Helper()
	if math.Abs(got.X-want.X) > 1e-6 || math.Abs(got.Y-want.Y) > 1e-6 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// ---- fakeCanvas ----

// drawCall is one recorded Canvas draw with the translation in effect.
type drawCall struct {
	kind     string // "rect", "circle", "triangle", "text"
	at       Vec2
	depth    int
	unscaled bool

	rect     RectOpt
	circle   CircleOpt
	triangle TriangleOpt
	text     *FormattedText
}

// fakeCanvas records draw calls. Text is measured at charW per rune and
// lineH per line. ContentToView adds view.
type fakeCanvas struct {
	w, h  float64
	charW float64
	lineH float64
	view  Vec2

	tr       Vec2
	stack    []Vec2
	unscaled int
	maxDepth int
	calls    []drawCall
}

func newFakeCanvas() *fakeCanvas {
	return &fakeCanvas{w: 640, h: 480, charW: 8, lineH: 16}
}

func (c *fakeCanvas) Width() float64  { return c.w }
func (c *fakeCanvas) Height() float64 { return c.h }

func (c *fakeCanvas) record(d drawCall) {
	d.at = c.tr
	d.depth = len(c.stack)
	d.unscaled = c.unscaled > 0
	c.calls = append(c.calls, d)
}

func (c *fakeCanvas) DrawRect(opt RectOpt)         { c.record(drawCall{kind: "rect", rect: opt}) }
func (c *fakeCanvas) DrawCircle(opt CircleOpt)     { c.record(drawCall{kind: "circle", circle: opt}) }
func (c *fakeCanvas) DrawTriangle(opt TriangleOpt) { c.record(drawCall{kind: "triangle", triangle: opt}) }

func (c *fakeCanvas) FormatText(opt TextOpt) *FormattedText {
	measure := func(s string) float64 { return float64(utf8.RuneCountInString(s)) * c.charW }
	return layoutText(opt, measure, c.lineH)
}

func (c *fakeCanvas) DrawFormattedText(ft *FormattedText) {
	c.record(drawCall{kind: "text", text: ft})
}

func (c *fakeCanvas) PushTransform() {
	c.stack = append(c.stack, c.tr)
	if len(c.stack) > c.maxDepth {
		c.maxDepth = len(c.stack)
	}
}

func (c *fakeCanvas) PopTransform() {
	if len(c.stack) == 0 {
		panic("fakeCanvas: pop on empty stack")
	}
	c.tr = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *fakeCanvas) PushTranslate(x, y float64) { c.tr = c.tr.Add(V(x, y)) }

func (c *fakeCanvas) DrawUnscaled(fn func()) {
	c.unscaled++
	defer func() { c.unscaled-- }()
	fn()
}

func (c *fakeCanvas) ContentToView(p Vec2) Vec2 { return p.Add(c.view) }

func (c *fakeCanvas) byKind(kind string) []drawCall {
	var out []drawCall
	for _, d := range c.calls {
		if d.kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// texts returns the plain text of every drawn text block.
func (c *fakeCanvas) texts() []string {
	var out []string
	for _, d := range c.byKind("text") {
		out = append(out, d.text.String())
	}
	return out
}

// ---- fakeObject / fakeScene ----

type fakeObject struct {
	name    string
	pos     Vec2
	anchor  Anchor
	w, h    float64
	area    bool
	hover   bool
	entries []InspectEntry
	parent  Object
}

func (o *fakeObject) Pos() Vec2        { return o.pos }
func (o *fakeObject) SetPos(p Vec2)    { o.pos = p }
func (o *fakeObject) Anchor() Anchor   { return o.anchor }
func (o *fakeObject) Width() float64   { return o.w }
func (o *fakeObject) Height() float64  { return o.h }
func (o *fakeObject) RenderArea() Rect { return Rect{Width: o.w, Height: o.h} }
func (o *fakeObject) IsHovering() bool { return o.hover }
func (o *fakeObject) Parent() Object   { return o.parent }

func (o *fakeObject) Has(c string) bool { return c == CapabilityArea && o.area }

func (o *fakeObject) Inspect() []InspectEntry {
	if o.entries == nil {
		return []InspectEntry{{Tag: o.name}}
	}
	return o.entries
}

// fakeScene returns objs, already in pre-order, for every query.
type fakeScene struct {
	root      Object
	objs      []Object
	inspected int
}

func (s *fakeScene) Root() Object                { return s.root }
func (s *fakeScene) Query(string, bool) []Object { return s.objs }
func (s *fakeScene) DrawInspect(Canvas)          { s.inspected++ }

// ---- fakePointer / fakeClock / recordingSink ----

type fakePointer struct {
	pos          Vec2
	pressed      bool
	justPressed  bool
	justReleased bool
}

func (p *fakePointer) Position() Vec2       { return p.pos }
func (p *fakePointer) IsPressed() bool      { return p.pressed }
func (p *fakePointer) IsJustPressed() bool  { return p.justPressed }
func (p *fakePointer) IsJustReleased() bool { return p.justReleased }

type fakeClock struct {
	now, fps float64
}

func (c *fakeClock) Time() float64 { return c.now }
func (c *fakeClock) FPS() float64  { return c.fps }

type recordingSink struct {
	events []Event
}

func (s *recordingSink) EmitEvent(e Event) { s.events = append(s.events, e) }

func (s *recordingSink) types() []EventType {
	out := make([]EventType, len(s.events))
	for i, e := range s.events {
		out[i] = e.Type
	}
	return out
}
