package overlay

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// inspectFrame returns a frame with inspect mode's collaborators.
func inspectFrame(c Canvas, s Scene, p Pointer) Frame {
	return Frame{Canvas: c, Scene: s, Pointer: p, Clock: &fakeClock{fps: 59.6}}
}

func inspectOverlay() *Overlay {
	cfg := DefaultConfig()
	cfg.Inspect = true
	cfg.ShowLog = false
	return New(cfg)
}

func panelRects(c *fakeCanvas) []drawCall {
	var out []drawCall
	for _, d := range c.byKind("rect") {
		if d.rect.Color == panelColor {
			out = append(out, d)
		}
	}
	return out
}

// ---- Inspection boxes ----

func TestInspectObjZeroSizeSkipped(t *testing.T) {
	for _, obj := range []*fakeObject{
		{name: "flat", w: 40, h: 0},
		{name: "thin", w: 0, h: 20},
	} {
		c := newFakeCanvas()
		o := inspectOverlay()
		o.drawInspectObj(c, &fakePointer{pressed: true}, obj)
		if len(c.calls) != 0 {
			t.Errorf("%s: %d draw calls, want 0", obj.name, len(c.calls))
		}
	}
}

func TestInspectObjBoxAndHandle(t *testing.T) {
	c := newFakeCanvas()
	o := inspectOverlay()
	obj := &fakeObject{name: "box", pos: V(10, 10), w: 40, h: 20}
	o.drawInspectObj(c, &fakePointer{}, obj)

	rects := c.byKind("rect")
	if len(rects) != 1 {
		t.Fatalf("rects = %d, want 1", len(rects))
	}
	r := rects[0].rect
	if r.Anchor != AnchorTopLeft || r.Width != 40 || r.Height != 20 || !r.NoFill {
		t.Errorf("box = %+v", r)
	}
	if r.Outline == nil || r.Outline.Width != 4 || r.Outline.Color != ColorRed {
		t.Errorf("box outline = %+v, want red width 4", r.Outline)
	}
	if r.Color != ColorWhite.WithAlpha(0.5) {
		t.Errorf("box color = %+v", r.Color)
	}

	circles := c.byKind("circle")
	if len(circles) != 1 {
		t.Fatalf("circles = %d, want 1", len(circles))
	}
	assertVec(t, "handle", circles[0].circle.Pos, V(50, 30))
	if circles[0].circle.Radius != 10 {
		t.Errorf("handle radius = %v, want 10", circles[0].circle.Radius)
	}
}

func TestScaleHandleAnchors(t *testing.T) {
	tests := []struct {
		anchor Anchor
		want   Vec2
	}{
		{AnchorUnset, V(40, 20)},
		{AnchorTopLeft, V(40, 20)},
		{AnchorCenter, V(20, 10)},
		{AnchorBotRight, V(0, 0)},
		{AnchorTopRight, V(0, 20)},
		{AnchorBotLeft, V(40, 0)},
		{AnchorBot, V(20, 0)},
	}
	for _, tt := range tests {
		h := ScaleHandle(V(0, 0), tt.anchor, 40, 20)
		assertVec(t, "ScaleHandle("+tt.anchor.String()+")", h.Center, tt.want)
	}
}

func TestHandlePressSetsScaling(t *testing.T) {
	c := newFakeCanvas()
	o := inspectOverlay()
	obj := &fakeObject{name: "box", w: 40, h: 20}

	o.drawInspectObj(c, &fakePointer{pos: V(42, 21)}, obj)
	if o.Scaling() != nil {
		t.Fatal("scaling set without press")
	}
	o.drawInspectObj(c, &fakePointer{pos: V(42, 21), pressed: true}, obj)
	if o.Scaling() != obj {
		t.Fatalf("Scaling() = %v, want obj", o.Scaling())
	}
	if o.Dragging() != nil {
		t.Error("dragging should be untouched by the handle")
	}
}

func TestHandlePressOutsideIgnored(t *testing.T) {
	o := inspectOverlay()
	obj := &fakeObject{name: "box", w: 40, h: 20}
	o.drawInspectObj(newFakeCanvas(), &fakePointer{pos: V(60, 40), pressed: true}, obj)
	if o.Scaling() != nil {
		t.Error("press outside the handle set scaling")
	}
}

// ---- Hover selection ----

func TestFirstHoveredAreaWins(t *testing.T) {
	noArea := &fakeObject{name: "ghost", w: 10, h: 10, hover: true}
	first := &fakeObject{name: "first", w: 10, h: 10, area: true, hover: true}
	second := &fakeObject{name: "second", w: 10, h: 10, area: true, hover: true}
	scene := &fakeScene{objs: []Object{noArea, first, second}}
	c := newFakeCanvas()

	inspectOverlay().Draw(inspectFrame(c, scene, &fakePointer{pos: V(100, 100)}))

	texts := c.texts()
	if len(texts) != 2 {
		t.Fatalf("texts = %q, want inspect panel and FPS", texts)
	}
	if texts[0] != "first" {
		t.Errorf("inspect panel = %q, want first", texts[0])
	}
	// Traversal stops at the inspected object: second gets no box.
	if n := len(c.byKind("circle")); n != 2 {
		t.Errorf("handles drawn = %d, want 2", n)
	}
	if scene.inspected != 1 {
		t.Errorf("DrawInspect called %d times, want 1", scene.inspected)
	}
}

func TestInspectPanelLines(t *testing.T) {
	obj := &fakeObject{name: "hero", w: 10, h: 10, area: true, hover: true, entries: []InspectEntry{
		{Tag: "pos", Summary: "pos: (1, 2)"},
		{Tag: "area"},
		{Tag: "stats", Summary: "hp [3]"},
	}}
	c := newFakeCanvas()
	inspectOverlay().Draw(inspectFrame(c, &fakeScene{objs: []Object{obj}}, &fakePointer{pos: V(100, 100)}))

	if got := c.texts()[0]; got != "pos: (1, 2)\narea\nhp [3]" {
		t.Errorf("inspect panel = %q", got)
	}
	panels := panelRects(c)
	if len(panels) != 2 {
		t.Fatalf("panel rects = %d, want 2", len(panels))
	}
	assertVec(t, "panel at", panels[0].at, V(100, 100))
	// 11 chars * 8 + 16, 3 lines * 16 + 16
	assertNear(t, "panel width", panels[0].rect.Width, 104)
	assertNear(t, "panel height", panels[0].rect.Height, 64)
	if !panels[0].unscaled {
		t.Error("inspect panel should be drawn unscaled")
	}
}

func TestInspectPanelUsesViewPosition(t *testing.T) {
	obj := &fakeObject{name: "o", w: 10, h: 10, area: true, hover: true}
	c := newFakeCanvas()
	c.view = V(-50, 20)
	inspectOverlay().Draw(inspectFrame(c, &fakeScene{objs: []Object{obj}}, &fakePointer{pos: V(100, 100)}))
	assertVec(t, "panel at", panelRects(c)[0].at, V(50, 120))
}

func TestInspectPanelFlips(t *testing.T) {
	obj := &fakeObject{name: "area", w: 10, h: 10, area: true, hover: true}
	c := newFakeCanvas()
	inspectOverlay().Draw(inspectFrame(c, &fakeScene{objs: []Object{obj}}, &fakePointer{pos: V(630, 470)}))

	// "area" is 32 wide, so the panel is 48x32 and flips both ways.
	assertVec(t, "flipped panel", panelRects(c)[0].at, V(630-48, 470-32))
}

func TestFPSPanel(t *testing.T) {
	c := newFakeCanvas()
	inspectOverlay().Draw(inspectFrame(c, &fakeScene{}, &fakePointer{}))

	texts := c.texts()
	if len(texts) != 1 || texts[0] != "FPS: 60" {
		t.Fatalf("texts = %q, want [FPS: 60]", texts)
	}
	assertVec(t, "fps panel", panelRects(c)[0].at, V(8, 8))
}

// ---- Drag and release ----

func TestPressOnInspectedStartsDrag(t *testing.T) {
	obj := &fakeObject{name: "o", pos: V(10, 10), w: 40, h: 40, area: true, hover: true}
	sink := &recordingSink{}
	o := inspectOverlay()
	o.SetEventSink(sink)

	o.Draw(inspectFrame(newFakeCanvas(), &fakeScene{objs: []Object{obj}}, &fakePointer{pos: V(20, 20), pressed: true, justPressed: true}))
	if o.Dragging() != obj {
		t.Fatalf("Dragging() = %v, want obj", o.Dragging())
	}
	assertVec(t, "dragged pos", obj.pos, V(20, 20))
	if got := sink.types(); len(got) != 1 || got[0] != EventDragStart {
		t.Errorf("events = %v, want [drag_start]", got)
	}
}

func TestPressWhileScalingDoesNotDrag(t *testing.T) {
	obj := &fakeObject{name: "o", w: 40, h: 20, area: true, hover: true}
	o := inspectOverlay()
	// Pointer on the scale handle.
	o.Draw(inspectFrame(newFakeCanvas(), &fakeScene{objs: []Object{obj}}, &fakePointer{pos: V(40, 20), pressed: true, justPressed: true}))
	if o.Scaling() != obj {
		t.Fatal("handle press should set scaling")
	}
	if o.Dragging() != nil {
		t.Error("press on the handle should not start a drag")
	}
}

func TestDragFollowsPointer(t *testing.T) {
	root := &fakeObject{name: "root"}
	parent := &fakeObject{name: "parent", pos: V(100, 50), parent: root}
	child := &fakeObject{name: "child", parent: parent}
	top := &fakeObject{name: "top", parent: root}
	orphan := &fakeObject{name: "orphan"}
	scene := &fakeScene{root: root}
	ptr := &fakePointer{pos: V(150, 80)}

	tests := []struct {
		obj  *fakeObject
		want Vec2
	}{
		{child, V(50, 30)},
		{top, V(150, 80)},
		{orphan, V(150, 80)},
	}
	for _, tt := range tests {
		o := inspectOverlay()
		o.BeginDrag(tt.obj)
		o.Draw(inspectFrame(newFakeCanvas(), scene, ptr))
		assertVec(t, tt.obj.name, tt.obj.pos, tt.want)
	}
}

func TestReleaseClearsBoth(t *testing.T) {
	obj := &fakeObject{name: "o", w: 40, h: 20}
	sink := &recordingSink{}
	o := inspectOverlay()
	o.SetEventSink(sink)
	o.BeginDrag(obj)
	o.drawInspectObj(newFakeCanvas(), &fakePointer{pos: V(40, 20), pressed: true}, obj)
	if o.Dragging() != obj || o.Scaling() != obj {
		t.Fatal("setup: expected obj dragging and scaling")
	}

	o.Draw(inspectFrame(newFakeCanvas(), &fakeScene{}, &fakePointer{pos: V(5, 5), justReleased: true}))
	if o.Dragging() != nil || o.Scaling() != nil {
		t.Errorf("after release: dragging=%v scaling=%v, want nil", o.Dragging(), o.Scaling())
	}

	want := []EventType{EventDragStart, EventScaleStart, EventRelease}
	got := sink.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
	last := sink.events[2]
	if last.Dragging != obj || last.Scaling != obj || last.Pos != V(5, 5) {
		t.Errorf("release event = %+v", last)
	}
}

func TestReleaseWithoutTargetsIsSilent(t *testing.T) {
	sink := &recordingSink{}
	o := inspectOverlay()
	o.SetEventSink(sink)
	o.Draw(inspectFrame(newFakeCanvas(), &fakeScene{}, &fakePointer{justReleased: true}))
	if len(sink.events) != 0 {
		t.Errorf("events = %v, want none", sink.types())
	}
}

func TestDragStateSurvivesInspectOff(t *testing.T) {
	obj := &fakeObject{name: "o"}
	o := New(DefaultConfig())
	o.BeginDrag(obj)
	o.Draw(Frame{Canvas: newFakeCanvas()})
	if o.Dragging() != obj {
		t.Error("dragging should persist while inspect is off")
	}
	o.EndDrag()
	if o.Dragging() != nil {
		t.Error("EndDrag should clear dragging")
	}
}

// ---- Pause indicator ----

func TestPausedIndicator(t *testing.T) {
	c := newFakeCanvas()
	cfg := DefaultConfig()
	cfg.Paused = true
	New(cfg).Draw(Frame{Canvas: c})

	rects := c.byKind("rect")
	if len(rects) != 3 {
		t.Fatalf("rects = %d, want 3", len(rects))
	}
	bg := rects[0]
	assertVec(t, "pause origin", bg.at, V(640-8, 8))
	if bg.rect.Anchor != AnchorTopRight || bg.rect.Width != 32 || bg.rect.Height != 32 || bg.rect.Radius != 4 {
		t.Errorf("pause background = %+v", bg.rect)
	}
	for i, bar := range rects[1:] {
		assertVec(t, "bar pos", bar.rect.Pos, V(-32.0/3*float64(i+1), 16))
		assertNear(t, "bar width", bar.rect.Width, 4)
		assertNear(t, "bar height", bar.rect.Height, 19.2)
		if bar.rect.Anchor != AnchorCenter || bar.rect.Color != ColorWhite {
			t.Errorf("bar %d = %+v", i, bar.rect)
		}
	}
	if !bg.unscaled {
		t.Error("pause indicator should be drawn unscaled")
	}
}

// ---- Time-scale indicator ----

func TestTimeScaleHiddenAtOne(t *testing.T) {
	c := newFakeCanvas()
	New(DefaultConfig()).Draw(Frame{Canvas: c})
	if len(c.calls) != 0 {
		t.Errorf("draw calls = %d, want 0", len(c.calls))
	}
}

func TestTimeScaleIndicator(t *testing.T) {
	c := newFakeCanvas()
	cfg := DefaultConfig()
	cfg.TimeScale = 2
	New(cfg).Draw(Frame{Canvas: c})

	texts := c.texts()
	if len(texts) != 1 || texts[0] != "2.0" {
		t.Fatalf("texts = %q, want [2.0]", texts)
	}
	bg := c.byKind("rect")[0]
	assertVec(t, "origin", bg.at, V(640-8, 480-8))
	// "2.0" is 24x16.
	assertNear(t, "bg width", bg.rect.Width, 24+48)
	assertNear(t, "bg height", bg.rect.Height, 16+16)

	tris := c.byKind("triangle")
	if len(tris) != 2 {
		t.Fatalf("triangles = %d, want 2", len(tris))
	}
	for i, tr := range tris {
		o := tr.triangle
		assertNear(t, "base", o.P1.X, -24-8*3.5)
		assertNear(t, "tip", o.P3.X, -24-8*2)
		assertVec(t, "offset", o.Pos, V(-8*float64(i), 0))
		if o.P3.X <= o.P1.X {
			t.Errorf("triangle %d should point right for fast-forward", i)
		}
	}
}

func TestTimeScaleRewindFlipped(t *testing.T) {
	c := newFakeCanvas()
	cfg := DefaultConfig()
	cfg.TimeScale = 0.5
	New(cfg).Draw(Frame{Canvas: c})

	if texts := c.texts(); len(texts) != 1 || texts[0] != "0.5" {
		t.Fatalf("texts = %q, want [0.5]", texts)
	}
	for i, tr := range c.byKind("triangle") {
		o := tr.triangle
		if o.P3.X >= o.P1.X {
			t.Errorf("triangle %d should point left for rewind", i)
		}
		assertVec(t, "offset", o.Pos, V(-8*float64(i)-4, 0))
	}
}

// ---- Recording indicator ----

func TestRecordingIndicator(t *testing.T) {
	tests := []struct {
		now, alpha float64
	}{
		{0, 0},
		{math.Pi / 8, 0.5},
		{math.Pi / 4, 1},
	}
	for _, tt := range tests {
		c := newFakeCanvas()
		cfg := DefaultConfig()
		cfg.Recording = true
		New(cfg).Draw(Frame{Canvas: c, Clock: &fakeClock{now: tt.now}})

		circles := c.byKind("circle")
		if len(circles) != 1 {
			t.Fatalf("circles = %d, want 1", len(circles))
		}
		d := circles[0]
		assertVec(t, "dot", d.at, V(24, 480-24))
		assertNear(t, "radius", d.circle.Radius, 12)
		if math.Abs(d.circle.Color.A-tt.alpha) > 1e-5 {
			t.Errorf("alpha at %v = %v, want %v", tt.now, d.circle.Color.A, tt.alpha)
		}
	}
}

func TestRecordingNeedsClock(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic without a clock")
		}
	}()
	cfg := DefaultConfig()
	cfg.Recording = true
	New(cfg).Draw(Frame{Canvas: newFakeCanvas()})
}

func TestWave(t *testing.T) {
	tests := []struct {
		t, want float64
	}{
		{0, 0},
		{math.Pi / 2, 0.5},
		{math.Pi, 1},
		{3 * math.Pi / 2, 0.5},
		{2 * math.Pi, 0},
		{-math.Pi / 2, 0.5},
	}
	for _, tt := range tests {
		if got := Wave(0, 1, tt.t); math.Abs(got-tt.want) > 1e-5 {
			t.Errorf("Wave(0, 1, %v) = %v, want %v", tt.t, got, tt.want)
		}
	}
	if got := Wave(2, 4, math.Pi); math.Abs(got-4) > 1e-5 {
		t.Errorf("Wave(2, 4, π) = %v, want 4", got)
	}
}

// ---- Log panel ----

func logFrame(c *fakeCanvas, clock *fakeClock, logs *LogBuffer) Frame {
	return Frame{Canvas: c, Clock: clock, Logs: logs}
}

func TestLogPanelErrorStyle(t *testing.T) {
	clock := &fakeClock{}
	logs := NewLogBuffer(clock, 0)
	logs.Add(LogEntry{Time: 1.05, Msg: errors.New("boom")})
	clock.now = 2

	c := newFakeCanvas()
	New(DefaultConfig()).Draw(logFrame(c, clock, logs))

	texts := c.byKind("text")
	if len(texts) != 1 {
		t.Fatalf("texts = %d, want 1", len(texts))
	}
	ft := texts[0].text
	if ft.String() != "1.05 boom" {
		t.Errorf("log line = %q", ft.String())
	}
	var found bool
	for _, run := range ft.Lines[0].Runs {
		if run.Text == "boom" {
			found = true
			if run.Color != LogStyles[StyleError] {
				t.Errorf("boom color = %+v, want error style", run.Color)
			}
		}
		if run.Text == "1.05" && run.Color != LogStyles[StyleTime] {
			t.Errorf("time color = %+v, want time style", run.Color)
		}
	}
	if !found {
		t.Errorf("no run with text boom: %+v", ft.Lines[0].Runs)
	}

	bg := c.byKind("rect")[0]
	assertVec(t, "log origin", bg.at, V(8, 480-8))
	if bg.rect.Anchor != AnchorBotLeft {
		t.Errorf("log background anchor = %v", bg.rect.Anchor)
	}
	assertNear(t, "bg width", bg.rect.Width, ft.Width+16)
	assertNear(t, "wrap width", ft.Opt.Width, 640*0.6)
}

func TestLogPanelExpiry(t *testing.T) {
	clock := &fakeClock{}
	logs := NewLogBuffer(clock, 0)
	logs.Add(LogEntry{Time: 1, Msg: "hello"})
	ov := New(DefaultConfig())

	// Built before pruning: shown one last time on the frame it expires.
	clock.now = 1 + 4 + 1
	c := newFakeCanvas()
	ov.Draw(logFrame(c, clock, logs))
	if texts := c.texts(); len(texts) != 1 || !strings.Contains(texts[0], "hello") {
		t.Fatalf("expiring frame texts = %q", texts)
	}
	if logs.Len() != 0 {
		t.Fatalf("Len after prune = %d, want 0", logs.Len())
	}

	c = newFakeCanvas()
	ov.Draw(logFrame(c, clock, logs))
	if len(c.calls) != 0 {
		t.Errorf("empty log drew %d calls", len(c.calls))
	}
}

func TestLogPanelNewestFirst(t *testing.T) {
	clock := &fakeClock{}
	logs := NewLogBuffer(clock, 0)
	for i := 0; i < 10; i++ {
		clock.now = float64(i) / 10
		logs.Log(i)
	}
	c := newFakeCanvas()
	New(DefaultConfig()).Draw(logFrame(c, clock, logs))

	lines := strings.Split(c.texts()[0], "\n")
	if len(lines) != DefaultLogMax {
		t.Fatalf("lines = %d, want %d", len(lines), DefaultLogMax)
	}
	if lines[0] != "0.90 9" || lines[len(lines)-1] != "0.20 2" {
		t.Errorf("lines = %q", lines)
	}
}

func TestLogPanelHidden(t *testing.T) {
	logs := NewLogBuffer(nil, 0)
	logs.Log("x")
	cfg := DefaultConfig()
	cfg.ShowLog = false
	c := newFakeCanvas()
	New(cfg).Draw(logFrame(c, &fakeClock{}, logs))
	if len(c.calls) != 0 {
		t.Errorf("hidden log drew %d calls", len(c.calls))
	}
	if logs.Len() != 1 {
		t.Error("hidden log panel should not prune")
	}
}

func TestFormatLogLine(t *testing.T) {
	tests := []struct {
		e    LogEntry
		want string
	}{
		{LogEntry{Time: 1, Msg: "hi"}, "[time]1.00[/time] [info]hi[/info]"},
		{LogEntry{Time: 2.5, Msg: errors.New("bad")}, "[time]2.50[/time] [error]bad[/error]"},
		{LogEntry{Time: 0, Msg: []int{1}}, `[time]0.00[/time] [info]\[1][/info]`},
	}
	for _, tt := range tests {
		if got := FormatLogLine(tt.e); got != tt.want {
			t.Errorf("FormatLogLine(%v) = %q, want %q", tt.e, got, tt.want)
		}
	}
}

func TestFormatLogLineTrailingBackslash(t *testing.T) {
	line := FormatLogLine(LogEntry{Time: 1, Msg: `C:\dir\`})
	if got := StripMarkup(line); got != `1.00 C:\dir\ ` {
		t.Errorf("rendered = %q, want the closing tag consumed", got)
	}
	for _, r := range parseMarkup(line, ColorWhite, LogStyles)[5:] {
		if r.color != LogStyles[StyleInfo] {
			t.Fatalf("message rune %q not in the info style", r.r)
		}
	}
}

// ---- Orchestrator ----

func TestDrawBalancesTransforms(t *testing.T) {
	clock := &fakeClock{now: 1, fps: 60}
	logs := NewLogBuffer(clock, 0)
	logs.Log("msg")
	obj := &fakeObject{name: "o", w: 10, h: 10, area: true, hover: true}

	cfg := Config{Inspect: true, Paused: true, TimeScale: 3, Recording: true, ShowLog: true}
	c := newFakeCanvas()
	New(cfg).Draw(Frame{
		Canvas:  c,
		Scene:   &fakeScene{objs: []Object{obj}},
		Pointer: &fakePointer{pos: V(50, 50)},
		Clock:   clock,
		Logs:    logs,
	})

	if len(c.stack) != 0 {
		t.Errorf("transform stack depth = %d after Draw, want 0", len(c.stack))
	}
	if c.maxDepth != 1 {
		t.Errorf("max depth = %d, want 1 (overlays are independent)", c.maxDepth)
	}
	if c.tr != (Vec2{}) {
		t.Errorf("translation = %v after Draw, want origin", c.tr)
	}
}

func TestDrawPanicsOnMissingCollaborators(t *testing.T) {
	tests := []struct {
		name string
		f    Frame
	}{
		{"canvas", Frame{}},
		{"scene", Frame{Canvas: newFakeCanvas(), Pointer: &fakePointer{}, Clock: &fakeClock{}}},
		{"pointer", Frame{Canvas: newFakeCanvas(), Scene: &fakeScene{}, Clock: &fakeClock{}}},
	}
	for _, tt := range tests {
		func() {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("%s: expected panic", tt.name)
				}
			}()
			inspectOverlay().Draw(tt.f)
		}()
	}
}
