package overlay

// Canvas is the drawing surface the overlays render onto. It bundles the
// shape and text primitives with the transform stack.
//
// Positions passed to draw calls are relative to the current transform.
// PushTransform saves the transform, PopTransform restores it, and
// PushTranslate offsets the current transform in place. DrawUnscaled runs fn
// with the world (camera) transform suspended so drawing is pinned to the
// screen.
type Canvas interface {
	Width() float64
	Height() float64

	DrawRect(opt RectOpt)
	DrawCircle(opt CircleOpt)
	DrawTriangle(opt TriangleOpt)

	// FormatText lays out styled text without drawing it so callers can
	// size backgrounds first.
	FormatText(opt TextOpt) *FormattedText
	DrawFormattedText(ft *FormattedText)

	PushTransform()
	PopTransform()
	PushTranslate(x, y float64)
	DrawUnscaled(fn func())

	// ContentToView converts a point from content (world) space to view
	// (screen) space.
	ContentToView(p Vec2) Vec2
}

// Outline describes a stroke drawn around a shape.
type Outline struct {
	Color Color
	Width float64
}

// RectOpt configures Canvas.DrawRect. The rectangle's Anchor point is placed
// at Pos.
type RectOpt struct {
	Pos           Vec2
	Width, Height float64
	Anchor        Anchor
	Color         Color
	Radius        float64 // corner radius
	NoFill        bool
	Outline       *Outline
}

// CircleOpt configures Canvas.DrawCircle.
type CircleOpt struct {
	Pos     Vec2
	Radius  float64
	Color   Color
	NoFill  bool
	Outline *Outline
}

// TriangleOpt configures Canvas.DrawTriangle. Points are offset by Pos.
type TriangleOpt struct {
	Pos        Vec2
	P1, P2, P3 Vec2
	Color      Color
}

// TextOpt configures Canvas.FormatText. Text may contain [tag]...[/tag]
// markup whose tags are looked up in Styles; `\[` is a literal bracket.
type TextOpt struct {
	Text        string
	Pos         Vec2
	Anchor      Anchor
	Size        float64
	Width       float64 // wrap width; 0 disables wrapping
	LineSpacing float64
	Color       Color
	Styles      map[string]Color
}

// FormattedText is laid-out text ready to draw. Width and Height are the
// measured size of the whole block.
type FormattedText struct {
	Opt    TextOpt
	Width  float64
	Height float64
	Lines  []TextLine
}

// TextLine is one laid-out line. Y is the top of the line relative to the
// block's top-left corner.
type TextLine struct {
	Y     float64
	Width float64
	Runs  []TextRun
}

// TextRun is a span of text sharing one color. X is relative to the line start.
type TextRun struct {
	X     float64
	Text  string
	Color Color
}

// Origin returns the top-left corner of the block in the caller's space.
func (ft *FormattedText) Origin() Vec2 {
	return ft.Opt.Anchor.TopLeft(ft.Opt.Pos, ft.Width, ft.Height)
}

// String returns the plain text of the block with markup removed.
func (ft *FormattedText) String() string {
	var b []byte
	for i, ln := range ft.Lines {
		if i > 0 {
			b = append(b, '\n')
		}
		for _, r := range ln.Runs {
			b = append(b, r.Text...)
		}
	}
	return string(b)
}
