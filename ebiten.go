package overlay

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

const defaultTextSize = 16

// ScreenCanvas implements Canvas on an *ebiten.Image with vector paths and
// text/v2. Drawing goes through the transform stack and, outside
// DrawUnscaled, the camera's view matrix.
//
// Call Begin with the screen at the start of the overlay pass and End after
// it; End panics if a PushTransform was left unmatched.
type ScreenCanvas struct {
	// Camera is the world view; nil means content space equals screen space.
	Camera *Camera

	target   *ebiten.Image
	stack    transformStack
	unscaled int

	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
	white  *ebiten.Image

	vs []ebiten.Vertex
	is []uint16
}

// NewScreenCanvas creates a canvas using the embedded Go Regular font.
func NewScreenCanvas() (*ScreenCanvas, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("overlay: failed to load debug font: %w", err)
	}
	return NewScreenCanvasWithFont(source), nil
}

// NewScreenCanvasWithFont creates a canvas drawing text with source.
func NewScreenCanvasWithFont(source *text.GoTextFaceSource) *ScreenCanvas {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &ScreenCanvas{
		source: source,
		faces:  make(map[float64]*text.GoTextFace),
		white:  white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

// Begin starts a frame drawing onto target.
func (c *ScreenCanvas) Begin(target *ebiten.Image) {
	c.target = target
	c.stack.reset()
	c.unscaled = 0
}

// End finishes the frame.
func (c *ScreenCanvas) End() {
	if d := c.stack.depth(); d != 0 {
		panic(fmt.Sprintf("overlay: %d PushTransform calls without PopTransform", d))
	}
	c.target = nil
}

// Width returns the target's width in pixels.
func (c *ScreenCanvas) Width() float64 {
	if c.target == nil {
		return 0
	}
	return float64(c.target.Bounds().Dx())
}

// Height returns the target's height in pixels.
func (c *ScreenCanvas) Height() float64 {
	if c.target == nil {
		return 0
	}
	return float64(c.target.Bounds().Dy())
}

func (c *ScreenCanvas) view() [6]float64 {
	if c.Camera == nil {
		return identityTransform
	}
	return c.Camera.ViewMatrix()
}

// matrix returns the full transform for the next draw call.
func (c *ScreenCanvas) matrix() [6]float64 {
	if c.unscaled > 0 {
		return c.stack.top()
	}
	return multiplyAffine(c.view(), c.stack.top())
}

// ContentToView converts a content-space point to screen space.
func (c *ScreenCanvas) ContentToView(p Vec2) Vec2 {
	return transformPoint(c.view(), p)
}

// ViewToContent converts a screen-space point to content space.
func (c *ScreenCanvas) ViewToContent(p Vec2) Vec2 {
	return transformPoint(invertAffine(c.view()), p)
}

// PushTransform saves the current transform.
func (c *ScreenCanvas) PushTransform() { c.stack.push() }

// PopTransform restores the last saved transform.
func (c *ScreenCanvas) PopTransform() { c.stack.pop() }

// PushTranslate offsets the current transform.
func (c *ScreenCanvas) PushTranslate(x, y float64) { c.stack.translate(x, y) }

// DrawUnscaled runs fn with the camera suspended.
func (c *ScreenCanvas) DrawUnscaled(fn func()) {
	c.unscaled++
	defer func() { c.unscaled-- }()
	fn()
}

// DrawRect draws a filled and/or outlined rectangle with optional rounded
// corners.
func (c *ScreenCanvas) DrawRect(opt RectOpt) {
	tl := opt.Anchor.TopLeft(opt.Pos, opt.Width, opt.Height)
	var p vector.Path
	roundedRectPath(&p, tl.X, tl.Y, opt.Width, opt.Height, opt.Radius)
	c.drawPath(&p, opt.Color, !opt.NoFill, opt.Outline)
}

// DrawCircle draws a filled and/or outlined circle.
func (c *ScreenCanvas) DrawCircle(opt CircleOpt) {
	var p vector.Path
	p.Arc(float32(opt.Pos.X), float32(opt.Pos.Y), float32(opt.Radius), 0, 2*math.Pi, vector.Clockwise)
	p.Close()
	c.drawPath(&p, opt.Color, !opt.NoFill, opt.Outline)
}

// DrawTriangle draws a filled triangle.
func (c *ScreenCanvas) DrawTriangle(opt TriangleOpt) {
	var p vector.Path
	p1, p2, p3 := opt.P1.Add(opt.Pos), opt.P2.Add(opt.Pos), opt.P3.Add(opt.Pos)
	p.MoveTo(float32(p1.X), float32(p1.Y))
	p.LineTo(float32(p2.X), float32(p2.Y))
	p.LineTo(float32(p3.X), float32(p3.Y))
	p.Close()
	c.drawPath(&p, opt.Color, true, nil)
}

// FormatText lays out opt with the canvas font.
func (c *ScreenCanvas) FormatText(opt TextOpt) *FormattedText {
	if opt.Size <= 0 {
		opt.Size = defaultTextSize
	}
	face := c.face(opt.Size)
	m := face.Metrics()
	lh := m.HAscent + m.HDescent
	return layoutText(opt, func(s string) float64 { return text.Advance(s, face) }, lh)
}

// DrawFormattedText draws text laid out by FormatText.
func (c *ScreenCanvas) DrawFormattedText(ft *FormattedText) {
	if c.target == nil || ft == nil {
		return
	}
	face := c.face(ft.Opt.Size)
	origin := ft.Origin()
	geo := geoM(c.matrix())
	for _, ln := range ft.Lines {
		for _, run := range ln.Runs {
			op := &text.DrawOptions{}
			op.GeoM.Translate(origin.X+run.X, origin.Y+ln.Y)
			op.GeoM.Concat(geo)
			col, a := run.Color, clamp01(run.Color.A)
			op.ColorScale.Scale(float32(col.R*a), float32(col.G*a), float32(col.B*a), float32(a))
			text.Draw(c.target, run.Text, face, op)
		}
	}
}

func (c *ScreenCanvas) face(size float64) *text.GoTextFace {
	if size <= 0 {
		size = defaultTextSize
	}
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: c.source, Size: size}
	c.faces[size] = f
	return f
}

// drawPath fills and/or strokes p, transformed by the current matrix.
func (c *ScreenCanvas) drawPath(p *vector.Path, fillColor Color, fill bool, outline *Outline) {
	if c.target == nil {
		return
	}
	m := c.matrix()
	if fill && fillColor.A > 0 {
		c.vs, c.is = p.AppendVerticesAndIndicesForFilling(c.vs[:0], c.is[:0])
		c.submit(m, fillColor)
	}
	if outline != nil && outline.Width > 0 && outline.Color.A > 0 {
		c.vs, c.is = p.AppendVerticesAndIndicesForStroke(c.vs[:0], c.is[:0], &vector.StrokeOptions{
			Width:    float32(outline.Width),
			LineJoin: vector.LineJoinRound,
		})
		c.submit(m, outline.Color)
	}
}

func (c *ScreenCanvas) submit(m [6]float64, col Color) {
	for i := range c.vs {
		v := &c.vs[i]
		p := transformPoint(m, Vec2{float64(v.DstX), float64(v.DstY)})
		v.DstX, v.DstY = float32(p.X), float32(p.Y)
		v.SrcX, v.SrcY = 1, 1
		v.ColorR = float32(col.R)
		v.ColorG = float32(col.G)
		v.ColorB = float32(col.B)
		v.ColorA = float32(clamp01(col.A))
	}
	op := &ebiten.DrawTrianglesOptions{
		AntiAlias:      true,
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
	}
	c.target.DrawTriangles(c.vs, c.is, c.white, op)
}

// roundedRectPath appends a rectangle with corner radius r to p. The radius
// is clamped to half the shorter side.
func roundedRectPath(p *vector.Path, x, y, w, h, r float64) {
	r = math.Max(0, math.Min(r, math.Min(w, h)/2))
	x0, y0, x1, y1 := float32(x), float32(y), float32(x+w), float32(y+h)
	if r == 0 {
		p.MoveTo(x0, y0)
		p.LineTo(x1, y0)
		p.LineTo(x1, y1)
		p.LineTo(x0, y1)
		p.Close()
		return
	}
	rr := float32(r)
	p.MoveTo(x0+rr, y0)
	p.LineTo(x1-rr, y0)
	p.ArcTo(x1, y0, x1, y0+rr, rr)
	p.LineTo(x1, y1-rr)
	p.ArcTo(x1, y1, x1-rr, y1, rr)
	p.LineTo(x0+rr, y1)
	p.ArcTo(x0, y1, x0, y1-rr, rr)
	p.LineTo(x0, y0+rr)
	p.ArcTo(x0, y0, x0+rr, y0, rr)
	p.Close()
}

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}
