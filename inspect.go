package overlay

const (
	inspectOutlineWidth = 4
	scaleHandleRadius   = 10
	panelPad            = 8
	panelRadius         = 4
	panelTextSize       = 16
)

var (
	inspectBoxColor = ColorWhite.WithAlpha(0.5)
	inspectOutline  = Outline{Color: ColorRed, Width: inspectOutlineWidth}
	panelColor      = ColorBlack.WithAlpha(0.8)
)

// ScaleHandle returns the scale handle of a w×h box whose anchor point is at
// pos: the bottom-right corner of the box.
func ScaleHandle(pos Vec2, anchor Anchor, w, h float64) Circle {
	dir := anchor.Or(DefaultAnchor).Point().Add(V(-1, -1))
	offset := dir.Scale(V(w, h).Mul(-0.5))
	return Circle{Center: pos.Add(offset), Radius: scaleHandleRadius}
}

// drawInspectObj draws obj's inspection box and scale handle, and makes obj
// the scale target when the handle is pressed. Objects without a measurable
// box are skipped.
func (o *Overlay) drawInspectObj(c Canvas, ptr Pointer, obj Object) {
	if obj.Width() == 0 || obj.Height() == 0 {
		return
	}
	box := obj.RenderArea()
	pos := obj.Pos()
	anchor := obj.Anchor().Or(DefaultAnchor)
	outline := inspectOutline

	c.DrawRect(RectOpt{
		Pos:     pos,
		Width:   box.Width,
		Height:  box.Height,
		Anchor:  anchor,
		Color:   inspectBoxColor,
		NoFill:  true,
		Outline: &outline,
	})

	handle := ScaleHandle(pos, anchor, box.Width, box.Height)
	c.DrawCircle(CircleOpt{
		Pos:     handle.Center,
		Radius:  handle.Radius,
		Color:   ColorWhite,
		NoFill:  true,
		Outline: &outline,
	})

	if at := ptr.Position(); handle.Contains(at) && ptr.IsPressed() {
		o.setScaling(obj, at)
	}
}

// drawInspectText draws a text panel with its top-left corner at pos in
// screen space. The panel flips to the left of or above pos when it would
// leave the viewport.
func drawInspectText(c Canvas, pos Vec2, txt string) {
	c.DrawUnscaled(func() {
		c.PushTransform()
		defer c.PopTransform()
		c.PushTranslate(pos.X, pos.Y)

		ft := c.FormatText(TextOpt{
			Text:  escapeBrackets(txt),
			Pos:   V(panelPad, panelPad),
			Size:  panelTextSize,
			Color: ColorWhite,
		})
		bw := ft.Width + panelPad*2
		bh := ft.Height + panelPad*2
		if pos.X+bw >= c.Width() {
			c.PushTranslate(-bw, 0)
		}
		if pos.Y+bh >= c.Height() {
			c.PushTranslate(0, -bh)
		}

		c.DrawRect(RectOpt{
			Width:  bw,
			Height: bh,
			Color:  panelColor,
			Radius: panelRadius,
		})
		c.DrawFormattedText(ft)
	})
}
