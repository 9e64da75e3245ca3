package overlay

import (
	"math"
	"strconv"

	"github.com/tanema/gween/ease"
)

const (
	pauseSize       = 32
	recordingRadius = 12
	recordingInset  = 24
	recordingSpeed  = 4
)

// pinned runs fn in screen space with the origin translated to corner and
// then by inset. The transform is restored on every exit path.
func pinned(c Canvas, corner, inset Vec2, fn func()) {
	c.DrawUnscaled(func() {
		c.PushTransform()
		defer c.PopTransform()
		c.PushTranslate(corner.X, corner.Y)
		c.PushTranslate(inset.X, inset.Y)
		fn()
	})
}

// drawPaused draws the pause glyph in the top-right corner.
func drawPaused(c Canvas) {
	pinned(c, V(c.Width(), 0), V(-panelPad, panelPad), func() {
		c.DrawRect(RectOpt{
			Width:  pauseSize,
			Height: pauseSize,
			Anchor: AnchorTopRight,
			Color:  panelColor,
			Radius: panelRadius,
		})
		for i := 1; i <= 2; i++ {
			c.DrawRect(RectOpt{
				Pos:    V(-pauseSize/3.0*float64(i), pauseSize*0.5),
				Width:  4,
				Height: pauseSize * 0.6,
				Anchor: AnchorCenter,
				Color:  ColorWhite,
				Radius: 2,
			})
		}
	})
}

// drawTimeScale draws the time multiplier with a fast-forward glyph, or a
// rewind glyph when the multiplier is below 1, in the bottom-right corner.
func drawTimeScale(c Canvas, scale float64) {
	pinned(c, V(c.Width(), c.Height()), V(-panelPad, -panelPad), func() {
		ft := c.FormatText(TextOpt{
			Text:   strconv.FormatFloat(scale, 'f', 1, 64),
			Pos:    V(-panelPad, -panelPad),
			Anchor: AnchorBotRight,
			Size:   panelTextSize,
			Color:  ColorWhite,
		})

		c.DrawRect(RectOpt{
			Width:  ft.Width + panelPad*2 + panelPad*4,
			Height: ft.Height + panelPad*2,
			Anchor: AnchorBotRight,
			Color:  panelColor,
			Radius: panelRadius,
		})

		flipped := scale < 1
		base, tip := 3.5, 2.0
		shift := 0.0
		if flipped {
			base, tip = 2.0, 3.5
			shift = -panelPad * 0.5
		}
		for i := 0; i < 2; i++ {
			c.DrawTriangle(TriangleOpt{
				Pos:   V(-float64(i)*panelPad+shift, 0),
				P1:    V(-ft.Width-panelPad*base, -panelPad),
				P2:    V(-ft.Width-panelPad*base, -panelPad-ft.Height),
				P3:    V(-ft.Width-panelPad*tip, -panelPad-ft.Height/2),
				Color: ColorWhite,
			})
		}

		c.DrawFormattedText(ft)
	})
}

// drawRecording draws a pulsing dot in the bottom-left corner. now is
// application time, so the pulse keeps its pace while the game is paused.
func drawRecording(c Canvas, now float64) {
	pinned(c, V(0, c.Height()), V(recordingInset, -recordingInset), func() {
		c.DrawCircle(CircleOpt{
			Radius: recordingRadius,
			Color:  ColorRed.WithAlpha(Wave(0, 1, now*recordingSpeed)),
		})
	})
}

// Wave oscillates between lo and hi as t advances, starting at lo for t = 0
// with a period of 2π. It follows lo + (1 - cos t)/2 * (hi - lo), evaluated as
// a sine ease over the folded phase.
func Wave(lo, hi, t float64) float64 {
	phase := math.Mod(t, 2*math.Pi)
	if phase < 0 {
		phase += 2 * math.Pi
	}
	if phase > math.Pi {
		phase = 2*math.Pi - phase
	}
	return float64(ease.InOutSine(float32(phase), float32(lo), float32(hi-lo), math.Pi))
}
