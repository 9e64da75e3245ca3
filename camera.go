package overlay

import "math"

// Camera maps content (world) space to the screen. The overlays' pinned
// panels ignore it; inspection boxes and Pointer positions go through it.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Rotation is the camera rotation in radians (clockwise).
	Rotation float64
	// Viewport is the screen-space rectangle the camera renders into.
	Viewport Rect
}

// NewCamera returns a camera centered on the middle of viewport, so content
// and screen coordinates coincide until it moves.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		X:        viewport.Width / 2,
		Y:        viewport.Height / 2,
		Zoom:     1,
		Viewport: viewport,
	}
}

// ViewMatrix returns Translate(center) * Scale(zoom) * Rotate(-rot) * Translate(-X, -Y).
func (c *Camera) ViewMatrix() [6]float64 {
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2

	cos := math.Cos(-c.Rotation)
	sin := math.Sin(-c.Rotation)
	z := c.Zoom
	if z == 0 {
		z = 1
	}

	return [6]float64{
		z * cos, z * sin,
		-z * sin, z * cos,
		cx + z*(-cos*c.X+sin*c.Y),
		cy + z*(-sin*c.X-cos*c.Y),
	}
}

// WorldToScreen converts a world-space point to screen space.
func (c *Camera) WorldToScreen(p Vec2) Vec2 {
	return transformPoint(c.ViewMatrix(), p)
}

// ScreenToWorld converts a screen-space point to world space.
func (c *Camera) ScreenToWorld(p Vec2) Vec2 {
	return transformPoint(invertAffine(c.ViewMatrix()), p)
}
