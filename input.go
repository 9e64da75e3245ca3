package overlay

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Pointer is the pointer state the overlays read once per frame.
// Position is in content (world) space.
type Pointer interface {
	Position() Vec2
	IsPressed() bool
	IsJustPressed() bool
	IsJustReleased() bool
}

// MousePointer reads the Ebitengine mouse cursor and left button. When View
// is set the cursor is converted from screen to content space through the
// canvas' view transform; otherwise screen space is used directly.
type MousePointer struct {
	View   *ScreenCanvas
	Button ebiten.MouseButton
}

// NewMousePointer returns a MousePointer on the left button.
func NewMousePointer(view *ScreenCanvas) *MousePointer {
	return &MousePointer{View: view, Button: ebiten.MouseButtonLeft}
}

// Position returns the cursor in content space.
func (m *MousePointer) Position() Vec2 {
	mx, my := ebiten.CursorPosition()
	p := Vec2{float64(mx), float64(my)}
	if m.View != nil {
		return m.View.ViewToContent(p)
	}
	return p
}

// IsPressed reports whether the button is held.
func (m *MousePointer) IsPressed() bool {
	return ebiten.IsMouseButtonPressed(m.Button)
}

// IsJustPressed reports whether the button went down this tick.
func (m *MousePointer) IsJustPressed() bool {
	return inpututil.IsMouseButtonJustPressed(m.Button)
}

// IsJustReleased reports whether the button went up this tick.
func (m *MousePointer) IsJustReleased() bool {
	return inpututil.IsMouseButtonJustReleased(m.Button)
}
