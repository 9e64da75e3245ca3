package overlay

import "fmt"

// Anchor names a reference point on a bounding box.
// The zero value means "unset" and resolves to DefaultAnchor.
type Anchor uint8

const (
	AnchorUnset Anchor = iota
	AnchorTopLeft
	AnchorTop
	AnchorTopRight
	AnchorLeft
	AnchorCenter
	AnchorRight
	AnchorBotLeft
	AnchorBot
	AnchorBotRight
)

// DefaultAnchor is used for objects that do not set an anchor.
const DefaultAnchor = AnchorTopLeft

var anchorNames = [...]string{
	AnchorUnset:    "",
	AnchorTopLeft:  "topleft",
	AnchorTop:      "top",
	AnchorTopRight: "topright",
	AnchorLeft:     "left",
	AnchorCenter:   "center",
	AnchorRight:    "right",
	AnchorBotLeft:  "botleft",
	AnchorBot:      "bot",
	AnchorBotRight: "botright",
}

// anchorPoints holds the unit direction of each anchor: (-1,-1) is the
// top-left corner, (1,1) the bottom-right.
var anchorPoints = [...]Vec2{
	AnchorUnset:    {-1, -1},
	AnchorTopLeft:  {-1, -1},
	AnchorTop:      {0, -1},
	AnchorTopRight: {1, -1},
	AnchorLeft:     {-1, 0},
	AnchorCenter:   {0, 0},
	AnchorRight:    {1, 0},
	AnchorBotLeft:  {-1, 1},
	AnchorBot:      {0, 1},
	AnchorBotRight: {1, 1},
}

// ParseAnchor resolves an anchor name such as "topleft" or "botright".
func ParseAnchor(name string) (Anchor, error) {
	for i, n := range anchorNames {
		if i != int(AnchorUnset) && n == name {
			return Anchor(i), nil
		}
	}
	return AnchorUnset, fmt.Errorf("overlay: unknown anchor %q", name)
}

// String returns the anchor's name.
func (a Anchor) String() string {
	if int(a) < len(anchorNames) {
		return anchorNames[a]
	}
	return fmt.Sprintf("Anchor(%d)", a)
}

// Or returns a, or def when a is unset.
func (a Anchor) Or(def Anchor) Anchor {
	if a == AnchorUnset {
		return def
	}
	return a
}

// Point returns the unit direction vector of the anchor.
func (a Anchor) Point() Vec2 {
	if int(a) < len(anchorPoints) {
		return anchorPoints[a]
	}
	return anchorPoints[DefaultAnchor]
}

// TopLeft returns the top-left corner of a w×h box whose anchor point is
// placed at pos.
func (a Anchor) TopLeft(pos Vec2, w, h float64) Vec2 {
	p := a.Or(DefaultAnchor).Point()
	return Vec2{
		pos.X - (p.X+1)*0.5*w,
		pos.Y - (p.Y+1)*0.5*h,
	}
}
