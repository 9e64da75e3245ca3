package overlay

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Clock reports application time. Time is wall-clock seconds since start and
// is unaffected by pausing or the simulation's time scale.
type Clock interface {
	Time() float64
	FPS() float64
}

// SystemClock measures time from its creation and reads the frame rate from
// Ebitengine.
type SystemClock struct {
	start time.Time
	now   func() time.Time
}

// NewSystemClock returns a clock starting at zero now.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now(), now: time.Now}
}

// Time returns seconds elapsed since the clock was created.
func (c *SystemClock) Time() float64 {
	return c.now().Sub(c.start).Seconds()
}

// FPS returns Ebitengine's measured frames per second.
func (c *SystemClock) FPS() float64 {
	return ebiten.ActualFPS()
}
