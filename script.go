package overlay

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a pointer script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Flag   string  `json:"flag,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// pointerScript is the top-level JSON structure for a pointer script.
type pointerScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected pointer events, overlay toggles and
// screenshots across frames. Set Pointer before the first Step; Overlay and
// Recorder are needed only by scripts that toggle flags or take
// screenshots.
//
//	{"steps": [
//	  {"action": "toggle", "flag": "inspect"},
//	  {"action": "drag", "fromX": 50, "fromY": 50, "toX": 200, "toY": 120, "frames": 10},
//	  {"action": "wait", "frames": 2},
//	  {"action": "screenshot", "label": "after-drag"}
//	]}
type ScriptRunner struct {
	Pointer  *ScriptedPointer
	Overlay  *Overlay
	Recorder *Recorder

	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

var scriptActions = map[string]bool{
	"screenshot": true,
	"click":      true,
	"press":      true,
	"move":       true,
	"hover":      true,
	"release":    true,
	"drag":       true,
	"wait":       true,
	"toggle":     true,
}

// LoadPointerScript parses a JSON pointer script.
func LoadPointerScript(jsonData []byte) (*ScriptRunner, error) {
	var script pointerScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse pointer script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse pointer script: no steps")
	}
	for i, st := range script.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse pointer script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "toggle" {
			if _, err := flagField(&Config{}, st.Flag); err != nil {
				return nil, fmt.Errorf("parse pointer script: step %d: %w", i, err)
			}
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame. Call it once per frame before
// Pointer.Advance.
func (r *ScriptRunner) Step() {
	if r.done {
		return
	}
	if r.Pointer == nil {
		panic("overlay: ScriptRunner.Pointer is nil")
	}
	// Wait for pending injections to drain before advancing.
	if r.Pointer.Pending() > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	p := r.Pointer
	switch st.Action {
	case "screenshot":
		if r.Recorder != nil {
			r.Recorder.Screenshot(st.Label)
		}
	case "click":
		p.Click(st.X, st.Y)
	case "press":
		p.Press(st.X, st.Y)
	case "move":
		p.Move(st.X, st.Y)
	case "hover":
		p.Hover(st.X, st.Y)
	case "release":
		p.Release(st.X, st.Y)
	case "drag":
		p.Drag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "toggle":
		if r.Overlay != nil {
			if f, err := flagField(&r.Overlay.Config, st.Flag); err == nil {
				*f = !*f
			}
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && p.Pending() == 0 {
		r.done = true
	}
}

// flagField returns the boolean config field a script toggles.
func flagField(c *Config, name string) (*bool, error) {
	switch name {
	case "inspect":
		return &c.Inspect, nil
	case "paused":
		return &c.Paused, nil
	case "recording":
		return &c.Recording, nil
	case "showLog", "log":
		return &c.ShowLog, nil
	default:
		return nil, fmt.Errorf("unknown flag %q", name)
	}
}
