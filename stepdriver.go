package motion

import (
	"encoding/json"
	"fmt"
)

// driverStep represents a single action in a step script.
type driverStep struct {
	Action   string  `json:"action"`
	Target   string  `json:"target,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Duration float32 `json:"duration,omitempty"`
	Ease     string  `json:"ease,omitempty"`
	On       bool    `json:"on,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

// driverScript is the top-level JSON structure for a step script.
type driverScript struct {
	Steps []driverStep `json:"steps"`
}

// StepDriver sequences scrolls, pointer moves and prop changes across frames
// for scripted demos and scenario tests. Attach to a Stage via SetStepDriver.
//
// Actions:
//
//	scroll   camera scrolls to (x, y) over duration seconds with ease
//	scrollBy camera moves by (x, y) instantly
//	hover    pointer moves to world (x, y)
//	leave    pointer leaves the surface
//	trigger  sets the trigger of text animator target to on
//	disable  disables (on) or enables the border animator target
//	pause    pauses (on) or resumes the border animator target
//	wait     idles for frames frames
type StepDriver struct {
	steps     []driverStep
	cursor    int
	waitCount int
	done      bool
	err       error
}

var driverActions = map[string]bool{
	"scroll": true, "scrollBy": true, "hover": true, "leave": true,
	"trigger": true, "disable": true, "pause": true, "wait": true,
}

// LoadStepScript parses a JSON step script and returns a StepDriver ready to
// be attached to a Stage via SetStepDriver.
func LoadStepScript(jsonData []byte) (*StepDriver, error) {
	var script driverScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse step script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse step script: no steps")
	}
	for i, st := range script.Steps {
		if !driverActions[st.Action] {
			return nil, fmt.Errorf("parse step script: step %d: unknown action %q", i, st.Action)
		}
		if st.Ease != "" {
			if _, err := EaseFunc(st.Ease); err != nil {
				return nil, fmt.Errorf("parse step script: step %d: %w", i, err)
			}
		}
	}
	return &StepDriver{steps: script.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (d *StepDriver) Done() bool {
	return d.done
}

// Err returns the first step that could not be applied, such as a target
// that names no animator.
func (d *StepDriver) Err() error {
	return d.err
}

// step advances the driver by one frame. Called from Stage.Update.
func (d *StepDriver) step(s *Stage) {
	if d.done {
		return
	}
	// Wait for pending injections and scrolls to drain before advancing.
	if s.hover.Injected() > 0 || s.camera.Scrolling() {
		return
	}
	if d.waitCount > 0 {
		d.waitCount--
		return
	}
	if d.cursor >= len(d.steps) {
		d.done = true
		return
	}

	st := d.steps[d.cursor]
	d.cursor++

	switch st.Action {
	case "scroll":
		fn, _ := EaseFunc(st.Ease)
		s.camera.ScrollTo(st.X, st.Y, st.Duration, fn)
	case "scrollBy":
		s.camera.ScrollBy(st.X, st.Y)
	case "hover":
		s.hover.InjectMove(st.X, st.Y)
	case "leave":
		s.hover.InjectLeave()
	case "trigger":
		if a, ok := s.Text(st.Target); ok {
			a.SetTrigger(st.On)
		} else {
			d.fail(st)
		}
	case "disable":
		if b, ok := s.Border(st.Target); ok {
			b.SetDisabled(st.On)
		} else {
			d.fail(st)
		}
	case "pause":
		if b, ok := s.Border(st.Target); ok {
			b.SetPaused(st.On)
		} else {
			d.fail(st)
		}
	case "wait":
		if st.Frames > 0 {
			d.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if d.cursor >= len(d.steps) && d.waitCount == 0 && s.hover.Injected() == 0 {
		d.done = true
	}
}

func (d *StepDriver) fail(st driverStep) {
	if d.err == nil {
		d.err = fmt.Errorf("step %d: %s: no animator named %q", d.cursor-1, st.Action, st.Target)
	}
}
