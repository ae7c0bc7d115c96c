package choreo

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a preview script.
type scriptStep struct {
	Action string  `json:"action"`
	Target string  `json:"target,omitempty"`
	Delay  float64 `json:"delay,omitempty"`
	Dt     float64 `json:"dt,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure for a preview script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"play-end":     true,
	"play-begin":   true,
	"snap-begin":   true,
	"snap-end":     true,
	"step":         true,
	"wait":         true,
	"expect-begin": true,
	"expect-end":   true,
}

// Script sequences playback commands, manual steps, and state expectations
// across preview frames. Attach to a Preview via SetScript.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	failures  []string
}

// LoadScript parses a JSON preview script and returns a Script ready to be
// attached to a Preview.
func LoadScript(jsonData []byte) (*Script, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse preview script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse preview script: no steps")
	}
	for i, st := range sc.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse preview script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: sc.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (s *Script) Done() bool {
	return s.done
}

// Failures returns the messages of expectations that did not hold.
func (s *Script) Failures() []string {
	return append([]string(nil), s.failures...)
}

// step advances the script by one frame and reports whether the preview
// should advance time on this frame. Playback, snap, and expect actions are
// instantaneous; wait frames advance at the preview cadence. Called from
// Preview.Update.
func (s *Script) step(p *Preview) bool {
	if s.done {
		return true
	}
	// Queued manual steps run before the script moves on.
	if len(p.queue) > 0 {
		return true
	}
	if s.waitCount > 0 {
		s.waitCount--
		return true
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return false
	}

	st := s.steps[s.cursor]
	s.cursor++

	advance := false
	switch st.Action {
	case "step":
		frames := st.Frames
		if frames < 1 {
			frames = 1
		}
		p.StepFrames(frames, st.Dt)
		advance = true
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
			advance = true
		}
	default:
		s.runTargetAction(p, st)
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && len(p.queue) == 0 {
		s.done = true
	}
	return advance
}

func (s *Script) runTargetAction(p *Preview, st scriptStep) {
	c, ok := p.Lookup(st.Target)
	if !ok {
		s.failf("step %d (%s): unknown target %q", s.cursor-1, st.Action, st.Target)
		return
	}
	switch st.Action {
	case "play-end":
		c.runForward(st.Delay)
	case "play-begin":
		c.runBackward(st.Delay)
	case "snap-begin":
		c.SetBeginStateImmediately()
	case "snap-end":
		c.SetEndStateImmediately()
	case "expect-begin":
		if !c.IsInBeginState() {
			s.failf("step %d: %q is not in its begin state at frame %d", s.cursor-1, st.Target, p.sched.Frames())
		}
	case "expect-end":
		if !c.IsInEndState() {
			s.failf("step %d: %q is not in its end state at frame %d", s.cursor-1, st.Target, p.sched.Frames())
		}
	}
}

func (s *Script) failf(format string, args ...any) {
	s.failures = append(s.failures, fmt.Sprintf(format, args...))
}
