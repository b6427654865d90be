package space

import (
	"encoding/json"
	"fmt"
	"time"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	Ms      float64 `json:"ms,omitempty"`
	StepMs  float64 `json:"stepMs,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Value   float64 `json:"value,omitempty"`
	Enabled bool    `json:"enabled,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner replays a scripted timeline against an engine on a ManualHost, so
// motion can be captured at exact times for golden tests and offline renders.
//
//	{"steps": [
//	  {"action": "step", "ms": 16, "frames": 10},
//	  {"action": "snapshot", "label": "mid"},
//	  {"action": "timeScale", "value": 0.5},
//	  {"action": "advance", "ms": 1000, "stepMs": 16},
//	  {"action": "snapshot", "label": "end"}
//	]}
type TestRunner struct {
	steps  []testStep
	cursor int
	done   bool

	// OnSnapshot runs for each snapshot step with its label and the host time.
	OnSnapshot func(label string, now time.Duration)
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready to
// Run.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func (st testStep) validate() error {
	switch st.Action {
	case "step":
		if st.Ms < 0 {
			return fmt.Errorf("step ms cannot be negative, got %g", st.Ms)
		}
	case "advance":
		if st.Ms < 0 || st.StepMs <= 0 {
			return fmt.Errorf("advance needs ms >= 0 and stepMs > 0")
		}
	case "timeScale":
		if st.Value <= 0 {
			return fmt.Errorf("timeScale must be positive, got %g", st.Value)
		}
	case "snapshot", "reducedMotion", "pause", "resume":
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Run executes the remaining steps.
func (r *TestRunner) Run(engine *Engine, host *ManualHost) {
	for !r.done {
		r.Step(engine, host)
	}
}

// Step executes the next step.
func (r *TestRunner) Step(engine *Engine, host *ManualHost) {
	if r.done {
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "step":
		frames := max(st.Frames, 1)
		for i := 0; i < frames; i++ {
			host.Step(millis(st.Ms))
		}
	case "advance":
		host.Advance(millis(st.Ms), millis(st.StepMs))
	case "timeScale":
		engine.sched.SetTimeScale(st.Value)
	case "reducedMotion":
		engine.sched.SetReducedMotion(st.Enabled)
	case "pause":
		engine.ticker.Stop()
	case "resume":
		engine.ticker.Start()
	case "snapshot":
		if r.OnSnapshot != nil {
			r.OnSnapshot(st.Label, host.Now())
		}
	}

	if r.cursor >= len(r.steps) {
		r.done = true
	}
}
