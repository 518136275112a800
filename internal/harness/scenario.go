package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/motion/internal/ease"
	"github.com/roach88/motion/internal/interp"
)

// Scenario describes a scene, the tracks animating it, and the frames to
// sample.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario exercises.
	Description string `yaml:"description"`

	// Nodes is the initial scene.
	Nodes []NodeSpec `yaml:"nodes"`

	// Tracks compose into one compiled track each, in playback order.
	Tracks []Step `yaml:"tracks"`

	// Frames are applied in order; each one runs a single update.
	Frames []FrameSpec `yaml:"frames"`

	// Expect checks node values after a frame.
	Expect []Expectation `yaml:"expect,omitempty"`
}

// NodeSpec declares a node. Omitted values take DefaultNode's.
type NodeSpec struct {
	ID       string       `yaml:"id"`
	Position *interp.Vec2 `yaml:"position,omitempty"`
	Scale    *float64     `yaml:"scale,omitempty"`
	Opacity  *float64     `yaml:"opacity,omitempty"`
	Visible  *bool        `yaml:"visible,omitempty"`
}

// Node returns the initial state described by ns.
func (ns NodeSpec) Node() Node {
	n := DefaultNode
	if ns.Position != nil {
		n.Position = *ns.Position
	}
	if ns.Scale != nil {
		n.Scale = *ns.Scale
	}
	if ns.Opacity != nil {
		n.Opacity = *ns.Opacity
	}
	if ns.Visible != nil {
		n.Visible = *ns.Visible
	}
	return n
}

// Step is one node of a composition tree. Exactly one field is set.
type Step struct {
	Act   *ActStep   `yaml:"act,omitempty"`
	Chain []Step     `yaml:"chain,omitempty"`
	All   []Step     `yaml:"all,omitempty"`
	Any   []Step     `yaml:"any,omitempty"`
	Flow  *FlowStep  `yaml:"flow,omitempty"`
	Delay *DelayStep `yaml:"delay,omitempty"`
}

// ActStep animates one node field over Duration seconds. To sets an
// absolute end value; By adds to the value the action starts from.
type ActStep struct {
	Node     string  `yaml:"node"`
	Field    string  `yaml:"field"`
	To       any     `yaml:"to,omitempty"`
	By       any     `yaml:"by,omitempty"`
	Duration float32 `yaml:"duration"`
	Ease     string  `yaml:"ease,omitempty"`
	Step     bool    `yaml:"step,omitempty"`
}

// FlowStep staggers Steps by Delay seconds each.
type FlowStep struct {
	Delay float32 `yaml:"delay"`
	Steps []Step  `yaml:"steps"`
}

// DelayStep shifts Step later by By seconds.
type DelayStep struct {
	By   float32 `yaml:"by"`
	Step Step    `yaml:"step"`
}

// FrameSpec is one update. Advance plays the timeline forward by that many
// seconds (times Scale, default 1). Otherwise Track and Time seek the
// timeline directly; either may be omitted to keep its current target.
type FrameSpec struct {
	Track   *int     `yaml:"track,omitempty"`
	Time    *float32 `yaml:"time,omitempty"`
	Advance *float64 `yaml:"advance,omitempty"`
	Scale   *float32 `yaml:"scale,omitempty"`
}

// Expectation checks a node field after frame Frame (1-based).
type Expectation struct {
	Frame int    `yaml:"frame"`
	Node  string `yaml:"node"`
	Field string `yaml:"field"`
	Value any    `yaml:"value"`
}

// LoadScenario reads, schema-validates and parses a scenario YAML file.
// Returns an error if the file doesn't exist, fails the schema, contains
// unknown fields, or is semantically invalid.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(path, data)
}

// ParseScenario is LoadScenario for in-memory data. filename is used in
// error positions.
func ParseScenario(filename string, data []byte) (*Scenario, error) {
	if err := ValidateScenario(filename, data); err != nil {
		return nil, err
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// Validate checks the constraints the schema cannot express: node
// references, value types, and that each step and frame has one meaning.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if len(s.Tracks) == 0 {
		return errors.New("tracks list is required and must be non-empty")
	}
	if len(s.Frames) == 0 {
		return errors.New("frames list is required and must be non-empty")
	}

	nodes := make(map[string]bool, len(s.Nodes))
	for i, n := range s.Nodes {
		if n.ID == "" {
			return fmt.Errorf("nodes[%d]: id is required", i)
		}
		if nodes[n.ID] {
			return fmt.Errorf("nodes[%d]: duplicate id %q", i, n.ID)
		}
		nodes[n.ID] = true
	}

	for i, st := range s.Tracks {
		if err := validateStep(st, nodes); err != nil {
			return fmt.Errorf("tracks[%d]%w", i, err)
		}
	}

	for i, f := range s.Frames {
		if f.Advance != nil && (f.Track != nil || f.Time != nil) {
			return fmt.Errorf("frames[%d]: advance cannot be combined with track or time", i)
		}
		if f.Advance == nil && f.Track == nil && f.Time == nil {
			return fmt.Errorf("frames[%d]: one of advance, track or time is required", i)
		}
		if f.Scale != nil && f.Advance == nil {
			return fmt.Errorf("frames[%d]: scale requires advance", i)
		}
	}

	for i, e := range s.Expect {
		if e.Frame < 1 || e.Frame > len(s.Frames) {
			return fmt.Errorf("expect[%d]: frame %d out of range [1, %d]", i, e.Frame, len(s.Frames))
		}
		if !nodes[e.Node] {
			return fmt.Errorf("expect[%d]: unknown node %q", i, e.Node)
		}
		if _, err := fieldValue(e.Field, e.Value); err != nil {
			return fmt.Errorf("expect[%d]: %w", i, err)
		}
	}
	return nil
}

// validateStep returns errors prefixed with the step's path below its
// parent, e.g. ".chain[1].act: ...".
func validateStep(st Step, nodes map[string]bool) error {
	kinds := 0
	for _, set := range []bool{st.Act != nil, st.Chain != nil, st.All != nil, st.Any != nil, st.Flow != nil, st.Delay != nil} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return fmt.Errorf(": exactly one of act, chain, all, any, flow, delay is required (got %d)", kinds)
	}

	children := func(name string, steps []Step) error {
		for i, c := range steps {
			if err := validateStep(c, nodes); err != nil {
				return fmt.Errorf(".%s[%d]%w", name, i, err)
			}
		}
		return nil
	}

	switch {
	case st.Act != nil:
		if err := validateAct(st.Act, nodes); err != nil {
			return fmt.Errorf(".act: %w", err)
		}
	case st.Chain != nil:
		return children("chain", st.Chain)
	case st.All != nil:
		return children("all", st.All)
	case st.Any != nil:
		return children("any", st.Any)
	case st.Flow != nil:
		if st.Flow.Delay < 0 {
			return fmt.Errorf(".flow: delay must be >= 0")
		}
		return children("flow.steps", st.Flow.Steps)
	case st.Delay != nil:
		if st.Delay.By < 0 {
			return fmt.Errorf(".delay: by must be >= 0")
		}
		if err := validateStep(st.Delay.Step, nodes); err != nil {
			return fmt.Errorf(".delay.step%w", err)
		}
	}
	return nil
}

func validateAct(a *ActStep, nodes map[string]bool) error {
	if !nodes[a.Node] {
		return fmt.Errorf("unknown node %q", a.Node)
	}
	if a.Duration < 0 {
		return fmt.Errorf("duration must be >= 0")
	}
	if (a.To == nil) == (a.By == nil) {
		return fmt.Errorf("exactly one of to, by is required")
	}
	if a.By != nil && a.Field == FieldVisible {
		return fmt.Errorf("field %q does not support by", a.Field)
	}
	v := a.To
	if v == nil {
		v = a.By
	}
	if _, err := fieldValue(a.Field, v); err != nil {
		return err
	}
	if a.Ease != "" {
		if _, ok := ease.ByName(a.Ease); !ok {
			return fmt.Errorf("unknown ease %q", a.Ease)
		}
	}
	return nil
}
