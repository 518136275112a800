package harness

import (
	"fmt"
	"log/slog"

	"github.com/roach88/motion/internal/action"
	"github.com/roach88/motion/internal/ease"
	"github.com/roach88/motion/internal/field"
	"github.com/roach88/motion/internal/interp"
	"github.com/roach88/motion/internal/pipeline"
	"github.com/roach88/motion/internal/timeline"
	"github.com/roach88/motion/internal/track"
)

// Setup is a scenario turned into a scene, registries and a compiled
// timeline, ready to bake.
type Setup struct {
	Scene     *Scene
	Fields    Fields
	Accessors *field.Registry
	Pipelines *pipeline.Registry[*Scene]
	Timeline  *timeline.Timeline
}

// Build creates the scene, registries and timeline described by s.
// Overlapping clips on one key are reported as an error wrapping
// *track.OverlapError.
func Build(s *Scenario, logger *slog.Logger) (setup *Setup, err error) {
	defer func() {
		if r := recover(); r != nil {
			oe, ok := r.(*track.OverlapError)
			if !ok {
				panic(r)
			}
			setup, err = nil, fmt.Errorf("compose tracks: %w", oe)
		}
	}()

	scene := NewScene()
	for _, n := range s.Nodes {
		scene.Add(NodeID(n.ID), n.Node())
	}

	accessors := field.NewRegistry()
	pipelines := pipeline.NewRegistry[*Scene]()
	RegisterPipelines(pipelines)

	c := &composer{
		b:      timeline.NewBuilder(timeline.WithLogger(logger)),
		fields: DefineFields(accessors),
	}
	for i, st := range s.Tracks {
		frag, err := c.compose(st)
		if err != nil {
			return nil, fmt.Errorf("tracks[%d]: %w", i, err)
		}
		if frag == nil {
			frag = track.NewFragment()
		}
		c.b.AddFragments(frag)
	}

	return &Setup{
		Scene:     scene,
		Fields:    c.fields,
		Accessors: accessors,
		Pipelines: pipelines,
		Timeline:  c.b.Compile(),
	}, nil
}

type composer struct {
	b      *timeline.Builder
	fields Fields
}

func (c *composer) compose(st Step) (*track.Fragment, error) {
	switch {
	case st.Act != nil:
		return c.act(st.Act)
	case st.Chain != nil:
		frags, err := c.composeAll(st.Chain)
		return track.Chain(frags...), err
	case st.All != nil:
		frags, err := c.composeAll(st.All)
		return track.All(frags...), err
	case st.Any != nil:
		frags, err := c.composeAll(st.Any)
		return track.Any(frags...), err
	case st.Flow != nil:
		frags, err := c.composeAll(st.Flow.Steps)
		return track.Flow(st.Flow.Delay, frags...), err
	case st.Delay != nil:
		frag, err := c.compose(st.Delay.Step)
		if err != nil {
			return nil, err
		}
		return track.Delay(st.Delay.By, frag), nil
	default:
		return nil, fmt.Errorf("empty step")
	}
}

func (c *composer) composeAll(steps []Step) ([]*track.Fragment, error) {
	frags := make([]*track.Fragment, 0, len(steps))
	for _, st := range steps {
		f, err := c.compose(st)
		if err != nil {
			return nil, err
		}
		frags = append(frags, f)
	}
	return frags, nil
}

func (c *composer) act(a *ActStep) (*track.Fragment, error) {
	id := NodeID(a.Node)
	switch a.Field {
	case FieldPosition:
		fn, err := vecAction(a)
		if err != nil {
			return nil, err
		}
		return play(timeline.Act(c.b, id, c.fields.Position, fn), a)
	case FieldScale:
		fn, err := floatAction(a)
		if err != nil {
			return nil, err
		}
		return play(timeline.Act(c.b, id, c.fields.Scale, fn), a)
	case FieldOpacity:
		fn, err := floatAction(a)
		if err != nil {
			return nil, err
		}
		return play(timeline.Act(c.b, id, c.fields.Opacity, fn), a)
	case FieldVisible:
		to, ok := a.To.(bool)
		if !ok {
			return nil, fmt.Errorf("visible: want bool, got %T", a.To)
		}
		return play(timeline.ActStep(c.b, id, c.fields.Visible, func(bool) bool { return to }), a)
	default:
		return nil, fmt.Errorf("unknown field %q", a.Field)
	}
}

func play[T any](ab *timeline.ActionBuilder[T], a *ActStep) (*track.Fragment, error) {
	if a.Ease != "" {
		fn, ok := ease.ByName(a.Ease)
		if !ok {
			return nil, fmt.Errorf("unknown ease %q", a.Ease)
		}
		ab.WithEase(fn)
	}
	if a.Step {
		ab.WithInterp(interp.Step[T])
	}
	return ab.Play(a.Duration), nil
}

func floatAction(a *ActStep) (action.Func[float64], error) {
	if a.To != nil {
		to, err := toFloat(a.To)
		if err != nil {
			return nil, fmt.Errorf("%s.to: %w", a.Field, err)
		}
		return func(float64) float64 { return to }, nil
	}
	by, err := toFloat(a.By)
	if err != nil {
		return nil, fmt.Errorf("%s.by: %w", a.Field, err)
	}
	return func(v float64) float64 { return v + by }, nil
}

func vecAction(a *ActStep) (action.Func[interp.Vec2], error) {
	if a.To != nil {
		to, err := toVec2(a.To)
		if err != nil {
			return nil, fmt.Errorf("%s.to: %w", a.Field, err)
		}
		return func(interp.Vec2) interp.Vec2 { return to }, nil
	}
	by, err := toVec2(a.By)
	if err != nil {
		return nil, fmt.Errorf("%s.by: %w", a.Field, err)
	}
	return func(v interp.Vec2) interp.Vec2 { return v.Add(by) }, nil
}
