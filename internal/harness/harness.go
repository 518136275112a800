package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/motion/internal/player"
	"github.com/roach88/motion/internal/store"
	"github.com/roach88/motion/internal/world"
)

// Recorder receives every frame a run samples. *store.Recorder implements
// it.
type Recorder interface {
	Record(ctx context.Context, trackIndex int, t float32, samples []store.Sample) error
}

type config struct {
	recorder Recorder
	logger   *slog.Logger
}

// Option configures Run.
type Option func(*config)

// WithRecorder records every frame to r.
func WithRecorder(r Recorder) Option {
	return func(c *config) {
		c.recorder = r
	}
}

// WithLogger sets the logger handed to the timeline and world.
//
// Default: a logger that discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FrameTrace is what one frame did: the cursor after the update and every
// value written to the scene.
type FrameTrace struct {
	Seq      int64          `json:"seq"`
	Track    int            `json:"track"`
	Time     float32        `json:"time"`
	Complete bool           `json:"complete"`
	Samples  []store.Sample `json:"samples"`
}

// Result is the outcome of running a scenario.
type Result struct {
	// Pass is true when every expectation held.
	Pass bool `json:"pass"`

	// Timeline is the id the scenario's timeline ran under.
	Timeline world.TimelineID `json:"timeline"`

	// Trace has one entry per frame, in order.
	Trace []FrameTrace `json:"trace"`

	// Errors lists failed expectations. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result with an empty trace.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []FrameTrace{},
		Errors: []string{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Frames converts the trace to stored frames for diffing against a
// recording.
func (r *Result) Frames() []store.Frame {
	frames := make([]store.Frame, len(r.Trace))
	for i, ft := range r.Trace {
		frames[i] = store.Frame{
			Seq:        ft.Seq,
			TrackIndex: ft.Track,
			Time:       ft.Time,
			Samples:    ft.Samples,
		}
	}
	return frames
}

// Run plays a scenario against a fresh scene.
//
// The timeline runs inside a world under the scenario's name. The first
// frame bakes it from the declared node values. Advance frames play it
// with a player; other frames seek it directly. After each frame the
// values written are traced, recorded when a recorder is set, and checked
// against the expectations for that frame.
func Run(ctx context.Context, s *Scenario, opts ...Option) (*Result, error) {
	cfg := config{logger: discardLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = discardLogger()
	}

	setup, err := Build(s, cfg.logger)
	if err != nil {
		return nil, err
	}

	w := world.New(setup.Accessors, setup.Pipelines,
		world.WithLogger(cfg.logger),
		world.WithIDGenerator(world.NewFixedGenerator(s.Name)),
	)
	p := player.New()
	tl := setup.Timeline
	id := w.Add(tl, p)

	expect := make(map[int][]Expectation)
	for _, e := range s.Expect {
		expect[e.Frame] = append(expect[e.Frame], e)
	}

	result := NewResult()
	result.Timeline = id
	for i, f := range s.Frames {
		if f.Advance != nil {
			scale := float32(player.DefaultTimeScale)
			if f.Scale != nil {
				scale = *f.Scale
			}
			p.SetPlaying(true).SetTimeScale(scale)
			w.Update(setup.Scene, time.Duration(*f.Advance*float64(time.Second)))
			p.SetPlaying(false)
		} else {
			if f.Track != nil {
				tl.SetTargetTrack(*f.Track)
			}
			if f.Time != nil {
				tl.SetTargetTime(*f.Time)
			}
			w.Update(setup.Scene, 0)
		}

		ft := FrameTrace{
			Seq:      int64(i + 1),
			Track:    tl.CurrIndex(),
			Time:     tl.CurrTime(),
			Complete: w.IsComplete(id),
			Samples:  setup.Scene.Drain(),
		}
		result.Trace = append(result.Trace, ft)

		if cfg.recorder != nil {
			if err := cfg.recorder.Record(ctx, ft.Track, ft.Time, ft.Samples); err != nil {
				return nil, fmt.Errorf("frame %d: record: %w", ft.Seq, err)
			}
		}

		for _, e := range expect[i+1] {
			if msg, ok := check(setup.Scene, e); !ok {
				result.AddError(msg)
			}
		}

		cfg.logger.Debug("frame sampled",
			"seq", ft.Seq,
			"track", ft.Track,
			"time", ft.Time,
			"samples", len(ft.Samples),
		)
	}

	return result, nil
}

// check compares a node field with an expectation using canonical JSON, so
// floats match to six decimal places.
func check(scene *Scene, e Expectation) (string, bool) {
	n, ok := scene.Node(NodeID(e.Node))
	if !ok {
		return fmt.Sprintf("frame %d: unknown node %q", e.Frame, e.Node), false
	}
	got, ok := nodeValue(n, e.Field)
	if !ok {
		return fmt.Sprintf("frame %d: unknown field %q", e.Frame, e.Field), false
	}
	want, err := fieldValue(e.Field, e.Value)
	if err != nil {
		return fmt.Sprintf("frame %d: %s.%s: %v", e.Frame, e.Node, e.Field, err), false
	}

	gotJSON, err := encodeValue(got)
	if err != nil {
		return fmt.Sprintf("frame %d: %s.%s: %v", e.Frame, e.Node, e.Field, err), false
	}
	wantJSON, err := encodeValue(want)
	if err != nil {
		return fmt.Sprintf("frame %d: %s.%s: %v", e.Frame, e.Node, e.Field, err), false
	}
	if gotJSON != wantJSON {
		return fmt.Sprintf("frame %d: %s.%s = %s, want %s", e.Frame, e.Node, e.Field, gotJSON, wantJSON), false
	}
	return "", true
}
