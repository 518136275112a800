package timeline

import (
	"log/slog"

	"github.com/roach88/motion/internal/action"
	"github.com/roach88/motion/internal/ease"
	"github.com/roach88/motion/internal/field"
	"github.com/roach88/motion/internal/interp"
	"github.com/roach88/motion/internal/pipeline"
	"github.com/roach88/motion/internal/track"
)

// Option configures a Builder and the Timeline it compiles.
type Option func(*Builder)

// WithLogger sets the logger used for skip diagnostics.
//
// Default: slog.Default()
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = l
	}
}

// Builder collects actions and tracks for one Timeline.
//
// A Builder must not be used after Compile.
type Builder struct {
	actions *action.Store
	counts  map[pipeline.Key]int
	tracks  []*track.Track
	logger  *slog.Logger
}

// NewBuilder creates an empty Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		actions: action.NewStore(),
		counts:  make(map[pipeline.Key]int),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// ActionBuilder configures one freshly added action.
type ActionBuilder[T any] struct {
	b   *Builder
	id  action.ID
	key action.Key
}

// Act adds an action that transforms subject's field f with fn.
func Act[I comparable, S, T any](b *Builder, subject I, f field.Field[S, T], fn action.Func[T]) *ActionBuilder[T] {
	id, key := action.Add(b.actions, subject, f, fn)
	b.counts[pipeline.KeyFromAction(key)]++
	return &ActionBuilder[T]{b: b, id: id, key: key}
}

// ActStep is Act with step interpolation: the field holds its start value
// until the clip ends.
func ActStep[I comparable, S, T any](b *Builder, subject I, f field.Field[S, T], fn action.Func[T]) *ActionBuilder[T] {
	return Act(b, subject, f, fn).WithInterp(interp.Step[T])
}

// WithInterp sets a custom interpolation function.
func (ab *ActionBuilder[T]) WithInterp(fn interp.Func[T]) *ActionBuilder[T] {
	action.SetInterp(ab.b.actions, ab.id, fn)
	return ab
}

// WithEase sets an easing function.
func (ab *ActionBuilder[T]) WithEase(fn ease.Func) *ActionBuilder[T] {
	ab.b.actions.SetEase(ab.id, fn)
	return ab
}

// ID returns the action's id.
func (ab *ActionBuilder[T]) ID() action.ID {
	return ab.id
}

// Key returns the action's key.
func (ab *ActionBuilder[T]) Key() action.Key {
	return ab.key
}

// Play schedules the action as a single clip of the given duration starting
// at 0.
func (ab *ActionBuilder[T]) Play(duration float32) *track.Fragment {
	return track.Single(ab.key, track.NewClip(ab.id, duration))
}

// Unact removes an action. Tracks already holding clips of it keep them;
// those clips are skipped during baking and sampling.
func (b *Builder) Unact(id action.ID) bool {
	key, ok := b.actions.Remove(id)
	if !ok {
		return false
	}
	pk := pipeline.KeyFromAction(key)
	b.counts[pk]--
	if b.counts[pk] <= 0 {
		delete(b.counts, pk)
	}
	return true
}

// AddTracks appends compiled tracks in playback order.
func (b *Builder) AddTracks(tracks ...*track.Track) *Builder {
	for _, t := range tracks {
		if t != nil {
			b.tracks = append(b.tracks, t)
		}
	}
	return b
}

// AddFragments compiles each fragment and appends it as a track.
func (b *Builder) AddFragments(frags ...*track.Fragment) *Builder {
	for _, f := range frags {
		if f != nil {
			b.tracks = append(b.tracks, f.Compile())
		}
	}
	return b
}

// Actions exposes the action store being built.
func (b *Builder) Actions() *action.Store {
	return b.actions
}

// Compile hands the actions and tracks to a new Timeline with both cursors
// at track 0, time 0.
func (b *Builder) Compile() *Timeline {
	keys := make([]pipeline.Key, 0, len(b.counts))
	for k := range b.counts {
		keys = append(keys, k)
	}
	sortKeys(keys)

	return &Timeline{
		actions:   b.actions,
		pipelines: keys,
		tracks:    b.tracks,
		queue:     NewQueueCache(),
		logger:    b.logger,
	}
}
