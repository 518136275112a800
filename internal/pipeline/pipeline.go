package pipeline

import (
	"log/slog"
	"reflect"
	"slices"

	"github.com/roach88/motion/internal/action"
	"github.com/roach88/motion/internal/field"
	"github.com/roach88/motion/internal/interp"
	"github.com/roach88/motion/internal/track"
)

// BakeCtx is handed to Pipeline.Bake once per compiled track.
type BakeCtx struct {
	Track     *track.Track
	Actions   *action.Store
	Accessors *field.Registry
	Logger    *slog.Logger
}

// SampleCtx is handed to Pipeline.Sample once per sample pass.
type SampleCtx struct {
	Actions   *action.Store
	Accessors *field.Registry
	Logger    *slog.Logger
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

// Pipeline bakes and samples the actions of one Key against host world W.
type Pipeline[W any] interface {
	Bake(world W, ctx BakeCtx)
	Sample(world W, ctx SampleCtx)
}

// Funcs adapts a pair of functions to Pipeline. A nil function is a no-op.
type Funcs[W any] struct {
	BakeFunc   func(world W, ctx BakeCtx)
	SampleFunc func(world W, ctx SampleCtx)
}

// Bake implements Pipeline.
func (f Funcs[W]) Bake(world W, ctx BakeCtx) {
	if f.BakeFunc != nil {
		f.BakeFunc(world, ctx)
	}
}

// Sample implements Pipeline.
func (f Funcs[W]) Sample(world W, ctx SampleCtx) {
	if f.SampleFunc != nil {
		f.SampleFunc(world, ctx)
	}
}

// Lookup builds a Pipeline from a function that resolves a subject id to a
// pointer into host storage. Values are read and written through the
// accessor registered for each field.
func Lookup[W any, I comparable, S, T any](get func(world W, id I) (*S, bool)) Pipeline[W] {
	return Funcs[W]{
		BakeFunc: func(world W, ctx BakeCtx) {
			Bake[I, S, T](ctx, func(id I) (*S, bool) {
				return get(world, id)
			})
		},
		SampleFunc: func(world W, ctx SampleCtx) {
			Sample[I, S, T](ctx, func(id I, _ field.UntypedField, value T, acc field.Accessor[S, T]) bool {
				src, ok := get(world, id)
				if !ok {
					return false
				}
				acc.Set(src, value)
				return true
			})
		},
	}
}

// handles reports whether key belongs to the pipeline for (I, S, T).
func handles[I comparable, S, T any](key action.Key) bool {
	return key.Subject.Type == reflect.TypeFor[I]() && field.Is[S, T](key.Field)
}

// Bake folds every matching sequence of ctx.Track from the host's live value
// and stores a segment on each action. It returns the number of segments
// written.
//
// Sequences whose accessor is missing or mistyped, or whose subject the host
// cannot resolve, are skipped.
func Bake[I comparable, S, T any](ctx BakeCtx, get func(id I) (*S, bool)) int {
	log := loggerOrDefault(ctx.Logger)
	baked := 0

	for _, ss := range ctx.Track.SequenceSpans() {
		key := ss.Key
		if !handles[I, S, T](key) {
			continue
		}

		acc, err := field.Get[S, T](ctx.Accessors, key.Field)
		if err != nil {
			log.Debug("bake: skipping sequence", "key", key.String(), "error", err)
			continue
		}

		id, ok := action.SubjectOf[I](ctx.Actions, key.Subject)
		if !ok {
			log.Debug("bake: skipping sequence", "key", key.String(),
				"error", &LookupError{Code: ErrCodeHostLookupFailed, Key: key})
			continue
		}
		src, ok := get(id)
		if !ok {
			log.Debug("bake: skipping sequence", "key", key.String(),
				"error", &LookupError{Code: ErrCodeHostLookupFailed, Key: key})
			continue
		}

		start := acc.Get(src)
		for _, c := range ctx.Track.Clips(ss.Span) {
			fn, ok := action.Get[T](ctx.Actions, c.ID)
			if !ok {
				continue
			}
			end := fn(start)
			action.SetSegment(ctx.Actions, c.ID, action.Segment[T]{Start: start, End: end})
			start = end
			baked++
		}
	}
	return baked
}

// Sample computes the value of every marked action handled by this
// pipeline and passes it to set. Each mark is cleared once handled. It
// returns the number of values written.
//
// set receives the field being written and reports false when the host
// could not resolve the subject.
func Sample[I comparable, S, T any](ctx SampleCtx, set func(id I, f field.UntypedField, value T, acc field.Accessor[S, T]) bool) int {
	log := loggerOrDefault(ctx.Logger)
	written := 0

	for _, aid := range ctx.Actions.Marked() {
		key, ok := ctx.Actions.Key(aid)
		if !ok || !handles[I, S, T](key) {
			continue
		}
		mode, _ := ctx.Actions.MarkOf(aid)
		ctx.Actions.ClearMark(aid)

		acc, err := field.Get[S, T](ctx.Accessors, key.Field)
		if err != nil {
			log.Debug("sample: skipping action", "action", uint64(aid), "key", key.String(), "error", err)
			continue
		}
		seg, ok := action.SegmentOf[T](ctx.Actions, aid)
		if !ok {
			log.Debug("sample: action not baked", "action", uint64(aid), "key", key.String())
			continue
		}

		var value T
		switch mode.Kind {
		case action.SampleStart:
			value = seg.Start
		case action.SampleEnd:
			value = seg.End
		default:
			fn, ok := action.InterpOf[T](ctx.Actions, aid)
			if !ok {
				fn, ok = interp.Default[T]()
			}
			if !ok {
				log.Debug("sample: skipping action", "action", uint64(aid), "key", key.String(),
					"error", &LookupError{Code: ErrCodeNoInterpolation, Key: key})
				continue
			}
			t := mode.T
			if e, ok := ctx.Actions.Ease(aid); ok {
				t = e(t)
			}
			value = fn(seg.Start, seg.End, t)
		}

		id, ok := action.SubjectOf[I](ctx.Actions, key.Subject)
		if !ok || !set(id, key.Field, value, acc) {
			log.Debug("sample: skipping action", "action", uint64(aid), "key", key.String(),
				"error", &LookupError{Code: ErrCodeHostLookupFailed, Key: key})
			continue
		}
		written++
	}
	return written
}

// Registry maps pipeline keys to pipelines for host world W.
type Registry[W any] struct {
	pipelines map[Key]Pipeline[W]
}

// NewRegistry creates an empty Registry.
func NewRegistry[W any]() *Registry[W] {
	return &Registry[W]{pipelines: make(map[Key]Pipeline[W])}
}

// Register stores p under key, replacing any previous pipeline.
func (r *Registry[W]) Register(key Key, p Pipeline[W]) {
	r.pipelines[key] = p
}

// Register stores a Lookup pipeline for (I, S, T) and returns its key.
func Register[W any, I comparable, S, T any](r *Registry[W], get func(world W, id I) (*S, bool)) Key {
	key := KeyOf[I, S, T]()
	r.Register(key, Lookup[W, I, S, T](get))
	return key
}

// Get returns the pipeline registered under key.
func (r *Registry[W]) Get(key Key) (Pipeline[W], bool) {
	p, ok := r.pipelines[key]
	return p, ok
}

// Len returns the number of registered pipelines.
func (r *Registry[W]) Len() int {
	return len(r.pipelines)
}

// Keys returns every registered key in sorted order.
func (r *Registry[W]) Keys() []Key {
	keys := make([]Key, 0, len(r.pipelines))
	for k := range r.pipelines {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, Key.Compare)
	return keys
}
