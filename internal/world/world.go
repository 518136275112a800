// Package world runs many timelines against one host world.
//
// A World owns the accessor and pipeline registries shared by its
// timelines. Added timelines start pending and are baked on the next
// Update; every Update then advances each timeline's player, marks and
// samples it, and reports timelines that reached their end.
package world

import (
	"log/slog"
	"slices"
	"time"

	"github.com/roach88/motion/internal/field"
	"github.com/roach88/motion/internal/pipeline"
	"github.com/roach88/motion/internal/player"
	"github.com/roach88/motion/internal/timeline"
)

type config struct {
	logger *slog.Logger
	ids    IDGenerator
}

// Option configures a World.
type Option func(*config)

// WithLogger sets the logger.
//
// Default: slog.Default()
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithIDGenerator sets the timeline id generator.
//
// Default: UUIDv7Generator{}
func WithIDGenerator(g IDGenerator) Option {
	return func(c *config) {
		c.ids = g
	}
}

type entry struct {
	timeline *timeline.Timeline
	player   *player.Player
	pending  bool
	complete bool
}

// World schedules timelines over host world W.
//
// World is not safe for concurrent use.
type World[W any] struct {
	accessors *field.Registry
	pipelines *pipeline.Registry[W]
	logger    *slog.Logger
	ids       IDGenerator

	entries map[TimelineID]*entry
	order   []TimelineID
}

// New creates an empty World.
func New[W any](accessors *field.Registry, pipelines *pipeline.Registry[W], opts ...Option) *World[W] {
	cfg := config{logger: slog.Default(), ids: UUIDv7Generator{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return &World[W]{
		accessors: accessors,
		pipelines: pipelines,
		logger:    cfg.logger,
		ids:       cfg.ids,
		entries:   make(map[TimelineID]*entry),
	}
}

// Accessors returns the shared accessor registry.
func (w *World[W]) Accessors() *field.Registry { return w.accessors }

// Pipelines returns the shared pipeline registry.
func (w *World[W]) Pipelines() *pipeline.Registry[W] { return w.pipelines }

// Add registers a timeline driven by p and returns its id. A nil player is
// replaced by a paused default one. The timeline is baked on the next
// Update.
func (w *World[W]) Add(tl *timeline.Timeline, p *player.Player) TimelineID {
	if p == nil {
		p = player.New()
	}
	id := TimelineID(w.ids.Generate())
	w.entries[id] = &entry{timeline: tl, player: p, pending: true}
	w.order = append(w.order, id)
	w.logger.Debug("timeline added", "id", string(id), "tracks", len(tl.Tracks()))
	return id
}

// Remove unregisters a timeline and returns it.
func (w *World[W]) Remove(id TimelineID) (*timeline.Timeline, bool) {
	e, ok := w.entries[id]
	if !ok {
		return nil, false
	}
	delete(w.entries, id)
	w.order = slices.DeleteFunc(w.order, func(o TimelineID) bool { return o == id })
	w.logger.Debug("timeline removed", "id", string(id))
	return e.timeline, true
}

// Timeline returns a registered timeline.
func (w *World[W]) Timeline(id TimelineID) (*timeline.Timeline, bool) {
	e, ok := w.entries[id]
	if !ok {
		return nil, false
	}
	return e.timeline, true
}

// Player returns the player driving a timeline.
func (w *World[W]) Player(id TimelineID) (*player.Player, bool) {
	e, ok := w.entries[id]
	if !ok {
		return nil, false
	}
	return e.player, true
}

// IsPending reports whether a timeline is waiting to be baked.
func (w *World[W]) IsPending(id TimelineID) bool {
	e, ok := w.entries[id]
	return ok && e.pending
}

// IsComplete reports whether a timeline has reached the end of its last
// track.
func (w *World[W]) IsComplete(id TimelineID) bool {
	e, ok := w.entries[id]
	return ok && e.complete
}

// Rebake schedules a timeline to be baked again on the next Update, after
// host values it read have changed.
func (w *World[W]) Rebake(id TimelineID) bool {
	e, ok := w.entries[id]
	if !ok {
		return false
	}
	e.pending = true
	return true
}

// IDs returns timeline ids in the order they were added.
func (w *World[W]) IDs() []TimelineID {
	return slices.Clone(w.order)
}

// Len returns the number of timelines.
func (w *World[W]) Len() int {
	return len(w.order)
}

// Update bakes pending timelines, advances every player by dt, then marks
// and samples every timeline into world. It returns the ids of timelines
// that completed during this update.
func (w *World[W]) Update(world W, dt time.Duration) []TimelineID {
	var completed []TimelineID
	for _, id := range w.order {
		e := w.entries[id]
		if e.pending {
			timeline.BakeActions(e.timeline, w.pipelines, world, w.accessors)
			e.pending = false
		}

		e.player.Advance(e.timeline, dt)
		if e.timeline.Mark() > 0 {
			timeline.SampleQueuedActions(e.timeline, w.pipelines, world, w.accessors)
		}

		done := e.timeline.IsComplete()
		if done && !e.complete {
			completed = append(completed, id)
			w.logger.Debug("timeline complete", "id", string(id))
		}
		e.complete = done
	}
	return completed
}
