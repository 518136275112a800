package timeline

import (
	"log/slog"
	"math"
	"slices"

	"github.com/roach88/motion/internal/action"
	"github.com/roach88/motion/internal/field"
	"github.com/roach88/motion/internal/pipeline"
	"github.com/roach88/motion/internal/track"
)

// Timeline owns an action store, an ordered list of tracks and the
// current/target cursors.
//
// INVARIANTS:
//   - 0 <= targetTime <= tracks[targetIndex].Duration()
//   - 0 <= currIndex, targetIndex <= LastTrackIndex()
//   - after Mark, every action key carries at most one mark
type Timeline struct {
	actions   *action.Store
	pipelines []pipeline.Key
	tracks    []*track.Track
	queue     *QueueCache
	logger    *slog.Logger

	currTime    float32
	targetTime  float32
	currIndex   int
	targetIndex int

	// settled is true once Mark has run for the current target and nothing
	// has changed since.
	settled bool
}

func sortKeys(keys []pipeline.Key) {
	slices.SortFunc(keys, pipeline.Key.Compare)
}

// CurrTime returns the time reached by the last Mark.
func (tl *Timeline) CurrTime() float32 { return tl.currTime }

// TargetTime returns the requested time.
func (tl *Timeline) TargetTime() float32 { return tl.targetTime }

// CurrIndex returns the track reached by the last Mark.
func (tl *Timeline) CurrIndex() int { return tl.currIndex }

// TargetIndex returns the requested track.
func (tl *Timeline) TargetIndex() int { return tl.targetIndex }

// Tracks returns the compiled tracks. The slice must not be modified.
func (tl *Timeline) Tracks() []*track.Track { return tl.tracks }

// Actions returns the action store.
func (tl *Timeline) Actions() *action.Store { return tl.actions }

// Pipelines returns the keys of every pipeline referenced by an action, in
// dispatch order.
func (tl *Timeline) Pipelines() []pipeline.Key { return tl.pipelines }

// LastTrackIndex returns the largest index accepted by SetTargetTrack.
func (tl *Timeline) LastTrackIndex() int {
	return max(len(tl.tracks)-1, 0)
}

// IsLastTrack reports whether the current track is the last one.
func (tl *Timeline) IsLastTrack() bool {
	return tl.currIndex == tl.LastTrackIndex()
}

// CurrDuration returns the duration of the current track, or 0 without
// tracks.
func (tl *Timeline) CurrDuration() float32 {
	if len(tl.tracks) == 0 {
		return 0
	}
	return tl.tracks[tl.currIndex].Duration()
}

// IsComplete reports whether playback has reached the end of the last
// track. A timeline without tracks is always complete.
func (tl *Timeline) IsComplete() bool {
	return tl.IsLastTrack() && tl.currTime >= tl.CurrDuration()
}

// SetTargetTime requests a time within the target track, clamped to
// [0, duration]. NaN is treated as 0. Without tracks it does nothing.
func (tl *Timeline) SetTargetTime(t float32) *Timeline {
	if len(tl.tracks) == 0 {
		return tl
	}
	if math.IsNaN(float64(t)) {
		t = 0
	}
	t = min(max(t, 0), tl.tracks[tl.targetIndex].Duration())
	if t != tl.targetTime {
		tl.targetTime = t
		tl.settled = false
	}
	return tl
}

// SetTargetTrack requests a track, clamped to [0, LastTrackIndex()]. The
// target time is re-clamped to the new track's duration.
func (tl *Timeline) SetTargetTrack(i int) *Timeline {
	if len(tl.tracks) == 0 {
		return tl
	}
	i = min(max(i, 0), tl.LastTrackIndex())
	if i != tl.targetIndex {
		tl.targetIndex = i
		tl.settled = false
	}
	return tl.SetTargetTime(tl.targetTime)
}

// Mark moves the current cursor to the target cursor and marks the actions
// that must be sampled to reflect the move. It returns the number of keys
// marked.
//
// When the track index changes, every sequence of the tracks being left
// behind is snapped to its boundary clip: the last clip marked End when
// moving forward, the first clip marked Start when moving backward. The
// within-track pass then starts from time 0 (forward) or the target track's
// duration (backward).
//
// Calling Mark again without changing the target or re-baking marks
// nothing.
func (tl *Timeline) Mark() int {
	if len(tl.tracks) == 0 {
		return 0
	}
	if tl.settled && tl.currIndex == tl.targetIndex && tl.currTime == tl.targetTime {
		return 0
	}

	tl.queue.Clear()
	tl.actions.ClearAllMarks()

	currTime := tl.currTime
	switch {
	case tl.targetIndex > tl.currIndex:
		currTime = 0
		for i := tl.currIndex; i < tl.targetIndex; i++ {
			tl.markBoundaries(tl.tracks[i], action.End())
		}
		tl.currIndex = tl.targetIndex
	case tl.targetIndex < tl.currIndex:
		currTime = tl.tracks[tl.targetIndex].Duration()
		for i := tl.targetIndex + 1; i <= tl.currIndex; i++ {
			tl.markBoundaries(tl.tracks[i], action.Start())
		}
		tl.currIndex = tl.targetIndex
	}

	window := track.NewRange(currTime, tl.targetTime)
	tr := tl.tracks[tl.currIndex]
	for _, ss := range tr.SequenceSpans() {
		clip, mode, ok := Locate(tr.Clips(ss.Span), window, tl.targetTime)
		if !ok {
			continue
		}
		tl.queueMark(ss.Key, clip.ID, mode)
	}

	tl.currTime = tl.targetTime
	tl.settled = true
	return tl.queue.Len()
}

// QueueActions is an alias for Mark.
func (tl *Timeline) QueueActions() int {
	return tl.Mark()
}

func (tl *Timeline) markBoundaries(tr *track.Track, mode action.SampleMode) {
	for _, ss := range tr.SequenceSpans() {
		clips := tr.Clips(ss.Span)
		if len(clips) == 0 {
			continue
		}
		clip := clips[0]
		if mode.Kind == action.SampleEnd {
			clip = clips[len(clips)-1]
		}
		tl.queueMark(ss.Key, clip.ID, mode)
	}
}

func (tl *Timeline) queueMark(key action.Key, id action.ID, mode action.SampleMode) {
	tl.queue.Cache(key, id, tl.actions)
	tl.actions.Mark(id, mode)
}

// Locate selects the clip of one time-sorted sequence to sample when the
// cursor moves across window and lands on t.
//
// A clip containing t is sampled at its progress. Otherwise the clip just
// before t is sampled at its end when the move touched it, else the clip
// just after t is sampled at its start. Sequences that do not overlap
// window are left alone.
func Locate(clips []track.Clip, window track.Range, t float32) (track.Clip, action.SampleMode, bool) {
	if len(clips) == 0 {
		return track.Clip{}, action.SampleMode{}, false
	}
	seq := track.Range{Start: clips[0].Start, End: clips[len(clips)-1].End()}
	if !window.Overlaps(seq) {
		return track.Clip{}, action.SampleMode{}, false
	}

	idx, found := track.SearchClips(clips, t)
	if found {
		c := clips[idx]
		return c, action.Interp(progress(c, t)), true
	}

	if idx > 0 && window.Overlaps(clips[idx-1].Range()) {
		return clips[idx-1], action.End(), true
	}
	if idx < len(clips) && window.Overlaps(clips[idx].Range()) {
		return clips[idx], action.Start(), true
	}
	return track.Clip{}, action.SampleMode{}, false
}

// progress returns how far t is into c, in [0, 1]. Zero-length clips are
// complete as soon as they are reached, and t at or past End is exactly 1
// so step interpolation fires at the clip's end.
func progress(c track.Clip, t float32) float32 {
	end := c.End()
	if c.Duration <= 0 || t >= end {
		return 1
	}
	p := (t - c.Start) / (end - c.Start)
	return min(max(p, 0), 1)
}

// BakeActions runs every referenced pipeline's Bake over every track,
// folding each sequence from the host's live values. Call it after
// structural changes and whenever host values the bake read have changed.
// Baking re-arms Mark.
func BakeActions[W any](tl *Timeline, pipelines *pipeline.Registry[W], world W, accessors *field.Registry) {
	for _, key := range tl.pipelines {
		p, ok := pipelines.Get(key)
		if !ok {
			tl.logger.Debug("bake: no pipeline",
				"error", &pipeline.LookupError{Code: pipeline.ErrCodePipelineNotFound, Pipeline: key})
			continue
		}
		for _, tr := range tl.tracks {
			p.Bake(world, pipeline.BakeCtx{
				Track:     tr,
				Actions:   tl.actions,
				Accessors: accessors,
				Logger:    tl.logger,
			})
		}
	}
	tl.settled = false
}

// SampleQueuedActions runs every referenced pipeline's Sample, writing the
// marked values into world. Marks handled by a pipeline are cleared.
func SampleQueuedActions[W any](tl *Timeline, pipelines *pipeline.Registry[W], world W, accessors *field.Registry) {
	for _, key := range tl.pipelines {
		p, ok := pipelines.Get(key)
		if !ok {
			tl.logger.Debug("sample: no pipeline",
				"error", &pipeline.LookupError{Code: pipeline.ErrCodePipelineNotFound, Pipeline: key})
			continue
		}
		p.Sample(world, pipeline.SampleCtx{
			Actions:   tl.actions,
			Accessors: accessors,
			Logger:    tl.logger,
		})
	}
}

// Seek sets both target cursors and runs Mark followed by
// SampleQueuedActions.
func Seek[W any](tl *Timeline, index int, t float32, pipelines *pipeline.Registry[W], world W, accessors *field.Registry) int {
	tl.SetTargetTrack(index)
	tl.SetTargetTime(t)
	n := tl.Mark()
	SampleQueuedActions(tl, pipelines, world, accessors)
	return n
}
