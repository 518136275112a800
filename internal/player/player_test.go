package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/motion/internal/field"
	"github.com/roach88/motion/internal/timeline"
)

type box struct {
	W float64
}

func newTimeline(duration float32) *timeline.Timeline {
	b := timeline.NewBuilder()
	w := field.New[box, float64]("::w")
	b.AddFragments(timeline.Act(b, 1, w, func(v float64) float64 { return v + 1 }).Play(duration))
	return b.Compile()
}

func TestPlayer_Defaults(t *testing.T) {
	p := New()
	assert.False(t, p.IsPlaying())
	assert.Equal(t, DefaultTimeScale, p.TimeScale())
}

func TestPlayer_PausedDoesNothing(t *testing.T) {
	tl := newTimeline(2)
	p := New()

	assert.False(t, p.Advance(tl, time.Second))
	assert.Equal(t, float32(0), tl.TargetTime())
}

func TestPlayer_Advance(t *testing.T) {
	tl := newTimeline(2)
	p := New(WithPlaying(true), WithTimeScale(0.5))

	assert.True(t, p.Advance(tl, time.Second))
	assert.Equal(t, float32(0.5), tl.TargetTime())

	p.SetTimeScale(2)
	assert.True(t, p.Advance(tl, time.Second))
	assert.Equal(t, float32(2), tl.TargetTime(), "clamped to the track duration")

	assert.False(t, p.Advance(tl, time.Second), "pinned at the end")
}

func TestPlayer_Backwards(t *testing.T) {
	tl := newTimeline(2)
	tl.SetTargetTime(1)
	p := New(WithPlaying(true), WithTimeScale(-1))

	assert.True(t, p.Advance(tl, 500*time.Millisecond))
	assert.Equal(t, float32(0.5), tl.TargetTime())

	p.Advance(tl, time.Second)
	assert.Equal(t, float32(0), tl.TargetTime())

	p.SetPlaying(false)
	assert.False(t, p.IsPlaying())
}
