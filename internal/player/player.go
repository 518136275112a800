// Package player advances a timeline's target time in real time.
package player

import (
	"time"

	"github.com/roach88/motion/internal/timeline"
)

// DefaultTimeScale plays at normal speed.
const DefaultTimeScale float32 = 1

// Player moves a timeline's target time by scale * elapsed time while
// playing. A negative scale plays backwards.
type Player struct {
	playing   bool
	timeScale float32
}

// Option configures a Player.
type Option func(*Player)

// WithPlaying sets the initial playing state.
//
// Default: false
func WithPlaying(playing bool) Option {
	return func(p *Player) {
		p.playing = playing
	}
}

// WithTimeScale sets the initial time scale.
//
// Default: 1 (DefaultTimeScale)
func WithTimeScale(scale float32) Option {
	return func(p *Player) {
		p.timeScale = scale
	}
}

// New creates a paused Player at DefaultTimeScale.
func New(opts ...Option) *Player {
	p := &Player{timeScale: DefaultTimeScale}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsPlaying reports whether Advance moves the timeline.
func (p *Player) IsPlaying() bool { return p.playing }

// SetPlaying starts or pauses playback.
func (p *Player) SetPlaying(playing bool) *Player {
	p.playing = playing
	return p
}

// TimeScale returns the playback speed multiplier.
func (p *Player) TimeScale() float32 { return p.timeScale }

// SetTimeScale changes the playback speed multiplier.
func (p *Player) SetTimeScale(scale float32) *Player {
	p.timeScale = scale
	return p
}

// Advance adds scale * dt to tl's target time. It reports whether the
// target time changed, which is false while paused or once the target is
// pinned at either end of the track.
func (p *Player) Advance(tl *timeline.Timeline, dt time.Duration) bool {
	if !p.playing || dt == 0 || p.timeScale == 0 {
		return false
	}
	before := tl.TargetTime()
	tl.SetTargetTime(before + p.timeScale*float32(dt.Seconds()))
	return tl.TargetTime() != before
}
