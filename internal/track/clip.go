package track

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/roach88/motion/internal/action"
)

// Clip is one scheduled occurrence of an action.
type Clip struct {
	ID       action.ID
	Start    float32
	Duration float32
}

// NewClip returns a clip starting at 0.
func NewClip(id action.ID, duration float32) Clip {
	return Clip{ID: id, Start: 0, Duration: duration}
}

// End returns Start + Duration.
func (c Clip) End() float32 {
	return c.Start + c.Duration
}

// Range returns the time range the clip covers.
func (c Clip) Range() Range {
	return Range{Start: c.Start, End: c.End()}
}

func (c Clip) String() string {
	return fmt.Sprintf("#%d[%g,%g]", c.ID, c.Start, c.End())
}

// SearchClips finds the clip that contains t in a time-sorted slice.
//
// A clip is "less" than t when t is past its end and "greater" when t is
// before its start. When found is false, idx is the insertion point for t.
func SearchClips(clips []Clip, t float32) (idx int, found bool) {
	return slices.BinarySearchFunc(clips, t, func(c Clip, t float32) int {
		switch {
		case t > c.End():
			return -1
		case t < c.Start:
			return 1
		default:
			return 0
		}
	})
}

// Range is a closed time interval.
type Range struct {
	Start float32
	End   float32
}

// NewRange orders a and b into a Range.
func NewRange(a, b float32) Range {
	return Range{Start: min(a, b), End: max(a, b)}
}

// Overlaps reports whether the closed ranges share at least one point.
func (r Range) Overlaps(o Range) bool {
	return r.Start <= o.End && o.Start <= r.End
}

// Contains reports whether t lies in the closed range.
func (r Range) Contains(t float32) bool {
	return r.Start <= t && t <= r.End
}

// Span addresses a contiguous run of a slice.
type Span struct {
	Offset int
	Len    int
}

// End returns Offset + Len.
func (s Span) End() int {
	return s.Offset + s.Len
}

func compareClips(a, b Clip) int {
	if c := cmp.Compare(a.Start, b.Start); c != 0 {
		return c
	}
	return cmp.Compare(a.End(), b.End())
}
