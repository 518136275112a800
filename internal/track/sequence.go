package track

import "slices"

// Sequence is a non-empty, time-sorted list of non-overlapping clips for one
// action key.
type Sequence struct {
	clips []Clip
}

// NewSequence creates a sequence holding one clip.
func NewSequence(clip Clip) *Sequence {
	return &Sequence{clips: []Clip{clip}}
}

// Len returns the number of clips.
func (s *Sequence) Len() int {
	return len(s.clips)
}

// Clips returns the clips in time order. The slice must not be modified.
func (s *Sequence) Clips() []Clip {
	return s.clips
}

// Start returns the start time of the first clip.
func (s *Sequence) Start() float32 {
	return s.clips[0].Start
}

// End returns the end time of the last clip.
func (s *Sequence) End() float32 {
	return s.clips[len(s.clips)-1].End()
}

// Duration returns End - Start.
func (s *Sequence) Duration() float32 {
	return s.End() - s.Start()
}

// Range returns the time range covered by the sequence.
func (s *Sequence) Range() Range {
	return Range{Start: s.Start(), End: s.End()}
}

// Push appends a clip. It panics with an *OverlapError when the clip starts
// before the sequence ends.
func (s *Sequence) Push(clip Clip) {
	if end := s.End(); clip.Start < end {
		panic(&OverlapError{Start: clip.Start, End: end})
	}
	s.clips = append(s.clips, clip)
}

// Extend merges the clips of other into s, keeping time order. It panics
// with an *OverlapError if any two clips of the result overlap.
func (s *Sequence) Extend(other *Sequence) {
	if other == nil {
		return
	}
	if other.Start() >= s.End() {
		for _, c := range other.clips {
			s.Push(c)
		}
		return
	}

	merged := make([]Clip, 0, len(s.clips)+len(other.clips))
	merged = append(merged, s.clips...)
	merged = append(merged, other.clips...)
	slices.SortStableFunc(merged, compareClips)
	for i := 1; i < len(merged); i++ {
		if prev := merged[i-1].End(); merged[i].Start < prev {
			panic(&OverlapError{Start: merged[i].Start, End: prev})
		}
	}
	s.clips = merged
}

// Delay shifts every clip later by d.
func (s *Sequence) Delay(d float32) {
	for i := range s.clips {
		s.clips[i].Start += d
	}
}
