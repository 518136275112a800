package track

import (
	"slices"

	"github.com/roach88/motion/internal/action"
)

// Fragment is an uncompiled, mutable collection of sequences plus the
// duration the fragment occupies when combined with others.
//
// Combinators consume their input fragments; do not reuse a fragment after
// passing it to one.
type Fragment struct {
	sequences map[action.Key]*Sequence
	duration  float32
}

// NewFragment creates an empty fragment with zero duration.
func NewFragment() *Fragment {
	return &Fragment{sequences: make(map[action.Key]*Sequence)}
}

// Single creates a fragment holding one clip. Its duration is the clip's
// duration.
func Single(key action.Key, clip Clip) *Fragment {
	return &Fragment{
		sequences: map[action.Key]*Sequence{key: NewSequence(clip)},
		duration:  clip.Duration,
	}
}

// Upsert merges seq into the sequence stored under key, or stores it if the
// key is new. It returns f for chaining.
func (f *Fragment) Upsert(key action.Key, seq *Sequence) *Fragment {
	if existing, ok := f.sequences[key]; ok {
		existing.Extend(seq)
		return f
	}
	f.sequences[key] = seq
	return f
}

// Duration returns the fragment's duration.
func (f *Fragment) Duration() float32 {
	return f.duration
}

// SetDuration overrides the fragment's duration.
func (f *Fragment) SetDuration(d float32) *Fragment {
	f.duration = d
	return f
}

// Sequence returns the sequence stored under key.
func (f *Fragment) Sequence(key action.Key) (*Sequence, bool) {
	s, ok := f.sequences[key]
	return s, ok
}

// Len returns the number of sequences.
func (f *Fragment) Len() int {
	return len(f.sequences)
}

// Keys returns the fragment's keys in compile order.
func (f *Fragment) Keys() []action.Key {
	keys := make([]action.Key, 0, len(f.sequences))
	for k := range f.sequences {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, action.Key.Compare)
	return keys
}

func (f *Fragment) delay(d float32) {
	for _, s := range f.sequences {
		s.Delay(d)
	}
}

// absorb moves every sequence of other into f, leaving other consumed.
func (f *Fragment) absorb(other *Fragment) {
	if other == f {
		panic("track: fragment cannot absorb itself")
	}
	for _, k := range other.Keys() {
		f.Upsert(k, other.sequences[k])
	}
	other.sequences = nil
}

// Compile lays the fragment out as an immutable Track. Keys are sorted by
// field, then subject; clips of each key stay in time order.
func (f *Fragment) Compile() *Track {
	keys := f.Keys()

	t := &Track{
		sequences: make([]SequenceSpan, 0, len(keys)),
		duration:  f.duration,
	}

	clipCount := 0
	for _, k := range keys {
		clipCount += f.sequences[k].Len()
	}
	t.arena = make([]Clip, 0, clipCount)

	for i, k := range keys {
		clips := f.sequences[k].clips
		t.sequences = append(t.sequences, SequenceSpan{
			Key:  k,
			Span: Span{Offset: len(t.arena), Len: len(clips)},
		})
		t.arena = append(t.arena, clips...)

		if i == 0 || keys[i-1].Field != k.Field {
			t.fields = append(t.fields, FieldSpan{
				Field: k.Field,
				Span:  Span{Offset: i},
			})
		}
		t.fields[len(t.fields)-1].Span.Len++
	}
	return t
}
