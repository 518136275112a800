package track

import (
	"slices"

	"github.com/roach88/motion/internal/action"
	"github.com/roach88/motion/internal/field"
)

// SequenceSpan locates one key's clips in the arena.
type SequenceSpan struct {
	Key  action.Key
	Span Span
}

// FieldSpan locates every sequence span of one field.
type FieldSpan struct {
	Field field.UntypedField
	Span  Span
}

// Track is the compiled, immutable form of a Fragment.
//
// Clips of every key live contiguously in one arena, sorted by start time.
// Sequence spans are sorted by key (field, then subject) and field spans
// group consecutive sequence spans sharing a field.
type Track struct {
	fields    []FieldSpan
	sequences []SequenceSpan
	arena     []Clip
	duration  float32
}

// Compile is shorthand for f.Compile().
func Compile(f *Fragment) *Track {
	return f.Compile()
}

// Duration returns the track's duration.
func (t *Track) Duration() float32 {
	return t.duration
}

// Len returns the number of sequences.
func (t *Track) Len() int {
	return len(t.sequences)
}

// ClipCount returns the number of clips across all sequences.
func (t *Track) ClipCount() int {
	return len(t.arena)
}

// SequenceSpans returns every sequence span in key order. The slice must
// not be modified.
func (t *Track) SequenceSpans() []SequenceSpan {
	return t.sequences
}

// FieldSpans returns every field span in field order. The slice must not be
// modified.
func (t *Track) FieldSpans() []FieldSpan {
	return t.fields
}

// Clips returns the clips addressed by span. The slice is capped at the
// span, so appending to it never writes into the next key's clips.
func (t *Track) Clips(span Span) []Clip {
	return t.arena[span.Offset:span.End():span.End()]
}

// LookupField returns the sequence spans of every key on field f.
func (t *Track) LookupField(f field.UntypedField) []SequenceSpan {
	i, ok := slices.BinarySearchFunc(t.fields, f, func(fs FieldSpan, f field.UntypedField) int {
		return fs.Field.Compare(f)
	})
	if !ok {
		return nil
	}
	span := t.fields[i].Span
	return t.sequences[span.Offset:span.End()]
}

// LookupKey returns the clips of one key.
func (t *Track) LookupKey(k action.Key) ([]Clip, bool) {
	i, ok := slices.BinarySearchFunc(t.sequences, k, func(ss SequenceSpan, k action.Key) int {
		return ss.Key.Compare(k)
	})
	if !ok {
		return nil, false
	}
	return t.Clips(t.sequences[i].Span), true
}

// Range returns the time range covered by the clips in span.
func (t *Track) Range(span Span) Range {
	clips := t.Clips(span)
	if len(clips) == 0 {
		return Range{}
	}
	return Range{Start: clips[0].Start, End: clips[len(clips)-1].End()}
}
