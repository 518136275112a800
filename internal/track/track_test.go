package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/motion/internal/action"
)

func TestFragment_KeyUniqueness(t *testing.T) {
	k1 := action.PlaceholderKey(1, "a")
	k2 := action.PlaceholderKey(2, "a")
	k3 := action.PlaceholderKey(1, "b")

	f := NewFragment().
		Upsert(k1, NewSequence(at(1, 0, 0))).
		Upsert(k2, NewSequence(at(2, 0, 0))).
		Upsert(k3, NewSequence(at(3, 0, 0))).
		Upsert(k1, NewSequence(at(4, 0, 0)))

	assert.Equal(t, 3, f.Len())
	seq, ok := f.Sequence(k1)
	require.True(t, ok)
	assert.Equal(t, 2, seq.Len())
}

func TestCompile_Layout(t *testing.T) {
	ka1 := action.PlaceholderKey(1, "a")
	ka2 := action.PlaceholderKey(2, "a")
	kb1 := action.PlaceholderKey(1, "b")

	f := All(
		Chain(Single(kb1, at(5, 0, 1)), Single(kb1, at(6, 0, 1))),
		Single(ka2, at(3, 0, 1)),
		Single(ka1, at(1, 0, 2)),
	)
	tr := f.Compile()

	assert.Equal(t, float32(2), tr.Duration())
	assert.Equal(t, 3, tr.Len())
	assert.Equal(t, 4, tr.ClipCount())

	spans := tr.SequenceSpans()
	require.Len(t, spans, 3)
	assert.Equal(t, ka1, spans[0].Key)
	assert.Equal(t, ka2, spans[1].Key)
	assert.Equal(t, kb1, spans[2].Key)
	assert.Equal(t, Span{Offset: 0, Len: 1}, spans[0].Span)
	assert.Equal(t, Span{Offset: 1, Len: 1}, spans[1].Span)
	assert.Equal(t, Span{Offset: 2, Len: 2}, spans[2].Span)

	clips := tr.Clips(spans[2].Span)
	require.Len(t, clips, 2)
	assert.Equal(t, action.ID(5), clips[0].ID)
	assert.Equal(t, float32(1), clips[1].Start)
	assert.Equal(t, Range{Start: 0, End: 2}, tr.Range(spans[2].Span))
}

func TestTrack_ClipsAppendDoesNotClobber(t *testing.T) {
	ka := action.PlaceholderKey(1, "a")
	kb := action.PlaceholderKey(1, "b")
	tr := All(Single(ka, at(1, 0, 1)), Single(kb, at(2, 0, 1))).Compile()

	spans := tr.SequenceSpans()
	require.Len(t, spans, 2)
	first := tr.Clips(spans[0].Span)
	assert.Equal(t, len(first), cap(first))

	_ = append(first, at(9, 5, 1))
	second := tr.Clips(spans[1].Span)
	require.Len(t, second, 1)
	assert.Equal(t, action.ID(2), second[0].ID)
}

func TestCompile_FieldLookups(t *testing.T) {
	ka1 := action.PlaceholderKey(1, "a")
	ka2 := action.PlaceholderKey(2, "a")
	kb1 := action.PlaceholderKey(1, "b")
	kc1 := action.PlaceholderKey(1, "c")

	tr := All(
		Single(kc1, clip(1)),
		Single(ka1, clip(1)),
		Single(kb1, clip(1)),
		Single(ka2, clip(1)),
	).Compile()

	require.Len(t, tr.FieldSpans(), 3)

	a := tr.LookupField(ka1.Field)
	require.Len(t, a, 2)
	assert.Equal(t, ka1, a[0].Key)
	assert.Equal(t, ka2, a[1].Key)

	b := tr.LookupField(kb1.Field)
	require.Len(t, b, 1)
	assert.Equal(t, kb1, b[0].Key)

	c := tr.LookupField(kc1.Field)
	require.Len(t, c, 1)
	assert.Equal(t, kc1, c[0].Key)

	assert.Nil(t, tr.LookupField(action.PlaceholderKey(0, "z").Field))
}

func TestCompile_LookupKey(t *testing.T) {
	k := action.PlaceholderKey(1, "a")
	tr := Single(k, at(9, 0, 1)).Compile()

	clips, ok := tr.LookupKey(k)
	require.True(t, ok)
	require.Len(t, clips, 1)
	assert.Equal(t, action.ID(9), clips[0].ID)

	_, ok = tr.LookupKey(action.PlaceholderKey(2, "a"))
	assert.False(t, ok)
}

func TestCompile_Empty(t *testing.T) {
	tr := NewFragment().Compile()

	assert.Equal(t, 0, tr.Len())
	assert.Empty(t, tr.FieldSpans())
	assert.Nil(t, tr.LookupField(action.PlaceholderKey(0, "a").Field))
	assert.Equal(t, float32(0), tr.Duration())
}
