package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect_Fade(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/fade.yaml")
	require.NoError(t, err)

	tracks, err := Inspect(s)
	require.NoError(t, err)
	require.Len(t, tracks, 1)

	tr := tracks[0]
	assert.Equal(t, 0, tr.Index)
	assert.Equal(t, float32(2), tr.Duration)
	require.Len(t, tr.Sequences, 1)

	seq := tr.Sequences[0]
	assert.Equal(t, "box", seq.Node)
	assert.Equal(t, "opacity", seq.Field)
	require.Len(t, seq.Clips, 2)
	assert.Equal(t, float32(0), seq.Clips[0].Start)
	assert.Equal(t, float32(1), seq.Clips[1].Start)
	assert.Equal(t, float32(1), seq.Clips[1].Duration)
	assert.NotEqual(t, seq.Clips[0].Action, seq.Clips[1].Action)
}

func TestInspect_DelayedTrack(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/slide_and_hide.yaml")
	require.NoError(t, err)

	tracks, err := Inspect(s)
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	assert.Equal(t, float32(2), tracks[0].Duration)
	assert.Len(t, tracks[0].Sequences, 2)

	var badge SequenceInfo
	for _, seq := range tracks[0].Sequences {
		if seq.Node == "badge" {
			badge = seq
		}
	}
	require.Len(t, badge.Clips, 1)
	assert.Equal(t, "scale", badge.Field)
	assert.Equal(t, float32(1), badge.Clips[0].Start)

	assert.Equal(t, float32(1), tracks[1].Duration)
	require.Len(t, tracks[1].Sequences, 1)
	assert.Equal(t, "visible", tracks[1].Sequences[0].Field)
}
