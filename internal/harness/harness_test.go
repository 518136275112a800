package harness

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/motion/internal/store"
	"github.com/roach88/motion/internal/track"
	"github.com/roach88/motion/internal/world"
)

func mustParse(t *testing.T, content string) *Scenario {
	t.Helper()
	s, err := ParseScenario("test.yaml", []byte(content))
	require.NoError(t, err)
	return s
}

func TestRun_Fade(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/fade.yaml")
	require.NoError(t, err)

	result, err := Run(context.Background(), s)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, world.TimelineID("fade"), result.Timeline)
	require.Len(t, result.Trace, 4)

	assert.Equal(t, []store.Sample{{Subject: "box", Field: "opacity", Value: "0.5"}}, result.Trace[1].Samples)
	assert.Equal(t, float32(1.5), result.Trace[2].Time)
	assert.False(t, result.Trace[2].Complete)
	assert.True(t, result.Trace[3].Complete)
}

func TestRun_FailedExpectation(t *testing.T) {
	s := mustParse(t, `
name: wrong
description: Expects the wrong value
nodes: [{ id: box }]
tracks:
  - act: { node: box, field: scale, to: 3, duration: 1 }
frames:
  - time: 0.5
expect:
  - { frame: 1, node: box, field: scale, value: 9 }
`)

	result, err := Run(context.Background(), s)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "frame 1: box.scale = 2, want 9", result.Errors[0])
}

func TestRun_AdvanceWithScale(t *testing.T) {
	s := mustParse(t, `
name: scaled
description: Plays at double speed
nodes: [{ id: box, opacity: 0 }]
tracks:
  - act: { node: box, field: opacity, to: 1, duration: 2 }
frames:
  - advance: 0
  - advance: 0.5
    scale: 2
expect:
  - { frame: 2, node: box, field: opacity, value: 0.5 }
`)

	result, err := Run(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, float32(1), result.Trace[1].Time)
}

func TestRun_Overlap(t *testing.T) {
	s := mustParse(t, `
name: overlap
description: Two actions on one field at once
nodes: [{ id: box }]
tracks:
  - all:
      - act: { node: box, field: opacity, to: 0, duration: 1 }
      - act: { node: box, field: opacity, to: 1, duration: 1 }
frames:
  - time: 0
`)

	_, err := Run(context.Background(), s)
	require.Error(t, err)
	assert.True(t, track.IsOverlap(err))
	assert.Contains(t, err.Error(), "compose tracks")
}

func TestRun_RecordsFrames(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(filepath.Join(t.TempDir(), "motion.db"))
	require.NoError(t, err)
	defer st.Close()

	s, err := LoadScenario("testdata/scenarios/slide_and_hide.yaml")
	require.NoError(t, err)

	rec, err := st.NewRecorder(ctx, s.Name)
	require.NoError(t, err)

	result, err := Run(ctx, s, WithRecorder(rec))
	require.NoError(t, err)
	require.True(t, result.Pass, "errors: %v", result.Errors)

	stored, err := st.ReadFrames(ctx, rec.Recording().ID)
	require.NoError(t, err)
	require.Len(t, stored, len(s.Frames))
	assert.Empty(t, store.DiffFrames(result.Frames(), stored))
}

func TestRun_ReplayDetectsChange(t *testing.T) {
	ctx := context.Background()
	s, err := LoadScenario("testdata/scenarios/fade.yaml")
	require.NoError(t, err)

	before, err := Run(ctx, s)
	require.NoError(t, err)

	s.Tracks[0].Chain[1].Act.To = 0.75
	s.Expect = nil
	after, err := Run(ctx, s)
	require.NoError(t, err)

	mismatches := store.DiffFrames(before.Frames(), after.Frames())
	require.Len(t, mismatches, 2)
	assert.Equal(t, "frame 3 box.opacity: want 0.5, got 0.375", mismatches[0].String())
	assert.Equal(t, "frame 4 box.opacity: want 1, got 0.75", mismatches[1].String())
}

func TestResult_AddError(t *testing.T) {
	r := NewResult()
	assert.True(t, r.Pass)

	r.AddError("boom")
	assert.False(t, r.Pass)
	assert.Equal(t, []string{"boom"}, r.Errors)
}
