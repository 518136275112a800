package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFrames_DeterministicSampleOrder(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	_, err := s.CreateRecording(ctx, "intro", "rec")
	require.NoError(t, err)

	require.NoError(t, s.WriteFrame(ctx, "rec", Frame{
		Seq: 1,
		Samples: []Sample{
			sample("b", "x", "1"),
			sample("a", "y", "2"),
			sample("a", "x", "3"),
		},
	}))

	frames, err := s.ReadFrames(ctx, "rec")
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, []Sample{
		sample("a", "x", "3"),
		sample("a", "y", "2"),
		sample("b", "x", "1"),
	}, frames[0].Samples)
}

func TestReadFrames_Empty(t *testing.T) {
	s := createTestStore(t)

	frames, err := s.ReadFrames(context.Background(), "none")
	require.NoError(t, err)
	assert.NotNil(t, frames)
	assert.Empty(t, frames)
}

func TestListRecordings(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	recs, err := s.ListRecordings(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)

	_, err = s.CreateRecording(ctx, "b", "2")
	require.NoError(t, err)
	_, err = s.CreateRecording(ctx, "a", "1")
	require.NoError(t, err)

	recs, err = s.ListRecordings(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "2", recs[0].ID)
	assert.Equal(t, "1", recs[1].ID)
}

func TestFindRecording_Latest(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.CreateRecording(ctx, "intro", "old")
	require.NoError(t, err)
	_, err = s.CreateRecording(ctx, "intro", "new")
	require.NoError(t, err)

	rec, err := s.FindRecording(ctx, "intro")
	require.NoError(t, err)
	assert.Equal(t, "new", rec.ID)

	_, err = s.FindRecording(ctx, "outro")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestReadFieldHistory(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	r, err := s.NewRecorder(ctx, "intro")
	require.NoError(t, err)

	require.NoError(t, r.Record(ctx, 0, 0, []Sample{sample("a", "x", "0"), sample("b", "x", "9")}))
	require.NoError(t, r.Record(ctx, 0, 1, []Sample{sample("a", "x", "1")}))

	values, err := s.ReadFieldHistory(ctx, r.Recording().ID, "a", "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1"}, values)
}
