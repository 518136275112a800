package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRecording_AssignsSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	a, err := s.CreateRecording(ctx, "intro", "rec-a")
	require.NoError(t, err)
	b, err := s.CreateRecording(ctx, "intro", "rec-b")
	require.NoError(t, err)

	assert.Equal(t, Recording{ID: "rec-a", Name: "intro", Seq: 1}, a)
	assert.Equal(t, Recording{ID: "rec-b", Name: "intro", Seq: 2}, b)
}

func TestCreateRecording_GeneratesUUIDv7(t *testing.T) {
	s := createTestStore(t)

	rec, err := s.CreateRecording(context.Background(), "intro", "")
	require.NoError(t, err)

	id, err := uuid.Parse(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestCreateRecording_DuplicateID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.CreateRecording(ctx, "intro", "rec")
	require.NoError(t, err)
	_, err = s.CreateRecording(ctx, "outro", "rec")
	assert.Error(t, err)
}

func TestWriteFrame_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	_, err := s.CreateRecording(ctx, "intro", "rec")
	require.NoError(t, err)

	f := Frame{Seq: 1, TrackIndex: 0, Time: 0.5, Samples: []Sample{sample("a", "x", "1")}}
	require.NoError(t, s.WriteFrame(ctx, "rec", f))
	require.NoError(t, s.WriteFrame(ctx, "rec", f))

	frames, err := s.ReadFrames(ctx, "rec")
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Len(t, frames[0].Samples, 1)
}

func TestWriteFrame_RewriteKeepsFirstSamples(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	_, err := s.CreateRecording(ctx, "intro", "rec")
	require.NoError(t, err)

	first := Frame{Seq: 1, Time: 0.5, Samples: []Sample{sample("a", "f", "1")}}
	second := Frame{Seq: 1, TrackIndex: 1, Time: 0.75, Samples: []Sample{sample("b", "f", "2")}}
	require.NoError(t, s.WriteFrame(ctx, "rec", first))
	require.NoError(t, s.WriteFrame(ctx, "rec", second))

	frames, err := s.ReadFrames(ctx, "rec")
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, 0, frames[0].TrackIndex)
	assert.Equal(t, float32(0.5), frames[0].Time)
	assert.Equal(t, []Sample{sample("a", "f", "1")}, frames[0].Samples)
}

func TestWriteFrame_UnknownRecording(t *testing.T) {
	s := createTestStore(t)

	err := s.WriteFrame(context.Background(), "missing", Frame{Seq: 1})
	assert.Error(t, err, "foreign key should reject unknown recording")
}

func TestDeleteRecording_Cascades(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	_, err := s.CreateRecording(ctx, "intro", "rec")
	require.NoError(t, err)
	require.NoError(t, s.WriteFrame(ctx, "rec", Frame{Seq: 1, Samples: []Sample{sample("a", "x", "1")}}))

	removed, err := s.DeleteRecording(ctx, "rec")
	require.NoError(t, err)
	assert.True(t, removed)

	var count int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM samples").Scan(&count))
	assert.Zero(t, count)

	removed, err = s.DeleteRecording(ctx, "rec")
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = s.ReadRecording(ctx, "rec")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRecorder_NumbersFrames(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	r, err := s.NewRecorder(ctx, "intro")
	require.NoError(t, err)
	require.NoError(t, r.Record(ctx, 0, 0, []Sample{sample("a", "x", "0")}))
	require.NoError(t, r.Record(ctx, 0, 0.5, nil))
	require.NoError(t, r.Record(ctx, 1, 0.25, []Sample{sample("a", "x", "2")}))

	frames, err := s.ReadFrames(ctx, r.Recording().ID)
	require.NoError(t, err)
	require.Len(t, frames, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{frames[0].Seq, frames[1].Seq, frames[2].Seq})
	assert.Equal(t, 1, frames[2].TrackIndex)
	assert.Equal(t, float32(0.25), frames[2].Time)
	assert.Empty(t, frames[1].Samples)
}
