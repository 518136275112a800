package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CreateRecording inserts a recording and assigns it the next seq. An empty
// ID is replaced with a UUIDv7.
func (s *Store) CreateRecording(ctx context.Context, name, id string) (Recording, error) {
	if id == "" {
		v7, err := uuid.NewV7()
		if err != nil {
			return Recording{}, fmt.Errorf("create recording: generate id: %w", err)
		}
		id = v7.String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Recording{}, fmt.Errorf("create recording: begin tx: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM recordings`).Scan(&seq); err != nil {
		return Recording{}, fmt.Errorf("create recording: next seq: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO recordings (id, name, seq)
		VALUES (?, ?, ?)
	`, id, name, seq); err != nil {
		return Recording{}, fmt.Errorf("create recording: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Recording{}, fmt.Errorf("create recording: commit: %w", err)
	}
	return Recording{ID: id, Name: name, Seq: seq}, nil
}

// WriteFrame inserts a frame and its samples in one transaction.
// A frame whose seq is already recorded is left untouched, samples
// included.
//
// Note: The recording must exist (foreign key constraint).
func (s *Store) WriteFrame(ctx context.Context, recordingID string, f Frame) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write frame: begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO frames (recording_id, seq, track_index, time)
		VALUES (?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`, recordingID, f.Seq, f.TrackIndex, float64(f.Time))
	if err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("write frame: rows affected: %w", err)
	}
	if n == 0 {
		// Frame already recorded; its samples stay as first written.
		return nil
	}

	for _, sm := range f.Samples {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO samples (recording_id, seq, subject, field, value)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT DO NOTHING
		`, recordingID, f.Seq, sm.Subject, sm.Field, sm.Value); err != nil {
			return fmt.Errorf("write frame: sample %s.%s: %w", sm.Subject, sm.Field, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write frame: commit: %w", err)
	}
	return nil
}

// DeleteRecording removes a recording with its frames and samples. It
// reports whether a recording was removed.
func (s *Store) DeleteRecording(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recordings WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete recording: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete recording: rows affected: %w", err)
	}
	return n > 0, nil
}

// Recorder appends frames to one recording, numbering them from 1.
type Recorder struct {
	store     *Store
	recording Recording
	seq       int64
}

// NewRecorder creates a recording named name and returns a Recorder for it.
func (s *Store) NewRecorder(ctx context.Context, name string) (*Recorder, error) {
	rec, err := s.CreateRecording(ctx, name, "")
	if err != nil {
		return nil, err
	}
	return &Recorder{store: s, recording: rec}, nil
}

// Recording returns the recording being written.
func (r *Recorder) Recording() Recording {
	return r.recording
}

// Record writes the next frame.
func (r *Recorder) Record(ctx context.Context, trackIndex int, t float32, samples []Sample) error {
	r.seq++
	return r.store.WriteFrame(ctx, r.recording.ID, Frame{
		Seq:        r.seq,
		TrackIndex: trackIndex,
		Time:       t,
		Samples:    samples,
	})
}
