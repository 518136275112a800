package store

import (
	"context"
	"fmt"
)

// ReadRecording returns the recording with the given id.
// Returns an error wrapping sql.ErrNoRows if not found.
func (s *Store) ReadRecording(ctx context.Context, id string) (Recording, error) {
	var rec Recording
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, seq FROM recordings WHERE id = ?
	`, id).Scan(&rec.ID, &rec.Name, &rec.Seq)
	if err != nil {
		return Recording{}, fmt.Errorf("read recording %s: %w", id, err)
	}
	return rec, nil
}

// FindRecording returns the most recent recording with the given name.
// Returns an error wrapping sql.ErrNoRows if none exists.
func (s *Store) FindRecording(ctx context.Context, name string) (Recording, error) {
	var rec Recording
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, seq FROM recordings
		WHERE name = ?
		ORDER BY seq DESC
		LIMIT 1
	`, name).Scan(&rec.ID, &rec.Name, &rec.Seq)
	if err != nil {
		return Recording{}, fmt.Errorf("find recording %q: %w", name, err)
	}
	return rec, nil
}

// ListRecordings returns every recording ordered by seq.
// Returns an empty slice (not nil) when there are none.
func (s *Store) ListRecordings(ctx context.Context) ([]Recording, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, seq FROM recordings
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query recordings: %w", err)
	}
	defer rows.Close()

	recs := []Recording{}
	for rows.Next() {
		var rec Recording
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Seq); err != nil {
			return nil, fmt.Errorf("scan recording: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recordings: %w", err)
	}
	return recs, nil
}

// ReadFrames returns every frame of a recording with its samples attached.
// Frames are ordered by seq; samples within a frame by subject then field.
//
// Returns an empty slice (not nil) if the recording has no frames.
func (s *Store) ReadFrames(ctx context.Context, recordingID string) ([]Frame, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, track_index, time
		FROM frames
		WHERE recording_id = ?
		ORDER BY seq ASC
	`, recordingID)
	if err != nil {
		return nil, fmt.Errorf("query frames: %w", err)
	}
	defer rows.Close()

	frames := []Frame{}
	index := make(map[int64]int)
	for rows.Next() {
		var (
			f Frame
			t float64
		)
		if err := rows.Scan(&f.Seq, &f.TrackIndex, &t); err != nil {
			return nil, fmt.Errorf("scan frame: %w", err)
		}
		f.Time = float32(t)
		index[f.Seq] = len(frames)
		frames = append(frames, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate frames: %w", err)
	}

	samples, err := s.readSamples(ctx, recordingID)
	if err != nil {
		return nil, err
	}
	for _, rs := range samples {
		if i, ok := index[rs.seq]; ok {
			frames[i].Samples = append(frames[i].Samples, rs.Sample)
		}
	}
	return frames, nil
}

type seqSample struct {
	seq int64
	Sample
}

func (s *Store) readSamples(ctx context.Context, recordingID string) ([]seqSample, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, subject, field, value
		FROM samples
		WHERE recording_id = ?
		ORDER BY seq ASC, subject COLLATE BINARY ASC, field COLLATE BINARY ASC
	`, recordingID)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	var out []seqSample
	for rows.Next() {
		var rs seqSample
		if err := rows.Scan(&rs.seq, &rs.Subject, &rs.Field, &rs.Value); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		out = append(out, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate samples: %w", err)
	}
	return out, nil
}

// ReadFieldHistory returns the values recorded for one (subject, field)
// key in seq order.
func (s *Store) ReadFieldHistory(ctx context.Context, recordingID, subject, field string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT value FROM samples
		WHERE recording_id = ? AND subject = ? AND field = ?
		ORDER BY seq ASC
	`, recordingID, subject, field)
	if err != nil {
		return nil, fmt.Errorf("query field history: %w", err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan field history: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate field history: %w", err)
	}
	return values, nil
}
