package store

import (
	"context"
	"fmt"
)

// Mismatch describes one difference between two frame logs.
type Mismatch struct {
	Seq     int64  `json:"seq"`
	Subject string `json:"subject,omitempty"`
	Field   string `json:"field,omitempty"`
	Want    string `json:"want"`
	Got     string `json:"got"`
}

func (m Mismatch) String() string {
	if m.Subject == "" {
		return fmt.Sprintf("frame %d: want %s, got %s", m.Seq, m.Want, m.Got)
	}
	return fmt.Sprintf("frame %d %s.%s: want %s, got %s", m.Seq, m.Subject, m.Field, m.Want, m.Got)
}

const missing = "<missing>"

// DiffFrames compares two frame logs frame by frame. Frames are matched by
// position; a frame present in only one log, a cursor difference, and each
// differing or absent sample produce a Mismatch.
func DiffFrames(want, got []Frame) []Mismatch {
	var out []Mismatch
	n := max(len(want), len(got))
	for i := 0; i < n; i++ {
		switch {
		case i >= len(got):
			out = append(out, Mismatch{Seq: want[i].Seq, Want: cursor(want[i]), Got: missing})
			continue
		case i >= len(want):
			out = append(out, Mismatch{Seq: got[i].Seq, Want: missing, Got: cursor(got[i])})
			continue
		}

		w, g := want[i], got[i]
		if cursor(w) != cursor(g) {
			out = append(out, Mismatch{Seq: w.Seq, Want: cursor(w), Got: cursor(g)})
		}
		out = append(out, diffSamples(w.Seq, w.Samples, g.Samples)...)
	}
	return out
}

func cursor(f Frame) string {
	return fmt.Sprintf("track %d @ %g", f.TrackIndex, f.Time)
}

func diffSamples(seq int64, want, got []Sample) []Mismatch {
	type key struct{ subject, field string }

	gotByKey := make(map[key]string, len(got))
	for _, s := range got {
		gotByKey[key{s.Subject, s.Field}] = s.Value
	}

	var out []Mismatch
	seen := make(map[key]bool, len(want))
	for _, s := range want {
		k := key{s.Subject, s.Field}
		seen[k] = true
		v, ok := gotByKey[k]
		if !ok {
			v = missing
		}
		if v != s.Value {
			out = append(out, Mismatch{Seq: seq, Subject: s.Subject, Field: s.Field, Want: s.Value, Got: v})
		}
	}
	for _, s := range got {
		if !seen[key{s.Subject, s.Field}] {
			out = append(out, Mismatch{Seq: seq, Subject: s.Subject, Field: s.Field, Want: missing, Got: s.Value})
		}
	}
	return out
}

// CompareRecordings diffs the frames of two stored recordings.
func (s *Store) CompareRecordings(ctx context.Context, wantID, gotID string) ([]Mismatch, error) {
	want, err := s.ReadFrames(ctx, wantID)
	if err != nil {
		return nil, fmt.Errorf("compare recordings: %w", err)
	}
	got, err := s.ReadFrames(ctx, gotID)
	if err != nil {
		return nil, fmt.Errorf("compare recordings: %w", err)
	}
	return DiffFrames(want, got), nil
}
