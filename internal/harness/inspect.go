package harness

import (
	"github.com/roach88/motion/internal/action"
)

// TrackInfo describes one compiled track.
type TrackInfo struct {
	Index     int            `json:"index"`
	Duration  float32        `json:"duration"`
	Sequences []SequenceInfo `json:"sequences"`
}

// SequenceInfo describes the clips of one (node, field) key.
type SequenceInfo struct {
	Node  string     `json:"node"`
	Field string     `json:"field"`
	Clips []ClipInfo `json:"clips"`
}

// ClipInfo is one scheduled action.
type ClipInfo struct {
	Action   uint64  `json:"action"`
	Start    float32 `json:"start"`
	Duration float32 `json:"duration"`
}

// Inspect builds a scenario's timeline without running it and describes
// its compiled layout. Sequences appear in compiled order: by field, then
// by node.
func Inspect(s *Scenario) ([]TrackInfo, error) {
	setup, err := Build(s, discardLogger())
	if err != nil {
		return nil, err
	}

	tl := setup.Timeline
	infos := make([]TrackInfo, 0, len(tl.Tracks()))
	for i, tr := range tl.Tracks() {
		info := TrackInfo{Index: i, Duration: tr.Duration(), Sequences: []SequenceInfo{}}
		for _, ss := range tr.SequenceSpans() {
			node, _ := action.SubjectOf[NodeID](tl.Actions(), ss.Key.Subject)
			seq := SequenceInfo{Node: string(node), Field: FieldName(ss.Key.Field)}
			for _, c := range tr.Clips(ss.Span) {
				seq.Clips = append(seq.Clips, ClipInfo{Action: uint64(c.ID), Start: c.Start, Duration: c.Duration})
			}
			info.Sequences = append(info.Sequences, seq)
		}
		infos = append(infos, info)
	}
	return infos, nil
}
