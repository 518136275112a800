package store

// Recording identifies one recorded playback.
type Recording struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Seq  int64  `json:"seq"`
}

// Frame is one sampled frame of a recording. Seq starts at 1 and increases
// by one per frame.
type Frame struct {
	Seq        int64    `json:"seq"`
	TrackIndex int      `json:"track_index"`
	Time       float32  `json:"time"`
	Samples    []Sample `json:"samples"`
}

// Sample is a value written to the host during a frame. Value holds
// canonical JSON text.
type Sample struct {
	Subject string `json:"subject"`
	Field   string `json:"field"`
	Value   string `json:"value"`
}
