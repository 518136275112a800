package action

import "fmt"

// Func produces the next value of a field from its current value.
type Func[T any] func(T) T

// SampleKind selects which part of a baked segment is written back.
type SampleKind uint8

const (
	// SampleStart writes the segment's start value.
	SampleStart SampleKind = iota
	// SampleEnd writes the segment's end value.
	SampleEnd
	// SampleInterp writes the interpolated value at SampleMode.T.
	SampleInterp
)

// SampleMode is the mark placed on an action during the queue phase.
type SampleMode struct {
	Kind SampleKind
	T    float32
}

// Start returns a SampleStart mark.
func Start() SampleMode { return SampleMode{Kind: SampleStart} }

// End returns a SampleEnd mark.
func End() SampleMode { return SampleMode{Kind: SampleEnd} }

// Interp returns a SampleInterp mark at progress t.
func Interp(t float32) SampleMode { return SampleMode{Kind: SampleInterp, T: t} }

func (m SampleMode) String() string {
	switch m.Kind {
	case SampleStart:
		return "start"
	case SampleEnd:
		return "end"
	case SampleInterp:
		return fmt.Sprintf("interp(%g)", m.T)
	default:
		return fmt.Sprintf("SampleKind(%d)", m.Kind)
	}
}

// Segment is the baked start and end value of one action.
type Segment[T any] struct {
	Start T
	End   T
}
