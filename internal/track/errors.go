package track

import (
	"errors"
	"fmt"
)

// ErrCodeInvalidOverlap is the code carried by every OverlapError.
const ErrCodeInvalidOverlap = "INVALID_OVERLAP"

// OverlapError reports a clip that starts before the previous clip of the
// same sequence has ended.
//
// Overlaps are caller bugs. Sequence and Fragment methods panic with an
// *OverlapError instead of returning it.
type OverlapError struct {
	// Start is the start time of the offending clip.
	Start float32

	// End is the end time of the clip it overlaps.
	End float32
}

// Error implements the error interface.
func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s: clip starts at %g before previous clip ends at %g",
		ErrCodeInvalidOverlap, e.Start, e.End)
}

// IsOverlap returns true if err is an *OverlapError.
func IsOverlap(err error) bool {
	var oe *OverlapError
	return errors.As(err, &oe)
}
