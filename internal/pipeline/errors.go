package pipeline

import (
	"errors"
	"fmt"

	"github.com/roach88/motion/internal/action"
)

// ErrorCode categorizes pipeline skips.
type ErrorCode string

const (
	// ErrCodeHostLookupFailed indicates the host could not resolve a subject.
	ErrCodeHostLookupFailed ErrorCode = "HOST_LOOKUP_FAILED"

	// ErrCodePipelineNotFound indicates no pipeline is registered for a key
	// referenced by the timeline.
	ErrCodePipelineNotFound ErrorCode = "PIPELINE_NOT_FOUND"

	// ErrCodeNoInterpolation indicates an interpolated sample was requested
	// for a value type with neither a custom nor a default interpolation.
	ErrCodeNoInterpolation ErrorCode = "NO_INTERPOLATION"
)

// LookupError describes why a (subject, field) contribution was skipped.
//
// Skips are never fatal. They are logged at DEBUG and the pass carries on.
type LookupError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Key is the action key being processed, if any.
	Key action.Key

	// Pipeline is the pipeline key involved.
	Pipeline Key
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	switch e.Code {
	case ErrCodePipelineNotFound:
		return fmt.Sprintf("%s: pipeline=%s", e.Code, e.Pipeline)
	default:
		return fmt.Sprintf("%s: key=%s", e.Code, e.Key)
	}
}

// IsHostLookupFailed returns true if err is a HOST_LOOKUP_FAILED LookupError.
func IsHostLookupFailed(err error) bool {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Code == ErrCodeHostLookupFailed
	}
	return false
}

// IsPipelineNotFound returns true if err is a PIPELINE_NOT_FOUND LookupError.
func IsPipelineNotFound(err error) bool {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Code == ErrCodePipelineNotFound
	}
	return false
}
