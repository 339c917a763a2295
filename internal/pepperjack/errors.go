package pepperjack

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks malformed geometry or render parameters.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrFrameResolution marks a time index the frame cache could not produce.
	ErrFrameResolution = errors.New("frame resolution failed")
	// ErrExecutionEnvironment marks an unavailable parallel environment.
	ErrExecutionEnvironment = errors.New("parallel execution environment unavailable")
	// ErrInvalidCache marks a frame cache directory with an unreadable checksum.
	ErrInvalidCache = errors.New("invalid frame cache")
	// ErrOutputNotEmpty is returned when the output cache directory has leftovers.
	ErrOutputNotEmpty = errors.New("output cache must be empty")
)

// FrameError reports the time index (and cache file, if any) that failed to resolve.
type FrameError struct {
	TimeIndex int
	Path      string
	Err       error
}

func (e *FrameError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%v: time index %d (%s): %v", ErrFrameResolution, e.TimeIndex, e.Path, e.Err)
	}
	return fmt.Sprintf("%v: time index %d: %v", ErrFrameResolution, e.TimeIndex, e.Err)
}

func (e *FrameError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrFrameResolution) match any FrameError.
func (e *FrameError) Is(target error) bool { return target == ErrFrameResolution }
