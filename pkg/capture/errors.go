package capture

import "github.com/pkg/errors"

// The three error kinds Sharpen can return. Use errors.Cause(err) to
// recover one of these from a wrapped error.
var (
	ErrOutOfMemory   = errors.New("capture: out of memory")
	ErrDeviceFailure = errors.New("capture: device failure")
	ErrCancelled     = errors.New("capture: cancelled")
)
