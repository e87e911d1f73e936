package pippenger

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch is returned before any work when the point and
	// scalar slices differ in length.
	ErrLengthMismatch = errors.New("msm: points and scalars differ in length")
	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("msm: invalid configuration")
)

// DeviceError reports a nonzero status from a device launch. It is fatal for
// the call; the engine never retries it on the CPU.
type DeviceError struct {
	Device string
	Code   StatusCode
	Reason string
}

func (e *DeviceError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("msm: device %s failed: %s", e.Device, e.Code)
	}
	return fmt.Sprintf("msm: device %s failed: %s: %s", e.Device, e.Code, e.Reason)
}
