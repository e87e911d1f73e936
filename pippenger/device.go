package pippenger

import "strconv"

// StatusCode is the integer a device kernel returns; zero is success.
type StatusCode int

const (
	StatusSuccess          StatusCode = 0
	StatusInvalidArgument  StatusCode = 1
	StatusMemoryAllocation StatusCode = 2
	StatusInternalDevice   StatusCode = 199999999
	StatusUndefined        StatusCode = 999999999
)

func (c StatusCode) String() string {
	switch c {
	case StatusSuccess:
		return "success"
	case StatusInvalidArgument:
		return "invalid argument"
	case StatusMemoryAllocation:
		return "memory allocation"
	case StatusInternalDevice:
		return "internal device error"
	case StatusUndefined:
		return "undefined error"
	default:
		return "status " + strconv.Itoa(int(c))
	}
}

// Status is the outcome of one kernel launch.
type Status struct {
	Code   StatusCode
	Reason string
}

// OK reports whether the launch succeeded.
func (s Status) OK() bool {
	return s.Code == StatusSuccess
}

// Device is an accelerator able to run the whole MSM as one blocking launch.
//
// Launch writes the result to out only when it returns a successful status.
// Available is consulted on every dispatch and should be cheap after its
// first call.
type Device[A, P, S any] interface {
	Name() string
	Available() bool
	Launch(out *P, points []A, scalars []S, montgomery bool) Status
}
