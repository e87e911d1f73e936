//go:build !cuda

package device

import (
	"pastamsm.mleku.dev/pasta"
	"pastamsm.mleku.dev/pippenger"
)

// absentKernel stands in for the CUDA kernels in builds without the cuda
// tag. It is never available, so the dispatcher keeps every call on the CPU.
type absentKernel struct {
	curve *pasta.Curve
}

func newKernel(curve *pasta.Curve) pippenger.Device[pasta.Affine, pasta.Jacobian, pasta.Element] {
	return absentKernel{curve: curve}
}

func (k absentKernel) Name() string {
	return "cuda-" + k.curve.Name()
}

func (absentKernel) Available() bool {
	return false
}

func (absentKernel) Launch(*pasta.Jacobian, []pasta.Affine, []pasta.Element, bool) pippenger.Status {
	return pippenger.Status{
		Code:   pippenger.StatusUndefined,
		Reason: "built without the cuda tag",
	}
}
