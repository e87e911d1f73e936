//go:build cuda

package device

/*
#cgo LDFLAGS: -L${SRCDIR}/../lib -lpasta_msm_cuda -lcudart -lstdc++
#include <stdbool.h>
#include <stddef.h>
#include <stdint.h>
#include <stdlib.h>

typedef struct {
	int code;
	char *message;
} msm_status;

bool cuda_available(void);
msm_status cuda_pippenger_pallas(uint64_t *out, const uint64_t *points, size_t npoints, const uint64_t *scalars, bool mont);
msm_status cuda_pippenger_vesta(uint64_t *out, const uint64_t *points, size_t npoints, const uint64_t *scalars, bool mont);
*/
import "C"

import (
	"fmt"
	"unsafe"

	"pastamsm.mleku.dev/pasta"
	"pastamsm.mleku.dev/pippenger"
)

// cudaKernel launches the sppark Pippenger kernel for one Pasta curve
type cudaKernel struct {
	curve *pasta.Curve
}

func newKernel(curve *pasta.Curve) pippenger.Device[pasta.Affine, pasta.Jacobian, pasta.Element] {
	return &cudaKernel{curve: curve}
}

func (k *cudaKernel) Name() string {
	return "cuda-" + k.curve.Name()
}

func (k *cudaKernel) Available() bool {
	return bool(C.cuda_available())
}

func (k *cudaKernel) Launch(out *pasta.Jacobian, points []pasta.Affine, scalars []pasta.Element, montgomery bool) pippenger.Status {
	if len(points) != len(scalars) {
		return pippenger.Status{
			Code:   pippenger.StatusInvalidArgument,
			Reason: fmt.Sprintf("%d points, %d scalars", len(points), len(scalars)),
		}
	}
	if len(points) == 0 {
		*out = pasta.Jacobian{}
		return pippenger.Status{}
	}

	packed := packAffine(points)
	var res [jacobianWords]uint64
	resPtr := (*C.uint64_t)(unsafe.Pointer(&res[0]))
	pointsPtr := (*C.uint64_t)(unsafe.Pointer(&packed[0]))
	scalarsPtr := (*C.uint64_t)(unsafe.Pointer(&scalars[0]))
	npoints := C.size_t(len(points))

	var st C.msm_status
	if k.curve == pasta.Pallas {
		st = C.cuda_pippenger_pallas(resPtr, pointsPtr, npoints, scalarsPtr, C.bool(montgomery))
	} else {
		st = C.cuda_pippenger_vesta(resPtr, pointsPtr, npoints, scalarsPtr, C.bool(montgomery))
	}
	if st.code != 0 {
		var reason string
		if st.message != nil {
			reason = C.GoString(st.message)
			C.free(unsafe.Pointer(st.message))
		}
		return pippenger.Status{Code: pippenger.StatusCode(st.code), Reason: reason}
	}

	*out = unpackJacobian(&res)
	return pippenger.Status{}
}
