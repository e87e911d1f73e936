package device

import "pastamsm.mleku.dev/pasta"

// The CUDA kernels take affine points as packed (X, Y) Montgomery limbs with
// the point at infinity encoded as all zeros, and return a Jacobian point as
// packed (X, Y, Z).

const (
	affineWords   = 8
	jacobianWords = 12
)

// packAffine lays points out in kernel order
func packAffine(points []pasta.Affine) []uint64 {
	out := make([]uint64, len(points)*affineWords)
	for i := range points {
		if points[i].Infinity {
			continue
		}
		w := out[i*affineWords:]
		copy(w[0:4], points[i].X[:])
		copy(w[4:8], points[i].Y[:])
	}
	return out
}

// unpackJacobian reads a kernel result
func unpackJacobian(w *[jacobianWords]uint64) pasta.Jacobian {
	var r pasta.Jacobian
	copy(r.X[:], w[0:4])
	copy(r.Y[:], w[4:8])
	copy(r.Z[:], w[8:12])
	return r
}
