// Package pippenger implements the bucket method for multi-scalar
// multiplication over any group exposing the Arithmetic capability.
//
// An MSM call slices every canonical scalar into fixed-width digits, adds each
// point into the bucket of its digit for every window, collapses each
// window's buckets with a running sum, and folds the window sums together
// from the most significant window down. Large inputs are split into
// strides claimed by a pool of workers through one atomic counter; each
// worker owns a private bucket table per window which is merged once after
// the join.
package pippenger

// Arithmetic is the group capability the engine accumulates with. A is the
// affine input point, P the projective accumulator and S the scalar as the
// caller stores it.
//
// All mutating methods work in place on their first argument, and must
// accept the identity for any operand.
type Arithmetic[A, P, S any] interface {
	// ScalarBits returns the bit length of a canonical scalar, at most 256.
	ScalarBits() int
	SetInfinity(p *P)
	IsInfinity(p *P) bool
	// AddAffine sets r = r + a.
	AddAffine(r *P, a *A)
	// SubAffine sets r = r - a.
	SubAffine(r *P, a *A)
	// Add sets r = r + a.
	Add(r, a *P)
	// Double sets r = 2r.
	Double(r *P)
	// Canonical writes the little-endian canonical limbs of s into dst,
	// converting out of Montgomery form when montgomery is set.
	Canonical(dst *[4]uint64, s *S, montgomery bool)
}
