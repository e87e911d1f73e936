// Package bn254 adapts gnark-crypto's BN254 G1 arithmetic to the bucket
// engine. Scalars are fr.Elements, which gnark stores in Montgomery form;
// with the Montgomery flag unset their limbs are read as a plain integer.
package bn254

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Arithmetic implements pippenger.Arithmetic over BN254 G1.
type Arithmetic struct{}

// Curve is the BN254 G1 arithmetic instance.
var Curve Arithmetic

func (Arithmetic) ScalarBits() int { return fr.Bits }

func (Arithmetic) SetInfinity(p *bn254.G1Jac) {
	p.X.SetOne()
	p.Y.SetOne()
	p.Z.SetZero()
}

func (Arithmetic) IsInfinity(p *bn254.G1Jac) bool {
	return p.Z.IsZero()
}

func (Arithmetic) AddAffine(r *bn254.G1Jac, a *bn254.G1Affine) {
	r.AddMixed(a)
}

func (Arithmetic) SubAffine(r *bn254.G1Jac, a *bn254.G1Affine) {
	var n bn254.G1Affine
	n.Neg(a)
	r.AddMixed(&n)
}

func (Arithmetic) Add(r, a *bn254.G1Jac) {
	r.AddAssign(a)
}

func (Arithmetic) Double(r *bn254.G1Jac) {
	r.DoubleAssign()
}

// Canonical writes the regular limbs of s.
func (Arithmetic) Canonical(dst *[4]uint64, s *fr.Element, montgomery bool) {
	if montgomery {
		*dst = s.Bits()
		return
	}
	// the limbs are the integer itself, reduce it modulo r
	var b big.Int
	for i := 3; i >= 0; i-- {
		b.Lsh(&b, 64)
		b.Or(&b, new(big.Int).SetUint64(s[i]))
	}
	var e fr.Element
	e.SetBigInt(&b)
	*dst = e.Bits()
}

// PointsFromDigests fills out with k_i*G for scalars k_i reduced from the
// digests, normalizing the batch with one inversion.
func PointsFromDigests(out []bn254.G1Affine, digests [][32]byte) {
	_, _, g, _ := bn254.Generators()
	jac := make([]bn254.G1Jac, len(out))
	for i := range out {
		var k fr.Element
		k.SetBytes(digests[i][:])
		var kb big.Int
		k.BigInt(&kb)
		var gj bn254.G1Jac
		gj.FromAffine(&g)
		jac[i].ScalarMultiplication(&gj, &kb)
	}
	copy(out, bn254.BatchJacobianToAffineG1(jac))
}

// ScalarsFromDigests fills out with scalars reduced from the digests.
func ScalarsFromDigests(out []fr.Element, digests [][32]byte) {
	for i := range out {
		out[i].SetBytes(digests[i][:])
	}
}

// Equal reports whether a and b are the same point.
func Equal(a, b *bn254.G1Jac) bool {
	return a.Equal(b)
}
