// Package secp256k1 adapts the btcec Jacobian arithmetic to the bucket
// engine, so secp256k1 multi-scalar multiplications run through the same
// Pippenger code as the Pasta curves.
//
// Affine inputs are JacobianPoints with Z = 1 (see Normalize); the point at
// infinity is the all-zero point. Scalars are ModNScalars, which btcec keeps
// in canonical form, so the Montgomery flag has no effect.
package secp256k1

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/btcec/v2"
)

// Arithmetic implements pippenger.Arithmetic over secp256k1.
type Arithmetic struct{}

// Curve is the secp256k1 arithmetic instance.
var Curve Arithmetic

func (Arithmetic) ScalarBits() int { return 256 }

func (Arithmetic) SetInfinity(p *btcec.JacobianPoint) {
	p.X.SetInt(0)
	p.Y.SetInt(0)
	p.Z.SetInt(0)
}

func (Arithmetic) IsInfinity(p *btcec.JacobianPoint) bool {
	return (p.X.IsZero() && p.Y.IsZero()) || p.Z.IsZero()
}

// AddAffine sets r = r + a. btcec takes the cheaper mixed path for Z = 1.
func (Arithmetic) AddAffine(r, a *btcec.JacobianPoint) {
	var t btcec.JacobianPoint
	btcec.AddNonConst(r, a, &t)
	*r = t
}

func (c Arithmetic) SubAffine(r, a *btcec.JacobianPoint) {
	n := *a
	n.Y.Negate(1).Normalize()
	c.AddAffine(r, &n)
}

func (c Arithmetic) Add(r, a *btcec.JacobianPoint) {
	c.AddAffine(r, a)
}

func (Arithmetic) Double(r *btcec.JacobianPoint) {
	var t btcec.JacobianPoint
	btcec.DoubleNonConst(r, &t)
	*r = t
}

// Canonical writes the limbs of s; montgomery is ignored.
func (Arithmetic) Canonical(dst *[4]uint64, s *btcec.ModNScalar, _ bool) {
	b := s.Bytes()
	for i := 0; i < 4; i++ {
		dst[i] = binary.BigEndian.Uint64(b[24-8*i : 32-8*i])
	}
}

// Normalize returns p scaled to Z = 1, the form AddAffine expects. The
// point at infinity stays all zero.
func Normalize(p *btcec.JacobianPoint) btcec.JacobianPoint {
	if Curve.IsInfinity(p) {
		var r btcec.JacobianPoint
		return r
	}
	r := *p
	r.ToAffine()
	return r
}

// Equal reports whether a and b are the same point.
func Equal(a, b *btcec.JacobianPoint) bool {
	ai, bi := Curve.IsInfinity(a), Curve.IsInfinity(b)
	if ai || bi {
		return ai == bi
	}
	na, nb := Normalize(a), Normalize(b)
	return na.X.Equals(&nb.X) && na.Y.Equals(&nb.Y)
}

// PointsFromDigests fills out with k_i*G for scalars k_i reduced from the
// digests.
func PointsFromDigests(out []btcec.JacobianPoint, digests [][32]byte) {
	for i := range out {
		var k btcec.ModNScalar
		k.SetByteSlice(digests[i][:])
		var p btcec.JacobianPoint
		btcec.ScalarBaseMultNonConst(&k, &p)
		out[i] = Normalize(&p)
	}
}

// ScalarsFromDigests fills out with scalars reduced from the digests.
func ScalarsFromDigests(out []btcec.ModNScalar, digests [][32]byte) {
	for i := range out {
		out[i].SetByteSlice(digests[i][:])
	}
}
