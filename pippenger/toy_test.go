package pippenger

import (
	"math/bits"
	"sync/atomic"
)

// toyModulus is the Mersenne prime 2^61-1. The additive group of integers
// modulo it is a cheap stand-in for a curve: a point is its own discrete log,
// so every MSM has an exact reference answer.
const toyModulus = 1<<61 - 1

// toyMontInv is 2^-64 mod 2^61-1, the factor leaving Montgomery form
const toyMontInv = 1 << 58

func toyReduce(x uint64) uint64 {
	x = (x & toyModulus) + (x >> 61)
	if x >= toyModulus {
		x -= toyModulus
	}
	return x
}

func toyMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return toyReduce((lo & toyModulus) + (hi<<3 | lo>>61))
}

// toyMont returns s in Montgomery form, s*2^64 mod 2^61-1
func toyMont(s uint64) uint64 {
	return toyMul(toyReduce(s), 8)
}

type toyGroup struct{}

func (toyGroup) ScalarBits() int { return 61 }
func (toyGroup) SetInfinity(p *uint64) { *p = 0 }
func (toyGroup) IsInfinity(p *uint64) bool { return *p == 0 }
func (toyGroup) AddAffine(r *uint64, a *uint64) { *r = toyReduce(*r + *a) }
func (toyGroup) SubAffine(r *uint64, a *uint64) { *r = toyReduce(*r + toyModulus - *a) }
func (toyGroup) Add(r, a *uint64) { *r = toyReduce(*r + *a) }
func (toyGroup) Double(r *uint64) { *r = toyReduce(*r << 1) }

func (toyGroup) Canonical(dst *[4]uint64, s *uint64, montgomery bool) {
	v := toyReduce(*s)
	if montgomery {
		v = toyMul(v, toyMontInv)
	}
	*dst = [4]uint64{v}
}

// toyReference computes the sum directly from canonical scalars
func toyReference(points, scalars []uint64) uint64 {
	var r uint64
	for i := range points {
		r = toyReduce(r + toyMul(points[i], toyReduce(scalars[i])))
	}
	return r
}

// countingGroup records how much arithmetic was performed
type countingGroup struct {
	toyGroup
	adds      atomic.Int64
	canonical atomic.Int64
}

func (g *countingGroup) AddAffine(r *uint64, a *uint64) {
	g.adds.Add(1)
	g.toyGroup.AddAffine(r, a)
}

func (g *countingGroup) SubAffine(r *uint64, a *uint64) {
	g.adds.Add(1)
	g.toyGroup.SubAffine(r, a)
}

func (g *countingGroup) Canonical(dst *[4]uint64, s *uint64, montgomery bool) {
	g.canonical.Add(1)
	g.toyGroup.Canonical(dst, s, montgomery)
}

// fakeDevice answers with the reference sum, or with a fixed failure
type fakeDevice struct {
	available bool
	fail      Status
	launches  atomic.Int64
	probes    atomic.Int64
}

func (d *fakeDevice) Name() string { return "fake" }

func (d *fakeDevice) Available() bool {
	d.probes.Add(1)
	return d.available
}

func (d *fakeDevice) Launch(out *uint64, points []uint64, scalars []uint64, montgomery bool) Status {
	d.launches.Add(1)
	if !d.fail.OK() {
		return d.fail
	}
	k := make([]uint64, len(scalars))
	var g toyGroup
	for i := range scalars {
		var c [4]uint64
		g.Canonical(&c, &scalars[i], montgomery)
		k[i] = c[0]
	}
	*out = toyReference(points, k)
	return Status{}
}
