package pasta

// Affine is a curve point in affine coordinates (x, y). The point at
// infinity is flagged explicitly and its coordinates are ignored.
type Affine struct {
	X, Y     Element
	Infinity bool
}

// Jacobian is a curve point in Jacobian coordinates, representing the affine
// point (X/Z^2, Y/Z^3). Any value with Z == 0 is the point at infinity, so the
// zero value is the identity.
type Jacobian struct {
	X, Y, Z Element
}

// Curve is one of the two Pasta curves y^2 = x^3 + 5.
type Curve struct {
	name   string
	base   *Field
	scalar *Field
	b      Element
	gen    Affine
}

var (
	// Pallas is defined over Fp and has a group of order q.
	Pallas = newCurve("pallas", Fp, Fq)

	// Vesta is defined over Fq and has a group of order p.
	Vesta = newCurve("vesta", Fq, Fp)
)

func newCurve(name string, base, scalar *Field) *Curve {
	c := &Curve{name: name, base: base, scalar: scalar}
	c.b = base.SetUint64(5)

	// Both curves use the generator (-1, 2)
	one := base.One()
	c.gen.X = base.Neg(&one)
	c.gen.Y = base.SetUint64(2)
	return c
}

// Name returns "pallas" or "vesta".
func (c *Curve) Name() string {
	return c.name
}

// BaseField returns the field the coordinates live in.
func (c *Curve) BaseField() *Field {
	return c.base
}

// ScalarField returns the field of scalars, whose modulus is the group order.
func (c *Curve) ScalarField() *Field {
	return c.scalar
}

// Generator returns the fixed generator (-1, 2).
func (c *Curve) Generator() Affine {
	return c.gen
}

// IsOnCurve reports whether a satisfies y^2 = x^3 + 5.
func (c *Curve) IsOnCurve(a *Affine) bool {
	if a.Infinity {
		return true
	}
	f := c.base
	var lhs, rhs Element
	f.square(&lhs, &a.Y)
	f.square(&rhs, &a.X)
	f.mul(&rhs, &rhs, &a.X)
	f.add(&rhs, &rhs, &c.b)
	return lhs.Equal(&rhs)
}

// setInfinity sets r to the point at infinity
func (r *Jacobian) setInfinity() {
	*r = Jacobian{}
}

// isInfinity returns true if r is the point at infinity
func (r *Jacobian) isInfinity() bool {
	return r.Z.isZero()
}

// setGE sets r to the Jacobian form of a
func (c *Curve) setGE(r *Jacobian, a *Affine) {
	if a.Infinity {
		r.setInfinity()
		return
	}
	r.X = a.X
	r.Y = a.Y
	r.Z = c.base.r
}

// setGEJ sets r to the affine form of a, inverting Z
func (c *Curve) setGEJ(r *Affine, a *Jacobian) {
	if a.isInfinity() {
		*r = Affine{Infinity: true}
		return
	}
	f := c.base
	var zi, zi2, zi3 Element
	f.inverse(&zi, &a.Z)
	f.square(&zi2, &zi)
	f.mul(&zi3, &zi2, &zi)
	f.mul(&r.X, &a.X, &zi2)
	f.mul(&r.Y, &a.Y, &zi3)
	r.Infinity = false
}

// double sets r = 2a using dbl-2009-l; r may alias a
func (c *Curve) double(r, a *Jacobian) {
	if a.isInfinity() {
		r.setInfinity()
		return
	}
	f := c.base
	var A, B, C, D, E, F, t Element

	f.square(&A, &a.X) // A = X^2
	f.square(&B, &a.Y) // B = Y^2
	f.square(&C, &B)   // C = B^2

	// D = 2*((X+B)^2 - A - C)
	f.add(&D, &a.X, &B)
	f.square(&D, &D)
	f.sub(&D, &D, &A)
	f.sub(&D, &D, &C)
	f.double(&D, &D)

	// E = 3*A, F = E^2
	f.double(&E, &A)
	f.add(&E, &E, &A)
	f.square(&F, &E)

	// Z3 = 2*Y*Z, computed before X and Y are overwritten
	var z3 Element
	f.mul(&z3, &a.Y, &a.Z)
	f.double(&z3, &z3)

	// X3 = F - 2*D
	var x3 Element
	f.double(&t, &D)
	f.sub(&x3, &F, &t)

	// Y3 = E*(D - X3) - 8*C
	var y3 Element
	f.sub(&y3, &D, &x3)
	f.mul(&y3, &y3, &E)
	f.double(&t, &C)
	f.double(&t, &t)
	f.double(&t, &t)
	f.sub(&y3, &y3, &t)

	r.X, r.Y, r.Z = x3, y3, z3
}

// addVar sets r = a + b using add-2007-bl; r may alias a or b
func (c *Curve) addVar(r, a, b *Jacobian) {
	if a.isInfinity() {
		*r = *b
		return
	}
	if b.isInfinity() {
		*r = *a
		return
	}
	f := c.base
	var z1z1, z2z2, u1, u2, s1, s2, h, rr Element

	f.square(&z1z1, &a.Z)
	f.square(&z2z2, &b.Z)
	f.mul(&u1, &a.X, &z2z2)
	f.mul(&u2, &b.X, &z1z1)
	f.mul(&s1, &a.Y, &b.Z)
	f.mul(&s1, &s1, &z2z2)
	f.mul(&s2, &b.Y, &a.Z)
	f.mul(&s2, &s2, &z1z1)

	f.sub(&h, &u2, &u1)
	f.sub(&rr, &s2, &s1)
	if h.isZero() {
		if rr.isZero() {
			c.double(r, a)
			return
		}
		// a == -b
		r.setInfinity()
		return
	}

	var i, j, v, t Element
	f.double(&i, &h)
	f.square(&i, &i) // I = (2H)^2
	f.mul(&j, &h, &i) // J = H*I
	f.double(&rr, &rr)
	f.mul(&v, &u1, &i) // V = U1*I

	// X3 = r^2 - J - 2V
	var x3 Element
	f.square(&x3, &rr)
	f.sub(&x3, &x3, &j)
	f.double(&t, &v)
	f.sub(&x3, &x3, &t)

	// Y3 = r*(V - X3) - 2*S1*J
	var y3 Element
	f.sub(&y3, &v, &x3)
	f.mul(&y3, &y3, &rr)
	f.mul(&t, &s1, &j)
	f.double(&t, &t)
	f.sub(&y3, &y3, &t)

	// Z3 = ((Z1+Z2)^2 - Z1Z1 - Z2Z2)*H
	var z3 Element
	f.add(&z3, &a.Z, &b.Z)
	f.square(&z3, &z3)
	f.sub(&z3, &z3, &z1z1)
	f.sub(&z3, &z3, &z2z2)
	f.mul(&z3, &z3, &h)

	r.X, r.Y, r.Z = x3, y3, z3
}

// addGE sets r = a + b for an affine b using madd-2007-bl; r may alias a
func (c *Curve) addGE(r, a *Jacobian, b *Affine) {
	if b.Infinity {
		*r = *a
		return
	}
	if a.isInfinity() {
		c.setGE(r, b)
		return
	}
	f := c.base
	var z1z1, u2, s2, h, rr Element

	f.square(&z1z1, &a.Z)
	f.mul(&u2, &b.X, &z1z1)
	f.mul(&s2, &b.Y, &a.Z)
	f.mul(&s2, &s2, &z1z1)

	f.sub(&h, &u2, &a.X)
	f.sub(&rr, &s2, &a.Y)
	if h.isZero() {
		if rr.isZero() {
			c.double(r, a)
			return
		}
		r.setInfinity()
		return
	}

	var hh, i, j, v, t Element
	f.square(&hh, &h)
	f.double(&i, &hh)
	f.double(&i, &i) // I = 4*HH
	f.mul(&j, &h, &i)
	f.double(&rr, &rr)
	f.mul(&v, &a.X, &i)

	var x3 Element
	f.square(&x3, &rr)
	f.sub(&x3, &x3, &j)
	f.double(&t, &v)
	f.sub(&x3, &x3, &t)

	var y3 Element
	f.sub(&y3, &v, &x3)
	f.mul(&y3, &y3, &rr)
	f.mul(&t, &a.Y, &j)
	f.double(&t, &t)
	f.sub(&y3, &y3, &t)

	// Z3 = (Z1+H)^2 - Z1Z1 - HH
	var z3 Element
	f.add(&z3, &a.Z, &h)
	f.square(&z3, &z3)
	f.sub(&z3, &z3, &z1z1)
	f.sub(&z3, &z3, &hh)

	r.X, r.Y, r.Z = x3, y3, z3
}

// negateGE sets r to the mirror of a around the x axis
func (c *Curve) negateGE(r, a *Affine) {
	*r = *a
	if !a.Infinity {
		c.base.neg(&r.Y, &a.Y)
	}
}

// negate sets r = -a
func (c *Curve) negate(r, a *Jacobian) {
	*r = *a
	c.base.neg(&r.Y, &a.Y)
}

// Neg returns -a.
func (c *Curve) Neg(a *Affine) Affine {
	var r Affine
	c.negateGE(&r, a)
	return r
}

// NegJacobian returns -a.
func (c *Curve) NegJacobian(a *Jacobian) Jacobian {
	var r Jacobian
	c.negate(&r, a)
	return r
}

// FromAffine returns a in Jacobian coordinates.
func (c *Curve) FromAffine(a *Affine) Jacobian {
	var r Jacobian
	c.setGE(&r, a)
	return r
}

// ToAffine normalizes a to affine coordinates with one field inversion.
func (c *Curve) ToAffine(a *Jacobian) Affine {
	var r Affine
	c.setGEJ(&r, a)
	return r
}

// Sum returns a + b.
func (c *Curve) Sum(a, b *Jacobian) Jacobian {
	var r Jacobian
	c.addVar(&r, a, b)
	return r
}

// Equal reports whether a and b represent the same point, comparing
// X1*Z2^2 == X2*Z1^2 and Y1*Z2^3 == Y2*Z1^3 without inverting.
func (c *Curve) Equal(a, b *Jacobian) bool {
	ai, bi := a.isInfinity(), b.isInfinity()
	if ai || bi {
		return ai == bi
	}
	f := c.base
	var z1z1, z2z2, l, r Element
	f.square(&z1z1, &a.Z)
	f.square(&z2z2, &b.Z)

	f.mul(&l, &a.X, &z2z2)
	f.mul(&r, &b.X, &z1z1)
	if !l.Equal(&r) {
		return false
	}

	f.mul(&l, &a.Y, &z2z2)
	f.mul(&l, &l, &b.Z)
	f.mul(&r, &b.Y, &z1z1)
	f.mul(&r, &r, &a.Z)
	return l.Equal(&r)
}

// EqualAffine reports whether two affine points are equal.
func (c *Curve) EqualAffine(a, b *Affine) bool {
	if a.Infinity || b.Infinity {
		return a.Infinity == b.Infinity
	}
	return a.X.Equal(&b.X) && a.Y.Equal(&b.Y)
}

// BatchNormalize converts in to affine coordinates with a single field
// inversion shared across the batch (Montgomery's trick). Points at infinity
// are skipped and come out flagged.
func (c *Curve) BatchNormalize(out []Affine, in []Jacobian) {
	if len(out) != len(in) {
		panic("pasta: BatchNormalize length mismatch")
	}
	f := c.base
	n := len(in)
	if n == 0 {
		return
	}

	// prefix[i] = Z_0 * ... * Z_{i-1} over the finite points
	prefix := make([]Element, n)
	acc := f.r
	for i := 0; i < n; i++ {
		prefix[i] = acc
		if !in[i].isInfinity() {
			f.mul(&acc, &acc, &in[i].Z)
		}
	}

	var u Element
	f.inverse(&u, &acc)

	// Walk backwards peeling one Z off the running inverse per point
	for i := n - 1; i >= 0; i-- {
		if in[i].isInfinity() {
			out[i] = Affine{Infinity: true}
			continue
		}
		var zi, zi2, zi3 Element
		f.mul(&zi, &u, &prefix[i])
		f.mul(&u, &u, &in[i].Z)
		f.square(&zi2, &zi)
		f.mul(&zi3, &zi2, &zi)
		f.mul(&out[i].X, &in[i].X, &zi2)
		f.mul(&out[i].Y, &in[i].Y, &zi3)
		out[i].Infinity = false
	}
}

// ScalarMult returns k*a for a Montgomery-form scalar k, using plain
// double-and-add over the canonical bits from the top down.
func (c *Curve) ScalarMult(a *Affine, k *Element) Jacobian {
	bits := c.scalar.Canonical(k)
	return c.scalarMultLimbs(a, &bits)
}

// scalarMultLimbs returns k*a for canonical little-endian limbs
func (c *Curve) scalarMultLimbs(a *Affine, k *[4]uint64) Jacobian {
	var r Jacobian
	if a.Infinity {
		return r
	}
	for i := 255; i >= 0; i-- {
		c.double(&r, &r)
		if (k[i/64]>>(uint(i)%64))&1 == 1 {
			c.addGE(&r, &r, a)
		}
	}
	return r
}
