package pasta

// Scalars are elements of the curve's scalar field in Montgomery form, the
// same representation the field elements use. The helpers below move between
// that form and the canonical integer a bucket engine slices into windows.

// ScalarFromUint64 returns v as a Montgomery-form scalar.
func (c *Curve) ScalarFromUint64(v uint64) Element {
	return c.scalar.SetUint64(v)
}

// ScalarFromCanonical reduces limbs modulo the group order and returns the
// Montgomery-form scalar.
func (c *Curve) ScalarFromCanonical(limbs [4]uint64) Element {
	return c.scalar.FromCanonical(limbs)
}

// ScalarFromBytes reduces a 32-byte little-endian integer modulo the group
// order and returns the Montgomery-form scalar.
func (c *Curve) ScalarFromBytes(b []byte) (Element, error) {
	return c.scalar.FromBytes(b)
}

// CanonicalScalar returns the canonical limbs of a Montgomery-form scalar.
func (c *Curve) CanonicalScalar(s *Element) [4]uint64 {
	return c.scalar.Canonical(s)
}

// ScalarsFromDigests fills out with scalars reduced from 32-byte digests.
func (c *Curve) ScalarsFromDigests(out []Element, digests [][32]byte) {
	for i := range out {
		out[i], _ = c.scalar.FromBytes(digests[i][:])
	}
}

// PointsFromDigests fills out with k_i*G for scalars k_i reduced from the
// digests, normalizing the whole batch with one inversion.
func (c *Curve) PointsFromDigests(out []Affine, digests [][32]byte) {
	tmp := make([]Jacobian, len(out))
	for i := range tmp {
		k, _ := c.scalar.FromBytes(digests[i][:])
		tmp[i] = c.ScalarMult(&c.gen, &k)
	}
	c.BatchNormalize(out, tmp)
}

// The methods below are the group capability consumed by the bucket engine.
// They operate in place on the accumulator.

// ScalarBits returns the bit length of canonical scalars.
func (c *Curve) ScalarBits() int {
	return Bits
}

// SetInfinity sets p to the identity.
func (c *Curve) SetInfinity(p *Jacobian) {
	p.setInfinity()
}

// IsInfinity reports whether p is the identity.
func (c *Curve) IsInfinity(p *Jacobian) bool {
	return p.isInfinity()
}

// AddAffine sets r = r + a.
func (c *Curve) AddAffine(r *Jacobian, a *Affine) {
	c.addGE(r, r, a)
}

// SubAffine sets r = r - a.
func (c *Curve) SubAffine(r *Jacobian, a *Affine) {
	var n Affine
	c.negateGE(&n, a)
	c.addGE(r, r, &n)
}

// Add sets r = r + a.
func (c *Curve) Add(r, a *Jacobian) {
	c.addVar(r, r, a)
}

// Double sets r = 2r.
func (c *Curve) Double(r *Jacobian) {
	c.double(r, r)
}

// Canonical writes the canonical limbs of s into dst. With montgomery set s
// is converted out of Montgomery form; otherwise its limbs are taken as the
// integer itself and only reduced modulo the group order.
func (c *Curve) Canonical(dst *[4]uint64, s *Element, montgomery bool) {
	if montgomery {
		var z Element
		c.scalar.fromMont(&z, s)
		*dst = z
		return
	}
	var z Element
	c.scalar.reduce(&z, s)
	*dst = z
}
