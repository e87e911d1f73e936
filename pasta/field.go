package pasta

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// Element is a field element of a Pasta base or scalar field, stored as four
// little-endian 64-bit limbs in Montgomery form (a*R mod p, R = 2^256).
type Element [4]uint64

// Field holds the constants of one of the two 255-bit Pasta prime fields.
type Field struct {
	name string
	p    Element // modulus
	inv  uint64  // -p^-1 mod 2^64
	r    Element // R mod p, the Montgomery form of 1
	r2   Element // R^2 mod p
	pm2  Element // p-2, the Fermat inversion exponent
}

var (
	// Fp is the base field of Pallas and the scalar field of Vesta.
	Fp = newField("Fp",
		Element{0x992d30ed00000001, 0x224698fc094cf91b, 0x0000000000000000, 0x4000000000000000},
		0x992d30ecffffffff,
		Element{0x34786d38fffffffd, 0x992c350be41914ad, 0xffffffffffffffff, 0x3fffffffffffffff},
		Element{0x8c78ecb30000000f, 0xd7d30dbd8b0de0e7, 0x7797a99bc3c95d18, 0x096d41af7b9cb714},
	)

	// Fq is the base field of Vesta and the scalar field of Pallas.
	Fq = newField("Fq",
		Element{0x8c46eb2100000001, 0x224698fc0994a8dd, 0x0000000000000000, 0x4000000000000000},
		0x8c46eb20ffffffff,
		Element{0x5b2b3e9cfffffffd, 0x992c350be3420567, 0xffffffffffffffff, 0x3fffffffffffffff},
		Element{0xfc9678ff0000000f, 0x67bb433d891a16e3, 0x7fae231004ccf590, 0x096d41af7ccfdaa9},
	)
)

func newField(name string, p Element, inv uint64, r, r2 Element) *Field {
	f := &Field{name: name, p: p, inv: inv, r: r, r2: r2}
	// p is odd and > 2, so subtracting 2 never borrows out of limb 0
	f.pm2 = p
	f.pm2[0] -= 2
	return f
}

// Name returns the conventional name of the field.
func (f *Field) Name() string {
	return f.name
}

// Modulus returns the canonical limbs of the field modulus.
func (f *Field) Modulus() [4]uint64 {
	return f.p
}

// Bits is the bit length of both Pasta moduli.
const Bits = 255

// Zero returns the additive identity.
func (f *Field) Zero() Element {
	return Element{}
}

// One returns the multiplicative identity in Montgomery form.
func (f *Field) One() Element {
	return f.r
}

// isZero reports whether a is zero
func (a *Element) isZero() bool {
	return (a[0] | a[1] | a[2] | a[3]) == 0
}

// IsZero reports whether a is the zero element.
func (a *Element) IsZero() bool {
	return a.isZero()
}

// Equal reports whether a and b hold the same element.
func (a *Element) Equal(b *Element) bool {
	return a[0] == b[0] && a[1] == b[1] && a[2] == b[2] && a[3] == b[3]
}

// add sets z = x + y mod p
func (f *Field) add(z, x, y *Element) {
	var t Element
	var carry uint64
	t[0], carry = bits.Add64(x[0], y[0], 0)
	t[1], carry = bits.Add64(x[1], y[1], carry)
	t[2], carry = bits.Add64(x[2], y[2], carry)
	t[3], _ = bits.Add64(x[3], y[3], carry)

	// p < 2^255 so the sum fits in four limbs; subtract p once if needed
	f.reduceOnce(z, &t)
}

// double sets z = 2x mod p
func (f *Field) double(z, x *Element) {
	f.add(z, x, x)
}

// sub sets z = x - y mod p
func (f *Field) sub(z, x, y *Element) {
	var t Element
	var borrow uint64
	t[0], borrow = bits.Sub64(x[0], y[0], 0)
	t[1], borrow = bits.Sub64(x[1], y[1], borrow)
	t[2], borrow = bits.Sub64(x[2], y[2], borrow)
	t[3], borrow = bits.Sub64(x[3], y[3], borrow)

	if borrow != 0 {
		var carry uint64
		t[0], carry = bits.Add64(t[0], f.p[0], 0)
		t[1], carry = bits.Add64(t[1], f.p[1], carry)
		t[2], carry = bits.Add64(t[2], f.p[2], carry)
		t[3], _ = bits.Add64(t[3], f.p[3], carry)
	}
	*z = t
}

// neg sets z = -x mod p
func (f *Field) neg(z, x *Element) {
	if x.isZero() {
		*z = Element{}
		return
	}
	var borrow uint64
	z[0], borrow = bits.Sub64(f.p[0], x[0], 0)
	z[1], borrow = bits.Sub64(f.p[1], x[1], borrow)
	z[2], borrow = bits.Sub64(f.p[2], x[2], borrow)
	z[3], _ = bits.Sub64(f.p[3], x[3], borrow)
}

// reduceOnce sets z = t - p if t >= p, otherwise z = t
func (f *Field) reduceOnce(z, t *Element) {
	var s Element
	var borrow uint64
	s[0], borrow = bits.Sub64(t[0], f.p[0], 0)
	s[1], borrow = bits.Sub64(t[1], f.p[1], borrow)
	s[2], borrow = bits.Sub64(t[2], f.p[2], borrow)
	s[3], borrow = bits.Sub64(t[3], f.p[3], borrow)
	if borrow != 0 {
		*z = *t
		return
	}
	*z = s
}

// mul sets z = x*y*R^-1 mod p using the active multiplication routine
func (f *Field) mul(z, x, y *Element) {
	montMul(z, x, y, &f.p, f.inv)
}

// square sets z = x^2 in Montgomery form
func (f *Field) square(z, x *Element) {
	montMul(z, x, x, &f.p, f.inv)
}

// exp sets z = x^e where e is given in canonical (non-Montgomery) limbs
func (f *Field) exp(z, x *Element, e *Element) {
	base := *x
	acc := f.r
	for i := 255; i >= 0; i-- {
		f.square(&acc, &acc)
		if (e[i/64]>>(uint(i)%64))&1 == 1 {
			f.mul(&acc, &acc, &base)
		}
	}
	*z = acc
}

// inverse sets z = x^-1 via Fermat's little theorem; the inverse of zero is zero
func (f *Field) inverse(z, x *Element) {
	f.exp(z, x, &f.pm2)
}

// toMont converts canonical limbs to Montgomery form
func (f *Field) toMont(z, x *Element) {
	f.mul(z, x, &f.r2)
}

// fromMont converts a Montgomery-form element back to canonical limbs
func (f *Field) fromMont(z, x *Element) {
	one := Element{1}
	f.mul(z, x, &one)
}

// reduce brings any 256-bit value into [0, p)
func (f *Field) reduce(z, x *Element) {
	t := *x
	// 2^256 < 4p, so at most three subtractions are needed
	for i := 0; i < 3; i++ {
		f.reduceOnce(&t, &t)
	}
	*z = t
}

// Add returns x + y.
func (f *Field) Add(x, y *Element) Element {
	var z Element
	f.add(&z, x, y)
	return z
}

// Sub returns x - y.
func (f *Field) Sub(x, y *Element) Element {
	var z Element
	f.sub(&z, x, y)
	return z
}

// Neg returns -x.
func (f *Field) Neg(x *Element) Element {
	var z Element
	f.neg(&z, x)
	return z
}

// Mul returns x * y. Both operands and the result are in Montgomery form.
func (f *Field) Mul(x, y *Element) Element {
	var z Element
	f.mul(&z, x, y)
	return z
}

// Inverse returns x^-1, or zero when x is zero.
func (f *Field) Inverse(x *Element) Element {
	var z Element
	f.inverse(&z, x)
	return z
}

// SetUint64 returns v in Montgomery form.
func (f *Field) SetUint64(v uint64) Element {
	z := Element{v}
	f.toMont(&z, &z)
	return z
}

// FromCanonical reduces the little-endian limbs modulo p and returns the
// result in Montgomery form.
func (f *Field) FromCanonical(limbs [4]uint64) Element {
	z := Element(limbs)
	f.reduce(&z, &z)
	f.toMont(&z, &z)
	return z
}

// Canonical returns the canonical little-endian limbs of a Montgomery-form element.
func (f *Field) Canonical(x *Element) [4]uint64 {
	var z Element
	f.fromMont(&z, x)
	return z
}

// FromBytes interprets b as a 32-byte little-endian integer, reduces it
// modulo p and returns the Montgomery-form result.
func (f *Field) FromBytes(b []byte) (Element, error) {
	if len(b) != 32 {
		return Element{}, fmt.Errorf("pasta: %s element needs 32 bytes, got %d", f.name, len(b))
	}
	var limbs [4]uint64
	for i := range limbs {
		limbs[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
	return f.FromCanonical(limbs), nil
}

// Bytes returns the canonical 32-byte little-endian encoding of x.
func (f *Field) Bytes(x *Element) [32]byte {
	var out [32]byte
	c := f.Canonical(x)
	for i := range c {
		binary.LittleEndian.PutUint64(out[i*8:], c[i])
	}
	return out
}

// Text returns the canonical value of x as a big-endian hex string.
func (f *Field) Text(x *Element) string {
	c := f.Canonical(x)
	return fmt.Sprintf("0x%016x%016x%016x%016x", c[3], c[2], c[1], c[0])
}
