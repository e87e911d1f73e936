package pasta

import "math/bits"

// unrolled selects mulUnrolled over mulGeneric; set by SetISA.
var unrolled = true

// montMul dispatches to the selected routine with direct calls so that
// operands stay on the caller's stack.
func montMul(z, x, y, p *Element, inv uint64) {
	if unrolled {
		mulUnrolled(z, x, y, p, inv)
		return
	}
	mulGeneric(z, x, y, p, inv)
}

// mulGeneric computes z = x*y*2^-256 mod p with the textbook CIOS loop. It
// keeps a full carry word and works for any odd modulus below 2^256.
func mulGeneric(z, x, y, p *Element, inv uint64) {
	var t [6]uint64
	var c, cc, hi, lo uint64

	for i := 0; i < 4; i++ {
		// t += x * y[i]
		c = 0
		for j := 0; j < 4; j++ {
			hi, lo = bits.Mul64(x[j], y[i])
			lo, cc = bits.Add64(lo, t[j], 0)
			hi += cc
			lo, cc = bits.Add64(lo, c, 0)
			hi += cc
			t[j] = lo
			c = hi
		}
		t[4], cc = bits.Add64(t[4], c, 0)
		t[5] = cc

		// t = (t + m*p) / 2^64
		m := t[0] * inv
		hi, lo = bits.Mul64(m, p[0])
		_, cc = bits.Add64(lo, t[0], 0)
		c = hi + cc
		for j := 1; j < 4; j++ {
			hi, lo = bits.Mul64(m, p[j])
			lo, cc = bits.Add64(lo, t[j], 0)
			hi += cc
			lo, cc = bits.Add64(lo, c, 0)
			hi += cc
			t[j-1] = lo
			c = hi
		}
		t[3], cc = bits.Add64(t[4], c, 0)
		t[4] = t[5] + cc
	}

	res := Element{t[0], t[1], t[2], t[3]}
	if t[4] != 0 {
		// the value overflowed four limbs, so it is certainly >= p
		var borrow uint64
		res[0], borrow = bits.Sub64(res[0], p[0], 0)
		res[1], borrow = bits.Sub64(res[1], p[1], borrow)
		res[2], borrow = bits.Sub64(res[2], p[2], borrow)
		res[3], _ = bits.Sub64(res[3], p[3], borrow)
		*z = res
		return
	}
	condSub(z, &res, p)
}

// mulUnrolled is the fully unrolled CIOS variant. It needs the top bit of p
// to be clear so the intermediate never spills into a fifth limb, which holds
// for both 255-bit Pasta moduli.
func mulUnrolled(z, x, y, p *Element, inv uint64) {
	var t [4]uint64
	var c [3]uint64

	{
		v := x[0]
		c[1], c[0] = bits.Mul64(v, y[0])
		m := c[0] * inv
		c[2] = madd0(m, p[0], c[0])
		c[1], c[0] = madd1(v, y[1], c[1])
		c[2], t[0] = madd2(m, p[1], c[2], c[0])
		c[1], c[0] = madd1(v, y[2], c[1])
		c[2], t[1] = madd2(m, p[2], c[2], c[0])
		c[1], c[0] = madd1(v, y[3], c[1])
		t[3], t[2] = madd3(m, p[3], c[0], c[2], c[1])
	}
	{
		v := x[1]
		c[1], c[0] = madd1(v, y[0], t[0])
		m := c[0] * inv
		c[2] = madd0(m, p[0], c[0])
		c[1], c[0] = madd2(v, y[1], c[1], t[1])
		c[2], t[0] = madd2(m, p[1], c[2], c[0])
		c[1], c[0] = madd2(v, y[2], c[1], t[2])
		c[2], t[1] = madd2(m, p[2], c[2], c[0])
		c[1], c[0] = madd2(v, y[3], c[1], t[3])
		t[3], t[2] = madd3(m, p[3], c[0], c[2], c[1])
	}
	{
		v := x[2]
		c[1], c[0] = madd1(v, y[0], t[0])
		m := c[0] * inv
		c[2] = madd0(m, p[0], c[0])
		c[1], c[0] = madd2(v, y[1], c[1], t[1])
		c[2], t[0] = madd2(m, p[1], c[2], c[0])
		c[1], c[0] = madd2(v, y[2], c[1], t[2])
		c[2], t[1] = madd2(m, p[2], c[2], c[0])
		c[1], c[0] = madd2(v, y[3], c[1], t[3])
		t[3], t[2] = madd3(m, p[3], c[0], c[2], c[1])
	}
	{
		v := x[3]
		c[1], c[0] = madd1(v, y[0], t[0])
		m := c[0] * inv
		c[2] = madd0(m, p[0], c[0])
		c[1], c[0] = madd2(v, y[1], c[1], t[1])
		c[2], t[0] = madd2(m, p[1], c[2], c[0])
		c[1], c[0] = madd2(v, y[2], c[1], t[2])
		c[2], t[1] = madd2(m, p[2], c[2], c[0])
		c[1], c[0] = madd2(v, y[3], c[1], t[3])
		t[3], t[2] = madd3(m, p[3], c[0], c[2], c[1])
	}

	res := Element{t[0], t[1], t[2], t[3]}
	condSub(z, &res, p)
}

// condSub sets z = t - p when t >= p, otherwise z = t
func condSub(z, t, p *Element) {
	var s Element
	var borrow uint64
	s[0], borrow = bits.Sub64(t[0], p[0], 0)
	s[1], borrow = bits.Sub64(t[1], p[1], borrow)
	s[2], borrow = bits.Sub64(t[2], p[2], borrow)
	s[3], borrow = bits.Sub64(t[3], p[3], borrow)
	if borrow != 0 {
		*z = *t
		return
	}
	*z = s
}

// madd0 returns the high word of a*b + c
func madd0(a, b, c uint64) (hi uint64) {
	var carry, lo uint64
	hi, lo = bits.Mul64(a, b)
	_, carry = bits.Add64(lo, c, 0)
	hi, _ = bits.Add64(hi, 0, carry)
	return hi
}

// madd1 returns a*b + c
func madd1(a, b, c uint64) (hi, lo uint64) {
	var carry uint64
	hi, lo = bits.Mul64(a, b)
	lo, carry = bits.Add64(lo, c, 0)
	hi, _ = bits.Add64(hi, 0, carry)
	return hi, lo
}

// madd2 returns a*b + c + d
func madd2(a, b, c, d uint64) (hi, lo uint64) {
	var carry uint64
	hi, lo = bits.Mul64(a, b)
	c, carry = bits.Add64(c, d, 0)
	hi, _ = bits.Add64(hi, 0, carry)
	lo, carry = bits.Add64(lo, c, 0)
	hi, _ = bits.Add64(hi, 0, carry)
	return hi, lo
}

// madd3 returns a*b + c + d + e*2^64
func madd3(a, b, c, d, e uint64) (hi, lo uint64) {
	var carry uint64
	hi, lo = bits.Mul64(a, b)
	c, carry = bits.Add64(c, d, 0)
	hi, _ = bits.Add64(hi, 0, carry)
	lo, carry = bits.Add64(lo, c, 0)
	hi, _ = bits.Add64(hi, e, carry)
	return hi, lo
}
