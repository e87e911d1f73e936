package pippenger

import "math/bits"

// MaxWindowBits bounds the digit width. Digit extraction reads at most two
// limbs, and a 2^24 bucket table is already far past any useful size.
const MaxWindowBits = 24

// WindowSize returns the default digit width for n points. It grows with
// log2(n) so the O(2^c) reduction is amortized over more points per window.
func WindowSize(n int) int {
	if n < 1 {
		return 1
	}
	w := bits.Len(uint(n)) - 1
	switch {
	case w > 12:
		w -= 3
	case w > 4:
		w -= 2
	case w > 0:
		w = 2
	default:
		w = 1
	}
	if w > MaxWindowBits {
		w = MaxWindowBits
	}
	return w
}

// Digit returns bits [off, off+c) of the canonical scalar k. Bits past the
// top of k read as zero. c must be in [1, MaxWindowBits].
func Digit(k *[4]uint64, off, c int) uint64 {
	if off >= 256 {
		return 0
	}
	limb, shift := off/64, uint(off%64)
	d := k[limb] >> shift
	if shift+uint(c) > 64 && limb < 3 {
		d |= k[limb+1] << (64 - shift)
	}
	return d & (1<<uint(c) - 1)
}

// recode turns a raw digit plus the carry from the window below into a
// signed digit in (-2^(c-1), 2^(c-1)] and the carry for the window above.
func recode(raw, carry uint64, c int) (int64, uint64) {
	v := raw + carry
	if v > 1<<uint(c-1) {
		return int64(v) - int64(1)<<uint(c), 1
	}
	return int64(v), 0
}

// layout is the window geometry of one call
type layout struct {
	c       int  // digit width
	windows int  // number of windows
	buckets int  // buckets per window, digit d lives at index |d|-1
	signed  bool // digits are recoded with a carry
}

// newLayout derives the window geometry for scalars of nbits bits. The
// unsigned form needs ceil(nbits/c) windows of 2^c-1 buckets; the signed form
// needs one more window to absorb the final carry but only 2^(c-1) buckets.
func newLayout(nbits, c int, signed bool) layout {
	if c > nbits {
		c = nbits
	}
	if c < 1 {
		c = 1
	}
	if signed {
		return layout{c: c, windows: nbits/c + 1, buckets: 1 << uint(c-1), signed: true}
	}
	return layout{c: c, windows: (nbits + c - 1) / c, buckets: 1<<uint(c) - 1}
}

// digits writes the digits of k for every window into out, least significant
// window first. Digits of the unsigned form are never negative.
func (l layout) digits(out []int64, k *[4]uint64) {
	if !l.signed {
		for w := 0; w < l.windows; w++ {
			out[w] = int64(Digit(k, w*l.c, l.c))
		}
		return
	}
	var carry uint64
	for w := 0; w < l.windows; w++ {
		out[w], carry = recode(Digit(k, w*l.c, l.c), carry, l.c)
	}
}

// fitTables narrows the window until tables bucket tables, each holding
// perTable windows of pointSize-byte accumulators, fit in budget bytes. A
// budget of zero leaves the layout alone. One-bit windows are never narrowed.
func fitTables(nbits, c int, signed bool, tables int, parallel bool, pointSize uintptr, budget int64) layout {
	l := newLayout(nbits, c, signed)
	for budget > 0 && l.c > 1 && l.tableBytes(tables, parallel, pointSize) > budget {
		l = newLayout(nbits, l.c-1, signed)
	}
	return l
}

// tableBytes is the memory held by tables bucket tables. Parallel tables
// cover every window; the serial path reuses a single window.
func (l layout) tableBytes(tables int, parallel bool, pointSize uintptr) int64 {
	windows := 1
	if parallel {
		windows = l.windows
	}
	return int64(tables) * int64(windows) * int64(l.buckets) * int64(pointSize)
}
