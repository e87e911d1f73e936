package pippenger

// buckets is a flat bucket table covering one or more windows; window w owns
// the slice [w*per, (w+1)*per)
type buckets[P any] struct {
	b   []P
	per int
}

func newBuckets[A, P, S any](arith Arithmetic[A, P, S], windows, per int) buckets[P] {
	t := buckets[P]{b: make([]P, windows*per), per: per}
	t.reset(arith, 0, windows)
	return t
}

// reset sets the buckets of windows [from, to) to the identity
func (t buckets[P]) reset(arith interface{ SetInfinity(*P) }, from, to int) {
	for i := from * t.per; i < to*t.per; i++ {
		arith.SetInfinity(&t.b[i])
	}
}

// window returns the buckets of window w
func (t buckets[P]) window(w int) []P {
	return t.b[w*t.per : (w+1)*t.per]
}

// place adds a into bucket |d|-1, subtracting for negative digits. Digit
// zero contributes nothing and touches no bucket.
func place[A, P, S any](arith Arithmetic[A, P, S], win []P, d int64, a *A) {
	switch {
	case d > 0:
		arith.AddAffine(&win[d-1], a)
	case d < 0:
		arith.SubAffine(&win[-d-1], a)
	}
}

// accumulate adds every point of a stride into the bucket tables of all
// windows. digits is caller-provided scratch of length l.windows.
func accumulate[A, P, S any](arith Arithmetic[A, P, S], t buckets[P], l layout, points []A, scalars [][4]uint64, digits []int64) {
	for i := range points {
		l.digits(digits, &scalars[i])
		for w, d := range digits {
			if d != 0 {
				place(arith, t.window(w), d, &points[i])
			}
		}
	}
}

// accumulateWindow adds every point into the buckets of a single window w.
// In the signed form carries holds the carry each scalar brings into w and is
// advanced to w+1.
func accumulateWindow[A, P, S any](arith Arithmetic[A, P, S], win []P, l layout, w int, points []A, scalars [][4]uint64, carries []uint8) {
	off := w * l.c
	for i := range points {
		raw := Digit(&scalars[i], off, l.c)
		if !l.signed {
			place(arith, win, int64(raw), &points[i])
			continue
		}
		d, carry := recode(raw, uint64(carries[i]), l.c)
		carries[i] = uint8(carry)
		place(arith, win, d, &points[i])
	}
}
