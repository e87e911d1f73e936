package pippenger

// ReduceBuckets returns the sum of (i+1)*buckets[i] using a running total
// walked from the top bucket down: two additions per bucket and no scalar
// multiplication. The buckets are left untouched.
func ReduceBuckets[A, P, S any](arith Arithmetic[A, P, S], buckets []P) P {
	var running, sum P
	arith.SetInfinity(&running)
	arith.SetInfinity(&sum)
	for i := len(buckets) - 1; i >= 0; i-- {
		if !arith.IsInfinity(&buckets[i]) {
			arith.Add(&running, &buckets[i])
		}
		if !arith.IsInfinity(&running) {
			arith.Add(&sum, &running)
		}
	}
	return sum
}

// Combine folds per-window sums, least significant first, into one point by
// Horner's rule in base 2^c: starting from the top window the accumulator is
// doubled c times before each lower window is added.
func Combine[A, P, S any](arith Arithmetic[A, P, S], sums []P, c int) P {
	var r P
	arith.SetInfinity(&r)
	for w := len(sums) - 1; w >= 0; w-- {
		if w != len(sums)-1 && !arith.IsInfinity(&r) {
			for i := 0; i < c; i++ {
				arith.Double(&r)
			}
		}
		arith.Add(&r, &sums[w])
	}
	return r
}

// mergeInto adds src bucket by bucket into dst
func mergeInto[A, P, S any](arith Arithmetic[A, P, S], dst, src []P) {
	for i := range src {
		if !arith.IsInfinity(&src[i]) {
			arith.Add(&dst[i], &src[i])
		}
	}
}
