package pippenger

import "golang.org/x/sync/errgroup"

// canonicalize converts every scalar to canonical limbs once, before any
// windowing. Large inputs are split into contiguous ranges, one per worker,
// each writing only its own range of the output.
func canonicalize[A, P, S any](arith Arithmetic[A, P, S], scalars []S, montgomery bool, workers, minParallel int) [][4]uint64 {
	n := len(scalars)
	out := make([][4]uint64, n)
	if workers < 2 || n < minParallel || n < workers {
		for i := range scalars {
			arith.Canonical(&out[i], &scalars[i], montgomery)
		}
		return out
	}

	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for start := 0; start < n; start += chunk {
		lo, hi := start, min(start+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				arith.Canonical(&out[i], &scalars[i], montgomery)
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}
