package batch

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"pastamsm.mleku.dev/pippenger"
)

// Naive computes the sum of scalars[i]*points[i] one pair at a time with
// double-and-add. Pairs are claimed one by one by a pool of workers, each
// summing into its own slot; the slots are added after the join. It shares
// no code with the bucket engine, which makes it a reference for it.
func Naive[A, P, S any](arith pippenger.Arithmetic[A, P, S], points []A, scalars []S, montgomery bool) (P, error) {
	var r P
	if len(points) != len(scalars) {
		return r, fmt.Errorf("%w: %d points, %d scalars", pippenger.ErrLengthMismatch, len(points), len(scalars))
	}
	arith.SetInfinity(&r)
	n := len(points)
	if n == 0 {
		return r, nil
	}

	workers := min(runtime.NumCPU(), n)
	slots := make([]P, workers)
	nbits := arith.ScalarBits()
	var next atomic.Int64
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			slot := &slots[w]
			arith.SetInfinity(slot)
			for {
				i := int(next.Add(1)) - 1
				if i >= n {
					return nil
				}
				var k [4]uint64
				arith.Canonical(&k, &scalars[i], montgomery)
				term := mulBits(arith, &points[i], &k, nbits)
				arith.Add(slot, &term)
			}
		})
	}
	_ = g.Wait()

	for w := range slots {
		arith.Add(&r, &slots[w])
	}
	return r, nil
}

// mulBits returns k*a scanning the bits of k from nbits-1 down
func mulBits[A, P, S any](arith pippenger.Arithmetic[A, P, S], a *A, k *[4]uint64, nbits int) P {
	var r P
	arith.SetInfinity(&r)
	for b := nbits - 1; b >= 0; b-- {
		arith.Double(&r)
		if k[b/64]>>(uint(b)%64)&1 == 1 {
			arith.AddAffine(&r, a)
		}
	}
	return r
}
