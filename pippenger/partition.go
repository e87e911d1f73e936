package pippenger

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// serial runs window-major on the calling goroutine, reusing one bucket
// table for every window. Windows go bottom-up so signed carries can be
// threaded through per scalar.
func serial[A, P, S any](arith Arithmetic[A, P, S], l layout, points []A, scalars [][4]uint64) P {
	t := newBuckets(arith, 1, l.buckets)
	win := t.window(0)
	var carries []uint8
	if l.signed {
		carries = make([]uint8, len(points))
	}
	sums := make([]P, l.windows)
	for w := 0; w < l.windows; w++ {
		if w > 0 {
			t.reset(arith, 0, 1)
		}
		accumulateWindow(arith, win, l, w, points, scalars, carries)
		sums[w] = ReduceBuckets(arith, win)
	}
	return Combine(arith, sums, l.c)
}

// parallel splits the input into strides claimed through a shared counter.
// Each worker accumulates its strides into a private table covering every
// window; after the join the tables are merged and reduced with one task per
// window, each task touching only its own window.
func parallel[A, P, S any](arith Arithmetic[A, P, S], l layout, points []A, scalars [][4]uint64, workers, stride int) P {
	n := len(points)
	if strides := (n + stride - 1) / stride; workers > strides {
		workers = strides
	}

	tables := make([]buckets[P], workers)
	var next atomic.Int64
	var g errgroup.Group
	for k := 0; k < workers; k++ {
		k := k
		g.Go(func() error {
			var t buckets[P]
			var digits []int64
			for {
				end := int(next.Add(int64(stride)))
				start := end - stride
				if start >= n {
					break
				}
				end = min(end, n)
				if t.b == nil {
					t = newBuckets(arith, l.windows, l.buckets)
					digits = make([]int64, l.windows)
				}
				accumulate(arith, t, l, points[start:end], scalars[start:end], digits)
			}
			tables[k] = t
			return nil
		})
	}
	_ = g.Wait()

	// workers that never won a stride own no table
	used := tables[:0]
	for _, t := range tables {
		if t.b != nil {
			used = append(used, t)
		}
	}

	sums := make([]P, l.windows)
	var m errgroup.Group
	m.SetLimit(workers)
	for w := 0; w < l.windows; w++ {
		w := w
		m.Go(func() error {
			dst := used[0].window(w)
			for _, t := range used[1:] {
				mergeInto(arith, dst, t.window(w))
			}
			sums[w] = ReduceBuckets(arith, dst)
			return nil
		})
	}
	_ = m.Wait()
	return Combine(arith, sums, l.c)
}
