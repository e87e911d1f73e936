// Package batch generates deterministic point and scalar batches and computes
// the naive reference sum that MSM results are checked against.
package batch

import (
	"encoding/binary"
	"hash"
	"runtime"
	"sync/atomic"

	sha256simd "github.com/minio/sha256-simd"
	"golang.org/x/sync/errgroup"
)

// Stride is the number of items a generator worker claims at a time.
const Stride = 1024

// forEachStride calls fn on consecutive [lo, hi) ranges of [0, n) from a pool
// of workers. Ranges are claimed through a shared counter and never overlap.
func forEachStride(n, stride int, fn func(lo, hi int)) {
	workers := min(runtime.NumCPU(), (n+stride-1)/stride)
	var next atomic.Int64
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				hi := int(next.Add(int64(stride)))
				lo := hi - stride
				if lo >= n {
					return nil
				}
				fn(lo, min(hi, n))
			}
		})
	}
	_ = g.Wait()
}

// digest writes sha256(seed || le64(i)) into out
func digest(h hash.Hash, seed []byte, i uint64, out *[32]byte) {
	var idx [8]byte
	binary.LittleEndian.PutUint64(idx[:], i)
	h.Reset()
	h.Write(seed)
	h.Write(idx[:])
	h.Sum(out[:0])
}

// Digests returns n digests sha256(seed || le64(i)) for i in [0, n).
func Digests(seed []byte, n int) [][32]byte {
	out := make([][32]byte, n)
	forEachStride(n, Stride, func(lo, hi int) {
		h := sha256simd.New()
		for i := lo; i < hi; i++ {
			digest(h, seed, uint64(i), &out[i])
		}
	})
	return out
}

// Generate returns n values derived from the digests of seed. derive is
// called once per stride, concurrently, with disjoint output ranges, so
// per-stride work such as batch normalization is amortized over the stride.
// The result depends only on seed and n.
func Generate[T any](seed []byte, n int, derive func(out []T, digests [][32]byte)) []T {
	out := make([]T, n)
	forEachStride(n, Stride, func(lo, hi int) {
		h := sha256simd.New()
		d := make([][32]byte, hi-lo)
		for i := range d {
			digest(h, seed, uint64(lo+i), &d[i])
		}
		derive(out[lo:hi], d)
	})
	return out
}
