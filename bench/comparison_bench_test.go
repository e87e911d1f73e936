package bench

import (
	"fmt"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	gnark "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"pastamsm.mleku.dev/batch"
	"pastamsm.mleku.dev/curves/bn254"
	"pastamsm.mleku.dev/pasta"
	"pastamsm.mleku.dev/pippenger"
)

// This file compares three ways of computing the same MSM:
// 1. the bucket engine (parallel and serial)
// 2. the naive sum of per-pair scalar multiplications
// 3. gnark-crypto's own MultiExp, on BN254 only

var benchSizes = []int{1 << 8, 1 << 12, 1 << 16}

type (
	pastaEngine = pippenger.Engine[pasta.Affine, pasta.Jacobian, pasta.Element]
	bn254Engine = pippenger.Engine[gnark.G1Affine, gnark.G1Jac, fr.Element]
)

func pallasInput(n int) ([]pasta.Affine, []pasta.Element) {
	c := pasta.Pallas

	return batch.Generate([]byte("bench-points"), n, c.PointsFromDigests),
		batch.Generate([]byte("bench-scalars"), n, c.ScalarsFromDigests)
}

func bn254Input(n int) ([]gnark.G1Affine, []fr.Element) {
	return batch.Generate([]byte("bench-points"), n, bn254.PointsFromDigests),
		batch.Generate([]byte("bench-scalars"), n, bn254.ScalarsFromDigests)
}

func newPallasEngine(b *testing.B, workers int) *pastaEngine {
	cfg := pippenger.DefaultConfig()
	cfg.Workers = workers
	cfg.DisableGPU = true

	e, err := pippenger.New[pasta.Affine, pasta.Jacobian, pasta.Element](pasta.Pallas, nil, pippenger.WithConfig(cfg))
	if err != nil {
		b.Fatal(err)
	}

	return e
}

func newBN254Engine(b *testing.B) *bn254Engine {
	e, err := pippenger.New[gnark.G1Affine, gnark.G1Jac, fr.Element](bn254.Curve, nil)
	if err != nil {
		b.Fatal(err)
	}

	return e
}

func BenchmarkPallasEngine(b *testing.B) {
	for _, n := range benchSizes {
		points, scalars := pallasInput(n)
		e := newPallasEngine(b, 0)

		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := e.MultiScalarMult(points, scalars, true); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkPallasEngineSerial(b *testing.B) {
	for _, n := range benchSizes {
		points, scalars := pallasInput(n)
		e := newPallasEngine(b, 1)

		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := e.MultiScalarMult(points, scalars, true); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkPallasNaive(b *testing.B) {
	// the naive sum is too slow for the largest size
	for _, n := range benchSizes[:2] {
		points, scalars := pallasInput(n)

		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := batch.Naive[pasta.Affine, pasta.Jacobian, pasta.Element](pasta.Pallas, points, scalars, true); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkBN254Engine(b *testing.B) {
	for _, n := range benchSizes {
		points, scalars := bn254Input(n)
		e := newBN254Engine(b)

		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := e.MultiScalarMult(points, scalars, true); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkBN254Gnark(b *testing.B) {
	for _, n := range benchSizes {
		points, scalars := bn254Input(n)

		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				var r gnark.G1Jac
				if _, err := r.MultiExp(points, scalars, ecc.MultiExpConfig{}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
