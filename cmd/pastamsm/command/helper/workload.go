package helper

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	gnark "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"pastamsm.mleku.dev/batch"
	"pastamsm.mleku.dev/curves/bn254"
	"pastamsm.mleku.dev/curves/secp256k1"
	"pastamsm.mleku.dev/device"
	"pastamsm.mleku.dev/pasta"
	"pastamsm.mleku.dev/pippenger"
)

// Curves lists the curve names accepted by --curve
var Curves = []string{"pallas", "vesta", "bn254", "secp256k1"}

// Workload is one generated MSM input bound to an engine
type Workload interface {
	Curve() string
	Points() int
	Device() string
	Route() pippenger.Path

	// Run computes the MSM and returns the affine x coordinate of the result
	Run() (string, time.Duration, error)

	// Verify compares the engine result against the naive sum
	Verify() (bool, error)
}

type workload[A, P, S any] struct {
	curve   string
	arith   pippenger.Arithmetic[A, P, S]
	engine  *pippenger.Engine[A, P, S]
	dev     pippenger.Device[A, P, S]
	points  []A
	scalars []S
	equal   func(a, b *P) bool
	format  func(p *P) string
}

func (w *workload[A, P, S]) Curve() string { return w.curve }

func (w *workload[A, P, S]) Points() int { return len(w.points) }

func (w *workload[A, P, S]) Device() string {
	if w.dev == nil {
		return "none"
	}

	return w.dev.Name()
}

func (w *workload[A, P, S]) Route() pippenger.Path {
	return w.engine.Route(len(w.points))
}

func (w *workload[A, P, S]) Run() (string, time.Duration, error) {
	start := time.Now()

	r, err := w.engine.MultiScalarMult(w.points, w.scalars, true)
	if err != nil {
		return "", 0, err
	}

	return w.format(&r), time.Since(start), nil
}

func (w *workload[A, P, S]) Verify() (bool, error) {
	got, err := w.engine.MultiScalarMult(w.points, w.scalars, true)
	if err != nil {
		return false, err
	}

	want, err := batch.Naive(w.arith, w.points, w.scalars, true)
	if err != nil {
		return false, err
	}

	return w.equal(&got, &want), nil
}

// NewWorkload generates n point/scalar pairs for the named curve from seed
// and binds them to an engine configured by settings
func NewWorkload(curve string, n int, seed []byte, settings *Settings) (Workload, error) {
	pointSeed := append(append([]byte{}, seed...), 'P')
	scalarSeed := append(append([]byte{}, seed...), 'S')

	switch curve {
	case "pallas", "vesta":
		c := pasta.Pallas
		if curve == "vesta" {
			c = pasta.Vesta
		}

		var dev pippenger.Device[pasta.Affine, pasta.Jacobian, pasta.Element] = device.ForCurve(c)
		if settings.EmulateGPU {
			dev = device.NewContext[pasta.Affine, pasta.Jacobian, pasta.Element](
				device.NewEmulator[pasta.Affine, pasta.Jacobian, pasta.Element](c), settings.Logger)
		}

		return newWorkload[pasta.Affine, pasta.Jacobian, pasta.Element](curve, c, dev, settings,
			batch.Generate(pointSeed, n, c.PointsFromDigests),
			batch.Generate(scalarSeed, n, c.ScalarsFromDigests),
			c.Equal,
			func(p *pasta.Jacobian) string {
				a := c.ToAffine(p)
				if a.Infinity {
					return "infinity"
				}

				return c.BaseField().Text(&a.X)
			},
		)

	case "bn254":
		var dev pippenger.Device[gnark.G1Affine, gnark.G1Jac, fr.Element]
		if settings.EmulateGPU {
			dev = device.NewContext[gnark.G1Affine, gnark.G1Jac, fr.Element](
				device.NewEmulator[gnark.G1Affine, gnark.G1Jac, fr.Element](bn254.Curve), settings.Logger)
		}

		return newWorkload[gnark.G1Affine, gnark.G1Jac, fr.Element](curve, bn254.Curve, dev, settings,
			batch.Generate(pointSeed, n, bn254.PointsFromDigests),
			batch.Generate(scalarSeed, n, bn254.ScalarsFromDigests),
			bn254.Equal,
			func(p *gnark.G1Jac) string {
				if p.Z.IsZero() {
					return "infinity"
				}

				var a gnark.G1Affine
				a.FromJacobian(p)

				return "0x" + a.X.Text(16)
			},
		)

	case "secp256k1":
		var dev pippenger.Device[btcec.JacobianPoint, btcec.JacobianPoint, btcec.ModNScalar]
		if settings.EmulateGPU {
			dev = device.NewContext[btcec.JacobianPoint, btcec.JacobianPoint, btcec.ModNScalar](
				device.NewEmulator[btcec.JacobianPoint, btcec.JacobianPoint, btcec.ModNScalar](secp256k1.Curve),
				settings.Logger)
		}

		return newWorkload[btcec.JacobianPoint, btcec.JacobianPoint, btcec.ModNScalar](curve, secp256k1.Curve, dev, settings,
			batch.Generate(pointSeed, n, secp256k1.PointsFromDigests),
			batch.Generate(scalarSeed, n, secp256k1.ScalarsFromDigests),
			secp256k1.Equal,
			func(p *btcec.JacobianPoint) string {
				if secp256k1.Curve.IsInfinity(p) {
					return "infinity"
				}

				a := secp256k1.Normalize(p)

				return "0x" + a.X.String()
			},
		)
	}

	return nil, fmt.Errorf("unknown curve %q, expected one of %v", curve, Curves)
}

func newWorkload[A, P, S any](
	curve string,
	arith pippenger.Arithmetic[A, P, S],
	dev pippenger.Device[A, P, S],
	settings *Settings,
	points []A,
	scalars []S,
	equal func(a, b *P) bool,
	format func(p *P) string,
) (Workload, error) {
	engine, err := pippenger.New[A, P, S](arith, dev,
		pippenger.WithConfig(settings.Config),
		pippenger.WithLogger(settings.Logger),
	)
	if err != nil {
		return nil, err
	}

	return &workload[A, P, S]{
		curve:   curve,
		arith:   arith,
		engine:  engine,
		dev:     dev,
		points:  points,
		scalars: scalars,
		equal:   equal,
		format:  format,
	}, nil
}
