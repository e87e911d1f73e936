// Package pastamsm computes multi-scalar multiplications over the Pallas and
// Vesta curves.
//
// Given points P_i and scalars k_i it returns the sum of k_i*P_i, using the
// bucket method on all CPU cores, or a GPU kernel for large inputs when one
// was built in and is present. Both paths produce the same point.
//
//	r, err := pastamsm.Pallas(points, scalars)
//	if err != nil {
//		return err
//	}
//	a := pasta.Pallas.ToAffine(&r)
package pastamsm

import (
	"github.com/hashicorp/go-hclog"

	"pastamsm.mleku.dev/device"
	"pastamsm.mleku.dev/pasta"
	"pastamsm.mleku.dev/pippenger"
)

// Engine is a reusable MSM engine over one Pasta curve.
type Engine = pippenger.Engine[pasta.Affine, pasta.Jacobian, pasta.Element]

// Device is an accelerator able to run a Pasta MSM.
type Device = pippenger.Device[pasta.Affine, pasta.Jacobian, pasta.Element]

var _ pippenger.Arithmetic[pasta.Affine, pasta.Jacobian, pasta.Element] = (*pasta.Curve)(nil)

// Option configures a call or an engine.
type Option func(*options)

type options struct {
	cfg        pippenger.Config
	logger     hclog.Logger
	dev        Device
	noGPU      bool
	montgomery bool
}

func defaultOptions() options {
	return options{
		cfg:        pippenger.DefaultConfig(),
		logger:     hclog.NewNullLogger(),
		montgomery: true,
	}
}

// WithConfig sets the engine tunables.
func WithConfig(cfg pippenger.Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(logger hclog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDevice replaces the curve's process-wide device context. The device is
// wrapped in its own device.Context, so it is probed once per engine and
// its launches never overlap.
func WithDevice(dev Device) Option {
	return func(o *options) {
		o.dev = dev
	}
}

// WithoutGPU keeps the call on the CPU even when a device is available.
func WithoutGPU() Option {
	return func(o *options) {
		o.noGPU = true
	}
}

// WithCanonicalScalars declares that the scalar limbs hold the integer itself
// rather than its Montgomery form.
func WithCanonicalScalars() Option {
	return func(o *options) {
		o.montgomery = false
	}
}

func resolve(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.noGPU {
		o.cfg.DisableGPU = true
	}
	return o
}

// NewEngine returns an engine over curve. Unless WithDevice is given it uses
// the curve's process-wide device context.
func NewEngine(curve *pasta.Curve, opts ...Option) (*Engine, error) {
	return newEngine(curve, resolve(opts))
}

func newEngine(curve *pasta.Curve, o options) (*Engine, error) {
	var dev Device
	switch d := o.dev.(type) {
	case nil:
		dev = device.ForCurve(curve)
	case *device.PastaContext:
		dev = d
	default:
		dev = device.NewContext(d, o.logger)
	}
	return pippenger.New[pasta.Affine, pasta.Jacobian, pasta.Element](curve, dev,
		pippenger.WithConfig(o.cfg),
		pippenger.WithLogger(o.logger),
	)
}

// MultiScalarMult returns the sum of scalars[i]*points[i] on curve. Scalars
// are taken in Montgomery form unless WithCanonicalScalars is given.
func MultiScalarMult(curve *pasta.Curve, points []pasta.Affine, scalars []pasta.Element, opts ...Option) (pasta.Jacobian, error) {
	o := resolve(opts)
	e, err := newEngine(curve, o)
	if err != nil {
		return pasta.Jacobian{}, err
	}
	return e.MultiScalarMult(points, scalars, o.montgomery)
}

// Pallas returns the sum of scalars[i]*points[i] on Pallas.
func Pallas(points []pasta.Affine, scalars []pasta.Element, opts ...Option) (pasta.Jacobian, error) {
	return MultiScalarMult(pasta.Pallas, points, scalars, opts...)
}

// Vesta returns the sum of scalars[i]*points[i] on Vesta.
func Vesta(points []pasta.Affine, scalars []pasta.Element, opts ...Option) (pasta.Jacobian, error) {
	return MultiScalarMult(pasta.Vesta, points, scalars, opts...)
}
