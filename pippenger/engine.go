package pippenger

import (
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Option configures an Engine.
type Option func(*settings)

type settings struct {
	cfg    Config
	logger hclog.Logger
}

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		s.cfg = cfg
	}
}

// WithLogger sets the logger; the engine logs under the "msm" name.
func WithLogger(logger hclog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Engine computes multi-scalar multiplications over one group. It holds no
// per-call state and is safe for concurrent use.
type Engine[A, P, S any] struct {
	arith  Arithmetic[A, P, S]
	cfg    Config
	logger hclog.Logger
	cpu    backend[A, P, S]
	gpu    backend[A, P, S]
	dev    Device[A, P, S]
}

// New returns an engine over arith. dev may be nil when no accelerator is
// wanted; an unavailable device is never an error.
func New[A, P, S any](arith Arithmetic[A, P, S], dev Device[A, P, S], opts ...Option) (*Engine[A, P, S], error) {
	if arith == nil {
		return nil, errors.New("msm: nil arithmetic")
	}
	s := settings{cfg: DefaultConfig(), logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	if bits := arith.ScalarBits(); bits < 1 || bits > 256 {
		return nil, fmt.Errorf("%w: scalar width %d outside [1, 256]", ErrInvalidConfig, bits)
	}

	logger := s.logger.Named("msm")
	e := &Engine[A, P, S]{
		arith:  arith,
		cfg:    s.cfg,
		logger: logger,
		cpu:    &cpuBackend[A, P, S]{arith: arith, cfg: s.cfg, logger: logger},
		dev:    dev,
	}
	if dev != nil {
		e.gpu = &gpuBackend[A, P, S]{dev: dev, logger: logger}
	}
	return e, nil
}

// Config returns the configuration the engine runs with.
func (e *Engine[A, P, S]) Config() Config {
	return e.cfg
}

// Route reports which backend a call with n pairs would run on. The device
// is used only when it is present, enabled, available and n reaches the
// threshold; every other case is ordinary CPU routing.
func (e *Engine[A, P, S]) Route(n int) Path {
	return e.route(n).path()
}

func (e *Engine[A, P, S]) route(n int) backend[A, P, S] {
	switch {
	case e.gpu == nil, e.cfg.DisableGPU, n < e.cfg.GPUThreshold:
		return e.cpu
	case !e.dev.Available():
		return e.cpu
	}
	return e.gpu
}

// MultiScalarMult returns the sum of scalars[i]*points[i]. With montgomery
// set the scalars are converted out of Montgomery form first.
//
// Mismatched lengths fail with ErrLengthMismatch before any arithmetic. A
// device failure is returned as a *DeviceError and is not retried on the CPU.
// On error the returned point is the zero value and must not be used.
func (e *Engine[A, P, S]) MultiScalarMult(points []A, scalars []S, montgomery bool) (P, error) {
	var zero P
	if len(points) != len(scalars) {
		return zero, fmt.Errorf("%w: %d points, %d scalars", ErrLengthMismatch, len(points), len(scalars))
	}

	n := len(points)
	if n == 0 {
		var r P
		e.arith.SetInfinity(&r)
		return r, nil
	}

	start := time.Now()
	b := e.route(n)
	if e.logger.IsDebug() {
		e.logger.Debug("dispatch", "points", n, "path", b.path().String())
	}

	r, err := b.multiScalarMult(points, scalars, montgomery)
	if err != nil {
		return zero, err
	}
	observeCall(b.path(), n, start)
	return r, nil
}
