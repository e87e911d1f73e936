// Package device provides the accelerator side of the MSM dispatcher: a
// process-wide context per curve that probes its device once and serializes
// launches, an in-process emulator of the grid kernel, and the cgo binding to
// the CUDA kernels when built with the cuda tag.
package device

import (
	"sync"

	"github.com/hashicorp/go-hclog"

	"pastamsm.mleku.dev/pippenger"
)

// Context wraps a device so that its availability is probed exactly once,
// however many goroutines ask, and so that each launch has the device to
// itself. A Context is itself a pippenger.Device.
type Context[A, P, S any] struct {
	dev    pippenger.Device[A, P, S]
	logger hclog.Logger

	once      sync.Once
	available bool

	mu sync.Mutex
}

// NewContext wraps dev. A nil logger discards output.
func NewContext[A, P, S any](dev pippenger.Device[A, P, S], logger hclog.Logger) *Context[A, P, S] {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Context[A, P, S]{dev: dev, logger: logger.Named("device")}
}

// Name returns the wrapped device's name.
func (c *Context[A, P, S]) Name() string {
	return c.dev.Name()
}

// Available reports the cached result of the one-time probe.
func (c *Context[A, P, S]) Available() bool {
	c.once.Do(func() {
		c.available = c.dev.Available()
		c.logger.Debug("device probed", "device", c.dev.Name(), "available", c.available)
	})
	return c.available
}

// Launch runs one kernel while holding the device exclusively.
func (c *Context[A, P, S]) Launch(out *P, points []A, scalars []S, montgomery bool) pippenger.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dev.Launch(out, points, scalars, montgomery)
}
