package pippenger

import (
	"fmt"
	"runtime"
)

const (
	// DefaultStride is the number of pairs a worker claims at a time.
	DefaultStride = 1024
	// DefaultMinParallel is the input size below which the engine stays on
	// the calling goroutine.
	DefaultMinParallel = 32
	// DefaultGPUThreshold is the input size from which an available device
	// is preferred over the CPU path.
	DefaultGPUThreshold = 1 << 16
	// DefaultTableMemory bounds the bucket tables of one call to 1 GiB.
	DefaultTableMemory = 1 << 30
)

// Config holds the tunables of an Engine. None of them affect the result,
// only how it is computed.
type Config struct {
	// WindowBits fixes the digit width; zero selects WindowSize(n) per call.
	// On the parallel path every worker holds windows*(2^c-1) accumulators,
	// so memory grows with both c and Workers; TableMemory caps the total.
	WindowBits int `yaml:"window_bits"`
	// Workers caps the number of goroutines; zero means runtime.NumCPU().
	Workers int `yaml:"workers"`
	// Stride is the number of pairs claimed per counter increment.
	Stride int `yaml:"stride"`
	// MinParallel is the smallest input spread across workers.
	MinParallel int `yaml:"min_parallel"`
	// SignedDigits recodes digits into (-2^(c-1), 2^(c-1)], halving the
	// bucket tables at the cost of one extra window.
	SignedDigits bool `yaml:"signed_digits"`
	// GPUThreshold is the smallest input sent to the device.
	GPUThreshold int `yaml:"gpu_threshold"`
	// DisableGPU keeps every call on the CPU path.
	DisableGPU bool `yaml:"disable_gpu"`
	// TableMemory is the most bytes the bucket tables of one call may take.
	// The window is narrowed until the tables fit; zero means no bound.
	TableMemory int64 `yaml:"table_memory"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Stride:       DefaultStride,
		MinParallel:  DefaultMinParallel,
		GPUThreshold: DefaultGPUThreshold,
		TableMemory:  DefaultTableMemory,
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.WindowBits < 0 || c.WindowBits > MaxWindowBits:
		return fmt.Errorf("%w: window_bits %d outside [0, %d]", ErrInvalidConfig, c.WindowBits, MaxWindowBits)
	case c.Workers < 0:
		return fmt.Errorf("%w: negative workers %d", ErrInvalidConfig, c.Workers)
	case c.Stride < 1:
		return fmt.Errorf("%w: stride must be positive, got %d", ErrInvalidConfig, c.Stride)
	case c.MinParallel < 0:
		return fmt.Errorf("%w: negative min_parallel %d", ErrInvalidConfig, c.MinParallel)
	case c.GPUThreshold < 0:
		return fmt.Errorf("%w: negative gpu_threshold %d", ErrInvalidConfig, c.GPUThreshold)
	case c.TableMemory < 0:
		return fmt.Errorf("%w: negative table_memory %d", ErrInvalidConfig, c.TableMemory)
	}
	return nil
}

// workers resolves the worker count
func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
