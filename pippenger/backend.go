package pippenger

import (
	"unsafe"

	"github.com/hashicorp/go-hclog"
)

// Path names the backend a call was routed to.
type Path int

const (
	PathCPU Path = iota
	PathGPU
)

func (p Path) String() string {
	if p == PathGPU {
		return "gpu"
	}
	return "cpu"
}

// backend is one implementation of the MSM contract. The dispatcher picks
// one per call; callers never see them directly.
type backend[A, P, S any] interface {
	path() Path
	multiScalarMult(points []A, scalars []S, montgomery bool) (P, error)
}

// cpuBackend runs the bucket method on goroutines of this process
type cpuBackend[A, P, S any] struct {
	arith  Arithmetic[A, P, S]
	cfg    Config
	logger hclog.Logger
}

func (b *cpuBackend[A, P, S]) path() Path { return PathCPU }

func (b *cpuBackend[A, P, S]) multiScalarMult(points []A, scalars []S, montgomery bool) (P, error) {
	n := len(points)
	workers := b.cfg.workers()
	parallelRun := workers >= 2 && n >= b.cfg.MinParallel

	c := b.cfg.WindowBits
	if c == 0 {
		// each worker sees about n/workers points, so size its tables for that
		share := n
		if parallelRun {
			share = (n + workers - 1) / workers
		}
		c = WindowSize(share)
	}
	tables := 1
	if parallelRun {
		tables = min(workers, (n+b.cfg.Stride-1)/b.cfg.Stride)
	}
	var zero P
	l := fitTables(b.arith.ScalarBits(), c, b.cfg.SignedDigits, tables, parallelRun, unsafe.Sizeof(zero), b.cfg.TableMemory)
	observeWindow(l.c)

	if b.logger.IsDebug() {
		b.logger.Debug("bucket layout",
			"points", n,
			"window_bits", l.c,
			"windows", l.windows,
			"buckets", l.buckets,
			"signed", l.signed,
			"parallel", parallelRun,
			"workers", workers,
			"table_bytes", l.tableBytes(tables, parallelRun, unsafe.Sizeof(zero)),
		)
	}

	k := canonicalize(b.arith, scalars, montgomery, workers, b.cfg.MinParallel)
	if !parallelRun {
		return serial(b.arith, l, points, k), nil
	}
	return parallel(b.arith, l, points, k, workers, b.cfg.Stride), nil
}

// gpuBackend hands the whole call to a device
type gpuBackend[A, P, S any] struct {
	dev    Device[A, P, S]
	logger hclog.Logger
}

func (b *gpuBackend[A, P, S]) path() Path { return PathGPU }

func (b *gpuBackend[A, P, S]) multiScalarMult(points []A, scalars []S, montgomery bool) (P, error) {
	var out P
	status := b.dev.Launch(&out, points, scalars, montgomery)
	if !status.OK() {
		observeDeviceError()
		b.logger.Error("device launch failed",
			"device", b.dev.Name(),
			"code", int(status.Code),
			"reason", status.Reason,
		)
		var zero P
		return zero, &DeviceError{Device: b.dev.Name(), Code: status.Code, Reason: status.Reason}
	}
	return out, nil
}
