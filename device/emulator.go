package device

import (
	"fmt"
	"math/bits"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"pastamsm.mleku.dev/pippenger"
)

// EmulatorOption configures an Emulator.
type EmulatorOption func(*emulatorSettings)

type emulatorSettings struct {
	name   string
	sms    int
	window int
	fault  *pippenger.Status
}

// WithSMs sets the number of simulated multiprocessors.
func WithSMs(n int) EmulatorOption {
	return func(s *emulatorSettings) {
		if n > 0 {
			s.sms = n
		}
	}
}

// WithWindow fixes the window the grid is derived from; zero picks it from
// the input size.
func WithWindow(c int) EmulatorOption {
	return func(s *emulatorSettings) {
		s.window = c
	}
}

// WithName overrides the reported device name.
func WithName(name string) EmulatorOption {
	return func(s *emulatorSettings) {
		s.name = name
	}
}

// WithFault makes every launch fail with status.
func WithFault(status pippenger.Status) EmulatorOption {
	return func(s *emulatorSettings) {
		s.fault = &status
	}
}

// Emulator is a device that runs the grid kernel on goroutines. The bit
// range of the scalars is cut into rows and the points into columns; every
// (column, row) tile integrates its own buckets on some simulated SM, and the
// launching goroutine folds finished rows top-down as they complete.
//
// It stands in for real hardware on hosts without one, and lets tests drive
// the device path, including device faults, end to end.
type Emulator[A, P, S any] struct {
	arith    pippenger.Arithmetic[A, P, S]
	s        emulatorSettings
	launches atomic.Int64
}

// NewEmulator returns an emulator computing with arith.
func NewEmulator[A, P, S any](arith pippenger.Arithmetic[A, P, S], opts ...EmulatorOption) *Emulator[A, P, S] {
	s := emulatorSettings{name: "emulator", sms: runtime.NumCPU()}
	for _, opt := range opts {
		opt(&s)
	}
	return &Emulator[A, P, S]{arith: arith, s: s}
}

// Name returns the device name.
func (e *Emulator[A, P, S]) Name() string { return e.s.name }

// Available always reports true.
func (e *Emulator[A, P, S]) Available() bool { return true }

// Launches returns the number of kernels run so far.
func (e *Emulator[A, P, S]) Launches() int64 { return e.launches.Load() }

// tile is one (column, row) unit of kernel work
type tile[P any] struct {
	x, dx int // point range
	y, dy int // bit range
	p     P
}

// Launch computes the MSM on the simulated grid.
func (e *Emulator[A, P, S]) Launch(out *P, points []A, scalars []S, montgomery bool) pippenger.Status {
	e.launches.Add(1)
	if e.s.fault != nil {
		return *e.s.fault
	}
	if len(points) != len(scalars) {
		return pippenger.Status{
			Code:   pippenger.StatusInvalidArgument,
			Reason: fmt.Sprintf("%d points, %d scalars", len(points), len(scalars)),
		}
	}
	n := len(points)
	if n == 0 {
		e.arith.SetInfinity(out)
		return pippenger.Status{}
	}

	k := make([][4]uint64, n)
	for i := range scalars {
		e.arith.Canonical(&k[i], &scalars[i], montgomery)
	}

	nbits := e.arith.ScalarBits()
	window := e.s.window
	if window <= 0 {
		window = pippenger.WindowSize(n)
	}
	nx, ny, wnd := breakdown(nbits, window, e.s.sms)
	nx = min(nx, n)

	grid := layoutGrid[P](n, nbits, nx, ny, wnd)

	rowDone := make([]atomic.Int32, ny)
	finished := make(chan int, ny)
	var next atomic.Int64
	var g errgroup.Group
	for sm := min(e.s.sms, len(grid)); sm > 0; sm-- {
		g.Go(func() error {
			buckets := make([]P, 1<<uint(wnd)-1)
			for {
				work := int(next.Add(1)) - 1
				if work >= len(grid) {
					return nil
				}
				t := &grid[work]
				e.integrate(t, points, k, buckets[:1<<uint(t.dy)-1])
				row := t.y / wnd
				if int(rowDone[row].Add(1)) == nx {
					finished <- row
				}
			}
		})
	}

	var r P
	e.arith.SetInfinity(&r)
	done := make([]bool, ny)
	top := ny - 1
	for received := 0; received < ny; received++ {
		done[<-finished] = true
		for top >= 0 && done[top] {
			// rows are laid out top-down, nx tiles each
			first := (ny - 1 - top) * nx
			for i := first; i < first+nx; i++ {
				e.arith.Add(&r, &grid[i].p)
			}
			if top > 0 {
				for i := 0; i < wnd; i++ {
					e.arith.Double(&r)
				}
			}
			top--
		}
	}
	_ = g.Wait()

	*out = r
	return pippenger.Status{}
}

// integrate accumulates the points of one tile into buckets by their digit in
// the tile's bit range, then reduces the buckets into the tile's sum.
func (e *Emulator[A, P, S]) integrate(t *tile[P], points []A, k [][4]uint64, buckets []P) {
	for i := range buckets {
		e.arith.SetInfinity(&buckets[i])
	}
	for i := t.x; i < t.x+t.dx; i++ {
		if d := pippenger.Digit(&k[i], t.y, t.dy); d != 0 {
			e.arith.AddAffine(&buckets[d-1], &points[i])
		}
	}
	t.p = pippenger.ReduceBuckets(e.arith, buckets)
}

// layoutGrid cuts n points and nbits scalar bits into nx columns and ny rows.
// The top row comes first and holds whatever bits remain above the full
// rows; the last column takes the points left over by the even split.
func layoutGrid[P any](n, nbits, nx, ny, wnd int) []tile[P] {
	grid := make([]tile[P], 0, nx*ny)
	dx := n / nx
	for y := wnd * (ny - 1); y >= 0; y -= wnd {
		dy := wnd
		if y == wnd*(ny-1) {
			dy = nbits - y
		}
		for col := 0; col < nx; col++ {
			t := tile[P]{x: col * dx, dx: dx, y: y, dy: dy}
			if col == nx-1 {
				t.dx = n - t.x
			}
			grid = append(grid, t)
		}
	}
	return grid
}

// breakdown chooses the grid shape for nbits-bit scalars, a nominal window
// and sms multiprocessors. With few SMs each row spans every point; with
// many, the points are also split into columns so that there are at least
// as many tiles as SMs, narrowing the window as columns are added.
func breakdown(nbits, window, sms int) (nx, ny, wnd int) {
	if nbits > window*sms {
		nx = 1
		wnd = window - bits.Len(uint(sms/4))
	} else {
		nx = 2
		wnd = window - 2
		for (nbits/max(wnd, 1)+1)*nx < sms {
			nx++
			wnd = window - bits.Len(uint(3*nx/2))
		}
		nx--
		wnd = window - bits.Len(uint(3*nx/2))
	}
	wnd = max(wnd, 1)
	ny = nbits/wnd + 1
	wnd = min(nbits/ny+1, pippenger.MaxWindowBits)
	// every row but the top one is exactly wnd bits wide
	ny = (nbits + wnd - 1) / wnd
	return nx, ny, wnd
}
