package device

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"pastamsm.mleku.dev/batch"
	"pastamsm.mleku.dev/pasta"
	"pastamsm.mleku.dev/pippenger"
)

type (
	pastaEngine   = pippenger.Engine[pasta.Affine, pasta.Jacobian, pasta.Element]
	pastaEmulator = Emulator[pasta.Affine, pasta.Jacobian, pasta.Element]
	pastaDevice   = pippenger.Device[pasta.Affine, pasta.Jacobian, pasta.Element]
)

func newPastaEngine(t *testing.T, c *pasta.Curve, dev pastaDevice, cfg pippenger.Config) *pastaEngine {
	t.Helper()
	e, err := pippenger.New[pasta.Affine, pasta.Jacobian, pasta.Element](c, dev, pippenger.WithConfig(cfg))
	require.NoError(t, err)
	return e
}

func pastaBatch(c *pasta.Curve, n int) ([]pasta.Affine, []pasta.Element) {
	points := batch.Generate([]byte(c.Name()+" points"), n, c.PointsFromDigests)
	scalars := batch.Generate([]byte(c.Name()+" scalars"), n, c.ScalarsFromDigests)
	return points, scalars
}

func TestBreakdown(t *testing.T) {
	rapid.Check(t, func(tt *rapid.T) {
		nbits := rapid.IntRange(1, 256).Draw(tt, "nbits")
		window := rapid.IntRange(1, pippenger.MaxWindowBits).Draw(tt, "window")
		sms := rapid.IntRange(1, 256).Draw(tt, "sms")

		nx, ny, wnd := breakdown(nbits, window, sms)
		require.GreaterOrEqual(tt, nx, 1)
		require.GreaterOrEqual(tt, ny, 1)
		require.GreaterOrEqual(tt, wnd, 1)
		require.LessOrEqual(tt, wnd, pippenger.MaxWindowBits)

		// rows tile the scalar exactly, with the top row 1..wnd bits wide
		top := nbits - wnd*(ny-1)
		require.GreaterOrEqual(tt, top, 1)
		require.LessOrEqual(tt, top, wnd)
	})
}

func TestLayoutGrid(t *testing.T) {
	grid := layoutGrid[pasta.Jacobian](1003, 255, 3, 4, 64)
	require.Len(t, grid, 12)

	covered := make(map[[2]int]int)
	for _, tl := range grid {
		for i := tl.x; i < tl.x+tl.dx; i++ {
			for b := tl.y; b < tl.y+tl.dy; b++ {
				covered[[2]int{i, b}]++
			}
		}
	}
	require.Len(t, covered, 1003*255)
	for _, n := range covered {
		require.Equal(t, 1, n)
	}

	// top row first
	require.Equal(t, 192, grid[0].y)
	require.Equal(t, 63, grid[0].dy)
	require.Equal(t, 0, grid[len(grid)-1].y)
}

func TestEmulatorMatchesCPU(t *testing.T) {
	cpuCfg := pippenger.DefaultConfig()
	cpuCfg.DisableGPU = true
	gpuCfg := pippenger.DefaultConfig()
	gpuCfg.GPUThreshold = 1

	for _, c := range []*pasta.Curve{pasta.Pallas, pasta.Vesta} {
		points, scalars := pastaBatch(c, 300)
		cpu := newPastaEngine(t, c, nil, cpuCfg)

		for _, n := range []int{1, 2, 31, 300} {
			want, err := cpu.MultiScalarMult(points[:n], scalars[:n], true)
			require.NoError(t, err)

			for _, sms := range []int{1, 3, 16, 80} {
				emu := NewEmulator[pasta.Affine, pasta.Jacobian, pasta.Element](c, WithSMs(sms))
				gpu := newPastaEngine(t, c, emu, gpuCfg)
				require.Equal(t, pippenger.PathGPU, gpu.Route(n))

				got, err := gpu.MultiScalarMult(points[:n], scalars[:n], true)
				require.NoError(t, err)
				require.True(t, c.Equal(&want, &got), "%s n=%d sms=%d", c.Name(), n, sms)
				require.EqualValues(t, 1, emu.Launches())
			}
		}
	}
}

func TestEmulatorAroundThreshold(t *testing.T) {
	c := pasta.Pallas
	points, scalars := pastaBatch(c, 64)

	emu := NewEmulator[pasta.Affine, pasta.Jacobian, pasta.Element](c, WithSMs(4), WithWindow(4))
	cfg := pippenger.DefaultConfig()
	cfg.GPUThreshold = 40
	e := newPastaEngine(t, c, NewContext[pasta.Affine, pasta.Jacobian, pasta.Element](emu, nil), cfg)

	naive := batch.Naive[pasta.Affine, pasta.Jacobian, pasta.Element]
	for _, n := range []int{39, 40, 64} {
		want, err := naive(c, points[:n], scalars[:n], true)
		require.NoError(t, err)
		got, err := e.MultiScalarMult(points[:n], scalars[:n], true)
		require.NoError(t, err)
		require.True(t, c.Equal(&want, &got), "n=%d", n)
	}
	// only the two calls at or above the threshold reached the device
	require.EqualValues(t, 2, emu.Launches())
}

func TestEmulatorCanonicalScalars(t *testing.T) {
	c := pasta.Vesta
	points, scalars := pastaBatch(c, 50)
	raw := make([]pasta.Element, len(scalars))
	for i := range scalars {
		raw[i] = pasta.Element(c.CanonicalScalar(&scalars[i]))
	}

	emu := NewEmulator[pasta.Affine, pasta.Jacobian, pasta.Element](c, WithSMs(8))
	var a, b pasta.Jacobian
	require.True(t, emu.Launch(&a, points, scalars, true).OK())
	require.True(t, emu.Launch(&b, points, raw, false).OK())
	require.True(t, c.Equal(&a, &b))

	var empty pasta.Jacobian
	require.True(t, emu.Launch(&empty, nil, nil, true).OK())
	require.True(t, c.IsInfinity(&empty))

	st := emu.Launch(&empty, points, scalars[:1], true)
	require.Equal(t, pippenger.StatusInvalidArgument, st.Code)
}

func TestDeviceFaultIsNotRetried(t *testing.T) {
	c := pasta.Pallas
	points, scalars := pastaBatch(c, 10)

	emu := NewEmulator[pasta.Affine, pasta.Jacobian, pasta.Element](c,
		WithName("faulty"),
		WithFault(pippenger.Status{Code: pippenger.StatusInternalDevice, Reason: "kernel aborted"}),
	)
	cfg := pippenger.DefaultConfig()
	cfg.GPUThreshold = 1
	e := newPastaEngine(t, c, emu, cfg)

	got, err := e.MultiScalarMult(points, scalars, true)
	var devErr *pippenger.DeviceError
	require.True(t, errors.As(err, &devErr))
	require.Equal(t, "faulty", devErr.Device)
	require.Equal(t, pippenger.StatusInternalDevice, devErr.Code)
	require.Equal(t, "kernel aborted", devErr.Reason)
	require.Equal(t, pasta.Jacobian{}, got)
	require.EqualValues(t, 1, emu.Launches())
}

// probeDevice counts availability probes and concurrent launches
type probeDevice struct {
	probes  atomic.Int64
	active  atomic.Int64
	overlap atomic.Bool
}

func (d *probeDevice) Name() string { return "probe" }

func (d *probeDevice) Available() bool {
	d.probes.Add(1)
	return true
}

func (d *probeDevice) Launch(out *pasta.Jacobian, _ []pasta.Affine, _ []pasta.Element, _ bool) pippenger.Status {
	if d.active.Add(1) > 1 {
		d.overlap.Store(true)
	}
	defer d.active.Add(-1)
	*out = pasta.Jacobian{}
	return pippenger.Status{}
}

func TestContextProbesOnceAndSerializes(t *testing.T) {
	dev := &probeDevice{}
	ctx := NewContext[pasta.Affine, pasta.Jacobian, pasta.Element](dev, nil)
	require.Equal(t, "probe", ctx.Name())

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, ctx.Available())
			var out pasta.Jacobian
			assert.True(t, ctx.Launch(&out, nil, nil, true).OK())
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, dev.probes.Load())
	require.False(t, dev.overlap.Load())
}

func TestProcessContexts(t *testing.T) {
	require.Same(t, Pallas(), Pallas())
	require.Same(t, Vesta(), Vesta())
	require.NotSame(t, Pallas(), Vesta())
	require.Same(t, Vesta(), ForCurve(pasta.Vesta))
	require.Equal(t, "cuda-pallas", Pallas().Name())
}

func TestPackAffine(t *testing.T) {
	g := pasta.Pallas.Generator()
	w := packAffine([]pasta.Affine{g, {Infinity: true}})
	require.Len(t, w, 2*affineWords)
	require.Equal(t, g.X[:], w[0:4])
	require.Equal(t, g.Y[:], w[4:8])
	require.Equal(t, make([]uint64, affineWords), w[8:16])

	var res [jacobianWords]uint64
	j := pasta.Pallas.FromAffine(&g)
	copy(res[0:4], j.X[:])
	copy(res[4:8], j.Y[:])
	copy(res[8:12], j.Z[:])
	require.Equal(t, j, unpackJacobian(&res))
}
