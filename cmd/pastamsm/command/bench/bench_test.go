package bench

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pastamsm.mleku.dev/pippenger"
)

func TestBenchCommand(t *testing.T) {
	cmd := GetCommand()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"--curve", "vesta", "--npoints", "128", "--samples", "3", "--seed", "abcd"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "[MSM BENCHMARK]")
	assert.Contains(t, out.String(), "vesta")
	assert.Contains(t, out.String(), "[METRICS]")
	assert.Contains(t, out.String(), "msm.duration")
}

func TestBenchCommandNeedsSamples(t *testing.T) {
	cmd := GetCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--samples", "0"})

	assert.ErrorIs(t, cmd.Execute(), errNoSamples)
}

// fixedWorkload reports a constant shape and never runs
type fixedWorkload struct{}

func (fixedWorkload) Curve() string                       { return "pallas" }
func (fixedWorkload) Points() int                         { return 1000 }
func (fixedWorkload) Device() string                      { return "none" }
func (fixedWorkload) Route() pippenger.Path               { return pippenger.PathCPU }
func (fixedWorkload) Run() (string, time.Duration, error) { return "", 0, nil }
func (fixedWorkload) Verify() (bool, error)               { return true, nil }

func TestNewBenchResult(t *testing.T) {
	res := newBenchResult(fixedWorkload{}, "portable", []time.Duration{
		3 * time.Millisecond,
		time.Millisecond,
		2 * time.Millisecond,
	})

	assert.Equal(t, 3, res.Samples)
	assert.Equal(t, time.Millisecond, res.Min)
	assert.Equal(t, 2*time.Millisecond, res.Mean)
	assert.Equal(t, 3*time.Millisecond, res.Max)
	assert.InDelta(t, 500000, res.Throughput, 1e-6)
	assert.Equal(t, "cpu", res.Path)
	assert.NotContains(t, res.GetOutput(), "[METRICS]")
}
