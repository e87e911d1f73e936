package bench

import (
	"bytes"
	"fmt"
	"time"

	"pastamsm.mleku.dev/cmd/pastamsm/command/helper"
)

type BenchResult struct {
	Curve      string        `json:"curve"`
	Points     int           `json:"points"`
	Path       string        `json:"path"`
	Device     string        `json:"device"`
	ISA        string        `json:"isa"`
	Samples    int           `json:"samples"`
	Min        time.Duration `json:"min"`
	Mean       time.Duration `json:"mean"`
	Max        time.Duration `json:"max"`
	Throughput float64       `json:"points_per_second"`
	Metrics    string        `json:"-"`
}

func newBenchResult(w helper.Workload, isa string, timings []time.Duration) *BenchResult {
	res := &BenchResult{
		Curve:   w.Curve(),
		Points:  w.Points(),
		Path:    w.Route().String(),
		Device:  w.Device(),
		ISA:     isa,
		Samples: len(timings),
		Min:     timings[0],
		Max:     timings[0],
	}

	var total time.Duration

	for _, d := range timings {
		total += d

		if d < res.Min {
			res.Min = d
		}

		if d > res.Max {
			res.Max = d
		}
	}

	res.Mean = total / time.Duration(len(timings))

	if res.Mean > 0 {
		res.Throughput = float64(res.Points) / res.Mean.Seconds()
	}

	return res
}

func (r *BenchResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[MSM BENCHMARK]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Curve|%s", r.Curve),
		fmt.Sprintf("Points|%d", r.Points),
		fmt.Sprintf("Path|%s", r.Path),
		fmt.Sprintf("Device|%s", r.Device),
		fmt.Sprintf("Field arithmetic|%s", r.ISA),
		fmt.Sprintf("Samples|%d", r.Samples),
		fmt.Sprintf("Min|%s", r.Min),
		fmt.Sprintf("Mean|%s", r.Mean),
		fmt.Sprintf("Max|%s", r.Max),
		fmt.Sprintf("Throughput|%.0f points/s", r.Throughput),
	}))

	if r.Metrics != "" {
		buffer.WriteString("\n\n[METRICS]\n")
		buffer.WriteString(r.Metrics)
	}

	buffer.WriteString("\n")

	return buffer.String()
}
