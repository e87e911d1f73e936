package pippenger

import (
	"time"

	"github.com/armon/go-metrics"
)

// Metric keys emitted by the engine through the global go-metrics sink.
var (
	metricCalls        = []string{"msm", "calls"}
	metricDuration     = []string{"msm", "duration"}
	metricPoints       = []string{"msm", "points"}
	metricWindowBits   = []string{"msm", "window_bits"}
	metricDeviceErrors = []string{"msm", "device_errors"}
)

func observeCall(path Path, n int, start time.Time) {
	metrics.IncrCounterWithLabels(metricCalls, 1, []metrics.Label{{Name: "path", Value: path.String()}})
	metrics.IncrCounter(metricPoints, float32(n))
	metrics.MeasureSince(metricDuration, start)
}

func observeWindow(c int) {
	metrics.SetGauge(metricWindowBits, float32(c))
}

func observeDeviceError() {
	metrics.IncrCounter(metricDeviceErrors, 1)
}
