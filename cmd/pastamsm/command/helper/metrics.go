package helper

import (
	"fmt"
	"sort"
	"time"

	"github.com/armon/go-metrics"
)

// SetupMetrics installs an in-memory sink as the global metrics sink
func SetupMetrics() (*metrics.InmemSink, error) {
	inm := metrics.NewInmemSink(10*time.Second, time.Minute)

	metricsConf := metrics.DefaultConfig("pastamsm")
	metricsConf.EnableHostname = false
	metricsConf.EnableRuntimeMetrics = false

	if _, err := metrics.NewGlobal(metricsConf, inm); err != nil {
		return nil, err
	}

	return inm, nil
}

// MetricsSummary lists the counters, samples and gauges of the most recent
// interval
func MetricsSummary(inm *metrics.InmemSink) string {
	data := inm.Data()
	if len(data) == 0 {
		return FormatList(nil)
	}

	interval := data[len(data)-1]
	rows := []string{"Metric|Count|Sum"}

	for _, name := range sortedKeys(interval.Counters) {
		v := interval.Counters[name]
		rows = append(rows, fmt.Sprintf("%s|%d|%g", name, v.Count, v.Sum))
	}

	for _, name := range sortedKeys(interval.Samples) {
		v := interval.Samples[name]
		rows = append(rows, fmt.Sprintf("%s (ms)|%d|%.3f", name, v.Count, v.Sum))
	}

	for _, name := range sortedKeys(interval.Gauges) {
		rows = append(rows, fmt.Sprintf("%s|-|%g", name, interval.Gauges[name].Value))
	}

	return FormatList(rows)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
