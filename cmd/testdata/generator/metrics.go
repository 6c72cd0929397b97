package generator

import (
	"fmt"
	"io"
	"math/rand/v2"
)

// MetricGenerator writes key:value samples, so digits and underscores do the
// separating.
type MetricGenerator struct {
	rand *rand.Rand
}

var metricKeys = []string{
	"temperature",
	"humidity",
	"pressure",
	"cpu_usage",
	"memory_usage",
	"disk_io",
	"network_latency",
	"response_time",
	"error_rate",
	"request_count",
}

func (g *MetricGenerator) Init(r *rand.Rand) {
	g.rand = r
}

func (g *MetricGenerator) WriteLine(w io.Writer) error {
	key := metricKeys[g.rand.IntN(len(metricKeys))]
	_, err := fmt.Fprintf(w, "%s:%.2f\n", key, g.rand.Float64()*100)
	return err
}

func (g *MetricGenerator) Description() string {
	return "Metric samples: key:value"
}

func (g *MetricGenerator) DefaultCount() int64 {
	return 1e5 // 100,000 lines
}
