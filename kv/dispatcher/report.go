package dispatcher

import (
	"time"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"
)

// Report summarizes a batch run. Latencies are in milliseconds.
type Report struct {
	Ops       int
	Failures  int
	Errors    []error
	latencies []float64
}

func newReport() *Report {
	return &Report{}
}

func (r *Report) observe(op func() error) {
	start := time.Now()
	err := op()
	r.latencies = append(r.latencies, since(start))
	r.Ops++
	if err != nil {
		r.Failures++
		r.Errors = append(r.Errors, err)
	}
}

// Mean returns the mean latency, or 0 for an empty report.
func (r *Report) Mean() float64 {
	mean, err := stats.Mean(r.latencies)
	if err != nil {
		return 0
	}
	return mean
}

// P99 returns the 99th percentile latency, or 0 for an empty report.
func (r *Report) P99() float64 {
	p, err := stats.Percentile(r.latencies, 99)
	if err != nil {
		return 0
	}
	return p
}

func (r *Report) Fields() []zap.Field {
	return []zap.Field{
		zap.Int("ops", r.Ops),
		zap.Int("failures", r.Failures),
		zap.Float64("mean-ms", r.Mean()),
		zap.Float64("p99-ms", r.P99()),
	}
}
