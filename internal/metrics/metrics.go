// Package metrics exposes solver counters on a private prometheus registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/wavecollapse/wfc"
)

// Label name and values of wfc_solves_total.
const (
	// OutcomeLabel partitions solves by final status.
	OutcomeLabel = "outcome"
	// Succeeded counts solves that reached wfc.Success.
	Succeeded = "success"
	// Failed counts solves that ended in wfc.Contradiction.
	Failed = "contradiction"
	// Unfinished counts solves recorded before reaching a terminal status.
	Unfinished = "in_progress"
)

// Recorder collects per-solve metrics. It is safe for concurrent use.
type Recorder struct {
	reg          *prometheus.Registry
	solves       *prometheus.CounterVec
	bans         prometheus.Histogram
	observations prometheus.Histogram
	patterns     prometheus.Gauge
}

// New registers a fresh set of collectors on their own registry.
func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wfc_solves_total",
			Help: "Number of solves by outcome",
		}, []string{OutcomeLabel}),
		bans: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wfc_bans",
			Help:    "Bans performed per solve",
			Buckets: prometheus.ExponentialBuckets(16, 4, 8),
		}),
		observations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wfc_observations",
			Help:    "Cells collapsed by observation per solve",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		patterns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wfc_patterns",
			Help: "Distinct patterns in the most recently compiled ruleset",
		}),
	}
	r.reg.MustRegister(r.solves, r.bans, r.observations, r.patterns)

	return r
}

// ObserveSolve records one finished (or abandoned) solve.
func (r *Recorder) ObserveSolve(res wfc.Result, stats wfc.Stats) {
	outcome := Unfinished
	switch res.Status {
	case wfc.Success:
		outcome = Succeeded
	case wfc.Contradiction:
		outcome = Failed
	}
	r.solves.WithLabelValues(outcome).Inc()
	r.bans.Observe(float64(stats.Bans))
	r.observations.Observe(float64(stats.Observations))
}

// SetPatterns records the size of a compiled ruleset.
func (r *Recorder) SetPatterns(t int) {
	r.patterns.Set(float64(t))
}

// Solves returns the solve counter for one outcome label.
func (r *Recorder) Solves(outcome string) prometheus.Counter {
	return r.solves.WithLabelValues(outcome)
}

// Registry returns the underlying registry, e.g. for promhttp.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

// WriteFile writes all metrics in the text exposition format.
func (r *Recorder) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
