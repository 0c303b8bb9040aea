package obs

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the set of counters/histograms the sieve packages update.
// It is always backed by a caller-supplied registry (NewMetrics with a
// nil registerer uses a private, unregistered prometheus.Registry) so
// importing this package never touches the process-global registry.
type Metrics struct {
	SegmentsProcessed prometheus.Counter
	SieveDuration     prometheus.Histogram
	PrimesFound       prometheus.Counter
}

// NewMetrics registers and returns a Metrics bound to reg. If reg is
// nil, a fresh unregistered *prometheus.Registry backs the metrics
// instead, so they are fully functional but invisible to any global
// /metrics endpoint.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		SegmentsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "primesieve_segments_processed_total",
			Help: "Number of sieve segments fully processed.",
		}),
		SieveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "primesieve_sieve_duration_seconds",
			Help:    "Wall-clock duration of a single sieve run.",
			Buckets: prometheus.DefBuckets,
		}),
		PrimesFound: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "primesieve_primes_found_total",
			Help: "Number of primes reconstructed from sieve segments.",
		}),
	}
	reg.MustRegister(m.SegmentsProcessed, m.SieveDuration, m.PrimesFound)
	return m
}
