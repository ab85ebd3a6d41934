package broadcast

import "github.com/prometheus/client_golang/prometheus"

// Metrics collects broadcast instrumentation.
type Metrics struct {
	Outcomes *prometheus.CounterVec
	BidRatio prometheus.Histogram
	Elapsed  prometheus.Histogram
}

// NewMetrics registers the broadcast collectors with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bolibazaar_broadcast_outcomes_total",
				Help: "Broadcast results by outcome.",
			},
			[]string{"outcome"},
		),
		BidRatio: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bolibazaar_bid_ratio",
				Help:    "Ratio of bid per-kg price to listing base price.",
				Buckets: prometheus.LinearBuckets(0.8, 0.05, 9),
			},
		),
		Elapsed: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bolibazaar_broadcast_seconds",
				Help:    "Simulated broadcast round-trip duration.",
				Buckets: prometheus.LinearBuckets(5, 2.5, 9),
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Outcomes, m.BidRatio, m.Elapsed)
	}
	return m
}
