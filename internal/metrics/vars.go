package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	QuoteRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quoter_quote_requests_total",
		Help: "Quote requests handled, by trade side",
	}, []string{"side"})

	ValidationErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quoter_validation_errors_total",
		Help: "Validation failures surfaced on quotes, by kind",
	}, []string{"kind"})

	QuoteLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "quoter_quote_latency_seconds",
		Help:    "Time to snapshot state and validate a quote",
		Buckets: prometheus.DefBuckets,
	})

	ReserveRefresh = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "quoter_reserve_refresh_timestamp_seconds",
		Help: "Unix time of the last successful reserve refresh, by asset",
	}, []string{"asset"})

	FeedErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quoter_feed_errors_total",
		Help: "Reserve feed refresh failures",
	})
)

func init() {
	prometheus.MustRegister(
		QuoteRequests,
		ValidationErrors,
		QuoteLatency,
		ReserveRefresh,
		FeedErrors,
	)
}
