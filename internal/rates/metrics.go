package rates

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tasasbot_rate_cache_hits_total",
		Help: "Rate table lookups served without a refresh",
	})

	refreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tasasbot_rate_refresh_total",
			Help: "Rate table refresh attempts by result",
		},
		[]string{"result"},
	)

	refreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tasasbot_rate_refresh_duration_seconds",
		Help:    "Time spent fetching and building the rate table",
		Buckets: prometheus.DefBuckets,
	})

	staleServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tasasbot_rate_stale_served_total",
		Help: "Lookups answered from an expired table after a failed refresh",
	})

	tableRoutes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tasasbot_rate_table_routes",
		Help: "Number of origin/destination pairs in the current table",
	})
)
