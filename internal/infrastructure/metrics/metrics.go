package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every Prometheus collector the service exports.
type Metrics struct {
	RecordsCreated prometheus.Counter
	RecordsDeleted prometheus.Counter

	TransfersCreated prometheus.Counter
	TransferDenials  prometheus.Counter
	TransferDuration prometheus.Histogram

	SummaryRequests  *prometheus.CounterVec
	SummaryCacheHits prometheus.Counter
	SummaryCacheMiss prometheus.Counter

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all collectors on the default registry.
func New() *Metrics {
	return &Metrics{
		RecordsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "financo_records_created_total",
			Help: "Total number of money-movement records created",
		}),
		RecordsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "financo_records_deleted_total",
			Help: "Total number of money-movement records deleted",
		}),

		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "financo_transfers_created_total",
			Help: "Total number of salary-funded transfers committed",
		}),
		TransferDenials: promauto.NewCounter(prometheus.CounterOpts{
			Name: "financo_transfer_denials_total",
			Help: "Total number of transfers denied by the balance guard",
		}),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "financo_transfer_duration_seconds",
			Help:    "Duration of guarded transfer transactions",
			Buckets: prometheus.DefBuckets,
		}),

		SummaryRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "financo_summary_requests_total",
				Help: "Total fund summary requests by fund type",
			},
			[]string{"scope"},
		),
		SummaryCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "financo_summary_cache_hits_total",
			Help: "Total summary requests served from cache",
		}),
		SummaryCacheMiss: promauto.NewCounter(prometheus.CounterOpts{
			Name: "financo_summary_cache_misses_total",
			Help: "Total summary requests that recomputed the aggregate",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "financo_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "financo_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "financo_rate_limit_hits_total",
				Help: "Total requests rejected by the rate limiter",
			},
			[]string{"ip"},
		),
	}
}
