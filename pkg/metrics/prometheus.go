package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	HoldsCreated          prometheus.Counter
	ReservationsConfirmed prometheus.Counter
	CheckoutsSettled      *prometheus.CounterVec
	ExpiredHoldsReaped    prometheus.Counter
	SettlementTime        prometheus.Histogram
	ErrorsCount           *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		HoldsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "holds_created_total",
			Help:      "The total number of room holds created",
		}),
		ReservationsConfirmed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_confirmed_total",
			Help:      "The total number of reservations confirmed",
		}),
		CheckoutsSettled: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_settled_total",
			Help:      "The total number of settled checkouts",
		}, []string{"scenario"}),
		ExpiredHoldsReaped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expired_holds_reaped_total",
			Help:      "The total number of expired holds released by the reaper",
		}),
		SettlementTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_time_seconds",
			Help:      "Time taken to compute checkout settlements",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
