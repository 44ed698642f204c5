package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	StoreReads         *prometheus.CounterVec
	StoreWrites        *prometheus.CounterVec
	CorruptReads       *prometheus.CounterVec
	UpdateConflicts    *prometheus.CounterVec
	CounterAdjustments *prometheus.CounterVec
	DomainRejections   *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
}

var (
	once   sync.Once
	global *Metrics
)

func Global() *Metrics {
	once.Do(func() {
		global = &Metrics{
			StoreReads: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "stratdesk",
				Name:      "store_reads_total",
				Help:      "Whole-collection reads by collection key",
			}, []string{"collection"}),
			StoreWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "stratdesk",
				Name:      "store_writes_total",
				Help:      "Whole-collection writes by collection key",
			}, []string{"collection"}),
			CorruptReads: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "stratdesk",
				Name:      "store_corrupt_reads_total",
				Help:      "Collection slots that failed to decode",
			}, []string{"collection"}),
			UpdateConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "stratdesk",
				Name:      "kv_update_conflicts_total",
				Help:      "Optimistic update retries caused by concurrent writers",
			}, []string{"backend"}),
			CounterAdjustments: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "stratdesk",
				Name:      "counter_adjustments_total",
				Help:      "Denormalized parent counter adjustments",
			}, []string{"collection", "field"}),
			DomainRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "stratdesk",
				Name:      "domain_rejections_total",
				Help:      "Operations rejected by an integrity guard",
			}, []string{"reason"}),
			HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "stratdesk",
				Name:      "http_requests_total",
				Help:      "REST requests by route pattern and status code",
			}, []string{"method", "route", "status"}),
		}
		prometheus.MustRegister(
			global.StoreReads,
			global.StoreWrites,
			global.CorruptReads,
			global.UpdateConflicts,
			global.CounterAdjustments,
			global.DomainRejections,
			global.HTTPRequests,
		)
	})
	return global
}
