package metrics

import (
	"net/http"
	"time"

	"paywall/contexts/finance-core/paywall-ledger/domain/entities"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder implements ports.Metrics on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	operations      *prometheus.CounterVec
	settled         *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	eventsPublished *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paywall_ledger_operations_total",
				Help: "Ledger operations by outcome",
			},
			[]string{"operation", "result"},
		),
		settled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paywall_ledger_settled_amount_total",
				Help: "Amount settled by purchases, by receiving party",
			},
			[]string{"party"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paywall_ledger_operation_duration_seconds",
				Help:    "Duration of ledger operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		eventsPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paywall_ledger_events_published_total",
				Help: "Outbox events relayed to the event bus",
			},
			[]string{"event_type"},
		),
	}
	r.registry.MustRegister(r.operations, r.settled, r.duration, r.eventsPublished)
	return r
}

func (r *Recorder) ObserveOperation(operation string, err error, elapsed time.Duration) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	r.operations.WithLabelValues(operation, result).Inc()
	r.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (r *Recorder) ObserveSettlement(split entities.Split) {
	r.settled.WithLabelValues("fee_recipient").Add(float64(split.FeeAmount))
	r.settled.WithLabelValues("creator").Add(float64(split.CreatorAmount))
}

func (r *Recorder) ObserveEventPublished(eventType string) {
	r.eventsPublished.WithLabelValues(eventType).Inc()
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
