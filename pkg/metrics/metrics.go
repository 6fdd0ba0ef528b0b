package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OrderMetrics owns its registry so several instances can coexist in one process.
type OrderMetrics struct {
	Registry *prometheus.Registry

	Checkouts          *prometheus.CounterVec
	Cancellations      *prometheus.CounterVec
	StatusChanges      *prometheus.CounterVec
	CheckoutDurationMS prometheus.Histogram
	OutboxPublished    *prometheus.CounterVec
}

func NewOrderMetrics(service string) *OrderMetrics {
	reg := prometheus.NewRegistry()

	m := &OrderMetrics{
		Registry: reg,
		Checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: service,
			Name:      "checkouts_total",
			Help:      "Checkout attempts by result kind.",
		}, []string{"result"}),
		Cancellations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: service,
			Name:      "cancellations_total",
			Help:      "Order cancellations by result kind.",
		}, []string{"result"}),
		StatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: service,
			Name:      "status_changes_total",
			Help:      "Fulfillment status transitions by target status.",
		}, []string{"status"}),
		CheckoutDurationMS: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "marketplace",
			Subsystem: service,
			Name:      "checkout_duration_ms",
			Help:      "Checkout latency in milliseconds, lock waits included.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}),
		OutboxPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: service,
			Name:      "outbox_events_total",
			Help:      "Outbox events handed to the broker, by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.Checkouts,
		m.Cancellations,
		m.StatusChanges,
		m.CheckoutDurationMS,
		m.OutboxPublished,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *OrderMetrics) ObserveCheckout(result string, started time.Time) {
	if m == nil {
		return
	}
	m.Checkouts.WithLabelValues(result).Inc()
	m.CheckoutDurationMS.Observe(float64(time.Since(started).Milliseconds()))
}

func (m *OrderMetrics) ObserveCancel(result string) {
	if m == nil {
		return
	}
	m.Cancellations.WithLabelValues(result).Inc()
}

func (m *OrderMetrics) ObserveStatusChange(status string) {
	if m == nil {
		return
	}
	m.StatusChanges.WithLabelValues(status).Inc()
}

func (m *OrderMetrics) ObserveOutbox(outcome string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.OutboxPublished.WithLabelValues(outcome).Add(float64(n))
}

func (m *OrderMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
