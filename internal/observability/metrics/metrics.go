package metrics

import "github.com/prometheus/client_golang/prometheus"

// APIMetrics exposes counters/histograms for calls to the appointment API.
type APIMetrics struct {
	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	m := &APIMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total outbound appointment API requests",
		}, []string{"operation", "outcome"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "frontdesk",
			Subsystem: "api",
			Name:      "request_latency_seconds",
			Help:      "Latency of outbound appointment API requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestLatency)
	return m
}

func (m *APIMetrics) ObserveRequest(operation, outcome string) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(operation, outcome).Inc()
}

func (m *APIMetrics) ObserveLatency(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.requestLatency.WithLabelValues(operation).Observe(seconds)
}

// TransitionMetrics exposes counters for appointment status transitions and
// bulk runs triggered from the staff dashboard.
type TransitionMetrics struct {
	transitionsTotal *prometheus.CounterVec
	bulkItemsTotal   *prometheus.CounterVec
}

func NewTransitionMetrics(reg prometheus.Registerer) *TransitionMetrics {
	m := &TransitionMetrics{
		transitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "appointments",
			Name:      "transitions_total",
			Help:      "Total status transition attempts",
		}, []string{"action", "outcome"}),
		bulkItemsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "bulk",
			Name:      "items_total",
			Help:      "Total items processed by the bulk action runner",
		}, []string{"action", "outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.transitionsTotal, m.bulkItemsTotal)
	return m
}

func (m *TransitionMetrics) ObserveTransition(action, outcome string) {
	if m == nil {
		return
	}
	m.transitionsTotal.WithLabelValues(action, outcome).Inc()
}

func (m *TransitionMetrics) ObserveBulkItem(action, outcome string) {
	if m == nil {
		return
	}
	m.bulkItemsTotal.WithLabelValues(action, outcome).Inc()
}
