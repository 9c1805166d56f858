package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestAPIMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAPIMetrics(reg)
	m.ObserveRequest("list_services", "success")
	m.ObserveRequest("create_appointment", "error")
	m.ObserveLatency("list_services", 0.05)
}

func TestTransitionMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewTransitionMetrics(reg)
	m.ObserveTransition("check_in", "success")
	m.ObserveBulkItem("check_in", "error")
}

func TestMetricsNilSafe(t *testing.T) {
	var api *APIMetrics
	api.ObserveRequest("get_appointment", "success")
	api.ObserveLatency("get_appointment", 0.1)

	var tr *TransitionMetrics
	tr.ObserveTransition("cancel", "success")
	tr.ObserveBulkItem("check_in", "success")
}
