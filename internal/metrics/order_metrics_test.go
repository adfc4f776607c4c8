package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestOrderMetrics_Counters(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := newOrderMetricsWithRegisterer(registry)

	m.OrderPlaced(50 * time.Millisecond)
	m.OrderPlaced(70 * time.Millisecond)
	m.OrderFailed()
	m.EventPublished()

	if got := testutil.ToFloat64(m.ordersPlaced); got != 2 {
		t.Fatalf("expected 2 placed orders, got %v", got)
	}
	if got := testutil.ToFloat64(m.ordersFailed); got != 1 {
		t.Fatalf("expected 1 failed order, got %v", got)
	}
	if got := testutil.ToFloat64(m.eventsPublished); got != 1 {
		t.Fatalf("expected 1 published event, got %v", got)
	}
}

func TestOrderMetrics_NilSafe(t *testing.T) {
	var m *OrderMetrics

	// Не должно паниковать.
	m.OrderPlaced(time.Millisecond)
	m.OrderFailed()
	m.OrderRetrieved(time.Millisecond)
	m.EventPublished()
}

func TestOrderMetrics_DoubleRegister(t *testing.T) {
	registry := prometheus.NewRegistry()

	first := newOrderMetricsWithRegisterer(registry)
	second := newOrderMetricsWithRegisterer(registry)

	first.OrderPlaced(time.Millisecond)
	second.OrderPlaced(time.Millisecond)

	// Повторная регистрация переиспользует существующие коллекторы.
	if got := testutil.ToFloat64(first.ordersPlaced); got != 2 {
		t.Fatalf("expected shared counter value 2, got %v", got)
	}
}

func TestHTTPMetrics_Register(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := newHTTPMetricsWithRegisterer(registry)

	m.requestsTotal.WithLabelValues("GET", "/order/{id}", "200").Inc()
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/order/{id}", "200")); got != 1 {
		t.Fatalf("expected 1 request, got %v", got)
	}
}
