package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics содержит метрики основного потока заказов.
// Nil-экземпляр безопасен: все методы в этом случае ничего не делают.
type OrderMetrics struct {
	// Счётчики операций
	ordersPlaced prometheus.Counter
	ordersFailed prometheus.Counter

	// Гистограммы времени выполнения
	placeDuration    prometheus.Histogram
	retrieveDuration prometheus.Histogram

	// Счётчик опубликованных событий
	eventsPublished prometheus.Counter
}

// NewOrderMetrics создаёт метрики заказов в default-реестре.
func NewOrderMetrics() *OrderMetrics {
	return newOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersPlaced: registerCounter(registerer, prometheus.CounterOpts{
			Name: "ecommerce_orders_placed_total",
			Help: "Total number of orders placed successfully",
		}),
		ordersFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "ecommerce_orders_failed_total",
			Help: "Total number of order placements that failed",
		}),
		placeDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "ecommerce_order_place_duration_seconds",
			Help:    "Duration of order placement in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		retrieveDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "ecommerce_order_retrieve_duration_seconds",
			Help:    "Duration of order retrieval in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}),
		eventsPublished: registerCounter(registerer, prometheus.CounterOpts{
			Name: "ecommerce_order_events_published_total",
			Help: "Total number of order events published",
		}),
	}
}

// OrderPlaced фиксирует успешно размещённый заказ.
func (m *OrderMetrics) OrderPlaced(duration time.Duration) {
	if m == nil {
		return
	}
	m.ordersPlaced.Inc()
	m.placeDuration.Observe(duration.Seconds())
}

// OrderFailed фиксирует неудачную попытку размещения.
func (m *OrderMetrics) OrderFailed() {
	if m == nil {
		return
	}
	m.ordersFailed.Inc()
}

// OrderRetrieved фиксирует чтение заказа.
func (m *OrderMetrics) OrderRetrieved(duration time.Duration) {
	if m == nil {
		return
	}
	m.retrieveDuration.Observe(duration.Seconds())
}

// EventPublished фиксирует публикацию доменного события.
func (m *OrderMetrics) EventPublished() {
	if m == nil {
		return
	}
	m.eventsPublished.Inc()
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}
