package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager holds the storefront's Prometheus metrics on its own registry.
type Manager struct {
	Registry *prometheus.Registry

	CartItemsAddedTotal   prometheus.Counter
	CartItemsRemovedTotal prometheus.Counter
	CartsClearedTotal     prometheus.Counter
	OrdersPlacedTotal     prometheus.Counter
	CheckoutFailuresTotal prometheus.Counter
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestLatency    *prometheus.HistogramVec
}

func NewManager(namespace string) *Manager {
	registry := prometheus.NewRegistry()

	m := &Manager{
		Registry: registry,
		CartItemsAddedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_items_added_total",
			Help:      "Total number of line-item additions to carts.",
		}),
		CartItemsRemovedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_items_removed_total",
			Help:      "Total number of line-item removals from carts.",
		}),
		CartsClearedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "carts_cleared_total",
			Help:      "Total number of carts cleared.",
		}),
		OrdersPlacedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Total number of orders confirmed by the backend.",
		}),
		CheckoutFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_failures_total",
			Help:      "Total number of failed checkout submissions.",
		}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		HTTPRequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_latency_seconds",
			Help:      "Latency of HTTP requests by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	registry.MustRegister(
		m.CartItemsAddedTotal,
		m.CartItemsRemovedTotal,
		m.CartsClearedTotal,
		m.OrdersPlacedTotal,
		m.CheckoutFailuresTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestLatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return m
}

// Handler serves the registry for the /metrics route.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
