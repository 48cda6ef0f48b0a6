package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// Metrics holds the server's Prometheus collectors. Each Server owns its own
// registry so tests can build many servers in one process.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	ordersTotal       prometheus.Counter
	orderValueTotal   prometheus.Counter
	rateLimitExceeded prometheus.Counter
	restaurants       prometheus.GaugeFunc
}

// NewMetrics creates and registers all collectors. restaurants reports the
// number of restaurants with at least one order.
func NewMetrics(restaurants func() int) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "foodorder_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "foodorder_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route"}),
		ordersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "foodorder_orders_total",
			Help: "Total number of orders placed",
		}),
		orderValueTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "foodorder_order_value_total",
			Help: "Sum of positive submitted order totals",
		}),
		rateLimitExceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "foodorder_ratelimit_exceeded_total",
			Help: "Total number of order submissions rejected by the rate limiter",
		}),
		restaurants: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "foodorder_restaurants_with_orders",
			Help: "Number of restaurants that have received at least one order",
		}, func() float64 { return float64(restaurants()) }),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.requestDuration,
		m.ordersTotal,
		m.orderValueTotal,
		m.rateLimitExceeded,
		m.restaurants,
	)
	return m
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordRequest counts one finished request.
func (m *Metrics) RecordRequest(method, route string, status int, d time.Duration) {
	m.requestsTotal.WithLabelValues(methodLabel(method), route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// RecordOrder counts one accepted order. Restaurant names come from clients,
// so they are not used as a label.
func (m *Metrics) RecordOrder(total decimal.Decimal) {
	m.ordersTotal.Inc()
	// Counters panic on negative deltas and totals are not validated.
	if v := total.InexactFloat64(); v > 0 {
		m.orderValueTotal.Add(v)
	}
}

// RecordRateLimited counts one rejected submission.
func (m *Metrics) RecordRateLimited() {
	m.rateLimitExceeded.Inc()
}

// methodLabel keeps the method label bounded; the server accepts any token as
// a method.
func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodOptions:
		return method
	default:
		return "other"
	}
}
