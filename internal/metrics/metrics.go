// Package metrics holds the Prometheus collectors for backend calls, the
// image proxy, imports and admin actions.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "adda_admin"

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	registry *prometheus.Registry

	BackendRequests *prometheus.CounterVec
	BackendLatency  *prometheus.HistogramVec
	HTTPRequests    *prometheus.CounterVec
	HTTPLatency     *prometheus.HistogramVec
	ImageProxy      *prometheus.CounterVec
	ImageProxyBytes prometheus.Counter
	Imports         *prometheus.CounterVec
	Mutations       *prometheus.CounterVec
	SessionActive   prometheus.Gauge
}

// New creates a registry with process and Go collectors and registers all
// application metrics on it.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		BackendRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Total number of Broker Adda API calls, labeled by method, route and status.",
		}, []string{"method", "route", "status"}),
		BackendLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Latency of Broker Adda API calls in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests served, labeled by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of served HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ImageProxy: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_proxy_requests_total",
			Help:      "Image proxy requests, labeled by result (ok, shared, bad_request, upstream_error).",
		}, []string{"result"}),
		ImageProxyBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_proxy_bytes_total",
			Help:      "Bytes relayed by the image proxy.",
		}),
		Imports: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "csv_imports_total",
			Help:      "CSV imports, labeled by kind and result.",
		}, []string{"kind", "result"}),
		Mutations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Admin actions, labeled by resource, action and result.",
		}, []string{"resource", "action", "result"}),
		SessionActive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "session_active",
			Help:      "1 while an admin token is held, else 0.",
		}),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one backend round trip. It satisfies adda.Observer.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	route := Route(path)
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.BackendRequests.WithLabelValues(method, route, code).Inc()
	m.BackendLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Result returns "ok" or "error" for a metric label.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// SessionChanged tracks whether a token is held. It fits session.OnChange.
func (m *Metrics) SessionChanged(token string) {
	if token == "" {
		m.SessionActive.Set(0)
		return
	}
	m.SessionActive.Set(1)
}

var actions = map[string]bool{
	"block": true, "unblock": true, "verify": true, "unverify": true,
	"approve": true, "reject": true, "brokers": true, "leads": true, "properties": true,
}

// Route collapses item identifiers so label cardinality stays bounded:
// /api/brokers/665f0c/block becomes /api/brokers/:id/block.
func Route(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	segs := strings.Split(strings.Trim(path, "/"), "/")
	// api/<resource>/<id>[/action]; api/import/<kind> keeps its kind.
	if len(segs) >= 3 && segs[0] == "api" && segs[1] != "import" && segs[1] != "admin" {
		if !actions[segs[2]] {
			segs[2] = ":id"
		}
	}
	return "/" + strings.Join(segs, "/")
}

// RecordMutation counts one admin action.
func (m *Metrics) RecordMutation(resource, action string, err error) {
	m.Mutations.WithLabelValues(resource, action, Result(err)).Inc()
}

// RecordImport counts one CSV upload.
func (m *Metrics) RecordImport(kind string, err error) {
	m.Imports.WithLabelValues(kind, Result(err)).Inc()
}

// RecordImage counts one image proxy response and the bytes it relayed.
func (m *Metrics) RecordImage(result string, n int) {
	m.ImageProxy.WithLabelValues(result).Inc()
	if n > 0 {
		m.ImageProxyBytes.Add(float64(n))
	}
}
