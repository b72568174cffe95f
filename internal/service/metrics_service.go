package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the gateway and
// its calls to the external classroom API.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	upstreamTotal    *prometheus.CounterVec
	reportsBuilt     *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "classroom_call_duration_seconds",
		Help:    "Duration of calls to the external classroom API",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource", "outcome"})

	upstreamTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "classroom_calls_total",
		Help: "Total calls to the external classroom API",
	}, []string{"resource", "outcome"})

	reportsBuilt := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reports_built_total",
		Help: "Total report builds by view and outcome",
	}, []string{"view", "outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, upstreamDuration, upstreamTotal, reportsBuilt, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:         registry,
		handler:          handler,
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		upstreamDuration: upstreamDuration,
		upstreamTotal:    upstreamTotal,
		reportsBuilt:     reportsBuilt,
	}
}

// Handler exposes the promhttp handler for the /metrics endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one served request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	s.requestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(method, path, code).Inc()
}

// ObserveUpstreamCall records one call to the external classroom API.
func (s *MetricsService) ObserveUpstreamCall(resource string, err error, duration time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.upstreamDuration.WithLabelValues(resource, outcome).Observe(duration.Seconds())
	s.upstreamTotal.WithLabelValues(resource, outcome).Inc()
}

// ObserveReportBuild records one report build.
func (s *MetricsService) ObserveReportBuild(view string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.reportsBuilt.WithLabelValues(view, outcome).Inc()
}
