// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface the service and HTTP layers use to record
// operational metrics.
type Recorder interface {
	RecordLoginSuccess()
	RecordLoginFailure(reason string)
	RecordSessionRestore(outcome string)
	RecordGuardDecision(decision string)
	RecordHTTPRequest(method, route string, statusCode int, duration time.Duration)
}

// Collector implements Recorder on a Prometheus registry.
type Collector struct {
	loginSuccess    prometheus.Counter
	loginFailure    *prometheus.CounterVec
	sessionRestores *prometheus.CounterVec
	guardDecisions  *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		loginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tiretrack_login_success_total",
			Help: "Total number of successful logins.",
		}),
		loginFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tiretrack_login_failure_total",
			Help: "Total number of failed logins by reason.",
		}, []string{"reason"}),
		sessionRestores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tiretrack_session_restore_total",
			Help: "Session restore attempts by outcome (restored, none, corrupt, expired).",
		}, []string{"outcome"}),
		guardDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tiretrack_guard_decision_total",
			Help: "Route guard decisions by kind (render, redirect, wait).",
		}, []string{"decision"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tiretrack_http_requests_total",
			Help: "HTTP requests by method, route, and status code.",
		}, []string{"method", "route", "status_code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tiretrack_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.loginSuccess,
		c.loginFailure,
		c.sessionRestores,
		c.guardDecisions,
		c.httpRequests,
		c.httpLatency,
	)

	return c
}

func (c *Collector) RecordLoginSuccess() {
	c.loginSuccess.Inc()
}

func (c *Collector) RecordLoginFailure(reason string) {
	c.loginFailure.WithLabelValues(reason).Inc()
}

func (c *Collector) RecordSessionRestore(outcome string) {
	c.sessionRestores.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordGuardDecision(decision string) {
	c.guardDecisions.WithLabelValues(decision).Inc()
}

func (c *Collector) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Noop is a Recorder that discards everything. Useful in tests and CLI
// contexts where no registry is wired.
type Noop struct{}

func (Noop) RecordLoginSuccess()                                          {}
func (Noop) RecordLoginFailure(string)                                    {}
func (Noop) RecordSessionRestore(string)                                  {}
func (Noop) RecordGuardDecision(string)                                   {}
func (Noop) RecordHTTPRequest(string, string, int, time.Duration)         {}
