// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package observability provides Prometheus metrics for the HTTP surface and
// the authentication flows.
package observability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Auth event outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the application metrics and the registry they live in.
// A nil *Metrics records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	authEvents      *prometheus.CounterVec
}

// NewMetrics creates a registry with the Go and process collectors and the
// application metrics.
func NewMetrics() *Metrics {
	// A private registry keeps tests independent of the global one.
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jobportal_http_requests_total",
				Help: "Total number of HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "jobportal_http_request_duration_seconds",
				Help:    "HTTP request latency by method and route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		authEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jobportal_auth_events_total",
				Help: "Authentication events by event and outcome",
			},
			[]string{"event", "outcome"},
		),
	}

	registry.MustRegister(m.requestsTotal, m.requestDuration, m.authEvents)

	return m
}

// AuthEvent counts one authentication event, e.g. ("login", "failure").
func (m *Metrics) AuthEvent(event, outcome string) {
	if m == nil {
		return
	}
	m.authEvents.WithLabelValues(event, outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Middleware records request counts and latencies per route template.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(responseStatus(c, err))).Inc()
			m.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// responseStatus returns the status the error handler will write when err
// has not been handled yet.
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
