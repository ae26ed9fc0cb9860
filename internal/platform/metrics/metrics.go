// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics exposes Prometheus collectors for HTTP traffic and domain events.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taibuivan/gamelibrary/internal/platform/middleware"
)

const namespace = "gamelibrary"

// Domain event names recorded through [Metrics.RecordEvent].
const (
	EventUserRegistered = "user_registered"
	EventLoginSucceeded = "login_succeeded"
	EventLoginFailed    = "login_failed"
	EventLibraryAdd     = "library_add"
	EventLibraryRemove  = "library_remove"
	EventReviewCreated  = "review_created"
)

// Metrics owns a private registry so tests can build isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	domainEvents *prometheus.CounterVec
}

// New registers the HTTP, domain, process and Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "route"}),
		domainEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "domain",
			Name:      "events_total",
			Help:      "Library, review and login outcomes.",
		}, []string{"event"}),
	}

	m.registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.domainEvents,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordEvent increments the counter for a domain event.
func (m *Metrics) RecordEvent(event string) {
	m.domainEvents.WithLabelValues(event).Inc()
}

// Instrument records request count and latency labelled by chi route pattern,
// so /games/{id} is one series regardless of the id.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		start := time.Now()
		recorder := middleware.NewStatusRecorder(writer)

		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		next.ServeHTTP(recorder, request)

		route := routePattern(request)
		m.httpRequests.WithLabelValues(request.Method, route, strconv.Itoa(recorder.Status)).Inc()
		m.httpDuration.WithLabelValues(request.Method, route).Observe(time.Since(start).Seconds())
	})
}

func routePattern(request *http.Request) string {
	if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
		if pattern := routeContext.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
