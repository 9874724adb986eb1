// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/clean-karachi/apiclient"
	"github.com/danielhkuo/clean-karachi/models"
)

// Collector holds all metrics for the dashboard service
type Collector struct {
	registry *prometheus.Registry

	// Backend calls
	backendRequests *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec

	// Dashboard state
	fallbacks    *prometheus.CounterVec
	rejections   *prometheus.CounterVec
	connectivity *prometheus.GaugeVec
}

// NewCollector creates a collector on its own registry so tests can build
// as many as they like.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		backendRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clean_karachi",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Total number of backend requests by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		backendDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clean_karachi",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Duration of backend requests",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clean_karachi",
			Subsystem: "dashboard",
			Name:      "fallbacks_total",
			Help:      "Total number of loads that fell back to mock data",
		}, []string{"resource"}),
		rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clean_karachi",
			Subsystem: "dashboard",
			Name:      "rejections_total",
			Help:      "Total number of actions rejected locally",
		}, []string{"action", "reason"}),
		connectivity: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "clean_karachi",
			Subsystem: "dashboard",
			Name:      "connectivity",
			Help:      "1 for the current connectivity state, 0 otherwise",
		}, []string{"state"}),
	}
}

// ObserveRequest implements apiclient.Observer
func (c *Collector) ObserveRequest(endpoint string, status int, err error, elapsed time.Duration) {
	c.backendRequests.WithLabelValues(endpoint, outcomeLabel(status, err)).Inc()
	c.backendDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// RecordFallback counts a load that substituted mock data.
func (c *Collector) RecordFallback(resource string) {
	c.fallbacks.WithLabelValues(resource).Inc()
}

// RecordRejection counts an action refused before any network call.
func (c *Collector) RecordRejection(action, reason string) {
	c.rejections.WithLabelValues(action, reason).Inc()
}

// SetConnectivity marks state as current.
func (c *Collector) SetConnectivity(state models.Connectivity) {
	for _, s := range []models.Connectivity{
		models.ConnectivityLoading,
		models.ConnectivityLive,
		models.ConnectivityDegraded,
	} {
		v := 0.0
		if s == state {
			v = 1
		}
		c.connectivity.WithLabelValues(string(s)).Set(v)
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry exposes the underlying registry so runtime collectors can be
// added next to the dashboard metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func outcomeLabel(status int, err error) string {
	if err == nil {
		return "ok"
	}
	var se *apiclient.StatusError
	if errors.As(err, &se) {
		return strconv.Itoa(se.StatusCode)
	}
	if status != 0 {
		return strconv.Itoa(status)
	}
	return "error"
}
