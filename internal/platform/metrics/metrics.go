// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Auth methods.
const (
	MethodRegister  = "register"
	MethodPassword  = "password"
	MethodFederated = "federated"
)

// Session events.
const (
	SessionEstablished = "established"
	SessionDestroyed   = "destroyed"
)

// Collector records authentication outcomes.
type Collector struct {
	authAttempts *prometheus.CounterVec
	sessions     *prometheus.CounterVec
	gatherer     prometheus.Gatherer
}

// NewCollector creates a Collector registered with a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "account_auth_attempts_total",
			Help: "Authentication attempts by method and outcome.",
		}, []string{"method", "outcome"}),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "account_sessions_total",
			Help: "Session lifecycle events.",
		}, []string{"event"}),
		gatherer: reg,
	}
	reg.MustRegister(c.authAttempts, c.sessions)
	return c
}

// RecordAuthAttempt counts one attempt. A nil Collector records nothing.
func (c *Collector) RecordAuthAttempt(method, outcome string) {
	if c == nil {
		return
	}
	c.authAttempts.WithLabelValues(method, outcome).Inc()
}

// RecordSession counts one session event.
func (c *Collector) RecordSession(event string) {
	if c == nil {
		return
	}
	c.sessions.WithLabelValues(event).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
