// Package metrics expone métricas Prometheus de las llamadas al backend de mascotas.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Recorder es lo que usan el cliente API y el page controller.
type Recorder interface {
	RecordAPICall(op, outcome string, elapsed time.Duration)
	RecordUIAction(action, outcome string)
}

// Collector implementa Recorder sobre Prometheus.
type Collector struct {
	apiCalls   *prometheus.CounterVec
	apiLatency *prometheus.HistogramVec
	uiActions  *prometheus.CounterVec
}

// NewCollector registra las métricas en reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		apiCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "petsweb_api_calls_total",
			Help: "Llamadas al backend de mascotas por operación y resultado",
		}, []string{"op", "outcome"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "petsweb_api_call_duration_seconds",
			Help:    "Latencia de las llamadas al backend de mascotas",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		uiActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "petsweb_ui_actions_total",
			Help: "Acciones de usuario por tipo y resultado",
		}, []string{"action", "outcome"}),
	}

	reg.MustRegister(c.apiCalls, c.apiLatency, c.uiActions)
	return c
}

func (c *Collector) RecordAPICall(op, outcome string, elapsed time.Duration) {
	c.apiCalls.WithLabelValues(op, outcome).Inc()
	c.apiLatency.WithLabelValues(op).Observe(elapsed.Seconds())
}

func (c *Collector) RecordUIAction(action, outcome string) {
	c.uiActions.WithLabelValues(action, outcome).Inc()
}

// Handler sirve /metrics.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop no registra nada.
type Nop struct{}

func (Nop) RecordAPICall(string, string, time.Duration) {}
func (Nop) RecordUIAction(string, string)              {}
