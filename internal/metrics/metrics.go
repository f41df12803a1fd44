// Package metrics exposes counters and gauges for the matching engine over
// Prometheus's text exposition format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the process's matching-engine metrics. One Registry is
// created per process and shared across every connection the server
// handles.
type Registry struct {
	reg *prometheus.Registry

	ordersSubmitted *prometheus.CounterVec
	tradesGenerated prometheus.Counter
	cancels         *prometheus.CounterVec
	restingQty      *prometheus.GaugeVec
}

// NewRegistry builds a fresh Registry with all engine metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		reg: reg,
		ordersSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lobx_orders_submitted_total",
			Help: "Number of orders submitted to the book, by side.",
		}, []string{"side"}),
		tradesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lobx_trades_generated_total",
			Help: "Number of trades generated across all submits.",
		}),
		cancels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lobx_cancels_total",
			Help: "Number of cancel requests, by outcome.",
		}, []string{"outcome"}),
		restingQty: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lobx_resting_quantity",
			Help: "Total resting quantity at the best level, by side.",
		}, []string{"side"}),
	}

	reg.MustRegister(r.ordersSubmitted, r.tradesGenerated, r.cancels, r.restingQty)
	return r
}

// ObserveSubmit records one submitted order and however many trades it
// generated.
func (r *Registry) ObserveSubmit(side string, tradeCount int) {
	r.ordersSubmitted.WithLabelValues(side).Inc()
	r.tradesGenerated.Add(float64(tradeCount))
}

// ObserveCancel records one cancel outcome: "ok", "limit_absent", or
// "id_absent".
func (r *Registry) ObserveCancel(outcome string) {
	r.cancels.WithLabelValues(outcome).Inc()
}

// SetRestingQty updates the best-level resting quantity gauge for side.
func (r *Registry) SetRestingQty(side string, qty float64) {
	r.restingQty.WithLabelValues(side).Set(qty)
}

// Handler returns the HTTP handler that serves this registry's metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
