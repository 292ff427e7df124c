package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records pricing-path outcomes: order finalizations and
// discount code validations.
type CheckoutMetrics struct {
	finalizeDuration *prometheus.HistogramVec
	finalizeOutcome  *prometheus.CounterVec
	codeValidation   *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_finalize_duration_seconds",
		Help:    "Duration of order finalization transactions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	finalize := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_finalize_total",
		Help: "Order finalization attempts by outcome.",
	}, []string{"outcome"})
	validation := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "discount_code_validations_total",
		Help: "Discount code validation attempts by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(duration, finalize, validation)
	return &CheckoutMetrics{
		finalizeDuration: duration,
		finalizeOutcome:  finalize,
		codeValidation:   validation,
	}
}

// ObserveFinalize records one finalization attempt with its duration.
func (c *CheckoutMetrics) ObserveFinalize(outcome string, duration time.Duration) {
	if c == nil || c.finalizeDuration == nil {
		return
	}
	label := normalizeLabel(outcome)
	c.finalizeDuration.WithLabelValues(label).Observe(duration.Seconds())
	c.finalizeOutcome.WithLabelValues(label).Inc()
}

// IncCodeValidation counts one discount code validation by outcome.
func (c *CheckoutMetrics) IncCodeValidation(outcome string) {
	if c == nil || c.codeValidation == nil {
		return
	}
	c.codeValidation.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
