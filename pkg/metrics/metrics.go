// artcom-pay/pkg/metrics/metrics.go
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PaymentRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payment",
			Name:      "requests_total",
			Help:      "Payment function requests by route, outcome and method",
		},
		[]string{"service", "status", "method"},
	)

	PaymentRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "payment",
			Name:      "request_duration_seconds",
			Help:      "Payment function request latency",
			Buckets: []float64{
				0.01, 0.02, 0.03, 0.05, 0.08, 0.12,
				0.2, 0.3, 0.5, 0.8, 1.2, 2, 3, 5,
			},
		},
		[]string{"service", "status"},
	)

	GatewayCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payment",
			Name:      "gateway_calls_total",
			Help:      "Outbound calls to payment processors by gateway, step and outcome",
		},
		[]string{"gateway", "step", "outcome"},
	)

	GatewayCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "payment",
			Name:      "gateway_call_duration_seconds",
			Help:      "Latency of outbound calls to payment processors",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"gateway", "step"},
	)

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payment",
			Name:      "notifications_total",
			Help:      "Best-effort event notifications by sink and outcome",
		},
		[]string{"sink", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		PaymentRequestsTotal,
		PaymentRequestDuration,
		GatewayCallsTotal,
		GatewayCallDuration,
		NotificationsTotal,
	)
}

func IncRequest(service, status, method string) {
	PaymentRequestsTotal.WithLabelValues(service, status, method).Inc()
}

func ObserveDuration(service, status string, seconds float64) {
	PaymentRequestDuration.WithLabelValues(service, status).Observe(seconds)
}

// ObserveGatewayCall records one outbound processor call.
func ObserveGatewayCall(gateway, step, outcome string, seconds float64) {
	GatewayCallsTotal.WithLabelValues(gateway, step, outcome).Inc()
	GatewayCallDuration.WithLabelValues(gateway, step).Observe(seconds)
}

func IncNotification(sink, outcome string) {
	NotificationsTotal.WithLabelValues(sink, outcome).Inc()
}
