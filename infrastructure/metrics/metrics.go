package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gateway call accounting by remote operation name.
var (
	GatewayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockroom_gateway_requests_total",
		Help: "Remote script calls issued, by operation.",
	}, []string{"op"})

	GatewayRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockroom_gateway_retries_total",
		Help: "Remote script call retries, by operation.",
	}, []string{"op"})

	GatewayFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockroom_gateway_failures_total",
		Help: "Remote script calls that failed after all attempts, by operation.",
	}, []string{"op"})

	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockroom_submissions_total",
		Help: "Accepted document submissions, by document type.",
	}, []string{"type"})
)
