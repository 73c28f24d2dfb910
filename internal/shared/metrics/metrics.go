package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Match outcomes used as the "outcome" label.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	matchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_requests_total",
			Help: "Total platform match requests by outcome",
		},
		[]string{"outcome"},
	)

	matchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_duration_seconds",
			Help:    "Time spent computing platform matches",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, 1, 5, 10},
		},
	)

	matchCandidatesEvaluated = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_candidates_evaluated",
			Help:    "Size of the candidate pool per match request",
			Buckets: prometheus.LinearBuckets(1, 1, 12),
		},
	)

	matchTopScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_top_score",
			Help:    "Score of the highest ranked platform per match request",
			Buckets: prometheus.LinearBuckets(60, 5, 9),
		},
	)

	consensusProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consensus_provider_requests_total",
			Help: "Consensus provider calls by provider and result",
		},
		[]string{"provider", "result"},
	)

	consensusCircuitState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "consensus_circuit_state",
			Help: "Circuit breaker state per consensus provider (0=closed, 1=half-open, 2=open)",
		},
		[]string{"provider"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// IncMatch counts a match request with the given outcome.
func IncMatch(outcome string) {
	matchRequestsTotal.WithLabelValues(outcome).Inc()
}

// ObserveMatch records a completed match computation.
func ObserveMatch(d time.Duration, evaluated, topScore int) {
	matchDuration.Observe(d.Seconds())
	matchCandidatesEvaluated.Observe(float64(evaluated))
	if topScore > 0 {
		matchTopScore.Observe(float64(topScore))
	}
}

// IncConsensusProvider counts a consensus provider call.
func IncConsensusProvider(provider, result string) {
	consensusProviderRequests.WithLabelValues(provider, result).Inc()
}

// SetConsensusCircuitState records the breaker state for a provider.
func SetConsensusCircuitState(provider string, state float64) {
	consensusCircuitState.WithLabelValues(provider).Set(state)
}

// HTTP records request latency per matched route.
func HTTP() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
