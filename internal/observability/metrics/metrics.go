package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success     Outcome = "success"
	Error       Outcome = "error"
	Requeued    Outcome = "requeued"
	Unprocessed Outcome = "unprocessable"
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once          sync.Once
	metricsRouter *chi.Mux

	defaultHistogramBucketsSeconds = []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	httpRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of http request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"endpoint", "status"},
	)
	engineOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_operations_total",
			Help: "Engine commands by command type and outcome.",
		},
		[]string{"operation", "outcome"},
	)
	queueMessageCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_messages_total",
			Help: "Inbound queue messages by queue and outcome.",
		},
		[]string{"queue", "outcome"},
	)
	outboxDepthGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "outbox_pending_records",
			Help: "Outbox records waiting to be relayed.",
		},
	)
	relayCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbox_relay_total",
			Help: "Relayed outbox records by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)
)

// Init registers the collectors and serves them on addr.
func Init(addr string) {
	once.Do(func() {
		registerMetrics()
		initMetricsRouter(addr)
	})
}

func initMetricsRouter(addr string) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(addr, metricsRouter); err != nil {
			log.Fatal().Err(err).Msgf("error starting metrics server on %s", addr)
		}
	}()
}

// registerMetrics registers the collectors with the default registry.
func registerMetrics() {
	prometheus.MustRegister(
		httpRequestDurationHistogram,
		engineOperationCounter,
		queueMessageCounter,
		outboxDepthGauge,
		relayCounter,
	)
}

// StartHttpRequestDurationTimer starts a timer to measure http request handling duration.
func StartHttpRequestDurationTimer(endpoint string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		httpRequestDurationHistogram.WithLabelValues(endpoint, fmt.Sprintf("%d", statusCode)).Observe(duration)
	}
}

// RecordEngineOperation counts a finished command. outcome is "ok" or the
// error code that aborted it.
func RecordEngineOperation(operation, outcome string) {
	engineOperationCounter.WithLabelValues(operation, outcome).Inc()
}

func RecordQueueMessage(queueName string, outcome Outcome) {
	queueMessageCounter.WithLabelValues(queueName, outcome.String()).Inc()
}

func SetOutboxDepth(n int) {
	outboxDepthGauge.Set(float64(n))
}

func RecordRelay(kind string, outcome Outcome) {
	relayCounter.WithLabelValues(kind, outcome.String()).Inc()
}
