package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/extra/redisprometheus/v9"
	"github.com/redis/go-redis/v9"
)

const namespace = "glkernel"

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Derivation metrics
	Derivations       *prometheus.CounterVec
	SkippedRules      prometheus.Counter
	DerivedLineAmount prometheus.Histogram

	// Kernel metrics
	ValidationFailures *prometheus.CounterVec
	KernelDuration     *prometheus.HistogramVec

	// Command outbox metrics
	CommandsEnqueued       *prometheus.CounterVec
	CommandsDuplicate      *prometheus.CounterVec
	CommandsDispatched     *prometheus.CounterVec
	CommandDispatchErrors  *prometheus.CounterVec
	CommandDispatchBacklog prometheus.Gauge

	// Period metrics
	PeriodTransitions *prometheus.CounterVec

	// Numbering metrics
	SequenceUtilization *prometheus.GaugeVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Database metrics
	DBErrors *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	reg prometheus.Registerer
}

// New creates and registers all Prometheus metrics on the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates all metrics and registers them on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		reg: reg,

		// Derivation metrics
		Derivations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glkernel_derivations_total",
				Help: "Total derivations by outcome",
			},
			[]string{"outcome"},
		),
		SkippedRules: factory.NewCounter(prometheus.CounterOpts{
			Name: "glkernel_derivation_skipped_rules_total",
			Help: "Mapping rules skipped because they rounded to zero",
		}),
		DerivedLineAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "glkernel_derived_amount_minor",
			Help:    "Total debit of derived journals in minor units",
			Buckets: []float64{1, 100, 10000, 1000000, 100000000, 10000000000},
		}),

		// Kernel metrics
		ValidationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glkernel_validation_failures_total",
				Help: "Kernel validation failures by operation and category",
			},
			[]string{"operation", "category"},
		),
		KernelDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "glkernel_operation_duration_seconds",
				Help:    "Duration of use case operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		// Command outbox metrics
		CommandsEnqueued: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glkernel_commands_enqueued_total",
				Help: "Commands written to the outbox",
			},
			[]string{"command_type"},
		),
		CommandsDuplicate: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glkernel_commands_duplicate_total",
				Help: "Commands collapsed by idempotency key",
			},
			[]string{"command_type"},
		),
		CommandsDispatched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glkernel_commands_dispatched_total",
				Help: "Commands published by the dispatcher",
			},
			[]string{"command_type"},
		),
		CommandDispatchErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glkernel_command_dispatch_errors_total",
				Help: "Commands that failed to publish",
			},
			[]string{"command_type"},
		),
		CommandDispatchBacklog: factory.NewGauge(prometheus.GaugeOpts{
			Name: "glkernel_command_dispatch_batch_size",
			Help: "Unpublished commands fetched in the last poll",
		}),

		// Period metrics
		PeriodTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glkernel_period_transitions_total",
				Help: "Posting period lifecycle transitions by target status",
			},
			[]string{"status"},
		),

		// Numbering metrics
		SequenceUtilization: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "glkernel_sequence_utilization_ratio",
				Help: "Share of document sequence capacity consumed",
			},
			[]string{"sequence_id"},
		),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glkernel_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "glkernel_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "glkernel_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),

		// Database metrics
		DBErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glkernel_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glkernel_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glkernel_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),
	}
}

// RegisterRedis exposes the client's connection pool statistics.
func (m *Metrics) RegisterRedis(client *redis.Client) error {
	return m.reg.Register(redisprometheus.NewCollector(namespace, "redis", client))
}
