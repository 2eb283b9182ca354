package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsTotal,
			Help:      HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestDuration,
			Help:      HelpTextHTTPRequestDuration,
			Buckets:   HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsInFlight,
			Help:      HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventsPublished,
			Help:      HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventHandlerErrors,
			Help:      HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	Harvests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameHarvests,
			Help:      HelpTextHarvests,
		},
		[]string{LabelCrop},
	)

	AnimalsBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameAnimalsBought,
			Help:      HelpTextAnimalsBought,
		},
		[]string{LabelAnimal},
	)

	CoinsEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCoinsEarned,
			Help:      HelpTextCoinsEarned,
		},
	)

	CoinsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCoinsSpent,
			Help:      HelpTextCoinsSpent,
		},
	)

	CoinsPurchased = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCoinsPurchased,
			Help:      HelpTextCoinsPurchased,
		},
	)

	PaymentsReconciled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNamePaymentsReconciled,
			Help:      HelpTextPaymentsReconciled,
		},
		[]string{LabelOutcome},
	)

	PaymentsUnsettled = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNamePaymentsUnsettled,
			Help:      HelpTextPaymentsUnsettled,
		},
	)

	AuthFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameAuthFailures,
			Help:      HelpTextAuthFailures,
		},
		[]string{LabelReason},
	)

	StorageRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameStorageRetries,
			Help:      HelpTextStorageRetries,
		},
		[]string{LabelOp},
	)
)
