package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every metric
const Namespace = "farmbot"

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameHarvests           = "harvests_total"
	MetricNameAnimalsBought      = "animals_bought_total"
	MetricNameCoinsEarned        = "coins_earned_total"
	MetricNameCoinsSpent         = "coins_spent_total"
	MetricNameCoinsPurchased     = "coins_purchased_total"
	MetricNamePaymentsReconciled = "payments_reconciled_total"
	MetricNamePaymentsUnsettled  = "payments_unsettled"
	MetricNameAuthFailures       = "auth_failures_total"
	MetricNameStorageRetries     = "storage_retries_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextHarvests           = "Total number of successful harvests"
	HelpTextAnimalsBought      = "Total number of animals bought with coins"
	HelpTextCoinsEarned        = "Total coins earned from harvests"
	HelpTextCoinsSpent         = "Total coins spent on animals"
	HelpTextCoinsPurchased     = "Total coins credited from Stars purchases"
	HelpTextPaymentsReconciled = "Total number of payment deliveries by reconcile outcome"
	HelpTextPaymentsUnsettled  = "Payments still recorded after the grace period at the last sweep"
	HelpTextAuthFailures       = "Total number of rejected identity assertions"
	HelpTextStorageRetries     = "Total number of retried storage operations"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelCrop    = "crop"
	LabelAnimal  = "animal"
	LabelOutcome = "outcome"
	LabelReason  = "reason"
	LabelOp      = "op"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgUnexpectedPayload = "Event payload has unexpected shape"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)

// UnmatchedRoute labels requests that matched no chi route
const UnmatchedRoute = "unmatched"
