package metrics

// Metric namespace shared by every tracker metric.
const Namespace = "spacexy"

// Synchronizer metric names
const (
	MetricNamePollsTotal     = "polls_total"
	MetricNamePollDuration   = "poll_duration_seconds"
	MetricNameConnected      = "connected"
	MetricNameNewRoundsTotal = "new_rounds_total"
	MetricNameStaleDiscarded = "stale_responses_discarded_total"
)

// Upstream API metric names
const (
	MetricNameAPIRequestsTotal   = "api_requests_total"
	MetricNameAPIRequestDuration = "api_request_duration_seconds"
	MetricNameAPIInvalidRecords  = "api_invalid_records_total"
	MetricNameCrashStatsCache    = "crash_stats_cache_total"
)

// Consumer surface metric names
const (
	MetricNameHTTPRequestsTotal   = "http_requests_total"
	MetricNameHTTPRequestDuration = "http_request_duration_seconds"
	MetricNameFeedClients         = "feed_clients"
	MetricNameFeedDropped         = "feed_messages_dropped_total"
)

// Label names
const (
	LabelSynchronizer = "synchronizer"
	LabelResult       = "result"
	LabelEndpoint     = "endpoint"
	LabelStatus       = "status"
	LabelMethod       = "method"
	LabelPath         = "path"
)

// Label values
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultHit     = "hit"
	ResultMiss    = "miss"
)

// Histogram buckets
var (
	PollLatencyBuckets = []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1}
)
