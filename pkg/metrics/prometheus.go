// Package metrics provides Prometheus metrics for the loot council service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Loot evaluation
	evaluations        prometheus.Counter
	candidatesScored   prometheus.Counter
	alreadyOwned       prometheus.Counter
	scoreDistribution  prometheus.Histogram
	scoringLatency     prometheus.Histogram
	evaluationLatency  prometheus.Histogram
	assignments        prometheus.Counter
	scoringErrors      prometheus.Counter
	evaluationFailures prometheus.Counter

	// Source ingestion
	snapshotsIngested *prometheus.CounterVec
	snapshotsIgnored  *prometheus.CounterVec
	unknownItems      prometheus.Counter
	trackUnresolved   prometheus.Counter
	catalogItems      prometheus.Gauge

	// Repository
	totalCharacters         prometheus.Gauge
	totalAssignments        prometheus.Gauge
	repositoryUpdateLatency prometheus.Histogram
	repositoryQueryLatency  prometheus.Histogram

	// Queue
	queueSize              prometheus.Gauge
	queueCapacity          prometheus.Gauge
	queueUtilization       prometheus.Gauge
	queueEnqueueRate       prometheus.Counter
	queueDequeueRate       prometheus.Counter
	queueEnqueueErrors     prometheus.Counter
	queueProcessingLatency prometheus.Histogram

	// Workers
	workerCount             prometheus.Gauge
	workerActiveCount       prometheus.Gauge
	workerIdleCount         prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrorRate         prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorRateByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "lootcouncil",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	})
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.evaluations = m.counter("evaluations_total", "Total number of loot evaluations ranked")
	m.candidatesScored = m.counter("candidates_scored_total", "Total number of character highlights computed")
	m.alreadyOwned = m.counter("already_owned_total", "Candidates that already own the evaluated loot")
	m.scoreDistribution = m.histogram("score", "Distribution of final candidate scores",
		[]float64{0, 1, 5, 10, 25, 50, 75, 100, 150, 200, 300, 450})
	m.scoringLatency = m.histogram("scoring_latency_milliseconds",
		"Histogram of per-candidate scoring latency in milliseconds", m.histogramBuckets)
	m.evaluationLatency = m.histogram("evaluation_latency_milliseconds",
		"Histogram of whole loot evaluation latency in milliseconds", m.histogramBuckets)
	m.assignments = m.counter("assignments_total", "Total number of loot assignments recorded")
	m.scoringErrors = m.counter("scoring_errors_total", "Total number of scoring errors")
	m.evaluationFailures = m.counter("evaluation_failures_total", "Loot evaluations that could not be completed")

	m.snapshotsIngested = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshots_ingested_total",
		Help:      "Source snapshots stored, by source kind",
	}, []string{"source"})
	m.snapshotsIgnored = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshots_ignored_total",
		Help:      "Source snapshots dropped because a newer one is stored, by source kind",
	}, []string{"source"})
	m.unknownItems = m.counter("unknown_items_total", "Source entries skipped because the item is not in the catalog")
	m.trackUnresolved = m.counter("track_unresolved_total", "Gear items kept without a resolvable item track")
	m.catalogItems = m.gauge("catalog_items", "Number of items in the loaded catalog")

	m.totalCharacters = m.gauge("total_characters", "Number of characters known to the store")
	m.totalAssignments = m.gauge("total_assignments", "Number of loot assignments held by the store")
	m.repositoryUpdateLatency = m.histogram("repository_update_latency_milliseconds",
		"Repository write latency in milliseconds", m.histogramBuckets)
	m.repositoryQueryLatency = m.histogram("repository_query_latency_milliseconds",
		"Repository read latency in milliseconds", m.histogramBuckets)

	m.queueSize = m.gauge("queue_size", "Current size of the evaluation job queue")
	m.queueCapacity = m.gauge("queue_capacity", "Maximum capacity of the evaluation job queue")
	m.queueUtilization = m.gauge("queue_utilization_ratio", "Queue utilization ratio (0.0 to 1.0)")
	m.queueEnqueueRate = m.counter("queue_enqueue_total", "Total number of jobs enqueued")
	m.queueDequeueRate = m.counter("queue_dequeue_total", "Total number of jobs dequeued")
	m.queueEnqueueErrors = m.counter("queue_enqueue_errors_total", "Total number of enqueue errors")
	m.queueProcessingLatency = m.histogram("queue_processing_latency_milliseconds",
		"Time a job waited in the queue in milliseconds", m.histogramBuckets)

	m.workerCount = m.gauge("worker_count", "Configured number of workers")
	m.workerActiveCount = m.gauge("worker_active_count", "Number of workers scoring a job")
	m.workerIdleCount = m.gauge("worker_idle_count", "Number of idle workers")
	m.workerProcessingLatency = m.histogram("worker_processing_latency_milliseconds",
		"Worker job processing latency in milliseconds", m.histogramBuckets)
	m.workerErrorRate = m.counter("worker_errors_total", "Total number of worker errors")

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Errors by component and type",
		},
		[]string{"component", "error_type"},
	)
}

// RecordEvaluation increments the evaluations counter.
func RecordEvaluation() {
	globalManager.evaluations.Inc()
}

// RecordCandidateScored increments the scored candidates counter.
func RecordCandidateScored() {
	globalManager.candidatesScored.Inc()
}

// RecordAlreadyOwned increments the already-owned counter.
func RecordAlreadyOwned() {
	globalManager.alreadyOwned.Inc()
}

// RecordScore observes a final candidate score.
func RecordScore(score int) {
	globalManager.scoreDistribution.Observe(float64(score))
}

// RecordScoringLatency records scoring latency in milliseconds.
func RecordScoringLatency(latencyMs float64) {
	globalManager.scoringLatency.Observe(latencyMs)
}

// RecordEvaluationLatency records whole evaluation latency in milliseconds.
func RecordEvaluationLatency(latencyMs float64) {
	globalManager.evaluationLatency.Observe(latencyMs)
}

// RecordAssignment increments the assignments counter.
func RecordAssignment() {
	globalManager.assignments.Inc()
}

// RecordScoringError increments the scoring errors counter.
func RecordScoringError() {
	globalManager.scoringErrors.Inc()
}

// RecordEvaluationFailure increments the failed evaluations counter.
func RecordEvaluationFailure() {
	globalManager.evaluationFailures.Inc()
}

// RecordSnapshotIngested counts a stored snapshot of the given source kind.
func RecordSnapshotIngested(source string) {
	globalManager.snapshotsIngested.WithLabelValues(source).Inc()
}

// RecordSnapshotIgnored counts a snapshot superseded before it was stored.
func RecordSnapshotIgnored(source string) {
	globalManager.snapshotsIgnored.WithLabelValues(source).Inc()
}

// RecordUnknownItem counts a source entry missing from the catalog.
func RecordUnknownItem() {
	globalManager.unknownItems.Inc()
}

// RecordTrackUnresolved counts a gear item kept without a track.
func RecordTrackUnresolved() {
	globalManager.trackUnresolved.Inc()
}

// UpdateCatalogItems sets the catalog size.
func UpdateCatalogItems(count int) {
	globalManager.catalogItems.Set(float64(count))
}

// UpdateTotalCharacters sets the number of stored characters.
func UpdateTotalCharacters(count int) {
	globalManager.totalCharacters.Set(float64(count))
}

// UpdateTotalAssignments sets the number of stored assignments.
func UpdateTotalAssignments(count int) {
	globalManager.totalAssignments.Set(float64(count))
}

// RecordRepositoryUpdateLatency records repository update operation latency.
func RecordRepositoryUpdateLatency(latencyMs float64) {
	globalManager.repositoryUpdateLatency.Observe(latencyMs)
}

// RecordRepositoryQueryLatency records repository query operation latency.
func RecordRepositoryQueryLatency(latencyMs float64) {
	globalManager.repositoryQueryLatency.Observe(latencyMs)
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueueRate.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeueRate.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// RecordQueueProcessingLatency records how long a job waited in the queue.
func RecordQueueProcessingLatency(latencyMs float64) {
	globalManager.queueProcessingLatency.Observe(latencyMs)
}

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// UpdateWorkerActiveCount sets the number of active workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActiveCount.Set(float64(count))
}

// UpdateWorkerIdleCount sets the number of idle workers.
func UpdateWorkerIdleCount(count int) {
	globalManager.workerIdleCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrorRate.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
