package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then metrics are registered under the default namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.evaluations.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "lootcouncil_engine_evaluations_total")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("guild"),
				WithSubsystem("council"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the names follow the options", func() {
				manager.assignments.Inc()
				So(testutil.ToFloat64(manager.assignments), ShouldEqual, 1)
				count, err := testutil.GatherAndCount(registry, "guild_council_assignments_total")
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 1)
			})
		})

		Convey("When two managers share a registry", func() {
			registry := prometheus.NewRegistry()
			NewManager(WithPrometheusRegistry(registry))

			Convey("Then registration panics on duplicates", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording evaluation metrics", func() {
			before := testutil.ToFloat64(globalManager.alreadyOwned)
			So(func() {
				RecordEvaluation()
				RecordCandidateScored()
				RecordAlreadyOwned()
				RecordScore(55)
				RecordScoringLatency(1.5)
				RecordEvaluationLatency(3)
				RecordAssignment()
				RecordScoringError()
				RecordEvaluationFailure()
			}, ShouldNotPanic)

			Convey("Then counters move", func() {
				So(testutil.ToFloat64(globalManager.alreadyOwned), ShouldEqual, before+1)
			})
		})

		Convey("When recording ingestion metrics", func() {
			So(func() {
				RecordSnapshotIngested("simc")
				RecordSnapshotIgnored("droptimizer")
				RecordUnknownItem()
				RecordTrackUnresolved()
				UpdateCatalogItems(120)
			}, ShouldNotPanic)

			Convey("Then labelled counters are tracked per source", func() {
				So(testutil.ToFloat64(globalManager.snapshotsIngested.WithLabelValues("simc")), ShouldBeGreaterThanOrEqualTo, 1)
				So(testutil.ToFloat64(globalManager.catalogItems), ShouldEqual, 120)
			})
		})

		Convey("When recording queue, worker and http metrics", func() {
			So(func() {
				UpdateQueueSize(3)
				UpdateQueueCapacity(10)
				UpdateQueueUtilization(0.3)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError()
				RecordQueueProcessingLatency(2)
				UpdateWorkerCount(4)
				UpdateWorkerActiveCount(1)
				UpdateWorkerIdleCount(3)
				RecordWorkerProcessingLatency(4)
				RecordWorkerError()
				RecordHTTPRequest("/loot/evaluate", "POST", "200")
				RecordHTTPRequestDuration("/loot/evaluate", "POST", "200", 12)
				RecordErrorByComponent("repository", "not_found")
				UpdateTotalCharacters(20)
				UpdateTotalAssignments(5)
				RecordRepositoryUpdateLatency(0.1)
				RecordRepositoryQueryLatency(0.2)
			}, ShouldNotPanic)

			Convey("Then gauges hold the last value", func() {
				So(testutil.ToFloat64(globalManager.queueCapacity), ShouldEqual, 10)
				So(testutil.ToFloat64(globalManager.totalCharacters), ShouldEqual, 20)
			})
		})

		Convey("When reading the registry", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
