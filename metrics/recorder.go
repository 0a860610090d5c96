// Package metrics adapts spatiox's snapshot types to Prometheus. It is a
// pure consumer: it never reaches into the engine's internals, only into
// the IndexStats / QueryStats values the engine already hands back, the
// same way this project's ambient stack wires its counters and histograms
// around an existing request/response shape rather than instrumenting
// internals directly.
package metrics

import (
	"github.com/coderconnoisseur/SpatioX"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder exposes engine-level gauges and query-level counters/histograms
// for registration with a prometheus.Registerer.
type Recorder struct {
	totalRecords    prometheus.Gauge
	spatialNodes    prometheus.Gauge
	temporalEntries prometheus.Gauge
	isBuilt         prometheus.Gauge

	nodesVisited     prometheus.Histogram
	distanceChecks   prometheus.Histogram
	distancePrunes   prometheus.Histogram
	recordsFiltered  prometheus.Counter
	recordsPassed    prometheus.Counter
	queriesInstrumented prometheus.Counter
}

// NewRecorder builds an unregistered Recorder. Call MustRegister to attach
// it to a prometheus.Registerer (typically prometheus.DefaultRegisterer).
func NewRecorder() *Recorder {
	return &Recorder{
		totalRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "spatiox_total_records",
			Help: "Number of records currently held by the engine.",
		}),
		spatialNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "spatiox_spatial_nodes",
			Help: "Number of nodes in the spatial tree (equals total records).",
		}),
		temporalEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "spatiox_temporal_entries",
			Help: "Number of entries in the temporal index.",
		}),
		isBuilt: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "spatiox_is_built",
			Help: "1 if Build has run since the last mutation, 0 otherwise.",
		}),
		nodesVisited: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "spatiox_query_nodes_visited",
			Help:    "Spatial tree nodes visited per instrumented query.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 16),
		}),
		distanceChecks: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "spatiox_query_distance_checks",
			Help:    "Haversine distance evaluations per instrumented query.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 16),
		}),
		distancePrunes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "spatiox_query_distance_prunes",
			Help:    "Subtrees pruned by plane-distance per instrumented query.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 16),
		}),
		recordsFiltered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spatiox_records_filtered_by_time_total",
			Help: "Spatial candidates rejected by the time filter.",
		}),
		recordsPassed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spatiox_records_passed_time_total",
			Help: "Spatial candidates that passed the time filter.",
		}),
		queriesInstrumented: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spatiox_instrumented_queries_total",
			Help: "Number of instrumented queries recorded.",
		}),
	}
}

// MustRegister registers every metric with reg, panicking on a duplicate
// registration (the same convention prometheus.MustRegister itself uses).
func (r *Recorder) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		r.totalRecords, r.spatialNodes, r.temporalEntries, r.isBuilt,
		r.nodesVisited, r.distanceChecks, r.distancePrunes,
		r.recordsFiltered, r.recordsPassed, r.queriesInstrumented,
	)
}

// ObserveIndexStats updates the gauges from a fresh snapshot.
func (r *Recorder) ObserveIndexStats(s spatiox.IndexStats) {
	r.totalRecords.Set(float64(s.TotalRecords))
	r.spatialNodes.Set(float64(s.SpatialNodes))
	r.temporalEntries.Set(float64(s.TemporalEntries))
	if s.IsBuilt {
		r.isBuilt.Set(1)
	} else {
		r.isBuilt.Set(0)
	}
}

// ObserveQueryStats records one instrumented query's traversal counters.
func (r *Recorder) ObserveQueryStats(s spatiox.QueryStats) {
	r.nodesVisited.Observe(float64(s.SpatialNodesVisited))
	r.distanceChecks.Observe(float64(s.SpatialDistanceChecks))
	r.distancePrunes.Observe(float64(s.SpatialDistancePrunes))
	r.recordsFiltered.Add(float64(s.RecordsFilteredByTime))
	r.recordsPassed.Add(float64(s.RecordsPassedTime))
	r.queriesInstrumented.Inc()
}
