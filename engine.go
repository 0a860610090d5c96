// Package spatiox is an in-memory spatio-temporal point index: it ingests
// geo-referenced observations (latitude, longitude, timestamp) and answers
// combined spatial + temporal queries over them.
//
// Engine performs no internal locking. Multiple concurrent readers against
// a quiescent engine are safe; any Insert, BulkInsert, Build, or Clear must
// be serialized against all readers by the caller — see package concurrent
// for a ready-made wrapper that does this with a sync.RWMutex.
package spatiox

import (
	"github.com/coderconnoisseur/SpatioX/index"
	"github.com/coderconnoisseur/SpatioX/internal/logging"
	"github.com/coderconnoisseur/SpatioX/model"
	"github.com/coderconnoisseur/SpatioX/query"
	"github.com/coderconnoisseur/SpatioX/recordtable"
	"github.com/coderconnoisseur/SpatioX/temporal"
)

// Record re-exports model.Record so callers never need to import the
// model package directly.
type Record = model.Record

// RecordInput re-exports model.RecordInput, the unassigned-ID shape
// BulkInsert accepts.
type RecordInput = model.RecordInput

// QueryStats re-exports query.Stats, the instrumented-query report.
type QueryStats = query.Stats

// Engine wires the record table, spatial tree, and temporal index behind
// a single public operation surface. It is the single load-bearing
// struct of this package; every public method is a thin, uninstrumented
// call into the three components or the coordinator.
type Engine struct {
	records  *recordtable.Table
	spatial  *index.Tree
	temporal *temporal.Index
	coord    *query.Coordinator
}

// New returns an empty engine ready to accept inserts.
func New() *Engine {
	records := recordtable.New()
	spatial := index.New()
	temp := temporal.New()
	return &Engine{
		records:  records,
		spatial:  spatial,
		temporal: temp,
		coord:    query.New(records, spatial, temp),
	}
}

// Insert allocates an identifier for (lat, lon, t) and adds it to all three
// components. All three writes must land for the identifier to be
// queryable from every component; this implementation never fails
// partway (each step is an in-memory append), so insertion is fail-stop
// by construction rather than by recovery logic.
func (e *Engine) Insert(lat, lon float32, t float64) uint64 {
	id := e.records.Add(lat, lon, t)
	e.spatial.Insert(lat, lon, id)
	e.temporal.Insert(t, id)
	logging.L().Debug().Uint64("id", id).Msg("insert")
	return id
}

// BulkInsert inserts a batch of records and returns their identifiers in
// the same order as the input. Equivalent to calling Insert once per
// record, exposed as a single call so a caller need only serialize once
// against readers for the whole batch.
func (e *Engine) BulkInsert(records []RecordInput) []uint64 {
	ids := make([]uint64, 0, len(records))
	for _, r := range records {
		ids = append(ids, e.Insert(r.Lat, r.Lon, r.Timestamp))
	}
	logging.L().Debug().Int("count", len(records)).Msg("bulk_insert")
	return ids
}

// Build is a reserved hook for a future rebalancing pass; in this revision
// it only flips the diagnostic IsBuilt flag reported by GetIndexStats.
func (e *Engine) Build() {
	e.spatial.Build()
	logging.L().Debug().Msg("build")
}

// QueryRadius returns identifiers within radiusKm of (centerLat, centerLon).
func (e *Engine) QueryRadius(centerLat, centerLon float32, radiusKm float64) []uint64 {
	return e.spatial.RadiusQuery(centerLat, centerLon, radiusKm)
}

// QueryBox returns identifiers inside the closed box
// [latMin, latMax] x [lonMin, lonMax].
func (e *Engine) QueryBox(latMin, lonMin, latMax, lonMax float32) []uint64 {
	return e.spatial.BoxQuery(latMin, lonMin, latMax, lonMax)
}

// QueryKNN returns up to k identifiers nearest (lat, lon).
func (e *Engine) QueryKNN(lat, lon float32, k int) []uint64 {
	return e.spatial.KNN(lat, lon, k)
}

// QueryRadiusTime composes QueryRadius with a [tStart, tEnd] time filter.
func (e *Engine) QueryRadiusTime(centerLat, centerLon float32, radiusKm, tStart, tEnd float64) []uint64 {
	return e.coord.RadiusTime(centerLat, centerLon, radiusKm, tStart, tEnd)
}

// QueryBoxTime composes QueryBox with a [tStart, tEnd] time filter.
func (e *Engine) QueryBoxTime(latMin, lonMin, latMax, lonMax float32, tStart, tEnd float64) []uint64 {
	return e.coord.BoxTime(latMin, lonMin, latMax, lonMax, tStart, tEnd)
}

// QueryKNNTime composes QueryKNN with a [tStart, tEnd] time filter using
// the 3k-fetch heuristic described in package query.
func (e *Engine) QueryKNNTime(lat, lon float32, k int, tStart, tEnd float64) []uint64 {
	return e.coord.KNNTime(lat, lon, k, tStart, tEnd)
}

// QueryRadiusTimeInstrumented is semantically identical to
// QueryRadiusTime, additionally returning traversal and time-filter
// statistics for performance tuning.
func (e *Engine) QueryRadiusTimeInstrumented(centerLat, centerLon float32, radiusKm, tStart, tEnd float64) ([]uint64, QueryStats) {
	return e.coord.RadiusTimeInstrumented(centerLat, centerLon, radiusKm, tStart, tEnd)
}

// GetRecord returns the record for id, or false if id was never assigned
// or the engine has since been cleared.
func (e *Engine) GetRecord(id uint64) (Record, bool) {
	return e.records.Get(id)
}

// Size returns the number of live records.
func (e *Engine) Size() int {
	return e.records.Size()
}

// Clear atomically (from the caller's perspective) destroys all three
// components: record table, spatial tree, and temporal index.
func (e *Engine) Clear() {
	e.records.Clear()
	e.spatial.Clear()
	e.temporal.Clear()
	logging.L().Debug().Msg("clear")
}

// GetIndexStats returns a snapshot of engine size and structural state.
func (e *Engine) GetIndexStats() IndexStats {
	minT, maxT := e.temporal.Envelope()
	return IndexStats{
		TotalRecords:    e.records.Size(),
		SpatialNodes:    e.spatial.Size(),
		TemporalEntries: e.temporal.Size(),
		MinTime:         minT,
		MaxTime:         maxT,
		IsBuilt:         e.spatial.IsBuilt(),
	}
}
