// Package query is the stateless composition layer: it runs a spatial
// query, filters the candidate identifiers against a time range via the
// record table, and enforces the k-NN-under-time-filter sizing contract.
// It holds references to the other three components but no query-specific
// state of its own — every method is a pure function of its arguments.
package query

import (
	"github.com/coderconnoisseur/SpatioX/index"
	"github.com/coderconnoisseur/SpatioX/internal/logging"
	"github.com/coderconnoisseur/SpatioX/recordtable"
	"github.com/coderconnoisseur/SpatioX/temporal"
)

// fetchMultiplier is the k-NN-under-time-filter heuristic: request
// min(fetchMultiplier*k, N) spatial neighbors before filtering by time.
// Part of the public contract — changing it changes query_knn_time's
// observable results, so it is not configurable.
const fetchMultiplier = 3

// Coordinator composes the spatial tree, the record table, and the
// temporal index into the combined spatial+time and k-NN+time query
// answers. It is constructed once per engine and reused across calls.
type Coordinator struct {
	Records  *recordtable.Table
	Spatial  *index.Tree
	Temporal *temporal.Index
}

// New wires the three components a coordinator needs.
func New(records *recordtable.Table, spatial *index.Tree, temporal *temporal.Index) *Coordinator {
	return &Coordinator{Records: records, Spatial: spatial, Temporal: temporal}
}

// RadiusTime answers a radius query filtered to [tStart, tEnd]. Result
// order follows the spatial query's traversal order.
func (c *Coordinator) RadiusTime(centerLat, centerLon float32, radiusKm, tStart, tEnd float64) []uint64 {
	if !c.Temporal.Overlaps(tStart, tEnd) {
		return nil
	}
	spatialIDs := c.Spatial.RadiusQuery(centerLat, centerLon, radiusKm)
	return c.filterByTime(spatialIDs, tStart, tEnd)
}

// BoxTime answers a box query filtered to [tStart, tEnd].
func (c *Coordinator) BoxTime(latMin, lonMin, latMax, lonMax float32, tStart, tEnd float64) []uint64 {
	if !c.Temporal.Overlaps(tStart, tEnd) {
		return nil
	}
	spatialIDs := c.Spatial.BoxQuery(latMin, lonMin, latMax, lonMax)
	return c.filterByTime(spatialIDs, tStart, tEnd)
}

// KNNTime answers a k-NN query filtered to [tStart, tEnd]. This is
// deliberately NOT an independent k-NN intersected with a time range — that
// would under-return whenever time filters out near neighbors. Instead it
// fetches min(3k, N) spatial neighbors, filters by time, and truncates to
// the first k survivors. This can still return fewer than k identifiers
// when the time filter is selective within the 3k candidate window: a
// known, documented limitation of the heuristic rather than a bug.
func (c *Coordinator) KNNTime(lat, lon float32, k int, tStart, tEnd float64) []uint64 {
	if k == 0 {
		return nil
	}
	n := c.Spatial.Size()
	if n == 0 {
		return nil
	}
	if !c.Temporal.Overlaps(tStart, tEnd) {
		return nil
	}

	fetchK := fetchMultiplier * k
	if fetchK > n {
		fetchK = n
	}

	spatialIDs := c.Spatial.KNN(lat, lon, fetchK)
	filtered := c.filterByTime(spatialIDs, tStart, tEnd)
	if len(filtered) > k {
		filtered = filtered[:k]
	}
	return filtered
}

// RadiusTimeInstrumented is semantically identical to RadiusTime, but
// propagates the spatial traversal stats verbatim and additionally counts
// records passing and failing the time filter.
func (c *Coordinator) RadiusTimeInstrumented(centerLat, centerLon float32, radiusKm, tStart, tEnd float64) ([]uint64, Stats) {
	if !c.Temporal.Overlaps(tStart, tEnd) {
		return nil, Stats{}
	}

	spatialIDs, spatialStats := c.Spatial.RadiusQueryInstrumented(centerLat, centerLon, radiusKm)
	stats := fromSpatial(spatialStats)

	results := make([]uint64, 0, len(spatialIDs))
	for _, id := range spatialIDs {
		rec, ok := c.Records.GetRef(id)
		if !ok {
			logging.L().Warn().Uint64("id", id).Msg("spatial candidate missing from record table")
			continue
		}
		if rec.Timestamp >= tStart && rec.Timestamp <= tEnd {
			results = append(results, id)
			stats.RecordsPassedTime++
		} else {
			stats.RecordsFilteredByTime++
		}
	}
	stats.ResultCount = len(results)
	return results, stats
}

// filterByTime keeps only the spatial candidates whose record timestamp
// falls in [tStart, tEnd], preserving the spatial query's traversal order.
func (c *Coordinator) filterByTime(spatialIDs []uint64, tStart, tEnd float64) []uint64 {
	order := make([]uint64, 0, len(spatialIDs))
	for _, id := range spatialIDs {
		rec, ok := c.Records.GetRef(id)
		if !ok {
			logging.L().Warn().Uint64("id", id).Msg("spatial candidate missing from record table")
			continue
		}
		if rec.Timestamp >= tStart && rec.Timestamp <= tEnd {
			order = append(order, id)
		}
	}
	return order
}
