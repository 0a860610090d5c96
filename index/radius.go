package index

import "github.com/coderconnoisseur/SpatioX/model"

// QueryStats accumulates instrumentation for a single query call. BBoxPrunes
// is reserved for a future bounding-box prune and stays zero until that
// prune exists.
type QueryStats struct {
	NodesVisited   int
	DistanceChecks int
	BBoxPrunes     int
	DistancePrunes int
}

func (s *QueryStats) reset() {
	*s = QueryStats{}
}

// RadiusQuery returns the identifiers of every point within radiusKm of
// (centerLat, centerLon), in traversal order (not sorted by distance).
func (t *Tree) RadiusQuery(centerLat, centerLon float32, radiusKm float64) []uint64 {
	results, _ := t.radiusQuery(centerLat, centerLon, radiusKm, nil)
	return results
}

// RadiusQueryInstrumented is semantically identical to RadiusQuery but
// additionally reports traversal statistics for performance tuning.
func (t *Tree) RadiusQueryInstrumented(centerLat, centerLon float32, radiusKm float64) ([]uint64, QueryStats) {
	stats := &QueryStats{}
	results, stats := t.radiusQuery(centerLat, centerLon, radiusKm, stats)
	return results, *stats
}

func (t *Tree) radiusQuery(centerLat, centerLon float32, radiusKm float64, stats *QueryStats) ([]uint64, *QueryStats) {
	if stats != nil {
		stats.reset()
	}
	radiusM := radiusKm * 1000.0
	var results []uint64
	radiusRecurse(t.root, centerLat, centerLon, radiusM, &results, stats)
	return results, stats
}

func radiusRecurse(n *node, centerLat, centerLon float32, radiusM float64, results *[]uint64, stats *QueryStats) {
	if n == nil {
		return
	}
	if stats != nil {
		stats.NodesVisited++
		stats.DistanceChecks++
	}

	dist := model.HaversineMeters(centerLat, centerLon, n.lat, n.lon)
	if dist <= radiusM {
		*results = append(*results, n.id)
	}

	// Plane distance: the Haversine distance from the query point to its
	// projection onto the splitting plane. A lower bound on the true
	// distance to any point on the excluded side — over-approximates near
	// the poles on longitude planes, which can only cause extra recursion,
	// never a missed result.
	var planeLat, planeLon float32
	if n.axis == axisLat {
		planeLat, planeLon = n.value(axisLat), centerLon
	} else {
		planeLat, planeLon = centerLat, n.value(axisLon)
	}
	planeDist := model.HaversineMeters(centerLat, centerLon, planeLat, planeLon)
	if stats != nil {
		stats.DistanceChecks++
	}

	var queryVal float32
	if n.axis == axisLat {
		queryVal = centerLat
	} else {
		queryVal = centerLon
	}
	queryOnLeft := queryVal < n.value(n.axis)

	exploreNear := true
	exploreFar := true
	if planeDist > radiusM {
		exploreFar = false
		if stats != nil {
			stats.DistancePrunes++
		}
	}

	if queryOnLeft {
		if exploreNear {
			radiusRecurse(n.left, centerLat, centerLon, radiusM, results, stats)
		}
		if exploreFar {
			radiusRecurse(n.right, centerLat, centerLon, radiusM, results, stats)
		}
	} else {
		if exploreNear {
			radiusRecurse(n.right, centerLat, centerLon, radiusM, results, stats)
		}
		if exploreFar {
			radiusRecurse(n.left, centerLat, centerLon, radiusM, results, stats)
		}
	}
}
