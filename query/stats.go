package query

import "github.com/coderconnoisseur/SpatioX/index"

// Stats is the instrumented query's report: the spatial tree's traversal
// counters, verbatim, plus how many spatial candidates the time filter let
// through or rejected.
type Stats struct {
	SpatialNodesVisited   int
	SpatialDistanceChecks int
	SpatialBBoxPrunes     int
	SpatialDistancePrunes int
	RecordsFilteredByTime int
	RecordsPassedTime     int
	ResultCount           int
}

func fromSpatial(s index.QueryStats) Stats {
	return Stats{
		SpatialNodesVisited:   s.NodesVisited,
		SpatialDistanceChecks: s.DistanceChecks,
		SpatialBBoxPrunes:     s.BBoxPrunes,
		SpatialDistancePrunes: s.DistancePrunes,
	}
}
