package spatiox

// IndexStats is a point-in-time snapshot of the engine's size and
// structural state, suitable for handing to a logging or metrics sink.
type IndexStats struct {
	TotalRecords    int
	SpatialNodes    int
	TemporalEntries int
	MinTime         float64
	MaxTime         float64
	IsBuilt         bool
}
