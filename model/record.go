// Package model defines the data shared by every component of the index:
// the immutable point-in-time observation a caller inserts, and the
// great-circle distance function the spatial tree prunes against.
package model

// Record is a single geo-referenced observation. Once inserted it is never
// mutated; the only way to remove one is Engine.Clear, which drops every
// record at once.
type Record struct {
	Lat       float32 // degrees, caller-owned range [-90, 90]
	Lon       float32 // degrees, caller-owned range [-180, 180]
	Timestamp float64 // opaque, totally ordered, compared with <=
	ID        uint64  // assigned by the record table, 0 means unassigned
}

// RecordInput is the unassigned-ID counterpart of Record, used by BulkInsert
// where the caller supplies coordinates and a timestamp but not an ID.
type RecordInput struct {
	Lat       float32
	Lon       float32
	Timestamp float64
}
