// Package recordtable is the canonical store of record data: one
// contiguous buffer that only Clear shrinks, plus a dense identifier
// allocator.
// Every other component refers back here by identifier; nothing but the
// record table owns coordinate or timestamp data.
package recordtable

import "github.com/coderconnoisseur/SpatioX/model"

// Table assigns identifiers starting at 1 and stores records in a single
// growing slice. Records are never deleted individually — the only way to
// shrink it is Clear, which drops everything and resets the allocator.
type Table struct {
	records []model.Record
	index   map[uint64]int
	nextID  uint64
}

// New returns an empty record table ready to accept inserts.
func New() *Table {
	return &Table{
		index:  make(map[uint64]int),
		nextID: 1,
	}
}

// Add allocates the next identifier, appends the record, and returns the
// identifier. No validation of lat/lon ranges is performed — the caller
// owns domain validation.
func (t *Table) Add(lat, lon float32, ts float64) uint64 {
	id := t.nextID
	t.nextID++

	idx := len(t.records)
	t.records = append(t.records, model.Record{Lat: lat, Lon: lon, Timestamp: ts, ID: id})
	t.index[id] = idx
	return id
}

// Get returns the record for id, or false if id was never assigned.
func (t *Table) Get(id uint64) (model.Record, bool) {
	idx, ok := t.index[id]
	if !ok {
		return model.Record{}, false
	}
	return t.records[idx], true
}

// GetRef returns a non-owning pointer into the underlying buffer. Add may
// grow past the slice's capacity and reallocate the backing array, which
// invalidates every pointer handed out by a prior GetRef — callers must not
// hold one across a call into Add, BulkInsert, or Clear.
func (t *Table) GetRef(id uint64) (*model.Record, bool) {
	idx, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return &t.records[idx], true
}

// Size returns the number of live records.
func (t *Table) Size() int {
	return len(t.records)
}

// Clear drops every record and resets the identifier allocator to 1.
func (t *Table) Clear() {
	t.records = nil
	t.index = make(map[uint64]int)
	t.nextID = 1
}
