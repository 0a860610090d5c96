// Package temporal is the ordered (timestamp -> identifier) multi-map: it
// answers range queries and maintains the global [min, max] envelope used
// to reject out-of-range queries before they ever touch the spatial tree.
package temporal

import "sort"

// entry is one (timestamp, identifier) pair. Equal timestamps are allowed
// and preserved in insertion order within that timestamp.
type entry struct {
	t  float64
	id uint64
}

// Index is an ordered multimap keyed by timestamp, backed by a slice kept
// sorted by t. Inserts are O(n) (shift on insertion point) and range
// queries are O(log n + matches), which is the right tradeoff at the
// record counts this engine targets: no background rebalancing, no tree
// node overhead, good cache locality for range scans.
type Index struct {
	entries []entry
	minTime float64
	maxTime float64
	hasData bool
}

// New returns an empty temporal index. The envelope starts at sentinel
// values such that any range query's overlap check fails until the first
// insert.
func New() *Index {
	return &Index{}
}

// Insert records a (t, id) pair and extends the envelope if needed.
func (idx *Index) Insert(t float64, id uint64) {
	pos := sort.Search(len(idx.entries), func(i int) bool { return idx.entries[i].t > t })
	idx.entries = append(idx.entries, entry{})
	copy(idx.entries[pos+1:], idx.entries[pos:])
	idx.entries[pos] = entry{t: t, id: id}

	if !idx.hasData {
		idx.minTime, idx.maxTime = t, t
		idx.hasData = true
	} else {
		if t < idx.minTime {
			idx.minTime = t
		}
		if t > idx.maxTime {
			idx.maxTime = t
		}
	}
}

// Range returns identifiers whose timestamps fall in the closed interval
// [tStart, tEnd], in ascending-timestamp order. A query outside the
// envelope returns empty without touching the underlying slice.
func (idx *Index) Range(tStart, tEnd float64) []uint64 {
	if !idx.Overlaps(tStart, tEnd) {
		return nil
	}

	lower := sort.Search(len(idx.entries), func(i int) bool { return idx.entries[i].t >= tStart })
	upper := sort.Search(len(idx.entries), func(i int) bool { return idx.entries[i].t > tEnd })

	if lower >= upper {
		return nil
	}
	results := make([]uint64, 0, upper-lower)
	for _, e := range idx.entries[lower:upper] {
		results = append(results, e.id)
	}
	return results
}

// Overlaps reports whether [tStart, tEnd] intersects the current envelope.
// An empty index never overlaps anything.
func (idx *Index) Overlaps(tStart, tEnd float64) bool {
	if !idx.hasData {
		return false
	}
	return !(tEnd < idx.minTime || tStart > idx.maxTime)
}

// Envelope returns the minimum and maximum timestamps ever inserted since
// the last Clear.
func (idx *Index) Envelope() (minTime, maxTime float64) {
	return idx.minTime, idx.maxTime
}

// Size returns the number of (t, id) entries.
func (idx *Index) Size() int {
	return len(idx.entries)
}

// Clear drops every entry and reverts the envelope to its sentinel state.
func (idx *Index) Clear() {
	idx.entries = nil
	idx.minTime, idx.maxTime = 0, 0
	idx.hasData = false
}
