// Package concurrent provides a turnkey single-writer/multi-reader wrapper
// around spatiox.Engine, for hosts that would rather not hand-roll the
// serialization spatiox.Engine's concurrency contract requires. It changes
// nothing about the core engine's own no-locking behavior — it is a
// separate struct, built the way this project's original file-backed store
// guarded concurrent access with a sync.RWMutex around read and write
// paths.
package concurrent

import (
	"sync"

	"github.com/coderconnoisseur/SpatioX"
)

// Engine read-locks every query and write-locks every mutation against a
// wrapped spatiox.Engine. Multiple Engine values must not wrap the same
// spatiox.Engine — construct exactly one Engine per underlying engine.
type Engine struct {
	mu     sync.RWMutex
	engine *spatiox.Engine
}

// New wraps a freshly created spatiox.Engine.
func New() *Engine {
	return &Engine{engine: spatiox.New()}
}

// Insert serializes against all readers and other writers.
func (e *Engine) Insert(lat, lon float32, t float64) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.engine.Insert(lat, lon, t)
}

// BulkInsert serializes the whole batch as a single write.
func (e *Engine) BulkInsert(records []spatiox.RecordInput) []uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.engine.BulkInsert(records)
}

// Build serializes against all readers and other writers.
func (e *Engine) Build() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.engine.Build()
}

// Clear serializes against all readers and other writers.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.engine.Clear()
}

// QueryRadius read-locks for the duration of the query.
func (e *Engine) QueryRadius(centerLat, centerLon float32, radiusKm float64) []uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.engine.QueryRadius(centerLat, centerLon, radiusKm)
}

// QueryBox read-locks for the duration of the query.
func (e *Engine) QueryBox(latMin, lonMin, latMax, lonMax float32) []uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.engine.QueryBox(latMin, lonMin, latMax, lonMax)
}

// QueryKNN read-locks for the duration of the query.
func (e *Engine) QueryKNN(lat, lon float32, k int) []uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.engine.QueryKNN(lat, lon, k)
}

// QueryRadiusTime read-locks for the duration of the query.
func (e *Engine) QueryRadiusTime(centerLat, centerLon float32, radiusKm, tStart, tEnd float64) []uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.engine.QueryRadiusTime(centerLat, centerLon, radiusKm, tStart, tEnd)
}

// QueryBoxTime read-locks for the duration of the query.
func (e *Engine) QueryBoxTime(latMin, lonMin, latMax, lonMax float32, tStart, tEnd float64) []uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.engine.QueryBoxTime(latMin, lonMin, latMax, lonMax, tStart, tEnd)
}

// QueryKNNTime read-locks for the duration of the query.
func (e *Engine) QueryKNNTime(lat, lon float32, k int, tStart, tEnd float64) []uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.engine.QueryKNNTime(lat, lon, k, tStart, tEnd)
}

// QueryRadiusTimeInstrumented read-locks for the duration of the query.
func (e *Engine) QueryRadiusTimeInstrumented(centerLat, centerLon float32, radiusKm, tStart, tEnd float64) ([]uint64, spatiox.QueryStats) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.engine.QueryRadiusTimeInstrumented(centerLat, centerLon, radiusKm, tStart, tEnd)
}

// GetRecord read-locks for the duration of the lookup.
func (e *Engine) GetRecord(id uint64) (spatiox.Record, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.engine.GetRecord(id)
}

// Size read-locks for the duration of the lookup.
func (e *Engine) Size() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.engine.Size()
}

// GetIndexStats read-locks for the duration of the snapshot.
func (e *Engine) GetIndexStats() spatiox.IndexStats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.engine.GetIndexStats()
}
