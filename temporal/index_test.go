package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeReturnsAscendingTimestampOrder(t *testing.T) {
	idx := New()
	idx.Insert(3.0, 10)
	idx.Insert(1.0, 20)
	idx.Insert(2.0, 30)

	got := idx.Range(0, 5)
	assert.Equal(t, []uint64{20, 30, 10}, got)
}

func TestRangeIsClosedInterval(t *testing.T) {
	idx := New()
	idx.Insert(1.0, 1)
	idx.Insert(2.0, 2)
	idx.Insert(3.0, 3)

	assert.Equal(t, []uint64{1, 2}, idx.Range(1.0, 2.0))
}

func TestEqualTimestampsArePreserved(t *testing.T) {
	idx := New()
	idx.Insert(5.0, 1)
	idx.Insert(5.0, 2)

	got := idx.Range(5.0, 5.0)
	assert.ElementsMatch(t, []uint64{1, 2}, got)
}

func TestEnvelopeTracksMinMax(t *testing.T) {
	idx := New()
	idx.Insert(10, 1)
	idx.Insert(-5, 2)
	idx.Insert(100, 3)

	min, max := idx.Envelope()
	assert.Equal(t, -5.0, min)
	assert.Equal(t, 100.0, max)
}

func TestQuickRejectOutsideEnvelope(t *testing.T) {
	idx := New()
	for i := 0; i < 10000; i++ {
		idx.Insert(float64(i+1), uint64(i+1))
	}

	assert.False(t, idx.Overlaps(20000, 30000))
	assert.Empty(t, idx.Range(20000, 30000))
}

func TestClearRevertsToSentinelEnvelope(t *testing.T) {
	idx := New()
	idx.Insert(1, 1)
	idx.Clear()

	assert.Equal(t, 0, idx.Size())
	assert.False(t, idx.Overlaps(-1e9, 1e9))
	assert.Empty(t, idx.Range(-1e9, 1e9))
}

func TestEmptyIndexNeverOverlaps(t *testing.T) {
	idx := New()
	assert.False(t, idx.Overlaps(0, 0))
}
