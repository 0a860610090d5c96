package index

import (
	"math"
	"math/rand"
	"testing"

	"github.com/coderconnoisseur/SpatioX/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAlternatesSplitAxisWithDepth(t *testing.T) {
	tr := New()
	tr.Insert(10, 20, 1)
	tr.Insert(5, 20, 2)  // goes left of root on lat
	tr.Insert(5, 10, 3)  // goes left again, now splits on lon

	assert.Equal(t, axisLat, tr.root.axis)
	assert.Equal(t, axisLon, tr.root.left.axis)
	assert.Equal(t, axisLat, tr.root.left.left.axis)
}

func TestInsertTieBreaksRight(t *testing.T) {
	tr := New()
	tr.Insert(10, 0, 1)
	tr.Insert(10, 0, 2) // equal on lat axis must go right

	require.NotNil(t, tr.root.right)
	assert.Nil(t, tr.root.left)
	assert.Equal(t, uint64(2), tr.root.right.id)
}

func TestEveryNodeBoundingBoxCoversItsSubtree(t *testing.T) {
	tr := New()
	rnd := rand.New(rand.NewSource(1))
	type pt struct {
		lat, lon float32
		id       uint64
	}
	var pts []pt
	for i := 0; i < 500; i++ {
		lat := float32(rnd.Float64()*180 - 90)
		lon := float32(rnd.Float64()*360 - 180)
		id := uint64(i + 1)
		tr.Insert(lat, lon, id)
		pts = append(pts, pt{lat, lon, id})
	}

	var walk func(n *node) map[uint64]bool
	walk = func(n *node) map[uint64]bool {
		if n == nil {
			return nil
		}
		members := map[uint64]bool{n.id: true}
		for id := range walk(n.left) {
			members[id] = true
		}
		for id := range walk(n.right) {
			members[id] = true
		}
		for id := range members {
			var p pt
			for _, candidate := range pts {
				if candidate.id == id {
					p = candidate
					break
				}
			}
			if p.lat < n.minLat || p.lat > n.maxLat || p.lon < n.minLon || p.lon > n.maxLon {
				t.Fatalf("node bbox does not cover subtree member %d: pt=(%v,%v) box=[%v,%v]x[%v,%v]",
					id, p.lat, p.lon, n.minLat, n.maxLat, n.minLon, n.maxLon)
			}
		}
		return members
	}
	walk(tr.root)
}

func TestRadiusQueryExactnessVsBruteForce(t *testing.T) {
	tr := New()
	rnd := rand.New(rand.NewSource(7))
	type pt struct {
		lat, lon float32
		id       uint64
	}
	var pts []pt
	for i := 0; i < 300; i++ {
		lat := float32(rnd.Float64()*180 - 90)
		lon := float32(rnd.Float64()*360 - 180)
		id := uint64(i + 1)
		tr.Insert(lat, lon, id)
		pts = append(pts, pt{lat, lon, id})
	}

	centerLat, centerLon := float32(10.0), float32(20.0)
	radiusKm := 2000.0

	got := tr.RadiusQuery(centerLat, centerLon, radiusKm)
	gotSet := map[uint64]bool{}
	for _, id := range got {
		gotSet[id] = true
	}

	wantSet := map[uint64]bool{}
	for _, p := range pts {
		if model.HaversineMeters(centerLat, centerLon, p.lat, p.lon) <= radiusKm*1000.0 {
			wantSet[p.id] = true
		}
	}

	assert.Equal(t, wantSet, gotSet)
}

func TestBoxQueryMatchesClosedBox(t *testing.T) {
	tr := New()
	tr.Insert(0, 0, 1)
	tr.Insert(0, 1, 2)
	tr.Insert(1, 0, 3)
	tr.Insert(1, 1, 4)

	got := tr.BoxQuery(-0.5, -0.5, 0.5, 0.5)
	assert.ElementsMatch(t, []uint64{1}, got)
}

func TestEndToEndFourPointScenario(t *testing.T) {
	tr := New()
	tr.Insert(0, 0, 1)
	tr.Insert(0, 1, 2)
	tr.Insert(1, 0, 3)
	tr.Insert(1, 1, 4)

	got := tr.RadiusQuery(0, 0, 120)
	assert.ElementsMatch(t, []uint64{1, 2, 3}, got)
}

func TestKNNReturnsMinKAndN(t *testing.T) {
	tr := New()
	tr.Insert(0, 0, 1)
	tr.Insert(0, 1, 2)
	tr.Insert(1, 0, 3)
	tr.Insert(1, 1, 4)

	got := tr.KNN(0, 0, 2)
	assert.Len(t, got, 2)
	assert.Contains(t, got, uint64(1))
	assert.True(t, containsEither(got, 2, 3), "second neighbor should be the (0,1) or (1,0) tie")
}

func containsEither(ids []uint64, a, b uint64) bool {
	for _, id := range ids {
		if id == a || id == b {
			return true
		}
	}
	return false
}

func TestKNNSizeNeverExceedsTreeSize(t *testing.T) {
	tr := New()
	tr.Insert(0, 0, 1)
	tr.Insert(1, 1, 2)

	assert.Len(t, tr.KNN(0, 0, 10), 2)
}

func TestKNNEmptyTreeOrZeroK(t *testing.T) {
	tr := New()
	assert.Empty(t, tr.KNN(0, 0, 5))

	tr.Insert(0, 0, 1)
	assert.Empty(t, tr.KNN(0, 0, 0))
}

func TestKNNEveryReturnedIDCloserThanEveryOmittedID(t *testing.T) {
	tr := New()
	rnd := rand.New(rand.NewSource(3))
	type pt struct {
		lat, lon float32
		id       uint64
	}
	var pts []pt
	for i := 0; i < 200; i++ {
		lat := float32(rnd.Float64()*180 - 90)
		lon := float32(rnd.Float64()*360 - 180)
		id := uint64(i + 1)
		tr.Insert(lat, lon, id)
		pts = append(pts, pt{lat, lon, id})
	}

	k := 5
	qlat, qlon := float32(0), float32(0)
	got := tr.KNN(qlat, qlon, k)
	require.Len(t, got, k)

	returned := map[uint64]bool{}
	worstReturned := 0.0
	for _, id := range got {
		returned[id] = true
	}
	for _, id := range got {
		for _, p := range pts {
			if p.id == id {
				d := model.HaversineMeters(qlat, qlon, p.lat, p.lon)
				worstReturned = math.Max(worstReturned, d)
			}
		}
	}

	for _, p := range pts {
		if returned[p.id] {
			continue
		}
		d := model.HaversineMeters(qlat, qlon, p.lat, p.lon)
		assert.GreaterOrEqual(t, d, worstReturned-1.0, "omitted point %d closer than worst returned", p.id)
	}
}

func TestInstrumentedRadiusMatchesPlainResult(t *testing.T) {
	tr := New()
	for i := 0; i < 50; i++ {
		tr.Insert(float32(i%10), float32(i%7), uint64(i+1))
	}

	plain := tr.RadiusQuery(5, 3, 500)
	instrumented, stats := tr.RadiusQueryInstrumented(5, 3, 500)

	assert.ElementsMatch(t, plain, instrumented)
	assert.Greater(t, stats.NodesVisited, 0)
}

func TestBuildSetsIsBuiltFlagOnly(t *testing.T) {
	tr := New()
	tr.Insert(1, 1, 1)
	assert.False(t, tr.IsBuilt())
	tr.Build()
	assert.True(t, tr.IsBuilt())
	tr.Insert(2, 2, 2)
	assert.False(t, tr.IsBuilt(), "a mutation after Build must clear the diagnostic flag")
}

func TestClearResetsTree(t *testing.T) {
	tr := New()
	tr.Insert(1, 1, 1)
	tr.Clear()
	assert.Equal(t, 0, tr.Size())
	assert.Nil(t, tr.root)
	assert.Empty(t, tr.RadiusQuery(0, 0, 10000))
}
