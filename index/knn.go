package index

import (
	"container/heap"

	"github.com/coderconnoisseur/SpatioX/model"
)

// candidate is one member of the bounded k-NN heap.
type candidate struct {
	id   uint64
	dist float64
}

// candidateHeap is a max-heap keyed by distance: the worst (largest
// distance) candidate sits at the top, so it's the one evicted when a
// closer point is found.
type candidateHeap []candidate

func (h candidateHeap) Len() int            { return len(h) }
func (h candidateHeap) Less(i, j int) bool  { return h[i].dist > h[j].dist }
func (h candidateHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x interface{}) { *h = append(*h, x.(candidate)) }
func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// KNN returns up to k identifiers nearest (lat, lon) by Haversine distance.
// If the tree holds fewer than k points, all are returned. If k == 0 or the
// tree is empty, the result is empty. Result order is heap order, not
// distance order — callers that need sorted output must sort externally.
func (t *Tree) KNN(lat, lon float32, k int) []uint64 {
	if k == 0 || t.root == nil {
		return nil
	}

	h := &candidateHeap{}
	heap.Init(h)
	knnRecurse(t.root, lat, lon, k, h)

	results := make([]uint64, len(*h))
	for i, c := range *h {
		results[i] = c.id
	}
	return results
}

func knnRecurse(n *node, lat, lon float32, k int, h *candidateHeap) {
	if n == nil {
		return
	}

	dist := model.HaversineMeters(lat, lon, n.lat, n.lon)
	if h.Len() < k {
		heap.Push(h, candidate{id: n.id, dist: dist})
	} else if dist < (*h)[0].dist {
		(*h)[0] = candidate{id: n.id, dist: dist}
		heap.Fix(h, 0)
	}

	var queryVal, nodeVal float32
	if n.axis == axisLat {
		queryVal, nodeVal = lat, n.lat
	} else {
		queryVal, nodeVal = lon, n.lon
	}

	near, far := n.left, n.right
	if queryVal >= nodeVal {
		near, far = n.right, n.left
	}

	knnRecurse(near, lat, lon, k, h)

	var planeLat, planeLon float32
	if n.axis == axisLat {
		planeLat, planeLon = n.value(axisLat), lon
	} else {
		planeLat, planeLon = lat, n.value(axisLon)
	}
	planeDist := model.HaversineMeters(lat, lon, planeLat, planeLon)

	if h.Len() < k || planeDist < (*h)[0].dist {
		knnRecurse(far, lat, lon, k, h)
	}
}
