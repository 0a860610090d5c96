package index

// BoxQuery returns the identifiers of every point inside the closed box
// [latMin, latMax] x [lonMin, lonMax]. No antimeridian wrap-around is
// performed — callers that need it must issue two queries.
func (t *Tree) BoxQuery(latMin, lonMin, latMax, lonMax float32) []uint64 {
	var results []uint64
	boxRecurse(t.root, latMin, lonMin, latMax, lonMax, &results)
	return results
}

func boxRecurse(n *node, latMin, lonMin, latMax, lonMax float32, results *[]uint64) {
	if n == nil {
		return
	}

	if n.lat >= latMin && n.lat <= latMax && n.lon >= lonMin && n.lon <= lonMax {
		*results = append(*results, n.id)
	}

	if n.axis == axisLat {
		if latMin <= n.lat {
			boxRecurse(n.left, latMin, lonMin, latMax, lonMax, results)
		}
		if latMax >= n.lat {
			boxRecurse(n.right, latMin, lonMin, latMax, lonMax, results)
		}
	} else {
		if lonMin <= n.lon {
			boxRecurse(n.left, latMin, lonMin, latMax, lonMax, results)
		}
		if lonMax >= n.lon {
			boxRecurse(n.right, latMin, lonMin, latMax, lonMax, results)
		}
	}
}
