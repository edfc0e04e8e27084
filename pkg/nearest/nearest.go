// Package nearest wraps a KD-tree over a road graph's planar node
// coordinates, used by both the orientation search (nearest node per
// rotated sample) and the router (nearest node to each segment
// endpoint).
package nearest

import (
	"github.com/kyroy/kdtree"
	"github.com/paulmach/orb"

	"github.com/jphacks/routeart/pkg/geo"
)

// indexedPoint is a KD-tree leaf carrying the node index it represents,
// so a KNN hit can be mapped straight back to a graph node.
type indexedPoint struct {
	idx   int32
	point orb.Point
}

func (p *indexedPoint) Dimensions() int { return 2 }

func (p *indexedPoint) Dimension(i int) float64 { return p.point[i] }

// Index is a KD-tree over road-graph node planar coordinates. Built
// once per request and dropped at request end.
type Index struct {
	tree   *kdtree.KDTree
	points []*indexedPoint
}

// Build constructs an Index over coords, where the slice position is
// the node index.
func Build(coords []geo.Point) *Index {
	points := make([]*indexedPoint, len(coords))
	leaves := make([]kdtree.Point, len(coords))
	for i, c := range coords {
		ip := &indexedPoint{idx: int32(i), point: orb.Point{c.X, c.Y}}
		points[i] = ip
		leaves[i] = ip
	}
	return &Index{tree: kdtree.New(leaves), points: points}
}

// Nearest returns the index of the graph node whose planar coordinate
// is closest to p, breaking exact-distance ties by the lowest node
// index so repeated queries are deterministic. Returns -1 for an empty
// index.
func (ix *Index) Nearest(p geo.Point) int32 {
	if len(ix.points) == 0 {
		return -1
	}
	q := orb.Point{p.X, p.Y}
	hits := ix.tree.KNN(&indexedPoint{point: q}, tieBreakWindow(len(ix.points)))
	if len(hits) == 0 {
		return -1
	}

	best := hits[0].(*indexedPoint)
	bestDist := sqDist(best.point, q)
	for _, h := range hits[1:] {
		ip := h.(*indexedPoint)
		d := sqDist(ip.point, q)
		if d < bestDist || (d == bestDist && ip.idx < best.idx) {
			best, bestDist = ip, d
		}
	}
	return best.idx
}

// tieBreakWindow bounds how many candidates Nearest inspects to resolve
// exact-distance ties deterministically, without scanning the whole
// index on every query.
func tieBreakWindow(n int) int {
	const window = 8
	if n < window {
		return n
	}
	return window
}

func sqDist(a, b orb.Point) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return dx*dx + dy*dy
}
