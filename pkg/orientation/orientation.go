// Package orientation finds the best global rotation for a conditioned
// shape: a uniform sweep of candidate angles, each scored by how
// tightly the rotated samples hug the road graph, measured through a
// KD-tree nearest-node query.
package orientation

import (
	"math"

	"github.com/jphacks/routeart/pkg/geo"
	"github.com/jphacks/routeart/pkg/nearest"
)

// Result is the outcome of a rotation sweep.
type Result struct {
	AngleRad float64 // the winning rotation, radians
	Index    int     // the winning step index, for the stable tie-break
	Score    float64 // sum of dᵢ⁴ at the winning rotation
}

// NodeCoord looks up the planar coordinate of a graph node by index,
// the piece Index itself doesn't expose since it only answers nearest-
// neighbour queries.
type NodeCoord func(idx int32) geo.Point

// Search rotates shapeHiRes about its first point through steps equally
// spaced angles covering a full turn and returns the rotation minimizing
// the sum, over rotated sample points, of the fourth power of distance
// to the nearest road-graph node. The fourth power strongly penalises
// orientations where any sample lies far from the network, preferring
// shapes that fit everywhere over shapes that fit most points well and
// a few badly. Ties are broken by the lowest step index, keeping the
// sweep deterministic.
//
// done, if non-nil, is polled between rotation steps so a host can
// cancel cooperatively; Search returns the best result found so far if
// done fires before any step completes.
func Search(shapeHiRes []geo.Point, index *nearest.Index, coord NodeCoord, steps int, done <-chan struct{}) Result {
	pivot := shapeHiRes[0]
	best := Result{Score: math.Inf(1)}

	for i := 0; i < steps; i++ {
		select {
		case <-done:
			return best
		default:
		}

		theta := 2 * math.Pi * float64(i) / float64(steps)
		rotated := geo.Rotate(shapeHiRes, theta, pivot)

		var score float64
		for _, p := range rotated {
			nodeIdx := index.Nearest(p)
			if nodeIdx < 0 {
				continue
			}
			c := coord(nodeIdx)
			dx := c.X - p.X
			dy := c.Y - p.Y
			d2 := dx*dx + dy*dy
			score += d2 * d2
		}

		if score < best.Score {
			best = Result{AngleRad: theta, Index: i, Score: score}
		}
	}
	return best
}
