// Package shape conditions the user's freehand drawing into the
// fixed-size, metre-scaled resamples the rest of the engine operates
// on: a high-resolution copy for orientation search and a
// low-resolution copy for routing, expressed in the road graph's own
// planar frame.
package shape

import (
	"github.com/jphacks/routeart/pkg/geo"
	"github.com/jphacks/routeart/pkg/projection"
)

// Conditioned is one resample of the drawing. Planar is in the road
// graph's planar frame, ready for orientation search or routing; LatLon
// is the same points in geographic coordinates. The double conversion
// (scaled drawing -> lat/lon -> graph planar) keeps the shape in
// exactly the graph's frame; the two mappings are not inverses when the
// graph uses a non-equirectangular projection, so it must not be
// short-circuited.
type Conditioned struct {
	Planar []geo.Point
	LatLon []geo.LatLon
}

// Condition resamples drawing to n points, translates it so the first
// point sits at the origin, and scales it so its arc length equals
// targetLengthM. For a zero-length drawing (all points coincide) every
// output point collapses onto the anchor; IsDegenerate reports this so
// the caller can fall back to a single-node route.
func Condition(drawing []geo.Point, n int, targetLengthM float64, anchor geo.LatLon, graphProj projection.Projector) Conditioned {
	resampled := geo.Resample(drawing, n)

	origin := resampled[0]
	translated := make([]geo.Point, len(resampled))
	for i, p := range resampled {
		translated[i] = geo.Point{X: p.X - origin.X, Y: p.Y - origin.Y}
	}

	arcLen := geo.PolylineLength(translated)

	var scaled []geo.Point
	if arcLen == 0 {
		scaled = make([]geo.Point, n)
		// Degenerate: every point maps to the anchor (planar origin).
	} else {
		scaled = geo.Scale(translated, targetLengthM/arcLen)
	}

	fallback := projection.NewEquirect(anchor)
	latlon := make([]geo.LatLon, n)
	for i, p := range scaled {
		latlon[i] = fallback.Inverse(p)
	}

	planar := make([]geo.Point, n)
	proj := graphProj
	if proj == nil {
		proj = fallback
	}
	for i, ll := range latlon {
		planar[i] = proj.Forward(ll)
	}

	return Conditioned{Planar: planar, LatLon: latlon}
}

// IsDegenerate reports whether the drawing that produced c had zero arc
// length.
func (c Conditioned) IsDegenerate() bool {
	return geo.PolylineLength(c.Planar) == 0
}
