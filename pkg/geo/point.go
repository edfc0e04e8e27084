// Package geo provides the planar geometry kit used by the shape
// conditioner, orientation search, and router: resampling by arc length,
// rotation about a pivot, point-to-segment distance, and the
// geographic-distance helpers carried over from the road-graph side of
// the module.
package geo

import "math"

// Point is a coordinate in a local planar metric frame (metres), as
// opposed to LatLon which is geographic (degrees). Keeping the two types
// distinct avoids passing a geographic pair where a planar one is
// expected.
type Point struct {
	X, Y float64
}

// LatLon is a geographic coordinate in degrees.
type LatLon struct {
	Lat, Lon float64
}

func dist(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Hypot(dx, dy)
}

// PolylineLength returns the total arc length of the polyline formed by
// points in order. A polyline of fewer than two points has length 0.
func PolylineLength(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += dist(points[i-1], points[i])
	}
	return total
}

// Resample walks the polyline at constant arc-length steps and returns
// exactly n points, linearly interpolating between the original
// vertices. The first output point is always points[0]; the last is
// always the last input point. A degenerate input (all points coincide,
// or fewer than two points) returns n copies of the first point, since
// there is no direction to resample along.
func Resample(points []Point, n int) []Point {
	if n <= 0 {
		return nil
	}
	if len(points) == 0 {
		return make([]Point, n)
	}
	total := PolylineLength(points)
	if n == 1 || len(points) == 1 || total == 0 {
		out := make([]Point, n)
		for i := range out {
			out[i] = points[0]
		}
		return out
	}

	// Cumulative arc length at each input vertex.
	cum := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		cum[i] = cum[i-1] + dist(points[i-1], points[i])
	}

	out := make([]Point, n)
	step := total / float64(n-1)
	seg := 1
	for i := 0; i < n; i++ {
		target := step * float64(i)
		if i == n-1 {
			target = total
		}
		for seg < len(cum)-1 && cum[seg] < target {
			seg++
		}
		segStart := cum[seg-1]
		segEnd := cum[seg]
		var ratio float64
		if segEnd > segStart {
			ratio = (target - segStart) / (segEnd - segStart)
		}
		a := points[seg-1]
		b := points[seg]
		out[i] = Point{
			X: a.X + (b.X-a.X)*ratio,
			Y: a.Y + (b.Y-a.Y)*ratio,
		}
	}
	return out
}

// Rotate rotates every point by theta radians (counter-clockwise,
// standard mathematical orientation) about pivot.
func Rotate(points []Point, theta float64, pivot Point) []Point {
	out := make([]Point, len(points))
	sin, cos := math.Sincos(theta)
	for i, p := range points {
		dx := p.X - pivot.X
		dy := p.Y - pivot.Y
		out[i] = Point{
			X: pivot.X + dx*cos - dy*sin,
			Y: pivot.Y + dx*sin + dy*cos,
		}
	}
	return out
}

// Centroid returns the arithmetic mean of points. Orientation search
// does not use it: rotations there pivot on the shape's first point.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return Point{X: sx / n, Y: sy / n}
}

// Scale multiplies every coordinate offset from origin by factor. Used
// by the conditioner to bring the drawing's arc length in line with the
// configured target-length fraction.
func Scale(points []Point, factor float64) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{X: p.X * factor, Y: p.Y * factor}
	}
	return out
}

// PointToSegment returns the sum, over `samples` equally spaced points
// along segment A-B, of the distance from each sampled point to segment
// prev-curr (the candidate road edge), clamped to the segment's
// endpoints. It measures how far the candidate edge strays from the
// ideal shape segment it is meant to trace.
//
// When prev == curr (a degenerate candidate edge, geometrically a
// point), the sum collapses to samples * |prev - A|.
func PointToSegment(prev, curr, a, b Point, samples int) float64 {
	if samples <= 0 {
		return 0
	}
	edge := Point{X: curr.X - prev.X, Y: curr.Y - prev.Y}
	edgeLenSq := edge.X*edge.X + edge.Y*edge.Y
	if edgeLenSq == 0 {
		return float64(samples) * dist(prev, a)
	}

	var total float64
	for i := 0; i < samples; i++ {
		var t float64
		if samples == 1 {
			t = 0
		} else {
			t = float64(i) / float64(samples-1)
		}
		sample := Point{
			X: a.X + (b.X-a.X)*t,
			Y: a.Y + (b.Y-a.Y)*t,
		}

		proj := ((sample.X-prev.X)*edge.X + (sample.Y-prev.Y)*edge.Y) / edgeLenSq
		if proj < 0 {
			proj = 0
		} else if proj > 1 {
			proj = 1
		}
		closest := Point{X: prev.X + edge.X*proj, Y: prev.Y + edge.Y*proj}
		total += dist(sample, closest)
	}
	return total
}
