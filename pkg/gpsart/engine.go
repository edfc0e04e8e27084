// Package gpsart generates GPS art: it takes a freehand screen-space
// drawing, a geographic anchor, and a target distance, and returns a
// runnable/walkable road-network route whose trace approximates the
// drawing. It composes pkg/shape (conditioning), pkg/orientation
// (rotation search), pkg/nearest (KD-tree lookups), and pkg/router
// (shape-constrained shortest path) over a roadgraph.Graph supplied by
// a GraphProvider collaborator. Transport, persistence, and road-graph
// acquisition live outside this package.
package gpsart

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/jphacks/routeart/pkg/geo"
	"github.com/jphacks/routeart/pkg/nearest"
	"github.com/jphacks/routeart/pkg/orientation"
	"github.com/jphacks/routeart/pkg/roadgraph"
	"github.com/jphacks/routeart/pkg/router"
	"github.com/jphacks/routeart/pkg/shape"
)

// DrawingPoint is a screen-space point of the user's freehand drawing.
type DrawingPoint struct {
	X, Y float64
}

// LatLng is a geographic point as it crosses the engine's boundary;
// internally the engine works in geo.LatLon. LatLng exists only to
// match the lat/lng naming of the JSON surface.
type LatLng struct {
	Lat float64
	Lng float64
}

// Result is the engine's output: the realised route, the ideal rotated
// shape, and the route's total length measured by graph edge lengths.
type Result struct {
	TotalDistanceKm float64
	RoutePoints     []LatLng
	DrawingPoints   []LatLng
}

// GraphProvider acquires a road graph around an anchor. Mode is one of
// "walk", "drive", "bike". Implementations must be safe for concurrent
// Acquire calls if the engine is shared across requests.
type GraphProvider interface {
	Acquire(ctx context.Context, anchor geo.LatLon, radiusM float64, mode string) (*roadgraph.Graph, error)
}

// Engine is the route-synthesis engine. Construct with NewEngine; safe
// for concurrent use by independent requests.
type Engine struct {
	cfg      EngineConfig
	provider GraphProvider
}

// NewEngine creates an Engine around the given configuration and graph
// collaborator.
func NewEngine(cfg EngineConfig, provider GraphProvider) *Engine {
	return &Engine{cfg: cfg, provider: provider}
}

func (e *Engine) logger() Logger {
	if e.cfg.Logger != nil {
		return e.cfg.Logger
	}
	return log.Default()
}

// Generate runs the full pipeline: conditions the drawing, picks an
// orientation, composes a shape-constrained route, and returns the
// realised route alongside the ideal (rotated) shape.
func (e *Engine) Generate(ctx context.Context, drawing []DrawingPoint, anchor LatLng, targetKm float64) (Result, error) {
	if err := validateInput(drawing, anchor, targetKm); err != nil {
		return Result{}, err
	}

	anchorLL := geo.LatLon{Lat: anchor.Lat, Lon: anchor.Lng}

	g, err := e.provider.Acquire(ctx, anchorLL, e.cfg.NetworkDistanceM, e.cfg.NetworkType)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrGraphUnavailable, err)
	}
	if g == nil || g.NumNodes == 0 {
		return Result{}, fmt.Errorf("%w: empty graph for anchor (%g,%g)", ErrGraphUnavailable, anchor.Lat, anchor.Lng)
	}

	drawingPlanar := make([]geo.Point, len(drawing))
	for i, p := range drawing {
		drawingPlanar[i] = geo.Point{X: p.X, Y: p.Y}
	}

	targetLengthM := targetKm * 1000 * e.cfg.PathLengthAdjustment

	loRes := shape.Condition(drawingPlanar, e.cfg.ResamplePoints, targetLengthM, anchorLL, g.Proj)
	if loRes.IsDegenerate() {
		return e.degenerateResult(g, anchorLL)
	}
	hiRes := shape.Condition(drawingPlanar, e.cfg.RotationSearchPoints, targetLengthM, anchorLL, g.Proj)

	index := nearest.Build(g.NodePlanar)
	coordOf := func(idx int32) geo.Point { return g.NodePlanar[idx] }

	best := orientation.Search(hiRes.Planar, index, coordOf, e.cfg.RotationSearchSteps, ctx.Done())
	if e.cfg.Debug {
		e.logger().Printf("gpsart: best orientation %d/%d at %.2f deg (score %.3f)",
			best.Index, e.cfg.RotationSearchSteps, best.AngleRad*180/math.Pi, best.Score)
	}

	routeShape := geo.Rotate(loRes.Planar, best.AngleRad, loRes.Planar[0])

	nodes, err := e.routeShape(ctx, g, index, routeShape)
	if err != nil {
		return Result{}, err
	}

	return e.finalize(g, nodes, routeShape), nil
}

// degenerateResult handles a drawing whose points all coincide: a
// single-node route at the node nearest the anchor, zero length.
func (e *Engine) degenerateResult(g *roadgraph.Graph, anchor geo.LatLon) (Result, error) {
	var anchorPlanar geo.Point
	if g.Proj != nil {
		anchorPlanar = g.Proj.Forward(anchor)
	}
	index := nearest.Build(g.NodePlanar)
	startNode := index.Nearest(anchorPlanar)
	if startNode < 0 {
		return Result{}, fmt.Errorf("%w: no nodes in graph", ErrEmptyRoute)
	}
	ll := g.NodeLatLon[startNode]
	return Result{
		TotalDistanceKm: 0,
		RoutePoints:     []LatLng{{Lat: ll.Lat, Lng: ll.Lon}},
		DrawingPoints:   []LatLng{{Lat: ll.Lat, Lng: ll.Lon}},
	}, nil
}

// routeShape walks the route shape's segments in order, running a
// single-source shortest path for each under a segment-local dynamic
// edge weight. A segment whose target coincides with the current node,
// or for which no path exists, is skipped; the route resumes from the
// same node at the next segment.
func (e *Engine) routeShape(ctx context.Context, g *roadgraph.Graph, index *nearest.Index, routeShape []geo.Point) ([]int32, error) {
	current := index.Nearest(routeShape[0])
	if current < 0 {
		return nil, fmt.Errorf("%w: no nodes in graph", ErrEmptyRoute)
	}

	var route []int32
	for i := 0; i < len(routeShape)-1; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		a, b := routeShape[i], routeShape[i+1]
		target := index.Nearest(b)
		if target < 0 || target == current {
			continue
		}

		weight := segmentWeight(g, a, b, e.cfg.Alpha, e.cfg.Beta, e.cfg.Gamma)
		path, ok := router.ShortestPath(g, current, target, weight)
		if !ok {
			if e.cfg.Debug {
				e.logger().Printf("gpsart: no path for segment %d (%d -> %d), skipping", i, current, target)
			}
			continue
		}

		if len(route) == 0 {
			route = append(route, path...)
		} else {
			// Drop the leading node; it is already the route's tail.
			route = append(route, path[1:]...)
		}
		current = path[len(path)-1]
	}

	if len(route) == 0 {
		return nil, ErrEmptyRoute
	}
	return route, nil
}

// segmentWeight builds the per-edge cost function for the segment
// [a, b]: alpha*C1 + beta*C2 + gamma*C3, where C1 pulls toward the
// segment's goal, C2 charges straight-line traversal, and C3 penalises
// deviation of the candidate edge from the segment. Rebuilt fresh for
// every segment since it closes over a and b.
func segmentWeight(g *roadgraph.Graph, a, b geo.Point, alpha, beta, gamma float64) router.EdgeWeight {
	return func(u, v int32, _ float64) float64 {
		cv := g.NodePlanar[v]
		cu := g.NodePlanar[u]

		c1 := math.Hypot(cv.X-b.X, cv.Y-b.Y)
		c2 := math.Hypot(cv.X-cu.X, cv.Y-cu.Y)
		c3 := geo.PointToSegment(cu, cv, a, b, 10)

		return alpha*c1 + beta*c2 + gamma*c3
	}
}

// finalize computes the realised length from the graph's edge lengths
// (minimum among parallel edges per consecutive pair) and maps both the
// route nodes and the ideal shape back to geographic coordinates.
func (e *Engine) finalize(g *roadgraph.Graph, nodes []int32, routeShape []geo.Point) Result {
	var totalM float64
	for i := 1; i < len(nodes); i++ {
		totalM += minParallelLength(g, nodes[i-1], nodes[i])
	}

	routePoints := make([]LatLng, len(nodes))
	for i, n := range nodes {
		ll := g.NodeLatLon[n]
		routePoints[i] = LatLng{Lat: ll.Lat, Lng: ll.Lon}
	}

	drawingPoints := make([]LatLng, len(routeShape))
	for i, p := range routeShape {
		var ll geo.LatLon
		if g.Proj != nil {
			ll = g.Proj.Inverse(p)
		}
		drawingPoints[i] = LatLng{Lat: ll.Lat, Lng: ll.Lon}
	}

	kmRounded := math.Round(totalM/1000*10) / 10

	return Result{
		TotalDistanceKm: kmRounded,
		RoutePoints:     routePoints,
		DrawingPoints:   drawingPoints,
	}
}

// minParallelLength returns the minimum Length among all edges directly
// from u to v. When parallel edges exist this may under-report: the
// shortest-path weight can select a longer parallel edge while the
// shorter one's length is counted here.
// TODO: attribute the traversed edge index from the router so the
// realised length matches the edge actually chosen.
func minParallelLength(g *roadgraph.Graph, u, v int32) float64 {
	best := math.Inf(1)
	start, end := g.EdgesFrom(u)
	for e := start; e < end; e++ {
		if g.Head[e] == v && g.Length[e] < best {
			best = g.Length[e]
		}
	}
	if math.IsInf(best, 1) {
		return 0
	}
	return best
}

func validateInput(drawing []DrawingPoint, anchor LatLng, targetKm float64) error {
	// A drawing with every point coincident is still valid input; it
	// produces the single-node degenerate route. Only the point count
	// is checked here.
	if len(drawing) < 2 {
		return fmt.Errorf("%w: drawing must have at least 2 points", ErrInvalidInput)
	}
	if targetKm <= 0 {
		return fmt.Errorf("%w: target distance must be positive", ErrInvalidInput)
	}
	if anchor.Lat < -90 || anchor.Lat > 90 || anchor.Lng < -180 || anchor.Lng > 180 {
		return fmt.Errorf("%w: anchor out of range", ErrInvalidInput)
	}
	return nil
}
