package gpsart

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/jphacks/routeart/pkg/geo"
	"github.com/jphacks/routeart/pkg/graph"
	osmparser "github.com/jphacks/routeart/pkg/osm"
	"github.com/jphacks/routeart/pkg/projection"
	"github.com/jphacks/routeart/pkg/roadgraph"
)

// OSMFileProvider is a GraphProvider backed by a local .osm.pbf extract:
// it parses the ways matching the requested network mode inside a
// bounding box around the anchor, keeps the largest connected component,
// and projects the nodes into an equirectangular frame anchored at the
// request's anchor.
type OSMFileProvider struct {
	// Path is the .osm.pbf extract covering the anchors this provider
	// will be asked about.
	Path string
}

// Acquire parses the extract, bounding it to a degree-box sized from
// radiusM around anchor.
func (p *OSMFileProvider) Acquire(ctx context.Context, anchor geo.LatLon, radiusM float64, mode string) (*roadgraph.Graph, error) {
	f, err := os.Open(p.Path)
	if err != nil {
		return nil, fmt.Errorf("gpsart: open %s: %w", p.Path, err)
	}
	defer f.Close()

	bbox := degreeBBox(anchor, radiusM)
	parsed, err := osmparser.Parse(ctx, f, osmparser.ParseOptions{BBox: bbox, Network: osmparser.Network(mode)})
	if err != nil {
		return nil, fmt.Errorf("gpsart: parse %s: %w", p.Path, err)
	}

	g := graph.Build(parsed)
	if g.NumNodes == 0 {
		return nil, fmt.Errorf("gpsart: no nodes within %g m of anchor (%g,%g)", radiusM, anchor.Lat, anchor.Lon)
	}

	componentNodes := graph.LargestComponent(g)
	g = graph.FilterToComponent(g, componentNodes)

	proj := projection.NewEquirect(anchor)
	return roadgraph.FromCSR(g, proj), nil
}

// StaticProvider serves one pre-built graph regardless of anchor, e.g.
// a graph loaded from a preprocessed binary file. The graph's planar
// frame is re-anchored on every Acquire so the engine's shapes land in
// the same frame as the nodes.
type StaticProvider struct {
	Graph *graph.Graph
}

// Acquire projects the held graph into a frame anchored at anchor.
func (p *StaticProvider) Acquire(ctx context.Context, anchor geo.LatLon, radiusM float64, mode string) (*roadgraph.Graph, error) {
	if p.Graph == nil || p.Graph.NumNodes == 0 {
		return nil, fmt.Errorf("gpsart: no graph loaded")
	}
	proj := projection.NewEquirect(anchor)
	return roadgraph.FromCSR(p.Graph, proj), nil
}

// degreeBBox converts a metre radius around anchor into a geographic
// bounding box, using the same scale factors as the equirectangular
// projection.
func degreeBBox(anchor geo.LatLon, radiusM float64) osmparser.BBox {
	const earthRadiusMeters = 6_378_137.0
	mLat := 2 * math.Pi * earthRadiusMeters / 360
	latDelta := radiusM / mLat
	lonDelta := radiusM / (mLat * math.Cos(anchor.Lat*math.Pi/180))
	return osmparser.BBox{
		MinLat: anchor.Lat - latDelta,
		MaxLat: anchor.Lat + latDelta,
		MinLng: anchor.Lon - lonDelta,
		MaxLng: anchor.Lon + lonDelta,
	}
}
