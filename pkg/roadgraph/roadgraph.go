// Package roadgraph is the metre-scale view of a road network that the
// art engine consumes: per-node planar and geographic coordinates,
// per-edge length in metres, and a projector between the two coordinate
// systems. It is deliberately distinct from pkg/graph's
// integer-millimetre CSR, which is the OSM ingestion output — FromCSR
// and Build below are the two ways to obtain one of these, from that
// representation or from a bare list of nodes and edges.
package roadgraph

import (
	"sort"

	"github.com/jphacks/routeart/pkg/geo"
	"github.com/jphacks/routeart/pkg/graph"
	"github.com/jphacks/routeart/pkg/projection"
)

// Graph is a directed multigraph in CSR form. Node indices are the
// contiguous range [0, NumNodes); edge indices [0, NumEdges).
// FirstOut[u]..FirstOut[u+1] indexes into Head/Length for the edges
// leaving node u.
type Graph struct {
	NumNodes int32
	NumEdges int32

	FirstOut []int32
	Head     []int32
	Length   []float64 // authoritative traversal length in metres

	NodeLatLon []geo.LatLon
	NodePlanar []geo.Point

	// Proj is the projection that produced NodePlanar, so downstream
	// stages never have to be told separately which frame the nodes
	// live in.
	Proj projection.Projector
}

// EdgesFrom returns the half-open range of edge indices for edges
// originating at node u.
func (g *Graph) EdgesFrom(u int32) (start, end int32) {
	return g.FirstOut[u], g.FirstOut[u+1]
}

// RawNode is an external node used by Build to assemble a Graph
// directly from a list of nodes and edges, bypassing OSM ingestion —
// the shape used by unit tests and by synthetic grid graphs.
type RawNode struct {
	ID  int64
	Lat float64
	Lon float64
}

// RawEdge is an external directed edge used by Build.
type RawEdge struct {
	FromID int64
	ToID   int64
	Length float64 // metres
}

// Build compacts raw nodes and edges into a CSR Graph, remapping
// external IDs to the dense index space EdgesFrom operates on. Planar
// coordinates are filled in via proj once at build time. A nil proj
// leaves NodePlanar zero-valued; callers that build directly in a
// planar frame (tests) can ignore it.
func Build(nodes []RawNode, edges []RawEdge, proj projection.Projector) *Graph {
	if len(nodes) == 0 {
		return &Graph{}
	}

	idIndex := make(map[int64]int32, len(nodes))
	latLon := make([]geo.LatLon, len(nodes))
	for i, n := range nodes {
		idIndex[n.ID] = int32(i)
		latLon[i] = geo.LatLon{Lat: n.Lat, Lon: n.Lon}
	}

	type compactEdge struct {
		from, to int32
		length   float64
	}
	compact := make([]compactEdge, 0, len(edges))
	for _, e := range edges {
		from, ok := idIndex[e.FromID]
		if !ok {
			continue
		}
		to, ok := idIndex[e.ToID]
		if !ok {
			continue
		}
		compact = append(compact, compactEdge{from: from, to: to, length: e.Length})
	}

	sort.Slice(compact, func(i, j int) bool {
		if compact[i].from != compact[j].from {
			return compact[i].from < compact[j].from
		}
		return compact[i].to < compact[j].to
	})

	numNodes := int32(len(nodes))
	numEdges := int32(len(compact))

	firstOut := make([]int32, numNodes+1)
	head := make([]int32, numEdges)
	length := make([]float64, numEdges)

	for _, e := range compact {
		firstOut[e.from+1]++
	}
	for i := int32(1); i <= numNodes; i++ {
		firstOut[i] += firstOut[i-1]
	}
	cursor := append([]int32(nil), firstOut...)
	for _, e := range compact {
		idx := cursor[e.from]
		head[idx] = e.to
		length[idx] = e.length
		cursor[e.from]++
	}

	planar := make([]geo.Point, numNodes)
	if proj != nil {
		for i, ll := range latLon {
			planar[i] = proj.Forward(ll)
		}
	}

	return &Graph{
		NumNodes:   numNodes,
		NumEdges:   numEdges,
		FirstOut:   firstOut,
		Head:       head,
		Length:     length,
		NodeLatLon: latLon,
		NodePlanar: planar,
		Proj:       proj,
	}
}

// FromCSR adapts a pkg/graph.Graph — the output of OSM ingestion — into
// the engine's metre-scale view. Millimetre weights become metre
// lengths; planar coordinates are computed fresh via proj, since
// pkg/graph carries only geographic coordinates.
func FromCSR(g *graph.Graph, proj projection.Projector) *Graph {
	numNodes := int32(g.NumNodes)
	numEdges := int32(g.NumEdges)

	firstOut := make([]int32, numNodes+1)
	for i, v := range g.FirstOut {
		firstOut[i] = int32(v)
	}
	head := make([]int32, numEdges)
	length := make([]float64, numEdges)
	for i := range g.Head {
		head[i] = int32(g.Head[i])
		length[i] = float64(g.Weight[i]) / 1000.0
	}

	latLon := make([]geo.LatLon, numNodes)
	planar := make([]geo.Point, numNodes)
	for i := int32(0); i < numNodes; i++ {
		ll := geo.LatLon{Lat: g.NodeLat[i], Lon: g.NodeLon[i]}
		latLon[i] = ll
		if proj != nil {
			planar[i] = proj.Forward(ll)
		}
	}

	return &Graph{
		NumNodes:   numNodes,
		NumEdges:   numEdges,
		FirstOut:   firstOut,
		Head:       head,
		Length:     length,
		NodeLatLon: latLon,
		NodePlanar: planar,
		Proj:       proj,
	}
}
