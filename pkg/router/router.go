// Package router runs single-source shortest-path searches over a
// roadgraph.Graph under a per-query dynamic edge weight: the weight
// depends on the current shape segment's endpoints and is rebuilt for
// every segment, so the search takes a callback rather than
// precomputed static weights.
package router

import (
	"math"

	"github.com/jphacks/routeart/pkg/roadgraph"
)

// EdgeWeight computes the cost of traversing edge (u -> v), which has
// graph length lengthM. Implementations close over the current shape
// segment's endpoints; the search itself is agnostic to what the
// weight measures, but it must be non-negative.
type EdgeWeight func(u, v int32, lengthM float64) float64

type pqItem struct {
	node int32
	dist float64
}

// minHeap is a concrete float64 priority queue, ties broken by the
// lower node id so repeated queries over the same graph and weight are
// byte-identical.
type minHeap struct {
	items []pqItem
}

func (h *minHeap) push(node int32, dist float64) {
	h.items = append(h.items, pqItem{node, dist})
	h.siftUp(len(h.items) - 1)
}

func (h *minHeap) pop() pqItem {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *minHeap) less(i, j int) bool {
	if h.items[i].dist != h.items[j].dist {
		return h.items[i].dist < h.items[j].dist
	}
	return h.items[i].node < h.items[j].node
}

func (h *minHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *minHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left, right := 2*i+1, 2*i+2
		if left < n && h.less(left, smallest) {
			smallest = left
		}
		if right < n && h.less(right, smallest) {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}

// ShortestPath runs Dijkstra from src to dst over g, weighing each edge
// relaxation with weight. It returns the node sequence from src to dst
// inclusive, and false if no path exists.
func ShortestPath(g *roadgraph.Graph, src, dst int32, weight EdgeWeight) ([]int32, bool) {
	if src == dst {
		return []int32{src}, true
	}

	dist := make([]float64, g.NumNodes)
	pred := make([]int32, g.NumNodes)
	visited := make([]bool, g.NumNodes)
	for i := range dist {
		dist[i] = math.Inf(1)
		pred[i] = -1
	}
	dist[src] = 0

	var pq minHeap
	pq.push(src, 0)

	for len(pq.items) > 0 {
		top := pq.pop()
		u := top.node
		if visited[u] {
			continue
		}
		visited[u] = true
		if u == dst {
			break
		}

		start, end := g.EdgesFrom(u)
		for e := start; e < end; e++ {
			v := g.Head[e]
			if visited[v] {
				continue
			}
			w := weight(u, v, g.Length[e])
			nd := dist[u] + w
			if nd < dist[v] {
				dist[v] = nd
				pred[v] = u
				pq.push(v, nd)
			}
		}
	}

	if math.IsInf(dist[dst], 1) {
		return nil, false
	}

	path := []int32{dst}
	for n := dst; n != src; {
		n = pred[n]
		path = append(path, n)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}
