// Package graphcache caches acquired road graphs keyed by anchor, so
// repeated requests around the same place skip re-acquisition. A
// sync.RWMutex-guarded map gives concurrent readers free access while
// inserting a newly fetched graph is serialized against them (the fetch
// itself runs outside the lock, so concurrent misses for the same key
// may each fetch); a cached graph
// is immutable once inserted, so no reader ever observes a partially
// built one.
package graphcache

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/jphacks/routeart/pkg/geo"
	"github.com/jphacks/routeart/pkg/roadgraph"
)

// Fetch acquires a fresh graph for the given anchor, radius, and
// network type; graphcache only adds caching around it.
type Fetch func(ctx context.Context, anchor geo.LatLon, radiusM float64, networkType string) (*roadgraph.Graph, error)

// key identifies a cached entry. Anchors are rounded to ~1m of
// precision before keying so two requests against "the same place" hit
// the cache even with float jitter in the caller's anchor.
type key struct {
	lat, lon float64
	radiusM  float64
	netType  string
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

func keyOf(anchor geo.LatLon, radiusM float64, networkType string) key {
	return key{
		lat:     roundTo(anchor.Lat, 5),
		lon:     roundTo(anchor.Lon, 5),
		radiusM: radiusM,
		netType: networkType,
	}
}

// Cache is a reader/writer-locked map from anchor key to acquired
// graph. The zero value is not usable; construct with New.
type Cache struct {
	fetch Fetch

	mu      sync.RWMutex
	entries map[key]*roadgraph.Graph
}

// New creates a Cache that calls fetch on a miss.
func New(fetch Fetch) *Cache {
	return &Cache{fetch: fetch, entries: make(map[key]*roadgraph.Graph)}
}

// Get returns the cached graph for the anchor/radius/network-type
// triple, fetching and populating the cache on a miss. Concurrent Gets
// for different anchors proceed without blocking each other once their
// respective entries are populated; a miss briefly takes the write lock
// to insert the fetched graph, never while a reader holds a reference
// mid-fetch.
func (c *Cache) Get(ctx context.Context, anchor geo.LatLon, radiusM float64, networkType string) (*roadgraph.Graph, error) {
	k := keyOf(anchor, radiusM, networkType)

	c.mu.RLock()
	g, ok := c.entries[k]
	c.mu.RUnlock()
	if ok {
		return g, nil
	}

	g, err := c.fetch(ctx, anchor, radiusM, networkType)
	if err != nil {
		return nil, fmt.Errorf("graphcache: fetch anchor (%g,%g): %w", anchor.Lat, anchor.Lon, err)
	}

	c.mu.Lock()
	c.entries[k] = g
	c.mu.Unlock()
	return g, nil
}

// Acquire implements gpsart.GraphProvider by delegating to Get, so a
// *Cache can be handed to gpsart.NewEngine directly: the engine's
// "collaborator" and this package's "fetch" are the same seam viewed
// from two sides.
func (c *Cache) Acquire(ctx context.Context, anchor geo.LatLon, radiusM float64, mode string) (*roadgraph.Graph, error) {
	return c.Get(ctx, anchor, radiusM, mode)
}

// Invalidate drops the cached entry for the given key triple, if any,
// forcing the next Get to re-fetch.
func (c *Cache) Invalidate(anchor geo.LatLon, radiusM float64, networkType string) {
	k := keyOf(anchor, radiusM, networkType)
	c.mu.Lock()
	delete(c.entries, k)
	c.mu.Unlock()
}
