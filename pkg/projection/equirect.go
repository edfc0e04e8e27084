// Package projection bridges geographic coordinates (lon, lat degrees)
// and the local planar metric frame the geometry kit operates in. A
// full road-graph provider may supply its own already-projected
// coordinates; when it doesn't, Equirect gives a fallback anchored at
// the query's anchor latitude.
package projection

import (
	"math"

	"github.com/jphacks/routeart/pkg/geo"
)

// earthRadiusMeters is the WGS84 equatorial radius, used for the
// equirectangular metres-per-degree scale factors. This is distinct
// from the mean haversine radius used elsewhere in the module for
// great-circle distance; the two serve different purposes and are not
// interchangeable.
const earthRadiusMeters = 6_378_137.0

// Projector converts between geographic and planar coordinates about a
// fixed anchor.
type Projector interface {
	Forward(p geo.LatLon) geo.Point
	Inverse(p geo.Point) geo.LatLon
}

// Equirect is an equirectangular projection anchored at a fixed
// latitude, matching the bearing-preserving local-metric approximation
// used when a collaborator-supplied projected graph is unavailable.
// Planar Y grows downward (matches screen-coordinate orientation), so
// Forward negates the latitude delta.
type Equirect struct {
	Anchor  geo.LatLon
	mLat    float64 // metres per degree of latitude
	mLon    float64 // metres per degree of longitude at Anchor.Lat
}

// NewEquirect builds an Equirect projection anchored at anchor.
func NewEquirect(anchor geo.LatLon) *Equirect {
	mLat := 2 * math.Pi * earthRadiusMeters / 360
	mLon := mLat * math.Cos(anchor.Lat*math.Pi/180)
	return &Equirect{Anchor: anchor, mLat: mLat, mLon: mLon}
}

// Forward converts a geographic point to planar metres relative to the
// anchor.
func (e *Equirect) Forward(p geo.LatLon) geo.Point {
	dLat := p.Lat - e.Anchor.Lat
	dLon := p.Lon - e.Anchor.Lon
	return geo.Point{
		X: dLon * e.mLon,
		Y: -dLat * e.mLat,
	}
}

// Inverse converts a planar point back to geographic coordinates.
func (e *Equirect) Inverse(p geo.Point) geo.LatLon {
	dLat := -p.Y / e.mLat
	dLon := p.X / e.mLon
	return geo.LatLon{
		Lat: e.Anchor.Lat + dLat,
		Lon: e.Anchor.Lon + dLon,
	}
}
