package projection

import (
	"math"
	"testing"

	"github.com/jphacks/routeart/pkg/geo"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestEquirectRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		anchor geo.LatLon
		point  geo.LatLon
	}{
		{name: "Singapore anchor, nearby point", anchor: geo.LatLon{Lat: 1.3521, Lon: 103.8198}, point: geo.LatLon{Lat: 1.3600, Lon: 103.8300}},
		{name: "high latitude anchor", anchor: geo.LatLon{Lat: 51.5074, Lon: -0.1278}, point: geo.LatLon{Lat: 51.51, Lon: -0.12}},
		{name: "anchor equals point", anchor: geo.LatLon{Lat: 35.0, Lon: 139.0}, point: geo.LatLon{Lat: 35.0, Lon: 139.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proj := NewEquirect(tt.anchor)
			planar := proj.Forward(tt.point)
			back := proj.Inverse(planar)
			if !almostEqual(back.Lat, tt.point.Lat, 1e-9) {
				t.Errorf("round-trip Lat = %f, want %f", back.Lat, tt.point.Lat)
			}
			if !almostEqual(back.Lon, tt.point.Lon, 1e-9) {
				t.Errorf("round-trip Lon = %f, want %f", back.Lon, tt.point.Lon)
			}
		})
	}
}

func TestEquirectAnchorIsOrigin(t *testing.T) {
	anchor := geo.LatLon{Lat: 35.6812, Lon: 139.7671}
	proj := NewEquirect(anchor)
	p := proj.Forward(anchor)
	if !almostEqual(p.X, 0, 1e-9) || !almostEqual(p.Y, 0, 1e-9) {
		t.Errorf("Forward(anchor) = %+v, want {0 0}", p)
	}
}

func TestEquirectYGrowsDownwardForNorth(t *testing.T) {
	// A point due north of the anchor (higher latitude) should have a
	// negative planar Y, matching screen-coordinate orientation where Y
	// grows downward.
	anchor := geo.LatLon{Lat: 35.0, Lon: 139.0}
	proj := NewEquirect(anchor)
	north := proj.Forward(geo.LatLon{Lat: 35.01, Lon: 139.0})
	if north.Y >= 0 {
		t.Errorf("north point Y = %f, want < 0", north.Y)
	}
}

func TestEquirectLonScaleShrinksAwayFromEquator(t *testing.T) {
	equatorProj := NewEquirect(geo.LatLon{Lat: 0, Lon: 0})
	highLatProj := NewEquirect(geo.LatLon{Lat: 60, Lon: 0})

	equatorPoint := equatorProj.Forward(geo.LatLon{Lat: 0, Lon: 1})
	highLatPoint := highLatProj.Forward(geo.LatLon{Lat: 60, Lon: 1})

	if math.Abs(highLatPoint.X) >= math.Abs(equatorPoint.X) {
		t.Errorf("longitude scale at 60N (%f) should be smaller than at equator (%f)", highLatPoint.X, equatorPoint.X)
	}
}
