package shape

import (
	"math"
	"testing"

	"github.com/jphacks/routeart/pkg/geo"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestConditionScalesToTargetLength(t *testing.T) {
	drawing := []geo.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	anchor := geo.LatLon{Lat: 1.3, Lon: 103.8}

	c := Condition(drawing, 40, 700, anchor, nil)

	got := geo.PolylineLength(c.Planar)
	if !almostEqual(got, 700, 0.7) { // 0.1% of 700
		t.Fatalf("PolylineLength(result) = %v, want ~700", got)
	}
	if len(c.Planar) != 40 {
		t.Fatalf("len(Planar) = %d, want 40", len(c.Planar))
	}
}

func TestConditionDegenerateMapsToAnchor(t *testing.T) {
	drawing := []geo.Point{{X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}}
	anchor := geo.LatLon{Lat: 1.3, Lon: 103.8}

	c := Condition(drawing, 40, 700, anchor, nil)

	if !c.IsDegenerate() {
		t.Fatal("expected IsDegenerate() == true for coincident drawing")
	}
	for _, ll := range c.LatLon {
		if !almostEqual(ll.Lat, anchor.Lat, 1e-9) || !almostEqual(ll.Lon, anchor.Lon, 1e-9) {
			t.Fatalf("degenerate point %+v != anchor %+v", ll, anchor)
		}
	}
}

func TestConditionUsesGraphProjectorWhenSupplied(t *testing.T) {
	drawing := []geo.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	anchor := geo.LatLon{Lat: 0, Lon: 0}

	called := false
	proj := stubProjector{
		forward: func(p geo.LatLon) geo.Point {
			called = true
			return geo.Point{X: p.Lon * 2, Y: p.Lat * 2}
		},
	}

	c := Condition(drawing, 5, 100, anchor, proj)
	if !called {
		t.Fatal("expected supplied projector's Forward to be used")
	}
	if len(c.Planar) != 5 {
		t.Fatalf("len(Planar) = %d, want 5", len(c.Planar))
	}
}

type stubProjector struct {
	forward func(geo.LatLon) geo.Point
}

func (s stubProjector) Forward(p geo.LatLon) geo.Point { return s.forward(p) }
func (s stubProjector) Inverse(p geo.Point) geo.LatLon { return geo.LatLon{} }
