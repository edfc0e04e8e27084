// Command visualize runs one art query against a local graph and writes
// the result as GeoJSON: the realised route, the ideal rotated shape,
// and the start marker. The output drops straight into geojson.io or
// any map viewer.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/jphacks/routeart/pkg/gpsart"
	"github.com/jphacks/routeart/pkg/graph"
)

// drawingFile is the JSON input: the freehand polyline in screen
// coordinates plus the query parameters.
type drawingFile struct {
	Drawing []struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"drawing"`
	Start struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"start"`
	TargetDistanceKm float64 `json:"target_distance_km"`
}

func main() {
	input := flag.String("input", "", "Path to drawing JSON file")
	graphPath := flag.String("graph", "", "Path to preprocessed graph binary (from cmd/preprocess)")
	osmPath := flag.String("osm", "", "Path to a raw .osm.pbf extract")
	output := flag.String("output", "route.geojson", "Output GeoJSON file path")
	network := flag.String("network", "walk", "Network type: walk, bike, or drive")
	radius := flag.Float64("radius", 4000, "Graph acquisition radius around the anchor in metres")
	flag.Parse()

	if *input == "" || (*graphPath == "") == (*osmPath == "") {
		fmt.Fprintln(os.Stderr, "Usage: visualize --input drawing.json (--graph graph.bin | --osm extract.osm.pbf) [--output route.geojson]")
		os.Exit(1)
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	var df drawingFile
	if err := json.Unmarshal(data, &df); err != nil {
		log.Fatalf("Failed to parse input JSON: %v", err)
	}

	var provider gpsart.GraphProvider
	if *graphPath != "" {
		g, err := graph.ReadBinary(*graphPath)
		if err != nil {
			log.Fatalf("Failed to load graph: %v", err)
		}
		log.Printf("Loaded: %d nodes, %d edges", g.NumNodes, g.NumEdges)
		provider = &gpsart.StaticProvider{Graph: g}
	} else {
		provider = &gpsart.OSMFileProvider{Path: *osmPath}
	}

	cfg := gpsart.DefaultConfig()
	cfg.NetworkType = *network
	cfg.NetworkDistanceM = *radius
	cfg.Debug = true
	engine := gpsart.NewEngine(cfg, provider)

	drawing := make([]gpsart.DrawingPoint, len(df.Drawing))
	for i, p := range df.Drawing {
		drawing[i] = gpsart.DrawingPoint{X: p.X, Y: p.Y}
	}

	result, err := engine.Generate(context.Background(),
		drawing,
		gpsart.LatLng{Lat: df.Start.Lat, Lng: df.Start.Lng},
		df.TargetDistanceKm)
	if err != nil {
		log.Fatalf("Generate failed: %v", err)
	}
	log.Printf("Route: %d nodes, %.1f km", len(result.RoutePoints), result.TotalDistanceKm)

	fc := geojson.NewFeatureCollection()

	route := geojson.NewFeature(toLineString(result.RoutePoints))
	route.Properties = geojson.Properties{
		"name":              "route",
		"total_distance_km": result.TotalDistanceKm,
		"stroke":            "#d33",
	}
	fc.Append(route)

	ideal := geojson.NewFeature(toLineString(result.DrawingPoints))
	ideal.Properties = geojson.Properties{
		"name":   "ideal shape",
		"stroke": "#36c",
	}
	fc.Append(ideal)

	start := geojson.NewFeature(orb.Point{df.Start.Lng, df.Start.Lat})
	start.Properties = geojson.Properties{"name": "start"}
	fc.Append(start)

	out, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		log.Fatalf("Marshal GeoJSON: %v", err)
	}
	if err := os.WriteFile(*output, out, 0o644); err != nil {
		log.Fatalf("Write %s: %v", *output, err)
	}
	log.Printf("Wrote %s", *output)
}

func toLineString(pts []gpsart.LatLng) orb.LineString {
	ls := make(orb.LineString, len(pts))
	for i, p := range pts {
		ls[i] = orb.Point{p.Lng, p.Lat}
	}
	return ls
}
