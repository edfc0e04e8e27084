package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jphacks/routeart/pkg/api"
	"github.com/jphacks/routeart/pkg/gpsart"
	"github.com/jphacks/routeart/pkg/graph"
	"github.com/jphacks/routeart/pkg/graphcache"
)

func main() {
	graphPath := flag.String("graph", "", "Path to preprocessed graph binary (from cmd/preprocess)")
	osmPath := flag.String("osm", "", "Path to a raw .osm.pbf extract (parsed per request anchor; slower than --graph)")
	port := flag.Int("port", 8080, "HTTP port")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	network := flag.String("network", "walk", "Network type: walk, bike, or drive")
	radius := flag.Float64("radius", 4000, "Graph acquisition radius around the anchor in metres")
	debug := flag.Bool("debug", false, "Log skipped segments and orientation scores")
	flag.Parse()

	if (*graphPath == "") == (*osmPath == "") {
		fmt.Fprintln(os.Stderr, "Usage: server (--graph graph.bin | --osm extract.osm.pbf) [--port 8080] [--network walk|bike|drive]")
		os.Exit(1)
	}

	var provider gpsart.GraphProvider
	if *graphPath != "" {
		log.Printf("Loading graph from %s...", *graphPath)
		g, err := graph.ReadBinary(*graphPath)
		if err != nil {
			log.Fatalf("Failed to load graph: %v", err)
		}
		log.Printf("Loaded: %d nodes, %d edges", g.NumNodes, g.NumEdges)
		provider = &gpsart.StaticProvider{Graph: g}
	} else {
		log.Printf("Serving from raw extract %s (graphs parsed per anchor)", *osmPath)
		provider = &gpsart.OSMFileProvider{Path: *osmPath}
	}

	cache := graphcache.New(provider.Acquire)

	engineCfg := gpsart.DefaultConfig()
	engineCfg.NetworkType = *network
	engineCfg.NetworkDistanceM = *radius
	engineCfg.Debug = *debug
	engine := gpsart.NewEngine(engineCfg, cache)

	addr := fmt.Sprintf(":%d", *port)
	cfg := api.DefaultConfig(addr)
	cfg.CORSOrigin = *corsOrigin

	stats := api.StatsResponse{
		NetworkType:      engineCfg.NetworkType,
		NetworkDistanceM: engineCfg.NetworkDistanceM,
		RotationSteps:    engineCfg.RotationSearchSteps,
	}

	handlers := api.NewHandlers(engine, stats)
	srv := api.NewServer(cfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
