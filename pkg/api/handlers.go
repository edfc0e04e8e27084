package api

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"mime"
	"net/http"

	"github.com/jphacks/routeart/pkg/gpsart"
)

// Generator produces a road-network route approximating a drawing. It is
// satisfied by *gpsart.Engine.
type Generator interface {
	Generate(ctx context.Context, drawing []gpsart.DrawingPoint, anchor gpsart.LatLng, targetKm float64) (gpsart.Result, error)
}

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	gen   Generator
	stats StatsResponse
}

// NewHandlers creates handlers with the given generator.
func NewHandlers(gen Generator, stats StatsResponse) *Handlers {
	return &Handlers{
		gen:   gen,
		stats: stats,
	}
}

// maxArtBody bounds the request body; a freehand drawing of a few
// thousand points fits well under this.
const maxArtBody = 1 << 20

// HandleArt handles POST /api/v1/art.
func (h *Handlers) HandleArt(w http.ResponseWriter, r *http.Request) {
	// Enforce Content-Type.
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	// Parse request.
	var req ArtRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxArtBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	// Validate before handing off, so malformed coordinates get a field
	// name in the error rather than a bare invalid-input.
	if err := validateCoord(req.Start); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "start")
		return
	}
	if len(req.Drawing) < 2 {
		writeError(w, http.StatusBadRequest, "drawing_too_short", "drawing")
		return
	}
	for _, p := range req.Drawing {
		if !isFinite(p.X) || !isFinite(p.Y) {
			writeError(w, http.StatusBadRequest, "invalid_coordinates", "drawing")
			return
		}
	}
	if !isFinite(req.TargetDistanceKm) || req.TargetDistanceKm <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_target_distance", "target_distance_km")
		return
	}

	drawing := make([]gpsart.DrawingPoint, len(req.Drawing))
	for i, p := range req.Drawing {
		drawing[i] = gpsart.DrawingPoint{X: p.X, Y: p.Y}
	}

	result, err := h.gen.Generate(r.Context(), drawing, gpsart.LatLng{Lat: req.Start.Lat, Lng: req.Start.Lng}, req.TargetDistanceKm)
	if err != nil {
		if errors.Is(err, gpsart.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "invalid_input", "")
			return
		}
		if errors.Is(err, gpsart.ErrGraphUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "road_graph_unavailable", "")
			return
		}
		if errors.Is(err, gpsart.ErrEmptyRoute) {
			writeError(w, http.StatusUnprocessableEntity, "no_route_found", "")
			return
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			writeError(w, http.StatusServiceUnavailable, "request_timeout", "")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	// Build response.
	resp := ArtResponse{
		TotalDistanceKm: result.TotalDistanceKm,
		RoutePoints:     toJSONPoints(result.RoutePoints),
		DrawingPoints:   toJSONPoints(result.DrawingPoints),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.stats)
}

func toJSONPoints(pts []gpsart.LatLng) []LatLngJSON {
	out := make([]LatLngJSON, len(pts))
	for i, ll := range pts {
		out[i] = LatLngJSON{Lat: ll.Lat, Lng: ll.Lng}
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validateCoord(ll LatLngJSON) error {
	if !isFinite(ll.Lat) || !isFinite(ll.Lng) {
		return errors.New("coordinates must be finite numbers")
	}
	if ll.Lat < -90 || ll.Lat > 90 || ll.Lng < -180 || ll.Lng > 180 {
		return errors.New("coordinates out of range")
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Field: field})
}
