package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jphacks/routeart/pkg/gpsart"
)

// stubGenerator returns a canned result or error.
type stubGenerator struct {
	result gpsart.Result
	err    error
}

func (s *stubGenerator) Generate(ctx context.Context, drawing []gpsart.DrawingPoint, anchor gpsart.LatLng, targetKm float64) (gpsart.Result, error) {
	if s.err != nil {
		return gpsart.Result{}, s.err
	}
	return s.result, nil
}

func newTestHandlers(gen Generator) *Handlers {
	return NewHandlers(gen, StatsResponse{NetworkType: "walk", NetworkDistanceM: 4000, RotationSteps: 360})
}

func postArt(t *testing.T, h *Handlers, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/art", strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.HandleArt(rec, req)
	return rec
}

const validBody = `{
	"drawing": [{"x": 0, "y": 0}, {"x": 10, "y": 0}],
	"start": {"lat": 1.3521, "lng": 103.8198},
	"target_distance_km": 5
}`

func TestHandleArtSuccess(t *testing.T) {
	gen := &stubGenerator{result: gpsart.Result{
		TotalDistanceKm: 3.5,
		RoutePoints:     []gpsart.LatLng{{Lat: 1.35, Lng: 103.81}, {Lat: 1.36, Lng: 103.82}},
		DrawingPoints:   []gpsart.LatLng{{Lat: 1.35, Lng: 103.81}},
	}}
	rec := postArt(t, newTestHandlers(gen), "application/json", validBody)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp ArtResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.TotalDistanceKm != 3.5 {
		t.Errorf("TotalDistanceKm = %v, want 3.5", resp.TotalDistanceKm)
	}
	if len(resp.RoutePoints) != 2 {
		t.Errorf("len(RoutePoints) = %d, want 2", len(resp.RoutePoints))
	}
	if len(resp.DrawingPoints) != 1 {
		t.Errorf("len(DrawingPoints) = %d, want 1", len(resp.DrawingPoints))
	}
}

func TestHandleArtRejectsWrongContentType(t *testing.T) {
	rec := postArt(t, newTestHandlers(&stubGenerator{}), "text/plain", validBody)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleArtRejectsMalformedJSON(t *testing.T) {
	rec := postArt(t, newTestHandlers(&stubGenerator{}), "application/json", `{"drawing": [`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleArtValidation(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{
			name:      "out-of-range start",
			body:      `{"drawing": [{"x":0,"y":0},{"x":1,"y":1}], "start": {"lat": 95, "lng": 0}, "target_distance_km": 5}`,
			wantField: "start",
		},
		{
			name:      "one-point drawing",
			body:      `{"drawing": [{"x":0,"y":0}], "start": {"lat": 1.3, "lng": 103.8}, "target_distance_km": 5}`,
			wantField: "drawing",
		},
		{
			name:      "zero target distance",
			body:      `{"drawing": [{"x":0,"y":0},{"x":1,"y":1}], "start": {"lat": 1.3, "lng": 103.8}, "target_distance_km": 0}`,
			wantField: "target_distance_km",
		},
		{
			name:      "negative target distance",
			body:      `{"drawing": [{"x":0,"y":0},{"x":1,"y":1}], "start": {"lat": 1.3, "lng": 103.8}, "target_distance_km": -2}`,
			wantField: "target_distance_km",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postArt(t, newTestHandlers(&stubGenerator{}), "application/json", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal error response: %v", err)
			}
			if resp.Field != tt.wantField {
				t.Errorf("error field = %q, want %q", resp.Field, tt.wantField)
			}
		})
	}
}

func TestHandleArtErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid input", gpsart.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
		{"graph unavailable", gpsart.ErrGraphUnavailable, http.StatusServiceUnavailable, "road_graph_unavailable"},
		{"empty route", gpsart.ErrEmptyRoute, http.StatusUnprocessableEntity, "no_route_found"},
		{"timeout", context.DeadlineExceeded, http.StatusServiceUnavailable, "request_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postArt(t, newTestHandlers(&stubGenerator{err: tt.err}), "application/json", validBody)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal error response: %v", err)
			}
			if resp.Error != tt.wantCode {
				t.Errorf("error code = %q, want %q", resp.Error, tt.wantCode)
			}
		})
	}
}

func TestHandleHealth(t *testing.T) {
	h := newTestHandlers(&stubGenerator{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	h.HandleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
}

func TestHandleStats(t *testing.T) {
	h := newTestHandlers(&stubGenerator{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	h.HandleStats(rec, req)

	var resp StatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.NetworkType != "walk" || resp.RotationSteps != 360 {
		t.Errorf("unexpected stats: %+v", resp)
	}
}
