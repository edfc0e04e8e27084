package gpsart

import "errors"

// Sentinel errors returned by Generate. A segment with no path is
// recovered inside Generate (the segment is skipped) and never reaches
// the caller; dispatch on the rest with errors.Is.
var (
	// ErrInvalidInput covers a drawing with fewer than two points, a
	// non-positive target distance, or an anchor outside
	// [-90,90]x[-180,180].
	ErrInvalidInput = errors.New("gpsart: invalid input")

	// ErrGraphUnavailable is returned when the GraphProvider collaborator
	// fails to supply a graph for the anchor.
	ErrGraphUnavailable = errors.New("gpsart: road graph unavailable")

	// ErrEmptyRoute is returned when every shape segment was skipped
	// (coincident nodes or no path) and the accumulated route is empty.
	ErrEmptyRoute = errors.New("gpsart: route construction produced no nodes")
)
