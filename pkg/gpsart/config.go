package gpsart

// EngineConfig holds the engine's tunables. Plain struct, constructed
// with DefaultConfig and adjusted by field assignment.
type EngineConfig struct {
	// Alpha weights goal proximity in the per-edge cost: distance of
	// the candidate node to the current segment's endpoint.
	Alpha float64
	// Beta weights traversal cost: straight-line distance between the
	// edge's endpoints in the planar frame.
	Beta float64
	// Gamma weights shape deviation: integrated distance of the
	// candidate edge from the current segment.
	Gamma float64

	// NetworkType is passed to the GraphProvider collaborator; the
	// core engine never inspects it.
	NetworkType string
	// NetworkDistanceM is the graph acquisition radius around the
	// anchor, in metres; also forwarded to the collaborator untouched.
	NetworkDistanceM float64

	// PathLengthAdjustment shrinks the target length to account for
	// road detours: a route that zig-zags along real streets runs
	// longer than the ideal shape it traces.
	PathLengthAdjustment float64

	// RotationSearchSteps is the angular resolution of the rotation
	// sweep.
	RotationSearchSteps int
	// ResamplePoints is the point count of the low-resolution shape
	// the router walks.
	ResamplePoints int
	// RotationSearchPoints is the point count of the high-resolution
	// shape the rotation sweep scores.
	RotationSearchPoints int

	// Debug gates skipped-segment and best-orientation logging.
	Debug bool
	// Logger receives debug output when Debug is true. Defaults to
	// log.Default() if nil.
	Logger Logger
}

// Logger is the minimal surface Generate needs for its debug-level
// messages, satisfied by *log.Logger.
type Logger interface {
	Printf(format string, args ...any)
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() EngineConfig {
	return EngineConfig{
		Alpha:                1.0,
		Beta:                 5.0,
		Gamma:                1.0,
		NetworkType:          "walk",
		NetworkDistanceM:     4000,
		PathLengthAdjustment: 0.7,
		RotationSearchSteps:  360,
		ResamplePoints:       40,
		RotationSearchPoints: 200,
	}
}
