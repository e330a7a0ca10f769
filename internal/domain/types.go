package domain

import "time"

// Unit is a length unit for grid resolutions. The set of valid units is
// closed; anything else is rejected by the resolution codec.
type Unit string

const (
	UnitMeter     Unit = "m"
	UnitKilometer Unit = "km"
	UnitDegree    Unit = "deg"
)

// validUnits is ordered longest-first so suffix matching in the resolution
// decoder never strips "m" off the end of "km" or "deg".
var validUnits = []Unit{UnitDegree, UnitKilometer, UnitMeter}

// Valid reports whether u is one of the known length units.
func (u Unit) Valid() bool {
	switch u {
	case UnitMeter, UnitKilometer, UnitDegree:
		return true
	}
	return false
}

// ValidUnits returns the closed set of accepted units.
func ValidUnits() []Unit {
	return []Unit{UnitMeter, UnitKilometer, UnitDegree}
}

// BoundingBox is a geographic extent in the coordinate units of the dataset
// (typically degrees). Minima must be strictly below maxima on both axes.
type BoundingBox struct {
	LonMin float64 `json:"lon_min"`
	LatMin float64 `json:"lat_min"`
	LonMax float64 `json:"lon_max"`
	LatMax float64 `json:"lat_max"`
}

// Validate checks the ordering invariant. NaN extents fail both comparisons.
func (b BoundingBox) Validate() error {
	if !(b.LonMin < b.LonMax) {
		return &InvalidBoundingBoxError{BBox: b, Reason: "lon_min must be strictly less than lon_max"}
	}
	if !(b.LatMin < b.LatMax) {
		return &InvalidBoundingBoxError{BBox: b, Reason: "lat_min must be strictly less than lat_max"}
	}
	return nil
}

// Resolution is the grid spacing of a dataset along each horizontal axis.
// Both axes share one unit; the serialized form has no per-axis unit.
type Resolution struct {
	LonResolution float64 `json:"lon_resolution"`
	LatResolution float64 `json:"lat_resolution"`
	Unit          Unit    `json:"unit"`
}

// DatasetAddress is the canonical identifier for one stored dataset artifact.
// It is a value object: constructed per lookup or store call, serialized via
// BuildPath, and never mutated.
type DatasetAddress struct {
	ModelName    string      `json:"model_name"`
	ModelConfig  string      `json:"model_config"`
	BBox         BoundingBox `json:"bbox"`
	Resolution   Resolution  `json:"resolution"`
	AnalysisTime time.Time   `json:"analysis_time"`
	DataKind     string      `json:"data_kind"`
	Member       int         `json:"member"`
}
