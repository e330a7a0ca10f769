// Package domain models forecast dataset addresses and the canonical path
// grammar used to locate dataset artifacts in object storage.
//
// # Path Grammar
//
// Every stored dataset artifact is addressed by a single hierarchical path:
//
//	<model_name>/<model_config>/<bbox>/<resolution>/<analysis_time>/member<member>/<data_kind>.zarr
//
// e.g.
//
//	harmonie_cy46/default/w-10p5_s35p0_e10p5_n45p0/dx0p1deg_dy0p2deg/2023-01-01T1200Z/member0/surface_levels.zarr
//
// The path doubles as an object-store key and a local directory path, so every
// segment must be free of characters that are unsafe in either context. That
// rules out '.' inside numbers and ':' inside timestamps:
//
// Numeric tokens:
//
//	Integers render as their plain decimal string. Floats render as the
//	shortest decimal string that parses back to the same value, with 'p'
//	in place of the decimal point: 123.456 → "123p456", -10.5 → "-10p5".
//	Floats always carry a 'p' so the integer/float distinction survives
//	the round trip: 35.0 → "35p0".
//
// Bounding box:
//
//	w<lon_min>_s<lat_min>_e<lon_max>_n<lat_max>
//	West/south/east/north extents as numeric tokens. lon_min < lon_max and
//	lat_min < lat_max are enforced on both encode and decode.
//
// Resolution:
//
//	dx<lon_resolution><unit>_dy<lat_resolution><unit>
//	Both axes share a single unit drawn from {m, km, deg}; the serialized
//	form has no per-axis unit.
//
// Analysis time:
//
//	ISO8601 without colons or seconds, always UTC: 2023-01-01T1200Z.
//
// Ensemble member:
//
//	"member" followed by the plain decimal index with no padding.
//	Member 0 denotes the control run.
//
// Paths are the join key between the producer and consumer services, so the
// grammar must remain stable across versions. BuildPath and ParsePath are
// exact inverses for any valid DatasetAddress.
package domain
