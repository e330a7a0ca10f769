package domain

import (
	"fmt"
	"strings"
)

// bboxMarkers prefix the four extents in serialization order:
// west, south, east, north.
var bboxMarkers = [4]string{"w", "s", "e", "n"}

// EncodeBBox serializes a bounding box as
// w<lon_min>_s<lat_min>_e<lon_max>_n<lat_max>, with each extent encoded as a
// numeric token. The ordering invariant is enforced before encoding.
func EncodeBBox(b BoundingBox) (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}
	fields := [4]float64{b.LonMin, b.LatMin, b.LonMax, b.LatMax}
	parts := make([]string, 0, 4)
	for i, f := range fields {
		tok, err := EncodeNumber(f)
		if err != nil {
			return "", err
		}
		parts = append(parts, bboxMarkers[i]+tok)
	}
	return strings.Join(parts, "_"), nil
}

// DecodeBBox parses a serialized bounding box. Template mismatches surface as
// MalformedBoundingBoxError; a well-formed string describing an inverted box
// fails with InvalidBoundingBoxError.
func DecodeBBox(s string) (BoundingBox, error) {
	parts := strings.Split(s, "_")
	if len(parts) != 4 {
		return BoundingBox{}, &MalformedBoundingBoxError{
			Input:  s,
			Reason: "expected four '_'-separated fields w<lon_min>_s<lat_min>_e<lon_max>_n<lat_max>",
		}
	}

	var fields [4]float64
	for i, part := range parts {
		marker := bboxMarkers[i]
		tok, ok := strings.CutPrefix(part, marker)
		if !ok || tok == "" {
			return BoundingBox{}, &MalformedBoundingBoxError{
				Input:  s,
				Reason: fmt.Sprintf("field %d must start with %q followed by a numeric token", i+1, marker),
			}
		}
		f, err := decodeFloatToken(tok)
		if err != nil {
			return BoundingBox{}, &MalformedBoundingBoxError{
				Input:  s,
				Reason: fmt.Sprintf("field %q: %v", marker, err),
				cause:  err,
			}
		}
		fields[i] = f
	}

	b := BoundingBox{LonMin: fields[0], LatMin: fields[1], LonMax: fields[2], LatMax: fields[3]}
	if err := b.Validate(); err != nil {
		return BoundingBox{}, err
	}
	return b, nil
}
