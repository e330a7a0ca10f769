package domain

import (
	"fmt"
	"strings"
)

// EncodeResolution serializes a resolution as
// dx<lon_resolution><unit>_dy<lat_resolution><unit>. Both axes carry the same
// unit token; a unit outside the closed set fails with InvalidUnitError.
func EncodeResolution(r Resolution) (string, error) {
	if !r.Unit.Valid() {
		return "", &InvalidUnitError{Unit: string(r.Unit)}
	}
	dx, err := EncodeNumber(r.LonResolution)
	if err != nil {
		return "", err
	}
	dy, err := EncodeNumber(r.LatResolution)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("dx%s%s_dy%s%s", dx, r.Unit, dy, r.Unit), nil
}

// DecodeResolution parses a serialized resolution. The two axes must carry
// the same unit; any template mismatch, unknown unit, or unit disagreement
// fails with MalformedResolutionError.
func DecodeResolution(s string) (Resolution, error) {
	dxPart, dyPart, found := strings.Cut(s, "_")
	if !found {
		return Resolution{}, &MalformedResolutionError{
			Input:  s,
			Reason: "expected two '_'-separated fields dx<lon_resolution><unit>_dy<lat_resolution><unit>",
		}
	}

	lonRes, lonUnit, err := decodeResolutionAxis(s, dxPart, "dx")
	if err != nil {
		return Resolution{}, err
	}
	latRes, latUnit, err := decodeResolutionAxis(s, dyPart, "dy")
	if err != nil {
		return Resolution{}, err
	}
	if lonUnit != latUnit {
		return Resolution{}, &MalformedResolutionError{
			Input:  s,
			Reason: fmt.Sprintf("axes disagree on unit: %q vs %q", lonUnit, latUnit),
		}
	}

	return Resolution{LonResolution: lonRes, LatResolution: latRes, Unit: lonUnit}, nil
}

// decodeResolutionAxis splits one "dx0p1deg"-style field into its numeric
// token and unit suffix. Units are matched longest-first so "km" is never
// truncated to "m".
func decodeResolutionAxis(input, field, marker string) (float64, Unit, error) {
	body, ok := strings.CutPrefix(field, marker)
	if !ok || body == "" {
		return 0, "", &MalformedResolutionError{
			Input:  input,
			Reason: fmt.Sprintf("field must start with %q followed by a numeric token and unit", marker),
		}
	}

	for _, unit := range validUnits {
		tok, ok := strings.CutSuffix(body, string(unit))
		if !ok || tok == "" {
			continue
		}
		v, err := decodeFloatToken(tok)
		if err != nil {
			return 0, "", &MalformedResolutionError{
				Input:  input,
				Reason: fmt.Sprintf("field %q: %v", marker, err),
				cause:  err,
			}
		}
		return v, unit, nil
	}

	return 0, "", &MalformedResolutionError{
		Input:  input,
		Reason: fmt.Sprintf("field %q must end with one of %v", marker, ValidUnits()),
	}
}
