package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeResolution(t *testing.T) {
	tests := []struct {
		name     string
		res      Resolution
		expected string
	}{
		{"degrees", Resolution{LonResolution: 0.1, LatResolution: 0.2, Unit: UnitDegree}, "dx0p1deg_dy0p2deg"},
		{"meters", Resolution{LonResolution: 2500.0, LatResolution: 2500.0, Unit: UnitMeter}, "dx2500p0m_dy2500p0m"},
		{"kilometers", Resolution{LonResolution: 2.5, LatResolution: 2.5, Unit: UnitKilometer}, "dx2p5km_dy2p5km"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeResolution(tt.res)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEncodeResolution_InvalidUnit(t *testing.T) {
	for _, unit := range []Unit{"parsec", "", "miles", "M", "KM"} {
		t.Run(string(unit), func(t *testing.T) {
			_, err := EncodeResolution(Resolution{LonResolution: 0.1, LatResolution: 0.1, Unit: unit})
			var invalid *InvalidUnitError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, string(unit), invalid.Unit)
		})
	}
}

func TestDecodeResolution(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Resolution
	}{
		{"degrees", "dx0p1deg_dy0p2deg", Resolution{LonResolution: 0.1, LatResolution: 0.2, Unit: UnitDegree}},
		{"meters with integer tokens", "dx2500m_dy2500m", Resolution{LonResolution: 2500, LatResolution: 2500, Unit: UnitMeter}},
		{"kilometers", "dx2p5km_dy2p5km", Resolution{LonResolution: 2.5, LatResolution: 2.5, Unit: UnitKilometer}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeResolution(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDecodeResolution_Malformed(t *testing.T) {
	inputs := []string{
		"",
		"dx0p1deg",             // missing dy field
		"0p1deg_0p2deg",        // missing dx/dy markers
		"dx0p1_dy0p2",          // missing units
		"dx0p1parsec_dy0p2parsec", // unknown unit
		"dx0p1deg_dy0p2km",     // unit mismatch
		"dxdeg_dydeg",          // empty numeric tokens
		"dx0x1deg_dy0p2deg",    // bad numeric token
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := DecodeResolution(input)
			var malformed *MalformedResolutionError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, input, malformed.Input)
		})
	}
}

func TestResolutionRoundTrip(t *testing.T) {
	resolutions := []Resolution{
		{LonResolution: 0.1, LatResolution: 0.2, Unit: UnitDegree},
		{LonResolution: 2500.0, LatResolution: 1250.5, Unit: UnitMeter},
		{LonResolution: 2.5, LatResolution: 2.5, Unit: UnitKilometer},
	}

	for _, r := range resolutions {
		s, err := EncodeResolution(r)
		require.NoError(t, err)
		got, err := DecodeResolution(s)
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
}
