package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// AnalysisTimeLayout renders analysis times without colons (unsafe in
	// object-store keys) and without seconds; always UTC.
	AnalysisTimeLayout = "2006-01-02T1504Z"

	memberPrefix = "member"
	pathSuffix   = ".zarr"
	pathSegments = 7
)

// BuildPath serializes a DatasetAddress into its canonical storage path:
//
//	<model_name>/<model_config>/<bbox>/<resolution>/<analysis_time>/member<member>/<data_kind>.zarr
//
// The analysis time is truncated to the minute and rendered in UTC. Member is
// the plain decimal index with no padding.
func BuildPath(a DatasetAddress) (string, error) {
	if err := validateSegment("model_name", a.ModelName); err != nil {
		return "", err
	}
	if err := validateSegment("model_config", a.ModelConfig); err != nil {
		return "", err
	}
	if err := validateSegment("data_kind", a.DataKind); err != nil {
		return "", err
	}
	if a.Member < 0 {
		return "", &InvalidAddressError{Field: "member", Reason: fmt.Sprintf("must be non-negative, got %d", a.Member)}
	}
	if a.AnalysisTime.IsZero() {
		return "", &InvalidAddressError{Field: "analysis_time", Reason: "must be set"}
	}

	bbox, err := EncodeBBox(a.BBox)
	if err != nil {
		return "", err
	}
	resolution, err := EncodeResolution(a.Resolution)
	if err != nil {
		return "", err
	}

	return strings.Join([]string{
		a.ModelName,
		a.ModelConfig,
		bbox,
		resolution,
		a.AnalysisTime.UTC().Format(AnalysisTimeLayout),
		memberPrefix + strconv.Itoa(a.Member),
		a.DataKind + pathSuffix,
	}, "/"), nil
}

// ParsePath is the inverse of BuildPath. An overall template mismatch fails
// with MalformedPathError; bbox and resolution decode failures keep their own
// error kinds.
func ParsePath(path string) (DatasetAddress, error) {
	parts := strings.Split(path, "/")
	if len(parts) != pathSegments {
		return DatasetAddress{}, &MalformedPathError{
			Path:   path,
			Reason: fmt.Sprintf("expected %d '/'-separated segments, got %d", pathSegments, len(parts)),
		}
	}
	for i, part := range parts {
		if part == "" {
			return DatasetAddress{}, &MalformedPathError{Path: path, Reason: fmt.Sprintf("segment %d is empty", i+1)}
		}
	}

	bbox, err := DecodeBBox(parts[2])
	if err != nil {
		return DatasetAddress{}, err
	}
	resolution, err := DecodeResolution(parts[3])
	if err != nil {
		return DatasetAddress{}, err
	}

	analysisTime, err := time.Parse(AnalysisTimeLayout, parts[4])
	if err != nil {
		return DatasetAddress{}, &MalformedPathError{
			Path:   path,
			Reason: fmt.Sprintf("analysis time %q does not match layout %s", parts[4], AnalysisTimeLayout),
		}
	}

	memberStr, ok := strings.CutPrefix(parts[5], memberPrefix)
	if !ok || !isDigits(memberStr) {
		return DatasetAddress{}, &MalformedPathError{
			Path:   path,
			Reason: fmt.Sprintf("member segment %q must be %q followed by decimal digits", parts[5], memberPrefix),
		}
	}
	member, err := strconv.Atoi(memberStr)
	if err != nil {
		return DatasetAddress{}, &MalformedPathError{Path: path, Reason: fmt.Sprintf("member index %q out of range", memberStr)}
	}

	dataKind, ok := strings.CutSuffix(parts[6], pathSuffix)
	if !ok || dataKind == "" {
		return DatasetAddress{}, &MalformedPathError{
			Path:   path,
			Reason: fmt.Sprintf("data kind segment %q must end with %q", parts[6], pathSuffix),
		}
	}

	return DatasetAddress{
		ModelName:    parts[0],
		ModelConfig:  parts[1],
		BBox:         bbox,
		Resolution:   resolution,
		AnalysisTime: analysisTime.UTC(),
		DataKind:     dataKind,
		Member:       member,
	}, nil
}

func validateSegment(field, value string) error {
	if value == "" {
		return &InvalidAddressError{Field: field, Reason: "must not be empty"}
	}
	if strings.Contains(value, "/") {
		return &InvalidAddressError{Field: field, Reason: "must not contain '/'"}
	}
	return nil
}
