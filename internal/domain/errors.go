package domain

import "fmt"

// UnsupportedNumberTypeError reports a value the numeric token codec cannot
// encode: anything that is not an integer or a finite float.
type UnsupportedNumberTypeError struct {
	Value any
}

func (e *UnsupportedNumberTypeError) Error() string {
	return fmt.Sprintf("unsupported number type %T (%v): expected integer or finite float", e.Value, e.Value)
}

// MalformedNumericTokenError reports a token that is neither a decimal integer
// nor an integer-and-fraction pair joined by 'p'.
type MalformedNumericTokenError struct {
	Token string
}

func (e *MalformedNumericTokenError) Error() string {
	return fmt.Sprintf("malformed numeric token %q: expected decimal digits with at most one leading sign and one 'p' separator", e.Token)
}

// InvalidUnitError reports a resolution unit outside the closed enumeration.
type InvalidUnitError struct {
	Unit string
}

func (e *InvalidUnitError) Error() string {
	return fmt.Sprintf("invalid unit %q: must be one of %v", e.Unit, ValidUnits())
}

// InvalidBoundingBoxError reports a bounding box violating the ordering
// invariant (minima not strictly below maxima).
type InvalidBoundingBoxError struct {
	BBox   BoundingBox
	Reason string
}

func (e *InvalidBoundingBoxError) Error() string {
	return fmt.Sprintf("invalid bounding box %+v: %s", e.BBox, e.Reason)
}

// MalformedBoundingBoxError reports a string that does not match the
// w<lon_min>_s<lat_min>_e<lon_max>_n<lat_max> template.
type MalformedBoundingBoxError struct {
	Input  string
	Reason string
	cause  error
}

func (e *MalformedBoundingBoxError) Error() string {
	return fmt.Sprintf("malformed bounding box %q: %s", e.Input, e.Reason)
}

func (e *MalformedBoundingBoxError) Unwrap() error { return e.cause }

// MalformedResolutionError reports a string that does not match the
// dx<lon_resolution><unit>_dy<lat_resolution><unit> template.
type MalformedResolutionError struct {
	Input  string
	Reason string
	cause  error
}

func (e *MalformedResolutionError) Error() string {
	return fmt.Sprintf("malformed resolution %q: %s", e.Input, e.Reason)
}

func (e *MalformedResolutionError) Unwrap() error { return e.cause }

// MalformedPathError reports a dataset path whose overall template does not
// match. Field-level decode failures (bbox, resolution) keep their own kinds
// and are not converted to this one.
type MalformedPathError struct {
	Path   string
	Reason string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("malformed dataset path %q: %s", e.Path, e.Reason)
}

// InvalidAddressError reports a DatasetAddress that cannot be serialized:
// empty or slash-bearing segments, or a negative ensemble member.
type InvalidAddressError struct {
	Field  string
	Reason string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid dataset address: %s: %s", e.Field, e.Reason)
}
