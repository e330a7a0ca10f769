package datastore

import (
	"fmt"
	"strings"
	"time"
)

// SchemaValidationError reports a configuration document violating the
// structural invariants in (*Config).Validate.
type SchemaValidationError struct {
	Field  string
	Reason string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("invalid datastore config: %s: %s", e.Field, e.Reason)
}

// EmptyTimeDimensionsError reports a derivation called without replacement
// time dimensions.
type EmptyTimeDimensionsError struct{}

func (e *EmptyTimeDimensionsError) Error() string {
	return "time dimensions must be a non-empty ordered list; the first entry is the sampling dimension"
}

// UnknownInputKeyError reports an input-path override whose key does not
// exist in the training config.
type UnknownInputKeyError struct {
	Key   string
	Known []string
}

func (e *UnknownInputKeyError) Error() string {
	return fmt.Sprintf("input %q not found in config inputs; available keys: %s", e.Key, strings.Join(e.Known, ", "))
}

// NegativeForecastDurationError reports a derivation called with a forecast
// duration below zero.
type NegativeForecastDurationError struct {
	Duration time.Duration
}

func (e *NegativeForecastDurationError) Error() string {
	return fmt.Sprintf("forecast duration must be >= 0, got %s", e.Duration)
}
