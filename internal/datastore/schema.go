package datastore

import (
	"slices"
	"time"
)

// Config is a datastore configuration tree: named raw inputs plus one output
// specification. The same type describes training-time and inference-time
// configurations.
type Config struct {
	SchemaVersion string               `yaml:"schema_version,omitempty"`
	Inputs        map[string]InputSpec `yaml:"inputs"`
	Output        OutputSpec           `yaml:"output"`
}

// InputSpec describes one raw input dataset and how its axes map onto the
// output's dimensions.
type InputSpec struct {
	Path       string                `yaml:"path"`
	Dims       []string              `yaml:"dims"`
	Variables  []string              `yaml:"variables,omitempty"`
	DimMapping map[string]DimMapping `yaml:"dim_mapping,omitempty"`
}

// DimMapping is the rule producing one output dimension from a raw input.
// "rename" takes an axis that already exists under Dim; "stack" combines the
// axes listed in Dims.
type DimMapping struct {
	Method string   `yaml:"method"`
	Dim    string   `yaml:"dim,omitempty"`
	Dims   []string `yaml:"dims,omitempty"`
}

// OutputSpec declares the assembled dataset: its variables with their
// dimension order, the named time partitions, and per-dimension coordinate
// ranges and chunk sizes.
type OutputSpec struct {
	Variables   map[string][]string `yaml:"variables"`
	Splitting   Splitting           `yaml:"splitting"`
	CoordRanges map[string]Range    `yaml:"coord_ranges,omitempty"`
	Chunking    map[string]int      `yaml:"chunking,omitempty"`
}

// Splitting names the dimension a dataset is partitioned along and the
// time-bounded partitions themselves.
type Splitting struct {
	Dim    string           `yaml:"dim"`
	Splits map[string]Split `yaml:"splits"`
}

// Split is one named, time-bounded partition of the dataset.
type Split struct {
	Start time.Time `yaml:"start"`
	End   time.Time `yaml:"end"`
}

// Range bounds a coordinate axis.
type Range struct {
	Start time.Time `yaml:"start"`
	End   time.Time `yaml:"end"`
}

// Clone returns a deep copy of the config. No slice or map in the returned
// tree is shared with the receiver; mutating the copy's dimension lists or
// mappings can never corrupt the original. This is the independence the
// transformer relies on.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	out := &Config{
		SchemaVersion: c.SchemaVersion,
		Output: OutputSpec{
			Splitting: Splitting{Dim: c.Output.Splitting.Dim},
		},
	}

	if c.Inputs != nil {
		out.Inputs = make(map[string]InputSpec, len(c.Inputs))
		for name, in := range c.Inputs {
			cp := InputSpec{
				Path:      in.Path,
				Dims:      slices.Clone(in.Dims),
				Variables: slices.Clone(in.Variables),
			}
			if in.DimMapping != nil {
				cp.DimMapping = make(map[string]DimMapping, len(in.DimMapping))
				for dim, m := range in.DimMapping {
					m.Dims = slices.Clone(m.Dims)
					cp.DimMapping[dim] = m
				}
			}
			out.Inputs[name] = cp
		}
	}

	if c.Output.Variables != nil {
		out.Output.Variables = make(map[string][]string, len(c.Output.Variables))
		for name, dims := range c.Output.Variables {
			out.Output.Variables[name] = slices.Clone(dims)
		}
	}
	if c.Output.Splitting.Splits != nil {
		out.Output.Splitting.Splits = make(map[string]Split, len(c.Output.Splitting.Splits))
		for name, s := range c.Output.Splitting.Splits {
			out.Output.Splitting.Splits[name] = s
		}
	}
	if c.Output.CoordRanges != nil {
		out.Output.CoordRanges = make(map[string]Range, len(c.Output.CoordRanges))
		for dim, r := range c.Output.CoordRanges {
			out.Output.CoordRanges[dim] = r
		}
	}
	if c.Output.Chunking != nil {
		out.Output.Chunking = make(map[string]int, len(c.Output.Chunking))
		for dim, n := range c.Output.Chunking {
			out.Output.Chunking[dim] = n
		}
	}

	return out
}

// Validate checks the structural invariants a well-formed document must
// satisfy. Violations surface as SchemaValidationError.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return &SchemaValidationError{Field: "inputs", Reason: "at least one input is required"}
	}
	for name, in := range c.Inputs {
		if in.Path == "" {
			return &SchemaValidationError{Field: "inputs." + name + ".path", Reason: "must not be empty"}
		}
		if len(in.Dims) == 0 {
			return &SchemaValidationError{Field: "inputs." + name + ".dims", Reason: "must not be empty"}
		}
	}
	if len(c.Output.Variables) == 0 {
		return &SchemaValidationError{Field: "output.variables", Reason: "at least one variable is required"}
	}
	for name, dims := range c.Output.Variables {
		if len(dims) == 0 {
			return &SchemaValidationError{Field: "output.variables." + name, Reason: "dimension list must not be empty"}
		}
	}
	if len(c.Output.Splitting.Splits) > 0 && c.Output.Splitting.Dim == "" {
		return &SchemaValidationError{Field: "output.splitting.dim", Reason: "required when splits are declared"}
	}
	for name, s := range c.Output.Splitting.Splits {
		if s.End.Before(s.Start) {
			return &SchemaValidationError{Field: "output.splitting.splits." + name, Reason: "end must not precede start"}
		}
	}
	for dim, n := range c.Output.Chunking {
		if n <= 0 {
			return &SchemaValidationError{Field: "output.chunking." + dim, Reason: "chunk size must be positive"}
		}
	}
	return nil
}
