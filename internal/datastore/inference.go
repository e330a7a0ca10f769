package datastore

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"time"
)

// timeDim is the training-time sampling axis replaced during derivation.
const timeDim = "time"

// Fixed partition names required by the three-way split policy.
const (
	splitTrain = "train"
	splitVal   = "val"
	splitTest  = "test"
)

// SplitPolicy selects how the derived config's partition table is rebuilt.
type SplitPolicy int

const (
	// SplitThreeWay emits train, val, and test partitions. The downstream
	// materialization engine requires all three names to be present even
	// though inference only uses test, so train and val become zero-width
	// windows pinned at the analysis time. The splitting dimension stays
	// "time" for the same reason.
	SplitThreeWay SplitPolicy = iota

	// SplitSingleTest emits a single test partition along the sampling
	// dimension. Use this for consumers without the fixed three-way schema.
	SplitSingleTest
)

// ParseSplitPolicy maps the configuration spelling of a split policy to its
// constant. Accepts "three-way" and "single-test".
func ParseSplitPolicy(s string) (SplitPolicy, error) {
	switch s {
	case "three-way", "":
		return SplitThreeWay, nil
	case "single-test":
		return SplitSingleTest, nil
	default:
		return 0, fmt.Errorf("unknown split policy %q", s)
	}
}

// DeriveParams are the inputs to one derivation.
type DeriveParams struct {
	// AnalysisTime is the reference timestamp the forecast run starts from.
	AnalysisTime time.Time

	// ForecastDuration is the span from analysis time to the final lead
	// time. Must be >= 0.
	ForecastDuration time.Duration

	// TimeDimensions replace the "time" axis; the first entry is the
	// sampling dimension. Must be non-empty.
	TimeDimensions []string

	// OverwriteInputPaths remaps named inputs to new locations. Every key
	// must exist in the training config's inputs.
	OverwriteInputPaths map[string]string

	SplitPolicy SplitPolicy
}

// DeriveInferenceConfig derives an inference-time datastore configuration
// from a training-time one. The training config is read-only: the derivation
// deep-copies it first and all rewrites touch only the copy, so the returned
// tree shares no containers with the input and concurrent derivations from
// the same training config are safe.
func DeriveInferenceConfig(training *Config, p DeriveParams, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(p.TimeDimensions) == 0 {
		return nil, &EmptyTimeDimensionsError{}
	}
	if p.ForecastDuration < 0 {
		return nil, &NegativeForecastDurationError{Duration: p.ForecastDuration}
	}
	samplingDim := p.TimeDimensions[0]

	// Reject unknown override keys before doing any work.
	for key := range p.OverwriteInputPaths {
		if _, ok := training.Inputs[key]; !ok {
			return nil, &UnknownInputKeyError{Key: key, Known: knownInputKeys(training)}
		}
	}

	inference := training.Clone()

	for key, path := range p.OverwriteInputPaths {
		in := inference.Inputs[key]
		logger.Info("overwriting input path",
			"input", key,
			"path", path,
			"previous", in.Path,
		)
		in.Path = path
		inference.Inputs[key] = in
	}

	end := p.AnalysisTime.Add(p.ForecastDuration)

	switch p.SplitPolicy {
	case SplitSingleTest:
		inference.Output.Splitting = Splitting{
			Dim: samplingDim,
			Splits: map[string]Split{
				splitTest: {Start: p.AnalysisTime, End: end},
			},
		}
	default:
		inference.Output.Splitting = Splitting{
			Dim: timeDim,
			Splits: map[string]Split{
				splitTrain: {Start: p.AnalysisTime, End: p.AnalysisTime},
				splitVal:   {Start: p.AnalysisTime, End: p.AnalysisTime},
				splitTest:  {Start: p.AnalysisTime, End: end},
			},
		}
	}

	// The derived dataset is sampled along the sampling dimension only: one
	// analysis time per chunk.
	inference.Output.CoordRanges = map[string]Range{
		samplingDim: {Start: p.AnalysisTime, End: end},
	}
	inference.Output.Chunking = map[string]int{samplingDim: 1}

	for variable, dims := range inference.Output.Variables {
		replaced, ok := substituteDim(dims, timeDim, p.TimeDimensions)
		if !ok {
			continue
		}
		inference.Output.Variables[variable] = replaced
		logger.Info("replaced output variable time dimension",
			"variable", variable,
			"dimensions", p.TimeDimensions,
		)
	}

	// Inputs that mapped a raw "time" axis now rename the replacement axes
	// instead; each is assumed to already exist under its new name in the
	// raw forecast input.
	for name, in := range inference.Inputs {
		if _, ok := in.DimMapping[timeDim]; !ok {
			continue
		}
		if replaced, ok := substituteDim(in.Dims, timeDim, p.TimeDimensions); ok {
			in.Dims = replaced
		}
		delete(in.DimMapping, timeDim)
		for _, dim := range p.TimeDimensions {
			in.DimMapping[dim] = DimMapping{Method: "rename", Dim: dim}
		}
		inference.Inputs[name] = in
	}

	return inference, nil
}

// substituteDim returns a new dimension list with the first occurrence of old
// replaced in place by the replacement sequence, preserving the order of all
// other dimensions. The second result is false when old is absent.
func substituteDim(dims []string, old string, replacement []string) ([]string, bool) {
	idx := slices.Index(dims, old)
	if idx < 0 {
		return dims, false
	}
	out := make([]string, 0, len(dims)-1+len(replacement))
	out = append(out, dims[:idx]...)
	out = append(out, replacement...)
	out = append(out, dims[idx+1:]...)
	return out, true
}

func knownInputKeys(c *Config) []string {
	keys := make([]string, 0, len(c.Inputs))
	for key := range c.Inputs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
