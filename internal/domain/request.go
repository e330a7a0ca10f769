package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration wraps time.Duration with JSON string encoding ("48h", "90m").
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"48h\": %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// DeriveRequest is the message consumed from the source topic: one inference
// dataset to prepare. It carries the identity of the dataset artifact to
// produce, the temporal window of the forecast run, and the training-time
// datastore configuration document to derive from.
type DeriveRequest struct {
	ModelName    string      `json:"model_name"`
	ModelConfig  string      `json:"model_config"`
	DataKind     string      `json:"data_kind"`
	Member       int         `json:"member"`
	BBox         BoundingBox `json:"bbox"`
	Resolution   Resolution  `json:"resolution"`
	AnalysisTime time.Time   `json:"analysis_time"`

	ForecastDuration Duration `json:"forecast_duration"`

	// TimeDimensions replace the training config's "time" axis; the first
	// entry is the sampling dimension. Empty means "use the service default".
	TimeDimensions []string `json:"time_dimensions,omitempty"`

	// OverwriteInputPaths remaps named inputs of the training config to the
	// locations holding the raw forecast data for this run.
	OverwriteInputPaths map[string]string `json:"overwrite_input_paths,omitempty"`

	// TrainingConfig is the training datastore configuration, embedded as a
	// YAML document.
	TrainingConfig string `json:"training_config"`
}

// ParseDeriveRequest deserializes a RawEvent's value into a DeriveRequest and
// checks the fields the transform stage cannot default.
func ParseDeriveRequest(raw RawEvent) (DeriveRequest, error) {
	var req DeriveRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return DeriveRequest{}, fmt.Errorf("parse derive request: %w", err)
	}
	if req.ModelName == "" {
		return DeriveRequest{}, fmt.Errorf("parse derive request: model_name is required")
	}
	if req.AnalysisTime.IsZero() {
		return DeriveRequest{}, fmt.Errorf("parse derive request: analysis_time is required")
	}
	if req.TrainingConfig == "" {
		return DeriveRequest{}, fmt.Errorf("parse derive request: training_config is required")
	}
	return req, nil
}

// Address assembles the DatasetAddress identifying the artifact this request
// will produce.
func (r DeriveRequest) Address() DatasetAddress {
	return DatasetAddress{
		ModelName:    r.ModelName,
		ModelConfig:  r.ModelConfig,
		BBox:         r.BBox,
		Resolution:   r.Resolution,
		AnalysisTime: r.AnalysisTime,
		DataKind:     r.DataKind,
		Member:       r.Member,
	}
}
