package pipeline_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/forecast-dataset-prep/internal/catalog"
	"github.com/couchcryptid/forecast-dataset-prep/internal/datastore"
	"github.com/couchcryptid/forecast-dataset-prep/internal/domain"
	"github.com/couchcryptid/forecast-dataset-prep/internal/pipeline"
)

const trainingYAML = `inputs:
  danra_surface:
    path: s3://datasets/danra/surface.zarr
    dims: [time, x, y]
    dim_mapping:
      time:
        method: rename
        dim: time
output:
  variables:
    state: [time, grid_index, state_feature]
  splitting:
    dim: time
    splits:
      train:
        start: 1990-09-01T00:00:00Z
        end: 2019-12-31T00:00:00Z
  coord_ranges:
    time:
      start: 1990-09-01T00:00:00Z
      end: 2019-12-31T00:00:00Z
  chunking:
    time: 1
`

var defaultTimeDims = []string{"analysis_time", "elapsed_forecast_duration"}

func deriveRequestJSON(t *testing.T) []byte {
	t.Helper()
	data, err := json.Marshal(map[string]any{
		"model_name":   "danra",
		"model_config": "hi_lam",
		"data_kind":    "analysis",
		"member":       0,
		"bbox": map[string]float64{
			"lon_min": 8.0, "lat_min": 54.5, "lon_max": 13.0, "lat_max": 57.8,
		},
		"resolution": map[string]any{
			"lon_resolution": 0.25, "lat_resolution": 0.25, "unit": "deg",
		},
		"analysis_time":     "2024-01-15T12:00:00Z",
		"forecast_duration": "48h",
		"overwrite_input_paths": map[string]string{
			"danra_surface": "s3://forecasts/danra/2024011512.zarr",
		},
		"training_config": trainingYAML,
	})
	require.NoError(t, err)
	return data
}

func newTransformer(cat *catalog.Catalog) *pipeline.DeriveTransformer {
	return pipeline.NewTransformer(cat, newTestMetrics(), defaultTimeDims, datastore.SplitThreeWay, slog.Default())
}

func TestDeriveTransformer_Transform(t *testing.T) {
	cat := catalog.New()
	tfm := newTransformer(cat)

	out, err := tfm.Transform(context.Background(), domain.RawEvent{Value: deriveRequestJSON(t)})
	require.NoError(t, err)

	assert.Equal(t,
		"danra/hi_lam/w8p0_s54p5_e13p0_n57p8/dx0p25deg_dy0p25deg/2024-01-15T1200Z/member0/analysis.zarr",
		string(out.Key),
	)
	assert.Equal(t, "danra", out.Headers["model_name"])
	assert.Equal(t, "analysis", out.Headers["data_kind"])
	assert.Equal(t, "2024-01-15T1200Z", out.Headers["analysis_time"])

	derived, err := datastore.Parse(out.Value)
	require.NoError(t, err)

	analysisTime := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	want := &datastore.Config{
		Inputs: map[string]datastore.InputSpec{
			"danra_surface": {
				Path: "s3://forecasts/danra/2024011512.zarr",
				Dims: []string{"analysis_time", "elapsed_forecast_duration", "x", "y"},
				DimMapping: map[string]datastore.DimMapping{
					"analysis_time":             {Method: "rename", Dim: "analysis_time"},
					"elapsed_forecast_duration": {Method: "rename", Dim: "elapsed_forecast_duration"},
				},
			},
		},
		Output: datastore.OutputSpec{
			Variables: map[string][]string{
				"state": {"analysis_time", "elapsed_forecast_duration", "grid_index", "state_feature"},
			},
			Splitting: datastore.Splitting{
				Dim: "time",
				Splits: map[string]datastore.Split{
					"train": {Start: analysisTime, End: analysisTime},
					"val":   {Start: analysisTime, End: analysisTime},
					"test":  {Start: analysisTime, End: analysisTime.Add(48 * time.Hour)},
				},
			},
			CoordRanges: map[string]datastore.Range{
				"analysis_time": {Start: analysisTime, End: analysisTime.Add(48 * time.Hour)},
			},
			Chunking: map[string]int{"analysis_time": 1},
		},
	}
	if diff := cmp.Diff(want, derived); diff != "" {
		t.Fatalf("derived config mismatch (-want +got):\n%s", diff)
	}

	// The derived dataset is now discoverable through the catalog.
	entries, err := cat.Intersecting(domain.BoundingBox{LonMin: 9, LatMin: 55, LonMax: 10, LatMax: 56})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, string(out.Key), entries[0].Path)
}

func TestDeriveTransformer_Transform_InvalidJSON(t *testing.T) {
	tfm := newTransformer(catalog.New())

	_, err := tfm.Transform(context.Background(), domain.RawEvent{Value: []byte("not json")})
	assert.Error(t, err)
}

func TestDeriveTransformer_Transform_InvalidTrainingConfig(t *testing.T) {
	data, err := json.Marshal(map[string]any{
		"model_name":      "danra",
		"analysis_time":   "2024-01-15T12:00:00Z",
		"training_config": "inputs: {}",
	})
	require.NoError(t, err)

	tfm := newTransformer(catalog.New())

	_, err = tfm.Transform(context.Background(), domain.RawEvent{Value: data})

	var schemaErr *datastore.SchemaValidationError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestDeriveTransformer_Transform_UnknownOverrideKey(t *testing.T) {
	data, err := json.Marshal(map[string]any{
		"model_name":    "danra",
		"model_config":  "hi_lam",
		"data_kind":     "analysis",
		"analysis_time": "2024-01-15T12:00:00Z",
		"bbox": map[string]float64{
			"lon_min": 8.0, "lat_min": 54.5, "lon_max": 13.0, "lat_max": 57.8,
		},
		"resolution": map[string]any{
			"lon_resolution": 0.25, "lat_resolution": 0.25, "unit": "deg",
		},
		"overwrite_input_paths": map[string]string{"nope": "s3://x"},
		"training_config":       trainingYAML,
	})
	require.NoError(t, err)

	cat := catalog.New()
	tfm := newTransformer(cat)

	_, err = tfm.Transform(context.Background(), domain.RawEvent{Value: data})

	var keyErr *datastore.UnknownInputKeyError
	require.ErrorAs(t, err, &keyErr)
	assert.Equal(t, "nope", keyErr.Key)
	assert.Zero(t, cat.Len())
}

func TestDeriveTransformer_Transform_DefaultTimeDimensions(t *testing.T) {
	// Request carries explicit time dimensions, overriding the service default.
	data, err := json.Marshal(map[string]any{
		"model_name":    "danra",
		"model_config":  "hi_lam",
		"data_kind":     "analysis",
		"analysis_time": "2024-01-15T12:00:00Z",
		"bbox": map[string]float64{
			"lon_min": 8.0, "lat_min": 54.5, "lon_max": 13.0, "lat_max": 57.8,
		},
		"resolution": map[string]any{
			"lon_resolution": 0.25, "lat_resolution": 0.25, "unit": "deg",
		},
		"time_dimensions": []string{"lead_time"},
		"training_config": trainingYAML,
	})
	require.NoError(t, err)

	tfm := newTransformer(catalog.New())

	out, err := tfm.Transform(context.Background(), domain.RawEvent{Value: data})
	require.NoError(t, err)

	derived, err := datastore.Parse(out.Value)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"lead_time", "grid_index", "state_feature"},
		derived.Output.Variables["state"],
	)
	assert.Equal(t, map[string]int{"lead_time": 1}, derived.Output.Chunking)
}
