package datastore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `schema_version: v0.5.0
inputs:
  danra_surface:
    path: s3://datasets/danra/surface.zarr
    dims: [time, x, y]
    variables: [t2m, u10]
    dim_mapping:
      time:
        method: rename
        dim: time
      grid_index:
        method: stack
        dims: [x, y]
output:
  variables:
    state: [time, grid_index, state_feature]
  splitting:
    dim: time
    splits:
      train:
        start: 1990-09-01T00:00:00Z
        end: 2019-12-31T00:00:00Z
      test:
        start: 2022-01-01T00:00:00Z
        end: 2023-12-31T00:00:00Z
  coord_ranges:
    time:
      start: 1990-09-01T00:00:00Z
      end: 2023-12-31T00:00:00Z
  chunking:
    time: 1
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(testConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "v0.5.0", c.SchemaVersion)

	surface := c.Inputs["danra_surface"]
	assert.Equal(t, "s3://datasets/danra/surface.zarr", surface.Path)
	assert.Equal(t, []string{"time", "x", "y"}, surface.Dims)
	assert.Equal(t, DimMapping{Method: "stack", Dims: []string{"x", "y"}}, surface.DimMapping["grid_index"])

	assert.Equal(t, []string{"time", "grid_index", "state_feature"}, c.Output.Variables["state"])
	assert.Equal(t, "time", c.Output.Splitting.Dim)
	assert.Equal(t, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), c.Output.Splitting.Splits["test"].Start)
	assert.Equal(t, map[string]int{"time": 1}, c.Output.Chunking)
}

func TestParse_InvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "not yaml", yaml: "{{nope"},
		{name: "missing inputs", yaml: "output:\n  variables:\n    state: [time]\n"},
		{name: "missing variables", yaml: "inputs:\n  a:\n    path: s3://x\n    dims: [time]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
			assert.Nil(t, c)
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	original, err := Parse([]byte(testConfigYAML))
	require.NoError(t, err)

	data, err := Marshal(original)
	require.NoError(t, err)

	reparsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, original, reparsed)
}

func TestLoadWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)

	out := filepath.Join(dir, "derived.yaml")
	require.NoError(t, WriteFile(c, out))

	reloaded, err := LoadFile(out)
	require.NoError(t, err)
	assert.Equal(t, c, reloaded)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
