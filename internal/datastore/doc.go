// Package datastore models the datastore configuration document: the
// declarative description of how a dataset is assembled from named raw
// inputs, which output variables it carries, and how it is partitioned,
// ranged, and chunked along its coordinate axes.
//
// # Document Shape
//
// Configurations are YAML documents of the form:
//
//	inputs:
//	  danra_surface:
//	    path: s3://datasets/danra/surface.zarr
//	    dims: [time, x, y]
//	    dim_mapping:
//	      time: {method: rename, dim: time}
//	      grid_index: {method: stack, dims: [x, y]}
//	output:
//	  variables:
//	    state: [time, grid_index, state_feature]
//	  splitting:
//	    dim: time
//	    splits:
//	      train: {start: 1990-09-01T00:00:00Z, end: 2019-12-31T00:00:00Z}
//	      val:   {start: 2020-01-01T00:00:00Z, end: 2021-12-31T00:00:00Z}
//	      test:  {start: 2022-01-01T00:00:00Z, end: 2023-12-31T00:00:00Z}
//	  coord_ranges:
//	    time: {start: 1990-09-01T00:00:00Z, end: 2023-12-31T00:00:00Z}
//	  chunking:
//	    time: 1
//
// The same shape describes both training-time and inference-time
// configurations. DeriveInferenceConfig transforms the former into the
// latter: it substitutes the single "time" sampling axis with an ordered
// list of forecast time dimensions (sampling dimension first), re-derives
// the partition windows around one analysis time, and rewrites per-input
// dimension metadata. The caller's training config is never mutated; every
// derivation operates on an independent deep copy.
//
// Configs are value trees. Nothing in this package performs I/O beyond
// LoadFile/WriteFile, and nothing is shared between derivations.
package datastore
