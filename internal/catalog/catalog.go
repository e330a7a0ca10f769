// Package catalog maintains an in-memory spatial index of derived datasets.
// Every dataset registered by the pipeline is inserted into an R-tree keyed
// by its geographic bounding box, so operators can query which derived
// configurations cover a region of interest.
package catalog

import (
	"fmt"
	"sync"

	"github.com/dhconnelly/rtreego"

	"github.com/couchcryptid/forecast-dataset-prep/internal/domain"
)

const (
	dimensions  = 2
	minChildren = 25
	maxChildren = 50
)

// Entry is one registered dataset: its full address and the canonical path
// derived from it.
type Entry struct {
	Address domain.DatasetAddress `json:"address"`
	Path    string                `json:"path"`
}

type spatialEntry struct {
	entry Entry
	rect  *rtreego.Rect
}

func (s *spatialEntry) Bounds() *rtreego.Rect {
	return s.rect
}

// Catalog is a concurrency-safe spatial index of dataset entries. The zero
// value is not usable; construct with New.
type Catalog struct {
	mu   sync.RWMutex
	tree *rtreego.Rtree
	n    int
}

func New() *Catalog {
	return &Catalog{
		tree: rtreego.NewTree(dimensions, minChildren, maxChildren),
	}
}

// Register derives the canonical path for addr and indexes the dataset under
// its bounding box. The address is validated by the path encoding; invalid
// addresses are rejected without touching the index.
func (c *Catalog) Register(addr domain.DatasetAddress) (string, error) {
	path, err := domain.BuildPath(addr)
	if err != nil {
		return "", err
	}
	rect, err := rectFromBBox(addr.BBox)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.tree.Insert(&spatialEntry{
		entry: Entry{Address: addr, Path: path},
		rect:  rect,
	})
	c.n++
	return path, nil
}

// Intersecting returns every registered dataset whose bounding box overlaps
// the query box.
func (c *Catalog) Intersecting(bbox domain.BoundingBox) ([]Entry, error) {
	rect, err := rectFromBBox(bbox)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	results := c.tree.SearchIntersect(rect)
	entries := make([]Entry, 0, len(results))
	for _, result := range results {
		if se, ok := result.(*spatialEntry); ok {
			entries = append(entries, se.entry)
		}
	}
	return entries, nil
}

// Covering returns every registered dataset whose bounding box fully contains
// the query box. A dataset covers the query when the query lies inside its
// extents on both axes.
func (c *Catalog) Covering(bbox domain.BoundingBox) ([]Entry, error) {
	if err := bbox.Validate(); err != nil {
		return nil, err
	}

	intersecting, err := c.Intersecting(bbox)
	if err != nil {
		return nil, err
	}

	entries := intersecting[:0]
	for _, e := range intersecting {
		b := e.Address.BBox
		if b.LonMin <= bbox.LonMin && b.LatMin <= bbox.LatMin &&
			b.LonMax >= bbox.LonMax && b.LatMax >= bbox.LatMax {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// Len returns the number of registered datasets.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.n
}

func rectFromBBox(bbox domain.BoundingBox) (*rtreego.Rect, error) {
	if err := bbox.Validate(); err != nil {
		return nil, err
	}
	rect, err := rtreego.NewRect(
		rtreego.Point{bbox.LonMin, bbox.LatMin},
		[]float64{bbox.LonMax - bbox.LonMin, bbox.LatMax - bbox.LatMin},
	)
	if err != nil {
		return nil, fmt.Errorf("bounding box to rect: %w", err)
	}
	return rect, nil
}
