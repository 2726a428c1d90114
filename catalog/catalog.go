// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package catalog implements a catalog of raster images
// indexed by their extent.
package catalog

import (
	"slices"
	"strings"

	"github.com/rainfall-trends/pixval/points"
)

// An Entry is an image in a catalog.
type Entry struct {
	// Path of the image file.
	Path string

	// Bounds of the image
	// in the reference system of the catalog,
	// in the order [MinX, MinY, MaxX, MaxY].
	Bounds [4]float64
}

// Contains returns true if a point is inside the image bounds.
// Bounds are closed.
func (e Entry) Contains(x, y float64) bool {
	return e.Bounds[0] <= x && x <= e.Bounds[2] && e.Bounds[1] <= y && y <= e.Bounds[3]
}

// A Catalog is a collection of images.
// All bounds in a catalog
// must be in the same reference system.
type Catalog struct {
	entries map[string]Entry
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{entries: make(map[string]Entry)}
}

// Add adds an image to the catalog.
// Bounds are sorted
// so the minimum is always before the maximum.
// If the path is already in the catalog,
// it will be replaced.
func (c *Catalog) Add(path string, bounds [4]float64) {
	if bounds[0] > bounds[2] {
		bounds[0], bounds[2] = bounds[2], bounds[0]
	}
	if bounds[1] > bounds[3] {
		bounds[1], bounds[3] = bounds[3], bounds[1]
	}
	c.entries[path] = Entry{Path: path, Bounds: bounds}
}

// Len returns the number of images in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns the images of the catalog,
// sorted by path.
func (c *Catalog) Entries() []Entry {
	es := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		es = append(es, e)
	}
	slices.SortFunc(es, func(a, b Entry) int {
		return strings.Compare(a.Path, b.Path)
	})
	return es
}

// Find returns the images that contain a point,
// sorted by path.
func (c *Catalog) Find(x, y float64) []Entry {
	var es []Entry
	for _, e := range c.entries {
		if e.Contains(x, y) {
			es = append(es, e)
		}
	}
	slices.SortFunc(es, func(a, b Entry) int {
		return strings.Compare(a.Path, b.Path)
	})
	return es
}

// Assign returns the points contained
// in each image of the catalog.
// Images without points are not included.
func (c *Catalog) Assign(pts []points.Point) map[string][]points.Point {
	a := make(map[string][]points.Point)
	for _, p := range pts {
		for _, e := range c.Find(p.X, p.Y) {
			a[e.Path] = append(a[e.Path], p)
		}
	}
	return a
}
