// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package catalog_test

import (
	"reflect"
	"testing"

	"github.com/rainfall-trends/pixval/catalog"
	"github.com/rainfall-trends/pixval/points"
)

func newCatalog() *catalog.Catalog {
	c := catalog.New()
	c.Add("gpm-2001-01.tif", [4]float64{-60, -20, -40, 0})
	c.Add("gpm-2001-02.tif", [4]float64{-60, -20, -40, 0})
	// unsorted bounds
	c.Add("mapbiomas.tif", [4]float64{-45, 5, -55, -10})
	return c
}

func TestFind(t *testing.T) {
	c := newCatalog()
	if c.Len() != 3 {
		t.Errorf("len: got %d, want %d", c.Len(), 3)
	}

	tests := map[string]struct {
		x, y float64
		want []string
	}{
		"all":     {-50, -5, []string{"gpm-2001-01.tif", "gpm-2001-02.tif", "mapbiomas.tif"}},
		"gpm":     {-58, -15, []string{"gpm-2001-01.tif", "gpm-2001-02.tif"}},
		"border":  {-40, 0, []string{"gpm-2001-01.tif", "gpm-2001-02.tif"}},
		"north":   {-50, 4, []string{"mapbiomas.tif"}},
		"outside": {10, 10, nil},
	}

	for name, test := range tests {
		var got []string
		for _, e := range c.Find(test.x, test.y) {
			got = append(got, e.Path)
		}
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("%s: got %v, want %v", name, got, test.want)
		}
	}
}

func TestAssign(t *testing.T) {
	c := newCatalog()
	pts := []points.Point{
		{ID: "a", X: -50, Y: -5},
		{ID: "b", X: -58, Y: -15},
		{ID: "c", X: 10, Y: 10},
	}

	got := c.Assign(pts)
	want := map[string][]points.Point{
		"gpm-2001-01.tif": {pts[0], pts[1]},
		"gpm-2001-02.tif": {pts[0], pts[1]},
		"mapbiomas.tif":   {pts[0]},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
