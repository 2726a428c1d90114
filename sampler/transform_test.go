// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package sampler_test

import (
	"errors"
	"math"
	"testing"

	"github.com/rainfall-trends/pixval/sampler"
)

func TestInvert(t *testing.T) {
	tests := map[string]sampler.Transform{
		"north up":   {-180, 0.1, 0, 90, 0, -0.1},
		"south up":   {-180, 0.1, 0, -90, 0, 0.1},
		"rotated":    {10, 3, 1, 20, -1, -3},
		"sheared":    {0, 1, 0.5, 0, 0, -1},
		"large grid": {-2_000_000, 500, 0, 3_000_000, 0, -500},
	}

	for name, tr := range tests {
		inv, err := tr.Invert()
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		for _, p := range [][2]float64{{0, 0}, {10.5, 3.25}, {1000, 2000}} {
			x, y := tr.Apply(p[0], p[1])
			col, row := inv.Apply(x, y)
			if math.Abs(col-p[0]) > 1e-9 || math.Abs(row-p[1]) > 1e-9 {
				t.Errorf("%s: pixel %v: got %.12f, %.12f", name, p, col, row)
			}
		}
	}
}

func TestInvertError(t *testing.T) {
	tests := map[string]sampler.Transform{
		"zero width":  {0, 0, 0, 0, 0, -1},
		"zero height": {0, 1, 0, 0, 0, 0},
		"degenerated": {0, 1, 1, 0, 1, 1},
	}
	for name, tr := range tests {
		if _, err := tr.Invert(); !errors.Is(err, sampler.ErrConfig) {
			t.Errorf("%s: got error %v, want %v", name, err, sampler.ErrConfig)
		}
	}
}

func TestExtent(t *testing.T) {
	tests := map[string]struct {
		tr         sampler.Transform
		cols, rows int
		want       sampler.Extent
	}{
		"north up": {
			tr:   sampler.Transform{-60, 0.5, 0, 0, 0, -0.5},
			cols: 20,
			rows: 10,
			want: sampler.Extent{MinX: -60, MaxY: 0, MaxX: -50, MinY: -5},
		},
		"south up": {
			tr:   sampler.Transform{-60, 0.5, 0, -5, 0, 0.5},
			cols: 20,
			rows: 10,
			want: sampler.Extent{MinX: -60, MaxY: 0, MaxX: -50, MinY: -5},
		},
	}

	for name, test := range tests {
		e := sampler.NewExtent(test.tr, test.cols, test.rows)
		if e != test.want {
			t.Errorf("%s: got %+v, want %+v", name, e, test.want)
		}
	}
}
