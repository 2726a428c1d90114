// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package quicklook_test

import (
	"errors"
	"image/color"
	"testing"

	"github.com/rainfall-trends/pixval/legend"
	"github.com/rainfall-trends/pixval/quicklook"
	"github.com/rainfall-trends/pixval/sampler"
)

type raster struct {
	cols, rows int
	vals       []float64
	reads      []int
}

func (r *raster) Size() (cols, rows int) { return r.cols, r.rows }
func (r *raster) ReadRow(band, row int, buf []float64) ([]float64, error) {
	if band != 1 {
		return nil, errors.New("invalid band")
	}
	r.reads = append(r.reads, row)
	if len(buf) < r.cols {
		buf = make([]float64, r.cols)
	}
	copy(buf, r.vals[row*r.cols:(row+1)*r.cols])
	return buf[:r.cols], nil
}

func newRaster() *raster {
	return &raster{
		cols: 5,
		rows: 3,
		vals: []float64{
			1, 2, 3, 4, 5,
			6, 7, 8, 9, 10,
			11, 12, 13, 14, 255,
		},
	}
}

var transparent = color.RGBA{0, 0, 0, 0}

func TestRead(t *testing.T) {
	r := newRaster()
	band := sampler.Band{Index: 1, Type: sampler.Byte, NoData: 255, HasNoData: true}

	var rows int
	img, err := quicklook.Read(r, band, 10, func() { rows++ })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 3 {
		t.Errorf("bounds: got %v, want 5 x 3", b)
	}
	if rows != 3 {
		t.Errorf("progress: got %d rows, want %d", rows, 3)
	}
	if min, max := img.Range(); min != 1 || max != 14 {
		t.Errorf("range: got %.3f-%.3f, want %.3f-%.3f", min, max, 1.0, 14.0)
	}

	g := quicklook.Iridescent{}
	img.Gradient = g
	tests := map[string]struct {
		x, y int
		want color.Color
	}{
		"min":    {0, 0, g.Gradient(0)},
		"max":    {3, 2, g.Gradient(1)},
		"nodata": {4, 2, transparent},
	}
	for name, test := range tests {
		if got := img.At(test.x, test.y); got != test.want {
			t.Errorf("%s: got %v, want %v", name, got, test.want)
		}
	}
}

func TestReadStep(t *testing.T) {
	r := newRaster()
	band := sampler.Band{Index: 1, Type: sampler.Byte}

	img, err := quicklook.Read(r, band, 2, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// step is 3
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 1 {
		t.Errorf("bounds: got %v, want 2 x 1", b)
	}
	if len(r.reads) != 1 || r.reads[0] != 0 {
		t.Errorf("reads: got %v, want [0]", r.reads)
	}
	if min, max := img.Range(); min != 1 || max != 4 {
		t.Errorf("range: got %.3f-%.3f, want %.3f-%.3f", min, max, 1.0, 4.0)
	}

	if _, err := quicklook.Read(r, band, 0, nil); err == nil {
		t.Errorf("columns 0: expecting error")
	}
	band.Index = 2
	if _, err := quicklook.Read(r, band, 10, nil); err == nil {
		t.Errorf("band 2: expecting error")
	}
}

func TestKeys(t *testing.T) {
	r := newRaster()
	band := sampler.Band{Index: 1, Type: sampler.Byte, NoData: 255, HasNoData: true}
	img, err := quicklook.Read(r, band, 10, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lg := legend.New()
	lg.Add(3, "forest")
	lg.SetColor(3, color.RGBA{31, 141, 73, 255})
	lg.Add(4, "savanna")
	img.Keys = lg

	tests := map[string]struct {
		x, y int
		want color.Color
	}{
		"forest":   {2, 0, color.RGBA{31, 141, 73, 255}},
		"no color": {3, 0, transparent},
		"no key":   {0, 1, transparent},
		"nodata":   {4, 2, transparent},
	}
	for name, test := range tests {
		if got := img.At(test.x, test.y); got != test.want {
			t.Errorf("%s: got %v, want %v", name, got, test.want)
		}
	}
}

func TestScheme(t *testing.T) {
	for _, name := range []string{"gray", "Incandescent", "iridescent", "rainbow", ""} {
		if _, err := quicklook.Scheme(name); err != nil {
			t.Errorf("scheme %q: unexpected error: %v", name, err)
		}
	}
	if _, err := quicklook.Scheme("viridis"); err == nil {
		t.Errorf("scheme %q: expecting error", "viridis")
	}

	g := quicklook.GrayScale{}
	if got := g.Gradient(2); got != (color.RGBA{200, 200, 200, 255}) {
		t.Errorf("gray: got %v, want %v", got, color.RGBA{200, 200, 200, 255})
	}
}
