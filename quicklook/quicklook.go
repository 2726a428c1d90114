// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package quicklook implements a reduced image
// of a raster band,
// drawn on the pixel grid of the raster.
package quicklook

import (
	"fmt"
	"image"
	"image/color"

	"github.com/rainfall-trends/pixval/legend"
	"github.com/rainfall-trends/pixval/sampler"
	"gonum.org/v1/gonum/floats"
)

// A RowReader is a raster
// that can be read by rows.
type RowReader interface {
	Size() (cols, rows int)
	ReadRow(band, row int, buf []float64) ([]float64, error)
}

type Image struct {
	// Color keys.
	// If defined,
	// values are read as classes,
	// and values without a key are transparent.
	Keys *legend.Legend

	// A Gradient color scheme
	// for continuous values.
	Gradient Gradienter

	cols, rows int
	vals       []float64
	valid      []bool
	min, max   float64
}

// Read reads a band of a raster
// into an image of at most maxCols columns.
// When the raster is wider than maxCols,
// a pixel is taken every step columns and rows.
// If progress is not nil,
// it will be called after each row is read.
func Read(r RowReader, band sampler.Band, maxCols int, progress func()) (*Image, error) {
	if maxCols < 1 {
		return nil, fmt.Errorf("invalid number of columns %d", maxCols)
	}
	cols, rows := r.Size()
	step := 1
	if cols > maxCols {
		step = (cols + maxCols - 1) / maxCols
	}

	i := &Image{
		cols: (cols + step - 1) / step,
		rows: (rows + step - 1) / step,
	}
	i.vals = make([]float64, i.cols*i.rows)
	i.valid = make([]bool, i.cols*i.rows)

	var line []float64
	var ok []float64
	for y := 0; y < i.rows; y++ {
		var err error
		line, err = r.ReadRow(band.Index, y*step, line)
		if err != nil {
			return nil, err
		}
		for x := 0; x < i.cols; x++ {
			v := line[x*step]
			if band.IsNoData(v) {
				continue
			}
			i.vals[y*i.cols+x] = v
			i.valid[y*i.cols+x] = true
			ok = append(ok, v)
		}
		if progress != nil {
			progress()
		}
	}

	if len(ok) > 0 {
		i.min = floats.Min(ok)
		i.max = floats.Max(ok)
	}
	return i, nil
}

// Range returns the minimum and maximum values
// of the valid pixels.
func (i *Image) Range() (min, max float64) {
	return i.min, i.max
}

func (i *Image) ColorModel() color.Model { return color.RGBAModel }
func (i *Image) Bounds() image.Rectangle { return image.Rect(0, 0, i.cols, i.rows) }
func (i *Image) At(x, y int) color.Color {
	p := y*i.cols + x
	if !i.valid[p] {
		return color.RGBA{0, 0, 0, 0}
	}
	v := i.vals[p]

	if i.Keys != nil {
		k := int(v)
		if float64(k) != v {
			return color.RGBA{0, 0, 0, 0}
		}
		if c, ok := i.Keys.Color(k); ok {
			return c
		}
		return color.RGBA{0, 0, 0, 0}
	}

	g := i.Gradient
	if g == nil {
		g = RainbowPurpleToRed{}
	}
	if i.max == i.min {
		return g.Gradient(0.5)
	}
	return g.Gradient((v - i.min) / (i.max - i.min))
}
