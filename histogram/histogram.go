// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package histogram implements the pixel count
// of the classes of a categorical raster.
package histogram

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/js-arias/blind"
	"github.com/rainfall-trends/pixval/legend"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// A Counter counts the pixels
// of each class of a legend.
type Counter struct {
	lg     *legend.Legend
	counts map[int]int64
	total  int64
}

// NewCounter returns a counter
// for the classes of a legend.
func NewCounter(lg *legend.Legend) *Counter {
	c := &Counter{
		lg:     lg,
		counts: make(map[int]int64),
	}
	for _, k := range lg.Keys() {
		c.counts[k] = 0
	}
	return c
}

// Legend returns the legend of the counter.
func (c *Counter) Legend() *legend.Legend {
	return c.lg
}

// Add adds pixel values to the counter.
// Values that are not integers,
// or that are not defined in the legend,
// are ignored.
func (c *Counter) Add(vals []float64) {
	for _, v := range vals {
		if v != math.Trunc(v) {
			continue
		}
		k := int(v)
		if _, ok := c.counts[k]; !ok {
			continue
		}
		c.counts[k]++
		c.total++
	}
}

// Count returns the number of pixels of a class.
func (c *Counter) Count(key int) int64 {
	return c.counts[key]
}

// Total returns the number of pixels
// assigned to any class.
func (c *Counter) Total() int64 {
	return c.total
}

// A BlockReader is a raster band
// read by blocks.
type BlockReader interface {
	// Size returns the number of columns and rows.
	Size() (cols, rows int)

	// BlockSize returns the natural block size
	// of the band.
	BlockSize() (w, h int)

	// ReadBlock reads a window of the band
	// into buf.
	ReadBlock(x0, y0, w, h int, buf []float64) error
}

// Count counts the pixels of a band
// reading it block by block.
// If progress is not nil,
// it will be called after each row of blocks.
func Count(br BlockReader, c *Counter, progress func(rows int)) error {
	cols, rows := br.Size()
	bw, bh := br.BlockSize()
	if bw <= 0 || bw > cols {
		bw = cols
	}
	if bh <= 0 || bh > rows {
		bh = rows
	}

	buf := make([]float64, bw*bh)
	for y := 0; y < rows; y += bh {
		h := min(bh, rows-y)
		for x := 0; x < cols; x += bw {
			w := min(bw, cols-x)
			b := buf[:w*h]
			if err := br.ReadBlock(x, y, w, h, b); err != nil {
				return fmt.Errorf("block %d,%d: %v", x, y, err)
			}
			c.Add(b)
		}
		if progress != nil {
			progress(h)
		}
	}
	return nil
}

// Write writes the count of each class
// as "label: count" lines,
// in ascending order of the class value.
func Write(w io.Writer, c *Counter) error {
	bw := bufio.NewWriter(w)
	for _, k := range c.lg.Keys() {
		fmt.Fprintf(bw, "%s: %d\n", c.lg.Label(k), c.counts[k])
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}

// Plot returns a bar plot of the counts.
//
// Each bar uses the color of the class in the legend.
// Classes without color
// use a gradient based on their order.
func Plot(c *Counter, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "pixels"

	keys := c.lg.Keys()
	labels := make([]string, 0, len(keys))
	for i, k := range keys {
		labels = append(labels, c.lg.Label(k))

		bars, err := plotter.NewBarChart(plotter.Values{float64(c.counts[k])}, vg.Points(20))
		if err != nil {
			return nil, fmt.Errorf("class %d: %v", k, err)
		}
		bars.XMin = float64(i)
		bars.LineStyle.Width = vg.Length(0)

		col, ok := c.lg.Color(k)
		if !ok {
			col = blind.Sequential(blind.Iridescent, float64(i+1)/float64(len(keys)+1))
		}
		bars.Color = col
		p.Add(bars)
	}
	p.NominalX(labels...)
	return p, nil
}

// SavePlot saves a bar plot of the counts.
// The format is defined by the extension of the file name
// (e.g., ".png", ".svg", ".pdf").
func SavePlot(c *Counter, title, name string) error {
	p, err := Plot(c, title)
	if err != nil {
		return err
	}
	w := vg.Length(len(c.counts)+2) * vg.Centimeter
	if w < 6*vg.Inch {
		w = 6 * vg.Inch
	}
	if err := p.Save(w, 4*vg.Inch, name); err != nil {
		return fmt.Errorf("while saving plot %q: %v", name, err)
	}
	return nil
}
