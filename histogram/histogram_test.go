// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package histogram_test

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/rainfall-trends/pixval/histogram"
	"github.com/rainfall-trends/pixval/legend"
)

// band is an in-memory band
// with 5 columns and 3 rows
// read in blocks of 2x2 pixels.
type band struct {
	vals  []float64
	reads int
}

func (b *band) Size() (cols, rows int) { return 5, 3 }
func (b *band) BlockSize() (w, h int)  { return 2, 2 }

func (b *band) ReadBlock(x0, y0, w, h int, buf []float64) error {
	b.reads++
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf[y*w+x] = b.vals[(y0+y)*5+x0+x]
		}
	}
	return nil
}

func newLegend() *legend.Legend {
	lg := legend.New()
	lg.Add(3, "Forest formation")
	lg.Add(15, "Pasture")
	lg.Add(39, "Soybean")
	lg.SetColor(3, color.RGBA{0, 100, 0, 255})
	return lg
}

func TestCount(t *testing.T) {
	b := &band{
		vals: []float64{
			3, 3, 15, 0, 39,
			3, 15, 15, 2.5, 39,
			0, 0, 3, 3, 255,
		},
	}
	c := histogram.NewCounter(newLegend())

	var rows int
	if err := histogram.Count(b, c, func(n int) { rows += n }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.reads != 6 {
		t.Errorf("reads: got %d, want %d", b.reads, 6)
	}
	if rows != 3 {
		t.Errorf("progress: got %d rows, want %d", rows, 3)
	}

	want := map[int]int64{3: 5, 15: 3, 39: 2, 0: 0}
	for k, w := range want {
		if got := c.Count(k); got != w {
			t.Errorf("count %d: got %d, want %d", k, got, w)
		}
	}
	if c.Total() != 10 {
		t.Errorf("total: got %d, want %d", c.Total(), 10)
	}

	var buf bytes.Buffer
	if err := histogram.Write(&buf, c); err != nil {
		t.Fatalf("unable to write data: %v", err)
	}
	w := "Forest formation: 5\nPasture: 3\nSoybean: 2\n"
	if got := buf.String(); got != w {
		t.Errorf("write: got\n%s\nwant\n%s", got, w)
	}
}

func TestSavePlot(t *testing.T) {
	c := histogram.NewCounter(newLegend())
	c.Add([]float64{3, 3, 15, 39, 39, 39})

	name := filepath.Join(t.TempDir(), "hist.png")
	if err := histogram.SavePlot(c, "classes", name); err != nil {
		t.Fatalf("unable to save plot: %v", err)
	}
	if _, err := os.Stat(name); err != nil {
		t.Errorf("plot file: %v", err)
	}
}
