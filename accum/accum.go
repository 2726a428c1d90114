// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package accum implements monthly tables
// of a statistic of accumulated precipitation images.
package accum

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/rainfall-trends/pixval/sampler"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Suffix is the suffix of the name
// of a monthly accumulation image.
const Suffix = "_total.accum.tif"

// A Stat is a statistic of an image.
type Stat int

// Valid statistics.
const (
	Min Stat = iota + 1
	Max
	Mean
)

// ParseStat returns a statistic from its name,
// or from its index (1 for min, 2 for max, 3 for mean).
func ParseStat(s string) (Stat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "min", "1":
		return Min, nil
	case "max", "2":
		return Max, nil
	case "mean", "3":
		return Mean, nil
	}
	return 0, fmt.Errorf("unknown statistic %q", s)
}

func (s Stat) String() string {
	switch s {
	case Min:
		return "min"
	case Max:
		return "max"
	case Mean:
		return "mean"
	}
	return "unknown"
}

// ParseName returns the year and month
// of a monthly accumulation image
// with a name of the form
// "<prefix>_<year>_<month>_total.accum.tif".
func ParseName(prefix, name string) (year, month int, ok bool) {
	base := filepath.Base(name)
	if !strings.HasPrefix(base, prefix+"_") || !strings.HasSuffix(base, Suffix) {
		return 0, 0, false
	}
	mid := strings.TrimSuffix(strings.TrimPrefix(base, prefix+"_"), Suffix)
	f := strings.Split(mid, "_")
	if len(f) != 2 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(f[0])
	if err != nil {
		return 0, 0, false
	}
	month, err = strconv.Atoi(f[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}

// A BlockReader is a raster band
// read by blocks.
type BlockReader interface {
	Size() (cols, rows int)
	BlockSize() (w, h int)
	ReadBlock(x0, y0, w, h int, buf []float64) error
}

// Compute returns a statistic of a band
// reading it block by block.
// Nodata pixels are ignored.
// If all pixels are nodata,
// it returns false.
func Compute(br BlockReader, band sampler.Band, st Stat) (float64, bool, error) {
	if st < Min || st > Mean {
		return 0, false, fmt.Errorf("unknown statistic %d", st)
	}

	cols, rows := br.Size()
	bw, bh := br.BlockSize()
	if bw <= 0 || bw > cols {
		bw = cols
	}
	if bh <= 0 || bh > rows {
		bh = rows
	}

	var res float64
	var n int
	buf := make([]float64, bw*bh)
	valid := make([]float64, 0, bw*bh)
	for y := 0; y < rows; y += bh {
		h := min(bh, rows-y)
		for x := 0; x < cols; x += bw {
			w := min(bw, cols-x)
			b := buf[:w*h]
			if err := br.ReadBlock(x, y, w, h, b); err != nil {
				return 0, false, fmt.Errorf("block %d,%d: %v", x, y, err)
			}

			valid = valid[:0]
			for _, v := range b {
				if band.IsNoData(v) {
					continue
				}
				valid = append(valid, v)
			}
			if len(valid) == 0 {
				continue
			}

			switch st {
			case Min:
				v := floats.Min(valid)
				if n == 0 || v < res {
					res = v
				}
			case Max:
				v := floats.Max(valid)
				if n == 0 || v > res {
					res = v
				}
			case Mean:
				// weighted by the number of pixels
				m := stat.Mean(valid, nil)
				res += (m - res) * float64(len(valid)) / float64(n+len(valid))
			}
			n += len(valid)
		}
	}
	if n == 0 {
		return 0, false, nil
	}
	return res, true, nil
}

// A Table is a table of values
// by month and year.
type Table struct {
	vals map[int]map[int]float64
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{vals: make(map[int]map[int]float64)}
}

// Set sets the value of a month of a year.
func (t *Table) Set(year, month int, v float64) {
	m, ok := t.vals[month]
	if !ok {
		m = make(map[int]float64)
		t.vals[month] = m
	}
	m[year] = v
}

// Get returns the value of a month of a year.
func (t *Table) Get(year, month int) (float64, bool) {
	v, ok := t.vals[month][year]
	return v, ok
}

// Years returns the first and last year
// of the table.
func (t *Table) Years() (first, last int) {
	var ys []int
	for _, m := range t.vals {
		for y := range m {
			ys = append(ys, y)
		}
	}
	if len(ys) == 0 {
		return 0, 0
	}
	return slices.Min(ys), slices.Max(ys)
}

// WriteCSV writes the table
// as a comma delimited file,
// with a row for each month
// and a column for each year,
// from the first to the last year in the table.
// Missing values are left empty.
func (t *Table) WriteCSV(w io.Writer) error {
	out := csv.NewWriter(w)

	first, last := t.Years()
	header := []string{"months"}
	if len(t.vals) > 0 {
		for y := first; y <= last; y++ {
			header = append(header, strconv.Itoa(y))
		}
	}
	if err := out.Write(header); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}

	for m := 1; m <= 12; m++ {
		row := []string{strconv.Itoa(m)}
		for y := first; len(t.vals) > 0 && y <= last; y++ {
			v, ok := t.Get(y, m)
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
		}
		if err := out.Write(row); err != nil {
			return fmt.Errorf("while writing data: %v", err)
		}
	}

	out.Flush()
	if err := out.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
