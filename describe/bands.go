// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package describe

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rainfall-trends/pixval/sampler"
)

// ValidPixels returns the pixels of a raster line
// in which every band has a valid value.
//
// Lines is the same raster line read from each band,
// so lines[i][x] is the value of the pixel x in the band i.
// Each returned pixel has a value for each band.
func ValidPixels(lines [][]float64, bands []sampler.Band) [][]float64 {
	if len(lines) == 0 {
		return nil
	}

	var px [][]float64
	for x := range lines[0] {
		valid := true
		for i, b := range bands {
			if b.IsNoData(lines[i][x]) {
				valid = false
				break
			}
		}
		if !valid {
			continue
		}

		p := make([]float64, len(lines))
		for i := range lines {
			p[i] = lines[i][x]
		}
		px = append(px, p)
	}
	return px
}

// A BandWriter writes the values of the pixels
// as a CSV file with a column for each band.
type BandWriter struct {
	w *csv.Writer
}

// NewBandWriter returns a writer
// for a raster with n bands,
// and writes the header
// (i.e., "band1", "band2", ...).
func NewBandWriter(w io.Writer, n int) (*BandWriter, error) {
	bw := &BandWriter{w: csv.NewWriter(w)}
	head := make([]string, n)
	for i := range head {
		head[i] = fmt.Sprintf("band%d", i+1)
	}
	if err := bw.w.Write(head); err != nil {
		return nil, fmt.Errorf("while writing header: %v", err)
	}
	return bw, nil
}

// Write writes a set of pixels.
func (bw *BandWriter) Write(px [][]float64) error {
	for _, p := range px {
		row := make([]string, len(p))
		for i, v := range p {
			row[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if err := bw.w.Write(row); err != nil {
			return fmt.Errorf("while writing data: %v", err)
		}
	}
	return nil
}

// Flush writes any buffered data.
func (bw *BandWriter) Flush() error {
	bw.w.Flush()
	if err := bw.w.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
