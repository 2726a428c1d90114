// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package grid implements reading of ASCII geoid height grids
// in the format used by the NGA for the EGM96 WW15MGH.GRD file.
package grid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rainfall-trends/pixval/sampler"
)

// A Grid is a regular latitude-longitude grid
// of height values.
//
// Values are defined at the grid nodes.
// As a raster,
// each node is the center of a cell.
type Grid struct {
	South, North float64
	West, East   float64
	DLat, DLon   float64

	cols, rows int
	vals       []float64
}

// Read reads a grid from an ASCII file.
//
// The first line is the header
// with the grid limits and spacing:
//
//	south north west east lat-spacing lon-spacing
//
// Then the height values are given
// from north to south,
// and from west to east,
// separated by spaces
// and in any number of lines.
// Lines with less than four characters are ignored.
//
// Here is the header of the WW15MGH.GRD file:
//
//	-90.000000   90.000000     .000000  360.000000     .250000     .250000
func Read(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("while reading header: %v", err)
		}
		return nil, errors.New("while reading header: empty file")
	}
	head, err := parseLine(sc.Text())
	if err != nil {
		return nil, fmt.Errorf("on header: %v", err)
	}
	if len(head) != 6 {
		return nil, fmt.Errorf("on header: got %d values, want 6", len(head))
	}

	g := &Grid{
		South: head[0],
		North: head[1],
		West:  head[2],
		East:  head[3],
		DLat:  head[4],
		DLon:  head[5],
	}
	if g.DLat <= 0 || g.DLon <= 0 {
		return nil, fmt.Errorf("on header: invalid spacing %g, %g", g.DLat, g.DLon)
	}
	if g.South >= g.North || g.West >= g.East {
		return nil, fmt.Errorf("on header: invalid limits [%g, %g] [%g, %g]", g.South, g.North, g.West, g.East)
	}
	g.cols = int(math.Round((g.East-g.West)/g.DLon)) + 1
	g.rows = int(math.Round((g.North-g.South)/g.DLat)) + 1

	g.vals = make([]float64, 0, g.cols*g.rows)
	ln := 1
	for sc.Scan() {
		ln++
		line := sc.Text()
		if len(line) < 4 {
			continue
		}
		v, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("on line %d: %v", ln, err)
		}
		g.vals = append(g.vals, v...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("on line %d: %v", ln, err)
	}

	if len(g.vals) != g.cols*g.rows {
		return nil, fmt.Errorf("got %d values, want %d (%d x %d)", len(g.vals), g.cols*g.rows, g.rows, g.cols)
	}
	return g, nil
}

func parseLine(line string) ([]float64, error) {
	var vals []float64
	for _, f := range strings.Fields(line) {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// At returns the value at a grid node.
func (g *Grid) At(col, row int) float64 {
	return g.vals[row*g.cols+col]
}

// GeoTransform implements the sampler.Raster interface.
func (g *Grid) GeoTransform() ([6]float64, error) {
	return [6]float64{
		g.West - g.DLon/2,
		g.DLon,
		0,
		g.North + g.DLat/2,
		0,
		-g.DLat,
	}, nil
}

// Size implements the sampler.Raster interface.
func (g *Grid) Size() (cols, rows int) {
	return g.cols, g.rows
}

// BandCount implements the sampler.Raster interface.
// A grid has a single band.
func (g *Grid) BandCount() int { return 1 }

// BandType implements the sampler.Raster interface.
func (g *Grid) BandType(band int) sampler.DataType { return sampler.Float64 }

// BandNoData implements the sampler.Raster interface.
// Grids do not have nodata values.
func (g *Grid) BandNoData(band int) (float64, bool) { return 0, false }

// ReadCell implements the sampler.Raster interface.
func (g *Grid) ReadCell(band, col, row int) ([]byte, error) {
	if band != 1 {
		return nil, fmt.Errorf("invalid band %d", band)
	}
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return nil, fmt.Errorf("cell %d,%d outside grid", col, row)
	}
	return sampler.Float64.Encode(g.At(col, row)), nil
}

// WriteCSV writes the grid nodes as a CSV file
// with the columns LONG, LAT, and HEIGHT.
//
// The last column of the grid is not written
// as it repeats the first one
// (i.e., 360 == 0),
// and longitudes above 180 are moved to the range [-180, 180).
func (g *Grid) WriteCSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "LONG,LAT,HEIGHT\n")
	for row := 0; row < g.rows; row++ {
		lat := g.North - float64(row)*g.DLat
		for col := 0; col < g.cols-1; col++ {
			lon := g.West + float64(col)*g.DLon
			if lon > 180 {
				lon = math.Mod(lon+180, 360) - 180
			}
			fmt.Fprintf(bw, "%s,%s,%s\n", formatFloat(lon), formatFloat(lat), formatFloat(g.At(col, row)))
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
