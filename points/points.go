// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package points implements identified point locations
// used to sample rasters.
package points

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// A Point is an identified location.
type Point struct {
	ID string
	X  float64
	Y  float64
}

// aliases for the coordinate fields
var xFields = []string{"x", "lon", "longitude"}
var yFields = []string{"y", "lat", "latitude"}

// ReadTSV reads points from a TSV file.
//
// The TSV must contain the following fields:
//
//   - id, an identifier of the point
//   - x, the x coordinate (or longitude)
//   - y, the y coordinate (or latitude)
//
// The fields "lon" and "longitude"
// can be used instead of "x",
// and "lat" and "latitude"
// instead of "y".
// Any other fields will be ignored.
//
// Here is an example file:
//
//	# rain gauge stations
//	id	lon	lat
//	A001	-47.925833	-15.789444
//	A002	-49.220222	-16.642841
func ReadTSV(r io.Reader) ([]Point, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	if _, ok := fields["id"]; !ok {
		return nil, fmt.Errorf("expecting field %q", "id")
	}
	xf, ok := fieldAlias(fields, xFields)
	if !ok {
		return nil, fmt.Errorf("expecting field %q", "x")
	}
	yf, ok := fieldAlias(fields, yFields)
	if !ok {
		return nil, fmt.Errorf("expecting field %q", "y")
	}

	var pts []Point
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "id"
		id := strings.TrimSpace(row[fields[f]])
		if id == "" {
			return nil, fmt.Errorf("on row %d: field %q: empty identifier", ln, f)
		}

		x, err := strconv.ParseFloat(strings.TrimSpace(row[fields[xf]]), 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, xf, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(row[fields[yf]]), 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, yf, err)
		}
		pts = append(pts, Point{ID: id, X: x, Y: y})
	}
	if len(pts) == 0 {
		return nil, errors.New("without points")
	}
	return pts, nil
}

func fieldAlias(fields map[string]int, alias []string) (string, bool) {
	for _, a := range alias {
		if _, ok := fields[a]; ok {
			return a, true
		}
	}
	return "", false
}

// WriteTSV writes points into a tab-delimited file.
func WriteTSV(w io.Writer, pts []Point) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# points\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))

	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write([]string{"id", "x", "y"}); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}
	for _, p := range pts {
		row := []string{
			p.ID,
			strconv.FormatFloat(p.X, 'f', -1, 64),
			strconv.FormatFloat(p.Y, 'f', -1, 64),
		}
		if err := tsv.Write(row); err != nil {
			return err
		}
	}
	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
