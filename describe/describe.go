// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package describe implements descriptive statistics
// of the numeric columns of a CSV file.
package describe

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// A Column is a named set of values.
type Column struct {
	Name   string
	Values []float64
}

// ReadColumns reads the columns of a delimited file
// with a header.
//
// Empty cells,
// or cells with "nan" or "NA",
// are treated as missing values
// and they are not included in the column.
func ReadColumns(r io.Reader, comma rune) ([]Column, error) {
	in := csv.NewReader(r)
	in.Comma = comma
	in.Comment = '#'

	head, err := in.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	cols := make([]Column, len(head))
	for i, h := range head {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column%d", i+1)
		}
		cols[i].Name = h
	}

	for {
		row, err := in.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := in.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		for i, s := range row {
			s = strings.TrimSpace(s)
			if isMissing(s) {
				continue
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("on row %d: field %q: %v", ln, cols[i].Name, err)
			}
			cols[i].Values = append(cols[i].Values, v)
		}
	}
	return cols, nil
}

func isMissing(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "na":
		return true
	}
	return false
}

// A Summary contains the descriptive statistics
// of a column.
type Summary struct {
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// Describe returns the summary of a set of values.
//
// The standard deviation is the sample standard deviation,
// and quantiles are interpolated linearly
// between the closest ranks.
// If there are no values,
// all the statistics but the count are NaN.
func Describe(vals []float64) Summary {
	if len(vals) == 0 {
		nan := math.NaN()
		return Summary{Mean: nan, Std: nan, Min: nan, Q25: nan, Q50: nan, Q75: nan, Max: nan}
	}

	sorted := slices.Clone(vals)
	slices.Sort(sorted)

	s := Summary{
		Count: len(vals),
		Mean:  stat.Mean(sorted, nil),
		Std:   math.NaN(),
		Min:   floats.Min(sorted),
		Q25:   quantile(0.25, sorted),
		Q50:   quantile(0.50, sorted),
		Q75:   quantile(0.75, sorted),
		Max:   floats.Max(sorted),
	}
	if len(vals) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}

// quantile returns the quantile p of a sorted set of values
// interpolating between the closest ranks
// (i.e., the default method of R and NumPy).
func quantile(p float64, sorted []float64) float64 {
	h := p * float64(len(sorted)-1)
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// Write writes the summary of the columns
// as a table.
//
// If area is greater than zero,
// it is the area of a single pixel
// and the total area
// (i.e., the count of the first column times the area of the pixel)
// is written after the table.
func Write(w io.Writer, name string, cols []Column, area float64) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n\n", name)

	sums := make([]Summary, len(cols))
	fmt.Fprintf(bw, "%-6s", "")
	for i, c := range cols {
		sums[i] = Describe(c.Values)
		fmt.Fprintf(bw, " %16s", c.Name)
	}
	fmt.Fprintf(bw, "\n")

	rows := []struct {
		name string
		val  func(Summary) float64
	}{
		{"count", func(s Summary) float64 { return float64(s.Count) }},
		{"mean", func(s Summary) float64 { return s.Mean }},
		{"std", func(s Summary) float64 { return s.Std }},
		{"min", func(s Summary) float64 { return s.Min }},
		{"25%", func(s Summary) float64 { return s.Q25 }},
		{"50%", func(s Summary) float64 { return s.Q50 }},
		{"75%", func(s Summary) float64 { return s.Q75 }},
		{"max", func(s Summary) float64 { return s.Max }},
	}
	for _, r := range rows {
		fmt.Fprintf(bw, "%-6s", r.name)
		for _, s := range sums {
			fmt.Fprintf(bw, " %16.5f", r.val(s))
		}
		fmt.Fprintf(bw, "\n")
	}

	if area > 0 && len(sums) > 0 {
		fmt.Fprintf(bw, "\nArea = %s\n", strconv.FormatFloat(float64(sums[0].Count)*area, 'f', -1, 64))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
