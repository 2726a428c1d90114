// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package legend implements a simple legend
// for the classes of a categorical raster.
package legend

import (
	"encoding/csv"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
)

// Legend stores the label and color
// of each class value.
type Legend struct {
	label map[int]string
	color map[int]color.Color
}

// New returns an empty legend.
func New() *Legend {
	return &Legend{
		label: make(map[int]string),
		color: make(map[int]color.Color),
	}
}

// Add adds a class to the legend.
// If the class is already defined,
// the label is replaced.
func (lg *Legend) Add(key int, label string) {
	lg.label[key] = label
}

// Keys returns the class values of the legend
// in ascending order.
func (lg *Legend) Keys() []int {
	keys := make([]int, 0, len(lg.label))
	for k := range lg.label {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Has returns true if the value is a class of the legend.
func (lg *Legend) Has(key int) bool {
	_, ok := lg.label[key]
	return ok
}

// Label returns the label of a class.
// If the class is not defined,
// the value is used as label.
func (lg *Legend) Label(key int) string {
	l, ok := lg.label[key]
	if !ok {
		return strconv.Itoa(key)
	}
	return l
}

// Color returns the color associated with a class.
// If no color is defined for the class,
// it will return transparent black.
func (lg *Legend) Color(key int) (color.Color, bool) {
	c, ok := lg.color[key]
	if !ok {
		return color.RGBA{0, 0, 0, 0}, false
	}
	return c, true
}

// SetColor sets the color of a class.
func (lg *Legend) SetColor(key int, c color.Color) {
	lg.color[key] = c
}

// Read reads a legend file.
//
// A legend file is a tab-delimited file
// with the following required columns:
//
//	-key	the value of the class in the raster
//	-label	the name of the class
//
// Optionally it can contain the following columns:
//
//	-color	an RGB value separated by commas,
//		for example "125,132,148".
//
// Any other columns, will be ignored.
// Here is an example of a legend file:
//
//	key	label	color
//	3	Forest formation	0,100,0
//	4	Savanna formation	0,255,0
//	15	Pasture	255,215,143
//	39	Soybean	229,153,255
func Read(name string) (*Legend, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lg, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return lg, nil
}

func read(r io.Reader) (*Legend, error) {
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
	for _, h := range []string{"key", "label"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	lg := New()
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "key"
		k, err := strconv.Atoi(strings.TrimSpace(row[fields[f]]))
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		f = "label"
		lb := strings.TrimSpace(row[fields[f]])
		if lb == "" {
			return nil, fmt.Errorf("on row %d: field %q: empty label", ln, f)
		}
		lg.Add(k, lb)

		f = "color"
		if _, ok := fields[f]; !ok {
			continue
		}
		if strings.TrimSpace(row[fields[f]]) == "" {
			continue
		}
		c, err := parseRGB(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q %v", ln, f, err)
		}
		lg.SetColor(k, c)
	}
	if len(lg.label) == 0 {
		return nil, errors.New("no classes defined")
	}
	return lg, nil
}

func parseRGB(s string) (color.RGBA, error) {
	val := strings.Split(s, ",")
	if len(val) != 3 {
		return color.RGBA{}, fmt.Errorf(": found %d values, want 3", len(val))
	}

	var rgb [3]uint8
	for i, n := range []string{"red", "green", "blue"} {
		v, err := strconv.Atoi(strings.TrimSpace(val[i]))
		if err != nil {
			return color.RGBA{}, fmt.Errorf("[%s value]: %v", n, err)
		}
		if v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("[%s value]: invalid value %d", n, v)
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{rgb[0], rgb[1], rgb[2], 255}, nil
}
