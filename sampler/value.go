// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package sampler

import "strconv"

type valueKind uint8

const (
	noValue valueKind = iota
	intKind
	floatKind
)

// A Value is the result of sampling a raster cell.
// It is either an integer,
// a floating point value,
// or no value,
// when the coordinate is outside the raster
// or the cell stores the nodata sentinel.
type Value struct {
	kind valueKind
	i    int64
	f    float64
}

// NoValue is the result of a sample without a value.
var NoValue = Value{}

func intValue(v int64) Value {
	return Value{kind: intKind, i: v}
}

func floatValue(v float64) Value {
	return Value{kind: floatKind, f: v}
}

// OK returns true if the value is defined.
func (v Value) OK() bool {
	return v.kind != noValue
}

// IsFloat returns true if the value
// was decoded from a floating point band.
func (v Value) IsFloat() bool {
	return v.kind == floatKind
}

// Int returns the value as an integer.
// Floating point values are truncated.
func (v Value) Int() int64 {
	if v.kind == floatKind {
		return int64(v.f)
	}
	return v.i
}

// Float returns the value as a float.
func (v Value) Float() float64 {
	if v.kind == intKind {
		return float64(v.i)
	}
	return v.f
}

// String returns the value as a string,
// or an empty string if there is no value.
func (v Value) String() string {
	switch v.kind {
	case intKind:
		return strconv.FormatInt(v.i, 10)
	case floatKind:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	}
	return ""
}
