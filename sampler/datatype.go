// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package sampler

import (
	"encoding/binary"
	"fmt"
	"math"
)

// DataType is the storage type of a raster band.
type DataType int

// Storage types.
const (
	Unknown DataType = iota
	Byte
	UInt16
	Int16
	UInt32
	Int32
	Float32
	Float64
)

var typeNames = map[DataType]string{
	Unknown: "Unknown",
	Byte:    "Byte",
	UInt16:  "UInt16",
	Int16:   "Int16",
	UInt32:  "UInt32",
	Int32:   "Int32",
	Float32: "Float32",
	Float64: "Float64",
}

func (dt DataType) String() string {
	if s, ok := typeNames[dt]; ok {
		return s
	}
	return fmt.Sprintf("DataType(%d)", int(dt))
}

// Supported returns true if values of the type
// can be decoded by a Sampler.
func (dt DataType) Supported() bool {
	return dt > Unknown && dt <= Float64
}

// Size returns the number of bytes of a single cell.
// It returns 0 for unsupported types.
func (dt DataType) Size() int {
	switch dt {
	case Byte:
		return 1
	case UInt16, Int16:
		return 2
	case UInt32, Int32, Float32:
		return 4
	case Float64:
		return 8
	}
	return 0
}

// IsFloat returns true for floating point types.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// Decode decodes a single cell
// stored in native byte order.
func (dt DataType) Decode(b []byte) (Value, error) {
	if sz := dt.Size(); sz == 0 || len(b) < sz {
		return NoValue, fmt.Errorf("decoding %s cell: got %d bytes, want %d", dt, len(b), dt.Size())
	}

	ne := binary.NativeEndian
	switch dt {
	case Byte:
		return intValue(int64(b[0])), nil
	case UInt16:
		return intValue(int64(ne.Uint16(b))), nil
	case Int16:
		return intValue(int64(int16(ne.Uint16(b)))), nil
	case UInt32:
		return intValue(int64(ne.Uint32(b))), nil
	case Int32:
		return intValue(int64(int32(ne.Uint32(b)))), nil
	case Float32:
		return floatValue(float64(math.Float32frombits(ne.Uint32(b)))), nil
	case Float64:
		return floatValue(math.Float64frombits(ne.Uint64(b))), nil
	}
	return NoValue, fmt.Errorf("decoding cell: unsupported type %s", dt)
}

// Encode encodes a value as a cell
// of the given type
// in native byte order.
// It is the inverse of Decode
// and it is used by in-memory rasters.
func (dt DataType) Encode(v float64) []byte {
	ne := binary.NativeEndian
	b := make([]byte, dt.Size())
	switch dt {
	case Byte:
		b[0] = uint8(v)
	case UInt16:
		ne.PutUint16(b, uint16(v))
	case Int16:
		ne.PutUint16(b, uint16(int16(v)))
	case UInt32:
		ne.PutUint32(b, uint32(v))
	case Int32:
		ne.PutUint32(b, uint32(int32(v)))
	case Float32:
		ne.PutUint32(b, math.Float32bits(float32(v)))
	case Float64:
		ne.PutUint64(b, math.Float64bits(v))
	}
	return b
}

// A Band describes a raster band.
type Band struct {
	// Index of the band, starting at 1.
	Index int

	// Storage type.
	Type DataType

	// NoData is the nodata sentinel,
	// only valid if HasNoData is true.
	NoData    float64
	HasNoData bool
}

// IsNoData returns true if v is the nodata sentinel
// of the band.
// A NaN sentinel matches NaN values.
// In Float32 bands the sentinel is compared
// at float32 precision.
func (b Band) IsNoData(v float64) bool {
	if !b.HasNoData {
		return false
	}
	if math.IsNaN(b.NoData) {
		return math.IsNaN(v)
	}
	if b.Type == Float32 {
		return v == float64(float32(b.NoData))
	}
	return v == b.NoData
}
