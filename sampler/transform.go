// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package sampler

import "fmt"

// A Transform is an affine georeferencing transform
// with the coefficients
//
//	(originX, pixelWidth, rowRotation, originY, colRotation, pixelHeight)
//
// that map a pixel (col, row) into a geographic (x, y):
//
//	x = originX + col*pixelWidth + row*rowRotation
//	y = originY + col*colRotation + row*pixelHeight
//
// The coefficients are stored in the same order used by GDAL.
type Transform [6]float64

// Apply returns the geographic coordinates
// of the indicated pixel coordinates.
func (t Transform) Apply(col, row float64) (x, y float64) {
	x = t[0] + col*t[1] + row*t[2]
	y = t[3] + col*t[4] + row*t[5]
	return x, y
}

// Invert returns the transform
// that maps geographic coordinates into pixel coordinates.
func (t Transform) Invert() (Transform, error) {
	if t[1] == 0 {
		return Transform{}, &Error{Kind: ErrConfig, Op: "invert transform", Err: fmt.Errorf("pixel width is zero")}
	}
	if t[5] == 0 {
		return Transform{}, &Error{Kind: ErrConfig, Op: "invert transform", Err: fmt.Errorf("pixel height is zero")}
	}

	// north-up images
	if t[2] == 0 && t[4] == 0 {
		return Transform{
			-t[0] / t[1],
			1 / t[1],
			0,
			-t[3] / t[5],
			0,
			1 / t[5],
		}, nil
	}

	det := t[1]*t[5] - t[2]*t[4]
	if det == 0 {
		return Transform{}, &Error{Kind: ErrConfig, Op: "invert transform", Err: fmt.Errorf("transform %v is not invertible", [6]float64(t))}
	}
	inv := 1 / det
	return Transform{
		(t[2]*t[3] - t[0]*t[5]) * inv,
		t[5] * inv,
		-t[2] * inv,
		(-t[1]*t[3] + t[0]*t[4]) * inv,
		-t[4] * inv,
		t[1] * inv,
	}, nil
}

// An Extent is the geographic bounding box
// covered by a raster.
type Extent struct {
	MinX, MaxY float64
	MaxX, MinY float64
}

// NewExtent returns the extent of a raster
// of the given size
// with the indicated transform.
//
// Rotation terms are ignored,
// and the bounds are sorted
// so MinX <= MaxX and MinY <= MaxY
// even for south-up or east-left images.
func NewExtent(t Transform, cols, rows int) Extent {
	e := Extent{
		MinX: t[0],
		MaxY: t[3],
		MaxX: t[0] + float64(cols)*t[1],
		MinY: t[3] + float64(rows)*t[5],
	}
	if e.MinX > e.MaxX {
		e.MinX, e.MaxX = e.MaxX, e.MinX
	}
	if e.MinY > e.MaxY {
		e.MinY, e.MaxY = e.MaxY, e.MinY
	}
	return e
}

// Contains returns true if a point is inside the extent.
// The extent is closed on all four sides.
func (e Extent) Contains(x, y float64) bool {
	return e.MinX <= x && x <= e.MaxX && e.MinY <= y && y <= e.MaxY
}

// Bounds returns the extent
// in the order [MinX, MinY, MaxX, MaxY].
func (e Extent) Bounds() [4]float64 {
	return [4]float64{e.MinX, e.MinY, e.MaxX, e.MaxY}
}
