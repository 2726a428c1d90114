// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package sampler implements reading of single cell values
// from a georeferenced raster band
// using geographic coordinates.
//
// A Sampler works in the native coordinate system of the raster.
// Points in a different reference system
// must be reprojected by the caller.
package sampler

import "fmt"

// A Raster is a georeferenced raster dataset
// from which cells can be read.
type Raster interface {
	// GeoTransform returns the affine transform of the raster.
	GeoTransform() ([6]float64, error)

	// Size returns the number of columns and rows.
	Size() (cols, rows int)

	// BandCount returns the number of bands.
	BandCount() int

	// BandType returns the storage type of a band.
	// Bands are indexed from 1.
	BandType(band int) DataType

	// BandNoData returns the nodata sentinel of a band.
	// If ok is false the band does not define a sentinel.
	BandNoData(band int) (nodata float64, ok bool)

	// ReadCell returns the raw bytes of a cell,
	// in native byte order,
	// sized to the storage type of the band.
	ReadCell(band, col, row int) ([]byte, error)
}

// A Sampler reads cell values of a raster band
// at geographic coordinates.
//
// A Sampler is not modified after it is built,
// so it can be used concurrently
// if the underlying raster supports concurrent reads.
type Sampler struct {
	r          Raster
	band       Band
	cols, rows int
	tr         Transform
	inv        Transform
	ext        Extent
}

// New returns a sampler for a band of a raster.
// Bands are indexed from 1.
//
// It returns an error of kind ErrConfig
// if the band does not exist,
// its storage type is not supported,
// or the transform of the raster cannot be inverted.
// No cell is read when building the sampler.
func New(r Raster, band int) (*Sampler, error) {
	if n := r.BandCount(); band < 1 || band > n {
		return nil, &Error{Kind: ErrConfig, Op: "new sampler", Err: fmt.Errorf("band %d out of range [1, %d]", band, n)}
	}
	dt := r.BandType(band)
	if !dt.Supported() {
		return nil, &Error{Kind: ErrConfig, Op: "new sampler", Err: fmt.Errorf("band %d: unsupported storage type %s", band, dt)}
	}

	gt, err := r.GeoTransform()
	if err != nil {
		return nil, &Error{Kind: ErrConfig, Op: "new sampler", Err: fmt.Errorf("geotransform: %v", err)}
	}
	tr := Transform(gt)
	inv, err := tr.Invert()
	if err != nil {
		return nil, err
	}

	cols, rows := r.Size()
	nd, ok := r.BandNoData(band)
	b := Band{
		Index:     band,
		Type:      dt,
		NoData:    nd,
		HasNoData: ok,
	}
	s := &Sampler{
		r:    r,
		band: b,
		cols: cols,
		rows: rows,
		tr:   tr,
		inv:  inv,
		ext:  NewExtent(tr, cols, rows),
	}
	return s, nil
}

// Band returns the description of the sampled band.
func (s *Sampler) Band() Band {
	return s.band
}

// Extent returns the extent of the raster.
func (s *Sampler) Extent() Extent {
	return s.ext
}

// Transform returns the affine transform of the raster.
func (s *Sampler) Transform() Transform {
	return s.tr
}

// Inside returns true if the point
// is inside the raster extent.
// Points on the border are inside.
func (s *Sampler) Inside(x, y float64) bool {
	return s.ext.Contains(x, y)
}

// Pixel returns the column and row of the cell
// that contains a point.
//
// Pixel coordinates are truncated toward zero,
// so a point on a cell boundary
// resolves to the cell with the lower index.
// The result is not checked against the raster size.
func (s *Sampler) Pixel(x, y float64) (col, row int) {
	px, py := s.inv.Apply(x, y)
	return int(px), int(py)
}

// Sample returns the value of the cell
// that contains a point.
//
// If the point is outside the raster extent,
// or the cell stores the nodata sentinel,
// it returns NoValue.
// Points outside the extent never read the raster.
//
// Points on the right and bottom borders of the extent
// are assigned to the last column and row.
// In rotated rasters,
// a point inside the extent
// that is not over a cell of the raster
// also returns NoValue.
//
// A failure when reading the raster
// is returned as an error of kind ErrIO.
func (s *Sampler) Sample(x, y float64) (Value, error) {
	if !s.Inside(x, y) {
		return NoValue, nil
	}

	px, py := s.inv.Apply(x, y)
	col, ok := cellIndex(px, s.cols)
	if !ok {
		return NoValue, nil
	}
	row, ok := cellIndex(py, s.rows)
	if !ok {
		return NoValue, nil
	}

	b, err := s.r.ReadCell(s.band.Index, col, row)
	if err != nil {
		return NoValue, &Error{Kind: ErrIO, Op: fmt.Sprintf("read cell %d,%d", col, row), Err: err}
	}
	v, err := s.band.Type.Decode(b)
	if err != nil {
		return NoValue, &Error{Kind: ErrIO, Op: fmt.Sprintf("read cell %d,%d", col, row), Err: err}
	}

	if s.band.IsNoData(v.Float()) {
		return NoValue, nil
	}
	return v, nil
}

// edgeTol is the tolerance, in pixels,
// for a point on the border of the raster.
const edgeTol = 1e-9

// cellIndex returns the cell index
// of a pixel coordinate.
// The pixel coordinate is truncated,
// and a coordinate on the last border
// is assigned to the last cell.
// It returns false if the coordinate
// is outside [0, size].
func cellIndex(p float64, size int) (int, bool) {
	if !(p >= -edgeTol && p <= float64(size)+edgeTol) {
		return 0, false
	}
	i := int(p)
	if i >= size {
		// closed right or bottom border
		i = size - 1
	}
	if i < 0 {
		i = 0
	}
	return i, true
}
