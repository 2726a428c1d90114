// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package geoio implements reading of raster and vector datasets
// using the GDAL library.
package geoio

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/airbusgeo/godal"
	"github.com/rainfall-trends/pixval/sampler"
)

var (
	initOnce sync.Once
	cacheOpt []string
)

// Init registers the GDAL drivers.
// It is safe to call it several times.
//
// If the environment variable GDAL_CACHEMAX is defined,
// it will be used as the size of the block cache
// of every dataset opened by the package.
func Init() {
	initOnce.Do(func() {
		godal.RegisterAll()
		if v := os.Getenv("GDAL_CACHEMAX"); v != "" {
			cacheOpt = []string{"GDAL_CACHEMAX=" + v}
		}
	})
}

// quiet is a GDAL error handler
// that only reports failures.
func quiet(ec godal.ErrorCategory, code int, msg string) error {
	if ec < godal.CE_Failure {
		return nil
	}
	return errors.New(msg)
}

func openOptions(update bool, opts ...godal.OpenOption) []godal.OpenOption {
	Init()
	opts = append(opts, godal.ErrLogger(quiet))
	if len(cacheOpt) > 0 {
		opts = append(opts, godal.ConfigOption(cacheOpt...))
	}
	if update {
		opts = append(opts, godal.Update())
	}
	return opts
}

// A Raster is a raster dataset.
//
// A Raster is not safe for concurrent use.
type Raster struct {
	name  string
	ds    *godal.Dataset
	st    godal.DatasetStructure
	bands []godal.Band
}

// OpenRaster opens a raster file.
func OpenRaster(name string) (*Raster, error) {
	return openRaster(name, false)
}

// OpenUpdate opens a raster file
// in update mode.
func OpenUpdate(name string) (*Raster, error) {
	return openRaster(name, true)
}

func openRaster(name string, update bool) (*Raster, error) {
	ds, err := godal.Open(name, openOptions(update, godal.RasterOnly())...)
	if err != nil {
		return nil, fmt.Errorf("on image %q: %v", name, err)
	}
	st := ds.Structure()
	if st.NBands == 0 {
		ds.Close()
		return nil, fmt.Errorf("on image %q: no raster bands", name)
	}
	return &Raster{
		name:  name,
		ds:    ds,
		st:    st,
		bands: ds.Bands(),
	}, nil
}

// Name returns the file name of the raster.
func (r *Raster) Name() string {
	return r.name
}

// Close closes the raster.
func (r *Raster) Close() error {
	if err := r.ds.Close(); err != nil {
		return fmt.Errorf("on image %q: %v", r.name, err)
	}
	return nil
}

// GeoTransform implements the sampler.Raster interface.
func (r *Raster) GeoTransform() ([6]float64, error) {
	return r.ds.GeoTransform()
}

// Size implements the sampler.Raster interface.
func (r *Raster) Size() (cols, rows int) {
	return r.st.SizeX, r.st.SizeY
}

// BandCount implements the sampler.Raster interface.
func (r *Raster) BandCount() int {
	return r.st.NBands
}

// BandType implements the sampler.Raster interface.
// Types not supported by the sampler
// are returned as sampler.Unknown.
func (r *Raster) BandType(band int) sampler.DataType {
	b, ok := r.band(band)
	if !ok {
		return sampler.Unknown
	}
	return dataType(b.Structure().DataType)
}

// BandNoData implements the sampler.Raster interface.
func (r *Raster) BandNoData(band int) (float64, bool) {
	b, ok := r.band(band)
	if !ok {
		return 0, false
	}
	return b.NoData()
}

// Band returns a raster band.
// Bands are indexed from 1.
func (r *Raster) Band(band int) (godal.Band, error) {
	b, ok := r.band(band)
	if !ok {
		return godal.Band{}, fmt.Errorf("on image %q: band %d out of range [1, %d]", r.name, band, len(r.bands))
	}
	return b, nil
}

func (r *Raster) band(band int) (godal.Band, bool) {
	if band < 1 || band > len(r.bands) {
		return godal.Band{}, false
	}
	return r.bands[band-1], true
}

// ReadCell implements the sampler.Raster interface.
func (r *Raster) ReadCell(band, col, row int) ([]byte, error) {
	b, ok := r.band(band)
	if !ok {
		return nil, fmt.Errorf("band %d out of range [1, %d]", band, len(r.bands))
	}
	dt := dataType(b.Structure().DataType)

	var v float64
	switch dt {
	case sampler.Byte:
		buf := make([]byte, 1)
		if err := b.Read(col, row, buf, 1, 1); err != nil {
			return nil, err
		}
		v = float64(buf[0])
	case sampler.UInt16:
		buf := make([]uint16, 1)
		if err := b.Read(col, row, buf, 1, 1); err != nil {
			return nil, err
		}
		v = float64(buf[0])
	case sampler.Int16:
		buf := make([]int16, 1)
		if err := b.Read(col, row, buf, 1, 1); err != nil {
			return nil, err
		}
		v = float64(buf[0])
	case sampler.UInt32:
		buf := make([]uint32, 1)
		if err := b.Read(col, row, buf, 1, 1); err != nil {
			return nil, err
		}
		v = float64(buf[0])
	case sampler.Int32:
		buf := make([]int32, 1)
		if err := b.Read(col, row, buf, 1, 1); err != nil {
			return nil, err
		}
		v = float64(buf[0])
	case sampler.Float32:
		buf := make([]float32, 1)
		if err := b.Read(col, row, buf, 1, 1); err != nil {
			return nil, err
		}
		v = float64(buf[0])
	case sampler.Float64:
		buf := make([]float64, 1)
		if err := b.Read(col, row, buf, 1, 1); err != nil {
			return nil, err
		}
		v = buf[0]
	default:
		return nil, fmt.Errorf("band %d: unsupported storage type", band)
	}
	return dt.Encode(v), nil
}

// ReadRow reads a full row of a band
// as float64 values.
// If buf is nil or too small,
// a new buffer will be allocated.
func (r *Raster) ReadRow(band, row int, buf []float64) ([]float64, error) {
	b, err := r.Band(band)
	if err != nil {
		return nil, err
	}
	if len(buf) < r.st.SizeX {
		buf = make([]float64, r.st.SizeX)
	}
	buf = buf[:r.st.SizeX]
	if err := b.Read(0, row, buf, r.st.SizeX, 1); err != nil {
		return nil, fmt.Errorf("on image %q: row %d: %v", r.name, row, err)
	}
	return buf, nil
}

// SpatialRef returns the reference system of the raster.
// It returns an error if the raster is not georeferenced.
// The returned reference is owned by the caller
// and it must be closed.
func (r *Raster) SpatialRef() (*godal.SpatialRef, error) {
	wkt, err := r.WKT()
	if err != nil {
		return nil, err
	}
	sr, err := godal.NewSpatialRefFromWKT(wkt)
	if err != nil {
		return nil, fmt.Errorf("on image %q: %v", r.name, err)
	}
	return sr, nil
}

// WKT returns the reference system of the raster
// as a WKT string.
func (r *Raster) WKT() (string, error) {
	sr := r.ds.SpatialRef()
	if sr == nil {
		return "", fmt.Errorf("on image %q: undefined spatial reference", r.name)
	}
	wkt, err := sr.WKT()
	if err != nil || wkt == "" {
		return "", fmt.Errorf("on image %q: undefined spatial reference", r.name)
	}
	return wkt, nil
}

// Bounds returns the bounds of the raster
// in the order [MinX, MinY, MaxX, MaxY].
// If sr is not nil,
// the bounds will be in that reference system.
func (r *Raster) Bounds(sr *godal.SpatialRef) ([4]float64, error) {
	var bounds [4]float64
	var err error
	if sr == nil {
		bounds, err = r.ds.Bounds()
	} else {
		bounds, err = r.ds.Bounds(sr)
	}
	if err != nil {
		return bounds, fmt.Errorf("on image %q: %v", r.name, err)
	}
	if bounds[0] > bounds[2] {
		bounds[0], bounds[2] = bounds[2], bounds[0]
	}
	if bounds[1] > bounds[3] {
		bounds[1], bounds[3] = bounds[3], bounds[1]
	}
	return bounds, nil
}

// SetOrigin sets the coordinates of the top-left corner
// of the raster.
// The raster must be open in update mode.
func (r *Raster) SetOrigin(x, y float64) error {
	gt, err := r.ds.GeoTransform()
	if err != nil {
		return fmt.Errorf("on image %q: %v", r.name, err)
	}
	gt[0] = x
	gt[3] = y
	if err := r.ds.SetGeoTransform(gt); err != nil {
		return fmt.Errorf("on image %q: %v", r.name, err)
	}
	return nil
}

func dataType(dt godal.DataType) sampler.DataType {
	switch dt {
	case godal.Byte:
		return sampler.Byte
	case godal.UInt16:
		return sampler.UInt16
	case godal.Int16:
		return sampler.Int16
	case godal.UInt32:
		return sampler.UInt32
	case godal.Int32:
		return sampler.Int32
	case godal.Float32:
		return sampler.Float32
	case godal.Float64:
		return sampler.Float64
	}
	return sampler.Unknown
}

// BandBlocks reads a raster band
// by blocks.
type BandBlocks struct {
	b  godal.Band
	st godal.BandStructure
}

// Blocks returns a block reader of a band.
// Bands are indexed from 1.
func (r *Raster) Blocks(band int) (*BandBlocks, error) {
	b, err := r.Band(band)
	if err != nil {
		return nil, err
	}
	return &BandBlocks{b: b, st: b.Structure()}, nil
}

// Size returns the number of columns and rows of the band.
func (bb *BandBlocks) Size() (cols, rows int) {
	return bb.st.SizeX, bb.st.SizeY
}

// BlockSize returns the natural block size of the band.
func (bb *BandBlocks) BlockSize() (w, h int) {
	return bb.st.BlockSizeX, bb.st.BlockSizeY
}

// ReadBlock reads a window of the band.
func (bb *BandBlocks) ReadBlock(x0, y0, w, h int, buf []float64) error {
	return bb.b.Read(x0, y0, buf, w, h)
}
