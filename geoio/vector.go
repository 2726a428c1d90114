// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package geoio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/airbusgeo/godal"
	"github.com/rainfall-trends/pixval/points"
)

// WGS84 is the EPSG code of the reference system
// of the points read from TSV files.
const WGS84 = 4326

// WGS84Ref returns the WGS84 geographic reference system.
// The returned reference must be closed by the caller.
func WGS84Ref() (*godal.SpatialRef, error) {
	Init()
	return godal.NewSpatialRefFromEPSG(WGS84)
}

// LoadPoints reads the points of a file.
//
// Files with extension ".tab", ".tsv", or ".txt"
// are read as TSV files (see points.ReadTSV)
// with coordinates in WGS84.
// Any other file is read as a point vector layer
// (see ReadPoints).
//
// The returned reference system
// must be closed by the caller.
func LoadPoints(name, idField string) ([]points.Point, *godal.SpatialRef, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tab", ".tsv", ".txt":
	default:
		return ReadPoints(name, idField)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	pts, err := points.ReadTSV(f)
	if err != nil {
		return nil, nil, fmt.Errorf("on file %q: %v", name, err)
	}
	sr, err := WGS84Ref()
	if err != nil {
		return nil, nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return pts, sr, nil
}

// ReadPoints reads the points of the first layer
// of a vector file,
// for example, a shapefile or a GeoPackage.
//
// The layer must have a reference system,
// every feature must be a POINT,
// and must have the indicated ID field.
//
// The returned reference system
// must be closed by the caller.
func ReadPoints(name, idField string) ([]points.Point, *godal.SpatialRef, error) {
	ds, err := godal.Open(name, openOptions(false, godal.VectorOnly())...)
	if err != nil {
		return nil, nil, fmt.Errorf("on file %q: %v", name, err)
	}
	defer ds.Close()

	layers := ds.Layers()
	if len(layers) == 0 {
		return nil, nil, fmt.Errorf("on file %q: no layers", name)
	}
	layer := layers[0]
	lsr := layer.SpatialRef()
	if lsr == nil {
		return nil, nil, fmt.Errorf("on file %q: undefined spatial reference", name)
	}
	wkt, err := lsr.WKT()
	if err != nil || wkt == "" {
		return nil, nil, fmt.Errorf("on file %q: undefined spatial reference", name)
	}

	var pts []points.Point
	for i := 1; ; i++ {
		feat := layer.NextFeature()
		if feat == nil {
			break
		}
		p, err := readPoint(feat, idField)
		feat.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("on file %q: feature %d: %v", name, i, err)
		}
		pts = append(pts, p)
	}
	if len(pts) == 0 {
		return nil, nil, fmt.Errorf("on file %q: no points", name)
	}

	sr, err := godal.NewSpatialRefFromWKT(wkt)
	if err != nil {
		return nil, nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return pts, sr, nil
}

func readPoint(feat *godal.Feature, idField string) (points.Point, error) {
	fld, ok := feat.Fields()[idField]
	if !ok {
		return points.Point{}, fmt.Errorf("field %q not found", idField)
	}
	id := strings.TrimSpace(fld.String())
	if id == "" {
		return points.Point{}, fmt.Errorf("field %q: empty value", idField)
	}

	b, err := feat.Geometry().WKB()
	if err != nil {
		return points.Point{}, err
	}
	return points.FromWKB(id, b)
}

// A Reprojector transforms points
// between two reference systems.
//
// A nil Reprojector is valid
// and it returns the points unchanged.
type Reprojector struct {
	trn *godal.Transform
}

// NewReprojector returns a reprojector
// from src into dst.
// If both references are the same,
// it returns a nil Reprojector.
func NewReprojector(src, dst *godal.SpatialRef) (*Reprojector, error) {
	if src == nil || dst == nil || src.IsSame(dst) {
		return nil, nil
	}
	trn, err := godal.NewTransform(src, dst)
	if err != nil {
		return nil, err
	}
	return &Reprojector{trn: trn}, nil
}

// Project returns a copy of the points
// in the destination reference system.
//
// Points that cannot be transformed
// have NaN coordinates,
// so they are outside of any raster.
func (rp *Reprojector) Project(pts []points.Point) ([]points.Point, error) {
	np := make([]points.Point, len(pts))
	copy(np, pts)
	if rp == nil || len(pts) == 0 {
		return np, nil
	}

	x := make([]float64, len(pts))
	y := make([]float64, len(pts))
	for i, p := range pts {
		x[i] = p.X
		y[i] = p.Y
	}
	ok := make([]bool, len(pts))

	// the error only reports that some point failed
	rp.trn.TransformEx(x, y, nil, ok)

	var n int
	for i := range np {
		if !ok[i] {
			np[i].X = math.NaN()
			np[i].Y = math.NaN()
			continue
		}
		np[i].X = x[i]
		np[i].Y = y[i]
		n++
	}
	if n == 0 {
		return nil, errors.New("unable to reproject points")
	}
	return np, nil
}

// Close releases the reprojector.
func (rp *Reprojector) Close() {
	if rp == nil {
		return
	}
	rp.trn.Close()
}
