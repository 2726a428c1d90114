// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package geoio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/airbusgeo/godal"
	"github.com/rainfall-trends/pixval/catalog"
	"github.com/rainfall-trends/pixval/extract"
	"github.com/rainfall-trends/pixval/points"
	"github.com/rs/zerolog"
)

// Catalog returns a catalog
// with the rasters of a directory.
// The bounds of each raster are stored
// in the reference system sr.
//
// Files that are not rasters,
// or that cannot be reprojected,
// are skipped with a warning.
// It is an error if no raster is found.
func Catalog(dir string, sr *godal.SpatialRef, log zerolog.Logger) (*catalog.Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	c := catalog.New()
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := filepath.Join(dir, e.Name())
		r, err := OpenRaster(name)
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("skipping file")
			continue
		}
		b, err := r.Bounds(sr)
		r.Close()
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("skipping image")
			continue
		}
		c.Add(name, b)
		log.Debug().Str("file", name).Floats64("bounds", b[:]).Msg("image added")
	}
	if c.Len() == 0 {
		return nil, fmt.Errorf("directory %q: no images", dir)
	}
	return c, nil
}

// An Opener opens the images of a catalog
// for the extraction of pixel values.
type Opener struct {
	wkt string
}

// NewOpener returns an opener for points
// in the reference system sr.
func NewOpener(sr *godal.SpatialRef) (*Opener, error) {
	wkt, err := sr.WKT()
	if err != nil {
		return nil, err
	}
	return &Opener{wkt: wkt}, nil
}

// Open implements the extract.Opener interface.
// Each image has its own reference system objects,
// so images can be used in different goroutines.
func (op *Opener) Open(path string) (extract.Image, error) {
	r, err := OpenRaster(path)
	if err != nil {
		return nil, err
	}
	img := &image{Raster: r}

	img.src, err = godal.NewSpatialRefFromWKT(op.wkt)
	if err != nil {
		img.Close()
		return nil, err
	}
	img.dst, err = r.SpatialRef()
	if err != nil {
		img.Close()
		return nil, err
	}
	img.rp, err = NewReprojector(img.src, img.dst)
	if err != nil {
		img.Close()
		return nil, fmt.Errorf("on image %q: %v", path, err)
	}
	return img, nil
}

type image struct {
	*Raster
	src *godal.SpatialRef
	dst *godal.SpatialRef
	rp  *Reprojector
}

func (img *image) Project(pts []points.Point) ([]points.Point, error) {
	np, err := img.rp.Project(pts)
	if err != nil {
		return nil, fmt.Errorf("on image %q: %v", img.name, err)
	}
	return np, nil
}

func (img *image) Close() error {
	img.rp.Close()
	if img.dst != nil {
		img.dst.Close()
	}
	if img.src != nil {
		img.src.Close()
	}
	return img.Raster.Close()
}
