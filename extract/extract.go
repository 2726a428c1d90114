// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package extract implements the extraction
// of pixel values
// from a catalog of images
// at a set of points.
package extract

import (
	"bufio"
	"cmp"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"runtime"
	"slices"
	"sync"

	"github.com/rainfall-trends/pixval/catalog"
	"github.com/rainfall-trends/pixval/points"
	"github.com/rainfall-trends/pixval/sampler"
	"golang.org/x/sync/errgroup"
)

// An Image is an open raster
// that can reproject points
// into its own reference system.
type Image interface {
	sampler.Raster

	// Project returns the points
	// in the reference system of the image.
	Project(pts []points.Point) ([]points.Point, error)

	Close() error
}

// An Opener opens the images of a catalog.
type Opener interface {
	Open(path string) (Image, error)
}

// Options are the options of an extraction.
type Options struct {
	// Band to be sampled.
	// If zero,
	// the first band is used.
	Band int

	// Number of images read in parallel.
	// If zero,
	// the number of CPUs is used.
	Workers int

	// Progress is called each time an image is done.
	// It can be called from different goroutines,
	// but never at the same time.
	Progress func(path string)
}

// A Result is the value of an image
// at a point.
type Result struct {
	ID    string
	Image string
	Value sampler.Value
}

// Run samples every point
// in each image of the catalog that contains it.
//
// Each image is read by a single goroutine
// with its own handle.
// The results are sorted by point ID
// and image path.
//
// Points without a value
// (i.e., in a nodata cell)
// are included with an empty value.
// Any error aborts the extraction.
func Run(ctx context.Context, op Opener, cat *catalog.Catalog, pts []points.Point, opts Options) ([]Result, error) {
	band := opts.Band
	if band == 0 {
		band = 1
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	assign := cat.Assign(pts)
	paths := make([]string, 0, len(assign))
	for p := range assign {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	var mu sync.Mutex
	var results []Result

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rs, err := sampleImage(op, path, band, assign[path])
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			results = append(results, rs...)
			if opts.Progress != nil {
				opts.Progress(path)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b Result) int {
		if c := cmp.Compare(a.ID, b.ID); c != 0 {
			return c
		}
		return cmp.Compare(a.Image, b.Image)
	})
	return results, nil
}

func sampleImage(op Opener, path string, band int, pts []points.Point) (rs []Result, err error) {
	img, err := op.Open(path)
	if err != nil {
		return nil, fmt.Errorf("on image %q: %w", path, err)
	}
	defer func() {
		e := img.Close()
		if e != nil && err == nil {
			err = fmt.Errorf("on image %q: %w", path, e)
		}
	}()

	s, err := sampler.New(img, band)
	if err != nil {
		return nil, fmt.Errorf("on image %q: %w", path, err)
	}
	proj, err := img.Project(pts)
	if err != nil {
		return nil, fmt.Errorf("on image %q: %w", path, err)
	}

	rs = make([]Result, 0, len(pts))
	for i, p := range proj {
		v, err := s.Sample(p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("on image %q: point %q: %w", path, pts[i].ID, err)
		}
		rs = append(rs, Result{
			ID:    pts[i].ID,
			Image: path,
			Value: v,
		})
	}
	return rs, nil
}

// Missing returns the number of results without a value.
func Missing(results []Result) int {
	var n int
	for _, r := range results {
		if !r.Value.OK() {
			n++
		}
	}
	return n
}

// WriteCSV writes the results
// as a semicolon delimited file.
// The header of the point ID column
// is idField.
func WriteCSV(w io.Writer, idField string, results []Result) error {
	if idField == "" {
		idField = "id"
	}
	bw := bufio.NewWriter(w)
	out := csv.NewWriter(bw)
	out.Comma = ';'

	if err := out.Write([]string{idField, "image", "pixel_value"}); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}
	for _, r := range results {
		row := []string{r.ID, r.Image, r.Value.String()}
		if err := out.Write(row); err != nil {
			return fmt.Errorf("while writing data: %v", err)
		}
	}
	out.Flush()
	if err := out.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
