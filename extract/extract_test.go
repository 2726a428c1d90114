// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package extract_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rainfall-trends/pixval/catalog"
	"github.com/rainfall-trends/pixval/extract"
	"github.com/rainfall-trends/pixval/points"
	"github.com/rainfall-trends/pixval/sampler"
)

// image is a 2x2 byte raster
type image struct {
	gt     [6]float64
	vals   [4]float64
	nodata float64
	hasND  bool
	op     *opener
}

func (img *image) GeoTransform() ([6]float64, error)                  { return img.gt, nil }
func (img *image) Size() (cols, rows int)                             { return 2, 2 }
func (img *image) BandCount() int                                     { return 1 }
func (img *image) BandType(band int) sampler.DataType                 { return sampler.Byte }
func (img *image) BandNoData(band int) (float64, bool)                { return img.nodata, img.hasND }
func (img *image) Project(pts []points.Point) ([]points.Point, error) { return pts, nil }

func (img *image) ReadCell(band, col, row int) ([]byte, error) {
	return sampler.Byte.Encode(img.vals[row*2+col]), nil
}

func (img *image) Close() error {
	img.op.mu.Lock()
	defer img.op.mu.Unlock()
	img.op.closed++
	return nil
}

type opener struct {
	images map[string]image

	mu     sync.Mutex
	opened int
	closed int
}

func (op *opener) Open(path string) (extract.Image, error) {
	img, ok := op.images[path]
	if !ok {
		return nil, fmt.Errorf("image %q not found", path)
	}
	op.mu.Lock()
	op.opened++
	op.mu.Unlock()

	img.op = op
	return &img, nil
}

func newOpener() *opener {
	return &opener{
		images: map[string]image{
			"a.tif": {
				gt:   [6]float64{0, 1, 0, 0, 0, -1},
				vals: [4]float64{10, 20, 30, 40},
			},
			"b.tif": {
				gt:     [6]float64{1, 1, 0, -1, 0, -1},
				vals:   [4]float64{1, 2, 3, 255},
				nodata: 255,
				hasND:  true,
			},
		},
	}
}

func newCatalog() *catalog.Catalog {
	c := catalog.New()
	c.Add("a.tif", [4]float64{0, -2, 2, 0})
	c.Add("b.tif", [4]float64{1, -3, 3, -1})
	return c
}

var testPoints = []points.Point{
	{ID: "p4", X: 2.5, Y: -2.5},
	{ID: "p2", X: 1.5, Y: -1.5},
	{ID: "p3", X: 10, Y: 10},
	{ID: "p1", X: 0.5, Y: -0.5},
}

func TestRun(t *testing.T) {
	for _, workers := range []int{0, 1, 4} {
		op := newOpener()
		var done []string
		opts := extract.Options{
			Workers:  workers,
			Progress: func(path string) { done = append(done, path) },
		}
		rs, err := extract.Run(context.Background(), op, newCatalog(), testPoints, opts)
		if err != nil {
			t.Fatalf("workers %d: unexpected error: %v", workers, err)
		}

		var buf bytes.Buffer
		if err := extract.WriteCSV(&buf, "station", rs); err != nil {
			t.Fatalf("workers %d: unable to write data: %v", workers, err)
		}
		want := `station;image;pixel_value
p1;a.tif;10
p2;a.tif;40
p2;b.tif;1
p4;b.tif;
`
		if got := buf.String(); got != want {
			t.Errorf("workers %d: got\n%s\nwant\n%s", workers, got, want)
		}

		if n := extract.Missing(rs); n != 1 {
			t.Errorf("workers %d: missing: got %d, want %d", workers, n, 1)
		}
		if len(done) != 2 {
			t.Errorf("workers %d: progress: got %v, want 2 images", workers, done)
		}
		if op.opened != 2 || op.closed != 2 {
			t.Errorf("workers %d: opened %d, closed %d, want 2", workers, op.opened, op.closed)
		}
	}
}

func TestRunOpenError(t *testing.T) {
	op := newOpener()
	delete(op.images, "b.tif")

	if _, err := extract.Run(context.Background(), op, newCatalog(), testPoints, extract.Options{}); err == nil {
		t.Errorf("expecting error")
	}
}

func TestRunConfigError(t *testing.T) {
	op := newOpener()
	opts := extract.Options{Band: 2}

	_, err := extract.Run(context.Background(), op, newCatalog(), testPoints, opts)
	if !errors.Is(err, sampler.ErrConfig) {
		t.Errorf("got error %v, want %v", err, sampler.ErrConfig)
	}
	if op.opened != op.closed {
		t.Errorf("opened %d, closed %d", op.opened, op.closed)
	}
}
