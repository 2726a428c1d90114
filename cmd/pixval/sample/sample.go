// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package sample implements a command to read
// the value of an image at a point.
package sample

import (
	"fmt"
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/earth/vector"
	"github.com/rainfall-trends/pixval/geoio"
	"github.com/rainfall-trends/pixval/points"
	"github.com/rainfall-trends/pixval/sampler"
)

var Command = &command.Command{
	Usage: "sample [--band <number>] [--xy] <image> <latitude> <longitude>",
	Short: "read the value of an image at a point",
	Long: `
Command sample reads the value of the pixel of an image that contains a
point.

The first argument of the command is the image file. The second and third
arguments are the latitude and longitude of the point, in WGS84. The point
will be reprojected into the reference system of the image.

Use the flag --xy to give the coordinates in the reference system of the
image. In that case, the arguments are the x and y coordinates.

By default the first band of the image is read. Use the flag --band to read a
different band.

The output includes the coordinates of the point in the reference system of
the image, the column and row of the pixel, and the pixel value. If the point
does not have a value (i.e., it is outside the image, or the pixel has the
nodata value), the value is empty.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var bandFlag int
var xyFlag bool

func setFlags(c *command.Command) {
	c.Flags().IntVar(&bandFlag, "band", 1, "")
	c.Flags().BoolVar(&xyFlag, "xy", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 3 {
		return c.UsageError("expecting image file and point coordinates")
	}

	r, err := geoio.OpenRaster(args[0])
	if err != nil {
		return err
	}
	defer r.Close()

	s, err := sampler.New(r, bandFlag)
	if err != nil {
		return fmt.Errorf("on image %q: %w", args[0], err)
	}

	var x, y float64
	if xyFlag {
		x, err = strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid x value %q: %v", args[1], err)
		}
		y, err = strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid y value %q: %v", args[2], err)
		}
	} else {
		x, y, err = fromGeographic(r, args[1], args[2])
		if err != nil {
			return err
		}
	}

	v, err := s.Sample(x, y)
	if err != nil {
		return fmt.Errorf("on image %q: %w", args[0], err)
	}

	col, row := s.Pixel(x, y)
	if !s.Inside(x, y) {
		fmt.Fprintf(c.Stderr(), "WARNING: point %.6f, %.6f outside image %q\n", x, y, args[0])
	}
	fmt.Fprintf(c.Stdout(), "# image %s, band %d (%s)\n", args[0], s.Band().Index, s.Band().Type)
	fmt.Fprintf(c.Stdout(), "x\ty\tcol\trow\tvalue\n")
	fmt.Fprintf(c.Stdout(), "%.6f\t%.6f\t%d\t%d\t%s\n", x, y, col, row, v)
	return nil
}

func fromGeographic(r *geoio.Raster, lat, lon string) (x, y float64, err error) {
	pt, err := vector.ParsePoint(lat, lon)
	if err != nil {
		return 0, 0, err
	}

	wgs, err := geoio.WGS84Ref()
	if err != nil {
		return 0, 0, err
	}
	defer wgs.Close()

	sr, err := r.SpatialRef()
	if err != nil {
		return 0, 0, err
	}
	defer sr.Close()

	rp, err := geoio.NewReprojector(wgs, sr)
	if err != nil {
		return 0, 0, err
	}
	defer rp.Close()

	pts, err := rp.Project([]points.Point{{ID: "point", X: pt.Lon, Y: pt.Lat}})
	if err != nil {
		return 0, 0, err
	}
	return pts[0].X, pts[0].Y, nil
}
