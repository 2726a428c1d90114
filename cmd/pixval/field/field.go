// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package field implements a command to write
// the pixel values of an image
// as a field of a point shapefile.
package field

import (
	"fmt"
	"os"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/js-arias/command"
	"github.com/rainfall-trends/pixval/geoio"
	"github.com/rainfall-trends/pixval/project"
	"github.com/rainfall-trends/pixval/sampler"
)

var Command = &command.Command{
	Usage: `field [--band <number>] [--field <name>]
	<project-file> <image> <output-shapefile>`,
	Short: "write pixel values into a point shapefile",
	Long: `
Command field reads the points defined in a project and writes a point
shapefile with the value of each point in an image.

The first argument of the command is the name of the project file. The
project must define a "points" file. The second argument is the image file,
and the third argument is the name of the output shapefile.

If the points are a vector layer, use the flag --field to indicate the field
with the point identifier. By default, the field "id" is used.

By default the first band of the image is read. Use the flag --band to read a
different band.

The output shapefile has the points in the reference system of the input
points, and the following fields:

	- ID, the point identifier
	- Value, the pixel value
	- HasValue, 1 if the point has a value, 0 otherwise (i.e., the point
	  is outside the image, or the pixel has the nodata value)
	`,
	SetFlags: setFlags,
	Run:      run,
}

var bandFlag int
var fieldFlag string

func setFlags(c *command.Command) {
	c.Flags().IntVar(&bandFlag, "band", 1, "")
	c.Flags().StringVar(&fieldFlag, "field", "id", "")
}

// pointValue is the record of the output shapefile.
type pointValue struct {
	geom.Point
	ID       string
	Value    float64
	HasValue int
}

func run(c *command.Command, args []string) error {
	if len(args) < 3 {
		return c.UsageError("expecting project file, image, and output shapefile")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	ptF, err := p.PointFile()
	if err != nil {
		return err
	}
	pts, sr, err := geoio.LoadPoints(ptF, fieldFlag)
	if err != nil {
		return err
	}
	defer sr.Close()

	r, err := geoio.OpenRaster(args[1])
	if err != nil {
		return err
	}
	defer r.Close()

	s, err := sampler.New(r, bandFlag)
	if err != nil {
		return fmt.Errorf("on image %q: %w", args[1], err)
	}
	isr, err := r.SpatialRef()
	if err != nil {
		return err
	}
	defer isr.Close()

	rp, err := geoio.NewReprojector(sr, isr)
	if err != nil {
		return err
	}
	defer rp.Close()
	proj, err := rp.Project(pts)
	if err != nil {
		return err
	}

	recs := make([]pointValue, 0, len(pts))
	var missing int
	for i, pt := range proj {
		v, err := s.Sample(pt.X, pt.Y)
		if err != nil {
			return fmt.Errorf("on image %q: point %q: %w", args[1], pts[i].ID, err)
		}
		rec := pointValue{
			Point: geom.Point{X: pts[i].X, Y: pts[i].Y},
			ID:    pts[i].ID,
		}
		if v.OK() {
			rec.Value = v.Float()
			rec.HasValue = 1
		} else {
			missing++
		}
		recs = append(recs, rec)
	}

	name := args[2]
	if err := writeShapefile(name, recs); err != nil {
		return err
	}
	wkt, err := sr.WKT()
	if err != nil {
		return err
	}
	prj := strings.TrimSuffix(name, ".shp") + ".prj"
	if err := os.WriteFile(prj, []byte(wkt), 0o644); err != nil {
		return err
	}

	if missing > 0 {
		fmt.Fprintf(c.Stderr(), "WARNING: %d points without value\n", missing)
	}
	return nil
}

func writeShapefile(name string, recs []pointValue) error {
	e, err := shp.NewEncoder(name, pointValue{})
	if err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	defer e.Close()

	for _, r := range recs {
		if err := e.Encode(r); err != nil {
			return fmt.Errorf("on file %q: point %q: %v", name, r.ID, err)
		}
	}
	return nil
}
