// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package info implements a command to print
// the basic information of an image.
package info

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/rainfall-trends/pixval/geoio"
	"github.com/rainfall-trends/pixval/sampler"
)

var Command = &command.Command{
	Usage: "info [--res] <image>...",
	Short: "print information about an image",
	Long: `
Command info reads one or more images and prints their size, transform,
extent, and bands.

The arguments of the command are the image files.

Use the flag --res to print only the x and y resolution of each image.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var resFlag bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&resFlag, "res", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting image file")
	}

	for _, a := range args {
		if err := printInfo(c, a); err != nil {
			return err
		}
	}
	return nil
}

func printInfo(c *command.Command, name string) error {
	r, err := geoio.OpenRaster(name)
	if err != nil {
		return err
	}
	defer r.Close()

	gt, err := r.GeoTransform()
	if err != nil {
		return fmt.Errorf("on image %q: %v", name, err)
	}
	tr := sampler.Transform(gt)

	w := c.Stdout()
	if resFlag {
		fmt.Fprintf(w, "%s\t%v %v\n", name, tr[1], tr[5])
		return nil
	}

	cols, rows := r.Size()
	ext := sampler.NewExtent(tr, cols, rows)

	fmt.Fprintf(w, "Image: %s\n", name)
	fmt.Fprintf(w, "\tsize: %d x %d\n", cols, rows)
	fmt.Fprintf(w, "\ttransform: %v\n", [6]float64(tr))
	fmt.Fprintf(w, "\tresolution: %v %v\n", tr[1], tr[5])
	fmt.Fprintf(w, "\textent: x [%.6f, %.6f] y [%.6f, %.6f]\n", ext.MinX, ext.MaxX, ext.MinY, ext.MaxY)
	if _, err := tr.Invert(); err != nil {
		fmt.Fprintf(w, "\tWARNING: %v\n", err)
	}
	if wkt, err := r.WKT(); err == nil {
		fmt.Fprintf(w, "\treference: %s\n", wkt)
	}

	for b := 1; b <= r.BandCount(); b++ {
		fmt.Fprintf(w, "\tband %d: %s", b, r.BandType(b))
		if nd, ok := r.BandNoData(b); ok {
			fmt.Fprintf(w, " nodata: %v", nd)
		}
		fmt.Fprintf(w, "\n")
	}
	fmt.Fprintf(w, "\n")
	return nil
}
