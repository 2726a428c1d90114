// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package bands implements a command to write
// the values of all the bands of an image
// as a CSV file.
package bands

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/rainfall-trends/pixval/describe"
	"github.com/rainfall-trends/pixval/geoio"
	"github.com/rainfall-trends/pixval/report"
	"github.com/rainfall-trends/pixval/sampler"
)

var Command = &command.Command{
	Usage: "bands [-o|--output <file>] <image>",
	Short: "write band values as a CSV file",
	Long: `
Command bands reads all the bands of an image and writes a CSV file with a
column for each band, and a row for each pixel in which every band has a
valid value (i.e., the pixel is not the nodata value in any band).

For example, an image with elevations from two sources (each one in a band)
can be used to compare both sources with the command 'pixval describe'.

The argument of the command is the image file.

By default, the output file has the same name as the image, with the ".csv"
extension. Use the flag --output, or -o, to set a different file name.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting image file")
	}

	r, err := geoio.OpenRaster(args[0])
	if err != nil {
		return err
	}
	defer r.Close()

	bands := make([]sampler.Band, r.BandCount())
	for i := range bands {
		nd, ok := r.BandNoData(i + 1)
		bands[i] = sampler.Band{
			Index:     i + 1,
			Type:      r.BandType(i + 1),
			NoData:    nd,
			HasNoData: ok,
		}
	}

	if output == "" {
		output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".csv"
	}
	if err := writeBands(c, output, r, bands); err != nil {
		return err
	}
	fmt.Fprintf(c.Stderr(), "Saved %s\n", output)
	return nil
}

func writeBands(c *command.Command, name string, r *geoio.Raster, bands []sampler.Band) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	out, err := describe.NewBandWriter(bw, len(bands))
	if err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}

	_, rows := r.Size()
	bar := report.Bar(c.Stderr(), rows, "reading lines")
	lines := make([][]float64, len(bands))
	for y := 0; y < rows; y++ {
		for i, b := range bands {
			lines[i], err = r.ReadRow(b.Index, y, lines[i])
			if err != nil {
				return err
			}
		}
		if err := out.Write(describe.ValidPixels(lines, bands)); err != nil {
			return fmt.Errorf("on file %q: %v", name, err)
		}
		bar.Add(1)
	}

	if err := out.Flush(); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}
