// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package mapcmd implements a command to draw
// a quick look image of a raster band.
package mapcmd

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/rainfall-trends/pixval/geoio"
	"github.com/rainfall-trends/pixval/legend"
	"github.com/rainfall-trends/pixval/quicklook"
	"github.com/rainfall-trends/pixval/report"
	"github.com/rainfall-trends/pixval/sampler"
)

var Command = &command.Command{
	Usage: `map [--band <number>] [-c|--columns <value>]
	[--color <scheme>] [--legend <file>]
	[-o|--output <file>] <image>`,
	Short: "draw a quick look of an image",
	Long: `
Command map reads a band of an image and draws it as a png image, using the
pixel grid of the image (i.e., without any projection).

The argument of the command is the image file.

By default, the first band of the image is used. Use the flag --band to set a
different band.

By default, the output image will be at most 1800 pixels wide; use the flag
--columns, or -c, to define a different maximum width. Images smaller than
that width are drawn at their own size.

By default, pixel values are colored with a gradient from the minimum to the
maximum value of the band, using a rainbow color scheme. Use the flag --color
to set a different scheme; valid schemes are "gray", "incandescent",
"iridescent", and "rainbow". Use the flag --legend to color the pixels with the
colors of a legend file, as in a categorical image. Pixels without a color
in the legend are drawn as transparent, as are nodata pixels.

By default, the output file has the same name as the image, with the ".png"
extension. Use the flag --output, or -o, to set a different file name.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var bandFlag int
var colsFlag int
var legendFile string
var schemeFlag string
var output string

func setFlags(c *command.Command) {
	c.Flags().IntVar(&bandFlag, "band", 1, "")
	c.Flags().IntVar(&colsFlag, "columns", 1800, "")
	c.Flags().IntVar(&colsFlag, "c", 1800, "")
	c.Flags().StringVar(&legendFile, "legend", "", "")
	c.Flags().StringVar(&schemeFlag, "color", "rainbow", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting image file")
	}
	if colsFlag < 1 {
		return c.UsageError(fmt.Sprintf("invalid number of columns %d", colsFlag))
	}

	gradient, err := quicklook.Scheme(schemeFlag)
	if err != nil {
		return c.UsageError(err.Error())
	}

	var lg *legend.Legend
	if legendFile != "" {
		lg, err = legend.Read(legendFile)
		if err != nil {
			return err
		}
	}

	r, err := geoio.OpenRaster(args[0])
	if err != nil {
		return err
	}
	defer r.Close()

	if bandFlag < 1 || bandFlag > r.BandCount() {
		return fmt.Errorf("on image %q: invalid band %d", args[0], bandFlag)
	}
	nd, hasND := r.BandNoData(bandFlag)
	band := sampler.Band{
		Index:     bandFlag,
		Type:      r.BandType(bandFlag),
		NoData:    nd,
		HasNoData: hasND,
	}

	bar := report.Bar(c.Stderr(), -1, "reading lines")
	img, err := quicklook.Read(r, band, colsFlag, func() { bar.Add(1) })
	if err != nil {
		return fmt.Errorf("on image %q: %v", args[0], err)
	}
	bar.Finish()
	img.Keys = lg
	img.Gradient = gradient

	if output == "" {
		output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".png"
	}
	if err := writeImage(output, img); err != nil {
		return err
	}
	fmt.Fprintf(c.Stderr(), "Saved %s\n", output)
	return nil
}

func writeImage(name string, img image.Image) (err error) {
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

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("when encoding image file %q: %v", name, err)
	}
	return nil
}
