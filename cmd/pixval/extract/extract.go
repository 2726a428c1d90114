// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package extract implements a command to read
// the pixel values of a set of images
// at a set of points.
package extract

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/rainfall-trends/pixval/extract"
	"github.com/rainfall-trends/pixval/geoio"
	"github.com/rainfall-trends/pixval/project"
	"github.com/rainfall-trends/pixval/report"
)

var Command = &command.Command{
	Usage: `extract [--field <name>] [--band <number>] [--cpu <number>]
	[--log <level>] [-o|--output <file>] <project-file>`,
	Short: "read pixel values of images at points",
	Long: `
Command extract reads the images and the points defined in a project, and
writes the value of each point in each image that contains it.

The argument of the command is the name of the project file. The project must
define the "images" directory and the "points" file. See 'pixval help
projects'.

If the points are a vector layer, use the flag --field to indicate the field
with the point identifier. By default, the field "id" is used.

By default the first band of each image is read. Use the flag --band to read
a different band.

Images are read in parallel. By default, all the processors are used; use the
flag --cpu to set the number of processors.

The output is a semicolon-delimited file with the following columns:

	- the point identifier (with the name of the ID field)
	- image, the path of the image
	- pixel_value, the value of the pixel, or empty if the point does
	  not have a value

The rows are sorted by point identifier and image path. By default, the output
file is named after the points file, with the suffix "_images.csv". Use the
flag --output, or -o, to set a different file name.

Warnings and a summary of the extraction are written on the standard error.
Use the flag --log to set the level of the messages: "debug", "info", "warn",
or "error". The default level is "info".
	`,
	SetFlags: setFlags,
	Run:      run,
}

var fieldFlag string
var bandFlag int
var numCPU int
var logLevel string
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&fieldFlag, "field", "id", "")
	c.Flags().IntVar(&bandFlag, "band", 1, "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().StringVar(&logLevel, "log", "info", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	dir, err := p.ImageDir()
	if err != nil {
		return err
	}
	ptF, err := p.PointFile()
	if err != nil {
		return err
	}

	log := report.Logger(c.Stderr(), logLevel)

	pts, sr, err := geoio.LoadPoints(ptF, fieldFlag)
	if err != nil {
		return err
	}
	defer sr.Close()

	cat, err := geoio.Catalog(dir, sr, log)
	if err != nil {
		return err
	}
	op, err := geoio.NewOpener(sr)
	if err != nil {
		return err
	}

	assign := cat.Assign(pts)
	var inImage int
	for _, ps := range assign {
		inImage += len(ps)
	}
	log.Info().
		Int("points", len(pts)).
		Int("images", cat.Len()).
		Int("points-in-images", inImage).
		Msg("catalog ready")
	if inImage == 0 {
		log.Warn().Msg("no points inside images")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bar := report.Bar(c.Stderr(), len(assign), "reading images")
	opts := extract.Options{
		Band:    bandFlag,
		Workers: numCPU,
		Progress: func(path string) {
			bar.Add(1)
			log.Debug().Str("file", path).Msg("image done")
		},
	}
	results, err := extract.Run(ctx, op, cat, pts, opts)
	if err != nil {
		return err
	}
	if n := extract.Missing(results); n > 0 {
		log.Warn().Int("values", n).Msg("points without value")
	}

	if output == "" {
		output = strings.TrimSuffix(ptF, filepath.Ext(ptF)) + "_images.csv"
	}
	if err := writeResults(output, results); err != nil {
		return err
	}
	log.Info().Str("file", output).Int("rows", len(results)).Msg("values saved")
	return nil
}

func writeResults(name string, results []extract.Result) (err error) {
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

	if err := extract.WriteCSV(f, fieldFlag, results); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}
