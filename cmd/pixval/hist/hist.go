// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package hist implements a command to count
// the pixels of each class of a categorical image.
package hist

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/rainfall-trends/pixval/geoio"
	"github.com/rainfall-trends/pixval/histogram"
	"github.com/rainfall-trends/pixval/legend"
	"github.com/rainfall-trends/pixval/project"
	"github.com/rainfall-trends/pixval/report"
)

var Command = &command.Command{
	Usage: `hist [--band <number>] [--legend <file>] [--plot <file>]
	<project-file> <image>`,
	Short: "count pixels of each class",
	Long: `
Command hist reads a categorical image (for example, a land cover map) and
counts the number of pixels of each class defined in the legend of a project.
Pixels with values not defined in the legend, or nodata pixels, are ignored.

The first argument of the command is the name of the project file. The second
argument is the image file.

The counts are printed in the standard output, one class per line, in the form
'<label>: <count>'.

By default, the first band of the image is used. Use the flag --band to set a
different band.

By default, the legend of the project is used. Use the flag --legend to use a
different legend file.

Use the flag --plot to save a bar plot of the counts. The format of the plot
is set by the extension of the file (e.g., ".png", ".svg", ".pdf").
	`,
	SetFlags: setFlags,
	Run:      run,
}

var bandFlag int
var legendFile string
var plotFile string

func setFlags(c *command.Command) {
	c.Flags().IntVar(&bandFlag, "band", 1, "")
	c.Flags().StringVar(&legendFile, "legend", "", "")
	c.Flags().StringVar(&plotFile, "plot", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if len(args) < 2 {
		return c.UsageError("expecting image file")
	}

	var lg *legend.Legend
	if legendFile != "" {
		var err error
		lg, err = legend.Read(legendFile)
		if err != nil {
			return err
		}
	} else {
		p, err := project.Read(args[0])
		if err != nil {
			return err
		}
		lg, err = p.Legend()
		if err != nil {
			return err
		}
	}

	r, err := geoio.OpenRaster(args[1])
	if err != nil {
		return err
	}
	defer r.Close()

	br, err := r.Blocks(bandFlag)
	if err != nil {
		return err
	}

	_, rows := br.Size()
	bar := report.Bar(c.Stderr(), rows, "counting pixels")
	cnt := histogram.NewCounter(lg)
	if err := histogram.Count(br, cnt, func(n int) { bar.Add(n) }); err != nil {
		return fmt.Errorf("on image %q: %v", args[1], err)
	}

	if err := histogram.Write(c.Stdout(), cnt); err != nil {
		return err
	}
	if cnt.Total() == 0 {
		fmt.Fprintf(c.Stderr(), "WARNING: image %q: no pixels with a legend class\n", args[1])
	}

	if plotFile != "" {
		title := strings.TrimSuffix(filepath.Base(args[1]), filepath.Ext(args[1]))
		if err := histogram.SavePlot(cnt, title, plotFile); err != nil {
			return err
		}
	}
	return nil
}
