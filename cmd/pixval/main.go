// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Pixval is a tool to read pixel values
// of georeferenced raster images.
package main

import (
	"github.com/js-arias/command"
	"github.com/rainfall-trends/pixval/cmd/pixval/accum"
	"github.com/rainfall-trends/pixval/cmd/pixval/bands"
	"github.com/rainfall-trends/pixval/cmd/pixval/describe"
	"github.com/rainfall-trends/pixval/cmd/pixval/extract"
	"github.com/rainfall-trends/pixval/cmd/pixval/field"
	"github.com/rainfall-trends/pixval/cmd/pixval/geoid"
	"github.com/rainfall-trends/pixval/cmd/pixval/hist"
	"github.com/rainfall-trends/pixval/cmd/pixval/info"
	"github.com/rainfall-trends/pixval/cmd/pixval/inmet"
	"github.com/rainfall-trends/pixval/cmd/pixval/mapcmd"
	"github.com/rainfall-trends/pixval/cmd/pixval/prj"
	"github.com/rainfall-trends/pixval/cmd/pixval/sample"
	"github.com/rainfall-trends/pixval/cmd/pixval/shift"
)

var app = &command.Command{
	Usage: "pixval <command> [<argument>...]",
	Short: "a tool to read pixel values of raster images",
}

func init() {
	app.Add(accum.Command)
	app.Add(bands.Command)
	app.Add(describe.Command)
	app.Add(extract.Command)
	app.Add(field.Command)
	app.Add(geoid.Command)
	app.Add(hist.Command)
	app.Add(info.Command)
	app.Add(inmet.Command)
	app.Add(mapcmd.Command)
	app.Add(prj.Command)
	app.Add(sample.Command)
	app.Add(shift.Command)
}

func main() {
	app.Main()
}
