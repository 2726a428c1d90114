// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package shift implements a command to move an image
// to the origin of another image.
package shift

import (
	"github.com/js-arias/command"
	"github.com/rainfall-trends/pixval/geoio"
)

var Command = &command.Command{
	Usage: "shift <image> <origin-image>",
	Short: "move an image to the origin of other image",
	Long: `
Command shift sets the origin (the coordinates of the top-left corner) of an
image to the origin of another image. The resolution and rotation of the
image are not modified.

It is used to align images that cover the same area but have a small shift,
for example, elevation models from different sources.

The first argument of the command is the image to be modified. The second
argument is the image with the origin.

The image is modified in place.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting image and origin image")
	}

	orig, err := geoio.OpenRaster(args[1])
	if err != nil {
		return err
	}
	gt, err := orig.GeoTransform()
	orig.Close()
	if err != nil {
		return err
	}

	r, err := geoio.OpenUpdate(args[0])
	if err != nil {
		return err
	}
	if err := r.SetOrigin(gt[0], gt[3]); err != nil {
		r.Close()
		return err
	}
	return r.Close()
}
