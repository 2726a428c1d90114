// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(legendGuide)
	app.Add(pointFilesGuide)
	app.Add(projectsGuide)
	app.Add(samplingGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
Several pixval commands require a set of images, a set of points, and a
legend for the classes of a categorical image. To reduce the burden of keeping
track of many files, a single project file is used to hold the reference of
all files required by a command. The best way to edit or view this file is by
using the command 'pixval prj'.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# pixval project files
	dataset	path
	images	gpm/monthly
	points	stations.shp
	legend	mapbiomas-legend.tab

The valid file types are:

- Images. Defined by the dataset keyword "images". It is a directory with the
  raster images to be sampled. Any file that can not be read as a raster is
  ignored.
- Points. Defined by the dataset keyword "points". It is a point vector layer
  (for example, a shapefile or a GeoPackage), or a tab-delimited file. See
  'pixval help point-files'.
- Legend. Defined by the dataset keyword "legend". It is a tab-delimited file
  with the labels and colors of the classes of a categorical image. See
  'pixval help legend-files'.
	`,
}

var pointFilesGuide = &command.Command{
	Usage: "point-files",
	Short: "about point files",
	Long: `
The sampling points can be stored in any point vector layer that can be read
by GDAL (for example, a shapefile or a GeoPackage). The layer must have a
spatial reference system, every feature must be a point, and the features
must have a field with the point identifier.

Points can also be stored in a tab-delimited file, with a ".tab", ".tsv", or
".txt" extension. The coordinates are always geographic coordinates in WGS84.
The file must have the following columns:

	-id   the identifier of the point
	-lon  the longitude (it can also be called "x" or "longitude")
	-lat  the latitude (it can also be called "y" or "latitude")

Any other columns will be ignored. Here is an example file:

	# rain gauge stations
	id	lon	lat
	A001	-47.925833	-15.789444
	A002	-49.220222	-16.642841
	`,
}

var legendGuide = &command.Command{
	Usage: "legend-files",
	Short: "about legend files",
	Long: `
A legend file defines the classes of a categorical image (for example, the
land cover classes of MapBiomas).

A legend file is a tab-delimited file with the following columns:

	-key    the pixel value of the class
	-label  the name of the class

Optionally, it can contain the following column:

	-color  a RGB value separated by commas, for example, "125,132,148".

Any other columns will be ignored. Here is an example of a legend file:

	key	label	color
	3	Forest formation	0,100,0
	4	Savanna formation	0,255,0
	15	Pasture	255,215,143
	39	Soybean	229,153,255
	`,
}

var samplingGuide = &command.Command{
	Usage: "sampling",
	Short: "about how pixel values are read",
	Long: `
A pixel value is read from the cell of the image that contains a point. The
point must be in the reference system of the image; pixval commands reproject
the points when the image and the points use different reference systems.

A point is inside an image if it is inside the image extent, including the
borders. Points outside the extent do not have a value. Points over the right
or bottom border of the image are assigned to the last column or row.

If the value of the cell is the nodata value of the band, the point does not
have a value. Points without a value are written as empty fields.

Integer bands (Byte, UInt16, Int16, UInt32, and Int32) are reported as
integers, and floating point bands (Float32 and Float64) as decimal numbers.
Any other band type is an error.
	`,
}
