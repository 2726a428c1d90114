// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package geoid implements a command to convert
// a geoid height grid into a CSV file.
package geoid

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/earth/vector"
	"github.com/rainfall-trends/pixval/grid"
	"github.com/rainfall-trends/pixval/sampler"
)

var Command = &command.Command{
	Usage: `geoid [--at <latitude>,<longitude>] [-o|--output <file>]
	<grd-file>`,
	Short: "convert a geoid height grid",
	Long: `
Command geoid reads a geoid height grid in the ASCII format used by the NGA
for the EGM96 geoid (the WW15MGH.GRD file), and writes it as a CSV file with
the columns LONG, LAT, and HEIGHT.

The argument of the command is the grid file.

The last longitude of the grid is not written, as it is the same as the first
one (360 = 0), and longitudes above 180 are written in the range
[-180, 180).

By default, the output file has the same name as the grid file, with the
".csv" extension. Use the flag --output, or -o, to set a different file name.

Use the flag --at to print the geoid height at a point instead of writing the
CSV file. The point is given as latitude and longitude separated by a comma,
for example "-15.79,-47.93". Longitudes in the range [-180, 0) are read as
their [180, 360) equivalent.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var atFlag string
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&atFlag, "at", "", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting grid file")
	}

	g, err := readGrid(args[0])
	if err != nil {
		return err
	}

	if atFlag != "" {
		return heightAt(c, g)
	}

	if output == "" {
		output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".csv"
	}
	if err := writeCSV(output, g); err != nil {
		return err
	}
	fmt.Fprintf(c.Stderr(), "Saved %s\n", output)
	return nil
}

func heightAt(c *command.Command, g *grid.Grid) error {
	coords := strings.Split(atFlag, ",")
	if len(coords) != 2 {
		return c.UsageError(fmt.Sprintf("invalid point %q", atFlag))
	}
	pt, err := vector.ParsePoint(strings.TrimSpace(coords[0]), strings.TrimSpace(coords[1]))
	if err != nil {
		return err
	}
	lon := pt.Lon
	if lon < g.West {
		lon += 360
	}

	s, err := sampler.New(g, 1)
	if err != nil {
		return err
	}
	v, err := s.Sample(lon, pt.Lat)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout(), "%.6f\t%.6f\t%s\n", pt.Lat, pt.Lon, v)
	return nil
}

func readGrid(name string) (*grid.Grid, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := grid.Read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return g, nil
}

func writeCSV(name string, g *grid.Grid) (err error) {
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

	if err := g.WriteCSV(f); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}
