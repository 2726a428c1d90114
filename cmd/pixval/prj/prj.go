// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prj implements a command to print
// the basic information of a project.
package prj

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/js-arias/command"
	"github.com/rainfall-trends/pixval/geoio"
	"github.com/rainfall-trends/pixval/project"
	"github.com/rainfall-trends/pixval/report"
)

var Command = &command.Command{
	Usage: `prj [--set <dataset>=<path>] [--field <name>]
	<project-file>`,
	Short: "print information about a project",
	Long: `
Command prj reads a pixval project and prints the information of the
different project elements into the standard output.

The argument of the command is the name of the project file.

Use the flag --set to add, or replace, a dataset of the project, in the form
'<dataset>=<path>'. If the project file does not exist, it will be created.
Valid datasets are:

	images	directory with the images to be sampled
	points	file with the sampling points
	legend	file with the labels and colors of the classes

By default, the points are identified by the field "id". Use the flag --field
to set a different identifier field.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var setFlag string
var fieldFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&setFlag, "set", "", "")
	c.Flags().StringVar(&fieldFlag, "field", "id", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	if setFlag != "" {
		if err := addDataset(c, args[0]); err != nil {
			return err
		}
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	w := c.Stdout()
	fmt.Fprintf(w, "Project: %s\n\n", p.Name())

	if p.Path(project.Points) != "" {
		if err := readPoints(w, p); err != nil {
			return err
		}
	}
	if p.Path(project.Images) != "" {
		if err := readImages(w, p); err != nil {
			return err
		}
	}
	if p.Path(project.Legend) != "" {
		if err := readLegend(w, p); err != nil {
			return err
		}
	}
	return nil
}

func addDataset(c *command.Command, name string) error {
	set, path, ok := strings.Cut(setFlag, "=")
	if !ok || strings.TrimSpace(path) == "" {
		return c.UsageError(fmt.Sprintf("invalid dataset %q", setFlag))
	}
	ds := project.Dataset(strings.ToLower(strings.TrimSpace(set)))
	switch ds {
	case project.Images, project.Points, project.Legend:
	default:
		return c.UsageError(fmt.Sprintf("unknown dataset %q", set))
	}

	p, err := project.Read(name)
	if os.IsNotExist(err) {
		p = project.New()
		p.SetName(name)
	} else if err != nil {
		return err
	}

	if prev := p.Add(ds, strings.TrimSpace(path)); prev != "" {
		fmt.Fprintf(c.Stderr(), "WARNING: dataset %q: replacing %q\n", ds, prev)
	}
	return p.Write()
}

func readPoints(w io.Writer, p *project.Project) error {
	name, err := p.PointFile()
	if err != nil {
		return err
	}
	pts, sr, err := geoio.LoadPoints(name, fieldFlag)
	if err != nil {
		return err
	}
	defer sr.Close()

	fmt.Fprintf(w, "Sampling points:\n")
	fmt.Fprintf(w, "\tfile: %s\n", name)
	fmt.Fprintf(w, "\tpoints: %d\n", len(pts))
	fmt.Fprintf(w, "\n")
	return nil
}

func readImages(w io.Writer, p *project.Project) error {
	dir, err := p.ImageDir()
	if err != nil {
		return err
	}
	sr, err := geoio.WGS84Ref()
	if err != nil {
		return err
	}
	defer sr.Close()

	cat, err := geoio.Catalog(dir, sr, report.Logger(nil, "error"))
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Images:\n")
	fmt.Fprintf(w, "\tdirectory: %s\n", dir)
	fmt.Fprintf(w, "\timages: %d\n", cat.Len())
	var ext [4]float64
	for i, e := range cat.Entries() {
		if i == 0 {
			ext = e.Bounds
			continue
		}
		ext[0] = min(ext[0], e.Bounds[0])
		ext[1] = min(ext[1], e.Bounds[1])
		ext[2] = max(ext[2], e.Bounds[2])
		ext[3] = max(ext[3], e.Bounds[3])
	}
	fmt.Fprintf(w, "\textent: lon [%.6f, %.6f] lat [%.6f, %.6f]\n", ext[0], ext[2], ext[1], ext[3])
	fmt.Fprintf(w, "\n")
	return nil
}

func readLegend(w io.Writer, p *project.Project) error {
	lg, err := p.Legend()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Legend:\n")
	fmt.Fprintf(w, "\tfile: %s\n", p.Path(project.Legend))
	fmt.Fprintf(w, "\tclasses: %d\n", len(lg.Keys()))
	fmt.Fprintf(w, "\n")
	return nil
}
