// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package inmet implements a command to build
// the tables of stations and observations
// from INMET weather station files.
package inmet

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/js-arias/command"
	"github.com/rainfall-trends/pixval/inmet"
	"github.com/rainfall-trends/pixval/report"
)

var Command = &command.Command{
	Usage: `inmet [--encoding <name>] [--log <level>] [-o|--output <directory>]
	<directory>`,
	Short: "build tables from INMET station files",
	Long: `
Command inmet reads the weather station files of the INMET (Instituto
Nacional de Meteorologia, Brazil) in a directory, and writes a table of
stations and a table of hourly observations.

The argument of the command is the directory with the station files. All
files with the extension ".csv" (in any case) are read.

Two semicolon-delimited files are written. The file "stations.csv" has a row
for each station file, with the columns:

	source      the file name without extension
	source_ano  the year of the data, from the file name
	regiao      the region
	uf          the state
	estacao     the station name
	code_wmo    the WMO code of the station
	lat         the latitude
	long        the longitude
	alt         the altitude
	data        the foundation date

The file "stations_table.csv" has a row for each observation, with the source
and the WMO code of the station, followed by the first 19 columns of the
observations (date, hour, precipitation, pressure, radiation, temperature,
humidity, and wind). Decimal commas are replaced by points.

By default, the tables are written in the directory of the station files. Use
the flag --output, or -o, to set a different directory.

INMET files are encoded in ISO-8859-1 ("latin1"), and by default the
files are converted to UTF-8. If the files are already in UTF-8, use the flag
--encoding with the value "utf8".

Use the flag --log to set the level of the messages: "debug", "info", "warn",
or "error". The default level is "info".
	`,
	SetFlags: setFlags,
	Run:      run,
}

var encoding string
var logLevel string
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&encoding, "encoding", "latin1", "")
	c.Flags().StringVar(&logLevel, "log", "info", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting station files directory")
	}
	dir := args[0]

	var latin1 bool
	switch strings.ToLower(encoding) {
	case "latin1", "iso-8859-1":
		latin1 = true
	case "utf8", "utf-8":
	default:
		return c.UsageError(fmt.Sprintf("unknown encoding %q", encoding))
	}

	names, err := stationFiles(dir)
	if err != nil {
		return err
	}
	log := report.Logger(c.Stderr(), logLevel)
	if len(names) == 0 {
		log.Warn().Str("directory", dir).Msg("no station files")
		return nil
	}

	if output == "" {
		output = dir
	}
	stName := filepath.Join(output, "stations.csv")
	tbName := filepath.Join(output, "stations_table.csv")

	stF, err := os.Create(stName)
	if err != nil {
		return err
	}
	defer stF.Close()
	tbF, err := os.Create(tbName)
	if err != nil {
		return err
	}
	defer tbF.Close()

	w, err := inmet.NewWriter(stF, tbF)
	if err != nil {
		return err
	}

	bar := report.Bar(c.Stderr(), len(names), "reading stations")
	var rows int
	for _, name := range names {
		f, err := inmet.ReadFile(name, latin1)
		if err != nil {
			return err
		}
		if err := w.Write(f); err != nil {
			return err
		}
		rows += len(f.Rows)
		bar.Add(1)
		log.Debug().Str("file", name).Int("rows", len(f.Rows)).Msg("station done")
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if err := stF.Close(); err != nil {
		return fmt.Errorf("on file %q: %v", stName, err)
	}
	if err := tbF.Close(); err != nil {
		return fmt.Errorf("on file %q: %v", tbName, err)
	}
	log.Info().
		Int("stations", len(names)).
		Int("observations", rows).
		Str("directory", output).
		Msg("tables saved")
	return nil
}

func stationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		switch e.Name() {
		case "stations.csv", "stations_table.csv":
			continue
		}
		names = append(names, filepath.Join(dir, e.Name()))
	}
	slices.Sort(names)
	return names, nil
}
