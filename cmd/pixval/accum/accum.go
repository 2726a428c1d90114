// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package accum implements a command to build
// a monthly table of a statistic
// of accumulated precipitation images.
package accum

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/js-arias/command"
	"github.com/rainfall-trends/pixval/accum"
	"github.com/rainfall-trends/pixval/geoio"
	"github.com/rainfall-trends/pixval/report"
	"github.com/rainfall-trends/pixval/sampler"
)

var Command = &command.Command{
	Usage: `accum [--stat <name>] [--band <number>] [--log <level>]
	[-o|--output <file>] <directory> <prefix>`,
	Short: "build a monthly table of accumulated precipitation",
	Long: `
Command accum reads the monthly accumulated precipitation images in a
directory, and writes a table with a statistic of each image, by month and
year.

The first argument of the command is the directory with the images. The
second argument is the prefix of the image names. Images are named as
'<prefix>_<year>_<month>_total.accum.tif' (for example,
'gpm_2019_01_total.accum.tif'). Other files are ignored.

By default, the statistic is the mean of the pixel values. Use the flag
--stat to set a different statistic. Valid values are "min", "max", and
"mean" (or 1, 2, and 3). Nodata pixels are ignored.

By default the first band of each image is read. Use the flag --band to read
a different band.

The output is a comma-delimited file with a row for each month, and a column
for each year. Months without image, or with only nodata pixels, are left
empty. By default, the output file is named '<prefix>_total.accum_stats.csv'.
Use the flag --output, or -o, to set a different file name.

Use the flag --log to set the level of the messages: "debug", "info", "warn",
or "error". The default level is "info".
	`,
	SetFlags: setFlags,
	Run:      run,
}

var statFlag string
var bandFlag int
var logLevel string
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&statFlag, "stat", "mean", "")
	c.Flags().IntVar(&bandFlag, "band", 1, "")
	c.Flags().StringVar(&logLevel, "log", "info", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting images directory")
	}
	if len(args) < 2 {
		return c.UsageError("expecting image prefix")
	}
	dir, prefix := args[0], args[1]

	st, err := accum.ParseStat(statFlag)
	if err != nil {
		return c.UsageError(err.Error())
	}

	log := report.Logger(c.Stderr(), logLevel)

	names, err := filepath.Glob(filepath.Join(dir, prefix+"_*_*"+accum.Suffix))
	if err != nil {
		return err
	}
	slices.Sort(names)

	tab := accum.NewTable()
	bar := report.Bar(c.Stderr(), len(names), "reading images")
	var n int
	for _, name := range names {
		year, month, ok := accum.ParseName(prefix, name)
		if !ok {
			log.Debug().Str("file", name).Msg("ignored")
			bar.Add(1)
			continue
		}
		v, ok, err := imageStat(name, st)
		if err != nil {
			return err
		}
		bar.Add(1)
		if !ok {
			log.Warn().Str("file", name).Msg("image without values")
			continue
		}
		tab.Set(year, month, v)
		n++
		log.Debug().Str("file", name).Float64(st.String(), v).Msg("image done")
	}
	if n == 0 {
		log.Warn().Str("directory", dir).Str("prefix", prefix).Msg("no images")
	}

	if output == "" {
		output = prefix + "_total.accum_stats.csv"
	}
	if err := writeTable(output, tab); err != nil {
		return err
	}
	log.Info().Str("file", output).Int("images", n).Str("stat", st.String()).Msg("table saved")
	return nil
}

func imageStat(name string, st accum.Stat) (float64, bool, error) {
	r, err := geoio.OpenRaster(name)
	if err != nil {
		return 0, false, err
	}
	defer r.Close()

	if bandFlag < 1 || bandFlag > r.BandCount() {
		return 0, false, fmt.Errorf("on image %q: invalid band %d", name, bandFlag)
	}
	nd, hasND := r.BandNoData(bandFlag)
	band := sampler.Band{
		Index:     bandFlag,
		Type:      r.BandType(bandFlag),
		NoData:    nd,
		HasNoData: hasND,
	}

	br, err := r.Blocks(bandFlag)
	if err != nil {
		return 0, false, err
	}
	v, ok, err := accum.Compute(br, band, st)
	if err != nil {
		return 0, false, fmt.Errorf("on image %q: %v", name, err)
	}
	return v, ok, nil
}

func writeTable(name string, tab *accum.Table) (err error) {
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

	if err := tab.WriteCSV(f); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}
