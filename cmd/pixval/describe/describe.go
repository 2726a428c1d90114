// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package describe implements a command to write
// summary statistics of CSV files.
package describe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/js-arias/command"
	"github.com/rainfall-trends/pixval/describe"
)

var Command = &command.Command{
	Usage: `describe [--area <value>] [--comma <char>]
	<csv-file-or-directory>...`,
	Short: "write summary statistics of CSV files",
	Long: `
Command describe reads one or more CSV files with numeric columns (for
example, the output of the command 'pixval bands') and writes, for each file,
a summary with the count, mean, standard deviation, minimum, quartiles, and
maximum of each column.

The arguments of the command are CSV files, or directories. If a directory is
given, all the files with the ".csv" extension in the directory will be
described.

The summary of each file is saved in a file with the same name but with the
".info" extension.

Empty cells, or cells with "nan" or "NA", are ignored.

By default, the area of a pixel is 900 (a 30 x 30 m pixel), and the total
area, calculated with the count of the first column, is written at the end of
the summary. Use the flag --area to set a different pixel area; if the area is
zero, the total area is not written.

By default, the columns are separated by commas. Use the flag --comma to set a
different separator.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var areaFlag float64
var commaFlag string

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&areaFlag, "area", 900, "")
	c.Flags().StringVar(&commaFlag, "comma", ",", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting CSV file or directory")
	}

	comma, n := utf8.DecodeRuneInString(commaFlag)
	if commaFlag == `\t` {
		comma, n = '\t', len(commaFlag)
	}
	if n != len(commaFlag) || comma == utf8.RuneError {
		return c.UsageError(fmt.Sprintf("invalid separator %q", commaFlag))
	}

	var files []string
	for _, a := range args {
		st, err := os.Stat(a)
		if err != nil {
			return err
		}
		if !st.IsDir() {
			files = append(files, a)
			continue
		}
		m, err := filepath.Glob(filepath.Join(a, "*.csv"))
		if err != nil {
			return err
		}
		if len(m) == 0 {
			fmt.Fprintf(c.Stderr(), "WARNING: directory %q: no CSV files\n", a)
		}
		files = append(files, m...)
	}

	for _, f := range files {
		name := strings.TrimSuffix(f, filepath.Ext(f))
		if err := describeFile(f, name, comma); err != nil {
			return err
		}
		fmt.Fprintf(c.Stderr(), "Saved %s.info\n", name)
	}
	return nil
}

func describeFile(file, name string, comma rune) (err error) {
	in, err := os.Open(file)
	if err != nil {
		return err
	}
	defer in.Close()

	cols, err := describe.ReadColumns(in, comma)
	if err != nil {
		return fmt.Errorf("on file %q: %v", file, err)
	}

	f, err := os.Create(name + ".info")
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := describe.Write(f, filepath.Base(name), cols, areaFlag); err != nil {
		return fmt.Errorf("on file %q: %v", name+".info", err)
	}
	return nil
}
