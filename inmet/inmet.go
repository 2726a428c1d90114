// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package inmet implements reading of the weather station files
// of the INMET (Instituto Nacional de Meteorologia, Brazil),
// and writing them as a table of stations
// and a table of observations.
package inmet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// StationHeader is the header of the stations table.
var StationHeader = []string{
	"source", "source_ano",
	"regiao", "uf",
	"estacao", "code_wmo",
	"lat", "long", "alt",
	"data",
}

// TableHeader is the header of the observations table.
var TableHeader = []string{
	"source", "code_wmo",
	"data", "hora",
	"prep_mm",
	"pres_mb", "pres_max_mb", "pres_min_mb",
	"rad_wm2",
	"temp_bulbo_c", "temp_pont_orv_c", "temp_max_c", "temp_min_c",
	"temp_orv_max_c", "temp_orv_min_c",
	"umid_max_p", "umid_min_p", "umid_p",
	"vent_dir_g", "vent_max_ms", "vent_vel_ms",
}

// number of station fields in the file
var metaFields = len(StationHeader) - 2

// number of observation fields in the file
var obsFields = len(TableHeader) - 2

// A File is a station file.
type File struct {
	// Source is the file name
	// without extension.
	Source string

	// Year of the data,
	// taken from the last date of the file name.
	Year string

	// Station values,
	// from "regiao" to "data".
	Station []string

	// Observations,
	// from "data" to "vent_vel_ms".
	Rows [][]string
}

// Code returns the WMO code of the station.
func (f *File) Code() string {
	return f.Station[3]
}

// Read reads an INMET station file.
// Name is the file name,
// used to set the source and the year.
//
// An INMET file is a semicolon delimited file.
// The first eight lines
// are the station values
// (region, state, name, WMO code,
// latitude, longitude, altitude, and foundation date)
// in the form "<key>:;<value>".
// Then there is a header line,
// followed by the hourly observations.
// Decimal commas are replaced by points.
//
// Here are the first lines of a file:
//
//	REGIAO:;CO
//	UF:;DF
//	ESTACAO:;BRASILIA
//	CODIGO (WMO):;A001
//	LATITUDE:;-15,78944444
//	LONGITUDE:;-47,92583332
//	ALTITUDE:;1160,96
//	DATA DE FUNDACAO:;07/05/00
//	Data;Hora UTC;PRECIPITACAO TOTAL, HORARIO (mm);...
//	2019/01/01;0000 UTC;0;888,2;888,2;887,7;...
func Read(name string, r io.Reader) (*File, error) {
	source := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	f := &File{
		Source: source,
		Year:   yearFromName(source),
	}

	in := csv.NewReader(r)
	in.Comma = ';'
	in.FieldsPerRecord = -1
	in.LazyQuotes = true

	for i := 0; i < metaFields; i++ {
		row, err := in.Read()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("got %d station lines, want %d", i, metaFields)
		}
		if err != nil {
			return nil, fmt.Errorf("station line %d: %v", i+1, err)
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("station line %d: expecting key and value", i+1)
		}
		f.Station = append(f.Station, decimalPoint(row[1]))
	}

	// header
	if _, err := in.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("expecting header line")
		}
		return nil, fmt.Errorf("header: %v", err)
	}

	for {
		row, err := in.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("observations: %v", err)
		}

		vals := make([]string, obsFields)
		for i, v := range row {
			if i >= obsFields {
				break
			}
			vals[i] = decimalPoint(v)
		}
		f.Rows = append(f.Rows, vals)
	}
	return f, nil
}

// ReadFile reads an INMET station file.
// If latin1 is true,
// the file is decoded from ISO-8859-1.
func ReadFile(name string, latin1 bool) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if latin1 {
		r = charmap.ISO8859_1.NewDecoder().Reader(f)
	}

	st, err := Read(name, r)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return st, nil
}

func decimalPoint(v string) string {
	return strings.ReplaceAll(strings.TrimSpace(v), ",", ".")
}

// yearFromName returns the year
// from a name of the form
// "INMET_CO_DF_A001_BRASILIA_01-01-2019_A_31-12-2019".
func yearFromName(name string) string {
	f := strings.Split(name, "_")
	d := strings.Split(f[len(f)-1], "-")
	return d[len(d)-1]
}

// A Writer writes station files
// as a table of stations
// and a table of observations.
type Writer struct {
	stations *csv.Writer
	table    *csv.Writer
}

// NewWriter returns a writer
// and writes the headers of both tables.
// Tables are semicolon delimited.
func NewWriter(stations, table io.Writer) (*Writer, error) {
	w := &Writer{
		stations: csv.NewWriter(stations),
		table:    csv.NewWriter(table),
	}
	w.stations.Comma = ';'
	w.table.Comma = ';'

	if err := w.stations.Write(StationHeader); err != nil {
		return nil, fmt.Errorf("while writing header: %v", err)
	}
	if err := w.table.Write(TableHeader); err != nil {
		return nil, fmt.Errorf("while writing header: %v", err)
	}
	return w, nil
}

// Write adds a station file to the tables.
func (w *Writer) Write(f *File) error {
	row := append([]string{f.Source, f.Year}, f.Station...)
	if err := w.stations.Write(row); err != nil {
		return fmt.Errorf("station %q: %v", f.Source, err)
	}

	code := f.Code()
	for _, r := range f.Rows {
		row := append([]string{f.Source, code}, r...)
		if err := w.table.Write(row); err != nil {
			return fmt.Errorf("station %q: %v", f.Source, err)
		}
	}
	return nil
}

// Flush writes any buffered data.
func (w *Writer) Flush() error {
	w.stations.Flush()
	if err := w.stations.Error(); err != nil {
		return fmt.Errorf("while writing stations: %v", err)
	}
	w.table.Flush()
	if err := w.table.Error(); err != nil {
		return fmt.Errorf("while writing observations: %v", err)
	}
	return nil
}
