// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package accum_test

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/rainfall-trends/pixval/accum"
	"github.com/rainfall-trends/pixval/sampler"
)

type memBand struct {
	cols, rows int
	bw, bh     int
	vals       []float64
}

func (m *memBand) Size() (cols, rows int) { return m.cols, m.rows }
func (m *memBand) BlockSize() (w, h int)  { return m.bw, m.bh }

func (m *memBand) ReadBlock(x0, y0, w, h int, buf []float64) error {
	if x0+w > m.cols || y0+h > m.rows {
		return errors.New("window outside band")
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf[y*w+x] = m.vals[(y0+y)*m.cols+x0+x]
		}
	}
	return nil
}

func TestParseName(t *testing.T) {
	tests := map[string]struct {
		year, month int
		ok          bool
	}{
		"gpm_2019_01_total.accum.tif":          {2019, 1, true},
		"data/gpm_2020_12_total.accum.tif":     {2020, 12, true},
		"gpm_2020_13_total.accum.tif":          {0, 0, false},
		"gpm_2020_total.accum.tif":             {0, 0, false},
		"other_2019_01_total.accum.tif":        {0, 0, false},
		"gpm_2019_01_total.accum_stats.csv":    {0, 0, false},
		"gpm_year_01_total.accum.tif":          {0, 0, false},
		"gpm_2019_01_extra_05_total.accum.tif": {0, 0, false},
	}
	for name, want := range tests {
		y, m, ok := accum.ParseName("gpm", name)
		if ok != want.ok {
			t.Errorf("%s: got %v, want %v", name, ok, want.ok)
			continue
		}
		if y != want.year || m != want.month {
			t.Errorf("%s: got %d-%d, want %d-%d", name, y, m, want.year, want.month)
		}
	}
}

func TestParseStat(t *testing.T) {
	tests := map[string]accum.Stat{
		"min":  accum.Min,
		"MAX":  accum.Max,
		"mean": accum.Mean,
		"1":    accum.Min,
		"3":    accum.Mean,
	}
	for s, want := range tests {
		st, err := accum.ParseStat(s)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", s, err)
			continue
		}
		if st != want {
			t.Errorf("%s: got %v, want %v", s, st, want)
		}
	}

	if _, err := accum.ParseStat("median"); err == nil {
		t.Errorf("median: expecting error")
	}
}

func TestCompute(t *testing.T) {
	// 5x3 band with 2x2 blocks,
	// so border blocks are partial.
	m := &memBand{
		cols: 5,
		rows: 3,
		bw:   2,
		bh:   2,
		vals: []float64{
			10, 20, -9999, 40, 50,
			-9999, 70, 80, 90, 100,
			110, -9999, -9999, 140, 5,
		},
	}
	band := sampler.Band{Index: 1, Type: sampler.Float32, NoData: -9999, HasNoData: true}

	var valid []float64
	for _, v := range m.vals {
		if v != -9999 {
			valid = append(valid, v)
		}
	}
	var sum float64
	for _, v := range valid {
		sum += v
	}

	tests := map[accum.Stat]float64{
		accum.Min:  5,
		accum.Max:  140,
		accum.Mean: sum / float64(len(valid)),
	}
	for st, want := range tests {
		got, ok, err := accum.Compute(m, band, st)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", st, err)
		}
		if !ok {
			t.Fatalf("%v: expecting a value", st)
		}
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("%v: got %.6f, want %.6f", st, got, want)
		}
	}
}

func TestComputeNoData(t *testing.T) {
	m := &memBand{
		cols: 2,
		rows: 2,
		vals: []float64{math.NaN(), math.NaN(), math.NaN(), math.NaN()},
	}
	band := sampler.Band{Index: 1, Type: sampler.Float64, NoData: math.NaN(), HasNoData: true}

	_, ok, err := accum.Compute(m, band, accum.Mean)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Errorf("expecting no value on a nodata band")
	}
}

func TestTable(t *testing.T) {
	tab := accum.NewTable()
	tab.Set(2019, 1, 12.5)
	tab.Set(2021, 1, 3)
	tab.Set(2019, 12, 0.25)

	if y0, y1 := tab.Years(); y0 != 2019 || y1 != 2021 {
		t.Errorf("years: got %d-%d, want %d-%d", y0, y1, 2019, 2021)
	}
	if _, ok := tab.Get(2020, 1); ok {
		t.Errorf("get 2020-01: expecting missing value")
	}

	var buf bytes.Buffer
	if err := tab.WriteCSV(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `months,2019,2020,2021
1,12.5,,3
2,,,
3,,,
4,,,
5,,,
6,,,
7,,,
8,,,
9,,,
10,,,
11,,,
12,0.25,,
`
	if got := buf.String(); got != want {
		t.Errorf("table: got\n%s\nwant\n%s", got, want)
	}
}

func TestEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	if err := accum.NewTable().WriteCSV(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "months\n1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n11\n12\n"
	if got := buf.String(); got != want {
		t.Errorf("table: got %q, want %q", got, want)
	}
}
