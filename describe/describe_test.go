// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package describe_test

import (
	"bytes"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/rainfall-trends/pixval/describe"
)

const data = `AW3D30,NASADEM
1,10
2,nan
3,
4,30
`

func TestReadColumns(t *testing.T) {
	cols, err := describe.ReadColumns(strings.NewReader(data), ',')
	if err != nil {
		t.Fatalf("unable to read data: %v", err)
	}
	want := []describe.Column{
		{Name: "AW3D30", Values: []float64{1, 2, 3, 4}},
		{Name: "NASADEM", Values: []float64{10, 30}},
	}
	if !reflect.DeepEqual(cols, want) {
		t.Errorf("got %v, want %v", cols, want)
	}

	if _, err := describe.ReadColumns(strings.NewReader("a,b\n1,x\n"), ','); err == nil {
		t.Errorf("expecting error on non-numeric value")
	}
}

func TestDescribe(t *testing.T) {
	tests := map[string]struct {
		vals []float64
		want describe.Summary
	}{
		"four": {
			vals: []float64{4, 1, 3, 2},
			want: describe.Summary{
				Count: 4,
				Mean:  2.5,
				Std:   math.Sqrt(5.0 / 3.0),
				Min:   1,
				Q25:   1.75,
				Q50:   2.5,
				Q75:   3.25,
				Max:   4,
			},
		},
		"two": {
			vals: []float64{30, 10},
			want: describe.Summary{
				Count: 2,
				Mean:  20,
				Std:   math.Sqrt(200),
				Min:   10,
				Q25:   15,
				Q50:   20,
				Q75:   25,
				Max:   30,
			},
		},
	}

	for name, test := range tests {
		got := describe.Describe(test.vals)
		if got.Count != test.want.Count {
			t.Errorf("%s: count: got %d, want %d", name, got.Count, test.want.Count)
		}
		g := []float64{got.Mean, got.Std, got.Min, got.Q25, got.Q50, got.Q75, got.Max}
		w := []float64{test.want.Mean, test.want.Std, test.want.Min, test.want.Q25, test.want.Q50, test.want.Q75, test.want.Max}
		for i := range g {
			if math.Abs(g[i]-w[i]) > 1e-9 {
				t.Errorf("%s: stat %d: got %.6f, want %.6f", name, i, g[i], w[i])
			}
		}
	}

	one := describe.Describe([]float64{7})
	if one.Count != 1 || one.Mean != 7 || !math.IsNaN(one.Std) {
		t.Errorf("single value: got %+v", one)
	}
	empty := describe.Describe(nil)
	if empty.Count != 0 || !math.IsNaN(empty.Mean) {
		t.Errorf("empty: got %+v", empty)
	}
}

func TestWrite(t *testing.T) {
	cols, err := describe.ReadColumns(strings.NewReader(data), ',')
	if err != nil {
		t.Fatalf("unable to read data: %v", err)
	}

	var buf bytes.Buffer
	if err := describe.Write(&buf, "cerrado", cols, 900); err != nil {
		t.Fatalf("unable to write data: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "cerrado\n\n") {
		t.Errorf("output %q: want name on first line", out)
	}
	for _, want := range []string{"AW3D30", "NASADEM", "1.29099", "14.14214", "3.25000", "Area = 3600\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output:\n%s\nwant %q", out, want)
		}
	}
}
