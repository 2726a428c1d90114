// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package points_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/rainfall-trends/pixval/points"
)

func TestPoints(t *testing.T) {
	want := []points.Point{
		{ID: "A001", X: -47.925833, Y: -15.789444},
		{ID: "A002", X: -49.220222, Y: -16.642841},
		{ID: "A024", X: -50.3667, Y: -13.1667},
	}

	var buf bytes.Buffer
	if err := points.WriteTSV(&buf, want); err != nil {
		t.Fatalf("unable to write data: %v", err)
	}

	got, err := points.ReadTSV(&buf)
	if err != nil {
		t.Logf("input data:\n%s\n", buf.String())
		t.Fatalf("unable to read data: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReadAlias(t *testing.T) {
	data := `# stations
ID	Name	Lat	Lon
83377	Brasilia	-15.79	-47.93
83423	Goiania	-16.64	-49.22
`
	got, err := points.ReadTSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unable to read data: %v", err)
	}
	want := []points.Point{
		{ID: "83377", X: -47.93, Y: -15.79},
		{ID: "83423", X: -49.22, Y: -16.64},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReadErrors(t *testing.T) {
	tests := map[string]string{
		"no id":     "x\ty\n1\t2\n",
		"no x":      "id\ty\nA\t2\n",
		"bad value": "id\tx\ty\nA\tone\t2\n",
		"empty id":  "id\tx\ty\n\t1\t2\n",
		"no points": "id\tx\ty\n",
	}
	for name, data := range tests {
		if _, err := points.ReadTSV(strings.NewReader(data)); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func TestFromWKB(t *testing.T) {
	b, err := wkb.Marshal(orb.Point{-47.925833, -15.789444})
	if err != nil {
		t.Fatalf("unable to encode point: %v", err)
	}
	got, err := points.FromWKB("A001", b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := points.Point{ID: "A001", X: -47.925833, Y: -15.789444}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	line, err := wkb.Marshal(orb.LineString{{0, 0}, {1, 1}})
	if err != nil {
		t.Fatalf("unable to encode line: %v", err)
	}
	if _, err := points.FromWKB("L1", line); err == nil {
		t.Errorf("line: expecting error")
	}
	if _, err := points.FromWKB("E1", []byte{1, 2}); err == nil {
		t.Errorf("invalid data: expecting error")
	}
}
