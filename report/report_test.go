// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rainfall-trends/pixval/report"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := report.Logger(&buf, "warn")

	l.Info().Msg("opening image")
	if buf.Len() != 0 {
		t.Errorf("info message written at warn level: %q", buf.String())
	}

	l.Warn().Str("file", "gpm.tif").Msg("skipping image")
	got := buf.String()
	for _, want := range []string{"WRN", "skipping image", "file=gpm.tif"} {
		if !strings.Contains(got, want) {
			t.Errorf("log %q: want %q", got, want)
		}
	}
}

func TestBar(t *testing.T) {
	var buf bytes.Buffer
	bar := report.Bar(&buf, 4, "images")
	for i := 0; i < 4; i++ {
		bar.Add(1)
	}
	if !strings.Contains(buf.String(), "images") {
		t.Errorf("bar %q: want description %q", buf.String(), "images")
	}
}
