// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package legend_test

import (
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rainfall-trends/pixval/legend"
)

func writeFile(t testing.TB, data string) string {
	t.Helper()

	name := filepath.Join(t.TempDir(), "legend.tab")
	if err := os.WriteFile(name, []byte(data), 0o644); err != nil {
		t.Fatalf("unable to write file: %v", err)
	}
	return name
}

func TestRead(t *testing.T) {
	data := `# mapbiomas classes
key	label	color	comment
15	Pasture	255, 215, 143	
3	Forest formation	0,100,0	natural
4	Savanna formation		
`
	lg, err := legend.Read(writeFile(t, data))
	if err != nil {
		t.Fatalf("unable to read legend: %v", err)
	}

	if got, want := lg.Keys(), []int{3, 4, 15}; !reflect.DeepEqual(got, want) {
		t.Errorf("keys: got %v, want %v", got, want)
	}
	if got := lg.Label(4); got != "Savanna formation" {
		t.Errorf("label 4: got %q, want %q", got, "Savanna formation")
	}
	if got := lg.Label(33); got != "33" {
		t.Errorf("undefined label: got %q, want %q", got, "33")
	}
	if !lg.Has(15) || lg.Has(33) {
		t.Errorf("has: unexpected classes")
	}

	c, ok := lg.Color(15)
	if !ok {
		t.Fatalf("color 15: undefined")
	}
	if want := (color.RGBA{255, 215, 143, 255}); c != want {
		t.Errorf("color 15: got %v, want %v", c, want)
	}
	if _, ok := lg.Color(4); ok {
		t.Errorf("color 4: unexpected color")
	}

	lg.SetColor(4, color.RGBA{0, 255, 0, 255})
	if _, ok := lg.Color(4); !ok {
		t.Errorf("color 4: color not set")
	}
}

func TestReadErrors(t *testing.T) {
	tests := map[string]string{
		"no label":    "key\tcolor\n3\t0,0,0\n",
		"bad key":     "key\tlabel\nthree\tForest\n",
		"empty label": "key\tlabel\n3\t\n",
		"bad color":   "key\tlabel\tcolor\n3\tForest\t0,300,0\n",
		"short color": "key\tlabel\tcolor\n3\tForest\t0,100\n",
		"no classes":  "key\tlabel\n",
	}
	for name, data := range tests {
		if _, err := legend.Read(writeFile(t, data)); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}
