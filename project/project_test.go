// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project_test

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/rainfall-trends/pixval/project"
)

type setPath struct {
	set  project.Dataset
	path string
}

func TestProject(t *testing.T) {
	p := project.New()

	sets := []setPath{
		{project.Images, "gpm/monthly"},
		{project.Points, "stations.shp"},
		{project.Legend, "mapbiomas-legend.tab"},
	}

	for _, s := range sets {
		p.Add(s.set, s.path)
	}
	testProject(t, p, sets)

	name := filepath.Join(t.TempDir(), "project.tab")
	p.SetName(name)
	if err := p.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	np, err := project.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	testProject(t, np, sets)

	if prev := np.Add(project.Legend, ""); prev != "mapbiomas-legend.tab" {
		t.Errorf("add: got previous %q, want %q", prev, "mapbiomas-legend.tab")
	}
	if np.Path(project.Legend) != "" {
		t.Errorf("add: legend not removed")
	}
}

func testProject(t testing.TB, p *project.Project, sets []setPath) {
	t.Helper()

	for _, s := range sets {
		if path := p.Path(s.set); path != s.path {
			t.Errorf("set %s: got path %q, want %q", s.set, path, s.path)
		}
	}
	datasets := make([]project.Dataset, 0, len(sets))
	for _, v := range sets {
		datasets = append(datasets, v.set)
	}
	slices.Sort(datasets)

	if ls := p.Sets(); !reflect.DeepEqual(ls, datasets) {
		t.Errorf("sets: got %v, want %v", ls, datasets)
	}
}

func TestProjectFiles(t *testing.T) {
	dir := t.TempDir()
	lgName := filepath.Join(dir, "legend.tab")
	if err := os.WriteFile(lgName, []byte("key\tlabel\n3\tForest formation\n15\tPasture\n"), 0o644); err != nil {
		t.Fatalf("unable to write legend: %v", err)
	}
	ptName := filepath.Join(dir, "stations.tab")
	if err := os.WriteFile(ptName, []byte("id\tlon\tlat\nA001\t-47.9\t-15.8\n"), 0o644); err != nil {
		t.Fatalf("unable to write points: %v", err)
	}

	p := project.New()
	p.SetName(filepath.Join(dir, "project.tab"))
	if _, err := p.ImageDir(); err == nil {
		t.Errorf("images: expecting error on undefined dataset")
	}

	p.Add(project.Images, dir)
	p.Add(project.Points, ptName)
	p.Add(project.Legend, lgName)

	if got, err := p.ImageDir(); err != nil || got != dir {
		t.Errorf("images: got %q, %v, want %q", got, err, dir)
	}
	if got, err := p.PointFile(); err != nil || got != ptName {
		t.Errorf("points: got %q, %v, want %q", got, err, ptName)
	}
	lg, err := p.Legend()
	if err != nil {
		t.Fatalf("unable to read legend: %v", err)
	}
	if got, want := lg.Keys(), []int{3, 15}; !reflect.DeepEqual(got, want) {
		t.Errorf("legend keys: got %v, want %v", got, want)
	}

	p.Add(project.Images, lgName)
	if _, err := p.ImageDir(); err == nil {
		t.Errorf("images: expecting error on a file")
	}
}
