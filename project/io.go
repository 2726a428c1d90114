// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"os"

	"github.com/rainfall-trends/pixval/legend"
)

// ImageDir returns the directory of the images
// as defined in a project.
func (p *Project) ImageDir() (string, error) {
	name := p.Path(Images)
	if name == "" {
		return "", fmt.Errorf("images not defined in project %q", p.name)
	}

	st, err := os.Stat(name)
	if err != nil {
		return "", err
	}
	if !st.IsDir() {
		return "", fmt.Errorf("on project %q: images %q: not a directory", p.name, name)
	}
	return name, nil
}

// PointFile returns the file of the sampling points
// as defined in a project.
func (p *Project) PointFile() (string, error) {
	name := p.Path(Points)
	if name == "" {
		return "", fmt.Errorf("points not defined in project %q", p.name)
	}
	if _, err := os.Stat(name); err != nil {
		return "", err
	}
	return name, nil
}

// Legend reads a legend file
// as defined in a project.
func (p *Project) Legend() (*legend.Legend, error) {
	name := p.Path(Legend)
	if name == "" {
		return nil, fmt.Errorf("legend not defined in project %q", p.name)
	}

	lg, err := legend.Read(name)
	if err != nil {
		return nil, err
	}
	return lg, nil
}
