// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package points

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
)

// FromWKB returns a point
// from a geometry encoded as WKB.
// The geometry must be a POINT.
func FromWKB(id string, b []byte) (Point, error) {
	g, err := wkb.Unmarshal(b)
	if err != nil {
		return Point{}, err
	}
	p, ok := g.(orb.Point)
	if !ok {
		return Point{}, fmt.Errorf("geometry is a %s, want a Point", g.GeoJSONType())
	}
	return Point{ID: id, X: p.X(), Y: p.Y()}, nil
}
