// slicecore - a 3D-printing slicer core
// Copyright (C) 2026  slicecore contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package infill computes the infill region of a layer and generates
// pattern lines clipped to it.
package infill

import (
	"github.com/tessel3d/slicecore/boolop"
	"github.com/tessel3d/slicecore/polygon"
)

// Region returns the area that should be filled: ex's contour inset by
// wallCount*wallThicknessMM, minus the same inset applied outward from
// every hole (so the solid walls are excluded from the infill pattern).
// ok is false if the contour's inset collapses entirely (e.g. the part is
// thinner than the wall stack).
func Region(ex polygon.ExPolygon, wallCount int, wallThicknessMM float64, cfg boolop.Config) (polygon.ExPolygon, bool) {
	inset := float64(wallCount) * wallThicknessMM

	contours := boolop.Offset([]polygon.Polygon{ex.Contour}, -inset, cfg)
	if len(contours) == 0 {
		return polygon.ExPolygon{}, false
	}
	holes := boolop.Offset(ex.Holes, -inset, cfg)
	return polygon.NewExPolygon(contours[0], holes...), true
}
