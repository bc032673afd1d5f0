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

package predicate

import "github.com/tessel3d/slicecore/coord"

// PointInPolygon reports whether p lies inside the closed polygon described
// by vertices (implicit edge from the last point back to the first), using
// a winding-number count. Each crossing is confirmed with the exact
// orientation predicate so that points lying exactly on an edge are
// classified consistently rather than by floating-point chance.
func PointInPolygon(p coord.Point2D, vertices []coord.Point2D) bool {
	n := len(vertices)
	if n < 3 {
		return false
	}
	winding := 0
	for i := 0; i < n; i++ {
		a := vertices[i]
		b := vertices[(i+1)%n]
		if a.Y <= p.Y {
			if b.Y > p.Y && Orient(a, b, p) == CounterClockwise {
				winding++
			}
		} else {
			if b.Y <= p.Y && Orient(a, b, p) == Clockwise {
				winding--
			}
		}
	}
	return winding != 0
}

// PointInPolygonRaycast is a raycast-based cross-validation variant of
// PointInPolygon, counting crossings of a horizontal ray cast from p to
// +infinity in X. Used in tests to cross-check the winding-number result.
func PointInPolygonRaycast(p coord.Point2D, vertices []coord.Point2D) bool {
	n := len(vertices)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := vertices[j], vertices[i]
		crosses := (a.Y > p.Y) != (b.Y > p.Y)
		if !crosses {
			continue
		}
		// x intercept of edge a-b at height p.Y
		xIntercept := float64(a.X) + float64(b.X-a.X)*float64(p.Y-a.Y)/float64(b.Y-a.Y)
		if float64(p.X) < xIntercept {
			inside = !inside
		}
	}
	return inside
}

// OnBoundary reports whether p lies exactly on an edge of the polygon.
func OnBoundary(p coord.Point2D, vertices []coord.Point2D) bool {
	n := len(vertices)
	for i := 0; i < n; i++ {
		a := vertices[i]
		b := vertices[(i+1)%n]
		if Orient(a, b, p) == Collinear && onSegment(a, b, p) {
			return true
		}
	}
	return false
}
