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

package polygon

import (
	"math"

	"github.com/tessel3d/slicecore/coord"
)

// Polyline is an ordered sequence of points interpreted as open: unlike
// Polygon, there is no implicit closing edge from the last point to the
// first.
type Polyline struct {
	Points []coord.Point2D
}

// NewPolyline returns a Polyline over the given points (no copy).
func NewPolyline(points []coord.Point2D) Polyline {
	return Polyline{Points: points}
}

// Start returns the polyline's first point.
func (p Polyline) Start() coord.Point2D { return p.Points[0] }

// End returns the polyline's last point.
func (p Polyline) End() coord.Point2D { return p.Points[len(p.Points)-1] }

// Reverse reverses point order in place.
func (p *Polyline) Reverse() {
	pts := p.Points
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// LengthMM returns the total length of the polyline's segments.
func (p Polyline) LengthMM() float64 {
	total := 0.0
	for i := 1; i < len(p.Points); i++ {
		a, b := p.Points[i-1], p.Points[i]
		total += math.Hypot(a.X.ToMM()-b.X.ToMM(), a.Y.ToMM()-b.Y.ToMM())
	}
	return total
}

// ToPolygon converts the polyline to a closed Polygon, dropping the final
// point if it duplicates the first (the caller is expected to have already
// decided the polyline is in fact closed).
func (p Polyline) ToPolygon() Polygon {
	pts := p.Points
	if len(pts) >= 2 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	out := make([]coord.Point2D, len(pts))
	copy(out, pts)
	return Polygon{Points: out}
}

// IsClosed reports whether the polyline's endpoints coincide within the
// given coord-unit tolerance (compared as squared distance).
func (p Polyline) IsClosed(toleranceSq int64) bool {
	if len(p.Points) < 3 {
		return false
	}
	return p.Start().DistSq(p.End()) <= toleranceSq
}
