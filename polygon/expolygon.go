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

// ExPolygon is a polygon with holes: one counter-clockwise contour plus
// zero or more clockwise holes. Constructors enforce the orientation
// invariants; validators below may assume them.
type ExPolygon struct {
	Contour Polygon
	Holes   []Polygon
}

// NewExPolygon builds an ExPolygon from a contour and holes, normalizing
// their orientation (contour CCW, holes CW) regardless of how the inputs
// were wound.
func NewExPolygon(contour Polygon, holes ...Polygon) ExPolygon {
	contour.MakeCCW()
	fixedHoles := make([]Polygon, len(holes))
	for i, h := range holes {
		h.MakeCW()
		fixedHoles[i] = h
	}
	return ExPolygon{Contour: contour, Holes: fixedHoles}
}

// AreaMM2 returns the net area: the contour's area minus the (unsigned)
// area of every hole.
func (e ExPolygon) AreaMM2() float64 {
	area := e.Contour.AreaMM2()
	for _, h := range e.Holes {
		area += h.AreaMM2() // holes are CW so their signed area is negative
	}
	return area
}

// BoundingBox returns the contour's bounding box (holes are required to lie
// within it).
func (e ExPolygon) BoundingBox() coord.BoundingBox2D {
	return e.Contour.BoundingBox()
}

// ContainsPoint reports whether pt lies inside the contour and outside
// every hole.
func (e ExPolygon) ContainsPoint(pt coord.Point2D) bool {
	if !e.Contour.ContainsPoint(pt) {
		return false
	}
	for _, h := range e.Holes {
		if h.ContainsPoint(pt) {
			return false
		}
	}
	return true
}

// Valid reports whether the documented ExPolygon invariants hold: the
// contour is CCW, every hole is CW, and every hole's bounding box lies
// within the contour's.
func (e ExPolygon) Valid() bool {
	if !e.Contour.IsCCW() {
		return false
	}
	contourBB := e.Contour.BoundingBox()
	for _, h := range e.Holes {
		if h.IsCCW() {
			return false
		}
		hbb := h.BoundingBox()
		if !boxWithin(hbb, contourBB) {
			return false
		}
	}
	return true
}

func boxWithin(inner, outer coord.BoundingBox2D) bool {
	if inner.Empty() || outer.Empty() {
		return false
	}
	return inner.Min.X >= outer.Min.X && inner.Max.X <= outer.Max.X &&
		inner.Min.Y >= outer.Min.Y && inner.Max.Y <= outer.Max.Y
}

// Clone returns a deep copy.
func (e ExPolygon) Clone() ExPolygon {
	holes := make([]Polygon, len(e.Holes))
	for i, h := range e.Holes {
		holes[i] = h.Clone()
	}
	return ExPolygon{Contour: e.Contour.Clone(), Holes: holes}
}

// AllPolygons returns the contour followed by every hole, for callers that
// treat an ExPolygon as a flat polygon set (e.g. debug rendering).
func (e ExPolygon) AllPolygons() []Polygon {
	out := make([]Polygon, 0, 1+len(e.Holes))
	out = append(out, e.Contour)
	out = append(out, e.Holes...)
	return out
}

// ClassifyHoles groups a flat set of closed polygons (as produced by
// segment chaining, §4.7/§9 of the design) into ExPolygons using
// containment: a polygon that winds clockwise, or whose first vertex lies
// inside an odd number of larger polygons, becomes a hole (re-wound
// clockwise, on a copy) of the smallest contour containing it; every other
// polygon with non-zero area becomes a contour. This resolves spec Open Question (a) by choosing the
// containment-classification option instead of leaving every polygon
// holeless.
func ClassifyHoles(polys []Polygon) []ExPolygon {
	type ranked struct {
		poly Polygon
		area float64
	}
	var contours, holes []ranked
	for i, p := range polys {
		a := p.AreaMM2()
		depth := 0
		for j, q := range polys {
			if j != i && len(p.Points) > 0 && math.Abs(q.AreaMM2()) > math.Abs(a) && q.ContainsPoint(p.Points[0]) {
				depth++
			}
		}
		if a > 0 && depth%2 == 0 {
			contours = append(contours, ranked{p, a})
		} else if a != 0 {
			h := p.Clone()
			h.MakeCW()
			holes = append(holes, ranked{h, math.Abs(a)})
		}
	}

	result := make([]ExPolygon, len(contours))
	for i, c := range contours {
		result[i] = ExPolygon{Contour: c.poly}
	}

	for _, h := range holes {
		best := -1
		bestArea := 0.0
		var testPt coord.Point2D
		if len(h.poly.Points) > 0 {
			testPt = h.poly.Points[0]
		}
		for i, c := range contours {
			if c.poly.ContainsPoint(testPt) && (best == -1 || c.area < bestArea) {
				best = i
				bestArea = c.area
			}
		}
		if best >= 0 {
			result[best].Holes = append(result[best].Holes, h.poly)
		}
		// A hole with no enclosing contour is geometrically inconsistent
		// input (e.g. dirty chaining output); it is dropped rather than
		// emitted as a holeless negative-area contour.
	}
	return result
}
