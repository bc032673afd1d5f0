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

// Package polygon implements the simple-polygon, extended-polygon
// (contour + holes), and polyline data model, plus the handful of
// operations (area, orientation, containment, construction helpers) they
// carry directly rather than delegating to boolop.
package polygon

import (
	"math"

	"github.com/tessel3d/slicecore/coord"
	"github.com/tessel3d/slicecore/predicate"
)

// Polygon is an ordered sequence of points, interpreted as closed: there is
// an implicit edge from the last point back to the first. A polygon needs
// at least 3 points to be meaningful.
type Polygon struct {
	Points []coord.Point2D
}

// New returns a Polygon over the given points (no copy).
func New(points []coord.Point2D) Polygon {
	return Polygon{Points: points}
}

// AddPoint appends a vertex.
func (p *Polygon) AddPoint(pt coord.Point2D) {
	p.Points = append(p.Points, pt)
}

// AreaMM2 returns the signed area in mm²: positive for a counter-clockwise
// polygon, negative for clockwise, computed via the shoelace formula over
// exact integer cross products.
func (p Polygon) AreaMM2() float64 {
	n := len(p.Points)
	if n < 3 {
		return 0
	}
	var sum int64
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		sum += int64(a.X)*int64(b.Y) - int64(b.X)*int64(a.Y)
	}
	// sum is in coord² units; convert to mm² (each axis divides by Scale).
	return float64(sum) / 2 / (coord.Scale * coord.Scale)
}

// IsCCW reports whether the polygon winds counter-clockwise (positive
// area). A degenerate polygon (fewer than 3 points, or exactly zero area)
// is reported as not CCW.
func (p Polygon) IsCCW() bool {
	return p.AreaMM2() > 0
}

// Reverse reverses point order in place, flipping orientation.
func (p *Polygon) Reverse() {
	pts := p.Points
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// MakeCCW reverses the polygon if it is currently clockwise.
func (p *Polygon) MakeCCW() {
	if p.AreaMM2() < 0 {
		p.Reverse()
	}
}

// MakeCW reverses the polygon if it is currently counter-clockwise.
func (p *Polygon) MakeCW() {
	if p.AreaMM2() > 0 {
		p.Reverse()
	}
}

// BoundingBox returns the polygon's axis-aligned bounding box.
func (p Polygon) BoundingBox() coord.BoundingBox2D {
	bb := coord.NewEmptyBoundingBox2D()
	for _, pt := range p.Points {
		bb = bb.Include(pt)
	}
	return bb
}

// Translate returns a copy of p shifted by (dx, dy) millimetres.
func (p Polygon) Translate(dxMM, dyMM float64) Polygon {
	d := coord.Point2DFromMM(dxMM, dyMM)
	out := make([]coord.Point2D, len(p.Points))
	for i, pt := range p.Points {
		out[i] = pt.Add(d)
	}
	return Polygon{Points: out}
}

// Scale returns a copy of p scaled about the origin by factor s.
func (p Polygon) Scale(s float64) Polygon {
	out := make([]coord.Point2D, len(p.Points))
	for i, pt := range p.Points {
		out[i] = coord.Point2D{
			X: coord.Coord(math.Round(float64(pt.X) * s)),
			Y: coord.Coord(math.Round(float64(pt.Y) * s)),
		}
	}
	return Polygon{Points: out}
}

// ContainsPoint reports whether pt lies inside the polygon, using the
// winding-number predicate.
func (p Polygon) ContainsPoint(pt coord.Point2D) bool {
	return predicate.PointInPolygon(pt, p.Points)
}

// Clone returns a deep copy of the polygon.
func (p Polygon) Clone() Polygon {
	out := make([]coord.Point2D, len(p.Points))
	copy(out, p.Points)
	return Polygon{Points: out}
}

// Rectangle returns a CCW rectangle polygon spanning
// [x0,y0]-[x0+w,y0+h] (millimetres).
func Rectangle(x0, y0, w, h float64) Polygon {
	return New([]coord.Point2D{
		coord.Point2DFromMM(x0, y0),
		coord.Point2DFromMM(x0+w, y0),
		coord.Point2DFromMM(x0+w, y0+h),
		coord.Point2DFromMM(x0, y0+h),
	})
}

// Circle returns a CCW polygonal approximation of a circle centered at
// (cx,cy) with the given radius, using segments edges.
func Circle(cx, cy, radius float64, segments int) Polygon {
	if segments < 3 {
		segments = 3
	}
	pts := make([]coord.Point2D, segments)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = coord.Point2DFromMM(cx+radius*math.Cos(theta), cy+radius*math.Sin(theta))
	}
	return New(pts)
}
