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

// IntersectKind classifies the result of SegmentIntersect.
type IntersectKind int

const (
	// NoIntersect means the segments share no point.
	NoIntersect IntersectKind = iota
	// PointIntersect means the segments cross (or touch) at exactly one point.
	PointIntersect
	// CollinearOverlap means the segments are collinear and overlap along a
	// sub-segment.
	CollinearOverlap
)

// SegmentIntersection is the result of intersecting two segments.
type SegmentIntersection struct {
	Kind       IntersectKind
	Point      coord.Point2D // valid when Kind == PointIntersect
	OverlapLo  coord.Point2D // valid when Kind == CollinearOverlap
	OverlapHi  coord.Point2D
}

// SegmentIntersect intersects segment p1q1 with segment p2q2. Orientation
// and collinearity are decided first by the exact integer predicate;
// a crossing point is computed only once the segments are classified as
// genuinely crossing, via a single rational division rounded to the grid.
func SegmentIntersect(p1, q1, p2, q2 coord.Point2D) SegmentIntersection {
	o1 := Orient(p1, q1, p2)
	o2 := Orient(p1, q1, q2)
	o3 := Orient(p2, q2, p1)
	o4 := Orient(p2, q2, q1)

	if o1 != o2 && o3 != o4 {
		pt, ok := intersectPoint(p1, q1, p2, q2)
		if ok {
			return SegmentIntersection{Kind: PointIntersect, Point: pt}
		}
	}

	// Collinear special cases: a point of one segment lies on the other.
	if o1 == Collinear && onSegment(p1, q1, p2) {
		return pointOrOverlap(p1, q1, p2, q2)
	}
	if o2 == Collinear && onSegment(p1, q1, q2) {
		return pointOrOverlap(p1, q1, p2, q2)
	}
	if o3 == Collinear && onSegment(p2, q2, p1) {
		return pointOrOverlap(p1, q1, p2, q2)
	}
	if o4 == Collinear && onSegment(p2, q2, q1) {
		return pointOrOverlap(p1, q1, p2, q2)
	}

	return SegmentIntersection{Kind: NoIntersect}
}

// onSegment reports whether q, known collinear with segment p-r, lies
// within the bounding box of p and r (i.e. actually on the segment).
func onSegment(p, r, q coord.Point2D) bool {
	return q.X >= min2(p.X, r.X) && q.X <= max2(p.X, r.X) &&
		q.Y >= min2(p.Y, r.Y) && q.Y <= max2(p.Y, r.Y)
}

func min2(a, b coord.Coord) coord.Coord {
	if a < b {
		return a
	}
	return b
}

func max2(a, b coord.Coord) coord.Coord {
	if a > b {
		return a
	}
	return b
}

// pointOrOverlap handles the case where the segments are collinear (or one
// endpoint of one lies exactly on the other), determining whether the
// shared region is a single point or a genuine overlapping interval by
// projecting onto the axis of larger extent.
func pointOrOverlap(p1, q1, p2, q2 coord.Point2D) SegmentIntersection {
	if Orient(p1, q1, p2) != Collinear || Orient(p1, q1, q2) != Collinear {
		// Only a single shared endpoint touches the other segment; find it.
		for _, cand := range [4]coord.Point2D{p1, q1, p2, q2} {
			if onSegment(p1, q1, cand) && onSegment(p2, q2, cand) {
				return SegmentIntersection{Kind: PointIntersect, Point: cand}
			}
		}
		return SegmentIntersection{Kind: NoIntersect}
	}

	// Fully collinear: project onto the axis of larger extent and intersect
	// the two 1D intervals.
	useX := absCoord(q1.X-p1.X) >= absCoord(q1.Y-p1.Y)

	type span struct {
		lo, hi coord.Point2D
	}
	order := func(a, b coord.Point2D) span {
		var av, bv coord.Coord
		if useX {
			av, bv = a.X, b.X
		} else {
			av, bv = a.Y, b.Y
		}
		if av <= bv {
			return span{a, b}
		}
		return span{b, a}
	}
	s1 := order(p1, q1)
	s2 := order(p2, q2)

	axisVal := func(p coord.Point2D) coord.Coord {
		if useX {
			return p.X
		}
		return p.Y
	}

	loPt := s1.lo
	if axisVal(s2.lo) > axisVal(loPt) {
		loPt = s2.lo
	}
	hiPt := s1.hi
	if axisVal(s2.hi) < axisVal(hiPt) {
		hiPt = s2.hi
	}

	if axisVal(loPt) > axisVal(hiPt) {
		return SegmentIntersection{Kind: NoIntersect}
	}
	if loPt == hiPt {
		return SegmentIntersection{Kind: PointIntersect, Point: loPt}
	}
	return SegmentIntersection{Kind: CollinearOverlap, OverlapLo: loPt, OverlapHi: hiPt}
}

func absCoord(c coord.Coord) coord.Coord {
	if c < 0 {
		return -c
	}
	return c
}

// intersectPoint computes the crossing point of two segments already known
// to properly cross (strictly straddling each other), reducing the
// parametric form to a single rational division rounded to the coord grid.
func intersectPoint(p1, q1, p2, q2 coord.Point2D) (coord.Point2D, bool) {
	d1x, d1y := int64(q1.X-p1.X), int64(q1.Y-p1.Y)
	d2x, d2y := int64(q2.X-p2.X), int64(q2.Y-p2.Y)
	denom := d1x*d2y - d1y*d2x
	if denom == 0 {
		return coord.Point2D{}, false
	}
	dpx, dpy := int64(p2.X-p1.X), int64(p2.Y-p1.Y)
	t := float64(dpx*d2y-dpy*d2x) / float64(denom)
	x := float64(p1.X) + t*float64(d1x)
	y := float64(p1.Y) + t*float64(d1y)
	return coord.Point2D{X: roundCoord(x), Y: roundCoord(y)}, true
}

func roundCoord(v float64) coord.Coord {
	if v >= 0 {
		return coord.Coord(v + 0.5)
	}
	return coord.Coord(v - 0.5)
}

// PointToSegmentDistSq returns the squared distance from p to the segment
// a-b, projecting p onto the segment's line and clamping the parameter to
// [0,1] so the foot of the perpendicular never falls outside the segment.
func PointToSegmentDistSq(p, a, b coord.Point2D) int64 {
	abx, aby := int64(b.X-a.X), int64(b.Y-a.Y)
	apx, apy := int64(p.X-a.X), int64(p.Y-a.Y)
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return apx*apx + apy*apy
	}
	t := float64(apx*abx+apy*aby) / float64(lenSq)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	footX := float64(a.X) + t*float64(abx)
	footY := float64(a.Y) + t*float64(aby)
	dx := float64(p.X) - footX
	dy := float64(p.Y) - footY
	return int64(dx*dx + dy*dy)
}
