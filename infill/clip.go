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

package infill

import (
	"math"
	"sort"

	"github.com/tessel3d/slicecore/coord"
	"github.com/tessel3d/slicecore/polygon"
	"github.com/tessel3d/slicecore/predicate"
)

// clipSegment intersects segment p-q with every edge of region's contour
// and holes, sorts the crossing parameters along p-q together with the
// segment's own endpoints, and keeps each consecutive sub-interval whose
// midpoint lies inside the region.
func clipSegment(p, q coord.Point2D, region polygon.ExPolygon) []polygon.Polyline {
	ts := []float64{0, 1}
	for _, poly := range region.AllPolygons() {
		n := len(poly.Points)
		for i := 0; i < n; i++ {
			a, b := poly.Points[i], poly.Points[(i+1)%n]
			res := predicate.SegmentIntersect(p, q, a, b)
			switch res.Kind {
			case predicate.PointIntersect:
				ts = append(ts, paramOf(p, q, res.Point))
			case predicate.CollinearOverlap:
				ts = append(ts, paramOf(p, q, res.OverlapLo), paramOf(p, q, res.OverlapHi))
			}
		}
	}
	sort.Float64s(ts)
	ts = dedupeSorted(ts, 1e-9)

	var out []polygon.Polyline
	for i := 0; i+1 < len(ts); i++ {
		t0, t1 := ts[i], ts[i+1]
		if t1-t0 < 1e-9 {
			continue
		}
		mid := lerp(p, q, (t0+t1)/2)
		if !region.ContainsPoint(mid) {
			continue
		}
		a, b := lerp(p, q, t0), lerp(p, q, t1)
		out = append(out, polygon.NewPolyline([]coord.Point2D{a, b}))
	}
	return out
}

// paramOf returns t such that p + t*(q-p) == pt, projecting onto whichever
// axis p-q spans more widely to avoid dividing by a near-zero extent.
func paramOf(p, q, pt coord.Point2D) float64 {
	dx := q.X.ToMM() - p.X.ToMM()
	dy := q.Y.ToMM() - p.Y.ToMM()
	if math.Abs(dx) >= math.Abs(dy) {
		if dx == 0 {
			return 0
		}
		return (pt.X.ToMM() - p.X.ToMM()) / dx
	}
	if dy == 0 {
		return 0
	}
	return (pt.Y.ToMM() - p.Y.ToMM()) / dy
}

func lerp(p, q coord.Point2D, t float64) coord.Point2D {
	x := p.X.ToMM() + t*(q.X.ToMM()-p.X.ToMM())
	y := p.Y.ToMM() + t*(q.Y.ToMM()-p.Y.ToMM())
	return coord.Point2DFromMM(x, y)
}

func dedupeSorted(ts []float64, eps float64) []float64 {
	if len(ts) == 0 {
		return ts
	}
	out := ts[:1]
	for _, t := range ts[1:] {
		if t-out[len(out)-1] > eps {
			out = append(out, t)
		}
	}
	return out
}
