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

package boolop

import (
	"math"

	"seehuhn.de/go/pdf/graphics"

	"github.com/tessel3d/slicecore/coord"
	"github.com/tessel3d/slicecore/polygon"
)

// minCollapsedAreaMM2 is the area below which an offset polygon is dropped
// by Offset and OffsetPolyline (and so by Open/Close), rather than retained
// as a degenerate sliver. Offset also drops a result whose winding is the
// reverse of its input's, the shape a shrink takes once it overshoots.
const minCollapsedAreaMM2 = 1e-6

// Offset grows (distanceMM > 0) or shrinks (distanceMM < 0) every polygon by
// distanceMM millimetres, joining corners per cfg.JoinType. This mirrors
// the stroke-outline corner join math, generalized from a device-space
// stroke half-width to a per-polygon morphological offset.
func Offset(polygons []polygon.Polygon, distanceMM float64, cfg Config) []polygon.Polygon {
	out := make([]polygon.Polygon, 0, len(polygons))
	for _, p := range polygons {
		if r, ok := offsetOne(p, distanceMM, cfg); ok {
			out = append(out, r)
		}
	}
	return out
}

func offsetOne(p polygon.Polygon, distanceMM float64, cfg Config) (polygon.Polygon, bool) {
	n := len(p.Points)
	if n < 3 {
		return polygon.Polygon{}, false
	}
	out := make([]coord.Point2D, 0, n)
	for i := 0; i < n; i++ {
		prev := p.Points[(i-1+n)%n]
		cur := p.Points[i]
		next := p.Points[(i+1)%n]
		out = append(out, offsetVertex(prev, cur, next, distanceMM, cfg)...)
	}
	if len(out) < 3 {
		return polygon.Polygon{}, false
	}
	result := polygon.New(decimateRing(out, cfg.DecimationFactor))
	area := result.AreaMM2()
	if math.Abs(area) < minCollapsedAreaMM2 || area*p.AreaMM2() < 0 {
		return polygon.Polygon{}, false
	}
	return result, true
}

// decimateRing drops every vertex after the first whose removal deviates
// the ring boundary by at most factor of the chord that replaces it,
// keeping at least 3 vertices. Collinear run cleanup after a miter offset, and round-join arc
// thinning, both reduce to this test.
func decimateRing(pts []coord.Point2D, factor float64) []coord.Point2D {
	n := len(pts)
	if factor <= 0 || n < 4 {
		return pts
	}
	out := make([]coord.Point2D, 0, n)
	for i := 0; i < n; i++ {
		prev := pts[(i-1+n)%n]
		if len(out) > 0 {
			prev = out[len(out)-1]
		}
		next := pts[(i+1)%n]
		remaining := n - i - 1
		if i > 0 && len(out)+remaining >= 3 && chordDeviationMM(prev, pts[i], next) <= factor*chordLenMM(prev, next) {
			continue
		}
		out = append(out, pts[i])
	}
	if len(out) < 3 {
		return pts
	}
	return out
}

// chordDeviationMM returns the perpendicular distance from v to the line
// through a and b, in millimetres.
func chordDeviationMM(a, v, b coord.Point2D) float64 {
	ax, ay := a.X.ToMM(), a.Y.ToMM()
	dx := b.X.ToMM() - ax
	dy := b.Y.ToMM() - ay
	l := math.Hypot(dx, dy)
	if l < 1e-12 {
		return math.Hypot(v.X.ToMM()-ax, v.Y.ToMM()-ay)
	}
	return math.Abs(dx*(v.Y.ToMM()-ay)-dy*(v.X.ToMM()-ax)) / l
}

func chordLenMM(a, b coord.Point2D) float64 {
	return math.Hypot(b.X.ToMM()-a.X.ToMM(), b.Y.ToMM()-a.Y.ToMM())
}

// edgeOutwardNormal returns the outward unit normal of directed edge p->q
// for a CCW contour: rotate the edge direction -90°, i.e. (dy, -dx).
func edgeOutwardNormal(p, q coord.Point2D) (nx, ny float64) {
	dx := q.X.ToMM() - p.X.ToMM()
	dy := q.Y.ToMM() - p.Y.ToMM()
	length := math.Hypot(dx, dy)
	if length < 1e-12 {
		return 0, 0
	}
	return dy / length, -dx / length
}

// offsetVertex computes the offset point(s) for the corner at cur, between
// incoming edge prev->cur and outgoing edge cur->next. Usually returns a
// single point; MITER corners beyond the miter limit, and ROUND corners,
// may return more.
func offsetVertex(prev, cur, next coord.Point2D, distanceMM float64, cfg Config) []coord.Point2D {
	n1x, n1y := edgeOutwardNormal(prev, cur)
	n2x, n2y := edgeOutwardNormal(cur, next)
	if n1x == 0 && n1y == 0 {
		return []coord.Point2D{offsetAlong(cur, n2x, n2y, distanceMM)}
	}
	if n2x == 0 && n2y == 0 {
		return []coord.Point2D{offsetAlong(cur, n1x, n1y, distanceMM)}
	}

	cosTheta := n1x*n2x + n1y*n2y
	sinTheta := n1x*n2y - n1y*n2x

	// Cusp: the two edges fold back on themselves. Emit both single-normal
	// offsets rather than a miter/round join that would be ill-defined.
	if cosTheta < -0.999 {
		return []coord.Point2D{
			offsetAlong(cur, n1x, n1y, distanceMM),
			offsetAlong(cur, n2x, n2y, distanceMM),
		}
	}

	switch cfg.JoinType {
	case graphics.LineJoinRound:
		return roundJoin(cur, n1x, n1y, n2x, n2y, sinTheta, distanceMM)
	case graphics.LineJoinBevel:
		return []coord.Point2D{
			offsetAlong(cur, n1x, n1y, distanceMM),
			offsetAlong(cur, n2x, n2y, distanceMM),
		}
	default: // LineJoinMiter, and any value other than round or bevel
		sinHalf := math.Sqrt(math.Max(0, (1+cosTheta)/2))
		if sinHalf < 1e-9 {
			return []coord.Point2D{
				offsetAlong(cur, n1x, n1y, distanceMM),
				offsetAlong(cur, n2x, n2y, distanceMM),
			}
		}
		miterScale := 1 / sinHalf
		if miterScale > cfg.MiterLimit {
			return []coord.Point2D{
				offsetAlong(cur, n1x, n1y, distanceMM),
				offsetAlong(cur, n2x, n2y, distanceMM),
			}
		}
		bx, by := n1x+n2x, n1y+n2y
		blen := math.Hypot(bx, by)
		if blen < 1e-12 {
			return []coord.Point2D{offsetAlong(cur, n1x, n1y, distanceMM)}
		}
		bx, by = bx/blen, by/blen
		dist := distanceMM * miterScale
		return []coord.Point2D{offsetAlong(cur, bx, by, dist)}
	}
}

// offsetAlong returns cur shifted by distanceMM along unit normal (nx,ny).
func offsetAlong(cur coord.Point2D, nx, ny, distanceMM float64) coord.Point2D {
	return coord.Point2DFromMM(cur.X.ToMM()+nx*distanceMM, cur.Y.ToMM()+ny*distanceMM)
}

// roundJoin tessellates an arc between the two edge normals, centered at
// cur, matching the curvature direction indicated by sinTheta.
func roundJoin(cur coord.Point2D, n1x, n1y, n2x, n2y, sinTheta, distanceMM float64) []coord.Point2D {
	const steps = 6
	angle1 := math.Atan2(n1y, n1x)
	angle2 := math.Atan2(n2y, n2x)
	delta := angle2 - angle1
	for delta > math.Pi {
		delta -= 2 * math.Pi
	}
	for delta < -math.Pi {
		delta += 2 * math.Pi
	}
	out := make([]coord.Point2D, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / steps
		a := angle1 + delta*t
		out = append(out, offsetAlong(cur, math.Cos(a), math.Sin(a), distanceMM))
	}
	return out
}

// OffsetPolyline builds the closed outline of pl offset by halfWidthMM to
// both sides, capping the two open ends per cfg.End; the result is the
// printed footprint of an open extrusion move, as a CCW polygon. A Closed
// end type treats pl's point run as a ring and offsets it like a polygon.
func OffsetPolyline(pl polygon.Polyline, halfWidthMM float64, cfg Config) (polygon.Polygon, bool) {
	pts := pl.Points
	if len(pts) < 2 || halfWidthMM <= 0 {
		return polygon.Polygon{}, false
	}
	if cfg.End == Closed {
		return offsetOne(polygon.New(pts), halfWidthMM, cfg)
	}

	n := len(pts)
	out := make([]coord.Point2D, 0, 2*n+18)

	out = append(out, sideOffsetPoints(pts, halfWidthMM, cfg)...)
	tx, ty := unitDir(pts[n-2], pts[n-1])
	out = append(out, capPoints(pts[n-1], tx, ty, halfWidthMM, cfg.End)...)

	rev := make([]coord.Point2D, n)
	for i, p := range pts {
		rev[n-1-i] = p
	}
	out = append(out, sideOffsetPoints(rev, halfWidthMM, cfg)...)
	tx, ty = unitDir(pts[1], pts[0])
	out = append(out, capPoints(pts[0], tx, ty, halfWidthMM, cfg.End)...)

	if len(out) < 3 {
		return polygon.Polygon{}, false
	}
	result := polygon.New(decimateRing(out, cfg.DecimationFactor))
	if math.Abs(result.AreaMM2()) < minCollapsedAreaMM2 {
		return polygon.Polygon{}, false
	}
	return result, true
}

// sideOffsetPoints offsets an open point run to the right of its direction
// of travel, joining interior corners per cfg.JoinType; the two terminal
// vertices take their single edge's normal since there is no second edge
// to join against.
func sideOffsetPoints(pts []coord.Point2D, d float64, cfg Config) []coord.Point2D {
	n := len(pts)
	out := make([]coord.Point2D, 0, n)
	nx, ny := edgeOutwardNormal(pts[0], pts[1])
	out = append(out, offsetAlong(pts[0], nx, ny, d))
	for i := 1; i < n-1; i++ {
		out = append(out, offsetVertex(pts[i-1], pts[i], pts[i+1], d, cfg)...)
	}
	nx, ny = edgeOutwardNormal(pts[n-2], pts[n-1])
	out = append(out, offsetAlong(pts[n-1], nx, ny, d))
	return out
}

func unitDir(p, q coord.Point2D) (float64, float64) {
	dx := q.X.ToMM() - p.X.ToMM()
	dy := q.Y.ToMM() - p.Y.ToMM()
	l := math.Hypot(dx, dy)
	if l < 1e-12 {
		return 0, 0
	}
	return dx / l, dy / l
}

// capPoints emits the cap at endpoint p with outgoing unit tangent (tx,ty):
// nothing for a butt cap (the two side offsets connect straight across),
// the two extended corners for a square cap, or a semicircular arc swept
// from the right-side normal through the tangent to the left-side normal.
func capPoints(p coord.Point2D, tx, ty, d float64, end EndType) []coord.Point2D {
	switch end {
	case OpenSquare:
		return []coord.Point2D{
			offsetAlong(p, tx+ty, ty-tx, d),
			offsetAlong(p, tx-ty, ty+tx, d),
		}
	case OpenRound:
		const steps = 8
		a0 := math.Atan2(-tx, ty)
		out := make([]coord.Point2D, 0, steps+1)
		for i := 0; i <= steps; i++ {
			a := a0 + math.Pi*float64(i)/steps
			out = append(out, offsetAlong(p, math.Cos(a), math.Sin(a), d))
		}
		return out
	default: // OpenButt
		return nil
	}
}

// Open is offset(-d) then offset(+d): it removes features thinner than 2d,
// dropping polygons whose intermediate offset collapses.
func Open(polygons []polygon.Polygon, distanceMM float64, cfg Config) []polygon.Polygon {
	return Offset(Offset(polygons, -distanceMM, cfg), distanceMM, cfg)
}

// Close is the converse of Open: offset(+d) then offset(-d), filling gaps
// thinner than 2d.
func Close(polygons []polygon.Polygon, distanceMM float64, cfg Config) []polygon.Polygon {
	return Offset(Offset(polygons, distanceMM, cfg), -distanceMM, cfg)
}
