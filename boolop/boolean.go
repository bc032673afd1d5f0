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
	"github.com/tessel3d/slicecore/coord"
	"github.com/tessel3d/slicecore/polygon"
)

// Boolean combines subject against clip under op. Intersection and
// difference clip each subject polygon against each convex clip polygon via
// Sutherland-Hodgman; union concatenates the inputs without merging
// overlaps, and XOR returns difference(subject, clip) followed by
// difference(clip, subject).
func Boolean(subject, clip []polygon.Polygon, op Op, cfg Config) []polygon.Polygon {
	switch op {
	case Intersection:
		return intersection(subject, clip)
	case Difference:
		return difference(subject, clip, cfg)
	case Union:
		return union(subject, clip)
	case XOR:
		ab := difference(subject, clip, cfg)
		ba := difference(clip, subject, cfg)
		return append(ab, ba...)
	default:
		return nil
	}
}

// intersection clips every subject polygon against every clip polygon,
// rejecting non-overlapping pairs by bounding box first. Clip polygons are
// assumed convex, matching every slicer-layer use after an offset; a
// concave clip is over-approximated by its Sutherland-Hodgman result rather
// than rejected.
func intersection(subject, clip []polygon.Polygon) []polygon.Polygon {
	var out []polygon.Polygon
	for _, s := range subject {
		sbb := s.BoundingBox()
		for _, c := range clip {
			if !sbb.Overlaps(c.BoundingBox()) {
				continue
			}
			if r, ok := sutherlandHodgman(s, c); ok {
				out = append(out, r)
			}
		}
	}
	return out
}

// difference removes, from each subject polygon, the portion covered by
// each clip polygon. Each clip polygon is subtracted by walking its edges
// in order, at each edge peeling off the piece of the current remainder
// that lies outside that edge's half-plane (which can no longer be inside
// the clip polygon) and carrying the inside piece on to the next edge; what
// is left after all edges is wholly inside the clip and is discarded. Each
// clip polygon is first grown by cfg.SafetyOffsetMM so that a clip boundary
// coincident with the subject's cannot leave a zero-width sliver behind.
func difference(subject, clip []polygon.Polygon, cfg Config) []polygon.Polygon {
	if cfg.SafetyOffsetMM > 0 {
		clip = Offset(clip, cfg.SafetyOffsetMM, cfg)
	}
	remainder := append([]polygon.Polygon{}, subject...)
	for _, c := range clip {
		var next []polygon.Polygon
		for _, s := range remainder {
			if !s.BoundingBox().Overlaps(c.BoundingBox()) {
				next = append(next, s)
				continue
			}
			next = append(next, subtractConvex(s, c)...)
		}
		remainder = next
	}
	return remainder
}

// subtractConvex returns the pieces of s that lie outside the convex
// polygon c.
func subtractConvex(s, c polygon.Polygon) []polygon.Polygon {
	var pieces []polygon.Polygon
	remaining := append([]coord.Point2D{}, s.Points...)
	n := len(c.Points)
	for i := 0; i < n && len(remaining) > 0; i++ {
		a := c.Points[i]
		b := c.Points[(i+1)%n]
		if outside := clipHalfPlane(remaining, a, b, false); len(outside) >= 3 {
			pieces = append(pieces, polygon.New(outside))
		}
		remaining = clipHalfPlane(remaining, a, b, true)
	}
	return pieces
}

// clipHalfPlane clips poly against the half-plane defined by directed edge
// a-b, keeping the inside (left of a->b) half when keepInside is true, and
// the outside (right of a->b) half otherwise.
func clipHalfPlane(poly []coord.Point2D, a, b coord.Point2D, keepInside bool) []coord.Point2D {
	if len(poly) == 0 {
		return nil
	}
	var output []coord.Point2D
	prev := poly[len(poly)-1]
	prevIn := isInsideEdge(a, b, prev) == keepInside
	for _, cur := range poly {
		curIn := isInsideEdge(a, b, cur) == keepInside
		if curIn {
			if !prevIn {
				output = append(output, edgeIntersect(a, b, prev, cur))
			}
			output = append(output, cur)
		} else if prevIn {
			output = append(output, edgeIntersect(a, b, prev, cur))
		}
		prev, prevIn = cur, curIn
	}
	return output
}

// union concatenates subject and clip. Overlapping inputs are passed
// through unmerged, a documented limitation: the slicer's own layers are
// disjoint by construction, and merging is left to the caller's
// containment logic downstream (e.g. ClassifyHoles).
func union(subject, clip []polygon.Polygon) []polygon.Polygon {
	out := make([]polygon.Polygon, 0, len(subject)+len(clip))
	out = append(out, subject...)
	return append(out, clip...)
}

// sutherlandHodgman clips subject against the convex polygon clip, walking
// clip's edges as half-planes. Returns ok=false if the result collapses to
// fewer than 3 vertices.
func sutherlandHodgman(subject, clip polygon.Polygon) (polygon.Polygon, bool) {
	output := append([]coord.Point2D{}, subject.Points...)
	n := len(clip.Points)
	for i := 0; i < n && len(output) > 0; i++ {
		a := clip.Points[i]
		b := clip.Points[(i+1)%n]
		input := output
		output = nil
		if len(input) == 0 {
			break
		}
		prev := input[len(input)-1]
		prevInside := isInsideEdge(a, b, prev)
		for _, cur := range input {
			curInside := isInsideEdge(a, b, cur)
			if curInside {
				if !prevInside {
					output = append(output, edgeIntersect(a, b, prev, cur))
				}
				output = append(output, cur)
			} else if prevInside {
				output = append(output, edgeIntersect(a, b, prev, cur))
			}
			prev, prevInside = cur, curInside
		}
	}
	if len(output) < 3 {
		return polygon.Polygon{}, false
	}
	return polygon.New(output), true
}

// isInsideEdge reports whether p lies on the left of directed edge a->b,
// the "inside" half-plane for a CCW clip polygon.
func isInsideEdge(a, b, p coord.Point2D) bool {
	return b.Sub(a).Cross(p.Sub(a)) >= 0
}

// edgeIntersect returns the intersection of line a-b with segment p-q,
// assuming exactly one of p, q lies on each side (guaranteed by the
// caller). Uses the standard two-line cross-product intersection formula
// rather than parametrizing along p-q, since a and b (unlike p and q) are
// not guaranteed to straddle the line themselves.
func edgeIntersect(a, b, p, q coord.Point2D) coord.Point2D {
	dcx, dcy := float64(a.X-b.X), float64(a.Y-b.Y)
	dpx, dpy := float64(p.X-q.X), float64(p.Y-q.Y)
	denom := dcx*dpy - dcy*dpx
	if denom == 0 {
		return p
	}
	n1 := float64(a.X)*float64(b.Y) - float64(a.Y)*float64(b.X)
	n2 := float64(p.X)*float64(q.Y) - float64(p.Y)*float64(q.X)
	x := (n1*dpx - n2*dcx) / denom
	y := (n1*dpy - n2*dcy) / denom
	return coord.Point2D{X: coord.Coord(x), Y: coord.Coord(y)}
}
