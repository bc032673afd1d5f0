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

// onPlaneEpsilon is the tolerance, in millimetres, within which a vertex is
// considered to lie exactly on the slicing plane.
const onPlaneEpsilon = 1e-6

// verticalFaceEpsilon is the |Nz| threshold below which a triangle's face
// is classified as vertical rather than up- or down-facing.
const verticalFaceEpsilon = 1e-6

// SlicePosition classifies a single vertex against a horizontal plane.
type SlicePosition int

const (
	Below SlicePosition = -1
	On    SlicePosition = 0
	Above SlicePosition = 1
)

// ClassifyVertex returns the vertex's position relative to plane Z=z,
// within onPlaneEpsilon millimetres.
func ClassifyVertex(v coord.Vec3f, z float32) SlicePosition {
	d := v.Z - z
	if d > onPlaneEpsilon {
		return Above
	}
	if d < -onPlaneEpsilon {
		return Below
	}
	return On
}

// FaceOrientation classifies a triangle's face by the Z sign of its normal.
type FaceOrientation int

const (
	FaceDegenerate FaceOrientation = iota
	FaceUp
	FaceDown
	FaceVertical
)

// ClassifyFace computes the triangle normal and classifies its orientation.
// Degenerate (zero-area) triangles are reported as FaceDegenerate.
func ClassifyFace(a, b, c coord.Vec3f) (normal coord.Vec3f, orientation FaceOrientation) {
	n := b.Sub(a).Cross(c.Sub(a))
	length := n.Length()
	if length < 1e-12 {
		return coord.Vec3f{}, FaceDegenerate
	}
	unit := n.Scale(1 / length)
	if unit.Z > verticalFaceEpsilon {
		return unit, FaceUp
	}
	if unit.Z < -verticalFaceEpsilon {
		return unit, FaceDown
	}
	return unit, FaceVertical
}

// TriPlaneKind classifies the result of TrianglePlaneIntersect.
type TriPlaneKind int

const (
	// NoCrossing means the triangle does not meet the plane.
	NoCrossing TriPlaneKind = iota
	// Standard means exactly two edges cross the plane (0 vertices on it).
	Standard
	// VertexOnPlane means one vertex sits on the plane and the opposite
	// edge crosses it.
	VertexOnPlane
	// EdgeOnPlane means exactly one edge of the triangle lies on the plane.
	EdgeOnPlane
	// FaceOnPlane means all three vertices lie on the plane.
	FaceOnPlane
	// Degenerate means the triangle has zero area; at most the collinear
	// segment of on-plane vertices is returned.
	Degenerate
)

// TriPlaneResult is the outcome of intersecting a triangle with a
// horizontal plane.
type TriPlaneResult struct {
	Kind TriPlaneKind
	// Segments holds 0, 1, or 3 (for FaceOnPlane) 2D segments, each as a
	// pair of points in the plane's local XY.
	Segments [][2]coord.Vec2f
}

// TrianglePlaneIntersect intersects triangle (a,b,c) with the horizontal
// plane Z=z, classifying the result per the vertex on/above/below table in
// the design: 0 on-plane vertices with mixed sides yields Standard; one
// on-plane vertex with the opposite edge crossing yields VertexOnPlane; two
// on-plane vertices yield EdgeOnPlane; three yield FaceOnPlane. Zero-area
// triangles are reported as Degenerate regardless of vertex classification.
func TrianglePlaneIntersect(a, b, c coord.Vec3f, z float32) TriPlaneResult {
	_, faceOrientation := ClassifyFace(a, b, c)
	pos := [3]SlicePosition{
		ClassifyVertex(a, z),
		ClassifyVertex(b, z),
		ClassifyVertex(c, z),
	}
	verts := [3]coord.Vec3f{a, b, c}

	onCount := 0
	for _, p := range pos {
		if p == On {
			onCount++
		}
	}

	if faceOrientation == FaceDegenerate {
		return degenerateResult(verts, pos, onCount)
	}

	switch onCount {
	case 3:
		return TriPlaneResult{
			Kind: FaceOnPlane,
			Segments: [][2]coord.Vec2f{
				{a.To2D(), b.To2D()},
				{b.To2D(), c.To2D()},
				{c.To2D(), a.To2D()},
			},
		}
	case 2:
		// Find the two on-plane vertices; the segment is along that edge.
		var ends []coord.Vec2f
		for i, p := range pos {
			if p == On {
				ends = append(ends, verts[i].To2D())
			}
		}
		return TriPlaneResult{Kind: EdgeOnPlane, Segments: [][2]coord.Vec2f{{ends[0], ends[1]}}}
	case 1:
		// One vertex on the plane. A crossing segment exists only if the
		// other two vertices are on opposite sides.
		onIdx := 0
		for i, p := range pos {
			if p == On {
				onIdx = i
				break
			}
		}
		i1 := (onIdx + 1) % 3
		i2 := (onIdx + 2) % 3
		if pos[i1] == pos[i2] || pos[i1] == On || pos[i2] == On {
			return TriPlaneResult{Kind: NoCrossing}
		}
		cross := edgeCrossing(verts[i1], verts[i2], z)
		return TriPlaneResult{Kind: VertexOnPlane, Segments: [][2]coord.Vec2f{{verts[onIdx].To2D(), cross}}}
	default:
		// No vertex on the plane: standard case, need all same side or mixed.
		allAbove, allBelow := true, true
		for _, p := range pos {
			if p != Above {
				allAbove = false
			}
			if p != Below {
				allBelow = false
			}
		}
		if allAbove || allBelow {
			return TriPlaneResult{Kind: NoCrossing}
		}
		var pts []coord.Vec2f
		for i := 0; i < 3; i++ {
			j := (i + 1) % 3
			if pos[i] != pos[j] {
				pts = append(pts, edgeCrossing(verts[i], verts[j], z))
			}
		}
		if len(pts) != 2 {
			return TriPlaneResult{Kind: NoCrossing}
		}
		return TriPlaneResult{Kind: Standard, Segments: [][2]coord.Vec2f{{pts[0], pts[1]}}}
	}
}

// degenerateResult handles zero-area triangles: at most the collinear
// segment spanned by on-plane vertices is reported, never a crossing.
func degenerateResult(verts [3]coord.Vec3f, pos [3]SlicePosition, onCount int) TriPlaneResult {
	if onCount < 2 {
		return TriPlaneResult{Kind: Degenerate}
	}
	var ends []coord.Vec2f
	for i, p := range pos {
		if p == On {
			ends = append(ends, verts[i].To2D())
		}
	}
	if len(ends) < 2 {
		return TriPlaneResult{Kind: Degenerate}
	}
	return TriPlaneResult{Kind: Degenerate, Segments: [][2]coord.Vec2f{{ends[0], ends[1]}}}
}

// edgeCrossing computes where edge p-q crosses plane Z=z using the
// classical Möller interpolation, guarding against a near-zero denominator
// by falling back to the midpoint.
func edgeCrossing(p, q coord.Vec3f, z float32) coord.Vec2f {
	denom := q.Z - p.Z
	if denom > -1e-9 && denom < 1e-9 {
		return p.Lerp(q, 0.5).To2D()
	}
	t := (z - p.Z) / denom
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Lerp(q, t).To2D()
}
