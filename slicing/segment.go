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

// Package slicing intersects a triangle mesh with horizontal planes and
// chains the resulting unoriented segments into closed, CCW polygon loops.
package slicing

import (
	"github.com/tessel3d/slicecore/aabb"
	"github.com/tessel3d/slicecore/coord"
	"github.com/tessel3d/slicecore/mesh"
	"github.com/tessel3d/slicecore/predicate"
)

// noID is the sentinel for an endpoint that has no mesh edge, or no mesh
// vertex, backing it.
const noID = -1

// Endpoint is one end of a plane-triangle crossing segment, tagged with
// whichever mesh topology produced it: the mesh edge it was interpolated
// along (EdgeID), or the mesh vertex it coincides with (VertexID) when the
// plane passes exactly through a vertex. Exactly one of the two is set to a
// value other than noID in the common case; both may be set when the
// endpoint is a vertex that also terminates a plane-aligned edge.
type Endpoint struct {
	Point    coord.Point2D
	EdgeID   int32
	VertexID int32
}

// Segment is one plane-triangle intersection edge, with the mesh topology
// of both endpoints attached so the chainer can match segments without
// relying on floating-point proximity alone.
type Segment struct {
	A, B     Endpoint
	TriIndex int32
	Face     predicate.FaceOrientation
	consumed bool
}

// BuildSegments intersects every triangle the AABB tree reports as
// straddling z with the horizontal plane, discarding zero-length results.
func BuildSegments(m *mesh.TriangleMesh, tree *aabb.Tree, z coord.Coord) []Segment {
	candidates := tree.PlaneQuery(z, nil)
	em := m.Edges()
	zMM := float32(z.ToMM())

	var out []Segment
	for _, ti := range candidates {
		out = append(out, sliceTriangle(m, em, ti, zMM)...)
	}
	return out
}

// sliceTriangle classifies triangle ti against the plane Z=zMM and returns
// its crossing segments (0, 1, or 3), with mesh topology attached to each
// endpoint. This mirrors predicate.TrianglePlaneIntersect's case analysis
// but additionally resolves which mesh edge or vertex produced each
// endpoint, which the geometry-only predicate package has no reason to
// know about.
func sliceTriangle(m *mesh.TriangleMesh, em *mesh.EdgeMap, ti int32, zMM float32) []Segment {
	tri := m.Set.Triangles[ti]
	a, b, c := m.Set.TriangleVertices(ti)
	verts := [3]coord.Vec3f{a, b, c}
	vertIDs := [3]int32{tri.V[0], tri.V[1], tri.V[2]}

	pos := [3]predicate.SlicePosition{
		predicate.ClassifyVertex(a, zMM),
		predicate.ClassifyVertex(b, zMM),
		predicate.ClassifyVertex(c, zMM),
	}
	_, orientation := predicate.ClassifyFace(a, b, c)

	onCount := 0
	for _, p := range pos {
		if p == predicate.On {
			onCount++
		}
	}

	edgeCrossPoint := func(i1, i2 int) coord.Point2D {
		return edgeCrossing(verts[i1], verts[i2], zMM)
	}
	vertexEndpoint := func(i int) Endpoint {
		return Endpoint{Point: verts[i].ToPoint2D(), EdgeID: noID, VertexID: vertIDs[i]}
	}
	edgeEndpoint := func(i1, i2 int) Endpoint {
		return Endpoint{Point: edgeCrossPoint(i1, i2), EdgeID: tri.Edges[i1], VertexID: noID}
	}

	switch onCount {
	case 3:
		return []Segment{
			segOf(vertexEndpointWithEdge(vertIDs[0], tri.Edges[0], verts[0]), vertexEndpointWithEdge(vertIDs[1], tri.Edges[0], verts[1]), ti, orientation),
			segOf(vertexEndpointWithEdge(vertIDs[1], tri.Edges[1], verts[1]), vertexEndpointWithEdge(vertIDs[2], tri.Edges[1], verts[2]), ti, orientation),
			segOf(vertexEndpointWithEdge(vertIDs[2], tri.Edges[2], verts[2]), vertexEndpointWithEdge(vertIDs[0], tri.Edges[2], verts[0]), ti, orientation),
		}
	case 2:
		i1, i2 := -1, -1
		for i, p := range pos {
			if p == predicate.On {
				if i1 == -1 {
					i1 = i
				} else {
					i2 = i
				}
			}
		}
		edgeIdx := localEdgeBetween(i1, i2)
		e1 := vertexEndpointWithEdge(vertIDs[i1], tri.Edges[edgeIdx], verts[i1])
		e2 := vertexEndpointWithEdge(vertIDs[i2], tri.Edges[edgeIdx], verts[i2])
		return []Segment{segOf(e1, e2, ti, orientation)}
	case 1:
		onIdx := 0
		for i, p := range pos {
			if p == predicate.On {
				onIdx = i
				break
			}
		}
		i1, i2 := (onIdx+1)%3, (onIdx+2)%3
		if pos[i1] == pos[i2] {
			return nil
		}
		a := vertexEndpoint(onIdx)
		b := edgeEndpoint(i1, i2) // edge (i1,i2) is local edge index i1, see mesh.Build's convention
		if a.Point == b.Point {
			return nil
		}
		return []Segment{segOf(a, b, ti, orientation)}
	default:
		allAbove, allBelow := true, true
		for _, p := range pos {
			if p != predicate.Above {
				allAbove = false
			}
			if p != predicate.Below {
				allBelow = false
			}
		}
		if allAbove || allBelow {
			return nil
		}
		var ends []Endpoint
		for i := 0; i < 3; i++ {
			j := (i + 1) % 3
			if pos[i] != pos[j] {
				ep := edgeEndpoint(i, j)
				ends = append(ends, ep)
			}
		}
		if len(ends) != 2 || ends[0].Point == ends[1].Point {
			return nil
		}
		return []Segment{segOf(ends[0], ends[1], ti, orientation)}
	}
}

// localEdgeBetween returns the local edge index (per mesh.Build's
// convention: edge e joins vertex e and vertex (e+1)%3) connecting local
// vertex indices i1 and i2.
func localEdgeBetween(i1, i2 int) int {
	lo, hi := i1, i2
	if lo > hi {
		lo, hi = hi, lo
	}
	switch {
	case lo == 0 && hi == 1:
		return 0
	case lo == 1 && hi == 2:
		return 1
	default: // lo==0, hi==2
		return 2
	}
}

func vertexEndpointWithEdge(vertexID, edgeID int32, v coord.Vec3f) Endpoint {
	return Endpoint{Point: v.ToPoint2D(), EdgeID: edgeID, VertexID: vertexID}
}

func segOf(a, b Endpoint, ti int32, orientation predicate.FaceOrientation) Segment {
	return Segment{A: a, B: b, TriIndex: ti, Face: orientation}
}

// edgeCrossing mirrors predicate's Möller interpolation with a midpoint
// fallback on a near-zero denominator, then rounds to the coord domain.
func edgeCrossing(p, q coord.Vec3f, z float32) coord.Point2D {
	denom := q.Z - p.Z
	if denom > -1e-9 && denom < 1e-9 {
		return p.Lerp(q, 0.5).ToPoint2D()
	}
	t := (z - p.Z) / denom
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Lerp(q, t).ToPoint2D()
}
