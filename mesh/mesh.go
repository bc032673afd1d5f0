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

// Package mesh implements the indexed triangle set, its lazily-rebuilt edge
// topology, and the triangle mesh that ties the two together with cached
// statistics.
package mesh

import (
	"github.com/pkg/errors"

	"github.com/tessel3d/slicecore/coord"
	"github.com/tessel3d/slicecore/predicate"
)

// noEdge is the sentinel edge id stored in a freshly-appended triangle,
// before the edge map has been (re)built.
const noEdge = -1

// noTriangle is the sentinel incident-triangle slot for a boundary edge.
const noTriangle = -1

// Triangle is a single face: three vertex indices into the owning
// IndexedTriangleSet's vertex array, plus three edge ids filled in once the
// edge map has been built (sentinel noEdge until then).
type Triangle struct {
	V     [3]int32
	Edges [3]int32
}

// IndexedTriangleSet is an appendable vertex array and triangle array.
// Triangles reference vertices by index so shared vertices are stored once.
type IndexedTriangleSet struct {
	Vertices  []coord.Vec3f
	Triangles []Triangle
}

// AddVertex appends a vertex and returns its index.
func (s *IndexedTriangleSet) AddVertex(v coord.Vec3f) int32 {
	s.Vertices = append(s.Vertices, v)
	return int32(len(s.Vertices) - 1)
}

// AddTriangle appends a triangle referencing three existing vertex indices.
// Its edge ids are set to the sentinel noEdge; they are filled in by the
// next edge map rebuild.
func (s *IndexedTriangleSet) AddTriangle(v0, v1, v2 int32) int32 {
	s.Triangles = append(s.Triangles, Triangle{
		V:     [3]int32{v0, v1, v2},
		Edges: [3]int32{noEdge, noEdge, noEdge},
	})
	return int32(len(s.Triangles) - 1)
}

// Validate checks the structural invariants: every vertex index in range,
// and no triangle repeating a vertex.
func (s *IndexedTriangleSet) Validate() error {
	n := int32(len(s.Vertices))
	for i, tri := range s.Triangles {
		for _, vi := range tri.V {
			if vi < 0 || vi >= n {
				return errors.Errorf("triangle %d references out-of-range vertex %d (have %d vertices)", i, vi, n)
			}
		}
		if tri.V[0] == tri.V[1] || tri.V[1] == tri.V[2] || tri.V[0] == tri.V[2] {
			return errors.Errorf("triangle %d repeats a vertex: %v", i, tri.V)
		}
	}
	return nil
}

// TriangleVertices returns the three vertex positions of triangle i.
func (s *IndexedTriangleSet) TriangleVertices(i int32) (a, b, c coord.Vec3f) {
	tri := s.Triangles[i]
	return s.Vertices[tri.V[0]], s.Vertices[tri.V[1]], s.Vertices[tri.V[2]]
}

// TriangleNormal returns the unit face normal (the zero vector for a
// degenerate triangle) and its orientation classification for triangle i.
func (s *IndexedTriangleSet) TriangleNormal(i int32) (coord.Vec3f, predicate.FaceOrientation) {
	a, b, c := s.TriangleVertices(i)
	return predicate.ClassifyFace(a, b, c)
}

// TriangleAreaMM2 returns the triangle's area in square millimetres, half
// the magnitude of its (unnormalized) cross-product normal.
func (s *IndexedTriangleSet) TriangleAreaMM2(i int32) float64 {
	a, b, c := s.TriangleVertices(i)
	n := b.Sub(a).Cross(c.Sub(a))
	return float64(n.Length()) / 2
}

// TriangleBoundingBox returns triangle i's axis-aligned bounding box in the
// coord domain.
func (s *IndexedTriangleSet) TriangleBoundingBox(i int32) coord.BoundingBox3D {
	a, b, c := s.TriangleVertices(i)
	bb := coord.NewEmptyBoundingBox3D()
	bb = bb.Include(a.ToPoint3D())
	bb = bb.Include(b.ToPoint3D())
	bb = bb.Include(c.ToPoint3D())
	return bb
}
