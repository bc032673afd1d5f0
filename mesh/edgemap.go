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

package mesh

// Edge is an undirected edge between two vertices, with up to two incident
// triangles. T1 is noTriangle for a boundary edge.
type Edge struct {
	V0, V1 int32
	T0, T1 int32
}

// EdgeMap indexes a triangle set's edges, built lazily and keyed by a
// canonical hash of each edge's (min,max) vertex-index pair so that the two
// triangles sharing an edge are merged into a single record.
type EdgeMap struct {
	Edges   []Edge
	buckets map[uint64][]int32
}

// edgeKey canonicalizes an ordered vertex pair to (min,max) and hashes it.
func edgeKey(v0, v1 int32) (lo, hi int32, hash uint64) {
	if v0 > v1 {
		v0, v1 = v1, v0
	}
	// FNV-1a over the two 32-bit indices packed into a 64-bit key.
	h := uint64(14695981039346656037)
	for _, b := range [8]byte{
		byte(v0), byte(v0 >> 8), byte(v0 >> 16), byte(v0 >> 24),
		byte(v1), byte(v1 >> 8), byte(v1 >> 16), byte(v1 >> 24),
	} {
		h ^= uint64(b)
		h *= 1099511628211
	}
	return v0, v1, h
}

// Build (re)computes the edge map from scratch, also writing each
// triangle's three edge ids back into its Edges field.
func (s *IndexedTriangleSet) Build() *EdgeMap {
	em := &EdgeMap{buckets: make(map[uint64][]int32, len(s.Triangles)*3/2)}
	for ti := range s.Triangles {
		tri := &s.Triangles[ti]
		for e := 0; e < 3; e++ {
			v0, v1 := tri.V[e], tri.V[(e+1)%3]
			lo, hi, hash := edgeKey(v0, v1)
			bucket := em.buckets[hash]
			found := int32(-1)
			for _, ei := range bucket {
				edge := em.Edges[ei]
				if edge.V0 == lo && edge.V1 == hi {
					found = ei
					break
				}
			}
			if found == -1 {
				em.Edges = append(em.Edges, Edge{V0: lo, V1: hi, T0: int32(ti), T1: noTriangle})
				found = int32(len(em.Edges) - 1)
				em.buckets[hash] = append(bucket, found)
			} else {
				em.Edges[found].T1 = int32(ti)
			}
			tri.Edges[e] = found
		}
	}
	return em
}

// BoundaryEdges returns the edges with only one incident triangle.
func (em *EdgeMap) BoundaryEdges() []Edge {
	var out []Edge
	for _, e := range em.Edges {
		if e.T1 == noTriangle {
			out = append(out, e)
		}
	}
	return out
}

// OtherTriangle returns the triangle on the other side of edge id from
// triangle ti, or noTriangle if ti is not incident to the edge or the edge
// is a boundary edge.
func (em *EdgeMap) OtherTriangle(edgeID, ti int32) int32 {
	e := em.Edges[edgeID]
	switch ti {
	case e.T0:
		return e.T1
	case e.T1:
		return e.T0
	default:
		return noTriangle
	}
}
