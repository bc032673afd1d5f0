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

import "github.com/tessel3d/slicecore/coord"

// Stats holds cached whole-mesh statistics, recomputed when stale.
type Stats struct {
	TriangleCount  int
	VertexCount    int
	SurfaceAreaMM2 float64
	BoundingBox    coord.BoundingBox3D
}

// TriangleMesh owns an IndexedTriangleSet plus a lazily rebuilt EdgeMap and
// lazily recomputed Stats. Both carry independent dirty flags so that
// appending triangles doesn't force an edge-map rebuild until topology is
// actually queried.
type TriangleMesh struct {
	Set IndexedTriangleSet

	edges      *EdgeMap
	edgesDirty bool

	stats      Stats
	statsDirty bool
}

// NewTriangleMesh returns an empty mesh.
func NewTriangleMesh() *TriangleMesh {
	return &TriangleMesh{edgesDirty: true, statsDirty: true}
}

// AddTriangle appends a triangle (by existing vertex index) and marks both
// the edge map and cached statistics dirty.
func (m *TriangleMesh) AddTriangle(v0, v1, v2 int32) int32 {
	id := m.Set.AddTriangle(v0, v1, v2)
	m.edgesDirty = true
	m.statsDirty = true
	return id
}

// AddVertex appends a vertex and returns its index.
func (m *TriangleMesh) AddVertex(v coord.Vec3f) int32 {
	id := m.Set.AddVertex(v)
	m.statsDirty = true
	return id
}

// Edges returns the mesh's edge map, rebuilding it first if topology is
// dirty.
func (m *TriangleMesh) Edges() *EdgeMap {
	if m.edgesDirty || m.edges == nil {
		m.edges = m.Set.Build()
		m.edgesDirty = false
	}
	return m.edges
}

// Validate checks the triangle set's structural invariants.
func (m *TriangleMesh) Validate() error {
	return m.Set.Validate()
}

// Stats returns cached whole-mesh statistics, recomputing them first if
// dirty.
func (m *TriangleMesh) Stats() Stats {
	if m.statsDirty {
		m.recomputeStats()
	}
	return m.stats
}

func (m *TriangleMesh) recomputeStats() {
	bb := coord.NewEmptyBoundingBox3D()
	area := 0.0
	for i := range m.Set.Triangles {
		ti := int32(i)
		area += m.Set.TriangleAreaMM2(ti)
		bb = bb.Union(m.Set.TriangleBoundingBox(ti))
	}
	m.stats = Stats{
		TriangleCount:  len(m.Set.Triangles),
		VertexCount:    len(m.Set.Vertices),
		SurfaceAreaMM2: area,
		BoundingBox:    bb,
	}
	m.statsDirty = false
}
