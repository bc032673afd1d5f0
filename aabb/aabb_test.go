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

package aabb

import (
	"testing"

	"github.com/tessel3d/slicecore/coord"
	"github.com/tessel3d/slicecore/mesh"
)

// boxMesh builds a unit cube (12 triangles) spanning [0,1] on every axis.
func boxMesh() *mesh.TriangleMesh {
	m := mesh.NewTriangleMesh()
	v := func(x, y, z float32) int32 { return m.AddVertex(coord.Vec3f{X: x, Y: y, Z: z}) }
	v000, v100, v110, v010 := v(0, 0, 0), v(1, 0, 0), v(1, 1, 0), v(0, 1, 0)
	v001, v101, v111, v011 := v(0, 0, 1), v(1, 0, 1), v(1, 1, 1), v(0, 1, 1)

	quads := [][4]int32{
		{v000, v100, v110, v010}, // bottom
		{v001, v101, v111, v011}, // top
		{v000, v100, v101, v001}, // front
		{v010, v110, v111, v011}, // back
		{v000, v010, v011, v001}, // left
		{v100, v110, v111, v101}, // right
	}
	for _, q := range quads {
		m.AddTriangle(q[0], q[1], q[2])
		m.AddTriangle(q[0], q[2], q[3])
	}
	return m
}

func manyTriangleMesh(n int) *mesh.TriangleMesh {
	m := mesh.NewTriangleMesh()
	for i := 0; i < n; i++ {
		x := float32(i)
		v0 := m.AddVertex(coord.Vec3f{X: x, Y: 0, Z: 0})
		v1 := m.AddVertex(coord.Vec3f{X: x + 1, Y: 0, Z: 0})
		v2 := m.AddVertex(coord.Vec3f{X: x, Y: 1, Z: float32(i % 5)})
		m.AddTriangle(v0, v1, v2)
	}
	return m
}

func TestEmptyMeshProducesEmptyTree(t *testing.T) {
	m := mesh.NewTriangleMesh()
	tree := Build(m)
	if tree.Root != -1 {
		t.Fatalf("expected Root=-1 for empty mesh, got %d", tree.Root)
	}
	if out := tree.PlaneQuery(0, nil); len(out) != 0 {
		t.Errorf("expected no plane-query hits on empty tree, got %d", len(out))
	}
	if _, ok := tree.RayQuery(Ray{Dir: coord.Vec3f{Z: 1}}); ok {
		t.Errorf("expected no ray-query hit on empty tree")
	}
}

func TestBuildValidates(t *testing.T) {
	tree := Build(boxMesh())
	if err := tree.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestBuildLargeMeshValidatesAndSplits(t *testing.T) {
	tree := Build(manyTriangleMesh(500))
	if err := tree.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if tree.Nodes[tree.Root].isLeaf() {
		t.Errorf("expected internal root for 500 primitives")
	}
	if len(tree.Primitives) != 500 {
		t.Errorf("expected 500 primitives retained, got %d", len(tree.Primitives))
	}
}

func TestPlaneQueryFindsStraddlingTriangles(t *testing.T) {
	tree := Build(boxMesh())
	hits := tree.PlaneQuery(coord.FromMM(0.5), nil)
	if len(hits) == 0 {
		t.Fatalf("expected at least one triangle straddling Z=0.5")
	}
	for _, ti := range hits {
		bb := tree.Mesh.Set.TriangleBoundingBox(ti)
		if !bb.ContainsZ(coord.FromMM(0.5)) {
			t.Errorf("triangle %d bounding box does not contain Z=0.5", ti)
		}
	}
}

func TestPlaneQueryAboveMeshReturnsNothing(t *testing.T) {
	tree := Build(boxMesh())
	hits := tree.PlaneQuery(coord.FromMM(100), nil)
	if len(hits) != 0 {
		t.Errorf("expected no hits far above the mesh, got %d", len(hits))
	}
}

func TestRayQueryHitsCubeBottomFace(t *testing.T) {
	tree := Build(boxMesh())
	hit, ok := tree.RayQuery(Ray{
		Origin: coord.Vec3f{X: 0.5, Y: 0.5, Z: -5},
		Dir:    coord.Vec3f{Z: 1},
	})
	if !ok {
		t.Fatalf("expected a hit")
	}
	if hit.Point.Z < -0.1 || hit.Point.Z > 0.1 {
		t.Errorf("expected the nearest hit on Z~0, got %v", hit.Point)
	}
}

func TestRayQueryMissReturnsFalse(t *testing.T) {
	tree := Build(boxMesh())
	_, ok := tree.RayQuery(Ray{
		Origin: coord.Vec3f{X: 100, Y: 100, Z: -5},
		Dir:    coord.Vec3f{Z: 1},
	})
	if ok {
		t.Errorf("expected no hit far outside the cube's footprint")
	}
}
