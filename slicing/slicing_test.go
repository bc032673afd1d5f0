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

package slicing

import (
	"math"
	"testing"

	"github.com/tessel3d/slicecore/aabb"
	"github.com/tessel3d/slicecore/coord"
	"github.com/tessel3d/slicecore/mesh"
)

// cubeMesh builds a cube spanning [0,size] on every axis, 12 triangles.
func cubeMesh(size float32) *mesh.TriangleMesh {
	m := mesh.NewTriangleMesh()
	v := func(x, y, z float32) int32 { return m.AddVertex(coord.Vec3f{X: x, Y: y, Z: z}) }
	v000, v100, v110, v010 := v(0, 0, 0), v(size, 0, 0), v(size, size, 0), v(0, size, 0)
	v001, v101, v111, v011 := v(0, 0, size), v(size, 0, size), v(size, size, size), v(0, size, size)

	quads := [][4]int32{
		{v000, v010, v110, v100}, // bottom, CCW seen from below (-Z normal)
		{v001, v101, v111, v011}, // top, CCW seen from above (+Z normal)
		{v000, v100, v101, v001}, // front
		{v010, v011, v111, v110}, // back
		{v000, v001, v011, v010}, // left
		{v100, v110, v111, v101}, // right
	}
	for _, q := range quads {
		m.AddTriangle(q[0], q[1], q[2])
		m.AddTriangle(q[0], q[2], q[3])
	}
	return m
}

func TestChainCubeMidLayer(t *testing.T) {
	m := cubeMesh(10)
	tree := aabb.Build(m)
	segs := BuildSegments(m, tree, coord.FromMM(5))
	if len(segs) == 0 {
		t.Fatalf("expected segments at the cube's mid-height")
	}
	polys, stats := Chain(segs)
	if len(polys) != 1 {
		t.Fatalf("expected 1 closed polygon, got %d (stats=%+v)", len(polys), stats)
	}
	area := math.Abs(polys[0].AreaMM2())
	if math.Abs(area-100) > 1e-6 {
		t.Errorf("mid-layer area = %v, want 100", area)
	}
	if !polys[0].IsCCW() {
		t.Errorf("expected CCW output polygon")
	}
	if stats.OpenDiscarded != 0 {
		t.Errorf("expected no discarded open polylines for a clean cube, got %d", stats.OpenDiscarded)
	}
}

func TestChainEmptySegmentsReturnsEmpty(t *testing.T) {
	polys, stats := Chain(nil)
	if len(polys) != 0 {
		t.Errorf("expected no polygons for empty input")
	}
	if stats.SegmentsIn != 0 {
		t.Errorf("expected SegmentsIn=0")
	}
}

func TestChainGapClosureJoinsNearbySegments(t *testing.T) {
	// Four segments tracing a square that stops 1mm short of its start. No
	// shared topology ids: phase 2 joins them into one open polyline and
	// only phase 3 can close this.
	segs := []Segment{
		{
			A: Endpoint{Point: coord.Point2DFromMM(0, 0), EdgeID: noID, VertexID: noID},
			B: Endpoint{Point: coord.Point2DFromMM(10, 0), EdgeID: noID, VertexID: noID},
		},
		{
			A: Endpoint{Point: coord.Point2DFromMM(10, 0), EdgeID: noID, VertexID: noID},
			B: Endpoint{Point: coord.Point2DFromMM(10, 10), EdgeID: noID, VertexID: noID},
		},
		{
			A: Endpoint{Point: coord.Point2DFromMM(10, 10), EdgeID: noID, VertexID: noID},
			B: Endpoint{Point: coord.Point2DFromMM(0, 10), EdgeID: noID, VertexID: noID},
		},
		{
			A: Endpoint{Point: coord.Point2DFromMM(0, 10), EdgeID: noID, VertexID: noID},
			B: Endpoint{Point: coord.Point2DFromMM(0, 1), EdgeID: noID, VertexID: noID},
		},
		// gap of 1mm between (0,1) and (0,0)
	}
	polys, stats := Chain(segs)
	if len(polys) != 1 {
		t.Fatalf("expected gap closure to produce 1 polygon, got %d (stats=%+v)", len(polys), stats)
	}
	if stats.GapsClosed != 1 {
		t.Errorf("expected GapsClosed=1, got %d", stats.GapsClosed)
	}
}

func TestChainGapLimitBoundary(t *testing.T) {
	// Three sides of a 10mm square plus a fourth that stops short of the
	// start by exactly gap mm; the loop closes at the limit and stays open
	// just beyond it.
	segsWithGap := func(gap float64) []Segment {
		none := Endpoint{EdgeID: noID, VertexID: noID}
		pt := func(x, y float64) Endpoint {
			e := none
			e.Point = coord.Point2DFromMM(x, y)
			return e
		}
		return []Segment{
			{A: pt(0, 0), B: pt(10, 0)},
			{A: pt(10, 0), B: pt(10, 10)},
			{A: pt(10, 10), B: pt(0, 10)},
			{A: pt(0, 10), B: pt(0, gap)},
		}
	}

	polys, stats := ChainWithLimits(segsWithGap(2.0), 2.0, 45)
	if len(polys) != 1 || stats.GapsClosed != 1 {
		t.Errorf("gap exactly at the limit: got %d polygons, GapsClosed=%d, want 1/1", len(polys), stats.GapsClosed)
	}

	polys, stats = ChainWithLimits(segsWithGap(2.001), 2.0, 45)
	if len(polys) != 0 || stats.GapsClosed != 0 {
		t.Errorf("gap just beyond the limit: got %d polygons, GapsClosed=%d, want 0/0", len(polys), stats.GapsClosed)
	}
}

func TestChainDiscardsUnclosablePolyline(t *testing.T) {
	segs := []Segment{
		{
			A: Endpoint{Point: coord.Point2DFromMM(0, 0), EdgeID: noID, VertexID: noID},
			B: Endpoint{Point: coord.Point2DFromMM(10, 0), EdgeID: noID, VertexID: noID},
		},
	}
	polys, stats := Chain(segs)
	if len(polys) != 0 {
		t.Errorf("expected no closed polygon from a single dangling segment")
	}
	if stats.OpenDiscarded != 1 {
		t.Errorf("expected OpenDiscarded=1, got %d", stats.OpenDiscarded)
	}
}
