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

import (
	"testing"

	"github.com/tessel3d/slicecore/coord"
)

func TestOrientAntisymmetric(t *testing.T) {
	a := coord.Point2DFromMM(0, 0)
	b := coord.Point2DFromMM(1, 0)
	c := coord.Point2DFromMM(0, 1)
	if Orient(a, b, c) != -Orient(a, c, b) {
		t.Errorf("orientation(a,b,c) must equal -orientation(a,c,b)")
	}
}

func TestSegmentIntersectCrossing(t *testing.T) {
	p1 := coord.Point2DFromMM(0, 0)
	q1 := coord.Point2DFromMM(4, 4)
	p2 := coord.Point2DFromMM(0, 4)
	q2 := coord.Point2DFromMM(4, 0)
	got := SegmentIntersect(p1, q1, p2, q2)
	if got.Kind != PointIntersect {
		t.Fatalf("expected PointIntersect, got %v", got.Kind)
	}
	want := coord.Point2DFromMM(2, 2)
	if got.Point != want {
		t.Errorf("crossing point = %v, want %v", got.Point, want)
	}
}

func TestSegmentIntersectParallel(t *testing.T) {
	got := SegmentIntersect(
		coord.Point2DFromMM(0, 0), coord.Point2DFromMM(1, 0),
		coord.Point2DFromMM(0, 1), coord.Point2DFromMM(1, 1),
	)
	if got.Kind != NoIntersect {
		t.Errorf("parallel non-collinear segments should not intersect, got %v", got.Kind)
	}
}

func TestSegmentIntersectCollinearOverlap(t *testing.T) {
	got := SegmentIntersect(
		coord.Point2DFromMM(0, 0), coord.Point2DFromMM(5, 0),
		coord.Point2DFromMM(3, 0), coord.Point2DFromMM(8, 0),
	)
	if got.Kind != CollinearOverlap {
		t.Fatalf("expected CollinearOverlap, got %v", got.Kind)
	}
	if got.OverlapLo != coord.Point2DFromMM(3, 0) || got.OverlapHi != coord.Point2DFromMM(5, 0) {
		t.Errorf("overlap interval = [%v,%v], want [3,0]-[5,0]", got.OverlapLo, got.OverlapHi)
	}
}

func TestPointInPolygonSquare(t *testing.T) {
	square := []coord.Point2D{
		coord.Point2DFromMM(0, 0),
		coord.Point2DFromMM(10, 0),
		coord.Point2DFromMM(10, 10),
		coord.Point2DFromMM(0, 10),
	}
	inside := coord.Point2DFromMM(5, 5)
	outside := coord.Point2DFromMM(15, 5)
	if !PointInPolygon(inside, square) {
		t.Errorf("expected interior point to be inside")
	}
	if PointInPolygon(outside, square) {
		t.Errorf("expected exterior point to be outside")
	}
	if PointInPolygon(inside, square) != PointInPolygonRaycast(inside, square) {
		t.Errorf("winding and raycast methods disagree on interior point")
	}
	if PointInPolygon(outside, square) != PointInPolygonRaycast(outside, square) {
		t.Errorf("winding and raycast methods disagree on exterior point")
	}
}

func TestTrianglePlaneStandard(t *testing.T) {
	a := coord.Vec3f{X: 0, Y: 0, Z: 0}
	b := coord.Vec3f{X: 10, Y: 0, Z: 0}
	c := coord.Vec3f{X: 5, Y: 10, Z: 10}
	res := TrianglePlaneIntersect(a, b, c, 5)
	if res.Kind != Standard {
		t.Fatalf("expected Standard, got %v", res.Kind)
	}
	seg := res.Segments[0]
	want := [2]coord.Vec2f{{X: 2.5, Y: 5}, {X: 7.5, Y: 5}}
	gotOK := approxPt(seg[0], want[0]) && approxPt(seg[1], want[1])
	swapOK := approxPt(seg[0], want[1]) && approxPt(seg[1], want[0])
	if !gotOK && !swapOK {
		t.Errorf("segment = %v, want %v (either order)", seg, want)
	}
}

func TestTrianglePlaneVertexOn(t *testing.T) {
	a := coord.Vec3f{X: 0, Y: 0, Z: 5}
	b := coord.Vec3f{X: 10, Y: 0, Z: 0}
	c := coord.Vec3f{X: 10, Y: 10, Z: 10}
	res := TrianglePlaneIntersect(a, b, c, 5)
	if res.Kind != VertexOnPlane {
		t.Fatalf("expected VertexOnPlane, got %v", res.Kind)
	}
}

func TestTrianglePlaneEdgeOn(t *testing.T) {
	a := coord.Vec3f{X: 0, Y: 0, Z: 5}
	b := coord.Vec3f{X: 10, Y: 0, Z: 5}
	c := coord.Vec3f{X: 5, Y: 10, Z: 10}
	res := TrianglePlaneIntersect(a, b, c, 5)
	if res.Kind != EdgeOnPlane {
		t.Fatalf("expected EdgeOnPlane, got %v", res.Kind)
	}
}

func TestTrianglePlaneFaceOn(t *testing.T) {
	a := coord.Vec3f{X: 0, Y: 0, Z: 5}
	b := coord.Vec3f{X: 10, Y: 0, Z: 5}
	c := coord.Vec3f{X: 5, Y: 10, Z: 5}
	res := TrianglePlaneIntersect(a, b, c, 5)
	if res.Kind != FaceOnPlane {
		t.Fatalf("expected FaceOnPlane, got %v", res.Kind)
	}
	if len(res.Segments) != 3 {
		t.Errorf("expected 3 segments for a face on the plane, got %d", len(res.Segments))
	}
}

func approxPt(a, b coord.Vec2f) bool {
	const eps = 1e-4
	dx := a.X - b.X
	dy := a.Y - b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx < eps && dy < eps
}
