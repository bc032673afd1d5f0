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

package polygon

import (
	"math"
	"testing"

	"github.com/tessel3d/slicecore/coord"
)

func TestPolygonAreaAndOrientation(t *testing.T) {
	square := Rectangle(0, 0, 10, 10)
	if math.Abs(square.AreaMM2()-100) > 1e-9 {
		t.Errorf("area = %v, want 100", square.AreaMM2())
	}
	if !square.IsCCW() {
		t.Errorf("Rectangle() should be CCW")
	}

	cw := square.Clone()
	cw.Reverse()
	if cw.IsCCW() {
		t.Errorf("reversed square should not be CCW")
	}
	if math.Abs(cw.AreaMM2()+100) > 1e-9 {
		t.Errorf("reversed area = %v, want -100", cw.AreaMM2())
	}
}

func TestPolygonMakeCCWMakeCW(t *testing.T) {
	p := Rectangle(0, 0, 5, 5)
	p.Reverse() // now CW
	p.MakeCCW()
	if !p.IsCCW() {
		t.Errorf("MakeCCW should force positive area")
	}
	p.MakeCW()
	if p.IsCCW() {
		t.Errorf("MakeCW should force non-positive area")
	}
}

func TestPolygonContainsPoint(t *testing.T) {
	square := Rectangle(0, 0, 10, 10)
	if !square.ContainsPoint(coord.Point2DFromMM(5, 5)) {
		t.Errorf("expected (5,5) inside unit square")
	}
	if square.ContainsPoint(coord.Point2DFromMM(20, 20)) {
		t.Errorf("expected (20,20) outside square")
	}
}

func TestPolygonBoundingBox(t *testing.T) {
	square := Rectangle(1, 2, 10, 20)
	bb := square.BoundingBox()
	if bb.Min.X.ToMM() != 1 || bb.Min.Y.ToMM() != 2 {
		t.Errorf("min = (%v,%v), want (1,2)", bb.Min.X.ToMM(), bb.Min.Y.ToMM())
	}
	if bb.Max.X.ToMM() != 11 || bb.Max.Y.ToMM() != 22 {
		t.Errorf("max = (%v,%v), want (11,22)", bb.Max.X.ToMM(), bb.Max.Y.ToMM())
	}
}

func TestPolygonTranslateScale(t *testing.T) {
	square := Rectangle(0, 0, 10, 10)
	moved := square.Translate(5, 5)
	bb := moved.BoundingBox()
	if bb.Min.X.ToMM() != 5 || bb.Min.Y.ToMM() != 5 {
		t.Errorf("translated min = (%v,%v), want (5,5)", bb.Min.X.ToMM(), bb.Min.Y.ToMM())
	}

	scaled := square.Scale(2)
	sbb := scaled.BoundingBox()
	if sbb.Max.X.ToMM() != 20 || sbb.Max.Y.ToMM() != 20 {
		t.Errorf("scaled max = (%v,%v), want (20,20)", sbb.Max.X.ToMM(), sbb.Max.Y.ToMM())
	}
}

func TestCircleApproximatelyRound(t *testing.T) {
	c := Circle(0, 0, 10, 64)
	if len(c.Points) != 64 {
		t.Fatalf("expected 64 points, got %d", len(c.Points))
	}
	area := c.AreaMM2()
	want := math.Pi * 100
	if math.Abs(area-want)/want > 0.01 {
		t.Errorf("circle area = %v, want ~%v", area, want)
	}
}

func TestExPolygonClassifyHoles(t *testing.T) {
	outer := Rectangle(0, 0, 20, 20)
	inner := Rectangle(5, 5, 10, 10)
	inner.MakeCCW() // deliberately wrong winding; classification fixes it

	result := ClassifyHoles([]Polygon{outer, inner})
	if len(result) != 1 {
		t.Fatalf("expected 1 ExPolygon, got %d", len(result))
	}
	ex := result[0]
	if len(ex.Holes) != 1 {
		t.Fatalf("expected 1 hole, got %d", len(ex.Holes))
	}
	if !ex.Valid() {
		t.Errorf("classified ExPolygon should satisfy Valid()")
	}
	wantArea := 400.0 - 100.0
	if math.Abs(ex.AreaMM2()-wantArea) > 1e-6 {
		t.Errorf("net area = %v, want %v", ex.AreaMM2(), wantArea)
	}
}

func TestExPolygonOrphanHoleDropped(t *testing.T) {
	orphan := Rectangle(100, 100, 5, 5)
	orphan.MakeCW()
	result := ClassifyHoles([]Polygon{orphan})
	if len(result) != 0 {
		t.Errorf("expected orphan hole to be dropped, got %d ExPolygons", len(result))
	}
}

func TestExPolygonContainsPoint(t *testing.T) {
	outer := Rectangle(0, 0, 20, 20)
	inner := Rectangle(5, 5, 10, 10)
	ex := NewExPolygon(outer, inner)

	if !ex.ContainsPoint(coord.Point2DFromMM(1, 1)) {
		t.Errorf("(1,1) should be inside contour, outside hole")
	}
	if ex.ContainsPoint(coord.Point2DFromMM(10, 10)) {
		t.Errorf("(10,10) is inside the hole, should be excluded")
	}
}

func TestPolylineToPolygonDropsDuplicateClose(t *testing.T) {
	pts := []coord.Point2D{
		coord.Point2DFromMM(0, 0),
		coord.Point2DFromMM(10, 0),
		coord.Point2DFromMM(10, 10),
		coord.Point2DFromMM(0, 0),
	}
	pl := NewPolyline(pts)
	if !pl.IsClosed(1) {
		t.Errorf("expected closed polyline")
	}
	poly := pl.ToPolygon()
	if len(poly.Points) != 3 {
		t.Errorf("expected 3 points after dedup, got %d", len(poly.Points))
	}
}

func TestPolylineLengthMM(t *testing.T) {
	pl := NewPolyline([]coord.Point2D{
		coord.Point2DFromMM(0, 0),
		coord.Point2DFromMM(3, 0),
		coord.Point2DFromMM(3, 4),
	})
	if math.Abs(pl.LengthMM()-7) > 1e-6 {
		t.Errorf("length = %v, want 7", pl.LengthMM())
	}
}
