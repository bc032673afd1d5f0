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

package coord

import "testing"

func TestRoundTripMM(t *testing.T) {
	cases := []float64{0, 1, -1, 3.14159, 100.000001, -7.5}
	for _, mm := range cases {
		c := FromMM(mm)
		got := c.ToMM()
		if diff := got - mm; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("FromMM(%v).ToMM() = %v, diff %v exceeds 1e-9mm", mm, got, diff)
		}
	}
}

func TestSqrt(t *testing.T) {
	cases := []struct {
		in   Coord
		want Coord
	}{
		{0, 0},
		{-5, 0},
		{Coord(100 * 100), 100},
		{Coord(9), 3},
	}
	for _, c := range cases {
		if got := Sqrt(c.in); got != c.want {
			t.Errorf("Sqrt(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestBoundingBox2DInclude(t *testing.T) {
	b := NewEmptyBoundingBox2D()
	if !b.Empty() {
		t.Fatalf("new box should be empty")
	}
	b = b.Include(Point2DFromMM(1, 2)).Include(Point2DFromMM(-1, 5))
	if b.Min.X > b.Max.X || b.Min.Y > b.Max.Y {
		t.Fatalf("Min must be <= Max after Include, got min=%v max=%v", b.Min, b.Max)
	}
	if !b.Contains(Point2DFromMM(0, 3)) {
		t.Errorf("expected box to contain interior point")
	}
	if b.Contains(Point2DFromMM(10, 10)) {
		t.Errorf("expected box to not contain far point")
	}
}

func TestBoundingBox2DOverlaps(t *testing.T) {
	a := NewEmptyBoundingBox2D().Include(Point2DFromMM(0, 0)).Include(Point2DFromMM(2, 2))
	b := NewEmptyBoundingBox2D().Include(Point2DFromMM(2, 2)).Include(Point2DFromMM(4, 4))
	if !a.Overlaps(b) {
		t.Errorf("touching boxes should overlap")
	}
	c := NewEmptyBoundingBox2D().Include(Point2DFromMM(10, 10)).Include(Point2DFromMM(12, 12))
	if a.Overlaps(c) {
		t.Errorf("disjoint boxes should not overlap")
	}
}

func TestCrossAntisymmetry(t *testing.T) {
	a := Point2DFromMM(1, 0)
	b := Point2DFromMM(0, 1)
	if a.Cross(b) != -b.Cross(a) {
		t.Errorf("cross product must be antisymmetric")
	}
}

func TestVec3fNormalize(t *testing.T) {
	v := Vec3f{X: 3, Y: 4, Z: 0}
	n := v.Normalize()
	if l := n.Length(); l < 0.999 || l > 1.001 {
		t.Errorf("normalized length = %v, want ~1", l)
	}
	zero := Vec3f{}.Normalize()
	if zero != (Vec3f{}) {
		t.Errorf("normalizing zero vector should return zero, got %v", zero)
	}
}
