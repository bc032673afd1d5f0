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

// BoundingBox2D is an axis-aligned box in the coord domain. The zero value
// is not a valid empty box; use NewEmptyBoundingBox2D or Include from a
// first point.
type BoundingBox2D struct {
	Min, Max Point2D
	empty    bool
}

// NewEmptyBoundingBox2D returns a box with no extent, ready for Include.
func NewEmptyBoundingBox2D() BoundingBox2D {
	return BoundingBox2D{empty: true}
}

// Empty reports whether the box has never had a point included.
func (b BoundingBox2D) Empty() bool { return b.empty }

// Include grows the box, if needed, so that it contains p. After any
// Include, Min <= Max component-wise.
func (b BoundingBox2D) Include(p Point2D) BoundingBox2D {
	if b.empty {
		return BoundingBox2D{Min: p, Max: p}
	}
	out := b
	if p.X < out.Min.X {
		out.Min.X = p.X
	}
	if p.Y < out.Min.Y {
		out.Min.Y = p.Y
	}
	if p.X > out.Max.X {
		out.Max.X = p.X
	}
	if p.Y > out.Max.Y {
		out.Max.Y = p.Y
	}
	return out
}

// Union returns the smallest box containing both b and o.
func (b BoundingBox2D) Union(o BoundingBox2D) BoundingBox2D {
	if b.empty {
		return o
	}
	if o.empty {
		return b
	}
	return b.Include(o.Min).Include(o.Max)
}

// Overlaps reports whether b and o share any area, boxes touching at an
// edge counting as overlap (<=, not <).
func (b BoundingBox2D) Overlaps(o BoundingBox2D) bool {
	if b.empty || o.empty {
		return false
	}
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y
}

// Contains reports whether p lies within b, inclusive of the boundary.
func (b BoundingBox2D) Contains(p Point2D) bool {
	if b.empty {
		return false
	}
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Expand returns a copy of b grown outward by d coord units on every side.
func (b BoundingBox2D) Expand(d Coord) BoundingBox2D {
	if b.empty {
		return b
	}
	return BoundingBox2D{
		Min: Point2D{X: b.Min.X - d, Y: b.Min.Y - d},
		Max: Point2D{X: b.Max.X + d, Y: b.Max.Y + d},
	}
}

// BoundingBox3D is an axis-aligned box over Point3D, used for mesh and
// triangle extents feeding the AABB tree.
type BoundingBox3D struct {
	Min, Max Point3D
	empty    bool
}

// NewEmptyBoundingBox3D returns a box with no extent, ready for Include.
func NewEmptyBoundingBox3D() BoundingBox3D {
	return BoundingBox3D{empty: true}
}

// Empty reports whether the box has never had a point included.
func (b BoundingBox3D) Empty() bool { return b.empty }

// Include grows the box, if needed, so that it contains p.
func (b BoundingBox3D) Include(p Point3D) BoundingBox3D {
	if b.empty {
		return BoundingBox3D{Min: p, Max: p}
	}
	out := b
	if p.X < out.Min.X {
		out.Min.X = p.X
	}
	if p.Y < out.Min.Y {
		out.Min.Y = p.Y
	}
	if p.Z < out.Min.Z {
		out.Min.Z = p.Z
	}
	if p.X > out.Max.X {
		out.Max.X = p.X
	}
	if p.Y > out.Max.Y {
		out.Max.Y = p.Y
	}
	if p.Z > out.Max.Z {
		out.Max.Z = p.Z
	}
	return out
}

// Union returns the smallest box containing both b and o.
func (b BoundingBox3D) Union(o BoundingBox3D) BoundingBox3D {
	if b.empty {
		return o
	}
	if o.empty {
		return b
	}
	return b.Include(o.Min).Include(o.Max)
}

// SurfaceArea returns the surface area of the box, the cost term the SAH
// split heuristic (C5) weighs primitive counts against.
func (b BoundingBox3D) SurfaceArea() float64 {
	if b.empty {
		return 0
	}
	dx := float64(b.Max.X-b.Min.X) / Scale
	dy := float64(b.Max.Y-b.Min.Y) / Scale
	dz := float64(b.Max.Z-b.Min.Z) / Scale
	return 2 * (dx*dy + dy*dz + dz*dx)
}

// ContainsZ reports whether the horizontal plane at z (in coord units)
// intersects the box's Z extent, inclusive of the boundary.
func (b BoundingBox3D) ContainsZ(z Coord) bool {
	if b.empty {
		return false
	}
	return z >= b.Min.Z && z <= b.Max.Z
}

// Centroid returns the box's midpoint, used to sort primitives along an
// axis during AABB construction.
func (b BoundingBox3D) Centroid() Point3D {
	return Point3D{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

// Axis returns the component of p along the given axis (0=X, 1=Y, 2=Z).
func Axis(p Point3D, axis int) Coord {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// MinAxis returns the box's minimum along the given axis.
func (b BoundingBox3D) MinAxis(axis int) Coord { return Axis(b.Min, axis) }

// MaxAxis returns the box's maximum along the given axis.
func (b BoundingBox3D) MaxAxis(axis int) Coord { return Axis(b.Max, axis) }
