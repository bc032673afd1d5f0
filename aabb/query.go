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

import "github.com/tessel3d/slicecore/coord"

// PlaneQuery appends to out the index of every triangle whose bounding box
// straddles the horizontal plane Z=z, and returns the grown slice. Per-box
// coverage does not imply the triangle's geometry actually crosses the
// plane; callers refine with the exact triangle-plane predicate.
func (t *Tree) PlaneQuery(z coord.Coord, out []int32) []int32 {
	if t.Root < 0 {
		return out
	}
	return t.planeQueryNode(t.Root, z, out)
}

func (t *Tree) planeQueryNode(idx int32, z coord.Coord, out []int32) []int32 {
	n := &t.Nodes[idx]
	if !n.Box.ContainsZ(z) {
		return out
	}
	if n.isLeaf() {
		for _, ti := range t.Primitives[n.Offset : n.Offset+n.Count] {
			if t.Mesh.Set.TriangleBoundingBox(ti).ContainsZ(z) {
				out = append(out, ti)
			}
		}
		return out
	}
	out = t.planeQueryNode(n.Left, z, out)
	out = t.planeQueryNode(n.Right, z, out)
	return out
}

// Ray is a 3D ray, with Dir not required to be normalized (RayHit.T is
// measured in units of Dir's length).
type Ray struct {
	Origin coord.Vec3f
	Dir    coord.Vec3f
}

// RayHit describes the nearest triangle a ray intersects.
type RayHit struct {
	TriIndex int32
	T        float32
	Point    coord.Vec3f
	Normal   coord.Vec3f
}

// RayQuery returns the nearest positive-t intersection between r and the
// mesh's triangles, or (RayHit{}, false) if the ray misses everything.
func (t *Tree) RayQuery(r Ray) (RayHit, bool) {
	if t.Root < 0 {
		return RayHit{}, false
	}
	invDir := coord.Vec3f{X: safeRecip(r.Dir.X), Y: safeRecip(r.Dir.Y), Z: safeRecip(r.Dir.Z)}
	best := RayHit{}
	bestT := float32(-1)
	t.rayQueryNode(t.Root, r, invDir, &best, &bestT)
	if bestT < 0 {
		return RayHit{}, false
	}
	return best, true
}

func safeRecip(v float32) float32 {
	if v == 0 {
		return hugeReciprocal
	}
	return 1 / v
}

// slabTest returns (tNear, hit) for the ray-box intersection, clamping
// division by zero via the caller-supplied reciprocal.
func slabTest(box coord.BoundingBox3D, r Ray, invDir coord.Vec3f) (float32, bool) {
	if box.Empty() {
		return 0, false
	}
	tMin, tMax := float32(0), float32(1e30)
	mins := [3]float32{float32(box.Min.X.ToMM()), float32(box.Min.Y.ToMM()), float32(box.Min.Z.ToMM())}
	maxs := [3]float32{float32(box.Max.X.ToMM()), float32(box.Max.Y.ToMM()), float32(box.Max.Z.ToMM())}
	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	invs := [3]float32{invDir.X, invDir.Y, invDir.Z}

	for axis := 0; axis < 3; axis++ {
		t0 := (mins[axis] - origin[axis]) * invs[axis]
		t1 := (maxs[axis] - origin[axis]) * invs[axis]
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

func (t *Tree) rayQueryNode(idx int32, r Ray, invDir coord.Vec3f, best *RayHit, bestT *float32) {
	n := &t.Nodes[idx]
	if _, hit := slabTest(n.Box, r, invDir); !hit {
		return
	}
	if n.isLeaf() {
		for i := n.Offset; i < n.Offset+n.Count; i++ {
			triIdx := t.Primitives[i]
			a, b, c := t.Mesh.Set.TriangleVertices(triIdx)
			if hit, ok := rayTriangleMollerTrumbore(r, a, b, c); ok {
				if hit.T > 0 && (*bestT < 0 || hit.T < *bestT) {
					hit.TriIndex = triIdx
					*best = hit
					*bestT = hit.T
				}
			}
		}
		return
	}
	t.rayQueryNode(n.Left, r, invDir, best, bestT)
	t.rayQueryNode(n.Right, r, invDir, best, bestT)
}

// rayTriangleMollerTrumbore implements the standard watertight-free
// Möller–Trumbore ray-triangle test.
func rayTriangleMollerTrumbore(r Ray, a, b, c coord.Vec3f) (RayHit, bool) {
	const epsilon = 1e-8
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	h := r.Dir.Cross(edge2)
	det := edge1.Dot(h)
	if det > -epsilon && det < epsilon {
		return RayHit{}, false
	}
	invDet := 1 / det
	s := r.Origin.Sub(a)
	u := invDet * s.Dot(h)
	if u < 0 || u > 1 {
		return RayHit{}, false
	}
	q := s.Cross(edge1)
	v := invDet * r.Dir.Dot(q)
	if v < 0 || u+v > 1 {
		return RayHit{}, false
	}
	dist := invDet * edge2.Dot(q)
	if dist <= epsilon {
		return RayHit{}, false
	}
	point := r.Origin.Add(r.Dir.Scale(dist))
	normal := edge1.Cross(edge2).Normalize()
	return RayHit{T: dist, Point: point, Normal: normal}, true
}
