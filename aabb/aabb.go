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

// Package aabb implements a Surface-Area-Heuristic bounding volume
// hierarchy over a triangle mesh, answering plane-intersection queries (for
// slicing) and ray-intersection queries (for debug probing and support
// generation).
package aabb

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"

	"github.com/tessel3d/slicecore/coord"
	"github.com/tessel3d/slicecore/mesh"
)

// MaxLeaf is the primitive count at or below which the builder always emits
// a leaf; larger ranges are split only when the best SAH split costs less
// than keeping them as one leaf.
const MaxLeaf = 8

// MaxDepth is the deepest the tree may recurse; beyond it a leaf is always
// emitted even if over MaxLeaf.
const MaxDepth = 20

// splitCandidates sets the candidate density per axis when scoring a split:
// ranges of at most this size try every position, larger ones try the
// median plus every (n/splitCandidates)-th position.
const splitCandidates = 8

// traversalCost and intersectCost are the SAH cost-model constants: the
// relative cost of descending one more node versus testing one more
// primitive.
const (
	traversalCost  = 1.0
	intersectCost  = 1.0
	hugeReciprocal = 1e18
)

// noChild is the sentinel left-child index that marks a node as a leaf;
// Build reserves Nodes[0], so no real child ever sits at index 0.
const noChild = 0

// Node is one entry in the tree's flat node array. A node is a leaf iff
// Left == noChild; otherwise Left and Right index child nodes.
type Node struct {
	Box   coord.BoundingBox3D
	Left  int32 // 0 (noChild) marks a leaf; otherwise index of left child
	Right int32
	// Offset/Count describe the leaf's primitive range into Tree.Primitives.
	Offset, Count int32
}

func (n *Node) isLeaf() bool { return n.Left == noChild }

// Tree is a built AABB hierarchy over a mesh's triangles.
type Tree struct {
	Mesh       *mesh.TriangleMesh
	Nodes      []Node
	Primitives []int32 // triangle indices, reordered during construction
	Root       int32   // index of the root node in Nodes; -1 for an empty tree
}

type buildPrimitive struct {
	triIndex int32
	box      coord.BoundingBox3D
	centroid coord.Point3D
}

// Build constructs an SAH AABB tree over m's current triangles. An empty
// mesh produces an empty tree: every query on it returns no results.
func Build(m *mesh.TriangleMesh) *Tree {
	n := len(m.Set.Triangles)
	t := &Tree{Mesh: m, Root: -1}
	if n == 0 {
		return t
	}

	prims := make([]buildPrimitive, n)
	essentials.ConcurrentMap(0, n, func(i int) {
		ti := int32(i)
		box := m.Set.TriangleBoundingBox(ti)
		prims[i] = buildPrimitive{triIndex: ti, box: box, centroid: box.Centroid()}
	})

	t.Nodes = append(t.Nodes, Node{}) // index 0 reserved as noChild sentinel
	t.Primitives = make([]int32, 0, n)
	t.Root = t.build(prims, 0)
	return t
}

// build recursively partitions prims[lo:hi] (the whole slice on entry),
// appending nodes to t.Nodes and primitive indices to t.Primitives, and
// returns the index of the node it created.
func (t *Tree) build(prims []buildPrimitive, depth int) int32 {
	parentBox := coord.NewEmptyBoundingBox3D()
	for _, p := range prims {
		parentBox = parentBox.Union(p.box)
	}

	if len(prims) <= MaxLeaf || depth >= MaxDepth {
		return t.emitLeaf(prims, parentBox)
	}

	bestAxis, bestSplit, bestCost := -1, -1, -1.0
	parentArea := parentBox.SurfaceArea()
	for axis := 0; axis < 3; axis++ {
		sorted := make([]buildPrimitive, len(prims))
		copy(sorted, prims)
		sort.Slice(sorted, func(i, j int) bool {
			return coord.Axis(sorted[i].centroid, axis) < coord.Axis(sorted[j].centroid, axis)
		})

		for _, split := range candidateSplits(len(sorted)) {
			if split <= 0 || split >= len(sorted) {
				continue
			}
			cost := sahCost(sorted[:split], sorted[split:], parentArea)
			if bestAxis == -1 || cost < bestCost {
				bestAxis, bestSplit, bestCost = axis, split, cost
				copy(prims, sorted)
			}
		}
	}

	leafCost := intersectCost * float64(len(prims))
	if bestAxis == -1 || bestCost >= leafCost {
		return t.emitLeaf(prims, parentBox)
	}

	// prims is now sorted along bestAxis (the last axis scanned whose split
	// improved on the running best leaves prims in that order); re-sort to
	// be certain, since a later axis may have been scanned after the best
	// was recorded but not have won.
	sort.Slice(prims, func(i, j int) bool {
		return coord.Axis(prims[i].centroid, bestAxis) < coord.Axis(prims[j].centroid, bestAxis)
	})

	nodeIdx := int32(len(t.Nodes))
	t.Nodes = append(t.Nodes, Node{Box: parentBox})

	left := t.build(prims[:bestSplit], depth+1)
	right := t.build(prims[bestSplit:], depth+1)
	t.Nodes[nodeIdx].Left = left
	t.Nodes[nodeIdx].Right = right
	return nodeIdx
}

func (t *Tree) emitLeaf(prims []buildPrimitive, box coord.BoundingBox3D) int32 {
	offset := int32(len(t.Primitives))
	for _, p := range prims {
		t.Primitives = append(t.Primitives, p.triIndex)
	}
	nodeIdx := int32(len(t.Nodes))
	t.Nodes = append(t.Nodes, Node{Box: box, Left: noChild, Offset: offset, Count: int32(len(prims))})
	return nodeIdx
}

// candidateSplits returns the candidate partition positions into a range of
// size n: every position 1..n-1 when n <= splitCandidates, otherwise the
// median followed by every multiple of n/splitCandidates below n.
func candidateSplits(n int) []int {
	median := n / 2
	if n <= splitCandidates {
		out := make([]int, 0, n-1)
		for i := 1; i < n; i++ {
			out = append(out, i)
		}
		return out
	}
	step := n / splitCandidates
	if step < 1 {
		step = 1
	}
	out := []int{median}
	for i := step; i < n; i += step {
		if i != median {
			out = append(out, i)
		}
	}
	return out
}

func sahCost(left, right []buildPrimitive, parentArea float64) float64 {
	if parentArea <= 0 {
		return 0
	}
	leftBox := coord.NewEmptyBoundingBox3D()
	for _, p := range left {
		leftBox = leftBox.Union(p.box)
	}
	rightBox := coord.NewEmptyBoundingBox3D()
	for _, p := range right {
		rightBox = rightBox.Union(p.box)
	}
	areaL := leftBox.SurfaceArea()
	areaR := rightBox.SurfaceArea()
	return traversalCost + (areaL*float64(len(left))+areaR*float64(len(right)))*intersectCost/parentArea
}

// Validate checks the structural invariants: every leaf's box bounds its
// primitives, leaf ranges stay within Primitives, child indices stay within
// Nodes, and depth never exceeds MaxDepth.
func (t *Tree) Validate() error {
	if t.Root < 0 {
		return nil
	}
	return t.validateNode(t.Root, 0)
}

func (t *Tree) validateNode(idx int32, depth int) error {
	if depth > MaxDepth {
		return errors.Errorf("aabb tree depth %d exceeds MaxDepth %d", depth, MaxDepth)
	}
	if idx < 0 || int(idx) >= len(t.Nodes) {
		return errors.Errorf("node index %d out of range (have %d nodes)", idx, len(t.Nodes))
	}
	n := t.Nodes[idx]
	if n.isLeaf() {
		if n.Offset < 0 || int(n.Offset+n.Count) > len(t.Primitives) {
			return errors.Errorf("leaf node %d range [%d,%d) out of bounds (have %d primitives)", idx, n.Offset, n.Offset+n.Count, len(t.Primitives))
		}
		for _, ti := range t.Primitives[n.Offset : n.Offset+n.Count] {
			bb := t.Mesh.Set.TriangleBoundingBox(ti)
			for axis := 0; axis < 3; axis++ {
				if bb.MinAxis(axis) < n.Box.MinAxis(axis) || bb.MaxAxis(axis) > n.Box.MaxAxis(axis) {
					return errors.Errorf("leaf node %d box does not bound triangle %d", idx, ti)
				}
			}
		}
		return nil
	}
	if err := t.validateNode(n.Left, depth+1); err != nil {
		return err
	}
	return t.validateNode(n.Right, depth+1)
}
