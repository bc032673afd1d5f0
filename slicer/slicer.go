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

package slicer

import (
	"runtime"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"

	"github.com/tessel3d/slicecore/aabb"
	"github.com/tessel3d/slicecore/coord"
	"github.com/tessel3d/slicecore/mesh"
	"github.com/tessel3d/slicecore/polygon"
	"github.com/tessel3d/slicecore/slicing"
)

// LayerHeightsMM returns the ascending Z heights SliceMesh will cut at,
// given the mesh's bounding box and cfg's first/subsequent layer heights.
// The first layer is centered at cfg.FirstLayerHeightMM/2 the way a real
// print's first layer is measured from the bed, not from zero.
func LayerHeightsMM(bb coord.BoundingBox3D, cfg Config) []float64 {
	if bb.Empty() {
		return nil
	}
	zMin := bb.Min.Z.ToMM()
	zMax := bb.Max.Z.ToMM()
	if cfg.FirstLayerHeightMM <= 0 || cfg.LayerHeightMM <= 0 {
		return nil
	}

	var heights []float64
	z := zMin + cfg.FirstLayerHeightMM/2
	for z <= zMax {
		heights = append(heights, z)
		z += cfg.LayerHeightMM
	}
	return heights
}

// SliceMesh runs the full per-layer pipeline (§5 of spec.md): an AABB-tree
// plane query at each height, plane-triangle intersection, three-phase
// segment chaining, and hole classification into ExPolygons. Layers are
// data-parallel (the pipeline is a pure function of mesh, tree, and height)
// so essentials.ConcurrentMap fans them out across goroutines that share
// the read-only mesh and tree and write into disjoint slots of a
// pre-sized result array, matching spec.md's "one worker per layer"
// scheduling model.
func SliceMesh(m *mesh.TriangleMesh, tree *aabb.Tree, cfg Config) (*SliceResult, error) {
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "slicer: invalid mesh")
	}

	heights := LayerHeightsMM(m.Stats().BoundingBox, cfg)
	layers := make([]Layer, len(heights))

	numGos := cfg.MaxWorkers
	if numGos <= 0 {
		numGos = runtime.GOMAXPROCS(0)
	}
	essentials.ConcurrentMap(numGos, len(heights), func(i int) {
		layers[i] = sliceOneLayer(m, tree, heights[i], cfg)
	})

	result := &SliceResult{Layers: layers}
	for _, l := range layers {
		result.Stats.add(l.ChainStats)
	}
	return result, nil
}

func sliceOneLayer(m *mesh.TriangleMesh, tree *aabb.Tree, zMM float64, cfg Config) Layer {
	z := coord.FromMM(zMM)
	segs := slicing.BuildSegments(m, tree, z)
	polys, stats := slicing.ChainWithLimits(segs, cfg.GapClose.MaxGapDistanceMM, cfg.GapClose.MaxAngleDeg)
	return Layer{
		ZMM:        zMM,
		Polygons:   polygon.ClassifyHoles(polys),
		ChainStats: stats,
	}
}
