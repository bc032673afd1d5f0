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
	"math"
	"strings"
	"testing"

	"github.com/tessel3d/slicecore/aabb"
	"github.com/tessel3d/slicecore/coord"
	"github.com/tessel3d/slicecore/mesh"
)

// cubeMesh builds a size x size x size cube spanning [0,size], 12 triangles,
// the same construction slicing_test.go uses.
func cubeMesh(size float32) *mesh.TriangleMesh {
	m := mesh.NewTriangleMesh()
	v := func(x, y, z float32) int32 { return m.AddVertex(coord.Vec3f{X: x, Y: y, Z: z}) }
	v000, v100, v110, v010 := v(0, 0, 0), v(size, 0, 0), v(size, size, 0), v(0, size, 0)
	v001, v101, v111, v011 := v(0, 0, size), v(size, 0, size), v(size, size, size), v(0, size, size)

	quads := [][4]int32{
		{v000, v010, v110, v100},
		{v001, v101, v111, v011},
		{v000, v100, v101, v001},
		{v010, v011, v111, v110},
		{v000, v001, v011, v010},
		{v100, v110, v111, v101},
	}
	for _, q := range quads {
		m.AddTriangle(q[0], q[1], q[2])
		m.AddTriangle(q[0], q[2], q[3])
	}
	return m
}

func TestSliceMeshUnitCubeFiveLayers(t *testing.T) {
	m := cubeMesh(10)
	tree := aabb.Build(m)
	cfg := DefaultConfig()
	cfg.LayerHeightMM = 2
	cfg.FirstLayerHeightMM = 2

	result, err := SliceMesh(m, tree, cfg)
	if err != nil {
		t.Fatalf("SliceMesh: %v", err)
	}
	if len(result.Layers) != 5 {
		t.Fatalf("expected 5 layers, got %d", len(result.Layers))
	}

	mid := result.Layers[2]
	if len(mid.Polygons) != 1 {
		t.Fatalf("expected 1 ExPolygon at the middle layer, got %d", len(mid.Polygons))
	}
	area := math.Abs(mid.Polygons[0].AreaMM2())
	if math.Abs(area-100) > 1e-6 {
		t.Errorf("middle layer area = %v, want ~100", area)
	}

	volume := 0.0
	for _, l := range result.Layers {
		for _, ex := range l.Polygons {
			volume += math.Abs(ex.AreaMM2()) * cfg.LayerHeightMM
		}
	}
	if math.Abs(volume-1000) > 300 {
		t.Errorf("reconstructed volume = %v, want within 30%% of 1000", volume)
	}
}

func TestSliceMeshEmptyMeshProducesNoLayers(t *testing.T) {
	m := mesh.NewTriangleMesh()
	tree := aabb.Build(m)
	result, err := SliceMesh(m, tree, DefaultConfig())
	if err != nil {
		t.Fatalf("SliceMesh: %v", err)
	}
	if len(result.Layers) != 0 {
		t.Errorf("expected no layers for an empty mesh, got %d", len(result.Layers))
	}
}

func TestGenerateToolpathsProducesOuterWallPerLayer(t *testing.T) {
	m := cubeMesh(10)
	tree := aabb.Build(m)
	cfg := DefaultConfig()
	cfg.LayerHeightMM = 2
	cfg.FirstLayerHeightMM = 2

	result, err := SliceMesh(m, tree, cfg)
	if err != nil {
		t.Fatalf("SliceMesh: %v", err)
	}
	paths := GenerateToolpaths(result, cfg)
	if len(paths) != len(result.Layers) {
		t.Fatalf("expected one path slice per layer, got %d for %d layers", len(paths), len(result.Layers))
	}
	for i, layerPaths := range paths {
		if len(result.Layers[i].Polygons) == 0 {
			continue
		}
		if len(layerPaths) == 0 {
			t.Errorf("layer %d: expected at least the outer wall path", i)
		}
	}
}

func TestLayerDumpPolygonsIncludesHeightAndPoints(t *testing.T) {
	m := cubeMesh(10)
	tree := aabb.Build(m)
	cfg := DefaultConfig()
	cfg.LayerHeightMM = 2
	cfg.FirstLayerHeightMM = 2
	result, err := SliceMesh(m, tree, cfg)
	if err != nil {
		t.Fatalf("SliceMesh: %v", err)
	}
	dump := result.Layers[2].DumpPolygons()
	if !strings.Contains(dump, "contour 0") {
		t.Errorf("expected dump to mention contour 0, got: %s", dump)
	}
}
