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

	"github.com/unixpickle/essentials"

	"github.com/tessel3d/slicecore/infill"
	"github.com/tessel3d/slicecore/perimeter"
	"github.com/tessel3d/slicecore/toolpath"
)

// GenerateToolpaths turns every layer's ExPolygons into perimeter and
// infill paths per spec.md §4.9/§4.10: C9 walls from successive inward
// offsets of the contour (outward of holes), then C10 infill lines clipped
// to the region left after WallCount*WallThicknessMM is inset away.
// Collaborators (support, skirt/brim, path ordering, G-code emission) are
// deliberately not invoked here; callers compose them via the C11
// interfaces in package toolpath.
func GenerateToolpaths(result *SliceResult, cfg Config) [][]*toolpath.Path {
	perimSettings := cfg.perimeterSettings()
	out := make([][]*toolpath.Path, len(result.Layers))

	numGos := cfg.MaxWorkers
	if numGos <= 0 {
		numGos = runtime.GOMAXPROCS(0)
	}
	essentials.ConcurrentMap(numGos, len(result.Layers), func(i int) {
		out[i] = layerToolpaths(result.Layers[i], i, perimSettings, cfg)
	})
	return out
}

func layerToolpaths(layer Layer, layerIndex int, perimSettings perimeter.Settings, cfg Config) []*toolpath.Path {
	var paths []*toolpath.Path
	for _, ex := range layer.Polygons {
		paths = append(paths, perimeter.Generate(ex, perimSettings, layerIndex, layer.ZMM)...)

		region, ok := infill.Region(ex, cfg.WallCount, cfg.WallThicknessMM, cfg.Boolean)
		if !ok {
			continue
		}
		lines := infill.GenerateLines(region, cfg.Infill, layerIndex)
		extrusionRate := perimSettings.ExtrusionRateMM2(cfg.Infill.LineWidthMM)
		for _, ln := range lines {
			if len(ln.Points) < 2 {
				continue
			}
			paths = append(paths, toolpath.FromPolyline(ln, toolpath.InfillPath, layerIndex, layer.ZMM, cfg.Infill.SpeedMMS, extrusionRate))
		}
	}
	return paths
}
