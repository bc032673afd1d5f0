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

package toolpath

import (
	"github.com/tessel3d/slicecore/boolop"
	"github.com/tessel3d/slicecore/polygon"
)

// SkirtGenerator draws Loops concentric outward offsets of the first
// layer's outer contours, each DistanceMM apart, starting FirstOffsetMM
// away from the model. It is a minimal reference SupportGenerator: real
// skirts also dedupe contours that are very close together, which this
// reference implementation does not attempt.
type SkirtGenerator struct {
	Loops         int
	FirstOffsetMM float64
	DistanceMM    float64
	SpeedMMS      float64
	ExtrusionRate float64
	Config        boolop.Config
}

// Generate emits one closed Skirt path per loop, per contour present in
// layer, at layerIndex's height zMM. It ignores holes: skirts trace only
// the outer silhouette.
func (s SkirtGenerator) Generate(layer []polygon.ExPolygon, layerIndex int, zMM float64) []*Path {
	var contours []polygon.Polygon
	for _, ex := range layer {
		contours = append(contours, ex.Contour)
	}
	if len(contours) == 0 {
		return nil
	}

	var paths []*Path
	for i := 0; i < s.Loops; i++ {
		dist := s.FirstOffsetMM + float64(i)*s.DistanceMM
		loop := boolop.Offset(contours, dist, s.Config)
		for _, poly := range loop {
			paths = append(paths, FromPolygon(poly, Skirt, layerIndex, zMM, s.SpeedMMS, s.ExtrusionRate))
		}
	}
	return paths
}
