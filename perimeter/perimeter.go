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

// Package perimeter generates wall-loop toolpaths from a layer's contours
// and holes by successive inward/outward offsetting.
package perimeter

import (
	"math"

	"github.com/tessel3d/slicecore/boolop"
	"github.com/tessel3d/slicecore/polygon"
	"github.com/tessel3d/slicecore/toolpath"
)

// Settings configures wall generation and the extrusion model.
type Settings struct {
	WallCount         int
	WallThicknessMM   float64
	LayerHeightMM     float64
	NozzleDiameterMM  float64
	OuterWallSpeedMMS float64
	InnerWallSpeedMMS float64
	Boolean           boolop.Config
}

// ExtrusionRateMM2 returns the cross-sectional area (mm^2, i.e. mm^3 of
// filament per mm of path) of a wall bead printed at lineWidthMM under
// Settings' LayerHeightMM, modeled as a rectangular core capped by two
// half-circles of radius LayerHeightMM/2 (a stadium cross-section), the
// shape a flattened round nozzle actually extrudes. Lines narrower than the
// nozzle cannot be extruded cleanly; the effective width is floored at half
// the nozzle diameter.
func (s Settings) ExtrusionRateMM2(lineWidthMM float64) float64 {
	width := math.Max(lineWidthMM, s.NozzleDiameterMM/2)
	radius := s.LayerHeightMM / 2
	rectWidth := math.Max(width-s.LayerHeightMM, 0)
	return rectWidth*s.LayerHeightMM + math.Pi*radius*radius
}

// Generate produces one Path per wall loop of ex, for walls i in
// [0, Settings.WallCount): each at inward offset i*WallThicknessMM +
// WallThicknessMM/2 from the contour, and outward by the same amount from
// every hole. Wall 0 is PerimeterOuter; every other wall, and every hole
// wall, is PerimeterInner. Offsets that collapse (area below boolop's
// threshold) are silently dropped, matching spec's "rejects collapsed
// offsets" requirement.
func Generate(ex polygon.ExPolygon, settings Settings, layerIndex int, zMM float64) []*toolpath.Path {
	var paths []*toolpath.Path
	extrusionRate := settings.ExtrusionRateMM2(settings.WallThicknessMM)

	for i := 0; i < settings.WallCount; i++ {
		inset := float64(i)*settings.WallThicknessMM + settings.WallThicknessMM/2
		pathType := toolpath.PerimeterInner
		speed := settings.InnerWallSpeedMMS
		if i == 0 {
			pathType = toolpath.PerimeterOuter
			speed = settings.OuterWallSpeedMMS
		}

		for _, poly := range boolop.Offset([]polygon.Polygon{ex.Contour}, -inset, settings.Boolean) {
			paths = append(paths, toolpath.FromPolygon(poly, pathType, layerIndex, zMM, speed, extrusionRate))
		}
		for _, hole := range boolop.Offset(ex.Holes, -inset, settings.Boolean) {
			paths = append(paths, toolpath.FromPolygon(hole, toolpath.PerimeterInner, layerIndex, zMM, speed, extrusionRate))
		}
	}
	return paths
}
