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

// Package slicer wires the core's leaf components (mesh, AABB tree,
// plane-slice chaining, gap closure, boolean offset, perimeters, infill)
// into the top-level per-layer pipeline: mesh -> AABB tree -> per-height
// plane query -> segment chaining -> ExPolygons -> wall and infill paths.
package slicer

import (
	"github.com/tessel3d/slicecore/boolop"
	"github.com/tessel3d/slicecore/gapclose"
	"github.com/tessel3d/slicecore/infill"
	"github.com/tessel3d/slicecore/perimeter"
)

// Config bundles every recognized slicer option from a single flat struct,
// the way the teacher's Rasterizer bundles its tunables, constructed via
// DefaultConfig rather than requiring every caller to fill in every field.
type Config struct {
	// LayerHeightMM is the Z step between layers after the first.
	LayerHeightMM float64
	// FirstLayerHeightMM is the Z height of the first layer; must be positive.
	FirstLayerHeightMM float64

	NozzleDiameterMM  float64
	ExtrusionWidthMM  float64
	WallCount         int
	WallThicknessMM   float64

	Infill infill.Settings

	TravelSpeedMMS    float64
	OuterWallSpeedMMS float64
	InnerWallSpeedMMS float64
	InfillSpeedMMS    float64

	Boolean boolop.Config

	// GapClose bounds the chainer's phase-3 gap closure and any
	// post-chain repair pass.
	GapClose gapclose.Config

	// MaxWorkers caps the number of goroutines slicing layers concurrently.
	// 0 (or any value below 1) means runtime.GOMAXPROCS(0).
	MaxWorkers int
}

// DefaultConfig returns a Config with the spec's documented defaults: 0.2mm
// layers, 0.4mm nozzle/extrusion width, 2 walls, 20% rectilinear infill.
func DefaultConfig() Config {
	return Config{
		LayerHeightMM:      0.2,
		FirstLayerHeightMM: 0.2,
		NozzleDiameterMM:   0.4,
		ExtrusionWidthMM:   0.4,
		WallCount:          2,
		WallThicknessMM:    0.4,
		Infill: infill.Settings{
			Density:     0.2,
			Pattern:     infill.Rectilinear,
			LineWidthMM: 0.4,
			AngleDeg:    0,
			SpeedMMS:    80,
		},
		TravelSpeedMMS:    150,
		OuterWallSpeedMMS: 40,
		InnerWallSpeedMMS: 60,
		InfillSpeedMMS:    80,
		Boolean:           boolop.DefaultConfig(),
		GapClose:          gapclose.DefaultConfig(),
	}
}

// perimeterSettings projects the flat Config into perimeter.Settings.
func (c Config) perimeterSettings() perimeter.Settings {
	return perimeter.Settings{
		WallCount:         c.WallCount,
		WallThicknessMM:   c.WallThicknessMM,
		LayerHeightMM:     c.LayerHeightMM,
		NozzleDiameterMM:  c.NozzleDiameterMM,
		OuterWallSpeedMMS: c.OuterWallSpeedMMS,
		InnerWallSpeedMMS: c.InnerWallSpeedMMS,
		Boolean:           c.Boolean,
	}
}
