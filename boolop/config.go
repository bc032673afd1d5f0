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

// Package boolop implements polygon boolean combination (union,
// intersection, difference, XOR) via Sutherland-Hodgman clipping, and
// morphological offsetting adapted from stroke-outline corner-join math.
// Corners join by miter, round or bevel (the graphics.LineJoinStyle
// values); there is no square join.
package boolop

import "seehuhn.de/go/pdf/graphics"

// Op selects a boolean combination.
type Op int

const (
	Union Op = iota
	Intersection
	Difference
	XOR
)

// EndType describes how an open polyline's ends are capped when offsetting
// treats it as a stroke rather than a closed contour.
type EndType int

const (
	OpenButt EndType = iota
	OpenSquare
	OpenRound
	Closed
)

// Config bundles the tunables every boolean and offset operation reads.
// Zero values are not meaningful; use DefaultConfig.
type Config struct {
	// SafetyOffsetMM absorbs numerical noise at coincident boundaries
	// (e.g. before a difference that would otherwise leave a sliver).
	SafetyOffsetMM float64
	// MiterLimit caps the scale factor applied at a sharp miter corner
	// before the join falls back to a single edge-normal offset.
	MiterLimit float64
	// DecimationFactor is the maximum fractional edge deviation permitted
	// when simplifying an offset result.
	DecimationFactor float64
	JoinType         graphics.LineJoinStyle
	End              EndType
}

// DefaultConfig returns the documented defaults: 10µm safety offset, 3.0
// miter limit, 0.005 decimation factor, miter joins, closed ends.
func DefaultConfig() Config {
	return Config{
		SafetyOffsetMM:   0.01,
		MiterLimit:       3.0,
		DecimationFactor: 0.005,
		JoinType:         graphics.LineJoinMiter,
		End:              Closed,
	}
}
