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

// Package toolpath defines the machine move/path types emitted by the core
// and the collaborator contracts (path ordering, G-code emission, support
// generation) that consume them.
package toolpath

import (
	"math"

	"github.com/tessel3d/slicecore/coord"
	"github.com/tessel3d/slicecore/polygon"
)

// MoveType classifies one printer motion.
type MoveType int

const (
	Travel MoveType = iota
	Extrude
	Retract
	Unretract
)

// Move is one straight segment of printer motion.
type Move struct {
	Type          MoveType
	Start, End    coord.Point2D
	SpeedMMS      float64
	ExtrusionRate float64 // mm^2 of cross-section; 0 for travel/retract/unretract
	ZMM           float64
}

// LengthMM returns the move's straight-line length.
func (m Move) LengthMM() float64 {
	dx := m.End.X.ToMM() - m.Start.X.ToMM()
	dy := m.End.Y.ToMM() - m.Start.Y.ToMM()
	return math.Hypot(dx, dy)
}

// PathType tags the role a Path plays in the print.
type PathType int

const (
	PerimeterOuter PathType = iota
	PerimeterInner
	InfillPath
	Support
	SupportInterface
	Skirt
	Brim
)

// Path is an ordered sequence of moves of one PathType, belonging to one
// layer. Closed paths' first and last points are distinct; the closing edge
// from the last move's end back to the first move's start is implicit.
type Path struct {
	Moves      []Move
	Type       PathType
	LayerIndex int
	Closed     bool

	lengthMM    float64
	lengthValid bool
}

// NewPath returns an empty path of the given type and layer.
func NewPath(pathType PathType, layerIndex int) *Path {
	return &Path{Type: pathType, LayerIndex: layerIndex}
}

// AddMove appends a move and invalidates the cached length.
func (p *Path) AddMove(m Move) {
	p.Moves = append(p.Moves, m)
	p.lengthValid = false
}

// LengthMM returns the total length of the path's moves, cached until the
// next AddMove.
func (p *Path) LengthMM() float64 {
	if p.lengthValid {
		return p.lengthMM
	}
	total := 0.0
	for _, m := range p.Moves {
		total += m.LengthMM()
	}
	p.lengthMM = total
	p.lengthValid = true
	return total
}

// FromPolygon builds a closed extrusion path tracing poly's edges
// (including poly's implicit closing edge), each move sized by speedMMS and
// extrusionRate.
func FromPolygon(poly polygon.Polygon, pathType PathType, layerIndex int, zMM, speedMMS, extrusionRate float64) *Path {
	p := NewPath(pathType, layerIndex)
	p.Closed = true
	n := len(poly.Points)
	for i := 0; i < n; i++ {
		a, b := poly.Points[i], poly.Points[(i+1)%n]
		p.AddMove(Move{Type: Extrude, Start: a, End: b, SpeedMMS: speedMMS, ExtrusionRate: extrusionRate, ZMM: zMM})
	}
	return p
}

// FromPolyline builds an open extrusion path tracing pl's segments.
func FromPolyline(pl polygon.Polyline, pathType PathType, layerIndex int, zMM, speedMMS, extrusionRate float64) *Path {
	p := NewPath(pathType, layerIndex)
	for i := 1; i < len(pl.Points); i++ {
		a, b := pl.Points[i-1], pl.Points[i]
		p.AddMove(Move{Type: Extrude, Start: a, End: b, SpeedMMS: speedMMS, ExtrusionRate: extrusionRate, ZMM: zMM})
	}
	return p
}

// PathOrderer rearranges a layer's paths (and may rotate a closed path's
// starting point) to minimize travel; it must preserve each path's type and
// must not add or drop moves.
type PathOrderer interface {
	Order(paths []*Path) []*Path
}

// SupportGenerator consumes a layer's solid geometry and appends new paths
// of type Support, SupportInterface, Skirt, or Brim. It may call boolop's
// offset/difference and infill's pattern generation to realise its patterns.
type SupportGenerator interface {
	Generate(layer []polygon.ExPolygon, layerIndex int, zMM float64) []*Path
}

// GCodeEmitter consumes an ordered path stream and produces a text stream.
// It is a collaborator contract only: no implementation lives in this
// module (STL/G-code I/O is explicitly out of scope).
type GCodeEmitter interface {
	Emit(paths []*Path) error
}
