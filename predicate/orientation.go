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

// Package predicate implements the exact geometric predicates the slicer
// core builds on: orientation, segment intersection, point-in-polygon,
// point-to-segment distance, and triangle-plane intersection.
package predicate

import "github.com/tessel3d/slicecore/coord"

// Orientation is the sign of the turn from a to c about vertex b (or,
// equivalently, the side of line a→b that c falls on).
type Orientation int

const (
	Clockwise        Orientation = -1
	Collinear        Orientation = 0
	CounterClockwise Orientation = 1
)

// Orient returns the orientation of (a,b,c): the sign of
// (b-a) × (c-a), computed exactly in the integer coord domain.
func Orient(a, b, c coord.Point2D) Orientation {
	cross := b.Sub(a).Cross(c.Sub(a))
	switch {
	case cross > 0:
		return CounterClockwise
	case cross < 0:
		return Clockwise
	default:
		return Collinear
	}
}

// OrientInt64 returns the raw cross-product value underlying Orient,
// for callers that need the magnitude (e.g. area accumulation) rather
// than just the sign.
func OrientInt64(a, b, c coord.Point2D) int64 {
	return b.Sub(a).Cross(c.Sub(a))
}
