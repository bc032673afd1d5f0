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

package gapclose

import (
	"testing"

	"github.com/tessel3d/slicecore/coord"
	"github.com/tessel3d/slicecore/polygon"
)

func lineOf(pts ...coord.Point2D) polygon.Polyline {
	return polygon.NewPolyline(pts)
}

func TestCloseAlreadyClosedPassesThrough(t *testing.T) {
	loop := lineOf(
		coord.Point2DFromMM(0, 0),
		coord.Point2DFromMM(10, 0),
		coord.Point2DFromMM(10, 10),
		coord.Point2DFromMM(0, 10),
		coord.Point2DFromMM(0, 0),
	)
	closed, open, stats := Close([]polygon.Polyline{loop}, DefaultConfig())
	if len(closed) != 1 || len(open) != 0 {
		t.Fatalf("expected 1 closed polygon and 0 open, got %d/%d", len(closed), len(open))
	}
	if stats.GapsClosed != 0 || stats.OpenIn != 0 {
		t.Errorf("expected no gap-closing work for an already-closed loop, got %+v", stats)
	}
}

func TestCloseJoinsTwoOpenHalvesWithinGap(t *testing.T) {
	// Two open polylines that together trace a 10x10 square, split with a
	// 1.5mm gap at one corner (within the 2mm default limit).
	a := lineOf(
		coord.Point2DFromMM(0, 0),
		coord.Point2DFromMM(10, 0),
		coord.Point2DFromMM(10, 10),
	)
	b := lineOf(
		coord.Point2DFromMM(10, 10),
		coord.Point2DFromMM(0, 10),
		coord.Point2DFromMM(0, 1.5),
	)
	closed, open, stats := Close([]polygon.Polyline{a, b}, DefaultConfig())
	if stats.GapsClosed != 1 {
		t.Errorf("expected 1 gap closed, got %d (stats=%+v)", stats.GapsClosed, stats)
	}
	if len(closed) != 1 || len(open) != 0 {
		t.Fatalf("expected the two halves to merge into one closed polygon, got closed=%d open=%d", len(closed), len(open))
	}
}

func TestCloseLeavesDistantGapOpen(t *testing.T) {
	a := lineOf(coord.Point2DFromMM(0, 0), coord.Point2DFromMM(10, 0))
	b := lineOf(coord.Point2DFromMM(100, 100), coord.Point2DFromMM(110, 100))
	closed, open, stats := Close([]polygon.Polyline{a, b}, DefaultConfig())
	if stats.GapsClosed != 0 {
		t.Errorf("expected no gap closure across a 100+mm distance, got %d", stats.GapsClosed)
	}
	if len(closed) != 0 || len(open) != 2 {
		t.Errorf("expected both polylines to remain open, got closed=%d open=%d", len(closed), len(open))
	}
}

func TestCloseRejectsSharpAngleBeyondLimit(t *testing.T) {
	cfg := DefaultConfig()
	// a's outward tangent at its open end points toward +X; b's open end sits
	// almost directly below a's, so the connection vector is near-vertical:
	// a sharp turn that should exceed the 45 degree default angle limit.
	a := lineOf(coord.Point2DFromMM(0, 0), coord.Point2DFromMM(10, 0))
	b := lineOf(coord.Point2DFromMM(10, -1.9), coord.Point2DFromMM(20, -1.9))
	_, _, stats := Close([]polygon.Polyline{a, b}, cfg)
	if stats.GapsClosed != 0 {
		t.Errorf("expected the sharp-angle candidate to be rejected, got GapsClosed=%d", stats.GapsClosed)
	}
}
