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

package infill

import (
	"math"
	"testing"

	"github.com/tessel3d/slicecore/boolop"
	"github.com/tessel3d/slicecore/coord"
	"github.com/tessel3d/slicecore/polygon"
)

func TestGenerateLinesRectilinearMatchesLineCount(t *testing.T) {
	ex := polygon.NewExPolygon(polygon.Rectangle(0, 0, 10, 10))
	settings := Settings{
		Density:     0.2,
		Pattern:     Rectilinear,
		LineWidthMM: 0.4,
		AngleDeg:    0,
		SpeedMMS:    50,
	}
	lines := GenerateLines(ex, settings, 0)
	if len(lines) != 6 {
		t.Fatalf("expected 6 infill segments, got %d", len(lines))
	}
	total := 0.0
	for _, ln := range lines {
		total += ln.LengthMM()
	}
	if math.Abs(total-60) > 1 {
		t.Errorf("total infill length = %v, want ~60", total)
	}
}

func TestGenerateLinesZeroDensityReturnsNothing(t *testing.T) {
	ex := polygon.NewExPolygon(polygon.Rectangle(0, 0, 10, 10))
	lines := GenerateLines(ex, Settings{Density: 0, LineWidthMM: 0.4}, 0)
	if lines != nil {
		t.Errorf("expected no lines at zero density, got %d", len(lines))
	}
}

func TestGenerateLinesFullDensityUsesLineWidthSpacing(t *testing.T) {
	ex := polygon.NewExPolygon(polygon.Rectangle(0, 0, 10, 10))
	settings := Settings{Density: 1, Pattern: Rectilinear, LineWidthMM: 0.4, AngleDeg: 0}
	lines := GenerateLines(ex, settings, 0)
	// spacing == line width at density 1: ceil((10-0.4)/0.4)+1 = 25 lines.
	if len(lines) != 25 {
		t.Fatalf("expected 25 infill segments at full density, got %d", len(lines))
	}
}

func TestGenerateLinesRectilinearAlternatesByLayerParity(t *testing.T) {
	ex := polygon.NewExPolygon(polygon.Rectangle(0, 0, 10, 10))
	settings := Settings{Density: 0.2, Pattern: Rectilinear, LineWidthMM: 0.4, AngleDeg: 0}
	even := GenerateLines(ex, settings, 0)
	odd := GenerateLines(ex, settings, 1)
	if len(even) == 0 || len(odd) == 0 {
		t.Fatal("expected non-empty infill on both layer parities")
	}
	// Both layers fill a square so line counts match even though the
	// direction rotates 90 degrees between them.
	if len(even) != len(odd) {
		t.Errorf("even/odd layer segment counts differ: %d vs %d", len(even), len(odd))
	}
}

func TestGenerateLinesGridProducesTwoFamilies(t *testing.T) {
	ex := polygon.NewExPolygon(polygon.Rectangle(0, 0, 10, 10))
	settings := Settings{Density: 0.2, Pattern: Grid, LineWidthMM: 0.4, AngleDeg: 0}
	gridLines := GenerateLines(ex, settings, 0)

	rectSettings := settings
	rectSettings.Pattern = Rectilinear
	rectLines := GenerateLines(ex, rectSettings, 0)

	// Grid draws both the 0 and 90 degree families every layer, so it
	// should produce roughly twice as many segments as a single rectilinear
	// family covering the same square.
	if len(gridLines) < len(rectLines)*2-2 {
		t.Errorf("expected grid to cover ~2x the rectilinear segment count, got %d vs %d", len(gridLines), len(rectLines))
	}
}

func TestGenerateLinesHoneycombProducesThreeFamilies(t *testing.T) {
	ex := polygon.NewExPolygon(polygon.Rectangle(0, 0, 10, 10))
	settings := Settings{Density: 0.2, Pattern: Honeycomb, LineWidthMM: 0.4, AngleDeg: 0}
	lines := GenerateLines(ex, settings, 0)
	if len(lines) == 0 {
		t.Fatal("expected honeycomb infill to produce segments")
	}
}

func TestGenerateLinesSkipsHoleInterior(t *testing.T) {
	contour := polygon.Rectangle(0, 0, 10, 10)
	hole := polygon.Rectangle(3, 3, 4, 4)
	ex := polygon.NewExPolygon(contour, hole)
	settings := Settings{Density: 0.2, Pattern: Rectilinear, LineWidthMM: 0.4, AngleDeg: 0}
	lines := GenerateLines(ex, settings, 0)
	for _, ln := range lines {
		// Clipped sub-segment endpoints may land exactly on the hole
		// boundary; the midpoint is what must stay out of the hole.
		a, b := ln.Start(), ln.End()
		mid := coord.Point2D{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
		if hole.ContainsPoint(mid) {
			t.Fatalf("infill line passes through hole interior at %v", mid)
		}
	}

	// Lines at y=4.2 and y=6.2 cross the 4x4 hole, each losing 4mm of the
	// 10mm span: 6*10 - 2*4 = 52mm total.
	total := 0.0
	for _, ln := range lines {
		total += ln.LengthMM()
	}
	if math.Abs(total-52) > 1 {
		t.Errorf("total infill length = %v, want ~52", total)
	}
}

func TestRegionInsetsByWallStack(t *testing.T) {
	ex := polygon.NewExPolygon(polygon.Rectangle(0, 0, 10, 10))
	region, ok := Region(ex, 2, 0.4, boolop.DefaultConfig())
	if !ok {
		t.Fatal("expected region to remain after insetting")
	}
	// Inset by 2*0.4 = 0.8mm on every side: 10 - 2*0.8 = 8.4mm square.
	want := 8.4 * 8.4
	if math.Abs(region.AreaMM2()-want) > 1e-2 {
		t.Errorf("region area = %v, want ~%v", region.AreaMM2(), want)
	}
}

func TestRegionCollapsesWhenWallsExceedPart(t *testing.T) {
	ex := polygon.NewExPolygon(polygon.Rectangle(0, 0, 1, 10))
	_, ok := Region(ex, 3, 1, boolop.DefaultConfig())
	if ok {
		t.Error("expected region to collapse when the wall stack exceeds the part's width")
	}
}
