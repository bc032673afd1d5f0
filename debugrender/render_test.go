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

package debugrender

import (
	"bytes"
	"testing"

	"github.com/tessel3d/slicecore/polygon"
)

func TestRenderLayerProducesNonEmptyCoverage(t *testing.T) {
	ex := polygon.NewExPolygon(polygon.Rectangle(0, 0, 10, 10))
	img, err := RenderLayer([]polygon.ExPolygon{ex}, DefaultConfig())
	if err != nil {
		t.Fatalf("RenderLayer failed: %v", err)
	}

	var anySet bool
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if img.GrayAt(x, y).Y > 0 {
				anySet = true
			}
		}
	}
	if !anySet {
		t.Error("expected some covered pixels for a filled square")
	}
}

func TestRenderLayerHoleLeavesGapUncovered(t *testing.T) {
	contour := polygon.Rectangle(0, 0, 20, 20)
	hole := polygon.Rectangle(8, 8, 4, 4)
	ex := polygon.NewExPolygon(contour, hole)
	img, err := RenderLayer([]polygon.ExPolygon{ex}, DefaultConfig())
	if err != nil {
		t.Fatalf("RenderLayer failed: %v", err)
	}

	// Center of the hole, in device pixels: (10mm, 10mm) from the contour's
	// origin, offset by the margin, scaled by ScalePxPerMM.
	cfg := DefaultConfig()
	px := int((10 + cfg.MarginMM) * cfg.ScalePxPerMM)
	py := int((10 + cfg.MarginMM) * cfg.ScalePxPerMM)
	if img.GrayAt(px, py).Y != 0 {
		t.Errorf("expected hole center to be uncovered, got coverage %d", img.GrayAt(px, py).Y)
	}
}

func TestRenderLayerEmptyReturnsError(t *testing.T) {
	_, err := RenderLayer(nil, DefaultConfig())
	if err == nil {
		t.Error("expected error rendering an empty layer")
	}
}

func TestWritePNGRoundTrips(t *testing.T) {
	ex := polygon.NewExPolygon(polygon.Rectangle(0, 0, 5, 5))
	img, err := RenderLayer([]polygon.ExPolygon{ex}, DefaultConfig())
	if err != nil {
		t.Fatalf("RenderLayer failed: %v", err)
	}
	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected non-empty PNG output")
	}
}
