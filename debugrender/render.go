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
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/pkg/errors"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"github.com/tessel3d/slicecore/coord"
	"github.com/tessel3d/slicecore/polygon"
)

// Config controls how a layer is rasterized to a device-space image.
type Config struct {
	// ScalePxPerMM sets the device resolution. Must be positive.
	ScalePxPerMM float64
	// MarginMM pads the layer's bounding box on every side.
	MarginMM float64
}

// DefaultConfig returns a Config suitable for quick visual inspection.
func DefaultConfig() Config {
	return Config{ScalePxPerMM: 10, MarginMM: 2}
}

// RenderLayer rasterizes every ExPolygon in layer into a single grayscale
// coverage image (nonzero winding, so each ExPolygon's CW holes correctly
// subtract from its CCW contour). Returns an error if the layer is empty.
func RenderLayer(layer []polygon.ExPolygon, cfg Config) (*image.Gray, error) {
	if cfg.ScalePxPerMM <= 0 {
		return nil, errors.New("debugrender: ScalePxPerMM must be positive")
	}

	bb := coord.NewEmptyBoundingBox2D()
	for _, ex := range layer {
		bb = bb.Union(ex.BoundingBox())
	}
	if bb.Empty() {
		return nil, errors.New("debugrender: layer has no polygons to render")
	}

	originX := bb.Min.X.ToMM() - cfg.MarginMM
	originY := bb.Min.Y.ToMM() - cfg.MarginMM
	widthMM := bb.Max.X.ToMM() - bb.Min.X.ToMM() + 2*cfg.MarginMM
	heightMM := bb.Max.Y.ToMM() - bb.Min.Y.ToMM() + 2*cfg.MarginMM

	widthPx := int(math.Ceil(widthMM * cfg.ScalePxPerMM))
	heightPx := int(math.Ceil(heightMM * cfg.ScalePxPerMM))
	if widthPx <= 0 || heightPx <= 0 {
		return nil, errors.New("debugrender: degenerate layer extent")
	}

	img := image.NewGray(image.Rect(0, 0, widthPx, heightPx))

	s := cfg.ScalePxPerMM
	// Flip Y: printer-space Y grows up, image rows grow down.
	ctm := matrix.Matrix{s, 0, 0, -s, -originX * s, float64(heightPx) + originY*s}

	r := NewRasterizer(rect.Rect{LLx: 0, LLy: 0, URx: float64(widthPx), URy: float64(heightPx)})
	r.CTM = ctm

	for _, ex := range layer {
		r.FillNonZero(ex.AllPolygons(), func(y, xMin int, coverage []float32) {
			for i, c := range coverage {
				cur := img.GrayAt(xMin+i, y).Y
				v := float64(cur) + float64(c)*255
				if v > 255 {
					v = 255
				}
				img.SetGray(xMin+i, y, color.Gray{Y: uint8(v)})
			}
		})
	}

	return img, nil
}

// WritePNG encodes img as a PNG to w.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return errors.Wrap(err, "debugrender: encoding PNG")
	}
	return nil
}
