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

	"github.com/tessel3d/slicecore/coord"
	"github.com/tessel3d/slicecore/polygon"
)

// Pattern selects the infill line family.
type Pattern int

const (
	Rectilinear Pattern = iota
	Grid
	Honeycomb
)

// Settings configures pattern generation.
type Settings struct {
	Density     float64 // in [0,1]; 0 = no infill, 1 = solid (line-width spacing)
	Pattern     Pattern
	LineWidthMM float64
	AngleDeg    float64
	SpeedMMS    float64
}

// GenerateLines returns the infill sub-segments covering region, clipped to
// its boundary, for the given layerIndex (rectilinear alternates 0/90
// degrees by layer parity, matching spec.md's anti-banding rule).
func GenerateLines(region polygon.ExPolygon, settings Settings, layerIndex int) []polygon.Polyline {
	if settings.Density <= 0 {
		return nil
	}
	spacing := settings.LineWidthMM / settings.Density
	angles := anglesFor(settings.Pattern, settings.AngleDeg, layerIndex)

	bb := region.BoundingBox()
	var out []polygon.Polyline
	for _, angle := range angles {
		for _, ln := range familyLines(bb, angle, settings.LineWidthMM, spacing) {
			out = append(out, clipSegment(ln.p, ln.q, region)...)
		}
	}
	return out
}

func anglesFor(pattern Pattern, baseAngleDeg float64, layerIndex int) []float64 {
	switch pattern {
	case Grid:
		return []float64{baseAngleDeg, baseAngleDeg + 90}
	case Honeycomb:
		return []float64{baseAngleDeg, baseAngleDeg + 60, baseAngleDeg + 120}
	default: // Rectilinear
		return []float64{baseAngleDeg + float64(layerIndex%2)*90}
	}
}

type rawLine struct{ p, q coord.Point2D }

// familyLines returns one infinite-spanning line per spacing step across
// bb, rotated to angleDeg, each inset lineWidthMM/2 from the rotated
// bounding extent so adjacent beads don't overrun the region edge.
func familyLines(bb coord.BoundingBox2D, angleDeg, lineWidthMM, spacingMM float64) []rawLine {
	if bb.Empty() || spacingMM <= 0 {
		return nil
	}
	rad := angleDeg * math.Pi / 180
	dirX, dirY := math.Cos(rad), math.Sin(rad)
	perpX, perpY := -dirY, dirX

	corners := [4][2]float64{
		{bb.Min.X.ToMM(), bb.Min.Y.ToMM()},
		{bb.Max.X.ToMM(), bb.Min.Y.ToMM()},
		{bb.Max.X.ToMM(), bb.Max.Y.ToMM()},
		{bb.Min.X.ToMM(), bb.Max.Y.ToMM()},
	}
	perpMin, perpMax := math.Inf(1), math.Inf(-1)
	dirMin, dirMax := math.Inf(1), math.Inf(-1)
	for _, c := range corners {
		perpV := c[0]*perpX + c[1]*perpY
		dirV := c[0]*dirX + c[1]*dirY
		perpMin, perpMax = math.Min(perpMin, perpV), math.Max(perpMax, perpV)
		dirMin, dirMax = math.Min(dirMin, dirV), math.Max(dirMax, dirV)
	}
	margin := (dirMax-dirMin)*0.01 + 1
	dirMin -= margin
	dirMax += margin

	start := perpMin + lineWidthMM/2
	end := perpMax - lineWidthMM/2
	if end < start {
		return nil
	}

	// The 1e-9 slack keeps a count like 24.000000000000004 from rounding up
	// to an extra line that would only duplicate the clamped last one.
	n := int(math.Ceil((end-start)/spacingMM-1e-9)) + 1
	lines := make([]rawLine, 0, n)
	for i := 0; i < n; i++ {
		pos := start + float64(i)*spacingMM
		if pos > end {
			pos = end
		}
		p := coord.Point2DFromMM(pos*perpX+dirMin*dirX, pos*perpY+dirMin*dirY)
		q := coord.Point2DFromMM(pos*perpX+dirMax*dirX, pos*perpY+dirMax*dirY)
		lines = append(lines, rawLine{p, q})
	}
	return lines
}
