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

package slicer

import (
	"fmt"
	"strings"

	"github.com/tessel3d/slicecore/polygon"
	"github.com/tessel3d/slicecore/slicing"
)

// Layer is one printable Z height and the ExPolygons the mesh resolves to
// there.
type Layer struct {
	ZMM      float64
	Polygons []polygon.ExPolygon

	// ChainStats records what the segment chainer did at this height,
	// useful for diagnosing dirty-mesh input across a whole slice.
	ChainStats slicing.Stats
}

// DumpPolygons formats the layer's contours and holes as a plain
// newline-separated point list in millimetres, the debug-dump format
// spec.md's "persisted intermediate state" section calls for: no binary
// encoding, just points a caller can eyeball or pipe into a plotting tool.
func (l Layer) DumpPolygons() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# layer z=%.4f polygons=%d\n", l.ZMM, len(l.Polygons))
	for i, ex := range l.Polygons {
		fmt.Fprintf(&b, "contour %d\n", i)
		dumpPolygon(&b, ex.Contour)
		for j, h := range ex.Holes {
			fmt.Fprintf(&b, "hole %d.%d\n", i, j)
			dumpPolygon(&b, h)
		}
	}
	return b.String()
}

func dumpPolygon(b *strings.Builder, p polygon.Polygon) {
	for _, pt := range p.Points {
		fmt.Fprintf(b, "%.6f %.6f\n", pt.X.ToMM(), pt.Y.ToMM())
	}
}

// SliceResult is the ordered (ascending Z) output of SliceMesh, plus
// accumulated chaining statistics across every layer.
type SliceResult struct {
	Layers []Layer
	Stats  SliceStats
}

// SliceStats aggregates per-layer slicing.Stats across a whole SliceResult.
type SliceStats struct {
	SegmentsIn    int
	PolygonsOut   int
	OpenDiscarded int
	GapsClosed    int
	TopologyJoins int
	EndpointJoins int
}

func (s *SliceStats) add(ls slicing.Stats) {
	s.SegmentsIn += ls.SegmentsIn
	s.PolygonsOut += ls.PolygonsOut
	s.OpenDiscarded += ls.OpenDiscarded
	s.GapsClosed += ls.GapsClosed
	s.TopologyJoins += ls.TopologyJoins
	s.EndpointJoins += ls.EndpointJoins
}
