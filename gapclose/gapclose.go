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

// Package gapclose repairs already-formed polygon sets whose open polylines
// failed to close during chaining, by the same scored endpoint-pairing
// algorithm slicing's phase 3 uses internally, here operating directly on
// polygon.Polyline values rather than the chainer's private polyline type.
package gapclose

import (
	"math"

	"github.com/tessel3d/slicecore/coord"
	"github.com/tessel3d/slicecore/polygon"
)

// Config holds the distance and angle limits used to accept a candidate gap
// closure. Zero value is invalid; use DefaultConfig.
type Config struct {
	MaxGapDistanceMM float64
	MaxAngleDeg      float64
}

// DefaultConfig matches spec.md's gap-closing defaults: a 2mm search radius
// and a 45 degree angular tolerance.
func DefaultConfig() Config {
	return Config{MaxGapDistanceMM: 2.0, MaxAngleDeg: 45.0}
}

// Stats reports what the closing pass did, mirroring slicing.Stats's
// gap-closure fields so callers can aggregate across both call sites.
type Stats struct {
	OpenIn       int
	ClosedOut    int
	GapsClosed   int
	StillOpenOut int
}

// gridCell is an integer spatial bucket sized to one MaxGapDistanceMM cell.
type gridCell struct{ x, y int }

func cellOf(p coord.Point2D, cellSizeMM float64) gridCell {
	return gridCell{
		x: int(math.Floor(p.X.ToMM() / cellSizeMM)),
		y: int(math.Floor(p.Y.ToMM() / cellSizeMM)),
	}
}

// openEnd identifies one end of one open polyline plus its outward tangent.
type openEnd struct {
	idx      int
	atStart  bool
	point    coord.Point2D
	tangentX float64
	tangentY float64
}

const closeToleranceMM = 1e-6

var closeToleranceSq = func() int64 {
	c := coord.FromMM(closeToleranceMM)
	return int64(c) * int64(c)
}()

// Close takes a set of lines that chaining (or an external producer) left
// unresolved: some may already be closed loops (Polyline.IsClosed within
// closeToleranceMM), the rest genuinely open. It attempts to join the open
// ones' endpoints pairwise within cfg's distance/angle limits, and returns
// the resulting closed polygons (pre-existing loops plus newly merged ones)
// and whatever remains open after the best-effort pass.
func Close(lines []polygon.Polyline, cfg Config) (closed []polygon.Polygon, stillOpen []polygon.Polyline, stats Stats) {
	var open []*polygon.Polyline
	for i := range lines {
		pl := lines[i]
		if pl.IsClosed(closeToleranceSq) {
			closed = append(closed, pl.ToPolygon())
			continue
		}
		open = append(open, &pl)
	}
	stats.OpenIn = len(open)

	if len(open) >= 1 {
		closeGaps(open, cfg, &stats)
	}

	for _, pl := range open {
		if pl == nil {
			continue
		}
		if pl.IsClosed(closeToleranceSq) && len(pl.Points) >= 3 {
			closed = append(closed, pl.ToPolygon())
		} else {
			stats.StillOpenOut++
			stillOpen = append(stillOpen, *pl)
		}
	}
	stats.ClosedOut = len(closed)
	return closed, stillOpen, stats
}

func distMM(a, b coord.Point2D) float64 {
	dx := a.X.ToMM() - b.X.ToMM()
	dy := a.Y.ToMM() - b.Y.ToMM()
	return math.Hypot(dx, dy)
}

// closeGaps first closes any open polyline whose own two ends are already
// within cfg's gap distance (a single contour with one residual gap), then
// greedily merges the globally best-scoring candidate pair of distinct open
// ends each round, rebuilding the spatial index after every merge and
// re-checking self-closure, until no candidate survives cfg's limits or
// every polyline has a home.
func closeGaps(open []*polygon.Polyline, cfg Config, stats *Stats) {
	cellSize := cfg.MaxGapDistanceMM
	if cellSize <= 0 {
		cellSize = 2.0
	}

	for _, pl := range open {
		if pl == nil {
			continue
		}
		if trySnapClosed(pl, cfg) {
			stats.GapsClosed++
		}
	}

	var ends []openEnd
	grid := make(map[gridCell][]int)
	rebuild := func() {
		grid = make(map[gridCell][]int)
		ends = ends[:0]
		for i, pl := range open {
			if pl == nil {
				continue
			}
			if len(pl.Points) >= 3 && pl.Start() == pl.End() {
				continue
			}
			for _, atStart := range [2]bool{true, false} {
				pt := pl.Start()
				if !atStart {
					pt = pl.End()
				}
				tx, ty := tangentAt(pl, atStart)
				ei := len(ends)
				ends = append(ends, openEnd{idx: i, atStart: atStart, point: pt, tangentX: tx, tangentY: ty})
				grid[cellOf(pt, cellSize)] = append(grid[cellOf(pt, cellSize)], ei)
			}
		}
	}
	rebuild()

	maxRounds := len(open) + 1
	for round := 0; round < maxRounds; round++ {
		bestScore := math.Inf(1)
		bestI, bestJ := -1, -1
		for i, e1 := range ends {
			cell := cellOf(e1.point, cellSize)
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					for _, j := range grid[gridCell{cell.x + dx, cell.y + dy}] {
						if j <= i {
							continue
						}
						e2 := ends[j]
						if e2.idx == e1.idx {
							continue
						}
						score, ok := gapScore(e1, e2, cfg)
						if ok && score < bestScore {
							bestScore, bestI, bestJ = score, i, j
						}
					}
				}
			}
		}
		if bestI == -1 {
			break
		}
		e1, e2 := ends[bestI], ends[bestJ]
		mergeAtEnds(open, e1, e2)
		open[e2.idx] = nil
		stats.GapsClosed++
		trySnapClosed(open[e1.idx], cfg)
		rebuild()
	}
}

// trySnapClosed closes pl in place if its two endpoints already lie within
// cfg's gap distance, snapping the last point onto the first so the later
// Polyline.IsClosed check (which uses a much tighter tolerance) recognizes
// it as closed. Reports whether it closed pl.
func trySnapClosed(pl *polygon.Polyline, cfg Config) bool {
	if pl == nil || len(pl.Points) < 3 {
		return false
	}
	if distMM(pl.Start(), pl.End()) > cfg.MaxGapDistanceMM {
		return false
	}
	pl.Points[len(pl.Points)-1] = pl.Points[0]
	return true
}

func tangentAt(pl *polygon.Polyline, atStart bool) (float64, float64) {
	n := len(pl.Points)
	var a, b coord.Point2D
	if atStart {
		a, b = pl.Points[min(1, n-1)], pl.Points[0]
	} else {
		a, b = pl.Points[n-2], pl.Points[n-1]
	}
	dx := b.X.ToMM() - a.X.ToMM()
	dy := b.Y.ToMM() - a.Y.ToMM()
	length := math.Hypot(dx, dy)
	if length < 1e-12 {
		return 0, 0
	}
	return dx / length, dy / length
}

func gapScore(e1, e2 openEnd, cfg Config) (float64, bool) {
	d := distMM(e1.point, e2.point)
	if d > cfg.MaxGapDistanceMM {
		return 0, false
	}
	connX := e2.point.X.ToMM() - e1.point.X.ToMM()
	connY := e2.point.Y.ToMM() - e1.point.Y.ToMM()
	connLen := math.Hypot(connX, connY)

	angle1 := angleBetween(e1.tangentX, e1.tangentY, connX, connY, connLen)
	angle2 := angleBetween(e2.tangentX, e2.tangentY, -connX, -connY, connLen)

	limitRad := cfg.MaxAngleDeg * math.Pi / 180
	if angle1 > limitRad || angle2 > limitRad {
		return 0, false
	}

	distanceCost := math.Min(d/cfg.MaxGapDistanceMM, 1)
	angleCost := math.Min((angle1+angle2)/2/limitRad, 1)
	return 0.6*distanceCost + 0.4*angleCost, true
}

func angleBetween(ax, ay, bx, by, blen float64) float64 {
	alen := math.Hypot(ax, ay)
	if alen < 1e-12 || blen < 1e-12 {
		return 0
	}
	cosT := (ax*bx + ay*by) / (alen * blen)
	cosT = math.Max(-1, math.Min(1, cosT))
	return math.Acos(cosT)
}

// mergeAtEnds splices the polyline at e2 onto the one at e1 in whichever of
// the four orientations the joined ends require, so the shared endpoint is
// not duplicated when the two ends coincide exactly.
func mergeAtEnds(open []*polygon.Polyline, e1, e2 openEnd) {
	a := open[e1.idx]
	b := open[e2.idx]
	if e1.atStart {
		a.Reverse()
	}
	if !e2.atStart {
		b.Reverse()
	}
	pts := b.Points
	if len(pts) > 0 && len(a.Points) > 0 && pts[0] == a.Points[len(a.Points)-1] {
		pts = pts[1:]
	}
	a.Points = append(a.Points, pts...)
}
