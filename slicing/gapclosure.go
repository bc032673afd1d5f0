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

package slicing

import (
	"math"

	"github.com/tessel3d/slicecore/coord"
)

// gridCell is an integer (x,y) cell coordinate in the phase-3 spatial grid,
// sized so that one cell spans the phase-3 gap limit.
type gridCell struct{ x, y int }

func cellOf(p coord.Point2D, cellSizeMM float64) gridCell {
	return gridCell{
		x: int(math.Floor(p.X.ToMM() / cellSizeMM)),
		y: int(math.Floor(p.Y.ToMM() / cellSizeMM)),
	}
}

// openEnd identifies one end of one open polyline, with its outward
// tangent direction (pointing away from the polyline, into the gap) for
// angle scoring.
type openEnd struct {
	lineIdx  int
	atStart  bool
	point    coord.Point2D
	tangentX float64
	tangentY float64
}

// tangentAt returns the outward unit tangent at pl's start or end: the
// direction from the second-to-outermost point to the outermost one.
func tangentAt(pl *polyline, atStart bool) (float64, float64) {
	n := len(pl.points)
	var a, b coord.Point2D
	if atStart {
		a, b = pl.points[min(1, n-1)], pl.points[0]
	} else {
		a, b = pl.points[n-2], pl.points[n-1]
	}
	dx := b.X.ToMM() - a.X.ToMM()
	dy := b.Y.ToMM() - a.Y.ToMM()
	length := math.Hypot(dx, dy)
	if length < 1e-12 {
		return 0, 0
	}
	return dx / length, dy / length
}

// phase3GapClosure closes remaining open polylines whose endpoints lie
// within the gap limit of another open polyline's endpoint, scoring
// candidates by a weighted blend of distance and tangent-angle deviation
// and greedily merging the globally best candidate first. A single open
// polyline whose own two ends already lie within the gap distance (one
// contour with one residual gap) is closed directly, without going through
// the pairwise angle-scored search.
func phase3GapClosure(lines []*polyline, maxGapMM, maxAngleDeg float64, stats *Stats) []*polyline {
	open, closed := splitClosed(lines)
	closed = closeSelfGaps(open, closed, maxGapMM, stats)
	if len(open) == 0 {
		return closed
	}

	cellSize := maxGapMM
	if cellSize <= 0 {
		for _, pl := range open {
			if pl != nil {
				closed = append(closed, pl)
			}
		}
		return closed
	}
	grid := make(map[gridCell][]int)
	ends := make([]openEnd, 0, len(open)*2)
	rebuildIndex := func() {
		grid = make(map[gridCell][]int)
		ends = ends[:0]
		for i, pl := range open {
			if pl == nil {
				continue
			}
			for _, atStart := range [2]bool{true, false} {
				pt := pl.start()
				if !atStart {
					pt = pl.end()
				}
				tx, ty := tangentAt(pl, atStart)
				ei := len(ends)
				ends = append(ends, openEnd{lineIdx: i, atStart: atStart, point: pt, tangentX: tx, tangentY: ty})
				cell := cellOf(pt, cellSize)
				grid[cell] = append(grid[cell], ei)
			}
		}
	}
	rebuildIndex()

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
						if e2.lineIdx == e1.lineIdx {
							continue
						}
						score, ok := gapScore(e1, e2, maxGapMM, maxAngleDeg)
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
		mergeAtEnds(open, e1, e2, maxGapMM)
		open[e2.lineIdx] = nil
		stats.GapsClosed++
		if open[e1.lineIdx] != nil && open[e1.lineIdx].closed {
			closed = append(closed, open[e1.lineIdx])
			open[e1.lineIdx] = nil
		}
		rebuildIndex()
	}

	for _, pl := range open {
		if pl != nil {
			closed = append(closed, pl)
		}
	}
	return closed
}

// gapScore returns the phase-3 connection cost for joining ends e1 and e2,
// or ok=false if either the distance or angle limit is exceeded.
func gapScore(e1, e2 openEnd, maxGapMM, maxAngleDeg float64) (float64, bool) {
	d := distMM(e1.point, e2.point)
	if d > maxGapMM {
		return 0, false
	}
	connX := e2.point.X.ToMM() - e1.point.X.ToMM()
	connY := e2.point.Y.ToMM() - e1.point.Y.ToMM()
	connLen := math.Hypot(connX, connY)

	angle1 := angleBetween(e1.tangentX, e1.tangentY, connX, connY, connLen)
	angle2 := angleBetween(e2.tangentX, e2.tangentY, -connX, -connY, connLen)

	limitRad := maxAngleDeg * math.Pi / 180
	if angle1 > limitRad || angle2 > limitRad {
		return 0, false
	}

	distanceCost := math.Min(d/maxGapMM, 1)
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

// mergeAtEnds splices the polyline at e2 onto the one at e1, orienting
// whichever endpoints are being joined so the result reads continuously.
func mergeAtEnds(open []*polyline, e1, e2 openEnd, maxGapMM float64) {
	a := open[e1.lineIdx]
	b := open[e2.lineIdx]
	switch {
	case !e1.atStart && e2.atStart:
		a.points = append(a.points, b.points...)
	case !e1.atStart && !e2.atStart:
		b.reverse()
		a.points = append(a.points, b.points...)
	case e1.atStart && !e2.atStart:
		a.points = append(b.points, a.points...)
	default: // both at start
		b.reverse()
		a.points = append(b.points, a.points...)
	}
	if closedWithinGapTolerance(a, maxGapMM) {
		closeLoop(a)
	}
}

func closedWithinGapTolerance(pl *polyline, maxGapMM float64) bool {
	if len(pl.points) < 3 {
		return false
	}
	return distMM(pl.start(), pl.end()) <= maxGapMM
}

// closeSelfGaps closes every open polyline whose own two ends already lie
// within the gap limit of each other, the single-contour case the
// pairwise search in phase3GapClosure never considers (it only pairs ends
// belonging to two distinct polylines).
func closeSelfGaps(open []*polyline, closed []*polyline, maxGapMM float64, stats *Stats) []*polyline {
	for i, pl := range open {
		if pl == nil {
			continue
		}
		if closedWithinGapTolerance(pl, maxGapMM) {
			closeLoop(pl)
			closed = append(closed, pl)
			open[i] = nil
			stats.GapsClosed++
		}
	}
	return closed
}
