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

package toolpath

import "github.com/tessel3d/slicecore/coord"

// NearestNeighborOrderer reorders a layer's paths greedily: starting from
// StartPoint, repeatedly picks whichever remaining path's nearer endpoint
// (start or end) is closest to the current position, rotating a closed
// path's move sequence so it begins at that endpoint. It never adds or
// drops moves and leaves every path's Type untouched.
type NearestNeighborOrderer struct {
	StartPoint coord.Point2D
}

func (o NearestNeighborOrderer) Order(paths []*Path) []*Path {
	remaining := append([]*Path{}, paths...)
	out := make([]*Path, 0, len(paths))
	pos := o.StartPoint

	for len(remaining) > 0 {
		bestIdx := -1
		bestDistSq := int64(0)
		bestReverse := false
		for i, p := range remaining {
			if len(p.Moves) == 0 {
				continue
			}
			dStart := pos.DistSq(p.Moves[0].Start)
			dEnd := pos.DistSq(p.Moves[len(p.Moves)-1].End)
			if bestIdx == -1 || dStart < bestDistSq {
				bestIdx, bestDistSq, bestReverse = i, dStart, false
			}
			if dEnd < bestDistSq {
				bestIdx, bestDistSq, bestReverse = i, dEnd, true
			}
		}
		if bestIdx == -1 {
			// every remaining path is empty; append them in order and stop.
			out = append(out, remaining...)
			break
		}
		p := remaining[bestIdx]
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
		if bestReverse {
			reversePath(p)
		}
		if p.Closed {
			rotateToStart(p, pos)
		}
		out = append(out, p)
		if len(p.Moves) > 0 {
			pos = p.Moves[len(p.Moves)-1].End
		}
	}
	return out
}

func reversePath(p *Path) {
	moves := p.Moves
	for i, j := 0, len(moves)-1; i < j; i, j = i+1, j-1 {
		moves[i], moves[j] = moves[j], moves[i]
	}
	for i := range moves {
		moves[i].Start, moves[i].End = moves[i].End, moves[i].Start
	}
	p.lengthValid = false
}

// rotateToStart rotates a closed path's move sequence so that the move
// beginning nearest pos comes first, without adding or dropping moves.
func rotateToStart(p *Path, pos coord.Point2D) {
	if len(p.Moves) < 2 {
		return
	}
	bestI := 0
	bestDistSq := pos.DistSq(p.Moves[0].Start)
	for i, m := range p.Moves {
		d := pos.DistSq(m.Start)
		if d < bestDistSq {
			bestI, bestDistSq = i, d
		}
	}
	if bestI == 0 {
		return
	}
	rotated := make([]Move, 0, len(p.Moves))
	rotated = append(rotated, p.Moves[bestI:]...)
	rotated = append(rotated, p.Moves[:bestI]...)
	p.Moves = rotated
	p.lengthValid = false
}
