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
	"github.com/tessel3d/slicecore/polygon"
)

// closeToleranceMM is how close a growing polyline's open end must come to
// its start before phases 1 and 2 consider the loop closed.
const closeToleranceMM = 1e-6

// maxGapDistanceMM is the default phase-3 search radius: open ends farther
// apart than this are never candidates for gap closure.
const maxGapDistanceMM = 2.0

// maxGapAngleDeg is the default phase-3 angular limit.
const maxGapAngleDeg = 45.0

// polyline is the chainer's working representation: an ordered list of
// points plus, for each point, the mesh edge/vertex ids that produced it
// (parallel to Points; used only while phase 1 is still matching on
// topology).
type polyline struct {
	points  []coord.Point2D
	closed  bool
	edgeEnd [2]int32 // mesh edge id at the start/end, noID if not applicable
	vertEnd [2]int32 // mesh vertex id at the start/end, noID if not applicable
}

func (pl *polyline) start() coord.Point2D { return pl.points[0] }
func (pl *polyline) end() coord.Point2D   { return pl.points[len(pl.points)-1] }

func (pl *polyline) reverse() {
	pts := pl.points
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
	pl.edgeEnd[0], pl.edgeEnd[1] = pl.edgeEnd[1], pl.edgeEnd[0]
	pl.vertEnd[0], pl.vertEnd[1] = pl.vertEnd[1], pl.vertEnd[0]
}

// Stats counts what happened during chaining, for callers that want to
// monitor mesh quality across layers.
type Stats struct {
	SegmentsIn    int
	PolygonsOut   int
	OpenDiscarded int
	GapsClosed    int
	TopologyJoins int
	EndpointJoins int
}

// Chain assembles a layer's unoriented segments into closed, CCW polygons,
// running the three chaining phases in strict priority order: topology,
// then exact endpoint matching, then bounded-distance gap closure, using
// the default gap-closure limits.
func Chain(segments []Segment) ([]polygon.Polygon, Stats) {
	return ChainWithLimits(segments, maxGapDistanceMM, maxGapAngleDeg)
}

// ChainWithLimits is Chain with caller-supplied phase-3 limits: open ends
// farther apart than maxGapMM, or requiring a turn sharper than
// maxAngleDeg, are never joined.
func ChainWithLimits(segments []Segment, maxGapMM, maxAngleDeg float64) ([]polygon.Polygon, Stats) {
	stats := Stats{SegmentsIn: len(segments)}
	if len(segments) == 0 {
		return nil, stats
	}

	open := phase1TopologyChain(segments, &stats)
	open = phase2EndpointChain(open, &stats)
	open = phase3GapClosure(open, maxGapMM, maxAngleDeg, &stats)

	var polys []polygon.Polygon
	for _, pl := range open {
		if pl.closed && len(pl.points) >= 3 {
			p := polygon.New(pl.points)
			p.MakeCCW()
			polys = append(polys, p)
		} else {
			stats.OpenDiscarded++
		}
	}
	stats.PolygonsOut = len(polys)
	return polys, stats
}

// phase1TopologyChain builds edge-id and vertex-id lookup maps over segment
// indices, then greedily grows polylines from each unconsumed segment by
// preferring a neighbour that shares topology with the open end.
func phase1TopologyChain(segments []Segment, stats *Stats) []*polyline {
	byEdge := make(map[int32][]int)
	byVertex := make(map[int32][]int)
	for i, s := range segments {
		for _, ep := range [2]Endpoint{s.A, s.B} {
			if ep.EdgeID != noID {
				byEdge[ep.EdgeID] = append(byEdge[ep.EdgeID], i)
			}
			if ep.VertexID != noID {
				byVertex[ep.VertexID] = append(byVertex[ep.VertexID], i)
			}
		}
	}

	consumed := make([]bool, len(segments))
	var result []*polyline

	findNeighbour := func(edgeID, vertexID int32, exclude int) (int, bool, bool) {
		// Returns (segment index, matchedAtA, ok); matchedAtA tells the
		// caller which endpoint of the candidate segment touched the
		// shared topology, so it knows whether to reverse the candidate.
		if edgeID != noID {
			for _, idx := range byEdge[edgeID] {
				if idx == exclude || consumed[idx] {
					continue
				}
				return idx, segments[idx].A.EdgeID == edgeID, true
			}
		}
		if vertexID != noID {
			for _, idx := range byVertex[vertexID] {
				if idx == exclude || consumed[idx] {
					continue
				}
				return idx, segments[idx].A.VertexID == vertexID, true
			}
		}
		return 0, false, false
	}

	for i := range segments {
		if consumed[i] {
			continue
		}
		consumed[i] = true
		s := segments[i]
		pl := &polyline{
			points:  []coord.Point2D{s.A.Point, s.B.Point},
			edgeEnd: [2]int32{s.A.EdgeID, s.B.EdgeID},
			vertEnd: [2]int32{s.A.VertexID, s.B.VertexID},
		}

		// Extend the open (tail) end, then the open (head) end, each until
		// no topology-matched neighbour remains or the loop closes.
		for side := 0; side < 2; side++ {
			for {
				var edgeID, vertexID int32
				if side == 0 {
					edgeID, vertexID = pl.edgeEnd[1], pl.vertEnd[1]
				} else {
					edgeID, vertexID = pl.edgeEnd[0], pl.vertEnd[0]
				}
				idx, matchedAtA, ok := findNeighbour(edgeID, vertexID, i)
				if !ok {
					break
				}
				n := segments[idx]
				consumed[idx] = true
				stats.TopologyJoins++
				appendNeighbour(pl, n, side == 1, matchedAtA)
				if closedWithinTolerance(pl) {
					closeLoop(pl)
					break
				}
			}
			if pl.closed {
				break
			}
		}
		result = append(result, pl)
	}
	return result
}

// appendNeighbour merges segment n onto pl at the tail (atHead=false) or
// head (atHead=true). matchedAtA indicates n's shared endpoint was n.A, so
// n's far endpoint is n.B (and vice versa); the segment is reversed as
// needed so its shared endpoint abuts pl's existing point.
func appendNeighbour(pl *polyline, n Segment, atHead, matchedAtA bool) {
	far := n.B
	if !matchedAtA {
		far = n.A
	}
	if atHead {
		pl.points = append([]coord.Point2D{far.Point}, pl.points...)
		pl.edgeEnd[0], pl.vertEnd[0] = far.EdgeID, far.VertexID
	} else {
		pl.points = append(pl.points, far.Point)
		pl.edgeEnd[1], pl.vertEnd[1] = far.EdgeID, far.VertexID
	}
}

func closedWithinTolerance(pl *polyline) bool {
	if len(pl.points) < 3 {
		return false
	}
	return distMM(pl.start(), pl.end()) <= closeToleranceMM
}

func closeLoop(pl *polyline) {
	pl.points = pl.points[:len(pl.points)-1]
	pl.closed = true
}

func distMM(a, b coord.Point2D) float64 {
	dx := a.X.ToMM() - b.X.ToMM()
	dy := a.Y.ToMM() - b.Y.ToMM()
	return math.Hypot(dx, dy)
}

// phase2EndpointChain joins remaining open polylines whose endpoints
// coincide within closeToleranceMM, trying all four orientations, to a
// fixed point bounded by the number of open polylines.
func phase2EndpointChain(lines []*polyline, stats *Stats) []*polyline {
	open, closed := splitClosed(lines)

	maxRounds := len(open) + 1
	for round := 0; round < maxRounds; round++ {
		merged := false
		for i := 0; i < len(open); i++ {
			if open[i] == nil {
				continue
			}
			for j := i + 1; j < len(open); j++ {
				if open[j] == nil {
					continue
				}
				if tryMergeEndpoints(open[i], open[j], stats) {
					open[j] = nil
					merged = true
					if open[i].closed {
						closed = append(closed, open[i])
						open[i] = nil
					}
					break
				}
			}
		}
		if !merged {
			break
		}
	}

	result := closed
	for _, pl := range open {
		if pl != nil {
			result = append(result, pl)
		}
	}
	return result
}

func splitClosed(lines []*polyline) (open, closed []*polyline) {
	for _, pl := range lines {
		if pl.closed {
			closed = append(closed, pl)
		} else {
			open = append(open, pl)
		}
	}
	return open, closed
}

// tryMergeEndpoints attempts to splice b onto a in whichever of the four
// orientations coincides within tolerance, mutating a in place.
func tryMergeEndpoints(a, b *polyline, stats *Stats) bool {
	switch {
	case distMM(a.end(), b.start()) <= closeToleranceMM:
		a.points = append(a.points, b.points[1:]...)
	case distMM(a.end(), b.end()) <= closeToleranceMM:
		b.reverse()
		a.points = append(a.points, b.points[1:]...)
	case distMM(a.start(), b.end()) <= closeToleranceMM:
		a.points = append(b.points, a.points[1:]...)
	case distMM(a.start(), b.start()) <= closeToleranceMM:
		b.reverse()
		a.points = append(b.points, a.points[1:]...)
	default:
		return false
	}
	stats.EndpointJoins++
	if closedWithinTolerance(a) {
		closeLoop(a)
	}
	return true
}
