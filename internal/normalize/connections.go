package normalize

import (
	"gridfix/internal/primitives"
)

type pathAxis int

const (
	axisH pathAxis = iota
	axisV
)

// Pass 6: re-anchor each connection endpoint onto the current border
// of the box it was attached to, then rebuild the path between the
// endpoints as a straight line, an L, or a Z. A rebuilt path that
// would run through another primitive reverts the connection to its
// detected shape.
func (n *normalizer) straightenConnections() {
	for ci := range n.inv.Connections {
		c := &n.inv.Connections[ci]
		oc := &n.orig.Connections[ci]
		e1, e2 := oc.Endpoints()

		p1, ax1, ok := n.reanchor(c.FromBox, e1, oc, true)
		if !ok {
			continue
		}
		p2, ax2, ok := n.reanchor(c.ToBox, e2, oc, false)
		if !ok {
			continue
		}

		segs, ok := buildPath(p1, p2, ax1, ax2)
		if !ok {
			continue
		}
		if n.pathBlocked(segs, ci, p1, p2) {
			continue
		}
		c.Segments = segs
	}
}

// reanchor maps a detected endpoint to the same edge of the box's
// current geometry, keeping its offset along the edge. Free endpoints
// stay put; their approach axis comes from the terminal segment.
func (n *normalizer) reanchor(boxIdx int, e primitives.Pos, oc *primitives.ConnectionLine, isStart bool) (primitives.Pos, pathAxis, bool) {
	if boxIdx == primitives.NoBox {
		seg := oc.Segments[len(oc.Segments)-1]
		if isStart {
			seg = oc.Segments[0]
		}
		ax := axisV
		if seg.Horizontal() {
			ax = axisH
		}
		return e, ax, true
	}

	ob := &n.orig.Boxes[boxIdx]
	cb := &n.inv.Boxes[boxIdx]
	switch {
	case e.Col == ob.TopLeft.Col:
		row := clamp(cb.TopLeft.Row+(e.Row-ob.TopLeft.Row), cb.TopLeft.Row+1, cb.BottomRight.Row-1)
		return primitives.Pos{Row: row, Col: cb.TopLeft.Col}, axisH, true
	case e.Col == ob.BottomRight.Col:
		row := clamp(cb.TopLeft.Row+(e.Row-ob.TopLeft.Row), cb.TopLeft.Row+1, cb.BottomRight.Row-1)
		return primitives.Pos{Row: row, Col: cb.BottomRight.Col}, axisH, true
	case e.Row == ob.TopLeft.Row:
		col := clamp(cb.TopLeft.Col+(e.Col-ob.TopLeft.Col), cb.TopLeft.Col+1, cb.BottomRight.Col-1)
		return primitives.Pos{Row: cb.TopLeft.Row, Col: col}, axisV, true
	case e.Row == ob.BottomRight.Row:
		col := clamp(cb.TopLeft.Col+(e.Col-ob.TopLeft.Col), cb.TopLeft.Col+1, cb.BottomRight.Col-1)
		return primitives.Pos{Row: cb.BottomRight.Row, Col: col}, axisV, true
	}
	return e, 0, false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// buildPath connects two endpoints with at most three axis-aligned
// segments, leaving each endpoint along its required axis.
func buildPath(p1, p2 primitives.Pos, ax1, ax2 pathAxis) ([]primitives.Segment, bool) {
	if p1 == p2 {
		return nil, false
	}
	seg := func(a, b primitives.Pos) primitives.Segment {
		return primitives.Segment{Start: a, End: b}
	}
	switch {
	case ax1 == axisH && ax2 == axisH:
		if p1.Row == p2.Row {
			return []primitives.Segment{seg(p1, p2)}, true
		}
		mid := (p1.Col + p2.Col) / 2
		if mid == p1.Col || mid == p2.Col {
			return nil, false
		}
		m1 := primitives.Pos{Row: p1.Row, Col: mid}
		m2 := primitives.Pos{Row: p2.Row, Col: mid}
		return []primitives.Segment{seg(p1, m1), seg(m1, m2), seg(m2, p2)}, true
	case ax1 == axisV && ax2 == axisV:
		if p1.Col == p2.Col {
			return []primitives.Segment{seg(p1, p2)}, true
		}
		mid := (p1.Row + p2.Row) / 2
		if mid == p1.Row || mid == p2.Row {
			return nil, false
		}
		m1 := primitives.Pos{Row: mid, Col: p1.Col}
		m2 := primitives.Pos{Row: mid, Col: p2.Col}
		return []primitives.Segment{seg(p1, m1), seg(m1, m2), seg(m2, p2)}, true
	case ax1 == axisH:
		if p1.Row == p2.Row || p1.Col == p2.Col {
			return nil, false
		}
		corner := primitives.Pos{Row: p1.Row, Col: p2.Col}
		return []primitives.Segment{seg(p1, corner), seg(corner, p2)}, true
	default:
		if p1.Row == p2.Row || p1.Col == p2.Col {
			return nil, false
		}
		corner := primitives.Pos{Row: p2.Row, Col: p1.Col}
		return []primitives.Segment{seg(p1, corner), seg(corner, p2)}, true
	}
}

// pathBlocked reports whether any interior cell of the path would land
// on another primitive.
func (n *normalizer) pathBlocked(segs []primitives.Segment, connIdx int, p1, p2 primitives.Pos) bool {
	for _, cell := range primitives.SegmentCells(segs) {
		if cell == p1 || cell == p2 {
			continue
		}
		if n.occupied(cell, connIdx) {
			return true
		}
	}
	return false
}
