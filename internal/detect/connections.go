package detect

import (
	"gridfix/internal/primitives"
)

// Connection lines are tipless paths between box borders. Tracing
// starts at a junction glyph on a border whose free arm points away
// from the box, follows single-style line glyphs through at most
// MaxSegments axis-aligned runs, and rejects anything that branches,
// crosses an arrow or another connection, or enters a box interior.

// junctionArms returns the full connectivity of a junction glyph,
// including the arm that leaves the border.
func junctionArms(r rune) (int, bool) {
	switch r {
	case '├', '╠':
		return primitives.DirUp | primitives.DirDown | primitives.DirRight, true
	case '┤', '╣':
		return primitives.DirUp | primitives.DirDown | primitives.DirLeft, true
	case '┬', '╦':
		return primitives.DirLeft | primitives.DirRight | primitives.DirDown, true
	case '┴', '╩':
		return primitives.DirLeft | primitives.DirRight | primitives.DirUp, true
	case '┼', '╬':
		return primitives.DirUp | primitives.DirDown | primitives.DirLeft | primitives.DirRight, true
	}
	return 0, false
}

func (s *scanner) detectConnections(boxes []primitives.Box) []primitives.ConnectionLine {
	var out []primitives.ConnectionLine
	for bi := range boxes {
		b := &boxes[bi]
		if b.Ambiguous {
			continue
		}
		for _, start := range s.borderJunctions(b) {
			if s.conn.at(start.pos.Row, start.pos.Col) {
				continue
			}
			conn, cells, ok := s.trace(boxes, bi, start.pos, start.dRow, start.dCol)
			if !ok {
				continue
			}
			out = append(out, conn)
			for _, p := range cells {
				s.conn.set(p.Row, p.Col)
			}
		}
	}
	return out
}

type junctionStart struct {
	pos        primitives.Pos
	dRow, dCol int
}

// borderJunctions lists junction cells on the box border whose free
// arm points outward, with the outward step.
func (s *scanner) borderJunctions(b *primitives.Box) []junctionStart {
	var out []junctionStart
	try := func(row, col, dRow, dCol, outward int) {
		r, ok := s.g.Get(row, col)
		if !ok {
			return
		}
		arms, isJ := junctionArms(r)
		if isJ && arms&outward != 0 {
			out = append(out, junctionStart{primitives.Pos{Row: row, Col: col}, dRow, dCol})
		}
	}
	for col := b.TopLeft.Col + 1; col < b.BottomRight.Col; col++ {
		try(b.TopLeft.Row, col, -1, 0, primitives.DirUp)
		try(b.BottomRight.Row, col, 1, 0, primitives.DirDown)
	}
	for row := b.TopLeft.Row + 1; row < b.BottomRight.Row; row++ {
		try(row, b.TopLeft.Col, 0, -1, primitives.DirLeft)
		try(row, b.BottomRight.Col, 0, 1, primitives.DirRight)
	}
	return out
}

// cornerTurn maps a connection corner glyph to the outgoing direction
// for the incoming one. Returns false when the glyph cannot receive
// the incoming direction.
func cornerTurn(r rune, dRow, dCol int) (int, int, bool) {
	type turn struct{ dRow, dCol int }
	table := map[rune]map[turn]turn{
		'┐': {{0, 1}: {1, 0}, {-1, 0}: {0, -1}},
		'┘': {{0, 1}: {-1, 0}, {1, 0}: {0, -1}},
		'┌': {{0, -1}: {1, 0}, {-1, 0}: {0, 1}},
		'└': {{0, -1}: {-1, 0}, {1, 0}: {0, 1}},
	}
	t, ok := table[r][turn{dRow, dCol}]
	if !ok {
		return 0, 0, false
	}
	return t.dRow, t.dCol, true
}

func lineContinues(r rune, dRow int) bool {
	if dRow != 0 {
		return r == '│'
	}
	return r == '─'
}

// trace follows a path from a border junction. It returns the
// connection, the cells it claims, and whether the path was accepted.
func (s *scanner) trace(boxes []primitives.Box, fromBox int, from primitives.Pos, dRow, dCol int) (primitives.ConnectionLine, []primitives.Pos, bool) {
	var conn primitives.ConnectionLine
	cells := []primitives.Pos{from}
	segStart := from
	cur := from
	toBox := primitives.NoBox
	var segs []primitives.Segment

	closeSeg := func(end primitives.Pos) bool {
		segs = append(segs, primitives.Segment{Start: segStart, End: end})
		return len(segs) <= primitives.MaxSegments
	}

	for {
		next := primitives.Pos{Row: cur.Row + dRow, Col: cur.Col + dCol}
		r, ok := s.g.Get(next.Row, next.Col)
		if !ok {
			break
		}
		if s.arrow.at(next.Row, next.Col) || s.conn.at(next.Row, next.Col) {
			return conn, nil, false
		}
		if s.border.at(next.Row, next.Col) {
			// Reached another border. A junction facing back at the
			// path is the far endpoint; anything else ends the path a
			// cell short and still attaches to that box.
			if arms, isJ := junctionArms(r); isJ && arms&incomingArm(dRow, dCol) != 0 {
				cur = next
				cells = append(cells, next)
			}
			toBox = boxAt(boxes, next)
			break
		}
		if insideAnyBox(boxes, next) {
			return conn, nil, false
		}
		if _, isJ := junctionArms(r); isJ {
			// A junction off any border means the path branches.
			return conn, nil, false
		}

		switch {
		case lineContinues(r, dRow):
			cur = next
			cells = append(cells, next)
		default:
			tr, tc, isTurn := cornerTurn(r, dRow, dCol)
			if !isTurn {
				// Path ends at cur.
				goto done
			}
			if !closeSeg(next) {
				return conn, nil, false
			}
			segStart = next
			cur = next
			cells = append(cells, next)
			dRow, dCol = tr, tc
		}
	}

done:
	if !closeSeg(cur) {
		return conn, nil, false
	}
	if len(cells) < 2 {
		return conn, nil, false
	}
	conn = primitives.ConnectionLine{Segments: segs, FromBox: fromBox, ToBox: toBox}
	return conn, cells, true
}

// incomingArm is the arm a far-end junction needs to receive a path
// arriving with step (dRow, dCol).
func incomingArm(dRow, dCol int) int {
	switch {
	case dRow > 0:
		return primitives.DirUp
	case dRow < 0:
		return primitives.DirDown
	case dCol > 0:
		return primitives.DirLeft
	default:
		return primitives.DirRight
	}
}
