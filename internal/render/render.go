// Package render projects a normalized primitive inventory back onto
// the original grid. Rendering is an overlay: the footprints of the
// detected primitives are erased first, then the normalized set is
// drawn in a fixed order, so every character the detector did not
// claim survives byte-for-byte.
package render

import (
	"gridfix/internal/grid"
	"gridfix/internal/primitives"
)

// Overlay renders the normalized inventory over the original grid.
// detected and normalized must come from the same pipeline run: their
// indices are parallel, and the detected geometry tells the overlay
// what to erase.
func Overlay(original *grid.Grid, detected, normalized *primitives.Inventory) *grid.Grid {
	h, w := requiredDims(normalized)
	out := original.Expanded(h, w)

	eraseFootprints(out, detected)

	drawBoxes(out, normalized)
	drawConnections(out, normalized)
	drawArrows(out, normalized)
	drawText(out, normalized)
	drawLabels(out, detected, normalized)
	return out
}

func requiredDims(inv *primitives.Inventory) (int, int) {
	maxRow, maxCol := 0, 0
	grow := func(row, col int) {
		if row > maxRow {
			maxRow = row
		}
		if col > maxCol {
			maxCol = col
		}
	}
	for i := range inv.Boxes {
		grow(inv.Boxes[i].BottomRight.Row, inv.Boxes[i].BottomRight.Col)
	}
	for i := range inv.HArrows {
		grow(inv.HArrows[i].Row, inv.HArrows[i].EndCol)
	}
	for i := range inv.VArrows {
		grow(inv.VArrows[i].EndRow, inv.VArrows[i].Col)
	}
	for i := range inv.TextRows {
		grow(inv.TextRows[i].Row, inv.TextRows[i].EndCol)
	}
	for i := range inv.Connections {
		for _, p := range inv.Connections[i].Cells() {
			grow(p.Row, p.Col)
		}
	}
	for i := range inv.Labels {
		l := &inv.Labels[i]
		grow(l.Row, l.Col+len([]rune(l.Content))-1)
	}
	return maxRow + 1, maxCol + 1
}

// eraseFootprints blanks the cells the detected primitives occupied.
// Box erasure touches only cells that actually hold border glyphs, so
// foreign content sitting in a border gap is preserved.
func eraseFootprints(g *grid.Grid, inv *primitives.Inventory) {
	eraseGlyph := func(row, col int) {
		r, ok := g.Get(row, col)
		if ok && (primitives.IsBoxGlyph(r) || primitives.IsJunction(r)) {
			g.Set(row, col, ' ')
		}
	}
	for i := range inv.Boxes {
		b := &inv.Boxes[i]
		if b.Ambiguous {
			continue
		}
		for col := b.TopLeft.Col; col <= b.BottomRight.Col; col++ {
			eraseGlyph(b.TopLeft.Row, col)
			eraseGlyph(b.BottomRight.Row, col)
		}
		for row := b.TopLeft.Row; row <= b.BottomRight.Row; row++ {
			eraseGlyph(row, b.TopLeft.Col)
			eraseGlyph(row, b.BottomRight.Col)
		}
	}
	for i := range inv.TextRows {
		tr := &inv.TextRows[i]
		for col := tr.StartCol; col <= tr.EndCol; col++ {
			g.Set(tr.Row, col, ' ')
		}
	}
	for i := range inv.HArrows {
		a := &inv.HArrows[i]
		for col := a.StartCol; col <= a.EndCol; col++ {
			g.Set(a.Row, col, ' ')
		}
	}
	for i := range inv.VArrows {
		a := &inv.VArrows[i]
		for row := a.StartRow; row <= a.EndRow; row++ {
			g.Set(row, a.Col, ' ')
		}
	}
	for i := range inv.Connections {
		for _, p := range inv.Connections[i].Cells() {
			g.Set(p.Row, p.Col, ' ')
		}
	}
	for i := range inv.Labels {
		l := &inv.Labels[i]
		for j := range []rune(l.Content) {
			g.Set(l.Row, l.Col+j, ' ')
		}
	}
}

// drawBoxes draws borders in inventory order, which is root-first
// after the detector's depth sort. Ambiguous boxes were not erased and
// are not redrawn.
func drawBoxes(g *grid.Grid, inv *primitives.Inventory) {
	for i := range inv.Boxes {
		b := &inv.Boxes[i]
		if b.Ambiguous {
			continue
		}
		gl := b.Style.Glyphs()
		for col := b.TopLeft.Col + 1; col < b.BottomRight.Col; col++ {
			g.Set(b.TopLeft.Row, col, gl.Horizontal)
			g.Set(b.BottomRight.Row, col, gl.Horizontal)
		}
		for row := b.TopLeft.Row + 1; row < b.BottomRight.Row; row++ {
			g.Set(row, b.TopLeft.Col, gl.Vertical)
			g.Set(row, b.BottomRight.Col, gl.Vertical)
		}
		g.Set(b.TopLeft.Row, b.TopLeft.Col, gl.TopLeft)
		g.Set(b.TopLeft.Row, b.BottomRight.Col, gl.TopRight)
		g.Set(b.BottomRight.Row, b.TopLeft.Col, gl.BottomLeft)
		g.Set(b.BottomRight.Row, b.BottomRight.Col, gl.BottomRight)
	}
}

func drawConnections(g *grid.Grid, inv *primitives.Inventory) {
	for i := range inv.Connections {
		c := &inv.Connections[i]
		for _, s := range c.Segments {
			body := '│'
			if s.Horizontal() {
				body = '─'
			}
			for _, p := range primitives.SegmentCells([]primitives.Segment{s}) {
				g.Set(p.Row, p.Col, body)
			}
		}
		for j := 0; j+1 < len(c.Segments); j++ {
			joint := c.Segments[j].End
			if r, ok := jointGlyph(c.Segments[j], c.Segments[j+1]); ok {
				g.Set(joint.Row, joint.Col, r)
			}
		}
		first, last := c.Endpoints()
		if c.FromBox != primitives.NoBox {
			drawJunction(g, inv, c.FromBox, first)
		}
		if c.ToBox != primitives.NoBox {
			drawJunction(g, inv, c.ToBox, last)
		}
	}
}

// jointGlyph picks the corner for the turn between two segments from
// the directions of its two arms.
func jointGlyph(a, b primitives.Segment) (rune, bool) {
	arms := armDir(a.End, a.Start) | armDir(b.Start, b.End)
	switch arms {
	case primitives.DirUp | primitives.DirRight:
		return '└', true
	case primitives.DirUp | primitives.DirLeft:
		return '┘', true
	case primitives.DirDown | primitives.DirRight:
		return '┌', true
	case primitives.DirDown | primitives.DirLeft:
		return '┐', true
	}
	return 0, false
}

// armDir is the direction from the joint toward the other end of a
// segment.
func armDir(joint, other primitives.Pos) int {
	switch {
	case other.Row < joint.Row:
		return primitives.DirUp
	case other.Row > joint.Row:
		return primitives.DirDown
	case other.Col < joint.Col:
		return primitives.DirLeft
	default:
		return primitives.DirRight
	}
}

// drawJunction replaces the border glyph at a connection endpoint with
// the junction for the edge it sits on.
func drawJunction(g *grid.Grid, inv *primitives.Inventory, boxIdx int, p primitives.Pos) {
	b := &inv.Boxes[boxIdx]
	double := b.Style == primitives.StyleDouble
	var r rune
	switch {
	case p.Col == b.TopLeft.Col:
		r = '┤'
		if double {
			r = '╣'
		}
	case p.Col == b.BottomRight.Col:
		r = '├'
		if double {
			r = '╠'
		}
	case p.Row == b.TopLeft.Row:
		r = '┴'
		if double {
			r = '╩'
		}
	case p.Row == b.BottomRight.Row:
		r = '┬'
		if double {
			r = '╦'
		}
	default:
		return
	}
	g.Set(p.Row, p.Col, r)
}

// drawArrows writes arrow bodies and tips onto blank cells only; a
// non-blank cell is never overwritten by an arrow.
func drawArrows(g *grid.Grid, inv *primitives.Inventory) {
	setBlank := func(row, col int, r rune) {
		if cur, ok := g.Get(row, col); ok && cur == ' ' {
			g.Set(row, col, r)
		}
	}
	for i := range inv.HArrows {
		a := &inv.HArrows[i]
		body, tip := primitives.ArrowGlyphs(a.Type, a.Rightward)
		tipCol := a.EndCol
		if !a.Rightward {
			tipCol = a.StartCol
		}
		for col := a.StartCol; col <= a.EndCol; col++ {
			if col == tipCol {
				setBlank(a.Row, col, tip)
			} else {
				setBlank(a.Row, col, body)
			}
		}
	}
	for i := range inv.VArrows {
		a := &inv.VArrows[i]
		body, tip := primitives.VArrowGlyphs(a.Type, a.Downward)
		tipRow := a.EndRow
		if !a.Downward {
			tipRow = a.StartRow
		}
		for row := a.StartRow; row <= a.EndRow; row++ {
			if row == tipRow {
				setBlank(row, a.Col, tip)
			} else {
				setBlank(row, a.Col, body)
			}
		}
	}
}

func drawText(g *grid.Grid, inv *primitives.Inventory) {
	for i := range inv.TextRows {
		tr := &inv.TextRows[i]
		for j, r := range []rune(tr.Content) {
			g.Set(tr.Row, tr.StartCol+j, r)
		}
	}
}

// drawLabels writes each label only where its whole span is blank. A
// blocked label falls back to the spot it was detected at (that span
// was erased, so it is free unless another primitive moved over it)
// and is dropped for this render when both spots are taken.
func drawLabels(g *grid.Grid, detected, normalized *primitives.Inventory) {
	for i := range normalized.Labels {
		l := &normalized.Labels[i]
		runes := []rune(l.Content)
		if writeIfBlank(g, l.Row, l.Col, runes) {
			continue
		}
		d := &detected.Labels[i]
		writeIfBlank(g, d.Row, d.Col, runes)
	}
}

func writeIfBlank(g *grid.Grid, row, col int, runes []rune) bool {
	for j := range runes {
		if r, ok := g.Get(row, col+j); !ok || r != ' ' {
			return false
		}
	}
	for j, r := range runes {
		g.Set(row, col+j, r)
	}
	return true
}
