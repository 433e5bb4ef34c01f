package detect

import (
	"gridfix/internal/primitives"
)

// detectText reads the interior rows of every box. Content is copied
// verbatim from the first to the last non-space cell. Rows that share
// cells with a nested box, an arrow, or a connection are skipped;
// repositioning them safely cannot be decided locally.
func (s *scanner) detectText(boxes []primitives.Box) []primitives.TextRow {
	var out []primitives.TextRow
	for bi := range boxes {
		b := &boxes[bi]
		if b.Ambiguous {
			continue
		}
		for row := b.TopLeft.Row + 1; row < b.BottomRight.Row; row++ {
			if tr, ok := s.textAt(boxes, bi, row); ok {
				out = append(out, tr)
			}
		}
	}
	return out
}

// textAt extracts the text of one interior row. The scan runs from the
// cell after the left border to the first vertical border glyph, which
// may sit beyond the detected right edge when overflowing content
// broke the border.
func (s *scanner) textAt(boxes []primitives.Box, bi, row int) (primitives.TextRow, bool) {
	var tr primitives.TextRow
	b := &boxes[bi]
	vert := b.Style.Glyphs().Vertical

	startCol := b.TopLeft.Col + 1
	var runes []rune
	for col := startCol; col < s.g.Width(); col++ {
		r, ok := s.g.Get(row, col)
		if !ok {
			break
		}
		if childOwns(boxes, bi, row, col) {
			return tr, false
		}
		// Any border cell ends the scan: the box's own right edge, a
		// junction sitting on it, or the stray vertical further right
		// when overflowing content broke the border.
		if s.border.at(row, col) || r == vert {
			break
		}
		if s.arrow.at(row, col) || s.conn.at(row, col) {
			return tr, false
		}
		if primitives.IsBoxGlyph(r) || primitives.IsJunction(r) {
			return tr, false
		}
		runes = append(runes, r)
	}

	first, last := -1, -1
	for i, r := range runes {
		if r != ' ' {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return tr, false
	}
	content := string(runes[first : last+1])
	return primitives.TextRow{
		Row:      row,
		StartCol: startCol + first,
		EndCol:   startCol + last,
		Content:  content,
		BoxIdx:   bi,
	}, true
}

// childOwns reports whether the cell lies on or inside a descendant of
// box bi.
func childOwns(boxes []primitives.Box, bi, row, col int) bool {
	for j := range boxes {
		if j == bi {
			continue
		}
		if !descendantOf(boxes, j, bi) {
			continue
		}
		if boxes[j].Contains(row, col) {
			return true
		}
	}
	return false
}

func descendantOf(boxes []primitives.Box, j, bi int) bool {
	for p := boxes[j].Parent; p != primitives.NoParent; p = boxes[p].Parent {
		if p == bi {
			return true
		}
	}
	return false
}
