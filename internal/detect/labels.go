package detect

import (
	"gridfix/internal/primitives"
)

// Labels are short free-standing text runs adjacent to a primitive.
// A run becomes a label only when one attachment anchor is strictly
// nearest within MaxLabelOffset on both axes; everything else stays in
// the grid exactly as written.

func (s *scanner) detectLabels(inv *primitives.Inventory) []primitives.Label {
	var out []primitives.Label
	for row := 0; row < s.g.Height(); row++ {
		for _, run := range s.freeRuns(inv, row) {
			if lbl, ok := attachLabel(inv, run); ok {
				out = append(out, lbl)
			}
		}
	}
	return out
}

type textRun struct {
	row, startCol int
	content       string
}

// freeRuns collects runs of cells on one row that belong to no box,
// arrow, connection, or already-claimed text row. Box text that
// overflowed past a broken border is claimed by its text row, so the
// overhang is not re-read here. A gap of two or more spaces splits
// runs.
func (s *scanner) freeRuns(inv *primitives.Inventory, row int) []textRun {
	var runs []textRun
	var cur []rune
	start := -1

	flush := func() {
		if start < 0 {
			return
		}
		// Trim the single trailing space a one-space gap may leave.
		content := cur
		for len(content) > 0 && content[len(content)-1] == ' ' {
			content = content[:len(content)-1]
		}
		if len(content) > 0 {
			runs = append(runs, textRun{row: row, startCol: start, content: string(content)})
		}
		cur, start = nil, -1
	}

	spaces := 0
	for col := 0; col < s.g.Width(); col++ {
		r, _ := s.g.Get(row, col)
		claimed := s.arrow.at(row, col) || s.conn.at(row, col) ||
			cellInBox(inv.Boxes, row, col) || cellInTextRow(inv.TextRows, row, col)
		switch {
		case claimed:
			flush()
			spaces = 0
		case r == ' ':
			spaces++
			if spaces >= 2 {
				flush()
			} else if start >= 0 {
				cur = append(cur, r)
			}
		case primitives.IsBoxGlyph(r) || primitives.IsJunction(r):
			// Stray structural glyphs are never label content.
			flush()
			spaces = 0
		default:
			if start < 0 {
				start = col
			}
			cur = append(cur, r)
			spaces = 0
		}
	}
	flush()
	return runs
}

func cellInBox(boxes []primitives.Box, row, col int) bool {
	for i := range boxes {
		if boxes[i].Contains(row, col) {
			return true
		}
	}
	return false
}

func cellInTextRow(rows []primitives.TextRow, row, col int) bool {
	for i := range rows {
		tr := &rows[i]
		if row == tr.Row && col >= tr.StartCol && col <= tr.EndCol {
			return true
		}
	}
	return false
}

type anchorCandidate struct {
	at primitives.Attachment
	c  primitives.Corner
}

func allAnchors(inv *primitives.Inventory) []anchorCandidate {
	var out []anchorCandidate
	for i := range inv.Boxes {
		for _, c := range []primitives.Corner{
			primitives.CornerTopLeft, primitives.CornerTopRight,
			primitives.CornerBottomLeft, primitives.CornerBottomRight,
		} {
			out = append(out, anchorCandidate{primitives.Attachment{Kind: primitives.AttachBox, Index: i}, c})
		}
	}
	for i := range inv.HArrows {
		out = append(out, anchorCandidate{primitives.Attachment{Kind: primitives.AttachHArrow, Index: i}, primitives.AnchorStart})
		out = append(out, anchorCandidate{primitives.Attachment{Kind: primitives.AttachHArrow, Index: i}, primitives.AnchorEnd})
	}
	for i := range inv.VArrows {
		out = append(out, anchorCandidate{primitives.Attachment{Kind: primitives.AttachVArrow, Index: i}, primitives.AnchorStart})
		out = append(out, anchorCandidate{primitives.Attachment{Kind: primitives.AttachVArrow, Index: i}, primitives.AnchorEnd})
	}
	for i := range inv.Connections {
		out = append(out, anchorCandidate{primitives.Attachment{Kind: primitives.AttachConnection, Index: i}, primitives.AnchorStart})
		out = append(out, anchorCandidate{primitives.Attachment{Kind: primitives.AttachConnection, Index: i}, primitives.AnchorEnd})
	}
	return out
}

// attachLabel finds the strictly nearest anchor within MaxLabelOffset
// of the run's start cell. Ties between distinct primitives are
// ambiguous and leave the run as plain text.
func attachLabel(inv *primitives.Inventory, run textRun) (primitives.Label, bool) {
	var lbl primitives.Label
	if len([]rune(run.content)) > primitives.MaxLabelLen {
		return lbl, false
	}

	pos := primitives.Pos{Row: run.row, Col: run.startCol}
	best, bestDist, ties := -1, 0, 0
	cands := allAnchors(inv)
	for i, cand := range cands {
		a := inv.AnchorPos(cand.at, cand.c)
		dr, dc := abs(pos.Row-a.Row), abs(pos.Col-a.Col)
		if dr > primitives.MaxLabelOffset || dc > primitives.MaxLabelOffset {
			continue
		}
		d := dr + dc
		switch {
		case best < 0 || d < bestDist:
			best, bestDist, ties = i, d, 0
		case d == bestDist && !samePrimitive(cands[best].at, cand.at):
			ties++
		}
	}
	if best < 0 || ties > 0 {
		return lbl, false
	}

	chosen := cands[best]
	a := inv.AnchorPos(chosen.at, chosen.c)
	return primitives.Label{
		Row:     run.row,
		Col:     run.startCol,
		Content: run.content,
		Attach:  chosen.at,
		Anchor:  chosen.c,
		OffRow:  run.row - a.Row,
		OffCol:  run.startCol - a.Col,
	}, true
}

func samePrimitive(a, b primitives.Attachment) bool {
	return a.Kind == b.Kind && a.Index == b.Index
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
