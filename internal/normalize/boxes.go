package normalize

import (
	"gridfix/internal/primitives"
)

// Pass 1: expand each box's right edge until its text fits where it
// sits, with the right border one past the content. Never shrinks.
func (n *normalizer) expandToContent() {
	for bi := range n.inv.Boxes {
		b := &n.inv.Boxes[bi]
		if b.Ambiguous {
			continue
		}
		required := 0
		for _, ti := range n.inv.BoxTextRows(bi) {
			tr := &n.inv.TextRows[ti]
			w := tr.StartCol - b.TopLeft.Col + len([]rune(tr.Content)) + 1
			if w > required {
				required = w
			}
		}
		if required > b.Width() {
			b.BottomRight.Col = b.TopLeft.Col + required - 1
		}
	}
}

// Pass 2: equalize the widths of horizontally adjacent root boxes.
// Later group members shift right by the accumulated growth so the
// gaps between boxes are preserved, and text is re-centered in the
// new interiors.
func (n *normalizer) balanceSideBySide() {
	var roots []int
	for i := range n.inv.Boxes {
		b := &n.inv.Boxes[i]
		if b.Depth == 0 && !b.Ambiguous {
			roots = append(roots, i)
		}
	}
	ordered := sortedIndices(len(roots), func(a, b int) bool {
		ba, bb := &n.inv.Boxes[roots[a]], &n.inv.Boxes[roots[b]]
		if ba.TopLeft.Col != bb.TopLeft.Col {
			return ba.TopLeft.Col < bb.TopLeft.Col
		}
		return ba.TopLeft.Row < bb.TopLeft.Row
	})

	used := make([]bool, len(ordered))
	for i := range ordered {
		if used[i] {
			continue
		}
		group := []int{roots[ordered[i]]}
		used[i] = true
		for j := i + 1; j < len(ordered); j++ {
			if used[j] {
				continue
			}
			last := &n.inv.Boxes[group[len(group)-1]]
			cand := &n.inv.Boxes[roots[ordered[j]]]
			gap := cand.TopLeft.Col - last.BottomRight.Col - 1
			if gap < 0 || gap > 1 || !rowsOverlap(last, cand) {
				continue
			}
			group = append(group, roots[ordered[j]])
			used[j] = true
		}
		if len(group) > 1 {
			n.balanceGroup(group)
		}
	}
}

func rowsOverlap(a, b *primitives.Box) bool {
	return a.TopLeft.Row <= b.BottomRight.Row && b.TopLeft.Row <= a.BottomRight.Row
}

func (n *normalizer) balanceGroup(group []int) {
	style := n.inv.Boxes[group[0]].Style
	maxW := 0
	for _, bi := range group {
		b := &n.inv.Boxes[bi]
		if b.Style != style {
			return
		}
		if w := b.Width(); w > maxW {
			maxW = w
		}
	}
	if maxW > n.opts.SanityWidth {
		return
	}

	shift := 0
	for _, bi := range group {
		if shift > 0 {
			n.shiftSubtree(bi, 0, shift)
		}
		b := &n.inv.Boxes[bi]
		if delta := maxW - b.Width(); delta > 0 {
			b.BottomRight.Col += delta
			shift += delta
		}
		n.centerTextRows(bi)
	}
}

func (n *normalizer) centerTextRows(bi int) {
	b := &n.inv.Boxes[bi]
	for _, ti := range n.inv.BoxTextRows(bi) {
		tr := &n.inv.TextRows[ti]
		length := len([]rune(tr.Content))
		if length > b.InteriorWidth() {
			continue
		}
		tr.StartCol = b.TopLeft.Col + 1 + (b.InteriorWidth()-length)/2
		tr.EndCol = tr.StartCol + length - 1
	}
}

// Pass 3: give every child box a one-cell margin inside its parent.
// The child shifts right/down to clear the top-left borders, then the
// parent grows right/down to clear the child. Deepest parents run
// first so growth propagates outward. Children past the depth cap are
// left unexpanded.
func (n *normalizer) expandNested() {
	order := sortedIndices(len(n.inv.Boxes), func(a, b int) bool {
		return n.inv.Boxes[a].Depth > n.inv.Boxes[b].Depth
	})
	for _, bi := range order {
		b := &n.inv.Boxes[bi]
		if b.Ambiguous || len(b.Children) == 0 {
			continue
		}
		for _, ci := range b.Children {
			c := &n.inv.Boxes[ci]
			if c.Ambiguous || c.Depth > primitives.MaxDepth {
				continue
			}
			dRow, dCol := 0, 0
			if c.TopLeft.Row < b.TopLeft.Row+2 {
				dRow = b.TopLeft.Row + 2 - c.TopLeft.Row
			}
			if c.TopLeft.Col < b.TopLeft.Col+2 {
				dCol = b.TopLeft.Col + 2 - c.TopLeft.Col
			}
			if dRow != 0 || dCol != 0 {
				n.shiftSubtree(ci, dRow, dCol)
			}
			if b.BottomRight.Row < c.BottomRight.Row+2 {
				b.BottomRight.Row = c.BottomRight.Row + 2
			}
			if b.BottomRight.Col < c.BottomRight.Col+2 {
				b.BottomRight.Col = c.BottomRight.Col + 2
			}
		}
	}
}

// Pass 8: when a box has horizontal slack, keep at least one space
// between its borders and the text. Boxes with no slack are already as
// tight as their content allows and stay untouched.
func (n *normalizer) padInterior() {
	for bi := range n.inv.Boxes {
		b := &n.inv.Boxes[bi]
		if b.Ambiguous {
			continue
		}
		for _, ti := range n.inv.BoxTextRows(bi) {
			tr := &n.inv.TextRows[ti]
			length := len([]rune(tr.Content))
			if b.InteriorWidth() < length+2 {
				continue
			}
			lo := b.TopLeft.Col + 2
			hi := b.BottomRight.Col - 1 - length
			switch {
			case tr.StartCol < lo:
				tr.StartCol = lo
			case tr.StartCol > hi:
				tr.StartCol = hi
			}
			tr.EndCol = tr.StartCol + length - 1
		}
	}
}
