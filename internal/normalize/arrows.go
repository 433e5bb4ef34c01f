package normalize

import (
	"gridfix/internal/primitives"
)

// snapTolerance is how far an arrow endpoint may sit from a box edge
// and still be pulled onto it.
const snapTolerance = 2

// Pass 4: snap horizontal arrow endpoints to the box edges they almost
// touch. Arrows are processed in (row, start column) order so results
// never depend on detection order.
func (n *normalizer) alignHArrows() {
	order := sortedIndices(len(n.inv.HArrows), func(a, b int) bool {
		aa, ab := &n.inv.HArrows[a], &n.inv.HArrows[b]
		if aa.Row != ab.Row {
			return aa.Row < ab.Row
		}
		return aa.StartCol < ab.StartCol
	})
	for _, ai := range order {
		a := &n.inv.HArrows[ai]
		newStart, newEnd := a.StartCol, a.EndCol
		if col, ok := n.nearestEdgeCol(a.Row, a.StartCol, true); ok {
			newStart = col
		}
		if col, ok := n.nearestEdgeCol(a.Row, a.EndCol, false); ok {
			newEnd = col
		}
		if newEnd-newStart+1 >= 2 {
			a.StartCol, a.EndCol = newStart, newEnd
		}
	}
}

// nearestEdgeCol finds the column just outside the nearest box border
// beside the given cell: right of a box's right edge when fromRight,
// left of a box's left edge otherwise. Ties go to the lower box index.
func (n *normalizer) nearestEdgeCol(row, col int, fromRight bool) (int, bool) {
	best, bestDist := 0, 0
	found := false
	for i := range n.inv.Boxes {
		b := &n.inv.Boxes[i]
		if b.Ambiguous || row <= b.TopLeft.Row || row >= b.BottomRight.Row {
			continue
		}
		target := b.TopLeft.Col - 1
		if fromRight {
			target = b.BottomRight.Col + 1
		}
		d := col - target
		if d < 0 {
			d = -d
		}
		if d > snapTolerance {
			continue
		}
		if !found || d < bestDist {
			best, bestDist, found = target, d, true
		}
	}
	return best, found
}

// Pass 5: snap each vertical arrow's column onto the nearest of the
// adjacent box's left edge, center, or right edge; ties go to the
// center.
func (n *normalizer) alignVArrows() {
	order := sortedIndices(len(n.inv.VArrows), func(a, b int) bool {
		aa, ab := &n.inv.VArrows[a], &n.inv.VArrows[b]
		if aa.Col != ab.Col {
			return aa.Col < ab.Col
		}
		return aa.StartRow < ab.StartRow
	})
	for _, ai := range order {
		a := &n.inv.VArrows[ai]
		bi, ok := n.verticallyAdjacentBox(a)
		if !ok {
			continue
		}
		b := &n.inv.Boxes[bi]
		left, right := b.TopLeft.Col, b.BottomRight.Col
		center := (left + right) / 2
		dl, dc, dr := abs(a.Col-left), abs(a.Col-center), abs(a.Col-right)
		switch {
		case dc <= dl && dc <= dr:
			a.Col = center
		case dl < dr:
			a.Col = left
		case dr < dl:
			a.Col = right
		default:
			a.Col = center
		}
	}
}

// verticallyAdjacentBox finds the box the arrow points into or out of:
// the nearest box above or below the arrow within tolerance whose
// column span covers the arrow's column (within tolerance as well).
func (n *normalizer) verticallyAdjacentBox(a *primitives.VerticalArrow) (int, bool) {
	best, bestDist := 0, 0
	found := false
	for i := range n.inv.Boxes {
		b := &n.inv.Boxes[i]
		if b.Ambiguous {
			continue
		}
		if a.Col < b.TopLeft.Col-snapTolerance || a.Col > b.BottomRight.Col+snapTolerance {
			continue
		}
		var d int
		switch {
		case a.EndRow < b.TopLeft.Row:
			d = b.TopLeft.Row - a.EndRow - 1
		case a.StartRow > b.BottomRight.Row:
			d = a.StartRow - b.BottomRight.Row - 1
		default:
			continue
		}
		if d > snapTolerance {
			continue
		}
		if !found || d < bestDist {
			best, bestDist, found = i, d, true
		}
	}
	return best, found
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
