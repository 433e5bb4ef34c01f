package normalize

import (
	"gridfix/internal/primitives"
)

// Pass 7: move each label with its attachment, keeping the offset
// recorded at detection time. If the recomputed spot is occupied the
// label keeps its previous position instead of colliding.
func (n *normalizer) repositionLabels() {
	for li := range n.inv.Labels {
		l := &n.inv.Labels[li]
		a := n.inv.AnchorPos(l.Attach, l.Anchor)
		row, col := a.Row+l.OffRow, a.Col+l.OffCol
		if row == l.Row && col == l.Col {
			continue
		}
		if n.labelFits(li, row, col) {
			l.Row, l.Col = row, col
		}
	}
}

func (n *normalizer) labelFits(li, row, col int) bool {
	length := len([]rune(n.inv.Labels[li].Content))
	for c := col; c < col+length; c++ {
		if row < 0 || c < 0 {
			return false
		}
		if n.occupied(primitives.Pos{Row: row, Col: c}, -1) {
			return false
		}
	}
	for i := range n.inv.Labels {
		if i == li {
			continue
		}
		o := &n.inv.Labels[i]
		oLen := len([]rune(o.Content))
		if row == o.Row && col <= o.Col+oLen-1 && o.Col <= col+length-1 {
			return false
		}
	}
	return true
}
