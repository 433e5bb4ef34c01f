// Package detect recovers typed primitives from a character grid. The
// scan is conservative: anything ambiguous is omitted from the
// inventory and passes through the rest of the pipeline untouched.
package detect

import (
	"gridfix/internal/grid"
	"gridfix/internal/primitives"
)

// scanner carries the grid and the cell claims accumulated while each
// primitive class is detected. Claims keep later classes from
// re-interpreting cells an earlier class already owns.
type scanner struct {
	g      *grid.Grid
	border mask // box border component cells
	arrow  mask // arrow body and tip cells
	conn   mask // connection path cells
}

type mask [][]bool

func newMask(height, width int) mask {
	m := make(mask, height)
	for i := range m {
		m[i] = make([]bool, width)
	}
	return m
}

func (m mask) at(row, col int) bool {
	if row < 0 || row >= len(m) || col < 0 || len(m) == 0 || col >= len(m[0]) {
		return false
	}
	return m[row][col]
}

func (m mask) set(row, col int) {
	if row >= 0 && row < len(m) && col >= 0 && col < len(m[0]) {
		m[row][col] = true
	}
}

// Scan detects every unambiguous primitive in the grid. Order matters:
// boxes claim their border cells first, arrows claim line runs the
// boxes did not, connections trace through what is left, and text and
// labels take the remainder.
func Scan(g *grid.Grid) *primitives.Inventory {
	s := &scanner{
		g:      g,
		border: newMask(g.Height(), g.Width()),
		arrow:  newMask(g.Height(), g.Width()),
		conn:   newMask(g.Height(), g.Width()),
	}

	inv := &primitives.Inventory{}
	inv.Boxes = s.detectBoxes()
	inv.Boxes = buildHierarchy(inv.Boxes)
	inv.HArrows = s.detectHArrows()
	inv.VArrows = s.detectVArrows()
	inv.Connections = s.detectConnections(inv.Boxes)
	s.flagUnclaimedJunctions(inv.Boxes)
	inv.TextRows = s.detectText(inv.Boxes)
	inv.Labels = s.detectLabels(inv)
	return inv
}

// flagUnclaimedJunctions marks boxes that carry junction glyphs no
// detected connection accounts for. Redrawing such a border would turn
// the junction into a plain edge glyph, so the box is left alone.
func (s *scanner) flagUnclaimedJunctions(boxes []primitives.Box) {
	for i := range boxes {
		b := &boxes[i]
		onBorder := func(row, col int) bool {
			r, ok := s.g.Get(row, col)
			if !ok {
				return false
			}
			return primitives.IsJunction(r) && !s.conn.at(row, col)
		}
		for col := b.TopLeft.Col; col <= b.BottomRight.Col && !b.Ambiguous; col++ {
			if onBorder(b.TopLeft.Row, col) || onBorder(b.BottomRight.Row, col) {
				b.Ambiguous = true
			}
		}
		for row := b.TopLeft.Row; row <= b.BottomRight.Row && !b.Ambiguous; row++ {
			if onBorder(row, b.TopLeft.Col) || onBorder(row, b.BottomRight.Col) {
				b.Ambiguous = true
			}
		}
	}
}

// insideAnyBox reports whether the cell is strictly inside some box.
func insideAnyBox(boxes []primitives.Box, p primitives.Pos) bool {
	for i := range boxes {
		if boxes[i].ContainsInterior(p.Row, p.Col) {
			return true
		}
	}
	return false
}

// boxAt returns the index of the box whose border holds the cell, or
// NoBox.
func boxAt(boxes []primitives.Box, p primitives.Pos) int {
	for i := range boxes {
		if boxes[i].ContainsBorder(p.Row, p.Col) {
			return i
		}
	}
	return primitives.NoBox
}
