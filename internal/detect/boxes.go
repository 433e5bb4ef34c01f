package detect

import (
	"gridfix/internal/primitives"
)

// detectBoxes finds every verifiable closed rectangle. The fill starts
// only from top-left corner glyphs and walks border glyphs of the same
// family; verification then decides whether the connected component is
// actually a box.
func (s *scanner) detectBoxes() []primitives.Box {
	var boxes []primitives.Box
	for row := 0; row < s.g.Height(); row++ {
		for col := 0; col < s.g.Width(); col++ {
			if s.border.at(row, col) {
				continue
			}
			r, _ := s.g.Get(row, col)
			if !isTopLeftStart(r) {
				continue
			}
			comp := s.fillBorder(row, col, fillFamily(r))
			box, ok := s.verifyBox(comp)
			if !ok {
				continue
			}
			for _, p := range comp {
				s.border.set(p.Row, p.Col)
			}
			boxes = append(boxes, box)
		}
	}
	return boxes
}

// isTopLeftStart reports whether r is a glyph a box outline can begin
// at. Junction variants are deliberately excluded: a shape whose
// top-left is a junction belongs to a larger structure we do not try
// to interpret.
func isTopLeftStart(r rune) bool {
	return r == '┌' || r == '╔' || r == '╭'
}

func fillFamily(start rune) primitives.BoxStyle {
	if start == '╔' {
		return primitives.StyleDouble
	}
	// Single and rounded share their edge glyphs and fill together.
	return primitives.StyleSingle
}

type step struct {
	dRow, dCol int
	out, in    int
}

var steps = []step{
	{-1, 0, primitives.DirUp, primitives.DirDown},
	{1, 0, primitives.DirDown, primitives.DirUp},
	{0, -1, primitives.DirLeft, primitives.DirRight},
	{0, 1, primitives.DirRight, primitives.DirLeft},
}

// fillBorder collects the border component connected to the start
// cell. Connectivity is mutual: the current glyph must reach toward
// the neighbor and the neighbor must reach back, which stops the fill
// from leaking into lines that merely touch the border.
func (s *scanner) fillBorder(row, col int, family primitives.BoxStyle) []primitives.Pos {
	start := primitives.Pos{Row: row, Col: col}
	seen := map[primitives.Pos]bool{start: true}
	queue := []primitives.Pos{start}
	var comp []primitives.Pos

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		comp = append(comp, p)

		r, _ := s.g.Get(p.Row, p.Col)
		dirs, _ := primitives.BorderDirs(r, family)
		for _, st := range steps {
			if dirs&st.out == 0 {
				continue
			}
			q := primitives.Pos{Row: p.Row + st.dRow, Col: p.Col + st.dCol}
			if seen[q] || s.border.at(q.Row, q.Col) {
				continue
			}
			nr, ok := s.g.Get(q.Row, q.Col)
			if !ok {
				continue
			}
			ndirs, nok := primitives.BorderDirs(nr, family)
			if !nok || ndirs&st.in == 0 {
				continue
			}
			seen[q] = true
			queue = append(queue, q)
		}
	}
	return comp
}

// verifyBox checks that a border component forms a closed axis-aligned
// rectangle. The check is lenient about gaps along the edges (interior
// text that overflows through a side leaves the component incomplete)
// but strict about the corners: the bounding rectangle's top-left and
// bottom-right cells must look like corners, the component must hold
// exactly four corner glyphs, and all four must share one style.
func (s *scanner) verifyBox(comp []primitives.Pos) (primitives.Box, bool) {
	var box primitives.Box
	if len(comp) < 4 {
		return box, false
	}

	minR, minC := comp[0].Row, comp[0].Col
	maxR, maxC := minR, minC
	for _, p := range comp[1:] {
		if p.Row < minR {
			minR = p.Row
		}
		if p.Row > maxR {
			maxR = p.Row
		}
		if p.Col < minC {
			minC = p.Col
		}
		if p.Col > maxC {
			maxC = p.Col
		}
	}
	if maxR-minR < 1 || maxC-minC < 1 {
		return box, false
	}

	tl, _ := s.g.Get(minR, minC)
	br, _ := s.g.Get(maxR, maxC)
	if !primitives.IsTopLeftish(tl) || !primitives.IsBottomRightish(br) {
		return box, false
	}

	corners := 0
	styles := make(map[primitives.BoxStyle]bool)
	for _, p := range comp {
		r, _ := s.g.Get(p.Row, p.Col)
		if st, ok := primitives.CornerStyle(r); ok {
			corners++
			styles[st] = true
		}
	}
	if corners != 4 || len(styles) != 1 {
		return box, false
	}

	var style primitives.BoxStyle
	for st := range styles {
		style = st
	}
	return primitives.Box{
		TopLeft:     primitives.Pos{Row: minR, Col: minC},
		BottomRight: primitives.Pos{Row: maxR, Col: maxC},
		Style:       style,
		Parent:      primitives.NoParent,
	}, true
}
