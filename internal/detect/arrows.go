package detect

import (
	"gridfix/internal/primitives"
)

// Arrow detection scans rows and columns for maximal runs of shaft and
// tip glyphs outside box borders. A run is an arrow only when it holds
// exactly one tip, at the end the tip points out of. Tipless runs and
// double-headed runs are skipped.

func (s *scanner) detectHArrows() []primitives.HorizontalArrow {
	var out []primitives.HorizontalArrow
	for row := 0; row < s.g.Height(); row++ {
		col := 0
		for col < s.g.Width() {
			if !s.isHArrowCell(row, col) {
				col++
				continue
			}
			start := col
			for col < s.g.Width() && s.isHArrowCell(row, col) {
				col++
			}
			if a, ok := s.buildHArrow(row, start, col-1); ok {
				out = append(out, a)
				for c := start; c < col; c++ {
					s.arrow.set(row, c)
				}
			}
		}
	}
	return out
}

func (s *scanner) isHArrowCell(row, col int) bool {
	if s.border.at(row, col) {
		return false
	}
	r, ok := s.g.Get(row, col)
	if !ok {
		return false
	}
	return primitives.IsHArrowBody(r) || primitives.HTipDir(r) != 0
}

func (s *scanner) buildHArrow(row, start, end int) (primitives.HorizontalArrow, bool) {
	var a primitives.HorizontalArrow
	if end-start+1 < 2 {
		return a, false
	}
	runes := make([]rune, 0, end-start+1)
	tips, tipCol, tipDir := 0, -1, 0
	for c := start; c <= end; c++ {
		r, _ := s.g.Get(row, c)
		runes = append(runes, r)
		if d := primitives.HTipDir(r); d != 0 {
			tips++
			tipCol, tipDir = c, d
		}
	}
	if tips != 1 {
		return a, false
	}
	if tipDir > 0 && tipCol != end {
		return a, false
	}
	if tipDir < 0 && tipCol != start {
		return a, false
	}
	return primitives.HorizontalArrow{
		Row:       row,
		StartCol:  start,
		EndCol:    end,
		Type:      primitives.ClassifyArrow(runes),
		Rightward: tipDir > 0,
	}, true
}

func (s *scanner) detectVArrows() []primitives.VerticalArrow {
	var out []primitives.VerticalArrow
	for col := 0; col < s.g.Width(); col++ {
		row := 0
		for row < s.g.Height() {
			if !s.isVArrowCell(row, col) {
				row++
				continue
			}
			start := row
			for row < s.g.Height() && s.isVArrowCell(row, col) {
				row++
			}
			if a, ok := s.buildVArrow(col, start, row-1); ok {
				out = append(out, a)
				for r := start; r < row; r++ {
					s.arrow.set(r, col)
				}
			}
		}
	}
	return out
}

func (s *scanner) isVArrowCell(row, col int) bool {
	if s.border.at(row, col) {
		return false
	}
	r, ok := s.g.Get(row, col)
	if !ok {
		return false
	}
	return primitives.IsVArrowBody(r) || primitives.VTipDir(r) != 0
}

func (s *scanner) buildVArrow(col, start, end int) (primitives.VerticalArrow, bool) {
	var a primitives.VerticalArrow
	if end-start+1 < 2 {
		return a, false
	}
	runes := make([]rune, 0, end-start+1)
	tips, tipRow, tipDir := 0, -1, 0
	for r := start; r <= end; r++ {
		g, _ := s.g.Get(r, col)
		runes = append(runes, g)
		if d := primitives.VTipDir(g); d != 0 {
			tips++
			tipRow, tipDir = r, d
		}
	}
	if tips != 1 {
		return a, false
	}
	if tipDir > 0 && tipRow != end {
		return a, false
	}
	if tipDir < 0 && tipRow != start {
		return a, false
	}
	return primitives.VerticalArrow{
		Col:      col,
		StartRow: start,
		EndRow:   end,
		Type:     primitives.ClassifyArrow(runes),
		Downward: tipDir > 0,
	}, true
}
