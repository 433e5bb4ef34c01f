package primitives

// Glyph classification for detection and rendering. Connectivity is
// directional: a '─' reaches left and right, a '│' up and down, and a
// corner reaches along its two arms. Two cells are connected only when
// each reaches toward the other, which keeps a box border from leaking
// into a connection line that merely touches it.

// Direction bit flags.
const (
	DirUp = 1 << iota
	DirDown
	DirLeft
	DirRight
)

var singleBorder = map[rune]int{
	'─': DirLeft | DirRight,
	'│': DirUp | DirDown,
	'┌': DirRight | DirDown,
	'┐': DirLeft | DirDown,
	'└': DirRight | DirUp,
	'┘': DirLeft | DirUp,
	// Junctions connect along the border they sit on; the third arm is
	// an external attachment point, not part of the box outline.
	'├': DirUp | DirDown,
	'┤': DirUp | DirDown,
	'┬': DirLeft | DirRight,
	'┴': DirLeft | DirRight,
	'┼': DirUp | DirDown | DirLeft | DirRight,
}

var doubleBorder = map[rune]int{
	'═': DirLeft | DirRight,
	'║': DirUp | DirDown,
	'╔': DirRight | DirDown,
	'╗': DirLeft | DirDown,
	'╚': DirRight | DirUp,
	'╝': DirLeft | DirUp,
	'╠': DirUp | DirDown,
	'╣': DirUp | DirDown,
	'╦': DirLeft | DirRight,
	'╩': DirLeft | DirRight,
	'╬': DirUp | DirDown | DirLeft | DirRight,
}

var roundedBorder = map[rune]int{
	'─': DirLeft | DirRight,
	'│': DirUp | DirDown,
	'╭': DirRight | DirDown,
	'╮': DirLeft | DirDown,
	'╰': DirRight | DirUp,
	'╯': DirLeft | DirUp,
}

// BorderDirs returns the connectivity of r within the glyph family the
// style can be flood-filled over. Single and rounded share '─' and
// '│', so they fill over the union and the style is decided afterwards
// from the corners found.
func BorderDirs(r rune, style BoxStyle) (int, bool) {
	if style == StyleDouble {
		d, ok := doubleBorder[r]
		return d, ok
	}
	if d, ok := singleBorder[r]; ok {
		return d, ok
	}
	d, ok := roundedBorder[r]
	return d, ok
}

// CornerStyle reports whether r is a box corner and which style it
// belongs to.
func CornerStyle(r rune) (BoxStyle, bool) {
	switch r {
	case '┌', '┐', '└', '┘':
		return StyleSingle, true
	case '╔', '╗', '╚', '╝':
		return StyleDouble, true
	case '╭', '╮', '╰', '╯':
		return StyleRounded, true
	}
	return StyleSingle, false
}

// IsCorner reports whether r is a corner of any style.
func IsCorner(r rune) bool {
	_, ok := CornerStyle(r)
	return ok
}

// IsTopLeftish reports whether r can occupy a top-left bounding corner.
func IsTopLeftish(r rune) bool {
	switch r {
	case '┌', '╔', '╭', '┬', '├', '┼', '╦', '╠', '╬':
		return true
	}
	return false
}

// IsBottomRightish reports whether r can occupy a bottom-right bounding
// corner.
func IsBottomRightish(r rune) bool {
	switch r {
	case '┘', '╝', '╯', '┴', '┤', '┼', '╩', '╣', '╬':
		return true
	}
	return false
}

// IsBoxGlyph reports whether r belongs to any border glyph family.
func IsBoxGlyph(r rune) bool {
	if _, ok := singleBorder[r]; ok {
		return true
	}
	if _, ok := doubleBorder[r]; ok {
		return true
	}
	_, ok := roundedBorder[r]
	return ok
}

// IsJunction reports whether r is a T- or cross-junction glyph.
func IsJunction(r rune) bool {
	switch r {
	case '├', '┤', '┬', '┴', '┼', '╠', '╣', '╦', '╩', '╬':
		return true
	}
	return false
}

// Arrow glyph sets. A run of body glyphs is only an arrow when at
// least one directional tip is present.

// HTipDir returns the direction of a horizontal tip glyph: +1 for
// rightward, -1 for leftward, 0 for not a tip.
func HTipDir(r rune) int {
	switch r {
	case '→', '⇒', '⟶', '⟹':
		return 1
	case '←', '⇐', '⟵', '⟸':
		return -1
	}
	return 0
}

// VTipDir returns the direction of a vertical tip glyph: +1 for
// downward, -1 for upward, 0 for not a tip.
func VTipDir(r rune) int {
	switch r {
	case '↓', '⇓':
		return 1
	case '↑', '⇑':
		return -1
	}
	return 0
}

// IsHArrowBody reports whether r can form the shaft of a horizontal
// arrow.
func IsHArrowBody(r rune) bool {
	switch r {
	case '─', '═', '╌', '┄', '┈':
		return true
	}
	return false
}

// IsVArrowBody reports whether r can form the shaft of a vertical
// arrow.
func IsVArrowBody(r rune) bool {
	switch r {
	case '│', '┃', '║', '╎', '┆', '┊':
		return true
	}
	return false
}

// IsDashedBody reports whether r is a dashed shaft glyph.
func IsDashedBody(r rune) bool {
	switch r {
	case '╌', '┄', '┈', '╎', '┆', '┊':
		return true
	}
	return false
}

// IsDoubleGlyph reports whether r belongs to the double-stroke family.
func IsDoubleGlyph(r rune) bool {
	switch r {
	case '═', '║', '⇒', '⇐', '⇓', '⇑', '⟹', '⟸':
		return true
	}
	return false
}

// IsLongTip reports whether r is a long-form tip glyph.
func IsLongTip(r rune) bool {
	switch r {
	case '⟶', '⟵', '⟹', '⟸':
		return true
	}
	return false
}

// ClassifyArrow derives the arrow type from the glyphs seen in a run.
func ClassifyArrow(runes []rune) ArrowType {
	hasDouble, hasLong, hasDashed := false, false, false
	for _, r := range runes {
		if IsDoubleGlyph(r) {
			hasDouble = true
		}
		if IsLongTip(r) {
			hasLong = true
		}
		if IsDashedBody(r) {
			hasDashed = true
		}
	}
	switch {
	case hasLong:
		return ArrowLong
	case hasDouble:
		return ArrowDouble
	case hasDashed:
		return ArrowDashed
	default:
		return ArrowStandard
	}
}

// ArrowGlyphs returns the body glyph and the tip glyph for drawing a
// horizontal arrow of the given type and direction.
func ArrowGlyphs(t ArrowType, rightward bool) (body, tip rune) {
	switch t {
	case ArrowDouble:
		body = '═'
		if rightward {
			return body, '⇒'
		}
		return body, '⇐'
	case ArrowLong:
		body = '─'
		if rightward {
			return body, '⟶'
		}
		return body, '⟵'
	case ArrowDashed:
		body = '╌'
		if rightward {
			return body, '→'
		}
		return body, '←'
	default:
		body = '─'
		if rightward {
			return body, '→'
		}
		return body, '←'
	}
}

// VArrowGlyphs returns the body glyph and the tip glyph for drawing a
// vertical arrow.
func VArrowGlyphs(t ArrowType, downward bool) (body, tip rune) {
	switch t {
	case ArrowDouble:
		body = '║'
		if downward {
			return body, '⇓'
		}
		return body, '⇑'
	case ArrowDashed:
		body = '┆'
		if downward {
			return body, '↓'
		}
		return body, '↑'
	default:
		body = '│'
		if downward {
			return body, '↓'
		}
		return body, '↑'
	}
}
