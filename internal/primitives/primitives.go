// Package primitives defines the typed geometric objects recovered from
// a diagram grid, and the inventory that carries them between pipeline
// stages. Cross references between primitives are integer indices into
// the inventory's slices, never pointers, so the whole inventory moves
// cheaply from detector to normalizer to renderer.
package primitives

import "slices"

// Pos is a (row, col) grid coordinate.
type Pos struct {
	Row int
	Col int
}

// Less orders positions row-major.
func (p Pos) Less(q Pos) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Col < q.Col
}

// BoxStyle selects the border glyph set of a box.
type BoxStyle int

const (
	StyleSingle BoxStyle = iota
	StyleDouble
	StyleRounded
)

func (s BoxStyle) String() string {
	switch s {
	case StyleDouble:
		return "double"
	case StyleRounded:
		return "rounded"
	default:
		return "single"
	}
}

// BorderGlyphs holds the drawing characters for one box style.
type BorderGlyphs struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
}

// Glyphs returns the drawing set for the style.
func (s BoxStyle) Glyphs() BorderGlyphs {
	switch s {
	case StyleDouble:
		return BorderGlyphs{'╔', '╗', '╚', '╝', '═', '║'}
	case StyleRounded:
		return BorderGlyphs{'╭', '╮', '╰', '╯', '─', '│'}
	default:
		return BorderGlyphs{'┌', '┐', '└', '┘', '─', '│'}
	}
}

// NoParent marks a box without a containing box, and NoBox marks a
// connection endpoint not attached to any box.
const (
	NoParent = -1
	NoBox    = -1
)

// Box is a closed rectangle of border glyphs. Dimensions only ever
// grow during normalization; positions may shift right or down but the
// box never shrinks.
type Box struct {
	TopLeft     Pos
	BottomRight Pos
	Style       BoxStyle

	// Hierarchy, filled in after all boxes are detected.
	Parent   int   // index into Inventory.Boxes, or NoParent
	Children []int // ordered by top-left coordinate
	Depth    int   // root = 0

	// Ambiguous marks boxes that overlap another box without clean
	// containment; normalization leaves them alone.
	Ambiguous bool
}

// Width returns the number of columns the box spans, borders included.
func (b *Box) Width() int { return b.BottomRight.Col - b.TopLeft.Col + 1 }

// Height returns the number of rows the box spans, borders included.
func (b *Box) Height() int { return b.BottomRight.Row - b.TopLeft.Row + 1 }

// InteriorWidth returns the columns available between the side borders.
func (b *Box) InteriorWidth() int { return b.Width() - 2 }

// ContainsInterior reports whether (row, col) is strictly inside the
// borders.
func (b *Box) ContainsInterior(row, col int) bool {
	return row > b.TopLeft.Row && row < b.BottomRight.Row &&
		col > b.TopLeft.Col && col < b.BottomRight.Col
}

// ContainsBorder reports whether (row, col) lies on the border.
func (b *Box) ContainsBorder(row, col int) bool {
	onRow := row == b.TopLeft.Row || row == b.BottomRight.Row
	onCol := col == b.TopLeft.Col || col == b.BottomRight.Col
	inRows := row >= b.TopLeft.Row && row <= b.BottomRight.Row
	inCols := col >= b.TopLeft.Col && col <= b.BottomRight.Col
	return (onRow && inCols) || (onCol && inRows)
}

// Contains reports whether (row, col) is on or inside the border.
func (b *Box) Contains(row, col int) bool {
	return row >= b.TopLeft.Row && row <= b.BottomRight.Row &&
		col >= b.TopLeft.Col && col <= b.BottomRight.Col
}

// Encloses reports whether other lies entirely inside b's interior.
func (b *Box) Encloses(other *Box) bool {
	return other.TopLeft.Row > b.TopLeft.Row &&
		other.TopLeft.Col > b.TopLeft.Col &&
		other.BottomRight.Row < b.BottomRight.Row &&
		other.BottomRight.Col < b.BottomRight.Col
}

// Overlaps reports whether the two rectangles intersect at all.
func (b *Box) Overlaps(other *Box) bool {
	return b.TopLeft.Row <= other.BottomRight.Row &&
		other.TopLeft.Row <= b.BottomRight.Row &&
		b.TopLeft.Col <= other.BottomRight.Col &&
		other.TopLeft.Col <= b.BottomRight.Col
}

// Shift moves the box without changing its dimensions.
func (b *Box) Shift(dRow, dCol int) {
	b.TopLeft.Row += dRow
	b.TopLeft.Col += dCol
	b.BottomRight.Row += dRow
	b.BottomRight.Col += dCol
}

// ArrowType classifies an arrow by its glyph set.
type ArrowType int

const (
	ArrowStandard ArrowType = iota
	ArrowDouble
	ArrowLong
	ArrowDashed
)

func (t ArrowType) String() string {
	switch t {
	case ArrowDouble:
		return "double"
	case ArrowLong:
		return "long"
	case ArrowDashed:
		return "dashed"
	default:
		return "standard"
	}
}

// HorizontalArrow is a left/right pointing arrow on a single row.
// Direction comes from the tip glyph, never assumed.
type HorizontalArrow struct {
	Row       int
	StartCol  int
	EndCol    int
	Type      ArrowType
	Rightward bool
}

// VerticalArrow is an up/down pointing arrow on a single column.
type VerticalArrow struct {
	Col      int
	StartRow int
	EndRow   int
	Type     ArrowType
	Downward bool
}

// TextRow is a run of interior box content. Content is copied verbatim
// from the grid; normalization may move the anchor but never edits the
// characters.
type TextRow struct {
	Row      int
	StartCol int
	EndCol   int
	Content  string

	// BoxIdx is the owning box, or NoBox for free-standing text.
	BoxIdx int
}

// Segment is one axis-aligned piece of a connection path. Start and
// End are inclusive and follow the trace direction, so Segments[0].Start
// is the cell the path was traced from.
type Segment struct {
	Start Pos
	End   Pos
}

// Horizontal reports whether the segment runs along a row.
func (s Segment) Horizontal() bool { return s.Start.Row == s.End.Row }

// MaxSegments bounds connection path complexity; longer paths are
// skipped at detection time.
const MaxSegments = 4

// ConnectionLine is a tipless path of at most MaxSegments axis-aligned
// segments joining two endpoints.
type ConnectionLine struct {
	Segments []Segment
	FromBox  int // index into Inventory.Boxes, or NoBox
	ToBox    int
}

// Endpoints returns the first and last cells of the path.
func (c *ConnectionLine) Endpoints() (Pos, Pos) {
	first := c.Segments[0].Start
	last := c.Segments[len(c.Segments)-1].End
	return first, last
}

// Cells returns every cell the path covers, in path order and without
// duplicating the shared corner cells.
func (c *ConnectionLine) Cells() []Pos {
	return SegmentCells(c.Segments)
}

// SegmentCells expands segments into the cells they cover.
func SegmentCells(segs []Segment) []Pos {
	var out []Pos
	seen := make(map[Pos]bool)
	add := func(p Pos) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	step := func(n int) int {
		switch {
		case n > 0:
			return 1
		case n < 0:
			return -1
		default:
			return 0
		}
	}
	for _, s := range segs {
		dRow, dCol := step(s.End.Row-s.Start.Row), step(s.End.Col-s.Start.Col)
		p := s.Start
		add(p)
		for p != s.End {
			p.Row += dRow
			p.Col += dCol
			add(p)
		}
	}
	return out
}

// AttachKind identifies what a label is anchored to.
type AttachKind int

const (
	AttachBox AttachKind = iota
	AttachHArrow
	AttachVArrow
	AttachConnection
)

// Attachment references one primitive by kind and index.
type Attachment struct {
	Kind  AttachKind
	Index int
}

// Corner identifies a box corner or path endpoint used as a label
// anchor.
type Corner int

const (
	CornerTopLeft Corner = iota
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
	// AnchorStart and AnchorEnd apply to arrows and connections.
	AnchorStart
	AnchorEnd
)

// MaxLabelLen caps label content; longer text is never treated as a
// label.
const MaxLabelLen = 20

// MaxLabelOffset caps the per-axis distance between a label and its
// anchor at detection time.
const MaxLabelOffset = 2

// Label is short free text attached to a nearby primitive. Its
// position is always recomputed from the anchor plus the stored offset
// when the attachment moves.
type Label struct {
	Row     int
	Col     int
	Content string
	Attach  Attachment
	Anchor  Corner
	OffRow  int
	OffCol  int
}

// MaxDepth is the deepest nesting level normalization will expand.
const MaxDepth = 3

// Inventory aggregates every primitive detected in one grid. Indices
// are stable for the lifetime of a pipeline run.
type Inventory struct {
	Boxes       []Box
	HArrows     []HorizontalArrow
	VArrows     []VerticalArrow
	TextRows    []TextRow
	Connections []ConnectionLine
	Labels      []Label
}

// Empty reports whether nothing repairable was detected. Text rows and
// labels only exist relative to other primitives, so they are not
// counted.
func (inv *Inventory) Empty() bool {
	return len(inv.Boxes) == 0 && len(inv.HArrows) == 0 &&
		len(inv.VArrows) == 0 && len(inv.Connections) == 0
}

// Clone returns a deep copy. Nil slices stay nil so a clone of an
// untouched inventory compares equal to the original.
func (inv *Inventory) Clone() *Inventory {
	c := &Inventory{
		Boxes:       slices.Clone(inv.Boxes),
		HArrows:     slices.Clone(inv.HArrows),
		VArrows:     slices.Clone(inv.VArrows),
		TextRows:    slices.Clone(inv.TextRows),
		Connections: slices.Clone(inv.Connections),
		Labels:      slices.Clone(inv.Labels),
	}
	for i := range c.Boxes {
		c.Boxes[i].Children = slices.Clone(inv.Boxes[i].Children)
	}
	for i := range c.Connections {
		c.Connections[i].Segments = slices.Clone(inv.Connections[i].Segments)
	}
	return c
}

// AnchorPos resolves a label attachment to the anchor's current
// position in this inventory.
func (inv *Inventory) AnchorPos(at Attachment, c Corner) Pos {
	switch at.Kind {
	case AttachBox:
		b := &inv.Boxes[at.Index]
		switch c {
		case CornerTopRight:
			return Pos{Row: b.TopLeft.Row, Col: b.BottomRight.Col}
		case CornerBottomLeft:
			return Pos{Row: b.BottomRight.Row, Col: b.TopLeft.Col}
		case CornerBottomRight:
			return b.BottomRight
		default:
			return b.TopLeft
		}
	case AttachHArrow:
		a := &inv.HArrows[at.Index]
		if c == AnchorEnd {
			return Pos{Row: a.Row, Col: a.EndCol}
		}
		return Pos{Row: a.Row, Col: a.StartCol}
	case AttachVArrow:
		a := &inv.VArrows[at.Index]
		if c == AnchorEnd {
			return Pos{Row: a.EndRow, Col: a.Col}
		}
		return Pos{Row: a.StartRow, Col: a.Col}
	default:
		first, last := inv.Connections[at.Index].Endpoints()
		if c == AnchorEnd {
			return last
		}
		return first
	}
}

// BoxTextRows returns the indices of text rows owned by box idx.
func (inv *Inventory) BoxTextRows(idx int) []int {
	var out []int
	for i := range inv.TextRows {
		if inv.TextRows[i].BoxIdx == idx {
			out = append(out, i)
		}
	}
	return out
}
