package primitives

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestBoxDimensions(t *testing.T) {
	b := Box{TopLeft: Pos{0, 0}, BottomRight: Pos{3, 5}}
	assert.Equal(t, 6, b.Width())
	assert.Equal(t, 4, b.Height())
	assert.Equal(t, 4, b.InteriorWidth())
}

func TestBoxContains(t *testing.T) {
	b := Box{TopLeft: Pos{0, 0}, BottomRight: Pos{3, 5}}

	assert.True(t, b.ContainsInterior(1, 1))
	assert.True(t, b.ContainsInterior(2, 3))
	assert.False(t, b.ContainsInterior(0, 1)) // top border
	assert.False(t, b.ContainsInterior(3, 1)) // bottom border
	assert.False(t, b.ContainsInterior(1, 0)) // left border

	assert.True(t, b.ContainsBorder(0, 0))
	assert.True(t, b.ContainsBorder(0, 3))
	assert.True(t, b.ContainsBorder(3, 5))
	assert.False(t, b.ContainsBorder(1, 1))
	assert.False(t, b.ContainsBorder(4, 0))
}

func TestBoxEncloses(t *testing.T) {
	outer := Box{TopLeft: Pos{0, 0}, BottomRight: Pos{6, 10}}
	inner := Box{TopLeft: Pos{2, 2}, BottomRight: Pos{4, 8}}
	touching := Box{TopLeft: Pos{0, 2}, BottomRight: Pos{4, 8}}

	assert.True(t, outer.Encloses(&inner))
	assert.False(t, inner.Encloses(&outer))
	assert.False(t, outer.Encloses(&touching)) // shares the top border row
}

func TestBoxOverlaps(t *testing.T) {
	a := Box{TopLeft: Pos{0, 0}, BottomRight: Pos{2, 4}}
	b := Box{TopLeft: Pos{1, 3}, BottomRight: Pos{5, 8}}
	c := Box{TopLeft: Pos{0, 6}, BottomRight: Pos{2, 9}}

	assert.True(t, a.Overlaps(&b))
	assert.True(t, b.Overlaps(&a))
	assert.False(t, a.Overlaps(&c))
}

func TestBoxShift(t *testing.T) {
	b := Box{TopLeft: Pos{1, 1}, BottomRight: Pos{3, 4}}
	w, h := b.Width(), b.Height()
	b.Shift(2, 3)

	assert.Equal(t, Pos{3, 4}, b.TopLeft)
	assert.Equal(t, Pos{5, 7}, b.BottomRight)
	assert.Equal(t, w, b.Width())
	assert.Equal(t, h, b.Height())
}

func TestStyleGlyphs(t *testing.T) {
	tests := []struct {
		style BoxStyle
		tl    rune
		h     rune
	}{
		{StyleSingle, '┌', '─'},
		{StyleDouble, '╔', '═'},
		{StyleRounded, '╭', '─'},
	}
	for _, tt := range tests {
		g := tt.style.Glyphs()
		assert.Equal(t, tt.tl, g.TopLeft, tt.style.String())
		assert.Equal(t, tt.h, g.Horizontal, tt.style.String())
	}
}

func TestCornerStyle(t *testing.T) {
	for _, r := range []rune{'┌', '┐', '└', '┘'} {
		s, ok := CornerStyle(r)
		assert.True(t, ok)
		assert.Equal(t, StyleSingle, s)
	}
	s, ok := CornerStyle('╔')
	assert.True(t, ok)
	assert.Equal(t, StyleDouble, s)

	s, ok = CornerStyle('╮')
	assert.True(t, ok)
	assert.Equal(t, StyleRounded, s)

	_, ok = CornerStyle('─')
	assert.False(t, ok)
	_, ok = CornerStyle('a')
	assert.False(t, ok)
}

func TestBorderDirs(t *testing.T) {
	d, ok := BorderDirs('─', StyleSingle)
	assert.True(t, ok)
	assert.Equal(t, DirLeft|DirRight, d)

	d, ok = BorderDirs('│', StyleSingle)
	assert.True(t, ok)
	assert.Equal(t, DirUp|DirDown, d)

	// Side junctions connect only along the border.
	d, ok = BorderDirs('├', StyleSingle)
	assert.True(t, ok)
	assert.Equal(t, DirUp|DirDown, d)

	_, ok = BorderDirs('═', StyleSingle)
	assert.False(t, ok)

	d, ok = BorderDirs('═', StyleDouble)
	assert.True(t, ok)
	assert.Equal(t, DirLeft|DirRight, d)
}

func TestArrowGlyphClassification(t *testing.T) {
	assert.Equal(t, 1, HTipDir('→'))
	assert.Equal(t, -1, HTipDir('←'))
	assert.Equal(t, 0, HTipDir('─'))
	assert.Equal(t, 1, VTipDir('↓'))
	assert.Equal(t, -1, VTipDir('⇑'))

	assert.Equal(t, ArrowStandard, ClassifyArrow([]rune("──→")))
	assert.Equal(t, ArrowDouble, ClassifyArrow([]rune("═⇒")))
	assert.Equal(t, ArrowLong, ClassifyArrow([]rune("─⟶")))
	assert.Equal(t, ArrowDashed, ClassifyArrow([]rune("╌╌→")))
}

func TestArrowGlyphsForDrawing(t *testing.T) {
	body, tip := ArrowGlyphs(ArrowStandard, true)
	assert.Equal(t, '─', body)
	assert.Equal(t, '→', tip)

	body, tip = ArrowGlyphs(ArrowDouble, false)
	assert.Equal(t, '═', body)
	assert.Equal(t, '⇐', tip)

	body, tip = VArrowGlyphs(ArrowStandard, true)
	assert.Equal(t, '│', body)
	assert.Equal(t, '↓', tip)
}

func TestInventoryEmpty(t *testing.T) {
	inv := &Inventory{}
	assert.True(t, inv.Empty())

	inv.TextRows = append(inv.TextRows, TextRow{Content: "x", BoxIdx: NoBox})
	assert.True(t, inv.Empty(), "text rows alone do not make an inventory repairable")

	inv.Boxes = append(inv.Boxes, Box{})
	assert.False(t, inv.Empty())
}

func TestInventoryClone(t *testing.T) {
	inv := &Inventory{
		Boxes: []Box{{
			TopLeft:     Pos{0, 0},
			BottomRight: Pos{2, 4},
			Children:    []int{1},
		}},
		Connections: []ConnectionLine{{
			Segments: []Segment{{Start: Pos{0, 0}, End: Pos{0, 3}}},
			FromBox:  0,
			ToBox:    NoBox,
		}},
	}
	c := inv.Clone()

	c.Boxes[0].BottomRight.Col = 99
	c.Boxes[0].Children[0] = 99
	c.Connections[0].Segments[0].End.Col = 99

	assert.Equal(t, 4, inv.Boxes[0].BottomRight.Col)
	assert.Equal(t, 1, inv.Boxes[0].Children[0])
	assert.Equal(t, 3, inv.Connections[0].Segments[0].End.Col)
}

func TestInventoryCloneKeepsNilSlices(t *testing.T) {
	inv := &Inventory{Boxes: []Box{{TopLeft: Pos{0, 0}, BottomRight: Pos{2, 4}}}}
	c := inv.Clone()

	assert.Nil(t, c.HArrows)
	assert.Nil(t, c.VArrows)
	assert.Nil(t, c.TextRows)
	assert.Nil(t, c.Connections)
	assert.Nil(t, c.Labels)
	assert.Nil(t, c.Boxes[0].Children)
	if diff := cmp.Diff(inv, c); diff != "" {
		t.Errorf("clone differs from source (-src +clone):\n%s", diff)
	}
}

func TestBoxTextRows(t *testing.T) {
	inv := &Inventory{
		TextRows: []TextRow{
			{Row: 1, Content: "a", BoxIdx: 0},
			{Row: 2, Content: "b", BoxIdx: 1},
			{Row: 3, Content: "c", BoxIdx: 0},
		},
	}
	if diff := cmp.Diff([]int{0, 2}, inv.BoxTextRows(0)); diff != "" {
		t.Errorf("unexpected text rows (-want +got):\n%s", diff)
	}
	assert.Nil(t, inv.BoxTextRows(7))
}

func TestSegment(t *testing.T) {
	h := Segment{Start: Pos{1, 2}, End: Pos{1, 8}}
	v := Segment{Start: Pos{1, 2}, End: Pos{4, 2}}
	assert.True(t, h.Horizontal())
	assert.False(t, v.Horizontal())
}

func TestPosLess(t *testing.T) {
	assert.True(t, Pos{0, 5}.Less(Pos{1, 0}))
	assert.True(t, Pos{1, 0}.Less(Pos{1, 1}))
	assert.False(t, Pos{1, 1}.Less(Pos{1, 1}))
}
