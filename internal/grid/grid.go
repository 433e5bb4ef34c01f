// Package grid provides the 2-D character buffer that the diagram
// pipeline reads and writes. All coordinate access is bounds-checked;
// probing outside the grid is a normal outcome, not an error.
package grid

import "strings"

// Grid is a rectangular rune buffer. Every row has the same length;
// short input lines are padded with spaces, and Render strips only the
// padding that FromLines itself synthesized.
type Grid struct {
	rows    [][]rune
	width   int
	origLen []int
}

// FromLines builds a grid from text lines, padding each row with
// spaces to the width of the longest line.
func FromLines(lines []string) *Grid {
	g := &Grid{
		rows:    make([][]rune, len(lines)),
		origLen: make([]int, len(lines)),
	}
	for i, line := range lines {
		r := []rune(line)
		g.rows[i] = r
		g.origLen[i] = len(r)
		if len(r) > g.width {
			g.width = len(r)
		}
	}
	for i := range g.rows {
		for len(g.rows[i]) < g.width {
			g.rows[i] = append(g.rows[i], ' ')
		}
	}
	return g
}

// Height returns the number of rows.
func (g *Grid) Height() int { return len(g.rows) }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Get returns the rune at (row, col). The second result is false when
// the position lies outside the grid.
func (g *Grid) Get(row, col int) (rune, bool) {
	if row < 0 || row >= len(g.rows) || col < 0 || col >= g.width {
		return 0, false
	}
	return g.rows[row][col], true
}

// Set writes a rune at (row, col) and reports whether the position was
// inside the grid.
func (g *Grid) Set(row, col int, r rune) bool {
	if row < 0 || row >= len(g.rows) || col < 0 || col >= g.width {
		return false
	}
	g.rows[row][col] = r
	return true
}

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		rows:    make([][]rune, len(g.rows)),
		width:   g.width,
		origLen: make([]int, len(g.origLen)),
	}
	copy(c.origLen, g.origLen)
	for i, row := range g.rows {
		c.rows[i] = make([]rune, len(row))
		copy(c.rows[i], row)
	}
	return c
}

// Expanded returns a copy grown to at least height rows and width
// columns. New cells are spaces and count as synthesized padding.
func (g *Grid) Expanded(height, width int) *Grid {
	if height < len(g.rows) {
		height = len(g.rows)
	}
	if width < g.width {
		width = g.width
	}
	c := &Grid{
		rows:    make([][]rune, height),
		width:   width,
		origLen: make([]int, height),
	}
	for i := 0; i < height; i++ {
		c.rows[i] = make([]rune, width)
		for j := range c.rows[i] {
			c.rows[i][j] = ' '
		}
		if i < len(g.rows) {
			copy(c.rows[i], g.rows[i])
			c.origLen[i] = g.origLen[i]
		}
	}
	return c
}

// Render converts the grid back to lines. Trailing spaces are trimmed
// only down to each row's original length, so Render(FromLines(L))
// reproduces L exactly, including trailing whitespace the caller wrote.
func (g *Grid) Render() []string {
	out := make([]string, len(g.rows))
	for i, row := range g.rows {
		end := len(row)
		for end > g.origLen[i] && row[end-1] == ' ' {
			end--
		}
		out[i] = string(row[:end])
	}
	return out
}

// RenderString joins the rendered lines with newlines.
func (g *Grid) RenderString() string {
	return strings.Join(g.Render(), "\n")
}
