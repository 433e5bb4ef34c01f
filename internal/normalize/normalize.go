// Package normalize repairs the geometry of a primitive inventory via
// an ordered sequence of passes. Each pass is idempotent in isolation
// and only ever grows or shifts primitives; nothing shrinks and no
// text content is edited. Anything a pass cannot fix without guessing
// is left as detected.
package normalize

import (
	"sort"

	"gridfix/internal/primitives"
)

// DefaultSanityWidth bounds side-by-side balancing: a group whose
// target width exceeds it is left alone.
const DefaultSanityWidth = 100

// Options tunes the pass sequence.
type Options struct {
	SanityWidth int
}

func (o Options) withDefaults() Options {
	if o.SanityWidth <= 0 {
		o.SanityWidth = DefaultSanityWidth
	}
	return o
}

// Run applies the full pass sequence with default options. The input
// inventory is not modified; the result is a fresh inventory with the
// same indices.
func Run(detected *primitives.Inventory) *primitives.Inventory {
	return RunOptions(detected, Options{})
}

// RunOptions is Run with explicit options.
func RunOptions(detected *primitives.Inventory, opts Options) *primitives.Inventory {
	n := &normalizer{
		inv:  detected.Clone(),
		orig: detected,
		opts: opts.withDefaults(),
	}
	n.expandToContent()
	n.balanceSideBySide()
	n.expandNested()
	n.alignHArrows()
	n.alignVArrows()
	n.straightenConnections()
	n.repositionLabels()
	n.padInterior()
	return n.inv
}

type normalizer struct {
	inv  *primitives.Inventory
	orig *primitives.Inventory // detected geometry, for re-anchoring
	opts Options
}

// shiftSubtree moves a box, its text rows, and all its descendants.
func (n *normalizer) shiftSubtree(bi, dRow, dCol int) {
	b := &n.inv.Boxes[bi]
	b.Shift(dRow, dCol)
	for i := range n.inv.TextRows {
		tr := &n.inv.TextRows[i]
		if tr.BoxIdx == bi {
			tr.Row += dRow
			tr.StartCol += dCol
			tr.EndCol += dCol
		}
	}
	for _, c := range b.Children {
		n.shiftSubtree(c, dRow, dCol)
	}
}

// sortedIndices returns 0..n-1 ordered by the given less function,
// falling back to the original index so equal keys keep scan order.
func sortedIndices(count int, less func(a, b int) bool) []int {
	idx := make([]int, count)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(x, y int) bool {
		return less(idx[x], idx[y])
	})
	return idx
}

// occupied reports whether a cell is covered by any primitive in the
// current inventory, optionally skipping one connection.
func (n *normalizer) occupied(p primitives.Pos, skipConn int) bool {
	for i := range n.inv.Boxes {
		if n.inv.Boxes[i].Contains(p.Row, p.Col) {
			return true
		}
	}
	for i := range n.inv.HArrows {
		a := &n.inv.HArrows[i]
		if p.Row == a.Row && p.Col >= a.StartCol && p.Col <= a.EndCol {
			return true
		}
	}
	for i := range n.inv.VArrows {
		a := &n.inv.VArrows[i]
		if p.Col == a.Col && p.Row >= a.StartRow && p.Row <= a.EndRow {
			return true
		}
	}
	for i := range n.inv.TextRows {
		tr := &n.inv.TextRows[i]
		if p.Row == tr.Row && p.Col >= tr.StartCol && p.Col <= tr.EndCol {
			return true
		}
	}
	for i := range n.inv.Connections {
		if i == skipConn {
			continue
		}
		for _, cell := range n.inv.Connections[i].Cells() {
			if cell == p {
				return true
			}
		}
	}
	return false
}
