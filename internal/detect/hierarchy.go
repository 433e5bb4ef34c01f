package detect

import (
	"sort"

	"gridfix/internal/primitives"
)

// buildHierarchy links boxes to their smallest enclosing box, computes
// nesting depth, and reorders the slice by (depth, top-left, scan
// order) so downstream passes see a deterministic root-first order.
// Boxes that overlap without clean containment are flagged ambiguous
// on both sides and left unparented.
func buildHierarchy(boxes []primitives.Box) []primitives.Box {
	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			a, b := &boxes[i], &boxes[j]
			if !a.Overlaps(b) || a.Encloses(b) || b.Encloses(a) {
				continue
			}
			a.Ambiguous = true
			b.Ambiguous = true
		}
	}

	for i := range boxes {
		best := primitives.NoParent
		for j := range boxes {
			if j == i || !boxes[j].Encloses(&boxes[i]) {
				continue
			}
			if best == primitives.NoParent || boxes[best].Encloses(&boxes[j]) {
				best = j
			}
		}
		boxes[i].Parent = best
	}

	for i := range boxes {
		boxes[i].Depth = depthOf(boxes, i)
	}
	return sortByDepth(boxes)
}

func depthOf(boxes []primitives.Box, i int) int {
	depth := 0
	for boxes[i].Parent != primitives.NoParent {
		depth++
		i = boxes[i].Parent
	}
	return depth
}

func sortByDepth(boxes []primitives.Box) []primitives.Box {
	order := make([]int, len(boxes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		a, b := &boxes[order[x]], &boxes[order[y]]
		if a.Depth != b.Depth {
			return a.Depth < b.Depth
		}
		if a.TopLeft != b.TopLeft {
			return a.TopLeft.Less(b.TopLeft)
		}
		return order[x] < order[y]
	})

	remap := make([]int, len(boxes))
	for newIdx, oldIdx := range order {
		remap[oldIdx] = newIdx
	}
	out := make([]primitives.Box, len(boxes))
	for newIdx, oldIdx := range order {
		b := boxes[oldIdx]
		if b.Parent != primitives.NoParent {
			b.Parent = remap[b.Parent]
		}
		b.Children = nil
		out[newIdx] = b
	}
	for i := range out {
		if p := out[i].Parent; p != primitives.NoParent {
			out[p].Children = append(out[p].Children, i)
		}
	}
	for i := range out {
		kids := out[i].Children
		sort.Slice(kids, func(x, y int) bool {
			return out[kids[x]].TopLeft.Less(out[kids[y]].TopLeft)
		})
	}
	return out
}
